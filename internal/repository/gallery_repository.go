package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"event-crm/internal/models"
)

type GalleryRepository interface {
	Create(ctx context.Context, item *models.GalleryItem) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.GalleryItem, error)
	Update(ctx context.Context, item *models.GalleryItem) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Find(ctx context.Context, size string, includeInactive bool) ([]models.GalleryItem, error)

	// Ordered-collection verbs; gallery ordering is global, the scope
	// argument is ignored.
	CountInScope(ctx context.Context, scope string, ids []primitive.ObjectID) (int64, error)
	MaxOrder(ctx context.Context, scope string) (int, bool, error)
	ApplyOrder(ctx context.Context, ids []primitive.ObjectID) error
}

type galleryRepository struct {
	collection *mongo.Collection
}

func NewGalleryRepository(db *mongo.Database) GalleryRepository {
	return &galleryRepository{collection: db.Collection("gallery")}
}

func (r *galleryRepository) Create(ctx context.Context, item *models.GalleryItem) error {
	item.ID = primitive.NewObjectID()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	_, err := r.collection.InsertOne(ctx, item)
	return err
}

func (r *galleryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.GalleryItem, error) {
	var item models.GalleryItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *galleryRepository) Update(ctx context.Context, item *models.GalleryItem) error {
	item.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	return err
}

func (r *galleryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *galleryRepository) Find(ctx context.Context, size string, includeInactive bool) ([]models.GalleryItem, error) {
	filter := bson.M{}
	if !includeInactive {
		filter["is_active"] = true
	}
	if size != "" {
		filter["size"] = size
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "order", Value: 1},
		{Key: "created_at", Value: 1},
	})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var items []models.GalleryItem
	err = cursor.All(ctx, &items)
	return items, err
}

func (r *galleryRepository) CountInScope(ctx context.Context, _ string, ids []primitive.ObjectID) (int64, error) {
	return countInScope(ctx, r.collection, bson.M{}, ids)
}

func (r *galleryRepository) MaxOrder(ctx context.Context, _ string) (int, bool, error) {
	return maxOrderIn(ctx, r.collection, bson.M{})
}

func (r *galleryRepository) ApplyOrder(ctx context.Context, ids []primitive.ObjectID) error {
	return applyOrder(ctx, r.collection, ids)
}
