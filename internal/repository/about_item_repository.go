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

type AboutItemRepository interface {
	Create(ctx context.Context, item *models.AboutItem) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.AboutItem, error)
	Update(ctx context.Context, item *models.AboutItem) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Find(ctx context.Context, category string, includeInactive bool) ([]models.AboutItem, error)
	DistinctCategories(ctx context.Context) ([]string, error)

	// Ordered-collection verbs, scoped by category.
	CountInScope(ctx context.Context, scope string, ids []primitive.ObjectID) (int64, error)
	MaxOrder(ctx context.Context, scope string) (int, bool, error)
	ApplyOrder(ctx context.Context, ids []primitive.ObjectID) error
}

type aboutItemRepository struct {
	collection *mongo.Collection
}

func NewAboutItemRepository(db *mongo.Database) AboutItemRepository {
	return &aboutItemRepository{collection: db.Collection("about_items")}
}

func (r *aboutItemRepository) Create(ctx context.Context, item *models.AboutItem) error {
	item.ID = primitive.NewObjectID()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	_, err := r.collection.InsertOne(ctx, item)
	return err
}

func (r *aboutItemRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.AboutItem, error) {
	var item models.AboutItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *aboutItemRepository) Update(ctx context.Context, item *models.AboutItem) error {
	item.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	return err
}

func (r *aboutItemRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *aboutItemRepository) Find(ctx context.Context, category string, includeInactive bool) ([]models.AboutItem, error) {
	filter := bson.M{}
	if !includeInactive {
		filter["is_active"] = true
	}
	if category != "" {
		filter["category"] = category
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "category", Value: 1},
		{Key: "order", Value: 1},
		{Key: "created_at", Value: 1},
	})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var items []models.AboutItem
	err = cursor.All(ctx, &items)
	return items, err
}

func (r *aboutItemRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

func (r *aboutItemRepository) CountInScope(ctx context.Context, scope string, ids []primitive.ObjectID) (int64, error) {
	return countInScope(ctx, r.collection, bson.M{"category": scope}, ids)
}

func (r *aboutItemRepository) MaxOrder(ctx context.Context, scope string) (int, bool, error) {
	return maxOrderIn(ctx, r.collection, bson.M{"category": scope})
}

func (r *aboutItemRepository) ApplyOrder(ctx context.Context, ids []primitive.ObjectID) error {
	return applyOrder(ctx, r.collection, ids)
}
