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

type TestimonialRepository interface {
	Create(ctx context.Context, testimonial *models.Testimonial) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Testimonial, error)
	Update(ctx context.Context, testimonial *models.Testimonial) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Find(ctx context.Context, includeInactive bool) ([]models.Testimonial, error)

	// Ordered-collection verbs; testimonial ordering is global, the
	// scope argument is ignored.
	CountInScope(ctx context.Context, scope string, ids []primitive.ObjectID) (int64, error)
	MaxOrder(ctx context.Context, scope string) (int, bool, error)
	ApplyOrder(ctx context.Context, ids []primitive.ObjectID) error
}

type testimonialRepository struct {
	collection *mongo.Collection
}

func NewTestimonialRepository(db *mongo.Database) TestimonialRepository {
	return &testimonialRepository{collection: db.Collection("testimonials")}
}

func (r *testimonialRepository) Create(ctx context.Context, testimonial *models.Testimonial) error {
	testimonial.ID = primitive.NewObjectID()
	testimonial.CreatedAt = time.Now()
	testimonial.UpdatedAt = testimonial.CreatedAt
	_, err := r.collection.InsertOne(ctx, testimonial)
	return err
}

func (r *testimonialRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Testimonial, error) {
	var testimonial models.Testimonial
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&testimonial)
	if err != nil {
		return nil, err
	}
	return &testimonial, nil
}

func (r *testimonialRepository) Update(ctx context.Context, testimonial *models.Testimonial) error {
	testimonial.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": testimonial.ID}, testimonial)
	return err
}

func (r *testimonialRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *testimonialRepository) Find(ctx context.Context, includeInactive bool) ([]models.Testimonial, error) {
	filter := bson.M{}
	if !includeInactive {
		filter["is_active"] = true
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "order", Value: 1},
		{Key: "created_at", Value: 1},
	})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var testimonials []models.Testimonial
	err = cursor.All(ctx, &testimonials)
	return testimonials, err
}

func (r *testimonialRepository) CountInScope(ctx context.Context, _ string, ids []primitive.ObjectID) (int64, error) {
	return countInScope(ctx, r.collection, bson.M{}, ids)
}

func (r *testimonialRepository) MaxOrder(ctx context.Context, _ string) (int, bool, error) {
	return maxOrderIn(ctx, r.collection, bson.M{})
}

func (r *testimonialRepository) ApplyOrder(ctx context.Context, ids []primitive.ObjectID) error {
	return applyOrder(ctx, r.collection, ids)
}
