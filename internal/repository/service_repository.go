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

type ServiceRepository interface {
	Create(ctx context.Context, service *models.Service) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Service, error)
	Update(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Find(ctx context.Context, category string, includeInactive bool) ([]models.Service, error)
	DistinctCategories(ctx context.Context) ([]string, error)

	// Ordered-collection verbs, scoped by category.
	CountInScope(ctx context.Context, scope string, ids []primitive.ObjectID) (int64, error)
	MaxOrder(ctx context.Context, scope string) (int, bool, error)
	ApplyOrder(ctx context.Context, ids []primitive.ObjectID) error
}

type serviceRepository struct {
	collection *mongo.Collection
}

func NewServiceRepository(db *mongo.Database) ServiceRepository {
	return &serviceRepository{collection: db.Collection("services")}
}

func (r *serviceRepository) Create(ctx context.Context, service *models.Service) error {
	service.ID = primitive.NewObjectID()
	service.CreatedAt = time.Now()
	service.UpdatedAt = service.CreatedAt
	_, err := r.collection.InsertOne(ctx, service)
	return err
}

func (r *serviceRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Service, error) {
	var service models.Service
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&service)
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) Update(ctx context.Context, service *models.Service) error {
	service.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": service.ID}, service)
	return err
}

func (r *serviceRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *serviceRepository) Find(ctx context.Context, category string, includeInactive bool) ([]models.Service, error) {
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
	var services []models.Service
	err = cursor.All(ctx, &services)
	return services, err
}

func (r *serviceRepository) DistinctCategories(ctx context.Context) ([]string, error) {
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

func (r *serviceRepository) CountInScope(ctx context.Context, scope string, ids []primitive.ObjectID) (int64, error) {
	return countInScope(ctx, r.collection, bson.M{"category": scope}, ids)
}

func (r *serviceRepository) MaxOrder(ctx context.Context, scope string) (int, bool, error) {
	return maxOrderIn(ctx, r.collection, bson.M{"category": scope})
}

func (r *serviceRepository) ApplyOrder(ctx context.Context, ids []primitive.ObjectID) error {
	return applyOrder(ctx, r.collection, ids)
}
