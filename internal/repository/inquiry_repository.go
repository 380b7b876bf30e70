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

// InquiryFilter narrows and paginates inquiry listings.
type InquiryFilter struct {
	Status    string
	EventType string
	Search    string
	Page      int64
	Limit     int64
}

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Inquiry, error)
	Update(ctx context.Context, inquiry *models.Inquiry) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Find(ctx context.Context, filter InquiryFilter) ([]models.Inquiry, int64, error)
	Recent(ctx context.Context, limit int64) ([]models.Inquiry, error)
	AddCommunication(ctx context.Context, id primitive.ObjectID, comm models.Communication, actor string, now time.Time) (*models.Inquiry, error)
	BeginConversion(ctx context.Context, id primitive.ObjectID, actor string, now time.Time) (bool, error)
	CompleteConversion(ctx context.Context, id primitive.ObjectID, clientID, eventID *primitive.ObjectID) (*models.Inquiry, error)
	RevertConversion(ctx context.Context, id primitive.ObjectID, previous models.InquiryStatus) error
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.InquiryStatus) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

type inquiryRepository struct {
	collection *mongo.Collection
}

func NewInquiryRepository(db *mongo.Database) InquiryRepository {
	return &inquiryRepository{collection: db.Collection("inquiries")}
}

// EnsureInquiryIndexes creates the lookup and text-search indexes the
// listing queries rely on.
func EnsureInquiryIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("inquiries").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "event_type", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "assigned_to", Value: 1}}},
		{Keys: bson.D{{Key: "next_follow_up_date", Value: 1}}},
		{Keys: bson.D{
			{Key: "full_name", Value: "text"},
			{Key: "email", Value: "text"},
			{Key: "message", Value: "text"},
			{Key: "notes", Value: "text"},
		}},
	})
	return err
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	inquiry.ID = primitive.NewObjectID()
	inquiry.CreatedAt = time.Now()
	inquiry.UpdatedAt = inquiry.CreatedAt
	_, err := r.collection.InsertOne(ctx, inquiry)
	return err
}

func (r *inquiryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&inquiry)
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

// Update replaces the whole document. Callers save a fully loaded
// record, and a replace drops the keys that omitempty leaves out of the
// marshaled struct, so clearing an optional field (assignee, follow-up
// date, notes, tags) actually removes it instead of keeping the old
// value behind a partial $set.
func (r *inquiryRepository) Update(ctx context.Context, inquiry *models.Inquiry) error {
	inquiry.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": inquiry.ID}, inquiry)
	return err
}

func (r *inquiryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *inquiryRepository) Find(ctx context.Context, filter InquiryFilter) ([]models.Inquiry, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.EventType != "" {
		query["event_type"] = filter.EventType
	}
	if filter.Search != "" {
		query["$text"] = bson.M{"$search": filter.Search}
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	var inquiries []models.Inquiry
	if err := cursor.All(ctx, &inquiries); err != nil {
		return nil, 0, err
	}
	return inquiries, total, nil
}

func (r *inquiryRepository) Recent(ctx context.Context, limit int64) ([]models.Inquiry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var inquiries []models.Inquiry
	err = cursor.All(ctx, &inquiries)
	return inquiries, err
}

func (r *inquiryRepository) AddCommunication(ctx context.Context, id primitive.ObjectID, comm models.Communication, actor string, now time.Time) (*models.Inquiry, error) {
	update := bson.M{
		"$push": bson.M{"communications": comm},
		"$inc":  bson.M{"follow_up_count": 1},
		"$set": bson.M{
			"last_contact_date": now,
			"updated_by":        actor,
			"updated_at":        now,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Inquiry
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// BeginConversion atomically flips the status to converted, but only if
// the inquiry is not converted yet. The returned bool reports whether
// this caller won the flip; a false result on an existing document means
// another conversion already happened.
func (r *inquiryRepository) BeginConversion(ctx context.Context, id primitive.ObjectID, actor string, now time.Time) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$ne": models.InquiryConverted}},
		bson.M{"$set": bson.M{
			"status":          models.InquiryConverted,
			"conversion_date": now,
			"updated_by":      actor,
			"updated_at":      now,
		}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *inquiryRepository) CompleteConversion(ctx context.Context, id primitive.ObjectID, clientID, eventID *primitive.ObjectID) (*models.Inquiry, error) {
	set := bson.M{"updated_at": time.Now()}
	if clientID != nil {
		set["converted_to_client"] = *clientID
	}
	if eventID != nil {
		set["converted_to_event"] = *eventID
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Inquiry
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RevertConversion is the best-effort rollback used when entity creation
// fails after the status flip already happened.
func (r *inquiryRepository) RevertConversion(ctx context.Context, id primitive.ObjectID, previous models.InquiryStatus) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{
		"$set":   bson.M{"status": previous, "updated_at": time.Now()},
		"$unset": bson.M{"conversion_date": ""},
	})
	return err
}

func (r *inquiryRepository) CountAll(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *inquiryRepository) CountByStatus(ctx context.Context, status models.InquiryStatus) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}

func (r *inquiryRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": since}})
}
