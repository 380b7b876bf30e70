package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Shared ordered-collection plumbing for the content collections. A
// scope filter of bson.M{} means the collection is globally ordered.

func maxOrderIn(ctx context.Context, coll *mongo.Collection, scope bson.M) (int, bool, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "order", Value: -1}}).
		SetProjection(bson.M{"order": 1})
	var doc struct {
		Order int `bson:"order"`
	}
	err := coll.FindOne(ctx, scope, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return doc.Order, true, nil
}

func countInScope(ctx context.Context, coll *mongo.Collection, scope bson.M, ids []primitive.ObjectID) (int64, error) {
	filter := bson.M{"_id": bson.M{"$in": ids}}
	for k, v := range scope {
		filter[k] = v
	}
	return coll.CountDocuments(ctx, filter)
}

// applyOrder ranks each id by its position in the slice. The batch goes
// out as one BulkWrite; Mongo applies the ops without a multi-document
// transaction, so a crash mid-batch can leave a scope partially
// reordered (stale but distinct orders), which callers repair by
// submitting the list again.
func applyOrder(ctx context.Context, coll *mongo.Collection, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	ops := make([]mongo.WriteModel, 0, len(ids))
	for index, id := range ids {
		ops = append(ops, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": id}).
			SetUpdate(bson.M{"$set": bson.M{"order": index}}))
	}
	_, err := coll.BulkWrite(ctx, ops)
	return err
}
