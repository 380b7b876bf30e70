package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"event-crm/pkg/apperrors"
)

// OrderedStore is the slice of a content repository the ordering logic
// needs. Scope is the grouping boundary (a category for services and
// about items, ignored for globally ordered collections).
type OrderedStore interface {
	CountInScope(ctx context.Context, scope string, ids []primitive.ObjectID) (int64, error)
	MaxOrder(ctx context.Context, scope string) (int, bool, error)
	ApplyOrder(ctx context.Context, ids []primitive.ObjectID) error
}

// ReorderScope ranks every submitted id by its position in the list.
// The submitted list is authoritative for the scope: unknown ids,
// duplicates, or an empty list reject the whole request and nothing is
// applied.
func ReorderScope(ctx context.Context, store OrderedStore, scope string, rawIDs []string) error {
	if len(rawIDs) == 0 {
		return apperrors.ValidationField("ids", "at least one item id is required")
	}

	ids := make([]primitive.ObjectID, 0, len(rawIDs))
	seen := make(map[primitive.ObjectID]struct{}, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return apperrors.ValidationField("ids", "invalid item id: "+raw)
		}
		if _, dup := seen[id]; dup {
			return apperrors.ValidationField("ids", "duplicate item id: "+raw)
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	count, err := store.CountInScope(ctx, scope, ids)
	if err != nil {
		return apperrors.Internal(err)
	}
	if count != int64(len(ids)) {
		return apperrors.ValidationField("ids", "one or more items not found")
	}

	if err := store.ApplyOrder(ctx, ids); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// NextOrder resolves the order of a new item: an explicit value is
// honored as-is (including 0), nil appends after the current maximum in
// the scope.
func NextOrder(ctx context.Context, store OrderedStore, scope string, explicit *int) (int, error) {
	if explicit != nil {
		if *explicit < 0 {
			return 0, apperrors.ValidationField("order", "cannot be negative")
		}
		return *explicit, nil
	}

	max, found, err := store.MaxOrder(ctx, scope)
	if err != nil {
		return 0, apperrors.Internal(err)
	}
	if !found {
		return 0, nil
	}
	return max + 1, nil
}
