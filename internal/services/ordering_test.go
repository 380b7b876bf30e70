package services

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"event-crm/pkg/apperrors"
)

// fakeOrderedStore holds ids in a scope and records the order applied.
type fakeOrderedStore struct {
	inScope map[primitive.ObjectID]bool
	max     int
	hasMax  bool
	applied []primitive.ObjectID
}

func (f *fakeOrderedStore) CountInScope(_ context.Context, _ string, ids []primitive.ObjectID) (int64, error) {
	var n int64
	for _, id := range ids {
		if f.inScope[id] {
			n++
		}
	}
	return n, nil
}

func (f *fakeOrderedStore) MaxOrder(_ context.Context, _ string) (int, bool, error) {
	return f.max, f.hasMax, nil
}

func (f *fakeOrderedStore) ApplyOrder(_ context.Context, ids []primitive.ObjectID) error {
	f.applied = ids
	return nil
}

func newFakeStore(ids ...primitive.ObjectID) *fakeOrderedStore {
	inScope := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		inScope[id] = true
	}
	return &fakeOrderedStore{inScope: inScope}
}

func TestReorderScope(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()
	store := newFakeStore(a, b, c)

	err := ReorderScope(context.Background(), store, "WEDDINGS", []string{c.Hex(), a.Hex(), b.Hex()})
	if err != nil {
		t.Fatalf("ReorderScope returned %v", err)
	}

	if len(store.applied) != 3 {
		t.Fatalf("applied %d ids, want 3", len(store.applied))
	}
	want := []primitive.ObjectID{c, a, b}
	for i, id := range want {
		if store.applied[i] != id {
			t.Errorf("applied[%d] = %s, want %s", i, store.applied[i].Hex(), id.Hex())
		}
	}
}

func TestReorderScope_EmptyList(t *testing.T) {
	store := newFakeStore()

	err := ReorderScope(context.Background(), store, "", nil)
	if !apperrors.IsValidation(err) {
		t.Errorf("ReorderScope(empty) = %v, want validation error", err)
	}
	if store.applied != nil {
		t.Error("ApplyOrder was called for an empty list")
	}
}

func TestReorderScope_InvalidID(t *testing.T) {
	store := newFakeStore()

	err := ReorderScope(context.Background(), store, "", []string{"not-a-hex-id"})
	if !apperrors.IsValidation(err) {
		t.Errorf("ReorderScope(invalid id) = %v, want validation error", err)
	}
}

func TestReorderScope_DuplicateID(t *testing.T) {
	a := primitive.NewObjectID()
	store := newFakeStore(a)

	err := ReorderScope(context.Background(), store, "", []string{a.Hex(), a.Hex()})
	if !apperrors.IsValidation(err) {
		t.Errorf("ReorderScope(duplicate) = %v, want validation error", err)
	}
	if store.applied != nil {
		t.Error("ApplyOrder was called despite duplicate ids")
	}
}

func TestReorderScope_UnknownID(t *testing.T) {
	a := primitive.NewObjectID()
	store := newFakeStore(a)

	err := ReorderScope(context.Background(), store, "", []string{a.Hex(), primitive.NewObjectID().Hex()})
	if !apperrors.IsValidation(err) {
		t.Errorf("ReorderScope(unknown id) = %v, want validation error", err)
	}
	if store.applied != nil {
		t.Error("ApplyOrder was called despite unknown ids")
	}
}

func TestNextOrder_Append(t *testing.T) {
	store := newFakeStore()
	store.max = 5
	store.hasMax = true

	got, err := NextOrder(context.Background(), store, "", nil)
	if err != nil {
		t.Fatalf("NextOrder returned %v", err)
	}
	if got != 6 {
		t.Errorf("NextOrder = %d, want 6", got)
	}
}

func TestNextOrder_EmptyScope(t *testing.T) {
	store := newFakeStore()

	got, err := NextOrder(context.Background(), store, "", nil)
	if err != nil {
		t.Fatalf("NextOrder returned %v", err)
	}
	if got != 0 {
		t.Errorf("NextOrder = %d, want 0", got)
	}
}

func TestNextOrder_ExplicitZero(t *testing.T) {
	store := newFakeStore()
	store.max = 9
	store.hasMax = true

	zero := 0
	got, err := NextOrder(context.Background(), store, "", &zero)
	if err != nil {
		t.Fatalf("NextOrder returned %v", err)
	}
	if got != 0 {
		t.Errorf("NextOrder(explicit 0) = %d, want 0", got)
	}
}

func TestNextOrder_Negative(t *testing.T) {
	store := newFakeStore()

	neg := -1
	_, err := NextOrder(context.Background(), store, "", &neg)
	if !apperrors.IsValidation(err) {
		t.Errorf("NextOrder(-1) = %v, want validation error", err)
	}
}
