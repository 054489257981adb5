package db

import (
	"context"
	"errors"
	"fmt"
)

// Record is an array element that knows its stored form.
type Record interface {
	ToFirestore() map[string]interface{}
}

// ListAccessor reads and writes one array field of a per-user document,
// for example goals/{uid}.goals. The array is never addressed per element:
// Save always writes the full slice it is given.
type ListAccessor[T Record] struct {
	store      DocumentStore
	collection string
	field      string
}

// NewListAccessor binds an accessor to collection/{uid}.field.
func NewListAccessor[T Record](store DocumentStore, collection, field string) *ListAccessor[T] {
	return &ListAccessor[T]{store: store, collection: collection, field: field}
}

// Fetch returns the stored array. A missing document or a missing field
// yields an empty, non-nil slice.
func (a *ListAccessor[T]) Fetch(ctx context.Context, userID string) ([]T, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID cannot be empty for %s", a.collection)
	}
	data, err := a.store.Get(ctx, a.collection, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []T{}, nil
		}
		return nil, err
	}

	raw, ok := data[a.field]
	if !ok || raw == nil {
		return []T{}, nil
	}

	var out struct {
		Items []T `firestore:"items"`
	}
	if err := Decode(map[string]interface{}{"items": raw}, &out); err != nil {
		return nil, fmt.Errorf("decode %s/%s.%s: %w", a.collection, userID, a.field, err)
	}
	if out.Items == nil {
		return []T{}, nil
	}
	return out.Items, nil
}

// Save merge-writes the full array. Other fields of the document are left untouched.
func (a *ListAccessor[T]) Save(ctx context.Context, userID string, items []T) error {
	if userID == "" {
		return fmt.Errorf("userID cannot be empty for %s", a.collection)
	}
	encoded := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		encoded = append(encoded, item.ToFirestore())
	}
	if err := a.store.Merge(ctx, a.collection, userID, map[string]interface{}{a.field: encoded}); err != nil {
		return fmt.Errorf("save %s for user '%s': %w", a.field, userID, err)
	}
	return nil
}
