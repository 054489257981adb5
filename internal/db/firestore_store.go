package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore implements DocumentStore on a Firestore client.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore wraps an initialized Firestore client.
func NewFirestoreStore(client *firestore.Client) (*FirestoreStore, error) {
	if client == nil {
		return nil, errors.New("firestore client is not initialized")
	}
	return &FirestoreStore{client: client}, nil
}

// Get retrieves a document from a Firestore collection.
func (s *FirestoreStore) Get(ctx context.Context, collection, docID string) (map[string]interface{}, error) {
	if docID == "" {
		return nil, fmt.Errorf("document id cannot be empty for %s", collection)
	}
	snap, err := s.client.Collection(collection).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%s/%s: %w", collection, docID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s/%s: %w", collection, docID, err)
	}
	return snap.Data(), nil
}

// Set overwrites a document.
func (s *FirestoreStore) Set(ctx context.Context, collection, docID string, data map[string]interface{}) error {
	if docID == "" {
		return fmt.Errorf("document id cannot be empty for %s", collection)
	}
	if _, err := s.client.Collection(collection).Doc(docID).Set(ctx, data); err != nil {
		return fmt.Errorf("failed to set %s/%s: %w", collection, docID, err)
	}
	return nil
}

// Merge writes data with firestore.MergeAll, creating the document if needed.
func (s *FirestoreStore) Merge(ctx context.Context, collection, docID string, data map[string]interface{}) error {
	if docID == "" {
		return fmt.Errorf("document id cannot be empty for %s", collection)
	}
	if _, err := s.client.Collection(collection).Doc(docID).Set(ctx, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to merge %s/%s: %w", collection, docID, err)
	}
	return nil
}

// Add creates a document with an auto-generated id.
func (s *FirestoreStore) Add(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("failed to add to %s: %w", collection, err)
	}
	return ref.ID, nil
}

// Delete removes a document.
func (s *FirestoreStore) Delete(ctx context.Context, collection, docID string) error {
	if _, err := s.client.Collection(collection).Doc(docID).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return fmt.Errorf("failed to delete %s/%s: %w", collection, docID, err)
	}
	return nil
}

// Query lists documents matching q.
func (s *FirestoreStore) Query(ctx context.Context, collection string, q Query) ([]Document, error) {
	query := s.client.Collection(collection).Query
	for _, f := range q.Filters {
		query = query.Where(f.Path, f.Op, f.Value)
	}
	if q.OrderBy != "" {
		query = query.OrderBy(q.OrderBy, firestore.Asc)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var docs []Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate %s: %w", collection, err)
		}
		docs = append(docs, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}
