package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Collection names.
const (
	UsersCollection          = "users"
	GoalsCollection          = "goals"
	JournalEntriesCollection = "journal_entries"
	EventsCollection         = "events"
	TestimonialsCollection   = "testimonials"
	SubscriptionsCollection  = "subscriptions"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Query operators understood by every DocumentStore.
const (
	OpEqual            = "=="
	OpArrayContainsAny = "array-contains-any"
)

// Filter is a single where-clause.
type Filter struct {
	Path  string
	Op    string
	Value interface{}
}

// Query narrows a collection listing. The zero value lists everything.
type Query struct {
	Filters []Filter
	OrderBy string // ascending
	Limit   int
}

// Document is one stored document with its id.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// DataTo decodes the document into out using firestore struct tags.
func (d Document) DataTo(out interface{}) error {
	return Decode(d.Data, out)
}

// DocumentStore is the fetch-one / merge-write-one surface every repository
// is built on. Writes are last-write-wins: there is no version check.
type DocumentStore interface {
	// Get returns the document data or ErrNotFound.
	Get(ctx context.Context, collection, docID string) (map[string]interface{}, error)
	// Set overwrites the whole document.
	Set(ctx context.Context, collection, docID string, data map[string]interface{}) error
	// Merge overwrites only the fields present in data. Nested maps merge
	// key by key; arrays and scalars replace the stored value.
	Merge(ctx context.Context, collection, docID string, data map[string]interface{}) error
	// Add creates a document with a generated id.
	Add(ctx context.Context, collection string, data map[string]interface{}) (string, error)
	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, docID string) error
	// Query lists documents of a collection.
	Query(ctx context.Context, collection string, q Query) ([]Document, error)
}

// Decode converts raw document data into a tagged struct. Values produced
// by either the Firestore client or the in-memory store are accepted.
func Decode(data map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "firestore",
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc("2006-01-02T15:04:05Z07:00"),
		),
	})
	if err != nil {
		return fmt.Errorf("build decoder: %w", err)
	}
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}
