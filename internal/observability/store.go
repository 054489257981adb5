package observability

import (
	"context"
	"errors"
	"time"

	"coaching-backend/internal/db"
)

// InstrumentedStore records latency and errors of every DocumentStore call.
// A missing document is not counted as an error.
type InstrumentedStore struct {
	next db.DocumentStore
	prom *Prom
}

// InstrumentStore wraps next.
func InstrumentStore(next db.DocumentStore, prom *Prom) *InstrumentedStore {
	return &InstrumentedStore{next: next, prom: prom}
}

func (s *InstrumentedStore) observe(collection, op string, start time.Time, err error) {
	status := "ok"
	switch {
	case err == nil:
	case errors.Is(err, db.ErrNotFound):
		status = "not_found"
	default:
		status = "error"
		s.prom.StoreErrors.WithLabelValues(collection, op).Inc()
	}
	s.prom.StoreOpDuration.WithLabelValues(collection, op, status).Observe(time.Since(start).Seconds())
}

func (s *InstrumentedStore) Get(ctx context.Context, collection, id string) (data map[string]interface{}, err error) {
	defer func(start time.Time) { s.observe(collection, "get", start, err) }(time.Now())
	return s.next.Get(ctx, collection, id)
}

func (s *InstrumentedStore) Set(ctx context.Context, collection, id string, data map[string]interface{}) (err error) {
	defer func(start time.Time) { s.observe(collection, "set", start, err) }(time.Now())
	return s.next.Set(ctx, collection, id, data)
}

func (s *InstrumentedStore) Merge(ctx context.Context, collection, id string, data map[string]interface{}) (err error) {
	defer func(start time.Time) { s.observe(collection, "merge", start, err) }(time.Now())
	return s.next.Merge(ctx, collection, id, data)
}

func (s *InstrumentedStore) Add(ctx context.Context, collection string, data map[string]interface{}) (id string, err error) {
	defer func(start time.Time) { s.observe(collection, "add", start, err) }(time.Now())
	return s.next.Add(ctx, collection, data)
}

func (s *InstrumentedStore) Delete(ctx context.Context, collection, id string) (err error) {
	defer func(start time.Time) { s.observe(collection, "delete", start, err) }(time.Now())
	return s.next.Delete(ctx, collection, id)
}

func (s *InstrumentedStore) Query(ctx context.Context, collection string, q db.Query) (docs []db.Document, err error) {
	defer func(start time.Time) { s.observe(collection, "query", start, err) }(time.Now())
	return s.next.Query(ctx, collection, q)
}
