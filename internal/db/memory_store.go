package db

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process DocumentStore used for local development and
// tests. It applies the same merge rules as Firestore's MergeAll.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]interface{}
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]map[string]interface{})}
}

func (s *MemoryStore) Get(_ context.Context, collection, docID string) (map[string]interface{}, error) {
	if docID == "" {
		return nil, fmt.Errorf("document id cannot be empty for %s", collection)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.collections[collection][docID]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", collection, docID, ErrNotFound)
	}
	return cloneMap(doc), nil
}

func (s *MemoryStore) Set(_ context.Context, collection, docID string, data map[string]interface{}) error {
	if docID == "" {
		return fmt.Errorf("document id cannot be empty for %s", collection)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coll(collection)[docID] = cloneMap(data)
	return nil
}

func (s *MemoryStore) Merge(_ context.Context, collection, docID string, data map[string]interface{}) error {
	if docID == "" {
		return fmt.Errorf("document id cannot be empty for %s", collection)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	coll := s.coll(collection)
	existing, ok := coll[docID]
	if !ok {
		existing = make(map[string]interface{})
		coll[docID] = existing
	}
	mergeInto(existing, data)
	return nil
}

func (s *MemoryStore) Add(_ context.Context, collection string, data map[string]interface{}) (string, error) {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:20]
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coll(collection)[id] = cloneMap(data)
	return id, nil
}

func (s *MemoryStore) Delete(_ context.Context, collection, docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections[collection], docID)
	return nil
}

func (s *MemoryStore) Query(_ context.Context, collection string, q Query) ([]Document, error) {
	for _, f := range q.Filters {
		if f.Op != OpEqual && f.Op != OpArrayContainsAny {
			return nil, fmt.Errorf("memory store: unsupported operator %q", f.Op)
		}
	}

	s.mu.RLock()
	docs := make([]Document, 0, len(s.collections[collection]))
	for id, data := range s.collections[collection] {
		if matches(data, q.Filters) {
			docs = append(docs, Document{ID: id, Data: cloneMap(data)})
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(docs, func(i, j int) bool {
		if q.OrderBy != "" {
			a, b := docs[i].Data[q.OrderBy], docs[j].Data[q.OrderBy]
			if c := compareValues(a, b); c != 0 {
				return c < 0
			}
		}
		return docs[i].ID < docs[j].ID
	})
	if q.Limit > 0 && len(docs) > q.Limit {
		docs = docs[:q.Limit]
	}
	return docs, nil
}

func (s *MemoryStore) coll(name string) map[string]map[string]interface{} {
	c, ok := s.collections[name]
	if !ok {
		c = make(map[string]map[string]interface{})
		s.collections[name] = c
	}
	return c
}

func mergeInto(dst, src map[string]interface{}) {
	for k, v := range src {
		if srcMap, ok := v.(map[string]interface{}); ok {
			if dstMap, ok := dst[k].(map[string]interface{}); ok {
				mergeInto(dstMap, srcMap)
				continue
			}
		}
		dst[k] = cloneValue(v)
	}
}

func matches(data map[string]interface{}, filters []Filter) bool {
	for _, f := range filters {
		field := data[f.Path]
		switch f.Op {
		case OpEqual:
			if compareValues(field, f.Value) != 0 || field == nil {
				return false
			}
		case OpArrayContainsAny:
			if !containsAny(field, f.Value) {
				return false
			}
		}
	}
	return true
}

func containsAny(field, wanted interface{}) bool {
	fv, wv := reflect.ValueOf(field), reflect.ValueOf(wanted)
	if !isList(fv) || !isList(wv) {
		return false
	}
	for i := 0; i < fv.Len(); i++ {
		for j := 0; j < wv.Len(); j++ {
			if compareValues(fv.Index(i).Interface(), wv.Index(j).Interface()) == 0 {
				return true
			}
		}
	}
	return false
}

func isList(v reflect.Value) bool {
	return v.IsValid() && (v.Kind() == reflect.Slice || v.Kind() == reflect.Array)
}

// compareValues orders numbers, strings, booleans and times. Values of
// different kinds compare by their formatted form.
func compareValues(a, b interface{}) int {
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	}
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v interface{}) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return cloneMap(t)
	case []map[string]interface{}:
		out := make([]interface{}, len(t))
		for i, m := range t {
			out[i] = cloneMap(m)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && !rv.IsNil() {
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(out, rv)
		return out.Interface()
	}
	return v
}
