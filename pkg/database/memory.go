package database

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryStore is an in-process Store backed by marshalled documents. It backs
// the service tests and exercises the same bson round trip the mongo
// implementation does, so tag mistakes surface without a running deployment.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: map[string]map[string][]byte{}}
}

func (s *MemoryStore) Find(ctx context.Context, collection string, q Query, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches, err := s.match(collection, q)
	if err != nil {
		return err
	}

	if q.Sort != "" {
		sortDocs(matches, q.Sort)
	}
	matches = window(matches, q.Offset, q.Limit)

	return decodeAll(matches, out)
}

func (s *MemoryStore) FindOne(ctx context.Context, collection string, q Query, out any) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches, err := s.match(collection, q)
	if err != nil {
		return false, err
	}
	if len(matches) == 0 {
		return false, nil
	}
	if err := bson.Unmarshal(matches[0].raw, out); err != nil {
		return false, errors.WithStack(err)
	}
	return true, nil
}

func (s *MemoryStore) Insert(ctx context.Context, collection string, record any) (string, error) {
	raw, err := bson.Marshal(record)
	if err != nil {
		return "", errors.WithStack(err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return "", errors.WithStack(err)
	}
	id, _ := doc["_id"].(string)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.docs[collection] == nil {
		s.docs[collection] = map[string][]byte{}
	}
	s.docs[collection][id] = raw
	return id, nil
}

func (s *MemoryStore) Update(ctx context.Context, collection string, id string, fields any) (bool, error) {
	raw, err := bson.Marshal(fields)
	if err != nil {
		return false, errors.WithStack(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.docs[collection][id]
	if !ok {
		return false, nil
	}

	var doc, updates bson.M
	if err := bson.Unmarshal(existing, &doc); err != nil {
		return false, errors.WithStack(err)
	}
	if err := bson.Unmarshal(raw, &updates); err != nil {
		return false, errors.WithStack(err)
	}
	for k, v := range updates {
		doc[k] = v
	}

	merged, err := bson.Marshal(doc)
	if err != nil {
		return false, errors.WithStack(err)
	}
	s.docs[collection][id] = merged
	return true, nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection string, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[collection][id]; !ok {
		return false, nil
	}
	delete(s.docs[collection], id)
	return true, nil
}

type memoryDoc struct {
	raw []byte
	doc bson.M
}

func (s *MemoryStore) match(collection string, q Query) ([]memoryDoc, error) {
	var matches []memoryDoc
	for _, raw := range s.docs[collection] {
		var doc bson.M
		if err := bson.Unmarshal(raw, &doc); err != nil {
			return nil, errors.WithStack(err)
		}
		if matchesQuery(doc, q) {
			matches = append(matches, memoryDoc{raw: raw, doc: doc})
		}
	}
	return matches, nil
}

func matchesQuery(doc bson.M, q Query) bool {
	for field, want := range q.Exact {
		if !looseEqual(doc[field], want) {
			return false
		}
	}
	for field, want := range q.Substring {
		got, ok := doc[field].(string)
		if !ok || !strings.Contains(strings.ToLower(got), strings.ToLower(want)) {
			return false
		}
	}
	for field, want := range q.Prefix {
		got, ok := doc[field].(string)
		if !ok || !strings.HasPrefix(strings.ToLower(got), strings.ToLower(want)) {
			return false
		}
	}
	return true
}

// looseEqual compares a decoded document value against a caller-supplied
// query value by pushing both through the same bson representation.
func looseEqual(got, want any) bool {
	return reflect.DeepEqual(normalizeValue(got), normalizeValue(want))
}

func normalizeValue(v any) any {
	raw, err := bson.Marshal(bson.D{{Key: "v", Value: v}})
	if err != nil {
		return v
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return v
	}
	return m["v"]
}

func sortDocs(docs []memoryDoc, field string) {
	sort.SliceStable(docs, func(i, j int) bool {
		return lessValue(docs[i].doc[field], docs[j].doc[field])
	})
}

func lessValue(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av < bv
	case bson.DateTime:
		bv, ok := b.(bson.DateTime)
		return ok && av < bv
	case int32:
		bv, ok := b.(int32)
		return ok && av < bv
	case int64:
		bv, ok := b.(int64)
		return ok && av < bv
	case float64:
		bv, ok := b.(float64)
		return ok && av < bv
	}
	return false
}

func window(docs []memoryDoc, offset, limit int) []memoryDoc {
	if offset > 0 {
		if offset >= len(docs) {
			return nil
		}
		docs = docs[offset:]
	}
	if limit > 0 && limit < len(docs) {
		docs = docs[:limit]
	}
	return docs
}

func decodeAll(docs []memoryDoc, out any) error {
	slice := reflect.ValueOf(out).Elem()
	elemType := slice.Type().Elem()

	result := reflect.MakeSlice(slice.Type(), 0, len(docs))
	for _, d := range docs {
		if elemType.Kind() == reflect.Ptr {
			elem := reflect.New(elemType.Elem())
			if err := bson.Unmarshal(d.raw, elem.Interface()); err != nil {
				return errors.WithStack(err)
			}
			result = reflect.Append(result, elem)
			continue
		}
		elem := reflect.New(elemType)
		if err := bson.Unmarshal(d.raw, elem.Interface()); err != nil {
			return errors.WithStack(err)
		}
		result = reflect.Append(result, elem.Elem())
	}
	slice.Set(result)
	return nil
}
