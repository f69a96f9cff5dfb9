package todo

import (
	"context"
	"encoding/json"
	"time"
)

// ListStore is the facade over the cached list collection. It mirrors
// TodoStore's shape; only the entity type and the natural sort key differ.
type ListStore struct {
	cache *cache[TodoList]
}

// NewListStore creates a list store over the given medium.
func NewListStore(opts Options) *ListStore {
	return &ListStore{cache: newCache(ListsKey, opts, hooks[TodoList]{
		id:      func(l TodoList) string { return l.ID },
		deleted: func(l TodoList) bool { return l.Deleted },
		setDeleted: func(l TodoList, deleted bool) TodoList {
			l.Deleted = deleted
			return l
		},
		sortKey: func(l TodoList) time.Time { return l.CreatedAt },
		encode: func(l TodoList) (json.RawMessage, error) {
			return json.Marshal(encodeList(l))
		},
		decode: func(raw json.RawMessage) (TodoList, error) {
			storable, err := decodeStorable[storableList](listSchema, raw)
			if err != nil {
				return TodoList{}, err
			}
			return decodeList(storable)
		},
	})}
}

// GetLists returns all non-deleted lists sorted by creation order.
func (s *ListStore) GetLists(ctx context.Context) []TodoList {
	return s.cache.getAll(ctx)
}

// GetList returns the list by id regardless of its Deleted flag.
func (s *ListStore) GetList(ctx context.Context, id string) (TodoList, bool) {
	return s.cache.getOne(ctx, id)
}

// Upsert inserts or fully replaces the list by id and schedules a
// debounced persist.
func (s *ListStore) Upsert(ctx context.Context, l TodoList) {
	s.cache.upsert(ctx, l)
}

// SoftDelete hides the list from GetLists while keeping it stored.
func (s *ListStore) SoftDelete(ctx context.Context, id string) {
	s.cache.softDelete(ctx, id)
}

// HardDelete permanently removes the list.
func (s *ListStore) HardDelete(ctx context.Context, id string) {
	s.cache.hardDelete(ctx, id)
}

// Clear empties the cache and deletes the durable key immediately.
func (s *ListStore) Clear(ctx context.Context) error {
	return s.cache.clear(ctx)
}

// Flush persists any pending mutations now.
func (s *ListStore) Flush(ctx context.Context) error {
	return s.cache.flush(ctx)
}

// Close flushes pending mutations.
func (s *ListStore) Close() error {
	return s.cache.flush(context.Background())
}
