package todo

import (
	"context"
	"encoding/json"
	"time"
)

// TodoStore is the facade over the cached todo collection. The intended
// deployment is one instance per process; two instances over the same
// medium would each hold an independent cache and race on TodosKey.
type TodoStore struct {
	cache *cache[Todo]
}

// NewTodoStore creates a todo store over the given medium. Nothing is read
// until the first operation.
func NewTodoStore(opts Options) *TodoStore {
	return &TodoStore{cache: newCache(TodosKey, opts, hooks[Todo]{
		id:      func(t Todo) string { return t.ID },
		deleted: func(t Todo) bool { return t.Deleted },
		setDeleted: func(t Todo, deleted bool) Todo {
			t.Deleted = deleted
			return t
		},
		sortKey: func(t Todo) time.Time { return t.ScheduledFor },
		encode: func(t Todo) (json.RawMessage, error) {
			return json.Marshal(encodeTodo(t))
		},
		decode: func(raw json.RawMessage) (Todo, error) {
			storable, err := decodeStorable[storableTodo](todoSchema, raw)
			if err != nil {
				return Todo{}, err
			}
			return decodeTodo(storable)
		},
	})}
}

// GetTodos returns all non-deleted todos sorted ascending by ScheduledFor.
// A failed or unreadable load degrades to an empty result; it never errors.
func (s *TodoStore) GetTodos(ctx context.Context) []Todo {
	return s.cache.getAll(ctx)
}

// GetTodo returns the todo by id regardless of its Deleted flag; callers
// that want visibility semantics should use GetTodos. Edit and
// toggle-complete flows rely on finding soft-deleted records here before
// re-upserting them.
func (s *TodoStore) GetTodo(ctx context.Context, id string) (Todo, bool) {
	return s.cache.getOne(ctx, id)
}

// Upsert inserts or fully replaces the todo by id and schedules a
// debounced persist. The todo is visible to reads as soon as Upsert
// returns.
func (s *TodoStore) Upsert(ctx context.Context, t Todo) {
	s.cache.upsert(ctx, t)
}

// SoftDelete hides the todo from GetTodos while keeping it stored. Unknown
// ids are a no-op.
func (s *TodoStore) SoftDelete(ctx context.Context, id string) {
	s.cache.softDelete(ctx, id)
}

// HardDelete permanently removes the todo. Unknown ids are a no-op.
func (s *TodoStore) HardDelete(ctx context.Context, id string) {
	s.cache.hardDelete(ctx, id)
}

// Restore brings back a soft-deleted todo, otherwise unchanged. Unknown or
// non-deleted ids are a no-op.
func (s *TodoStore) Restore(ctx context.Context, id string) {
	s.cache.restore(ctx, id)
}

// Clear empties the cache and deletes the durable key immediately.
func (s *TodoStore) Clear(ctx context.Context) error {
	return s.cache.clear(ctx)
}

// Flush persists any pending mutations now instead of waiting for the
// debounce window.
func (s *TodoStore) Flush(ctx context.Context) error {
	return s.cache.flush(ctx)
}

// Close flushes pending mutations. Call before process exit; mutations
// still inside the debounce window would otherwise be lost.
func (s *TodoStore) Close() error {
	return s.cache.flush(context.Background())
}
