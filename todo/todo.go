// Package todo implements the persistence and reconciliation layer for a
// day-oriented todo tracker.
//
// Two parallel stores exist: a TodoStore and a ListStore. Each is a
// lazily-loaded, debounced-write, in-memory cache backed by a single key in
// a kv.Medium. Reads come from the cache once loaded; mutations update the
// cache synchronously and schedule a coalesced write of the full cache
// contents after a quiet period.
//
// Soft-deleted entities stay in the cache and the durable medium so they can
// be restored; they are filtered from listing reads only.
package todo

import "time"

// Todo represents a single task.
type Todo struct {
	// ID is a unique identifier, immutable once created.
	ID string `json:"id"`

	// Title is the short display text of the todo.
	Title string `json:"title"`

	// Notes provides additional context, rendered as markdown by the CLI.
	Notes string `json:"notes"`

	// CreatedAt is when the todo was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the todo was last modified (nil before the first
	// mutation).
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`

	// ScheduledFor is the instant whose calendar day buckets the todo.
	ScheduledFor time.Time `json:"scheduledFor"`

	// CompletedAt is when the todo was completed (nil when incomplete).
	// Completion is this timestamp, not a boolean.
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	// Deleted marks the todo soft-deleted. Deleted todos are hidden from
	// GetTodos but remain in the store until hard-deleted.
	Deleted bool `json:"deleted"`

	// LongTerm excludes the todo from day bucketing and places it in the
	// undated backlog.
	LongTerm bool `json:"longTerm"`

	// ListID references the TodoList the todo belongs to, if any.
	ListID string `json:"listId,omitempty"`

	// SortOrder is the explicit manual position within a day or list;
	// lower sorts first. Nil means no manual position.
	SortOrder *int `json:"sortOrder,omitempty"`
}

// Completed reports whether the todo has a completion timestamp.
func (t Todo) Completed() bool {
	return t.CompletedAt != nil
}

// TodoList represents a user-defined list of todos.
type TodoList struct {
	// ID is a unique identifier.
	ID string `json:"id"`

	// Name is the display name of the list.
	Name string `json:"name"`

	// Color is an opaque display color token.
	Color string `json:"color,omitempty"`

	// CreatedAt is when the list was created; lists sort by creation order.
	CreatedAt time.Time `json:"createdAt"`

	// Deleted marks the list soft-deleted.
	Deleted bool `json:"deleted"`
}
