package todo

import (
	"fmt"
	"time"
)

// timestampLayout is the stored timestamp form: ISO-8601 with millisecond
// precision, UTC. Existing snapshots use this exact shape, so encoding
// must not vary in precision or zone.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// storableTodo is the JSON shape of a Todo in the durable medium.
// Timestamps are ISO-8601 strings; optional fields are omitted entirely
// when absent rather than stored as null or empty strings.
type storableTodo struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Notes        string  `json:"notes,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    *string `json:"updatedAt,omitempty"`
	ScheduledFor string  `json:"scheduledFor"`
	CompletedAt  *string `json:"completedAt,omitempty"`
	Deleted      bool    `json:"deleted"`
	LongTerm     bool    `json:"longTerm,omitempty"`
	ListID       string  `json:"listId,omitempty"`
	SortOrder    *int    `json:"sortOrder,omitempty"`
}

// storableList is the JSON shape of a TodoList in the durable medium.
type storableList struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
	CreatedAt string `json:"createdAt"`
	Deleted   bool   `json:"deleted"`
}

func encodeTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Millisecond).Format(timestampLayout)
}

func encodeOptionalTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	encoded := encodeTimestamp(*t)
	return &encoded
}

func decodeTimestamp(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: %s", ErrMissingTimestamp, field)
	}
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q", ErrBadTimestamp, field, value)
	}
	return parsed.UTC(), nil
}

func decodeOptionalTimestamp(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := decodeTimestamp(field, *value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func encodeTodo(t Todo) storableTodo {
	return storableTodo{
		ID:           t.ID,
		Title:        t.Title,
		Notes:        t.Notes,
		CreatedAt:    encodeTimestamp(t.CreatedAt),
		UpdatedAt:    encodeOptionalTimestamp(t.UpdatedAt),
		ScheduledFor: encodeTimestamp(t.ScheduledFor),
		CompletedAt:  encodeOptionalTimestamp(t.CompletedAt),
		Deleted:      t.Deleted,
		LongTerm:     t.LongTerm,
		ListID:       t.ListID,
		SortOrder:    t.SortOrder,
	}
}

func decodeTodo(s storableTodo) (Todo, error) {
	if s.ID == "" {
		return Todo{}, ErrMissingID
	}

	createdAt, err := decodeTimestamp("createdAt", s.CreatedAt)
	if err != nil {
		return Todo{}, err
	}
	scheduledFor, err := decodeTimestamp("scheduledFor", s.ScheduledFor)
	if err != nil {
		return Todo{}, err
	}
	updatedAt, err := decodeOptionalTimestamp("updatedAt", s.UpdatedAt)
	if err != nil {
		return Todo{}, err
	}
	completedAt, err := decodeOptionalTimestamp("completedAt", s.CompletedAt)
	if err != nil {
		return Todo{}, err
	}

	return Todo{
		ID:           s.ID,
		Title:        s.Title,
		Notes:        s.Notes,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
		ScheduledFor: scheduledFor,
		CompletedAt:  completedAt,
		Deleted:      s.Deleted,
		LongTerm:     s.LongTerm,
		ListID:       s.ListID,
		SortOrder:    s.SortOrder,
	}, nil
}

func encodeList(l TodoList) storableList {
	return storableList{
		ID:        l.ID,
		Name:      l.Name,
		Color:     l.Color,
		CreatedAt: encodeTimestamp(l.CreatedAt),
		Deleted:   l.Deleted,
	}
}

func decodeList(s storableList) (TodoList, error) {
	if s.ID == "" {
		return TodoList{}, ErrMissingID
	}

	createdAt, err := decodeTimestamp("createdAt", s.CreatedAt)
	if err != nil {
		return TodoList{}, err
	}

	return TodoList{
		ID:        s.ID,
		Name:      s.Name,
		Color:     s.Color,
		CreatedAt: createdAt,
		Deleted:   s.Deleted,
	}, nil
}
