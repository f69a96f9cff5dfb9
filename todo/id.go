package todo

import "github.com/google/uuid"

// NewTodoID returns a fresh unique todo identifier.
func NewTodoID() string {
	return "todo-" + uuid.NewString()
}

// NewListID returns a fresh unique list identifier.
func NewListID() string {
	return "list-" + uuid.NewString()
}
