package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/yata-app/yata/todo"
)

// resolveTodoID resolves a user-supplied ID or unique ID prefix to a todo.
// Exact IDs match even soft-deleted todos. Prefix matching only considers
// visible todos, so restoring a soft-deleted todo needs its full ID.
func resolveTodoID(ctx context.Context, store *todo.TodoStore, arg string) (todo.Todo, error) {
	if t, ok := store.GetTodo(ctx, arg); ok {
		return t, nil
	}

	var matches []todo.Todo
	needle := strings.ToLower(arg)
	for _, t := range store.GetTodos(ctx) {
		if strings.HasPrefix(strings.ToLower(t.ID), needle) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return todo.Todo{}, fmt.Errorf("no todo matches %q", arg)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, t := range matches {
			ids[i] = t.ID
		}
		return todo.Todo{}, fmt.Errorf("%q is ambiguous: matches %s", arg, strings.Join(ids, ", "))
	}
}

// resolveListID resolves an ID, unique ID prefix, or exact name to a list.
func resolveListID(ctx context.Context, store *todo.ListStore, arg string) (todo.TodoList, error) {
	if l, ok := store.GetList(ctx, arg); ok {
		return l, nil
	}

	var matches []todo.TodoList
	needle := strings.ToLower(arg)
	for _, l := range store.GetLists(ctx) {
		if strings.EqualFold(l.Name, arg) {
			return l, nil
		}
		if strings.HasPrefix(strings.ToLower(l.ID), needle) {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return todo.TodoList{}, fmt.Errorf("no list matches %q", arg)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, l := range matches {
			ids[i] = l.ID
		}
		return todo.TodoList{}, fmt.Errorf("%q is ambiguous: matches %s", arg, strings.Join(ids, ", "))
	}
}
