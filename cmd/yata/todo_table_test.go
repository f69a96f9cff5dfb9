package main

import (
	"strings"
	"testing"
	"time"

	"github.com/yata-app/yata/internal/ui"
	"github.com/yata-app/yata/todo"
)

func tableTodo(id, title string, scheduledFor time.Time) todo.Todo {
	return todo.Todo{
		ID:           id,
		Title:        title,
		CreatedAt:    scheduledFor.Add(-time.Hour),
		ScheduledFor: scheduledFor,
	}
}

func TestFormatTodoTableColumns(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local)
	todos := []todo.Todo{
		tableTodo("todo-aaa", "first", now),
		tableTodo("todo-bbb", "second", now),
	}

	output := ui.StripANSICodes(formatTodoTable(todos, nil, todoIDPrefixLengths(todos), now))

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines:\n%s", len(lines), output)
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "TITLE") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "open") || !strings.Contains(lines[1], "first") {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}

func TestFormatTodoTableMarksOverdueAndDone(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local)
	yesterday := now.AddDate(0, 0, -1)

	overdue := tableTodo("todo-aaa", "late", yesterday)
	done := tableTodo("todo-bbb", "finished", yesterday)
	stamp := now
	done.CompletedAt = &stamp

	output := ui.StripANSICodes(formatTodoTable([]todo.Todo{overdue, done}, nil, nil, now))
	if !strings.Contains(output, "overdue") {
		t.Errorf("expected an overdue row:\n%s", output)
	}
	if !strings.Contains(output, "done") {
		t.Errorf("expected a done row:\n%s", output)
	}
}

func TestFormatDayViewGroupsByDay(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local)
	today := todo.StartOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)

	backlog := tableTodo("todo-ccc", "someday", today)
	backlog.LongTerm = true

	todos := []todo.Todo{
		tableTodo("todo-aaa", "milk", today),
		tableTodo("todo-bbb", "plants", tomorrow),
		backlog,
	}

	output := ui.StripANSICodes(formatDayView(todos, nil, now))

	wantOrder := []string{"Today", "milk", "Tomorrow", "plants", "Long term", "someday"}
	rest := output
	for _, want := range wantOrder {
		index := strings.Index(rest, want)
		if index < 0 {
			t.Fatalf("expected %q in order in output:\n%s", want, output)
		}
		rest = rest[index+len(want):]
	}
}

func TestFormatDayViewEmpty(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local)
	if got := formatDayView(nil, nil, now); got != "No todos found.\n" {
		t.Fatalf("unexpected empty output: %q", got)
	}
}

func TestListLabelFallsBackToID(t *testing.T) {
	item := todo.Todo{ListID: "list-gone"}
	if got := listLabel(item, nil); got != "list-gone" {
		t.Fatalf("expected raw list ID, got %q", got)
	}
}
