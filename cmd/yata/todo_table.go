package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/yata-app/yata/internal/ui"
	"github.com/yata-app/yata/todo"
)

var (
	completedStyle = lipgloss.NewStyle().Faint(true)
	headerStyle    = lipgloss.NewStyle().Bold(true)
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// listLabel renders a colored dot plus the list name, or an empty string
// when the todo has no list.
func listLabel(t todo.Todo, lists map[string]todo.TodoList) string {
	if t.ListID == "" {
		return ""
	}
	l, ok := lists[t.ListID]
	if !ok {
		return t.ListID
	}
	if l.Color == "" {
		return l.Name
	}
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color)).Render("●")
	return dot + " " + l.Name
}

func todoStatus(t todo.Todo, now time.Time) string {
	switch {
	case t.Completed():
		return "done"
	case !t.LongTerm && todo.IsOverdue(t.ScheduledFor, now):
		return overdueStyle.Render("overdue")
	default:
		return "open"
	}
}

// formatTodoTable renders todos as an aligned table with highlighted
// unique ID prefixes.
func formatTodoTable(todos []todo.Todo, lists map[string]todo.TodoList, prefixLengths map[string]int, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"ID", "STATUS", "AGE", "LIST", "TITLE"}, len(todos))

	for _, t := range todos {
		title := ui.TruncateTableCell(t.Title)
		if t.Completed() {
			title = completedStyle.Render(title)
		}
		builder.AddRow([]string{
			ui.HighlightID(t.ID, prefixLengths[strings.ToLower(t.ID)]),
			todoStatus(t, now),
			ui.FormatTimeAgo(t.CreatedAt, now),
			listLabel(t, lists),
			title,
		})
	}

	return builder.String()
}

// formatDayView renders todos grouped under day headers, one section per
// calendar day that has todos, followed by a backlog section for long-term
// todos.
func formatDayView(todos []todo.Todo, lists map[string]todo.TodoList, now time.Time) string {
	prefixLengths := todoIDPrefixLengths(todos)

	var days []time.Time
	byDay := map[time.Time][]todo.Todo{}
	var backlog []todo.Todo
	for _, t := range todos {
		if t.LongTerm {
			backlog = append(backlog, t)
			continue
		}
		day := todo.StartOfDay(t.ScheduledFor)
		if _, ok := byDay[day]; !ok {
			days = append(days, day)
		}
		byDay[day] = append(byDay[day], t)
	}

	var sections []string
	for _, day := range days {
		header := headerStyle.Render(ui.FormatDayHeader(day, now))
		sections = append(sections, header+"\n"+formatTodoTable(byDay[day], lists, prefixLengths, now))
	}
	if len(backlog) > 0 {
		header := headerStyle.Render("Long term")
		sections = append(sections, header+"\n"+formatTodoTable(backlog, lists, prefixLengths, now))
	}

	if len(sections) == 0 {
		return "No todos found.\n"
	}
	return strings.Join(sections, "\n")
}

// formatListTable renders todo lists as an aligned table.
func formatListTable(lists []todo.TodoList, counts map[string]int, now time.Time) string {
	ids := make([]string, len(lists))
	for i, l := range lists {
		ids[i] = l.ID
	}
	prefixLengths := ui.UniqueIDPrefixLengths(ids)

	builder := ui.NewTableBuilder([]string{"ID", "NAME", "TODOS", "AGE"}, len(lists))
	for _, l := range lists {
		name := l.Name
		if l.Color != "" {
			dot := lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color)).Render("●")
			name = dot + " " + name
		}
		builder.AddRow([]string{
			ui.HighlightID(l.ID, prefixLengths[strings.ToLower(l.ID)]),
			name,
			fmt.Sprintf("%d", counts[l.ID]),
			ui.FormatTimeAgo(l.CreatedAt, now),
		})
	}
	return builder.String()
}

func todoIDPrefixLengths(todos []todo.Todo) map[string]int {
	ids := make([]string, len(todos))
	for i, t := range todos {
		ids[i] = t.ID
	}
	return ui.UniqueIDPrefixLengths(ids)
}

// listsByID indexes visible lists for table rendering.
func listsByID(lists []todo.TodoList) map[string]todo.TodoList {
	index := make(map[string]todo.TodoList, len(lists))
	for _, l := range lists {
		index[l.ID] = l
	}
	return index
}
