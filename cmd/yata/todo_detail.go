package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/yata-app/yata/internal/markdown"
	"github.com/yata-app/yata/todo"
)

const detailFallbackWidth = 80

// printTodoDetail prints the full record for one todo, with notes rendered
// as markdown at the terminal width.
func printTodoDetail(t todo.Todo, lists map[string]todo.TodoList, now time.Time) {
	fmt.Printf("id:        %s\n", t.ID)
	fmt.Printf("title:     %s\n", t.Title)
	fmt.Printf("status:    %s\n", todoStatus(t, now))
	if t.LongTerm {
		fmt.Printf("scheduled: long term\n")
	} else {
		fmt.Printf("scheduled: %s\n", t.ScheduledFor.Local().Format(dayLayout))
	}
	if t.ListID != "" {
		name := t.ListID
		if l, ok := lists[t.ListID]; ok {
			name = l.Name
		}
		fmt.Printf("list:      %s\n", name)
	}
	fmt.Printf("created:   %s\n", t.CreatedAt.Local().Format(time.RFC3339))
	if t.UpdatedAt != nil {
		fmt.Printf("updated:   %s\n", t.UpdatedAt.Local().Format(time.RFC3339))
	}
	if t.CompletedAt != nil {
		fmt.Printf("completed: %s\n", t.CompletedAt.Local().Format(time.RFC3339))
	}
	if t.Deleted {
		fmt.Printf("deleted:   true\n")
	}

	if strings.TrimSpace(t.Notes) != "" {
		fmt.Println()
		fmt.Print(markdown.Render(detailWidth(), t.Notes))
	}
}

func detailWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return detailFallbackWidth
	}
	return width
}
