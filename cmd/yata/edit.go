package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yata-app/yata/internal/editor"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a todo in $EDITOR",
	Long: `Edit a todo in $EDITOR.

The todo is rendered as a TOML frontmatter block (title, scheduled day,
list) followed by its markdown notes. Saving the buffer applies the
changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	if !editor.IsInteractive() {
		return fmt.Errorf("edit requires an interactive terminal")
	}

	return withApp(func(ctx context.Context, a *app) error {
		t, err := resolveTodoID(ctx, a.todos, args[0])
		if err != nil {
			return err
		}

		listName := ""
		if t.ListID != "" {
			if l, ok := a.lists.GetList(ctx, t.ListID); ok {
				listName = l.Name
			}
		}

		parsed, err := editor.EditTodo(editor.DataFromTodo(t, listName))
		if err != nil {
			return err
		}

		t.Title = parsed.Title
		t.Notes = parsed.Notes

		if parsed.Scheduled == "long-term" {
			t.LongTerm = true
		} else {
			day, err := parseDay(parsed.Scheduled, time.Now())
			if err != nil {
				return err
			}
			t.LongTerm = false
			t.ScheduledFor = day
		}

		switch parsed.List {
		case "":
			t.ListID = ""
		case listName:
			// unchanged
		default:
			l, err := resolveListID(ctx, a.lists, parsed.List)
			if err != nil {
				return err
			}
			t.ListID = l.ID
		}

		stamp := time.Now()
		t.UpdatedAt = &stamp
		a.todos.Upsert(ctx, t)
		fmt.Printf("Updated %s: %s\n", t.ID, t.Title)
		return nil
	})
}
