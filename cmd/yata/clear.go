package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Erase all stored data",
	Long: `Erase all stored data.

By default both todos and lists are cleared; use --todos or --lists to
clear only one. Pending debounced writes are discarded, not flushed.`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

var (
	clearTodos bool
	clearLists bool
	clearForce bool
)

func init() {
	clearCmd.Flags().BoolVar(&clearTodos, "todos", false, "Clear todos only")
	clearCmd.Flags().BoolVar(&clearLists, "lists", false, "Clear lists only")
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "Skip the confirmation prompt")
}

func runClear(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		todos := clearTodos || !clearLists
		lists := clearLists || !clearTodos

		var what string
		switch {
		case todos && lists:
			what = "all todos and lists"
		case todos:
			what = "all todos"
		default:
			what = "all lists"
		}

		ok, err := confirmDestructive(fmt.Sprintf("Erase %s? This cannot be undone.", what), clearForce)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}

		if todos {
			if err := a.todos.Clear(ctx); err != nil {
				return err
			}
		}
		if lists {
			if err := a.lists.Clear(ctx); err != nil {
				return err
			}
		}
		fmt.Printf("Cleared %s.\n", what)
		return nil
	})
}
