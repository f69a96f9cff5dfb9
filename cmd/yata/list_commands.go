package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	internalstrings "github.com/yata-app/yata/internal/strings"
	"github.com/yata-app/yata/todo"
)

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Manage todo lists",
	Args:  cobra.NoArgs,
	RunE:  runLists,
}

var listsJSON bool

var listsAddCmd = &cobra.Command{
	Use:   "add <name>...",
	Short: "Create a new list",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runListsAdd,
}

var listsAddColor string

var listsDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Soft-delete one or more lists",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runListsDelete,
}

var listsPurgeCmd = &cobra.Command{
	Use:   "purge <id>...",
	Short: "Permanently delete one or more lists",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runListsPurge,
}

var listsPurgeForce bool

func init() {
	listsCmd.AddCommand(listsAddCmd)
	listsCmd.AddCommand(listsDeleteCmd)
	listsCmd.AddCommand(listsPurgeCmd)

	listsCmd.Flags().BoolVar(&listsJSON, "json", false, "Output as JSON")
	listsAddCmd.Flags().StringVar(&listsAddColor, "color", "", "Display color for the list")
	listsPurgeCmd.Flags().BoolVarP(&listsPurgeForce, "force", "f", false, "Skip the confirmation prompt")
}

func runLists(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		lists := a.lists.GetLists(ctx)

		if listsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(lists)
		}

		if len(lists) == 0 {
			fmt.Println("No lists found.")
			return nil
		}

		counts := map[string]int{}
		for _, t := range a.todos.GetTodos(ctx) {
			if t.ListID != "" {
				counts[t.ListID]++
			}
		}

		fmt.Print(formatListTable(lists, counts, time.Now()))
		return nil
	})
}

func runListsAdd(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		name := internalstrings.NormalizeWhitespace(strings.Join(args, " "))
		if name == "" {
			return fmt.Errorf("list name is empty")
		}

		l := todo.TodoList{
			ID:        todo.NewListID(),
			Name:      name,
			Color:     listsAddColor,
			CreatedAt: time.Now(),
		}
		a.lists.Upsert(ctx, l)
		fmt.Printf("Created %s: %s\n", l.ID, l.Name)
		return nil
	})
}

func runListsDelete(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		for _, arg := range args {
			l, err := resolveListID(ctx, a.lists, arg)
			if err != nil {
				return err
			}
			a.lists.SoftDelete(ctx, l.ID)
			fmt.Printf("Deleted %s: %s\n", l.ID, l.Name)
		}
		return nil
	})
}

func runListsPurge(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		for _, arg := range args {
			l, ok := a.lists.GetList(ctx, arg)
			if !ok {
				return fmt.Errorf("no list with ID %q", arg)
			}
			ok, err := confirmDestructive(fmt.Sprintf("Permanently delete list %q? This cannot be undone.", l.Name), listsPurgeForce)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Printf("Skipped %s\n", l.ID)
				continue
			}
			a.lists.HardDelete(ctx, l.ID)
			fmt.Printf("Purged %s: %s\n", l.ID, l.Name)
		}
		return nil
	})
}
