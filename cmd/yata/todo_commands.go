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

// withApp opens the stores, runs fn, and flushes on the way out. A flush
// failure surfaces only when fn itself succeeded.
func withApp(fn func(ctx context.Context, a *app) error) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	runErr := fn(context.Background(), a)
	closeErr := a.Close()
	if runErr != nil {
		return runErr
	}
	return closeErr
}

// yata add
var addCmd = &cobra.Command{
	Use:   "add <title>...",
	Short: "Add a new todo",
	Long: `Add a new todo scheduled for a day.

The title is the joined arguments. By default the todo is scheduled for
today; use --on to pick another day, or --long-term to put it in the
undated backlog instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addOn       string
	addNotes    string
	addLongTerm bool
	addList     string
)

// yata list
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos grouped by day",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var (
	listOn       string
	listLongTerm bool
	listList     string
	listJSON     bool
)

// yata show
var showCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show one or more todos in full, rendering notes as markdown",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShow,
}

var showJSON bool

// yata done / undone
var doneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Mark one or more todos completed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDone,
}

var undoneCmd = &cobra.Command{
	Use:   "undone <id>...",
	Short: "Mark one or more todos not completed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUndone,
}

// yata move / shift
var moveCmd = &cobra.Command{
	Use:   "move <id>... --to <day>",
	Short: "Reschedule one or more todos to another day",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMove,
}

var moveTo string

var shiftCmd = &cobra.Command{
	Use:   "shift <id>...",
	Short: "Toggle one or more todos between day scheduling and the long-term backlog",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShift,
}

// yata delete / restore / purge
var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Soft-delete one or more todos",
	Long: `Soft-delete one or more todos.

Deleted todos are hidden from listings but stay on disk and can be
brought back with 'yata restore <id>'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelete,
}

var restoreCmd = &cobra.Command{
	Use:   "restore <id>...",
	Short: "Restore soft-deleted todos",
	Long: `Restore soft-deleted todos.

Deleted todos do not appear in listings, so restore requires the full
ID that 'yata delete' printed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRestore,
}

var purgeCmd = &cobra.Command{
	Use:   "purge <id>...",
	Short: "Permanently delete one or more todos",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPurge,
}

var purgeForce bool

// yata rollover
var rolloverCmd = &cobra.Command{
	Use:   "rollover",
	Short: "Move overdue incomplete todos to today",
	Args:  cobra.NoArgs,
	RunE:  runRollover,
}

func init() {
	addCmd.Flags().StringVar(&addOn, "on", "today", "Day to schedule the todo for")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Markdown notes for the todo")
	addCmd.Flags().BoolVar(&addLongTerm, "long-term", false, "Put the todo in the long-term backlog")
	addCmd.Flags().StringVar(&addList, "list", "", "List to add the todo to (ID, ID prefix, or name)")

	listCmd.Flags().StringVar(&listOn, "on", "", "Only show todos scheduled for this day")
	listCmd.Flags().BoolVar(&listLongTerm, "long-term", false, "Only show long-term todos")
	listCmd.Flags().StringVar(&listList, "list", "", "Only show todos in this list (ID, ID prefix, or name)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")

	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")

	moveCmd.Flags().StringVar(&moveTo, "to", "", "Day to reschedule to")
	_ = moveCmd.MarkFlagRequired("to")

	purgeCmd.Flags().BoolVarP(&purgeForce, "force", "f", false, "Skip the confirmation prompt")

	addDayFlagAliases(addCmd, listCmd)
	addNotesFlagAliases(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		title := internalstrings.NormalizeWhitespace(strings.Join(args, " "))
		if title == "" {
			return fmt.Errorf("todo title is empty")
		}

		now := time.Now()
		day, err := parseDay(addOn, now)
		if err != nil {
			return err
		}

		t := todo.Todo{
			ID:           todo.NewTodoID(),
			Title:        title,
			Notes:        addNotes,
			CreatedAt:    now,
			ScheduledFor: day,
			LongTerm:     addLongTerm,
		}
		if addList != "" {
			l, err := resolveListID(ctx, a.lists, addList)
			if err != nil {
				return err
			}
			t.ListID = l.ID
		}

		a.todos.Upsert(ctx, t)
		fmt.Printf("Created %s: %s\n", t.ID, t.Title)
		return nil
	})
}

func runList(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		now := time.Now()
		todos := a.todos.GetTodos(ctx)

		if listOn != "" {
			day, err := parseDay(listOn, now)
			if err != nil {
				return err
			}
			filtered := todos[:0]
			for _, t := range todos {
				if !t.LongTerm && todo.SameDay(t.ScheduledFor, day) {
					filtered = append(filtered, t)
				}
			}
			todos = filtered
		}
		if listLongTerm {
			filtered := todos[:0]
			for _, t := range todos {
				if t.LongTerm {
					filtered = append(filtered, t)
				}
			}
			todos = filtered
		}
		if listList != "" {
			l, err := resolveListID(ctx, a.lists, listList)
			if err != nil {
				return err
			}
			filtered := todos[:0]
			for _, t := range todos {
				if t.ListID == l.ID {
					filtered = append(filtered, t)
				}
			}
			todos = filtered
		}

		if listJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(todos)
		}

		lists := listsByID(a.lists.GetLists(ctx))
		if listOn != "" || listLongTerm || listList != "" {
			if len(todos) == 0 {
				fmt.Println("No todos found.")
				return nil
			}
			fmt.Print(formatTodoTable(todos, lists, todoIDPrefixLengths(todos), now))
			return nil
		}
		fmt.Print(formatDayView(todos, lists, now))
		return nil
	})
}

func runShow(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		var todos []todo.Todo
		for _, arg := range args {
			t, err := resolveTodoID(ctx, a.todos, arg)
			if err != nil {
				return err
			}
			todos = append(todos, t)
		}

		if showJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(todos)
		}

		now := time.Now()
		lists := listsByID(a.lists.GetLists(ctx))
		for i, t := range todos {
			if i > 0 {
				fmt.Println("---")
			}
			printTodoDetail(t, lists, now)
		}
		return nil
	})
}

// updateTodos resolves each arg, applies update, and upserts the result
// with a fresh UpdatedAt.
func updateTodos(ctx context.Context, a *app, args []string, update func(*todo.Todo)) ([]todo.Todo, error) {
	now := time.Now()
	updated := make([]todo.Todo, 0, len(args))
	for _, arg := range args {
		t, err := resolveTodoID(ctx, a.todos, arg)
		if err != nil {
			return nil, err
		}
		update(&t)
		stamp := now
		t.UpdatedAt = &stamp
		a.todos.Upsert(ctx, t)
		updated = append(updated, t)
	}
	return updated, nil
}

func runDone(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		now := time.Now()
		updated, err := updateTodos(ctx, a, args, func(t *todo.Todo) {
			stamp := now
			t.CompletedAt = &stamp
		})
		if err != nil {
			return err
		}
		for _, t := range updated {
			fmt.Printf("Completed %s: %s\n", t.ID, t.Title)
		}
		return nil
	})
}

func runUndone(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		updated, err := updateTodos(ctx, a, args, func(t *todo.Todo) {
			t.CompletedAt = nil
		})
		if err != nil {
			return err
		}
		for _, t := range updated {
			fmt.Printf("Reopened %s: %s\n", t.ID, t.Title)
		}
		return nil
	})
}

func runMove(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		day, err := parseDay(moveTo, time.Now())
		if err != nil {
			return err
		}
		updated, err := updateTodos(ctx, a, args, func(t *todo.Todo) {
			t.ScheduledFor = day
			t.LongTerm = false
		})
		if err != nil {
			return err
		}
		for _, t := range updated {
			fmt.Printf("Moved %s to %s: %s\n", t.ID, day.Format(dayLayout), t.Title)
		}
		return nil
	})
}

func runShift(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		updated, err := updateTodos(ctx, a, args, func(t *todo.Todo) {
			t.LongTerm = !t.LongTerm
		})
		if err != nil {
			return err
		}
		for _, t := range updated {
			if t.LongTerm {
				fmt.Printf("Moved %s to the long-term backlog: %s\n", t.ID, t.Title)
			} else {
				fmt.Printf("Scheduled %s for %s: %s\n", t.ID, t.ScheduledFor.Format(dayLayout), t.Title)
			}
		}
		return nil
	})
}

func runDelete(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		for _, arg := range args {
			t, err := resolveTodoID(ctx, a.todos, arg)
			if err != nil {
				return err
			}
			a.todos.SoftDelete(ctx, t.ID)
			fmt.Printf("Deleted %s: %s (restore with 'yata restore %s')\n", t.ID, t.Title, t.ID)
		}
		return nil
	})
}

func runRestore(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		for _, arg := range args {
			t, ok := a.todos.GetTodo(ctx, arg)
			if !ok {
				return fmt.Errorf("no todo with ID %q", arg)
			}
			a.todos.Restore(ctx, t.ID)
			fmt.Printf("Restored %s: %s\n", t.ID, t.Title)
		}
		return nil
	})
}

func runPurge(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		for _, arg := range args {
			t, ok := a.todos.GetTodo(ctx, arg)
			if !ok {
				return fmt.Errorf("no todo with ID %q", arg)
			}
			ok, err := confirmDestructive(fmt.Sprintf("Permanently delete %q? This cannot be undone.", t.Title), purgeForce)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Printf("Skipped %s\n", t.ID)
				continue
			}
			a.todos.HardDelete(ctx, t.ID)
			fmt.Printf("Purged %s: %s\n", t.ID, t.Title)
		}
		return nil
	})
}

func runRollover(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		now := time.Now()
		today := todo.StartOfDay(now)

		moved := 0
		for _, t := range a.todos.GetTodos(ctx) {
			if t.LongTerm || t.Completed() || !todo.IsOverdue(t.ScheduledFor, now) {
				continue
			}
			t.ScheduledFor = today
			stamp := now
			t.UpdatedAt = &stamp
			a.todos.Upsert(ctx, t)
			moved++
		}

		switch moved {
		case 0:
			fmt.Println("Nothing to roll over.")
		case 1:
			fmt.Println("Rolled over 1 todo to today.")
		default:
			fmt.Printf("Rolled over %d todos to today.\n", moved)
		}
		return nil
	})
}
