package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/yata-app/yata/internal/config"
	"github.com/yata-app/yata/internal/paths"
	"github.com/yata-app/yata/kv"
	"github.com/yata-app/yata/todo"
)

// app bundles the stores and the resources behind them for one command
// invocation. Close flushes any pending writes before releasing the medium.
type app struct {
	cfg    *config.Config
	todos  *todo.TodoStore
	lists  *todo.ListStore
	closer func() error
}

// openApp loads config, opens the configured durable medium, and builds
// both stores on top of it.
func openApp() (*app, error) {
	configPath, err := paths.DefaultConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	dataDir := cfg.DataDir
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	var medium kv.Medium
	closer := func() error { return nil }
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := kv.OpenSQLite(filepath.Join(dataDir, "yata.db"))
		if err != nil {
			return nil, err
		}
		medium = db
		closer = db.Close
	default:
		medium = kv.NewFile(dataDir)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "yata"})
	opts := todo.Options{
		Medium:         medium,
		Logger:         logger,
		DebounceWindow: cfg.DebounceWindow(),
	}

	return &app{
		cfg:    cfg,
		todos:  todo.NewTodoStore(opts),
		lists:  todo.NewListStore(opts),
		closer: closer,
	}, nil
}

// Close flushes both stores and releases the medium. The first error wins
// but all steps run.
func (a *app) Close() error {
	todoErr := a.todos.Close()
	listErr := a.lists.Close()
	mediumErr := a.closer()
	if todoErr != nil {
		return todoErr
	}
	if listErr != nil {
		return listErr
	}
	return mediumErr
}
