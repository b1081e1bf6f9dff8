// ABOUTME: Root Cobra command for the kraftlog CLI.
// ABOUTME: Wires config, storage, API client, sync engine, and services.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"kraftlog/internal/api"
	"kraftlog/internal/config"
	"kraftlog/internal/service"
	"kraftlog/internal/storage"
	syncengine "kraftlog/internal/sync"
)

var (
	cfg      *config.Config
	store    storage.Store
	client   *api.Client
	engine   *syncengine.Engine
	routines *service.Routines
	sessions *service.Sessions
	logger   *slog.Logger

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "kraftlog",
	Short: "Offline-first workout tracker",
	Long: `Kraftlog is an offline-first workout tracker.

Everything works without a network connection. Changes are written to a
local SQLite mirror, queued in an outbox, and pushed to the server the
next time it is reachable. Reads come from the local mirror, refreshed
from the server when online.

QUICK START:

  $ kraftlog login --server https://api.example.com --user <uuid>
  $ kraftlog routine create "Push Day"       # Create a routine
  $ kraftlog routine list                    # See your routines
  $ kraftlog log start <routine-id>          # Start a session
  $ kraftlog log set <log-exercise-id> 8 --weight 80

SYNC:

  Sync runs automatically in the background after each change. Use
  'kraftlog sync' to force a full cycle and 'kraftlog sync status' to
  inspect the outbox.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		store, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("opening storage: %w", err)
		}

		client = api.New(cfg.GetServerURL(), func(context.Context) (string, error) {
			return cfg.Token, nil
		}, logger)

		engine = syncengine.NewEngine(store, client, syncengine.NewPublisher(), logger)
		routines = service.NewRoutines(store, engine, logger)
		sessions = service.NewSessions(store, engine, logger)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
