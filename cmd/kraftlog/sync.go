// ABOUTME: CLI commands for the sync engine.
// ABOUTME: Force a full sync cycle, pull server state, and inspect the outbox.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync with the server",
	Long: `Run a full sync cycle against the server.

A cycle probes connectivity, pushes queued local changes oldest-first,
and records the sync timestamp. Changes also sync automatically in the
background after each write, so this is mostly useful after coming back
online or to check that the outbox drained.

COMMANDS:

  status    Show pending changes and the last sync time
  pull      Replace unsynced-free local state with server state`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Syncing...")
		if err := engine.SyncAll(cmd.Context(), true); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		st := engine.Status()
		color.Green("✓ Sync complete")
		if st.PendingChanges > 0 {
			color.Yellow("⚠ %d changes still pending", st.PendingChanges)
		}
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := engine.Status()

		if client.Online(cmd.Context()) {
			color.Green("✓ Server reachable")
		} else {
			color.Yellow("⚠ Server unreachable (offline mode)")
		}

		pending, err := engine.PendingChanges()
		if err != nil {
			return fmt.Errorf("failed to count pending changes: %w", err)
		}
		fmt.Printf("  Pending changes: %d\n", pending)
		if st.LastSync.IsZero() {
			fmt.Println("  Last sync: never")
		} else {
			fmt.Printf("  Last sync: %s\n", st.LastSync.Local().Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Pull server state into the local mirror",
	Long: `Fetch the user's routines, sessions, and the exercise catalog
from the server and merge them into the local mirror. Rows with
unsynced local edits are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := cfg.GetUserID()
		if err != nil {
			return err
		}

		if err := engine.PullFromServer(cmd.Context(), userID); err != nil {
			return fmt.Errorf("pull failed: %w", err)
		}

		color.Green("✓ Pull complete")
		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncPullCmd)
	rootCmd.AddCommand(syncCmd)
}
