// ABOUTME: Shared test setup for the offline-aware services.
// ABOUTME: Services run against a real store and an unreachable server.
package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"kraftlog/internal/api"
	"kraftlog/internal/storage"
	syncengine "kraftlog/internal/sync"
)

// setupServices wires Routines and Sessions over a fresh store with the
// server unreachable, so every operation exercises the offline path and
// the outbox contents stay deterministic.
func setupServices(t *testing.T) (*storage.DB, *Routines, *Sessions) {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := api.New(srv.URL, func(context.Context) (string, error) {
		return "", nil
	}, nil)
	engine := syncengine.NewEngine(db, client, syncengine.NewPublisher(), nil)

	return db, NewRoutines(db, engine, nil), NewSessions(db, engine, nil)
}

// queueOps returns "<operation> <entity_type>" for every pending item,
// oldest first.
func queueOps(t *testing.T, db *storage.DB) []string {
	t.Helper()
	items, err := db.OldestQueueItems(50)
	require.NoError(t, err)
	ops := make([]string, len(items))
	for i, item := range items {
		ops[i] = string(item.Operation) + " " + item.EntityType
	}
	return ops
}
