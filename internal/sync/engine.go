// ABOUTME: Sync engine: orchestrates connectivity checks, pull, and outbox drain.
// ABOUTME: The only component that calls the remote API on behalf of synchronization.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"kraftlog/internal/api"
	"kraftlog/internal/models"
	"kraftlog/internal/storage"
)

const (
	// drainBatchSize bounds one outbox drain pass.
	drainBatchSize = 50
	// maxRetries is the retry ceiling per outbox item: an item is
	// attempted 1+maxRetries times before being dropped.
	maxRetries = 5

	lastSyncKey = "last_sync"
)

// Engine coordinates pull, push, and connectivity for one signed-in user.
// Construct it once at startup and share it; it is safe for concurrent use.
type Engine struct {
	store     storage.Store
	client    *api.Client
	publisher *Publisher
	logger    *slog.Logger

	mu       sync.Mutex
	syncing  bool
	lastSync time.Time
}

// NewEngine wires an engine over the given store and API client.
// A nil publisher gets a fresh registry; a nil logger uses slog.Default.
func NewEngine(store storage.Store, client *api.Client, publisher *Publisher, logger *slog.Logger) *Engine {
	if publisher == nil {
		publisher = NewPublisher()
	}
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		store:     store,
		client:    client,
		publisher: publisher,
		logger:    logger,
	}
	// Best effort: a missing or unparsable stamp just means "never synced".
	if v, err := store.GetSyncState(lastSyncKey); err == nil && v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			e.lastSync = t
		}
	}
	return e
}

// Subscribe registers a status callback; see Publisher.Subscribe.
func (e *Engine) Subscribe(cb func(Status)) func() {
	return e.publisher.Subscribe(cb)
}

// Status returns the current sync status snapshot.
func (e *Engine) Status() Status {
	pending, err := e.store.PendingCount()
	if err != nil {
		e.logger.Warn("failed to count pending changes", "error", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return Status{
		LastSync:       e.lastSync,
		IsSyncing:      e.syncing,
		PendingChanges: pending,
	}
}

// SyncAll runs one full sync pass: connectivity probe, per-entity
// refresh, outbox drain, and timestamp. Concurrent calls collapse into
// the running pass and return nil immediately; force re-enters anyway
// (the manual pull-to-refresh escape hatch).
//
// The syncing flag is reset and subscribers are notified on every exit
// path; a failure mid-pass can never leave the engine stuck.
func (e *Engine) SyncAll(ctx context.Context, force bool) error {
	e.mu.Lock()
	if e.syncing && !force {
		e.mu.Unlock()
		e.logger.Debug("sync already in progress")
		return nil
	}
	e.syncing = true
	e.mu.Unlock()
	e.publisher.Notify(e.Status())

	defer func() {
		e.mu.Lock()
		e.syncing = false
		e.mu.Unlock()
		e.publisher.Notify(e.Status())
	}()

	if !e.client.Online(ctx) {
		e.logger.Info("device is offline, skipping sync")
		return nil
	}

	for _, kind := range models.EntityKinds {
		if err := e.refreshEntity(ctx, kind); err != nil {
			return fmt.Errorf("refresh %s: %w", kind, err)
		}
	}

	if err := e.drainOutbox(ctx); err != nil {
		return fmt.Errorf("drain outbox: %w", err)
	}

	now := time.Now().UTC()
	if err := e.store.SetSyncState(lastSyncKey, now.Format(time.RFC3339)); err != nil {
		e.logger.Warn("failed to persist last sync time", "error", err)
	}
	e.mu.Lock()
	e.lastSync = now
	e.mu.Unlock()

	e.logger.Info("sync completed")
	return nil
}

// refreshEntity is the per-kind refresh step of a sync pass.
// TODO: incremental per-entity refresh; today full state arrives via
// PullFromServer and this step only reports progress.
func (e *Engine) refreshEntity(_ context.Context, kind models.EntityKind) error {
	e.logger.Debug("refreshing entity", "kind", kind.String())
	return nil
}

// drainOutbox pushes pending mutations oldest-first. One item's failure
// never aborts the pass: transient failures consume a retry, permanent
// rejections and exhausted items are dropped with a warning. Dropping
// loses that mutation past the ceiling; the next full pull reconciles
// whatever state the server actually holds.
func (e *Engine) drainOutbox(ctx context.Context) error {
	items, err := e.store.OldestQueueItems(drainBatchSize)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := e.pushItem(ctx, item); err != nil {
			e.handlePushFailure(item, err)
			continue
		}
		if err := e.store.DeleteQueueItem(item.ID); err != nil {
			return err
		}
		e.publisher.Notify(e.Status())
	}
	return nil
}

func (e *Engine) handlePushFailure(item *storage.QueueItem, pushErr error) {
	drop := func(reason string) {
		e.logger.Warn("dropping queue item",
			"entity", item.EntityType,
			"id", item.EntityID,
			"operation", item.Operation,
			"reason", reason,
			"error", pushErr,
		)
		if err := e.store.DeleteQueueItem(item.ID); err != nil {
			e.logger.Warn("failed to delete queue item", "error", err)
		}
		e.publisher.Notify(e.Status())
	}

	switch {
	case api.IsPermanent(pushErr):
		// Retrying a rejected request cannot succeed; fail fast
		// instead of spending the retry budget.
		drop("permanent rejection")
	case item.RetryCount >= maxRetries:
		drop(fmt.Sprintf("retry ceiling of %d exceeded", maxRetries))
	default:
		e.logger.Debug("push failed, will retry",
			"entity", item.EntityType,
			"id", item.EntityID,
			"attempt", item.RetryCount+1,
			"error", pushErr,
		)
		if err := e.store.IncrementRetry(item.ID); err != nil {
			e.logger.Warn("failed to increment retry count", "error", err)
		}
	}
}

// pushItem translates one queued mutation into its REST call.
func (e *Engine) pushItem(ctx context.Context, item *storage.QueueItem) error {
	kind, err := models.ParseEntityKind(item.EntityType)
	if err != nil {
		// No endpoint can ever serve this item; surface it as a
		// permanent failure so it gets dropped, not retried.
		return &api.Error{StatusCode: 400, Message: err.Error()}
	}
	return e.push(ctx, kind, item.EntityID, item.Operation, rawJSON(item.Data))
}

// push sends one mutation to its REST endpoint.
func (e *Engine) push(ctx context.Context, kind models.EntityKind, entityID string, op models.Operation, body any) error {
	switch op {
	case models.OpCreate:
		return e.client.Post(ctx, kind.Endpoint(), body, nil)
	case models.OpUpdate:
		return e.client.Put(ctx, kind.Endpoint()+"/"+entityID, body, nil)
	case models.OpDelete:
		return e.client.Delete(ctx, kind.Endpoint()+"/"+entityID)
	default:
		return &api.Error{StatusCode: 400, Message: fmt.Sprintf("unknown operation %q", op)}
	}
}

// PushNow sends a mutation straight to the server, bypassing the mirror
// and the outbox. Services use it on storage-less platforms, where a
// queued change would sit in a queue that does not persist.
func (e *Engine) PushNow(ctx context.Context, kind models.EntityKind, entityID uuid.UUID, op models.Operation, payload any) error {
	return e.push(ctx, kind, entityID.String(), op, payload)
}

// Fetch retrieves one entity from the server into out. The direct-call
// counterpart of a mirror read on storage-less platforms.
func (e *Engine) Fetch(ctx context.Context, kind models.EntityKind, id uuid.UUID, out any) error {
	return e.client.Get(ctx, kind.Endpoint()+"/"+id.String(), out)
}

// rawJSON re-wraps stored payload bytes so the client sends them verbatim.
type rawJSON []byte

func (r rawJSON) MarshalJSON() ([]byte, error) { return r, nil }

// PendingChanges returns the current outbox depth.
func (e *Engine) PendingChanges() (int, error) {
	return e.store.PendingCount()
}

// Enqueue records a local mutation in the outbox. Enqueueing is
// best-effort by contract: the caller's local write has already
// succeeded, so a failure here is logged and swallowed. The divergence
// is corrected by the next full pull.
func (e *Engine) Enqueue(kind models.EntityKind, entityID uuid.UUID, op models.Operation, payload any) {
	if err := e.store.EnqueueChange(kind, entityID, op, payload); err != nil {
		e.logger.Warn("failed to enqueue change",
			"entity", kind.String(),
			"id", entityID,
			"operation", op,
			"error", err,
		)
		return
	}
	e.publisher.Notify(e.Status())
}
