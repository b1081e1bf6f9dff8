// ABOUTME: Outbox (sync_queue) access: pending mutations awaiting server confirmation.
// ABOUTME: Append/delete only; retry_count is the single in-place update.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"kraftlog/internal/models"
)

// EnqueueChange appends a pending mutation to the outbox. Items are
// drained oldest-first, so a CREATE enqueued before an UPDATE for the
// same entity reaches the server first.
func (d *DB) EnqueueChange(kind models.EntityKind, entityID uuid.UUID, op models.Operation, payload any) error {
	if !op.Valid() {
		return fmt.Errorf("enqueue change: invalid operation %q", op)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("enqueue change: marshal payload: %w", err)
	}
	_, err = d.db.Exec(`
		INSERT INTO sync_queue (entity_type, entity_id, operation, data, created_at, retry_count)
		VALUES (?, ?, ?, ?, ?, 0)
	`, kind.String(), entityID.String(), string(op), string(data), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("enqueue change: %w", err)
	}
	return nil
}

// OldestQueueItems retrieves up to limit pending items in insertion
// order. The AUTOINCREMENT id is the ordering key; created_at is
// RFC3339Nano with trimmed fractional zeros, so its string order can
// disagree with insertion order.
func (d *DB) OldestQueueItems(limit int) ([]*QueueItem, error) {
	rows, err := d.db.Query(`
		SELECT id, entity_type, entity_id, operation, data, created_at, retry_count
		FROM sync_queue
		ORDER BY id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list queue items: %w", err)
	}
	defer rows.Close()

	var items []*QueueItem
	for rows.Next() {
		var item QueueItem
		var op, data, createdAt string
		if err := rows.Scan(&item.ID, &item.EntityType, &item.EntityID, &op, &data, &createdAt, &item.RetryCount); err != nil {
			return nil, fmt.Errorf("scan queue item: %w", err)
		}
		item.Operation = models.Operation(op)
		item.Data = []byte(data)
		item.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		items = append(items, &item)
	}
	return items, rows.Err()
}

// IncrementRetry bumps an item's retry counter after a failed push.
func (d *DB) IncrementRetry(itemID int64) error {
	if _, err := d.db.Exec(`UPDATE sync_queue SET retry_count = retry_count + 1 WHERE id = ?`, itemID); err != nil {
		return fmt.Errorf("increment retry: %w", err)
	}
	return nil
}

// DeleteQueueItem removes an item, either confirmed or dropped.
func (d *DB) DeleteQueueItem(itemID int64) error {
	if _, err := d.db.Exec(`DELETE FROM sync_queue WHERE id = ?`, itemID); err != nil {
		return fmt.Errorf("delete queue item: %w", err)
	}
	return nil
}

// PendingCount returns the number of unconfirmed mutations.
func (d *DB) PendingCount() (int, error) {
	var count int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM sync_queue`).Scan(&count); err != nil {
		return 0, fmt.Errorf("pending count: %w", err)
	}
	return count, nil
}

// GetSyncState reads a sync bookkeeping value; empty string if unset.
func (d *DB) GetSyncState(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM sync_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get sync state: %w", err)
	}
	return value, nil
}

// SetSyncState writes a sync bookkeeping value.
func (d *DB) SetSyncState(key, value string) error {
	_, err := d.db.Exec(`
		INSERT INTO sync_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("set sync state: %w", err)
	}
	return nil
}
