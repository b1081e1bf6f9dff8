// ABOUTME: Tests for the NullStore fallback backend.
// ABOUTME: Verifies writes are safe no-ops and reads return empty results.
package storage

import (
	"testing"

	"github.com/google/uuid"
	"kraftlog/internal/models"
)

func TestNullStoreWritesSucceed(t *testing.T) {
	s := NewNullStore()

	if err := s.PutRoutine(models.NewRoutine(uuid.New(), "Push Day")); err != nil {
		t.Errorf("PutRoutine failed: %v", err)
	}
	if err := s.EnqueueChange(models.KindRoutine, uuid.New(), models.OpCreate, struct{}{}); err != nil {
		t.Errorf("EnqueueChange failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestNullStoreReadsEmpty(t *testing.T) {
	s := NewNullStore()

	routines, err := s.ListRoutinesByUser(uuid.New())
	if err != nil {
		t.Fatalf("ListRoutinesByUser failed: %v", err)
	}
	if len(routines) != 0 {
		t.Errorf("expected no routines, got %d", len(routines))
	}

	items, err := s.OldestQueueItems(50)
	if err != nil {
		t.Fatalf("OldestQueueItems failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty queue, got %d items", len(items))
	}

	count, err := s.PendingCount()
	if err != nil {
		t.Fatalf("PendingCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("PendingCount = %d, want 0", count)
	}
}

func TestNullStoreLookupsNotFound(t *testing.T) {
	s := NewNullStore()

	if _, err := s.GetRoutine(uuid.New()); err != ErrNotFound {
		t.Errorf("GetRoutine error = %v, want ErrNotFound", err)
	}
	if _, err := s.GetLogWorkout(uuid.New()); err != ErrNotFound {
		t.Errorf("GetLogWorkout error = %v, want ErrNotFound", err)
	}
}
