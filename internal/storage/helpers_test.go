// ABOUTME: Shared test helpers for storage tests.
// ABOUTME: Provides setupTestDB for creating isolated test database instances.
package storage

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"kraftlog/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// seedRoutine creates a routine with one workout for tests that need a
// populated hierarchy.
func seedRoutine(t *testing.T, db *DB, userID uuid.UUID) (*models.Routine, *models.Workout) {
	t.Helper()
	r := models.NewRoutine(userID, "Push Day")
	if err := db.PutRoutine(r); err != nil {
		t.Fatalf("PutRoutine failed: %v", err)
	}
	w := models.NewWorkout(r.ID, "Chest")
	if err := db.PutWorkout(w); err != nil {
		t.Fatalf("PutWorkout failed: %v", err)
	}
	return r, w
}

// seedSession creates a session down to a logged exercise.
func seedSession(t *testing.T, db *DB, routineID, workoutID, userID uuid.UUID) (*models.LogRoutine, *models.LogWorkout, *models.LogExercise) {
	t.Helper()
	lr := models.NewLogRoutine(routineID, userID)
	if err := db.PutLogRoutine(lr); err != nil {
		t.Fatalf("PutLogRoutine failed: %v", err)
	}
	lw := models.NewLogWorkout(lr.ID, workoutID)
	if err := db.PutLogWorkout(lw); err != nil {
		t.Fatalf("PutLogWorkout failed: %v", err)
	}
	le := models.NewLogExercise(lw.ID, uuid.New(), "Bench Press")
	if err := db.PutLogExercise(le); err != nil {
		t.Fatalf("PutLogExercise failed: %v", err)
	}
	return lr, lw, le
}
