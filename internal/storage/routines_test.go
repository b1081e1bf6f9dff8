// ABOUTME: Tests for routine hierarchy CRUD operations.
// ABOUTME: Covers upsert-on-replay, dirty-row protection, and cascade deletes.
package storage

import (
	"testing"

	"github.com/google/uuid"
	"kraftlog/internal/models"
)

func TestPutAndGetRoutine(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()

	r := models.NewRoutine(userID, "Push Day").WithDescription("Chest and triceps")
	if err := db.PutRoutine(r); err != nil {
		t.Fatalf("PutRoutine failed: %v", err)
	}

	got, err := db.GetRoutine(r.ID)
	if err != nil {
		t.Fatalf("GetRoutine failed: %v", err)
	}
	if got.ID != r.ID {
		t.Errorf("ID mismatch")
	}
	if got.Name != "Push Day" {
		t.Errorf("Name = %s, want Push Day", got.Name)
	}
	if got.Description == nil || *got.Description != "Chest and triceps" {
		t.Error("Description mismatch")
	}
	if got.Synced {
		t.Error("local write should be unsynced")
	}
}

func TestGetRoutineNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetRoutine(uuid.New())
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPutRoutineReplaySameID(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()

	r := models.NewRoutine(userID, "Push Day")
	if err := db.PutRoutine(r); err != nil {
		t.Fatalf("PutRoutine failed: %v", err)
	}

	// Writing the same id again must update in place, not duplicate.
	r.Name = "Pull Day"
	if err := db.PutRoutine(r); err != nil {
		t.Fatalf("PutRoutine replay failed: %v", err)
	}

	list, err := db.ListRoutinesByUser(userID)
	if err != nil {
		t.Fatalf("ListRoutinesByUser failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 routine, got %d", len(list))
	}
	if list[0].Name != "Pull Day" {
		t.Errorf("Name = %s, want Pull Day", list[0].Name)
	}
}

func TestMergeRoutineMarksSynced(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()

	r := models.NewRoutine(userID, "Push Day")
	if err := db.MergeRoutine(r); err != nil {
		t.Fatalf("MergeRoutine failed: %v", err)
	}

	got, err := db.GetRoutine(r.ID)
	if err != nil {
		t.Fatalf("GetRoutine failed: %v", err)
	}
	if !got.Synced {
		t.Error("merged row should be synced")
	}
}

func TestMergeRoutineSkipsDirtyRow(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()

	r := models.NewRoutine(userID, "Local Edit")
	if err := db.PutRoutine(r); err != nil {
		t.Fatalf("PutRoutine failed: %v", err)
	}

	// Server copy of the same routine with a different name must not
	// clobber the pending local edit.
	server := *r
	server.Name = "Server Name"
	if err := db.MergeRoutine(&server); err != nil {
		t.Fatalf("MergeRoutine failed: %v", err)
	}

	got, err := db.GetRoutine(r.ID)
	if err != nil {
		t.Fatalf("GetRoutine failed: %v", err)
	}
	if got.Name != "Local Edit" {
		t.Errorf("Name = %s, want Local Edit (dirty row overwritten)", got.Name)
	}
	if got.Synced {
		t.Error("dirty row should stay unsynced")
	}
}

func TestMergeRoutineOverwritesCleanRow(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()

	r := models.NewRoutine(userID, "Old Name")
	if err := db.MergeRoutine(r); err != nil {
		t.Fatalf("MergeRoutine failed: %v", err)
	}

	server := *r
	server.Name = "New Name"
	if err := db.MergeRoutine(&server); err != nil {
		t.Fatalf("MergeRoutine failed: %v", err)
	}

	got, err := db.GetRoutine(r.ID)
	if err != nil {
		t.Fatalf("GetRoutine failed: %v", err)
	}
	if got.Name != "New Name" {
		t.Errorf("Name = %s, want New Name", got.Name)
	}
}

func TestDeleteRoutineCascades(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	r, w := seedRoutine(t, db, userID)

	we := models.NewWorkoutExercise(w.ID, uuid.New(), 1)
	if err := db.PutWorkoutExercise(we); err != nil {
		t.Fatalf("PutWorkoutExercise failed: %v", err)
	}

	if err := db.DeleteRoutine(r.ID); err != nil {
		t.Fatalf("DeleteRoutine failed: %v", err)
	}

	if _, err := db.GetRoutine(r.ID); err != ErrNotFound {
		t.Errorf("routine should be gone, got %v", err)
	}
	workouts, err := db.ListWorkouts(r.ID)
	if err != nil {
		t.Fatalf("ListWorkouts failed: %v", err)
	}
	if len(workouts) != 0 {
		t.Errorf("expected 0 workouts after cascade, got %d", len(workouts))
	}
	exercises, err := db.ListWorkoutExercises(w.ID)
	if err != nil {
		t.Fatalf("ListWorkoutExercises failed: %v", err)
	}
	if len(exercises) != 0 {
		t.Errorf("expected 0 workout exercises after cascade, got %d", len(exercises))
	}
}

func TestGetRoutineWithWorkouts(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	r, w := seedRoutine(t, db, userID)

	ex := models.NewExercise("Bench Press")
	if err := db.MergeExercise(ex); err != nil {
		t.Fatalf("MergeExercise failed: %v", err)
	}
	we := models.NewWorkoutExercise(w.ID, ex.ID, 1)
	if err := db.PutWorkoutExercise(we); err != nil {
		t.Fatalf("PutWorkoutExercise failed: %v", err)
	}

	got, err := db.GetRoutineWithWorkouts(r.ID)
	if err != nil {
		t.Fatalf("GetRoutineWithWorkouts failed: %v", err)
	}
	if len(got.Workouts) != 1 {
		t.Fatalf("expected 1 workout, got %d", len(got.Workouts))
	}
	if len(got.Workouts[0].Exercises) != 1 {
		t.Fatalf("expected 1 exercise, got %d", len(got.Workouts[0].Exercises))
	}
	if got.Workouts[0].Exercises[0].ExerciseName != "Bench Press" {
		t.Errorf("ExerciseName = %s, want Bench Press", got.Workouts[0].Exercises[0].ExerciseName)
	}
}

func TestListWorkoutExercisesOrdered(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	_, w := seedRoutine(t, db, userID)

	// Insert out of order; reads must come back by order_index.
	second := models.NewWorkoutExercise(w.ID, uuid.New(), 2)
	first := models.NewWorkoutExercise(w.ID, uuid.New(), 1)
	if err := db.PutWorkoutExercise(second); err != nil {
		t.Fatalf("PutWorkoutExercise failed: %v", err)
	}
	if err := db.PutWorkoutExercise(first); err != nil {
		t.Fatalf("PutWorkoutExercise failed: %v", err)
	}

	list, err := db.ListWorkoutExercises(w.ID)
	if err != nil {
		t.Fatalf("ListWorkoutExercises failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 exercises, got %d", len(list))
	}
	if list[0].OrderIndex != 1 || list[1].OrderIndex != 2 {
		t.Errorf("exercises not ordered by order_index: %d, %d", list[0].OrderIndex, list[1].OrderIndex)
	}
}
