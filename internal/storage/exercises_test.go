// ABOUTME: Tests for the exercise catalog and user mirrors.
package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"kraftlog/internal/models"
)

func TestMergeAndListExercises(t *testing.T) {
	db := setupTestDB(t)

	squat := models.NewExercise("Squat")
	bench := models.NewExercise("Bench Press")
	if err := db.MergeExercise(squat); err != nil {
		t.Fatalf("MergeExercise failed: %v", err)
	}
	if err := db.MergeExercise(bench); err != nil {
		t.Fatalf("MergeExercise failed: %v", err)
	}

	// Catalog refresh replays the same rows; no duplicates.
	squat.Name = "Back Squat"
	if err := db.MergeExercise(squat); err != nil {
		t.Fatalf("MergeExercise replay failed: %v", err)
	}

	list, err := db.ListExercises()
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 exercises, got %d", len(list))
	}
	if list[0].Name != "Back Squat" || list[1].Name != "Bench Press" {
		t.Errorf("exercises not sorted by name: %s, %s", list[0].Name, list[1].Name)
	}
}

func TestMergeAndGetUser(t *testing.T) {
	db := setupTestDB(t)

	now := time.Now().UTC()
	u := &models.User{
		ID:        uuid.New(),
		Name:      "Lifter",
		Surname:   "McGee",
		Email:     "lifter@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.MergeUser(u); err != nil {
		t.Fatalf("MergeUser failed: %v", err)
	}

	got, err := db.GetUser(u.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if got.Email != u.Email {
		t.Errorf("Email = %s, want %s", got.Email, u.Email)
	}
}
