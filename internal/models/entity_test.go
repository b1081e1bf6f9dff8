// ABOUTME: Tests for EntityKind and Operation.
// ABOUTME: Validates table names, endpoint mapping, and parse round trips.
package models

import (
	"testing"
)

func TestEntityKindTableAndEndpoint(t *testing.T) {
	tests := []struct {
		kind     EntityKind
		table    string
		endpoint string
	}{
		{KindUser, "users", "/users"},
		{KindRoutine, "routines", "/routines"},
		{KindWorkoutExercise, "workout_exercises", "/workout-exercises"},
		{KindLogRoutine, "log_routines", "/log-routines"},
		{KindLogSet, "log_sets", "/log-sets"},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.table {
				t.Errorf("String() = %s, want %s", got, tt.table)
			}
			if got := tt.kind.Endpoint(); got != tt.endpoint {
				t.Errorf("Endpoint() = %s, want %s", got, tt.endpoint)
			}
		})
	}
}

func TestParseEntityKindRoundTrip(t *testing.T) {
	for _, kind := range EntityKinds {
		parsed, err := ParseEntityKind(kind.String())
		if err != nil {
			t.Errorf("ParseEntityKind(%s) failed: %v", kind, err)
		}
		if parsed != kind {
			t.Errorf("ParseEntityKind(%s) = %v, want %v", kind, parsed, kind)
		}
	}
}

func TestParseEntityKindUnknown(t *testing.T) {
	if _, err := ParseEntityKind("metrics"); err == nil {
		t.Error("expected error for unknown entity kind")
	}
}

func TestEntityKindsCoversEveryKind(t *testing.T) {
	// Pull iterates EntityKinds; a kind missing from the slice would
	// silently never refresh.
	if len(EntityKinds) != 9 {
		t.Errorf("EntityKinds has %d kinds, want 9", len(EntityKinds))
	}
	seen := map[EntityKind]bool{}
	for _, k := range EntityKinds {
		if seen[k] {
			t.Errorf("duplicate kind %v", k)
		}
		seen[k] = true
	}
}

func TestOperationValid(t *testing.T) {
	for _, op := range []Operation{OpCreate, OpUpdate, OpDelete} {
		if !op.Valid() {
			t.Errorf("%s should be valid", op)
		}
	}
	if Operation("UPSERT").Valid() {
		t.Error("UPSERT should be invalid")
	}
	if Operation("").Valid() {
		t.Error("empty operation should be invalid")
	}
}

func TestNewRoutineDefaults(t *testing.T) {
	r := NewRoutine(NewExercise("x").ID, "Push Day")

	if r.ID.String() == "" {
		t.Error("expected UUID to be set")
	}
	if r.CreatedAt.IsZero() || r.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
	if r.Synced {
		t.Error("new models start unsynced")
	}
}

func TestNewLogSetDefaults(t *testing.T) {
	s := NewLogSet(NewExercise("x").ID, 3, 8)

	if s.SetNumber != 3 || s.Reps != 8 {
		t.Errorf("SetNumber/Reps = %d/%d, want 3/8", s.SetNumber, s.Reps)
	}
	if s.WeightKg != nil {
		t.Error("weight defaults to nil")
	}
	if s.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	s.WithWeight(82.5)
	if s.WeightKg == nil || *s.WeightKg != 82.5 {
		t.Error("WithWeight not applied")
	}
}
