// ABOUTME: Closed enumeration of syncable entity kinds and queue operations.
// ABOUTME: Each kind carries its local table name and REST endpoint path.
package models

import "fmt"

// EntityKind identifies one of the nine syncable entity types.
// It is a closed set: every switch over it is exhaustive, so an
// unknown kind is a programming error surfaced early instead of a
// silent fallback endpoint.
type EntityKind int

const (
	KindUser EntityKind = iota
	KindRoutine
	KindWorkout
	KindExercise
	KindWorkoutExercise
	KindLogRoutine
	KindLogWorkout
	KindLogExercise
	KindLogSet
)

// EntityKinds lists all kinds in sync-refresh order: plan entities
// before the logged hierarchy, parents before children.
var EntityKinds = []EntityKind{
	KindUser,
	KindRoutine,
	KindWorkout,
	KindExercise,
	KindWorkoutExercise,
	KindLogRoutine,
	KindLogWorkout,
	KindLogExercise,
	KindLogSet,
}

// String returns the local table name for the kind.
func (k EntityKind) String() string {
	switch k {
	case KindUser:
		return "users"
	case KindRoutine:
		return "routines"
	case KindWorkout:
		return "workouts"
	case KindExercise:
		return "exercises"
	case KindWorkoutExercise:
		return "workout_exercises"
	case KindLogRoutine:
		return "log_routines"
	case KindLogWorkout:
		return "log_workouts"
	case KindLogExercise:
		return "log_exercises"
	case KindLogSet:
		return "log_sets"
	}
	return fmt.Sprintf("EntityKind(%d)", int(k))
}

// Endpoint returns the REST collection path for the kind.
func (k EntityKind) Endpoint() string {
	switch k {
	case KindUser:
		return "/users"
	case KindRoutine:
		return "/routines"
	case KindWorkout:
		return "/workouts"
	case KindExercise:
		return "/exercises"
	case KindWorkoutExercise:
		return "/workout-exercises"
	case KindLogRoutine:
		return "/log-routines"
	case KindLogWorkout:
		return "/log-workouts"
	case KindLogExercise:
		return "/log-exercises"
	case KindLogSet:
		return "/log-sets"
	}
	return ""
}

// ParseEntityKind maps a stored table name back to its kind.
// Queue rows persist the string form, so unknown names can appear
// after a downgrade; callers must treat the error as a dead item.
func ParseEntityKind(name string) (EntityKind, error) {
	for _, k := range EntityKinds {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown entity kind: %q", name)
}

// Operation is a queued mutation type.
type Operation string

const (
	OpCreate Operation = "CREATE"
	OpUpdate Operation = "UPDATE"
	OpDelete Operation = "DELETE"
)

// Valid reports whether the operation is one of the known values.
func (o Operation) Valid() bool {
	switch o {
	case OpCreate, OpUpdate, OpDelete:
		return true
	}
	return false
}
