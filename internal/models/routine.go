// ABOUTME: Routine, Workout, and WorkoutExercise models for training plans.
// ABOUTME: A routine owns workouts; workouts reference exercises via ordered links.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Routine is a named training plan owned by a user.
type Routine struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Synced      bool      `json:"-"`
	Workouts    []Workout `json:"workouts,omitempty"` // Populated when fetching nested
}

// NewRoutine creates a new Routine with generated UUID and current timestamps.
func NewRoutine(userID uuid.UUID, name string) *Routine {
	now := time.Now().UTC()
	return &Routine{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// WithDescription sets the routine description.
func (r *Routine) WithDescription(desc string) *Routine {
	r.Description = &desc
	return r
}

// Workout is one training day within a routine.
type Workout struct {
	ID          uuid.UUID         `json:"id"`
	RoutineID   uuid.UUID         `json:"routineId"`
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	DayOfWeek   *int              `json:"dayOfWeek,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Synced      bool              `json:"-"`
	Exercises   []WorkoutExercise `json:"workoutExercises,omitempty"`
}

// NewWorkout creates a new Workout attached to a routine.
func NewWorkout(routineID uuid.UUID, name string) *Workout {
	now := time.Now().UTC()
	return &Workout{
		ID:        uuid.New(),
		RoutineID: routineID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// WorkoutExercise links an exercise into a workout with prescription data.
// OrderIndex is unique within a workout and defines session order.
type WorkoutExercise struct {
	ID              uuid.UUID `json:"id"`
	WorkoutID       uuid.UUID `json:"workoutId"`
	ExerciseID      uuid.UUID `json:"exerciseId"`
	OrderIndex      int       `json:"orderIndex"`
	Sets            *int      `json:"sets,omitempty"`
	Reps            *int      `json:"reps,omitempty"`
	RestTimeSeconds *int      `json:"restTimeSeconds,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	Synced          bool      `json:"-"`

	// ExerciseName is joined in from the exercises table on local reads.
	ExerciseName string `json:"exerciseName,omitempty"`
}

// NewWorkoutExercise creates a new exercise link at the given order position.
func NewWorkoutExercise(workoutID, exerciseID uuid.UUID, orderIndex int) *WorkoutExercise {
	return &WorkoutExercise{
		ID:         uuid.New(),
		WorkoutID:  workoutID,
		ExerciseID: exerciseID,
		OrderIndex: orderIndex,
		CreatedAt:  time.Now().UTC(),
	}
}
