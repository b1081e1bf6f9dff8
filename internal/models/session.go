// ABOUTME: Logged-session models: LogRoutine, LogWorkout, LogExercise, LogSet.
// ABOUTME: The recorded hierarchy, as opposed to the prescriptive Routine plan.
package models

import (
	"time"

	"github.com/google/uuid"
)

// LogRoutine is one workout session, possibly spanning multiple workouts.
// A nil EndDatetime means the session is still in progress.
type LogRoutine struct {
	ID            uuid.UUID    `json:"id"`
	RoutineID     uuid.UUID    `json:"routineId"`
	UserID        uuid.UUID    `json:"userId"`
	StartDatetime time.Time    `json:"startDatetime"`
	EndDatetime   *time.Time   `json:"endDatetime,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	Synced        bool         `json:"-"`
	LogWorkouts   []LogWorkout `json:"logWorkouts,omitempty"`
}

// NewLogRoutine starts a session against a routine.
func NewLogRoutine(routineID, userID uuid.UUID) *LogRoutine {
	now := time.Now().UTC()
	return &LogRoutine{
		ID:            uuid.New(),
		RoutineID:     routineID,
		UserID:        userID,
		StartDatetime: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// LogWorkout records one workout performed within a session.
type LogWorkout struct {
	ID            uuid.UUID     `json:"id"`
	LogRoutineID  uuid.UUID     `json:"logRoutineId"`
	WorkoutID     uuid.UUID     `json:"workoutId"`
	StartDatetime time.Time     `json:"startDatetime"`
	EndDatetime   *time.Time    `json:"endDatetime,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	Synced        bool          `json:"-"`
	LogExercises  []LogExercise `json:"logExercises,omitempty"`
}

// NewLogWorkout starts recording a workout within a session.
func NewLogWorkout(logRoutineID, workoutID uuid.UUID) *LogWorkout {
	now := time.Now().UTC()
	return &LogWorkout{
		ID:            uuid.New(),
		LogRoutineID:  logRoutineID,
		WorkoutID:     workoutID,
		StartDatetime: now,
		CreatedAt:     now,
	}
}

// LogExercise records one exercise performed within a logged workout.
// ExerciseName is denormalized so history survives exercise renames/deletion.
type LogExercise struct {
	ID            uuid.UUID  `json:"id"`
	LogWorkoutID  uuid.UUID  `json:"logWorkoutId"`
	ExerciseID    uuid.UUID  `json:"exerciseId"`
	ExerciseName  string     `json:"exerciseName,omitempty"`
	StartDatetime *time.Time `json:"startDatetime,omitempty"`
	EndDatetime   *time.Time `json:"endDatetime,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	Repetitions   *int       `json:"repetitions,omitempty"`
	Completed     bool       `json:"completed"`
	CreatedAt     time.Time  `json:"createdAt"`
	Synced        bool       `json:"-"`
	LogSets       []LogSet   `json:"logSets,omitempty"`
}

// NewLogExercise starts recording an exercise within a logged workout.
func NewLogExercise(logWorkoutID, exerciseID uuid.UUID, exerciseName string) *LogExercise {
	now := time.Now().UTC()
	return &LogExercise{
		ID:            uuid.New(),
		LogWorkoutID:  logWorkoutID,
		ExerciseID:    exerciseID,
		ExerciseName:  exerciseName,
		StartDatetime: &now,
		CreatedAt:     now,
	}
}

// LogSet is one performed set. WeightKg is nil for bodyweight exercises.
// SetNumber is 1-based and contiguous within an exercise.
type LogSet struct {
	ID              uuid.UUID `json:"id"`
	LogExerciseID   uuid.UUID `json:"logExerciseId"`
	SetNumber       int       `json:"setNumber"`
	Reps            int       `json:"reps"`
	WeightKg        *float64  `json:"weightKg,omitempty"`
	RestTimeSeconds *int      `json:"restTimeSeconds,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	Synced          bool      `json:"-"`
}

// NewLogSet records a performed set at the given position.
func NewLogSet(logExerciseID uuid.UUID, setNumber, reps int) *LogSet {
	now := time.Now().UTC()
	return &LogSet{
		ID:            uuid.New(),
		LogExerciseID: logExerciseID,
		SetNumber:     setNumber,
		Reps:          reps,
		Timestamp:     now,
		CreatedAt:     now,
	}
}

// WithWeight sets the weight for a weighted set.
func (s *LogSet) WithWeight(kg float64) *LogSet {
	s.WeightKg = &kg
	return s
}
