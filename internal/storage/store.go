// ABOUTME: Store interface for the local mirror, plus the API-only NullStore.
// ABOUTME: Backend is picked once at startup; callers never branch on platform.
package storage

import (
	"time"

	"github.com/google/uuid"
	"kraftlog/internal/models"
)

// Store is the storage capability consumed by the sync engine and the
// offline-aware services. Two implementations exist: the SQLite DB and
// NullStore for platforms without embedded persistent storage. On the
// latter, reads return empty results and writes are safe no-ops; the
// services consult Persistent to route mutations straight to the server
// instead of relying on a mirror that is not there.
type Store interface {
	// Persistent reports whether writes survive in a local mirror.
	// When false, callers must not trust the mirror or the outbox and
	// should talk to the server directly.
	Persistent() bool

	// Routine hierarchy
	PutRoutine(r *models.Routine) error
	GetRoutine(id uuid.UUID) (*models.Routine, error)
	GetRoutineWithWorkouts(id uuid.UUID) (*models.Routine, error)
	ListRoutinesByUser(userID uuid.UUID) ([]*models.Routine, error)
	DeleteRoutine(id uuid.UUID) error
	MergeRoutine(r *models.Routine) error

	PutWorkout(w *models.Workout) error
	ListWorkouts(routineID uuid.UUID) ([]*models.Workout, error)
	DeleteWorkout(id uuid.UUID) error
	MergeWorkout(w *models.Workout) error

	PutWorkoutExercise(we *models.WorkoutExercise) error
	ListWorkoutExercises(workoutID uuid.UUID) ([]*models.WorkoutExercise, error)
	DeleteWorkoutExercise(id uuid.UUID) error
	MergeWorkoutExercise(we *models.WorkoutExercise) error

	// Exercise catalog and users (pull-only mirrors)
	MergeExercise(e *models.Exercise) error
	GetExercise(id uuid.UUID) (*models.Exercise, error)
	ListExercises() ([]*models.Exercise, error)
	MergeUser(u *models.User) error
	GetUser(id uuid.UUID) (*models.User, error)

	// Logged-session hierarchy
	PutLogRoutine(lr *models.LogRoutine) error
	GetLogRoutine(id uuid.UUID) (*models.LogRoutine, error)
	ListLogRoutinesByUser(userID uuid.UUID) ([]*models.LogRoutine, error)
	DeleteLogRoutine(id uuid.UUID) error
	MergeLogRoutine(lr *models.LogRoutine) error

	PutLogWorkout(lw *models.LogWorkout) error
	GetLogWorkout(id uuid.UUID) (*models.LogWorkout, error)
	ListLogWorkouts(logRoutineID uuid.UUID) ([]*models.LogWorkout, error)
	MergeLogWorkout(lw *models.LogWorkout) error

	PutLogExercise(le *models.LogExercise) error
	GetLogExercise(id uuid.UUID) (*models.LogExercise, error)
	ListLogExercises(logWorkoutID uuid.UUID) ([]*models.LogExercise, error)
	MergeLogExercise(le *models.LogExercise) error

	PutLogSet(s *models.LogSet) error
	ListLogSets(logExerciseID uuid.UUID) ([]*models.LogSet, error)
	LogSetParent(id uuid.UUID) (uuid.UUID, error)
	DeleteLogSet(id uuid.UUID) error
	MergeLogSet(s *models.LogSet) error

	// Outbox
	EnqueueChange(kind models.EntityKind, entityID uuid.UUID, op models.Operation, payload any) error
	OldestQueueItems(limit int) ([]*QueueItem, error)
	IncrementRetry(itemID int64) error
	DeleteQueueItem(itemID int64) error
	PendingCount() (int, error)

	// Sync bookkeeping
	GetSyncState(key string) (string, error)
	SetSyncState(key, value string) error

	// Lifecycle
	Close() error
}

// QueueItem is one pending mutation awaiting confirmation by the server.
type QueueItem struct {
	ID         int64
	EntityType string
	EntityID   string
	Operation  models.Operation
	Data       []byte
	CreatedAt  time.Time
	RetryCount int
}

// NullStore is the Store for platforms without persistent local storage.
// Every read returns empty, every write succeeds without effect; the app
// runs in API-only mode and the sync engine has nothing to drain.
type NullStore struct{}

// NewNullStore returns the no-op store.
func NewNullStore() *NullStore { return &NullStore{} }

func (*NullStore) Persistent() bool { return false }

func (*NullStore) PutRoutine(*models.Routine) error                             { return nil }
func (*NullStore) GetRoutine(uuid.UUID) (*models.Routine, error)                { return nil, ErrNotFound }
func (*NullStore) GetRoutineWithWorkouts(uuid.UUID) (*models.Routine, error)    { return nil, ErrNotFound }
func (*NullStore) ListRoutinesByUser(uuid.UUID) ([]*models.Routine, error)      { return nil, nil }
func (*NullStore) DeleteRoutine(uuid.UUID) error                                { return nil }
func (*NullStore) MergeRoutine(*models.Routine) error                           { return nil }
func (*NullStore) PutWorkout(*models.Workout) error                             { return nil }
func (*NullStore) ListWorkouts(uuid.UUID) ([]*models.Workout, error)            { return nil, nil }
func (*NullStore) DeleteWorkout(uuid.UUID) error                                { return nil }
func (*NullStore) MergeWorkout(*models.Workout) error                           { return nil }
func (*NullStore) PutWorkoutExercise(*models.WorkoutExercise) error             { return nil }
func (*NullStore) ListWorkoutExercises(uuid.UUID) ([]*models.WorkoutExercise, error) {
	return nil, nil
}
func (*NullStore) DeleteWorkoutExercise(uuid.UUID) error                        { return nil }
func (*NullStore) MergeWorkoutExercise(*models.WorkoutExercise) error           { return nil }
func (*NullStore) MergeExercise(*models.Exercise) error                         { return nil }
func (*NullStore) GetExercise(uuid.UUID) (*models.Exercise, error)              { return nil, ErrNotFound }
func (*NullStore) ListExercises() ([]*models.Exercise, error)                   { return nil, nil }
func (*NullStore) MergeUser(*models.User) error                                 { return nil }
func (*NullStore) GetUser(uuid.UUID) (*models.User, error)                      { return nil, ErrNotFound }
func (*NullStore) PutLogRoutine(*models.LogRoutine) error                       { return nil }
func (*NullStore) GetLogRoutine(uuid.UUID) (*models.LogRoutine, error)          { return nil, ErrNotFound }
func (*NullStore) ListLogRoutinesByUser(uuid.UUID) ([]*models.LogRoutine, error) {
	return nil, nil
}
func (*NullStore) DeleteLogRoutine(uuid.UUID) error                             { return nil }
func (*NullStore) MergeLogRoutine(*models.LogRoutine) error                     { return nil }
func (*NullStore) PutLogWorkout(*models.LogWorkout) error                       { return nil }
func (*NullStore) GetLogWorkout(uuid.UUID) (*models.LogWorkout, error)          { return nil, ErrNotFound }
func (*NullStore) ListLogWorkouts(uuid.UUID) ([]*models.LogWorkout, error)      { return nil, nil }
func (*NullStore) MergeLogWorkout(*models.LogWorkout) error                     { return nil }
func (*NullStore) PutLogExercise(*models.LogExercise) error                     { return nil }
func (*NullStore) GetLogExercise(uuid.UUID) (*models.LogExercise, error)        { return nil, ErrNotFound }
func (*NullStore) ListLogExercises(uuid.UUID) ([]*models.LogExercise, error)    { return nil, nil }
func (*NullStore) MergeLogExercise(*models.LogExercise) error                   { return nil }
func (*NullStore) PutLogSet(*models.LogSet) error                               { return nil }
func (*NullStore) ListLogSets(uuid.UUID) ([]*models.LogSet, error)              { return nil, nil }
func (*NullStore) LogSetParent(uuid.UUID) (uuid.UUID, error)                    { return uuid.Nil, ErrNotFound }
func (*NullStore) DeleteLogSet(uuid.UUID) error                                 { return nil }
func (*NullStore) MergeLogSet(*models.LogSet) error                             { return nil }
func (*NullStore) EnqueueChange(models.EntityKind, uuid.UUID, models.Operation, any) error {
	return nil
}
func (*NullStore) OldestQueueItems(int) ([]*QueueItem, error)                   { return nil, nil }
func (*NullStore) IncrementRetry(int64) error                                   { return nil }
func (*NullStore) DeleteQueueItem(int64) error                                  { return nil }
func (*NullStore) PendingCount() (int, error)                                   { return 0, nil }
func (*NullStore) GetSyncState(string) (string, error)                          { return "", nil }
func (*NullStore) SetSyncState(string, string) error                            { return nil }
func (*NullStore) Close() error                                                 { return nil }

var (
	_ Store = (*DB)(nil)
	_ Store = (*NullStore)(nil)
)
