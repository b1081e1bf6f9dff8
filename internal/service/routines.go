// ABOUTME: Offline-aware routine service consumed by the UI layer.
// ABOUTME: Reads hit the local mirror; writes go local-first plus an outbox entry.
package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"kraftlog/internal/models"
	"kraftlog/internal/storage"
	"kraftlog/internal/sync"
)

// Routines serves routine reads and writes with offline-first semantics:
// every mutation lands in the local store and the outbox before any
// network traffic, so the UI never blocks on connectivity. On platforms
// without persistent storage there is no mirror to land in, so every
// mutation goes straight to the server instead.
type Routines struct {
	store  storage.Store
	engine *sync.Engine
	logger *slog.Logger
	direct bool
}

// NewRoutines wires the routine service.
func NewRoutines(store storage.Store, engine *sync.Engine, logger *slog.Logger) *Routines {
	if logger == nil {
		logger = slog.Default()
	}
	return &Routines{store: store, engine: engine, logger: logger, direct: !store.Persistent()}
}

// GetRoutinesByUserID returns the user's routines from the local mirror.
// When online is true it first attempts a pull so the answer is fresh;
// a failed pull falls back to local data silently.
func (s *Routines) GetRoutinesByUserID(ctx context.Context, userID uuid.UUID, online bool) ([]*models.Routine, error) {
	if s.direct {
		routines, err := s.engine.FetchUserRoutines(ctx, userID)
		if err != nil {
			return nil, err
		}
		out := make([]*models.Routine, len(routines))
		for i := range routines {
			out[i] = &routines[i]
		}
		return out, nil
	}
	if online {
		if err := s.engine.PullFromServer(ctx, userID); err != nil {
			s.logger.Debug("pull failed, using local data", "error", err)
		}
	}
	return s.store.ListRoutinesByUser(userID)
}

// GetRoutine returns one routine with its workouts and exercise links.
func (s *Routines) GetRoutine(id uuid.UUID) (*models.Routine, error) {
	if s.direct {
		var r models.Routine
		if err := s.engine.Fetch(context.Background(), models.KindRoutine, id, &r); err != nil {
			return nil, err
		}
		return &r, nil
	}
	return s.store.GetRoutineWithWorkouts(id)
}

// CreateRoutine creates a routine locally, queues the CREATE, and kicks
// off a background sync attempt.
func (s *Routines) CreateRoutine(userID uuid.UUID, name, description string) (*models.Routine, error) {
	r := models.NewRoutine(userID, name)
	if description != "" {
		r.WithDescription(description)
	}
	if s.direct {
		return r, s.engine.PushNow(context.Background(), models.KindRoutine, r.ID, models.OpCreate, r)
	}
	if err := s.store.PutRoutine(r); err != nil {
		return nil, err
	}
	s.engine.Enqueue(models.KindRoutine, r.ID, models.OpCreate, r)
	s.backgroundSync()
	return r, nil
}

// UpdateRoutine applies an edit locally and queues the UPDATE.
func (s *Routines) UpdateRoutine(r *models.Routine) error {
	if s.direct {
		return s.engine.PushNow(context.Background(), models.KindRoutine, r.ID, models.OpUpdate, r)
	}
	if err := s.store.PutRoutine(r); err != nil {
		return err
	}
	s.engine.Enqueue(models.KindRoutine, r.ID, models.OpUpdate, r)
	s.backgroundSync()
	return nil
}

// DeleteRoutine removes a routine locally (children cascade) and queues
// the DELETE; the server cascades on its side when the item is pushed.
func (s *Routines) DeleteRoutine(id uuid.UUID) error {
	if s.direct {
		return s.engine.PushNow(context.Background(), models.KindRoutine, id, models.OpDelete, struct{}{})
	}
	if err := s.store.DeleteRoutine(id); err != nil {
		return err
	}
	s.engine.Enqueue(models.KindRoutine, id, models.OpDelete, struct{}{})
	s.backgroundSync()
	return nil
}

// AddWorkout creates a workout under a routine locally and queues it.
func (s *Routines) AddWorkout(w *models.Workout) error {
	if s.direct {
		return s.engine.PushNow(context.Background(), models.KindWorkout, w.ID, models.OpCreate, w)
	}
	if err := s.store.PutWorkout(w); err != nil {
		return err
	}
	s.engine.Enqueue(models.KindWorkout, w.ID, models.OpCreate, w)
	s.backgroundSync()
	return nil
}

// AddWorkoutExercise links an exercise into a workout locally and queues it.
func (s *Routines) AddWorkoutExercise(we *models.WorkoutExercise) error {
	if s.direct {
		return s.engine.PushNow(context.Background(), models.KindWorkoutExercise, we.ID, models.OpCreate, we)
	}
	if err := s.store.PutWorkoutExercise(we); err != nil {
		return err
	}
	s.engine.Enqueue(models.KindWorkoutExercise, we.ID, models.OpCreate, we)
	s.backgroundSync()
	return nil
}

// ListExercises returns the mirrored exercise catalog.
func (s *Routines) ListExercises() ([]*models.Exercise, error) {
	if s.direct {
		exercises, err := s.engine.FetchExercises(context.Background())
		if err != nil {
			return nil, err
		}
		out := make([]*models.Exercise, len(exercises))
		for i := range exercises {
			out[i] = &exercises[i]
		}
		return out, nil
	}
	return s.store.ListExercises()
}

// backgroundSync fires one asynchronous sync attempt. Failure is fine;
// the outbox holds the change until some later pass drains it.
func (s *Routines) backgroundSync() {
	go func() {
		if err := s.engine.SyncAll(context.Background(), false); err != nil {
			s.logger.Debug("background sync failed, will retry later", "error", err)
		}
	}()
}
