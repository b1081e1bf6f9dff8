// ABOUTME: Offline-aware session logging over the log-* hierarchy.
// ABOUTME: Start/record/complete operations write local-first and queue for sync.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"kraftlog/internal/models"
	"kraftlog/internal/storage"
	"kraftlog/internal/sync"
)

// Sessions records live workout sessions: the log-routine down to
// individual sets. Everything works offline; mutations queue for sync.
// On platforms without persistent storage every operation talks to the
// server directly instead.
type Sessions struct {
	store  storage.Store
	engine *sync.Engine
	logger *slog.Logger
	direct bool
}

// NewSessions wires the session logging service.
func NewSessions(store storage.Store, engine *sync.Engine, logger *slog.Logger) *Sessions {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sessions{store: store, engine: engine, logger: logger, direct: !store.Persistent()}
}

// StartSession opens a new log-routine for the user.
func (s *Sessions) StartSession(routineID, userID uuid.UUID) (*models.LogRoutine, error) {
	lr := models.NewLogRoutine(routineID, userID)
	if s.direct {
		return lr, s.engine.PushNow(context.Background(), models.KindLogRoutine, lr.ID, models.OpCreate, lr)
	}
	if err := s.store.PutLogRoutine(lr); err != nil {
		return nil, err
	}
	s.engine.Enqueue(models.KindLogRoutine, lr.ID, models.OpCreate, lr)
	s.backgroundSync()
	return lr, nil
}

// FinishSession stamps the session's end datetime.
func (s *Sessions) FinishSession(id uuid.UUID) (*models.LogRoutine, error) {
	lr, err := s.getLogRoutine(id)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	lr.EndDatetime = &now
	lr.UpdatedAt = now
	if s.direct {
		return lr, s.engine.PushNow(context.Background(), models.KindLogRoutine, lr.ID, models.OpUpdate, lr)
	}
	if err := s.store.PutLogRoutine(lr); err != nil {
		return nil, err
	}
	s.engine.Enqueue(models.KindLogRoutine, lr.ID, models.OpUpdate, lr)
	s.backgroundSync()
	return lr, nil
}

// StartWorkout opens a logged workout within a session.
func (s *Sessions) StartWorkout(logRoutineID, workoutID uuid.UUID) (*models.LogWorkout, error) {
	lw := models.NewLogWorkout(logRoutineID, workoutID)
	if s.direct {
		return lw, s.engine.PushNow(context.Background(), models.KindLogWorkout, lw.ID, models.OpCreate, lw)
	}
	if err := s.store.PutLogWorkout(lw); err != nil {
		return nil, err
	}
	s.engine.Enqueue(models.KindLogWorkout, lw.ID, models.OpCreate, lw)
	s.backgroundSync()
	return lw, nil
}

// FinishWorkout stamps a logged workout's end datetime.
func (s *Sessions) FinishWorkout(id uuid.UUID) (*models.LogWorkout, error) {
	lw, err := s.getLogWorkout(id)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	lw.EndDatetime = &now
	if s.direct {
		return lw, s.engine.PushNow(context.Background(), models.KindLogWorkout, lw.ID, models.OpUpdate, lw)
	}
	if err := s.store.PutLogWorkout(lw); err != nil {
		return nil, err
	}
	s.engine.Enqueue(models.KindLogWorkout, lw.ID, models.OpUpdate, lw)
	s.backgroundSync()
	return lw, nil
}

// StartExercise opens a logged exercise, denormalizing the exercise name
// from the catalog mirror so history survives later renames or deletion.
func (s *Sessions) StartExercise(logWorkoutID, exerciseID uuid.UUID) (*models.LogExercise, error) {
	name := ""
	if s.direct {
		var ex models.Exercise
		if err := s.engine.Fetch(context.Background(), models.KindExercise, exerciseID, &ex); err == nil {
			name = ex.Name
		}
		le := models.NewLogExercise(logWorkoutID, exerciseID, name)
		return le, s.engine.PushNow(context.Background(), models.KindLogExercise, le.ID, models.OpCreate, le)
	}
	if ex, err := s.store.GetExercise(exerciseID); err == nil && ex != nil {
		name = ex.Name
	}
	le := models.NewLogExercise(logWorkoutID, exerciseID, name)
	if err := s.store.PutLogExercise(le); err != nil {
		return nil, err
	}
	s.engine.Enqueue(models.KindLogExercise, le.ID, models.OpCreate, le)
	s.backgroundSync()
	return le, nil
}

// CompleteExercise marks a logged exercise done and stamps its end time.
func (s *Sessions) CompleteExercise(id uuid.UUID) (*models.LogExercise, error) {
	le, err := s.getLogExercise(id)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	le.Completed = true
	le.EndDatetime = &now
	if s.direct {
		return le, s.engine.PushNow(context.Background(), models.KindLogExercise, le.ID, models.OpUpdate, le)
	}
	if err := s.store.PutLogExercise(le); err != nil {
		return nil, err
	}
	s.engine.Enqueue(models.KindLogExercise, le.ID, models.OpUpdate, le)
	s.backgroundSync()
	return le, nil
}

// RecordSet appends a performed set, numbered after the exercise's
// current last set.
func (s *Sessions) RecordSet(logExerciseID uuid.UUID, reps int, weightKg *float64) (*models.LogSet, error) {
	existing, err := s.SessionSets(logExerciseID)
	if err != nil {
		return nil, err
	}
	set := models.NewLogSet(logExerciseID, len(existing)+1, reps)
	set.WeightKg = weightKg
	if s.direct {
		return set, s.engine.PushNow(context.Background(), models.KindLogSet, set.ID, models.OpCreate, set)
	}
	if err := s.store.PutLogSet(set); err != nil {
		return nil, err
	}
	s.engine.Enqueue(models.KindLogSet, set.ID, models.OpCreate, set)
	s.backgroundSync()
	return set, nil
}

// DeleteSet removes a set. Remaining sets are renumbered contiguously
// from 1, and each renumbered set is re-queued as an UPDATE so the
// server converges on the same numbering.
func (s *Sessions) DeleteSet(id uuid.UUID) error {
	if s.direct {
		return s.deleteSetDirect(id)
	}

	// Need the parent before the row disappears.
	logExerciseID, err := s.store.LogSetParent(id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteLogSet(id); err != nil {
		return err
	}
	s.engine.Enqueue(models.KindLogSet, id, models.OpDelete, struct{}{})

	survivors, err := s.store.ListLogSets(logExerciseID)
	if err != nil {
		return err
	}
	for _, set := range survivors {
		if !set.Synced {
			s.engine.Enqueue(models.KindLogSet, set.ID, models.OpUpdate, set)
		}
	}
	s.backgroundSync()
	return nil
}

// deleteSetDirect deletes a set on the server and renumbers the
// surviving sets there, mirroring the local renumbering contract.
func (s *Sessions) deleteSetDirect(id uuid.UUID) error {
	ctx := context.Background()
	var doomed models.LogSet
	if err := s.engine.Fetch(ctx, models.KindLogSet, id, &doomed); err != nil {
		return err
	}
	if err := s.engine.PushNow(ctx, models.KindLogSet, id, models.OpDelete, struct{}{}); err != nil {
		return err
	}

	survivors, err := s.SessionSets(doomed.LogExerciseID)
	if err != nil {
		return err
	}
	for i, set := range survivors {
		if set.SetNumber == i+1 {
			continue
		}
		set.SetNumber = i + 1
		if err := s.engine.PushNow(ctx, models.KindLogSet, set.ID, models.OpUpdate, set); err != nil {
			return err
		}
	}
	return nil
}

// SessionSets lists an exercise's sets in set-number order.
func (s *Sessions) SessionSets(logExerciseID uuid.UUID) ([]*models.LogSet, error) {
	if s.direct {
		le, err := s.getLogExercise(logExerciseID)
		if err != nil {
			return nil, err
		}
		out := make([]*models.LogSet, len(le.LogSets))
		for i := range le.LogSets {
			out[i] = &le.LogSets[i]
		}
		return out, nil
	}
	return s.store.ListLogSets(logExerciseID)
}

// History returns the user's sessions, most recent first.
func (s *Sessions) History(ctx context.Context, userID uuid.UUID, online bool) ([]*models.LogRoutine, error) {
	if s.direct {
		sessions, err := s.engine.FetchUserSessions(ctx, userID)
		if err != nil {
			return nil, err
		}
		out := make([]*models.LogRoutine, len(sessions))
		for i := range sessions {
			out[i] = &sessions[i]
		}
		return out, nil
	}
	if online {
		if err := s.engine.PullFromServer(ctx, userID); err != nil {
			s.logger.Debug("pull failed, using local history", "error", err)
		}
	}
	return s.store.ListLogRoutinesByUser(userID)
}

// DeleteSession removes a session and its entire logged hierarchy.
func (s *Sessions) DeleteSession(id uuid.UUID) error {
	if s.direct {
		return s.engine.PushNow(context.Background(), models.KindLogRoutine, id, models.OpDelete, struct{}{})
	}
	if err := s.store.DeleteLogRoutine(id); err != nil {
		return err
	}
	s.engine.Enqueue(models.KindLogRoutine, id, models.OpDelete, struct{}{})
	s.backgroundSync()
	return nil
}

// getLogRoutine reads a session from the mirror, or from the server when
// no mirror exists.
func (s *Sessions) getLogRoutine(id uuid.UUID) (*models.LogRoutine, error) {
	if s.direct {
		var lr models.LogRoutine
		if err := s.engine.Fetch(context.Background(), models.KindLogRoutine, id, &lr); err != nil {
			return nil, err
		}
		return &lr, nil
	}
	return s.store.GetLogRoutine(id)
}

func (s *Sessions) getLogWorkout(id uuid.UUID) (*models.LogWorkout, error) {
	if s.direct {
		var lw models.LogWorkout
		if err := s.engine.Fetch(context.Background(), models.KindLogWorkout, id, &lw); err != nil {
			return nil, err
		}
		return &lw, nil
	}
	return s.store.GetLogWorkout(id)
}

func (s *Sessions) getLogExercise(id uuid.UUID) (*models.LogExercise, error) {
	if s.direct {
		var le models.LogExercise
		if err := s.engine.Fetch(context.Background(), models.KindLogExercise, id, &le); err != nil {
			return nil, err
		}
		return &le, nil
	}
	return s.store.GetLogExercise(id)
}

func (s *Sessions) backgroundSync() {
	go func() {
		if err := s.engine.SyncAll(context.Background(), false); err != nil {
			s.logger.Debug("background sync failed, will retry later", "error", err)
		}
	}()
}
