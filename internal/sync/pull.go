// ABOUTME: Pull-from-server reconciliation into the local mirror.
// ABOUTME: Full replace-by-id for confirmed rows; dirty rows keep local values.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"kraftlog/internal/models"
)

// PullFromServer fetches the user's routines (with nested workouts and
// exercise links), the user's session history (with the nested log
// hierarchy), and the global exercise catalog, and upserts everything
// into the local store marked synced. Rows with unconfirmed local edits
// are left alone until their outbox item clears.
//
// A failure aborts the remaining pull steps and propagates to the caller.
func (e *Engine) PullFromServer(ctx context.Context, userID uuid.UUID) error {
	routines, err := e.FetchUserRoutines(ctx, userID)
	if err != nil {
		return err
	}
	for i := range routines {
		if err := e.mergeRoutineTree(&routines[i]); err != nil {
			return err
		}
	}

	sessions, err := e.FetchUserSessions(ctx, userID)
	if err != nil {
		return err
	}
	for i := range sessions {
		if err := e.mergeSessionTree(&sessions[i], userID); err != nil {
			return err
		}
	}

	exercises, err := e.FetchExercises(ctx)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	for i := range exercises {
		ex := &exercises[i]
		// The catalog endpoint omits timestamps.
		if ex.CreatedAt.IsZero() {
			ex.CreatedAt = now
		}
		if ex.UpdatedAt.IsZero() {
			ex.UpdatedAt = now
		}
		if err := e.store.MergeExercise(ex); err != nil {
			return err
		}
	}

	e.logger.Info("pull from server completed",
		"routines", len(routines),
		"sessions", len(sessions),
		"exercises", len(exercises),
	)
	return nil
}

// FetchUserRoutines retrieves the user's routine trees from the server.
func (e *Engine) FetchUserRoutines(ctx context.Context, userID uuid.UUID) ([]models.Routine, error) {
	var routines []models.Routine
	if err := e.client.Get(ctx, "/routines/user/"+userID.String(), &routines); err != nil {
		return nil, fmt.Errorf("fetch routines: %w", err)
	}
	return routines, nil
}

// FetchUserSessions retrieves the user's session history, nested down
// to individual sets.
func (e *Engine) FetchUserSessions(ctx context.Context, userID uuid.UUID) ([]models.LogRoutine, error) {
	var sessions []models.LogRoutine
	if err := e.client.Get(ctx, "/log-routines/user/"+userID.String(), &sessions); err != nil {
		return nil, fmt.Errorf("fetch log routines: %w", err)
	}
	return sessions, nil
}

// FetchExercises retrieves the global exercise catalog.
func (e *Engine) FetchExercises(ctx context.Context) ([]models.Exercise, error) {
	var exercises []models.Exercise
	if err := e.client.Get(ctx, "/exercises", &exercises); err != nil {
		return nil, fmt.Errorf("fetch exercises: %w", err)
	}
	return exercises, nil
}

func (e *Engine) mergeRoutineTree(r *models.Routine) error {
	now := time.Now().UTC()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = now
	}
	if err := e.store.MergeRoutine(r); err != nil {
		return err
	}
	for i := range r.Workouts {
		w := &r.Workouts[i]
		w.RoutineID = r.ID
		if w.CreatedAt.IsZero() {
			w.CreatedAt = now
		}
		if w.UpdatedAt.IsZero() {
			w.UpdatedAt = now
		}
		if err := e.store.MergeWorkout(w); err != nil {
			return err
		}
		for j := range w.Exercises {
			we := &w.Exercises[j]
			we.WorkoutID = w.ID
			if we.CreatedAt.IsZero() {
				we.CreatedAt = now
			}
			if err := e.store.MergeWorkoutExercise(we); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) mergeSessionTree(lr *models.LogRoutine, userID uuid.UUID) error {
	now := time.Now().UTC()
	if lr.UserID == uuid.Nil {
		lr.UserID = userID
	}
	if lr.CreatedAt.IsZero() {
		lr.CreatedAt = now
	}
	if lr.UpdatedAt.IsZero() {
		lr.UpdatedAt = now
	}
	if err := e.store.MergeLogRoutine(lr); err != nil {
		return err
	}
	for i := range lr.LogWorkouts {
		lw := &lr.LogWorkouts[i]
		lw.LogRoutineID = lr.ID
		if lw.CreatedAt.IsZero() {
			lw.CreatedAt = now
		}
		if err := e.store.MergeLogWorkout(lw); err != nil {
			return err
		}
		for j := range lw.LogExercises {
			le := &lw.LogExercises[j]
			le.LogWorkoutID = lw.ID
			if le.CreatedAt.IsZero() {
				le.CreatedAt = now
			}
			if err := e.store.MergeLogExercise(le); err != nil {
				return err
			}
			for k := range le.LogSets {
				s := &le.LogSets[k]
				s.LogExerciseID = le.ID
				if s.CreatedAt.IsZero() {
					s.CreatedAt = now
				}
				if err := e.store.MergeLogSet(s); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
