// ABOUTME: Logged-session hierarchy CRUD: log_routines down to log_sets.
// ABOUTME: Deleting a log_routine cascades through workouts, exercises, and sets.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"kraftlog/internal/models"
)

// PutLogRoutine upserts a session as a local (unconfirmed) write.
func (d *DB) PutLogRoutine(lr *models.LogRoutine) error {
	query := `
		INSERT INTO log_routines (id, routine_id, user_id, start_datetime, end_datetime, created_at, updated_at, synced)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0)
		ON CONFLICT(id) DO UPDATE SET
			start_datetime = excluded.start_datetime,
			end_datetime = excluded.end_datetime,
			updated_at = excluded.updated_at,
			synced = 0
	`
	_, err := d.db.Exec(query,
		lr.ID.String(),
		lr.RoutineID.String(),
		lr.UserID.String(),
		lr.StartDatetime.Format(time.RFC3339),
		fmtTimePtr(lr.EndDatetime),
		lr.CreatedAt.Format(time.RFC3339),
		lr.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("put log routine: %w", err)
	}
	return nil
}

// MergeLogRoutine upserts authoritative server state for a session.
func (d *DB) MergeLogRoutine(lr *models.LogRoutine) error {
	query := `
		INSERT INTO log_routines (id, routine_id, user_id, start_datetime, end_datetime, created_at, updated_at, synced)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(id) DO UPDATE SET
			routine_id = excluded.routine_id,
			user_id = excluded.user_id,
			start_datetime = excluded.start_datetime,
			end_datetime = excluded.end_datetime,
			updated_at = excluded.updated_at,
			synced = 1
		WHERE log_routines.synced = 1
	`
	_, err := d.db.Exec(query,
		lr.ID.String(),
		lr.RoutineID.String(),
		lr.UserID.String(),
		lr.StartDatetime.Format(time.RFC3339),
		fmtTimePtr(lr.EndDatetime),
		lr.CreatedAt.Format(time.RFC3339),
		lr.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("merge log routine: %w", err)
	}
	return nil
}

// GetLogRoutine retrieves a session by id (without children).
func (d *DB) GetLogRoutine(id uuid.UUID) (*models.LogRoutine, error) {
	row := d.db.QueryRow(`
		SELECT id, routine_id, user_id, start_datetime, end_datetime, created_at, updated_at, synced
		FROM log_routines WHERE id = ?
	`, id.String())
	return scanLogRoutine(row)
}

// ListLogRoutinesByUser retrieves a user's sessions, most recent first.
func (d *DB) ListLogRoutinesByUser(userID uuid.UUID) ([]*models.LogRoutine, error) {
	rows, err := d.db.Query(`
		SELECT id, routine_id, user_id, start_datetime, end_datetime, created_at, updated_at, synced
		FROM log_routines WHERE user_id = ?
		ORDER BY start_datetime DESC
	`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("list log routines: %w", err)
	}
	defer rows.Close()

	var sessions []*models.LogRoutine
	for rows.Next() {
		lr, err := scanLogRoutine(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, lr)
	}
	return sessions, rows.Err()
}

// DeleteLogRoutine removes a session and cascades through its logged
// workouts, exercises, and sets.
func (d *DB) DeleteLogRoutine(id uuid.UUID) error {
	if _, err := d.db.Exec(`DELETE FROM log_routines WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("delete log routine: %w", err)
	}
	return nil
}

// PutLogWorkout upserts a logged workout as a local write.
func (d *DB) PutLogWorkout(lw *models.LogWorkout) error {
	query := `
		INSERT INTO log_workouts (id, log_routine_id, workout_id, start_datetime, end_datetime, created_at, synced)
		VALUES (?, ?, ?, ?, ?, ?, 0)
		ON CONFLICT(id) DO UPDATE SET
			start_datetime = excluded.start_datetime,
			end_datetime = excluded.end_datetime,
			synced = 0
	`
	_, err := d.db.Exec(query,
		lw.ID.String(),
		lw.LogRoutineID.String(),
		lw.WorkoutID.String(),
		lw.StartDatetime.Format(time.RFC3339),
		fmtTimePtr(lw.EndDatetime),
		lw.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("put log workout: %w", err)
	}
	return nil
}

// MergeLogWorkout upserts authoritative server state for a logged workout.
func (d *DB) MergeLogWorkout(lw *models.LogWorkout) error {
	query := `
		INSERT INTO log_workouts (id, log_routine_id, workout_id, start_datetime, end_datetime, created_at, synced)
		VALUES (?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(id) DO UPDATE SET
			log_routine_id = excluded.log_routine_id,
			workout_id = excluded.workout_id,
			start_datetime = excluded.start_datetime,
			end_datetime = excluded.end_datetime,
			synced = 1
		WHERE log_workouts.synced = 1
	`
	_, err := d.db.Exec(query,
		lw.ID.String(),
		lw.LogRoutineID.String(),
		lw.WorkoutID.String(),
		lw.StartDatetime.Format(time.RFC3339),
		fmtTimePtr(lw.EndDatetime),
		lw.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("merge log workout: %w", err)
	}
	return nil
}

// GetLogWorkout retrieves a logged workout by id (without children).
func (d *DB) GetLogWorkout(id uuid.UUID) (*models.LogWorkout, error) {
	var lw models.LogWorkout
	var idStr, lrStr, wStr, start, createdAt string
	var end sql.NullString
	var synced int
	err := d.db.QueryRow(`
		SELECT id, log_routine_id, workout_id, start_datetime, end_datetime, created_at, synced
		FROM log_workouts WHERE id = ?
	`, id.String()).Scan(&idStr, &lrStr, &wStr, &start, &end, &createdAt, &synced)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get log workout: %w", err)
	}
	lw.ID, _ = uuid.Parse(idStr)
	lw.LogRoutineID, _ = uuid.Parse(lrStr)
	lw.WorkoutID, _ = uuid.Parse(wStr)
	lw.StartDatetime, _ = time.Parse(time.RFC3339, start)
	lw.EndDatetime = nullTime(end)
	lw.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	lw.Synced = synced != 0
	return &lw, nil
}

// ListLogWorkouts retrieves the logged workouts of a session in start order.
func (d *DB) ListLogWorkouts(logRoutineID uuid.UUID) ([]*models.LogWorkout, error) {
	rows, err := d.db.Query(`
		SELECT id, log_routine_id, workout_id, start_datetime, end_datetime, created_at, synced
		FROM log_workouts WHERE log_routine_id = ?
		ORDER BY start_datetime
	`, logRoutineID.String())
	if err != nil {
		return nil, fmt.Errorf("list log workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*models.LogWorkout
	for rows.Next() {
		var lw models.LogWorkout
		var idStr, lrStr, wStr, start, createdAt string
		var end sql.NullString
		var synced int
		if err := rows.Scan(&idStr, &lrStr, &wStr, &start, &end, &createdAt, &synced); err != nil {
			return nil, fmt.Errorf("scan log workout: %w", err)
		}
		lw.ID, _ = uuid.Parse(idStr)
		lw.LogRoutineID, _ = uuid.Parse(lrStr)
		lw.WorkoutID, _ = uuid.Parse(wStr)
		lw.StartDatetime, _ = time.Parse(time.RFC3339, start)
		lw.EndDatetime = nullTime(end)
		lw.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		lw.Synced = synced != 0
		workouts = append(workouts, &lw)
	}
	return workouts, rows.Err()
}

// PutLogExercise upserts a logged exercise as a local write.
func (d *DB) PutLogExercise(le *models.LogExercise) error {
	query := `
		INSERT INTO log_exercises (id, log_workout_id, exercise_id, exercise_name, start_datetime, end_datetime, notes, repetitions, completed, created_at, synced)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)
		ON CONFLICT(id) DO UPDATE SET
			exercise_name = excluded.exercise_name,
			start_datetime = excluded.start_datetime,
			end_datetime = excluded.end_datetime,
			notes = excluded.notes,
			repetitions = excluded.repetitions,
			completed = excluded.completed,
			synced = 0
	`
	_, err := d.db.Exec(query,
		le.ID.String(),
		le.LogWorkoutID.String(),
		le.ExerciseID.String(),
		le.ExerciseName,
		fmtTimePtr(le.StartDatetime),
		fmtTimePtr(le.EndDatetime),
		le.Notes,
		le.Repetitions,
		boolInt(le.Completed),
		le.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("put log exercise: %w", err)
	}
	return nil
}

// MergeLogExercise upserts authoritative server state for a logged exercise.
func (d *DB) MergeLogExercise(le *models.LogExercise) error {
	query := `
		INSERT INTO log_exercises (id, log_workout_id, exercise_id, exercise_name, start_datetime, end_datetime, notes, repetitions, completed, created_at, synced)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(id) DO UPDATE SET
			log_workout_id = excluded.log_workout_id,
			exercise_id = excluded.exercise_id,
			exercise_name = excluded.exercise_name,
			start_datetime = excluded.start_datetime,
			end_datetime = excluded.end_datetime,
			notes = excluded.notes,
			repetitions = excluded.repetitions,
			completed = excluded.completed,
			synced = 1
		WHERE log_exercises.synced = 1
	`
	_, err := d.db.Exec(query,
		le.ID.String(),
		le.LogWorkoutID.String(),
		le.ExerciseID.String(),
		le.ExerciseName,
		fmtTimePtr(le.StartDatetime),
		fmtTimePtr(le.EndDatetime),
		le.Notes,
		le.Repetitions,
		boolInt(le.Completed),
		le.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("merge log exercise: %w", err)
	}
	return nil
}

// GetLogExercise retrieves a logged exercise by id (without sets).
func (d *DB) GetLogExercise(id uuid.UUID) (*models.LogExercise, error) {
	row := d.db.QueryRow(`
		SELECT id, log_workout_id, exercise_id, exercise_name, start_datetime, end_datetime, notes, repetitions, completed, created_at, synced
		FROM log_exercises WHERE id = ?
	`, id.String())
	return scanLogExercise(row)
}

// ListLogExercises retrieves the logged exercises of a logged workout.
func (d *DB) ListLogExercises(logWorkoutID uuid.UUID) ([]*models.LogExercise, error) {
	rows, err := d.db.Query(`
		SELECT id, log_workout_id, exercise_id, exercise_name, start_datetime, end_datetime, notes, repetitions, completed, created_at, synced
		FROM log_exercises WHERE log_workout_id = ?
		ORDER BY created_at
	`, logWorkoutID.String())
	if err != nil {
		return nil, fmt.Errorf("list log exercises: %w", err)
	}
	defer rows.Close()

	var exercises []*models.LogExercise
	for rows.Next() {
		le, err := scanLogExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, le)
	}
	return exercises, rows.Err()
}

// PutLogSet upserts a performed set as a local write.
func (d *DB) PutLogSet(s *models.LogSet) error {
	query := `
		INSERT INTO log_sets (id, log_exercise_id, set_number, reps, weight_kg, rest_time_seconds, timestamp, notes, created_at, synced)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0)
		ON CONFLICT(id) DO UPDATE SET
			set_number = excluded.set_number,
			reps = excluded.reps,
			weight_kg = excluded.weight_kg,
			rest_time_seconds = excluded.rest_time_seconds,
			notes = excluded.notes,
			synced = 0
	`
	_, err := d.db.Exec(query,
		s.ID.String(),
		s.LogExerciseID.String(),
		s.SetNumber,
		s.Reps,
		s.WeightKg,
		s.RestTimeSeconds,
		s.Timestamp.Format(time.RFC3339),
		s.Notes,
		s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("put log set: %w", err)
	}
	return nil
}

// MergeLogSet upserts authoritative server state for a performed set.
func (d *DB) MergeLogSet(s *models.LogSet) error {
	query := `
		INSERT INTO log_sets (id, log_exercise_id, set_number, reps, weight_kg, rest_time_seconds, timestamp, notes, created_at, synced)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(id) DO UPDATE SET
			log_exercise_id = excluded.log_exercise_id,
			set_number = excluded.set_number,
			reps = excluded.reps,
			weight_kg = excluded.weight_kg,
			rest_time_seconds = excluded.rest_time_seconds,
			notes = excluded.notes,
			synced = 1
		WHERE log_sets.synced = 1
	`
	_, err := d.db.Exec(query,
		s.ID.String(),
		s.LogExerciseID.String(),
		s.SetNumber,
		s.Reps,
		s.WeightKg,
		s.RestTimeSeconds,
		s.Timestamp.Format(time.RFC3339),
		s.Notes,
		s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("merge log set: %w", err)
	}
	return nil
}

// ListLogSets retrieves an exercise's sets in set_number order.
func (d *DB) ListLogSets(logExerciseID uuid.UUID) ([]*models.LogSet, error) {
	rows, err := d.db.Query(`
		SELECT id, log_exercise_id, set_number, reps, weight_kg, rest_time_seconds, timestamp, notes, created_at, synced
		FROM log_sets WHERE log_exercise_id = ?
		ORDER BY set_number
	`, logExerciseID.String())
	if err != nil {
		return nil, fmt.Errorf("list log sets: %w", err)
	}
	defer rows.Close()

	var sets []*models.LogSet
	for rows.Next() {
		var s models.LogSet
		var idStr, leStr, ts, createdAt string
		var reps sql.NullInt64
		var weight sql.NullFloat64
		var rest sql.NullInt64
		var notes sql.NullString
		var synced int
		if err := rows.Scan(&idStr, &leStr, &s.SetNumber, &reps, &weight, &rest, &ts, &notes, &createdAt, &synced); err != nil {
			return nil, fmt.Errorf("scan log set: %w", err)
		}
		s.ID, _ = uuid.Parse(idStr)
		s.LogExerciseID, _ = uuid.Parse(leStr)
		if reps.Valid {
			s.Reps = int(reps.Int64)
		}
		s.WeightKg = nullFloat(weight)
		s.RestTimeSeconds = nullInt(rest)
		s.Timestamp, _ = time.Parse(time.RFC3339, ts)
		s.Notes = nullStr(notes)
		s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		s.Synced = synced != 0
		sets = append(sets, &s)
	}
	return sets, rows.Err()
}

// LogSetParent resolves the log_exercise a set belongs to.
func (d *DB) LogSetParent(id uuid.UUID) (uuid.UUID, error) {
	var parent string
	err := d.db.QueryRow(`SELECT log_exercise_id FROM log_sets WHERE id = ?`, id.String()).Scan(&parent)
	if err == sql.ErrNoRows {
		return uuid.Nil, ErrNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("log set parent: %w", err)
	}
	p, err := uuid.Parse(parent)
	if err != nil {
		return uuid.Nil, fmt.Errorf("log set parent: %w", err)
	}
	return p, nil
}

// DeleteLogSet removes a set and renumbers the exercise's remaining sets
// so set_number stays contiguous and 1-based. Both steps run in one
// transaction: a failure partway leaves the store unchanged.
func (d *DB) DeleteLogSet(id uuid.UUID) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("delete log set: %w", err)
	}
	defer tx.Rollback()

	var logExerciseID string
	err = tx.QueryRow(`SELECT log_exercise_id FROM log_sets WHERE id = ?`, id.String()).Scan(&logExerciseID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete log set: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM log_sets WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("delete log set: %w", err)
	}

	// Renumber survivors in timestamp order.
	rows, err := tx.Query(`
		SELECT id FROM log_sets WHERE log_exercise_id = ?
		ORDER BY set_number, timestamp
	`, logExerciseID)
	if err != nil {
		return fmt.Errorf("renumber log sets: %w", err)
	}
	var ids []string
	for rows.Next() {
		var sid string
		if err := rows.Scan(&sid); err != nil {
			rows.Close()
			return fmt.Errorf("renumber log sets: %w", err)
		}
		ids = append(ids, sid)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("renumber log sets: %w", err)
	}
	rows.Close()

	for i, sid := range ids {
		if _, err := tx.Exec(`UPDATE log_sets SET set_number = ?, synced = 0 WHERE id = ?`, i+1, sid); err != nil {
			return fmt.Errorf("renumber log sets: %w", err)
		}
	}

	return tx.Commit()
}

func scanLogRoutine(row interface{ Scan(...any) error }) (*models.LogRoutine, error) {
	var lr models.LogRoutine
	var idStr, rStr, uStr, start, createdAt, updatedAt string
	var end sql.NullString
	var synced int

	err := row.Scan(&idStr, &rStr, &uStr, &start, &end, &createdAt, &updatedAt, &synced)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan log routine: %w", err)
	}
	lr.ID, _ = uuid.Parse(idStr)
	lr.RoutineID, _ = uuid.Parse(rStr)
	lr.UserID, _ = uuid.Parse(uStr)
	lr.StartDatetime, _ = time.Parse(time.RFC3339, start)
	lr.EndDatetime = nullTime(end)
	lr.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	lr.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	lr.Synced = synced != 0
	return &lr, nil
}

func scanLogExercise(row interface{ Scan(...any) error }) (*models.LogExercise, error) {
	var le models.LogExercise
	var idStr, lwStr, eStr, createdAt string
	var name, notes, start, end sql.NullString
	var reps sql.NullInt64
	var completed, synced int

	err := row.Scan(&idStr, &lwStr, &eStr, &name, &start, &end, &notes, &reps, &completed, &createdAt, &synced)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan log exercise: %w", err)
	}
	le.ID, _ = uuid.Parse(idStr)
	le.LogWorkoutID, _ = uuid.Parse(lwStr)
	le.ExerciseID, _ = uuid.Parse(eStr)
	if name.Valid {
		le.ExerciseName = name.String
	}
	le.StartDatetime = nullTime(start)
	le.EndDatetime = nullTime(end)
	le.Notes = nullStr(notes)
	le.Repetitions = nullInt(reps)
	le.Completed = completed != 0
	le.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	le.Synced = synced != 0
	return &le, nil
}
