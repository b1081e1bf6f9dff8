// ABOUTME: Routine, Workout, and WorkoutExercise CRUD for the local mirror.
// ABOUTME: Put* marks rows dirty; Merge* applies server state without clobbering dirty rows.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"kraftlog/internal/models"
)

// PutRoutine upserts a routine as a local (unconfirmed) write.
// The row is stored with synced=0 so a later pull will not overwrite it
// until its outbox item has cleared.
func (d *DB) PutRoutine(r *models.Routine) error {
	query := `
		INSERT INTO routines (id, user_id, name, description, created_at, updated_at, synced)
		VALUES (?, ?, ?, ?, ?, ?, 0)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			updated_at = excluded.updated_at,
			synced = 0
	`
	_, err := d.db.Exec(query,
		r.ID.String(),
		r.UserID.String(),
		r.Name,
		r.Description,
		r.CreatedAt.Format(time.RFC3339),
		r.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("put routine: %w", err)
	}
	return nil
}

// MergeRoutine upserts authoritative server state with synced=1.
// Rows holding unconfirmed local edits (synced=0) keep their local
// values: last pull wins only for confirmed rows.
func (d *DB) MergeRoutine(r *models.Routine) error {
	query := `
		INSERT INTO routines (id, user_id, name, description, created_at, updated_at, synced)
		VALUES (?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			name = excluded.name,
			description = excluded.description,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			synced = 1
		WHERE routines.synced = 1
	`
	_, err := d.db.Exec(query,
		r.ID.String(),
		r.UserID.String(),
		r.Name,
		r.Description,
		r.CreatedAt.Format(time.RFC3339),
		r.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("merge routine: %w", err)
	}
	return nil
}

// GetRoutine retrieves a routine by id (without workouts).
func (d *DB) GetRoutine(id uuid.UUID) (*models.Routine, error) {
	row := d.db.QueryRow(`
		SELECT id, user_id, name, description, created_at, updated_at, synced
		FROM routines WHERE id = ?
	`, id.String())
	return scanRoutine(row)
}

// GetRoutineWithWorkouts retrieves a routine with its workouts and their
// exercise links in order_index order, exercise names joined in.
func (d *DB) GetRoutineWithWorkouts(id uuid.UUID) (*models.Routine, error) {
	r, err := d.GetRoutine(id)
	if err != nil {
		return nil, err
	}

	workouts, err := d.ListWorkouts(r.ID)
	if err != nil {
		return nil, err
	}
	for _, w := range workouts {
		links, err := d.ListWorkoutExercises(w.ID)
		if err != nil {
			return nil, err
		}
		for _, we := range links {
			w.Exercises = append(w.Exercises, *we)
		}
		r.Workouts = append(r.Workouts, *w)
	}
	return r, nil
}

// ListRoutinesByUser retrieves all routines owned by a user,
// most recently created first.
func (d *DB) ListRoutinesByUser(userID uuid.UUID) ([]*models.Routine, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, name, description, created_at, updated_at, synced
		FROM routines WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	defer rows.Close()

	var routines []*models.Routine
	for rows.Next() {
		r, err := scanRoutine(rows)
		if err != nil {
			return nil, err
		}
		routines = append(routines, r)
	}
	return routines, rows.Err()
}

// DeleteRoutine removes a routine; its workouts and exercise links
// are cascade-deleted.
func (d *DB) DeleteRoutine(id uuid.UUID) error {
	if _, err := d.db.Exec(`DELETE FROM routines WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}
	return nil
}

// PutWorkout upserts a workout as a local (unconfirmed) write.
func (d *DB) PutWorkout(w *models.Workout) error {
	query := `
		INSERT INTO workouts (id, routine_id, name, description, day_of_week, created_at, updated_at, synced)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			day_of_week = excluded.day_of_week,
			updated_at = excluded.updated_at,
			synced = 0
	`
	_, err := d.db.Exec(query,
		w.ID.String(),
		w.RoutineID.String(),
		w.Name,
		w.Description,
		w.DayOfWeek,
		w.CreatedAt.Format(time.RFC3339),
		w.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("put workout: %w", err)
	}
	return nil
}

// MergeWorkout upserts authoritative server state for a workout.
func (d *DB) MergeWorkout(w *models.Workout) error {
	query := `
		INSERT INTO workouts (id, routine_id, name, description, day_of_week, created_at, updated_at, synced)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(id) DO UPDATE SET
			routine_id = excluded.routine_id,
			name = excluded.name,
			description = excluded.description,
			day_of_week = excluded.day_of_week,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			synced = 1
		WHERE workouts.synced = 1
	`
	_, err := d.db.Exec(query,
		w.ID.String(),
		w.RoutineID.String(),
		w.Name,
		w.Description,
		w.DayOfWeek,
		w.CreatedAt.Format(time.RFC3339),
		w.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("merge workout: %w", err)
	}
	return nil
}

// ListWorkouts retrieves a routine's workouts ordered by day of week.
func (d *DB) ListWorkouts(routineID uuid.UUID) ([]*models.Workout, error) {
	rows, err := d.db.Query(`
		SELECT id, routine_id, name, description, day_of_week, created_at, updated_at, synced
		FROM workouts WHERE routine_id = ?
		ORDER BY day_of_week, created_at
	`, routineID.String())
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*models.Workout
	for rows.Next() {
		var w models.Workout
		var idStr, routineIDStr, createdAt, updatedAt string
		var desc sql.NullString
		var day sql.NullInt64
		var synced int
		if err := rows.Scan(&idStr, &routineIDStr, &w.Name, &desc, &day, &createdAt, &updatedAt, &synced); err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		w.ID, _ = uuid.Parse(idStr)
		w.RoutineID, _ = uuid.Parse(routineIDStr)
		w.Description = nullStr(desc)
		w.DayOfWeek = nullInt(day)
		w.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		w.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		w.Synced = synced != 0
		workouts = append(workouts, &w)
	}
	return workouts, rows.Err()
}

// DeleteWorkout removes a workout and cascades to its exercise links.
func (d *DB) DeleteWorkout(id uuid.UUID) error {
	if _, err := d.db.Exec(`DELETE FROM workouts WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return nil
}

// PutWorkoutExercise upserts an exercise link as a local write.
func (d *DB) PutWorkoutExercise(we *models.WorkoutExercise) error {
	query := `
		INSERT INTO workout_exercises (id, workout_id, exercise_id, order_index, sets, reps, rest_time_seconds, created_at, synced)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)
		ON CONFLICT(id) DO UPDATE SET
			order_index = excluded.order_index,
			sets = excluded.sets,
			reps = excluded.reps,
			rest_time_seconds = excluded.rest_time_seconds,
			synced = 0
	`
	_, err := d.db.Exec(query,
		we.ID.String(),
		we.WorkoutID.String(),
		we.ExerciseID.String(),
		we.OrderIndex,
		we.Sets,
		we.Reps,
		we.RestTimeSeconds,
		we.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("put workout exercise: %w", err)
	}
	return nil
}

// MergeWorkoutExercise upserts authoritative server state for a link.
func (d *DB) MergeWorkoutExercise(we *models.WorkoutExercise) error {
	query := `
		INSERT INTO workout_exercises (id, workout_id, exercise_id, order_index, sets, reps, rest_time_seconds, created_at, synced)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(id) DO UPDATE SET
			workout_id = excluded.workout_id,
			exercise_id = excluded.exercise_id,
			order_index = excluded.order_index,
			sets = excluded.sets,
			reps = excluded.reps,
			rest_time_seconds = excluded.rest_time_seconds,
			synced = 1
		WHERE workout_exercises.synced = 1
	`
	_, err := d.db.Exec(query,
		we.ID.String(),
		we.WorkoutID.String(),
		we.ExerciseID.String(),
		we.OrderIndex,
		we.Sets,
		we.Reps,
		we.RestTimeSeconds,
		we.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("merge workout exercise: %w", err)
	}
	return nil
}

// ListWorkoutExercises retrieves a workout's exercise links in session
// order, joining in the exercise name from the catalog mirror.
func (d *DB) ListWorkoutExercises(workoutID uuid.UUID) ([]*models.WorkoutExercise, error) {
	rows, err := d.db.Query(`
		SELECT we.id, we.workout_id, we.exercise_id, we.order_index,
		       we.sets, we.reps, we.rest_time_seconds, we.created_at, we.synced,
		       COALESCE(e.name, '')
		FROM workout_exercises we
		LEFT JOIN exercises e ON we.exercise_id = e.id
		WHERE we.workout_id = ?
		ORDER BY we.order_index
	`, workoutID.String())
	if err != nil {
		return nil, fmt.Errorf("list workout exercises: %w", err)
	}
	defer rows.Close()

	var links []*models.WorkoutExercise
	for rows.Next() {
		var we models.WorkoutExercise
		var idStr, workoutIDStr, exerciseIDStr, createdAt string
		var sets, reps, rest sql.NullInt64
		var synced int
		if err := rows.Scan(&idStr, &workoutIDStr, &exerciseIDStr, &we.OrderIndex,
			&sets, &reps, &rest, &createdAt, &synced, &we.ExerciseName); err != nil {
			return nil, fmt.Errorf("scan workout exercise: %w", err)
		}
		we.ID, _ = uuid.Parse(idStr)
		we.WorkoutID, _ = uuid.Parse(workoutIDStr)
		we.ExerciseID, _ = uuid.Parse(exerciseIDStr)
		we.Sets = nullInt(sets)
		we.Reps = nullInt(reps)
		we.RestTimeSeconds = nullInt(rest)
		we.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		we.Synced = synced != 0
		links = append(links, &we)
	}
	return links, rows.Err()
}

// DeleteWorkoutExercise removes a single exercise link.
func (d *DB) DeleteWorkoutExercise(id uuid.UUID) error {
	if _, err := d.db.Exec(`DELETE FROM workout_exercises WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("delete workout exercise: %w", err)
	}
	return nil
}

// scanRoutine scans a routine row from either *sql.Row or *sql.Rows.
func scanRoutine(row interface{ Scan(...any) error }) (*models.Routine, error) {
	var r models.Routine
	var idStr, userIDStr, createdAt, updatedAt string
	var desc sql.NullString
	var synced int

	err := row.Scan(&idStr, &userIDStr, &r.Name, &desc, &createdAt, &updatedAt, &synced)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan routine: %w", err)
	}
	r.ID, _ = uuid.Parse(idStr)
	r.UserID, _ = uuid.Parse(userIDStr)
	r.Description = nullStr(desc)
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	r.Synced = synced != 0
	return &r, nil
}

func nullStr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func nullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func nullFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	return &f.Float64
}

func nullTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}

func fmtTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
