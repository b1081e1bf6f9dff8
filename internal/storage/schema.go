// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Mirrors the server entity hierarchy plus sync bookkeeping tables.
package storage

// initSchema creates or updates the database schema.
// Every mirrored table carries a synced flag: 0 means the local copy
// has diverged from (or has not been confirmed against) the server.
// Only ownership FKs within a hierarchy are declared; cross-hierarchy
// references (user ids, exercise ids) stay plain columns so rows can be
// created offline before their referents have been mirrored.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		surname TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		birth_date TEXT,
		weight_kg REAL,
		height_cm REAL,
		is_admin INTEGER DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		synced INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS routines (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		synced INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS workouts (
		id TEXT PRIMARY KEY,
		routine_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		day_of_week INTEGER,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		synced INTEGER DEFAULT 0,
		FOREIGN KEY (routine_id) REFERENCES routines(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS exercises (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		video_url TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		synced INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS workout_exercises (
		id TEXT PRIMARY KEY,
		workout_id TEXT NOT NULL,
		exercise_id TEXT NOT NULL,
		order_index INTEGER NOT NULL,
		sets INTEGER,
		reps INTEGER,
		rest_time_seconds INTEGER,
		created_at TEXT NOT NULL,
		synced INTEGER DEFAULT 0,
		FOREIGN KEY (workout_id) REFERENCES workouts(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS log_routines (
		id TEXT PRIMARY KEY,
		routine_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		start_datetime TEXT NOT NULL,
		end_datetime TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		synced INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS log_workouts (
		id TEXT PRIMARY KEY,
		log_routine_id TEXT NOT NULL,
		workout_id TEXT NOT NULL,
		start_datetime TEXT NOT NULL,
		end_datetime TEXT,
		created_at TEXT NOT NULL,
		synced INTEGER DEFAULT 0,
		FOREIGN KEY (log_routine_id) REFERENCES log_routines(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS log_exercises (
		id TEXT PRIMARY KEY,
		log_workout_id TEXT NOT NULL,
		exercise_id TEXT NOT NULL,
		exercise_name TEXT,
		start_datetime TEXT,
		end_datetime TEXT,
		notes TEXT,
		repetitions INTEGER,
		completed INTEGER DEFAULT 0,
		created_at TEXT NOT NULL,
		synced INTEGER DEFAULT 0,
		FOREIGN KEY (log_workout_id) REFERENCES log_workouts(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS log_sets (
		id TEXT PRIMARY KEY,
		log_exercise_id TEXT NOT NULL,
		set_number INTEGER NOT NULL,
		reps INTEGER,
		weight_kg REAL,
		rest_time_seconds INTEGER,
		timestamp TEXT NOT NULL,
		notes TEXT,
		created_at TEXT NOT NULL,
		synced INTEGER DEFAULT 0,
		FOREIGN KEY (log_exercise_id) REFERENCES log_exercises(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS sync_queue (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		entity_type TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		operation TEXT NOT NULL CHECK (operation IN ('CREATE','UPDATE','DELETE')),
		data TEXT NOT NULL,
		created_at TEXT NOT NULL,
		retry_count INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS sync_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_routines_user_id ON routines(user_id);
	CREATE INDEX IF NOT EXISTS idx_workouts_routine_id ON workouts(routine_id);
	CREATE INDEX IF NOT EXISTS idx_workout_exercises_workout_id ON workout_exercises(workout_id);
	CREATE INDEX IF NOT EXISTS idx_log_routines_user_id ON log_routines(user_id);
	CREATE INDEX IF NOT EXISTS idx_log_workouts_log_routine_id ON log_workouts(log_routine_id);
	CREATE INDEX IF NOT EXISTS idx_log_exercises_log_workout_id ON log_exercises(log_workout_id);
	CREATE INDEX IF NOT EXISTS idx_log_sets_log_exercise_id ON log_sets(log_exercise_id);
	CREATE INDEX IF NOT EXISTS idx_sync_queue_entity ON sync_queue(entity_type, entity_id);
	`

	_, err := d.db.Exec(schema)
	return err
}
