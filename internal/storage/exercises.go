// ABOUTME: Exercise catalog and user mirror access.
// ABOUTME: Both are pull-only mirrors; local code never mutates them directly.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"kraftlog/internal/models"
)

// MergeExercise upserts a catalog entry from the server.
func (d *DB) MergeExercise(e *models.Exercise) error {
	query := `
		INSERT INTO exercises (id, name, description, video_url, created_at, updated_at, synced)
		VALUES (?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			video_url = excluded.video_url,
			updated_at = excluded.updated_at,
			synced = 1
	`
	_, err := d.db.Exec(query,
		e.ID.String(),
		e.Name,
		e.Description,
		e.VideoURL,
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("merge exercise: %w", err)
	}
	return nil
}

// GetExercise retrieves a catalog entry by id.
func (d *DB) GetExercise(id uuid.UUID) (*models.Exercise, error) {
	row := d.db.QueryRow(`
		SELECT id, name, description, video_url, created_at, updated_at, synced
		FROM exercises WHERE id = ?
	`, id.String())
	return scanExercise(row)
}

// ListExercises retrieves the full mirrored catalog, alphabetized.
func (d *DB) ListExercises() ([]*models.Exercise, error) {
	rows, err := d.db.Query(`
		SELECT id, name, description, video_url, created_at, updated_at, synced
		FROM exercises ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []*models.Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

// MergeUser upserts the user's profile from the server.
func (d *DB) MergeUser(u *models.User) error {
	query := `
		INSERT INTO users (id, name, surname, email, birth_date, weight_kg, height_cm, is_admin, created_at, updated_at, synced)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			surname = excluded.surname,
			email = excluded.email,
			birth_date = excluded.birth_date,
			weight_kg = excluded.weight_kg,
			height_cm = excluded.height_cm,
			is_admin = excluded.is_admin,
			updated_at = excluded.updated_at,
			synced = 1
	`
	_, err := d.db.Exec(query,
		u.ID.String(),
		u.Name,
		u.Surname,
		u.Email,
		u.BirthDate,
		u.WeightKg,
		u.HeightCm,
		boolInt(u.IsAdmin),
		u.CreatedAt.Format(time.RFC3339),
		u.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("merge user: %w", err)
	}
	return nil
}

// GetUser retrieves a mirrored user profile by id.
func (d *DB) GetUser(id uuid.UUID) (*models.User, error) {
	var u models.User
	var idStr, createdAt, updatedAt string
	var birthDate sql.NullString
	var weight, height sql.NullFloat64
	var isAdmin, synced int

	err := d.db.QueryRow(`
		SELECT id, name, surname, email, birth_date, weight_kg, height_cm, is_admin, created_at, updated_at, synced
		FROM users WHERE id = ?
	`, id.String()).Scan(&idStr, &u.Name, &u.Surname, &u.Email, &birthDate, &weight, &height, &isAdmin, &createdAt, &updatedAt, &synced)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.ID, _ = uuid.Parse(idStr)
	u.BirthDate = nullStr(birthDate)
	u.WeightKg = nullFloat(weight)
	u.HeightCm = nullFloat(height)
	u.IsAdmin = isAdmin != 0
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	u.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	u.Synced = synced != 0
	return &u, nil
}

func scanExercise(row interface{ Scan(...any) error }) (*models.Exercise, error) {
	var e models.Exercise
	var idStr, createdAt, updatedAt string
	var desc, videoURL sql.NullString
	var synced int

	err := row.Scan(&idStr, &e.Name, &desc, &videoURL, &createdAt, &updatedAt, &synced)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan exercise: %w", err)
	}
	e.ID, _ = uuid.Parse(idStr)
	e.Description = nullStr(desc)
	e.VideoURL = nullStr(videoURL)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	e.Synced = synced != 0
	return &e, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
