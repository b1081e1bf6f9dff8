// ABOUTME: Exercise model for the global exercise catalog.
// ABOUTME: Exercises are not owned by routines; they are referenced by id.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Exercise is an entry in the server's global exercise catalog.
type Exercise struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	VideoURL    *string   `json:"videoUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Synced      bool      `json:"-"`
}

// NewExercise creates a catalog entry. Normally exercises arrive from
// the server; this exists for seeding and tests.
func NewExercise(name string) *Exercise {
	now := time.Now().UTC()
	return &Exercise{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
