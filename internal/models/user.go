// ABOUTME: User model mirroring the server's user entity.
// ABOUTME: Root of ownership for routines and logged sessions.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors the server-side user profile.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	BirthDate *string   `json:"birthDate,omitempty"`
	WeightKg  *float64  `json:"weightKg,omitempty"`
	HeightCm  *float64  `json:"heightCm,omitempty"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Synced    bool      `json:"-"`
}
