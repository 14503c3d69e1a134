package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	LobbyStatusOpen      = "open"
	LobbyStatusLocked    = "locked"
	LobbyStatusCompleted = "completed"
)

// Lobby is a single prediction pool. The ID is an opaque invite token,
// not a sequential number, so links can be shared without being guessable.
type Lobby struct {
	ID        string         `json:"id" gorm:"primaryKey"`
	AdminID   uint           `json:"admin_id" gorm:"not null;index"`
	Name      string         `json:"name" gorm:"not null"`
	Status    string         `json:"status" gorm:"not null;default:'open'"` // open, locked, completed
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	LockedAt  *time.Time     `json:"locked_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Admin        Admin         `json:"admin,omitempty"`
	Participants []Participant `json:"participants,omitempty" gorm:"foreignKey:LobbyID"`
}
