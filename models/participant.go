package models

import (
	"time"

	"gorm.io/gorm"
)

// Participant is an anonymous entrant, identified only by a name unique
// (case-insensitively) within its lobby. Rows are created once at
// submission time and never updated.
type Participant struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	LobbyID     string         `json:"lobby_id" gorm:"not null;index"`
	Name        string         `json:"name" gorm:"not null"`
	SubmittedAt time.Time      `json:"submitted_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Lobby       Lobby        `json:"lobby,omitempty"`
	Predictions []Prediction `json:"predictions,omitempty" gorm:"foreignKey:ParticipantID"`
}
