package models

import (
	"time"

	"gorm.io/gorm"
)

// Prediction is one participant's pick for one category. Exactly one
// prediction exists per (participant, category) pair; the submission
// service enforces this when the batch is created.
type Prediction struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	ParticipantID uint           `json:"participant_id" gorm:"not null;index"`
	CategoryID    uint           `json:"category_id" gorm:"not null"`
	NomineeID     uint           `json:"nominee_id" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Participant Participant `json:"participant,omitempty"`
	Category    Category    `json:"category,omitempty"`
	Nominee     Nominee     `json:"nominee,omitempty"`
}
