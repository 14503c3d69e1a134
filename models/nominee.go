package models

import (
	"time"

	"gorm.io/gorm"
)

// Nominee is one candidate within a category. At most one nominee per
// category carries IsWinner = true; the category service enforces this,
// not the database.
type Nominee struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	CategoryID uint           `json:"category_id" gorm:"not null;index"`
	Name       string         `json:"name" gorm:"not null"`
	IsWinner   bool           `json:"is_winner" gorm:"not null;default:false"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Category Category `json:"category,omitempty"`
}
