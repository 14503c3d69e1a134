package models

import "time"

// SystemConfig is a single-row table (id = 1) holding the adjustable
// capacity limits. Hard caps live in the limits service.
type SystemConfig struct {
	ID                      uint      `json:"id" gorm:"primaryKey"`
	MaxAdmins               int       `json:"max_admins" gorm:"not null;default:100"`
	MaxLobbiesPerAdmin      int       `json:"max_lobbies_per_admin" gorm:"not null;default:10"`
	MaxParticipantsPerLobby int       `json:"max_participants_per_lobby" gorm:"not null;default:50"`
	UpdatedAt               time.Time `json:"updated_at"`
}
