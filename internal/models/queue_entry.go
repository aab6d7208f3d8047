package models

import "time"

// Entrada da fila de atendimento por ordem de chegada (walk-in).
type QueueEntry struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EstablishmentID uint `gorm:"index" json:"establishment_id"`
	UserID          uint `gorm:"index" json:"user_id"`

	// Posição 1-based entre as entradas waiting; 0 depois de sair da fila.
	Position int    `json:"position"`
	Status   string `gorm:"size:20;default:'waiting'" json:"status"`

	JoinedAt   time.Time  `json:"joined_at"`
	CalledAt   *time.Time `json:"called_at"`
	ServingAt  *time.Time `json:"serving_at"`
	FinishedAt *time.Time `json:"finished_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
