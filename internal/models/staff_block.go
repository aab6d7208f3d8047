package models

import "time"

// Intervalo de indisponibilidade do profissional (pausa, folga, férias).
type StaffBlock struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StaffID uint        `gorm:"index" json:"staff_id"`
	Staff   StaffMember `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"staff"`

	StartAt time.Time `gorm:"index" json:"start_at"`
	EndAt   time.Time `json:"end_at"`
	Reason  string    `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
