package models

import "time"

type StaffMember struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EstablishmentID uint          `gorm:"index" json:"establishment_id"`
	Establishment   Establishment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"establishment"`

	// Usuário vinculado (opcional) para receber comissões na carteira.
	UserID *uint `json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`

	Name string `gorm:"size:100;not null" json:"name"`

	// Escala individual; dia ausente cai no horário do estabelecimento.
	WorkSchedule WeekSchedule `gorm:"type:jsonb" json:"work_schedule"`

	CommissionRate *float64 `json:"commission_rate"`
	Active         bool     `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
