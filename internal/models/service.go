package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EstablishmentID uint `gorm:"index" json:"establishment_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`

	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	DepositRequired bool    `gorm:"default:false" json:"deposit_required"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
