package models

import "time"

// Combo de serviços vendido por preço e duração fechados.
type ServiceBundle struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EstablishmentID uint `gorm:"index" json:"establishment_id"`

	Name            string  `gorm:"size:100;not null" json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
