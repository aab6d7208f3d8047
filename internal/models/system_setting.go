package models

import "time"

// Parâmetro de plataforma editável em runtime (flags, percentuais).
type SystemSetting struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Key         string `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value       string `gorm:"size:255" json:"value"`
	Description string `gorm:"size:255" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
