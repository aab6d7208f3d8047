package models

import "time"

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index" json:"user_id"`

	Title   string  `gorm:"size:100" json:"title"`
	Message string  `gorm:"size:500" json:"message"`
	Type    string  `gorm:"size:30" json:"type"`
	Data    JSONMap `gorm:"type:jsonb" json:"data"`

	Read bool `gorm:"default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}
