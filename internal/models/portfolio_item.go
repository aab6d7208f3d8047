package models

import "time"

type PortfolioItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EstablishmentID uint `gorm:"index" json:"establishment_id"`

	ImageURL     string `gorm:"size:500" json:"image_url"`
	ThumbnailURL string `gorm:"size:500" json:"thumbnail_url"`
	Caption      string `gorm:"size:255" json:"caption"`

	CreatedAt time.Time `json:"created_at"`
}
