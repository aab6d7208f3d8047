package models

import "time"

type UserWallet struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex" json:"user_id"`

	Balance float64 `json:"balance"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WalletTransaction struct {
	ID uint `gorm:"primaryKey" json:"id"`

	WalletID uint `gorm:"index" json:"wallet_id"`
	UserID   uint `gorm:"index" json:"user_id"`

	Type        string  `gorm:"size:20;not null" json:"type"`
	Amount      float64 `json:"amount"`
	Description string  `gorm:"size:255" json:"description"`

	// Referência externa (id do agendamento, do pagamento, etc).
	ReferenceID string `gorm:"size:64" json:"reference_id"`

	CreatedAt time.Time `json:"created_at"`
}
