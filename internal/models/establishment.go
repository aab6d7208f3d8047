package models

import "time"

type Establishment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OwnerID uint `json:"owner_id"`
	Owner   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"owner"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Slug        string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"size:500" json:"description"`
	Phone       string `gorm:"size:20" json:"phone"`
	Address     string `gorm:"size:255" json:"address"`

	// Horário comercial por dia da semana (mon..sun). Dia ausente = fechado.
	BusinessHours WeekSchedule `gorm:"type:jsonb" json:"business_hours"`

	SubscriptionTier string `gorm:"size:20;default:'free'" json:"subscription_tier"`

	CancellationFeeFixed float64 `json:"cancellation_fee_fixed"`
	NoShowFeePercent     float64 `json:"no_show_fee_percent"`
	DepositPercent       float64 `json:"deposit_percent"`

	// Taxas de plataforma acumuladas de pagamentos em dinheiro, recuperadas
	// no próximo pagamento digital do estabelecimento.
	PendingPlatformFees float64 `json:"pending_platform_fees"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
