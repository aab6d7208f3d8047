package models

import "time"

type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID          uint  `gorm:"index" json:"user_id"`
	EstablishmentID uint  `gorm:"index" json:"establishment_id"`
	AppointmentID   *uint `json:"appointment_id"`

	// appointment | wallet_topup
	Purpose string `gorm:"size:20;default:'appointment'" json:"purpose"`

	// stripe | mercadopago | wallet
	Provider string `gorm:"size:20;not null" json:"provider"`

	// Chave de idempotência dos webhooks.
	ProviderPaymentID string `gorm:"size:100;uniqueIndex" json:"provider_payment_id"`

	Amount   float64 `json:"amount"`
	Currency string  `gorm:"size:3;default:'BRL'" json:"currency"`

	Status string `gorm:"size:20;default:'created'" json:"status"`

	// appointment_id, debt_ids, is_deposit, recovered_fees, wallet_topup...
	Metadata JSONMap `gorm:"type:jsonb" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	PaymentCreated   = "created"
	PaymentPending   = "pending"
	PaymentSucceeded = "succeeded"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

const (
	PaymentPurposeAppointment = "appointment"
	PaymentPurposeWalletTopup = "wallet_topup"
)
