package models

import "time"

// Dívida do cliente com o estabelecimento (multa de cancelamento tardio ou
// no-show), quitada junto com um pagamento futuro.
type UserDebt struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID          uint `gorm:"index:idx_user_debts_user_est" json:"user_id"`
	EstablishmentID uint `gorm:"index:idx_user_debts_user_est" json:"establishment_id"`

	AppointmentID *uint `json:"appointment_id"`

	Amount float64 `json:"amount"`
	Reason string  `gorm:"size:100" json:"reason"`
	Status string  `gorm:"size:20;default:'pending'" json:"status"`

	PaidAt *time.Time `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	DebtPending   = "pending"
	DebtPaid      = "paid"
	DebtCancelled = "cancelled"
)
