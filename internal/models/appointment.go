package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	EstablishmentID uint          `gorm:"index" json:"establishment_id"`
	Establishment   Establishment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"establishment"`

	StaffID uint        `gorm:"index:idx_appointments_staff_time" json:"staff_id"`
	Staff   StaffMember `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff"`

	ServiceID *uint    `json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`

	BundleID *uint          `json:"bundle_id"`
	Bundle   *ServiceBundle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"bundle,omitempty"`

	ScheduledAt time.Time `gorm:"index:idx_appointments_staff_time" json:"scheduled_at"`

	// Cópia da duração do serviço no momento da reserva.
	DurationMinutes int `json:"duration_minutes"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	PaymentType   string  `gorm:"size:20;default:'single'" json:"payment_type"`
	PaymentMethod string  `gorm:"size:20;default:'card'" json:"payment_method"`
	TotalPrice    float64 `json:"total_price"`

	CancelReason string `gorm:"size:255" json:"cancel_reason"`
	ReminderSent bool   `gorm:"default:false" json:"reminder_sent"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EndsAt é o fim do intervalo meio-aberto [ScheduledAt, EndsAt).
func (a *Appointment) EndsAt() time.Time {
	return a.ScheduledAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}
