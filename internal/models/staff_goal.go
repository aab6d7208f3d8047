package models

import "time"

type StaffGoal struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StaffID         uint `gorm:"index" json:"staff_id"`
	EstablishmentID uint `json:"establishment_id"`

	// revenue | services_count | customer_count
	GoalType string `gorm:"size:20;not null" json:"goal_type"`

	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	TargetValue  float64 `json:"target_value"`
	CurrentValue float64 `json:"current_value"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	GoalRevenue       = "revenue"
	GoalServicesCount = "services_count"
	GoalCustomerCount = "customer_count"
)
