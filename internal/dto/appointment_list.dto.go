package dto

import "time"

type AppointmentListDTO struct {
	ID              uint      `json:"id"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	EndsAt          time.Time `json:"ends_at"`
	Status          string    `json:"status"`
	CustomerName    string    `json:"customer_name"`
	StaffName       string    `json:"staff_name"`
	ServiceName     string    `json:"service_name"`
	DurationMinutes int       `json:"duration_minutes"`
	TotalPrice      float64   `json:"total_price"`
}

// AvailabilitySlot é um horário candidato da grade do dia.
type AvailabilitySlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}
