package appointment

import (
	"context"
	"time"

	domain "github.com/navaro-app/navaro-api/internal/domain/appointment"
	"github.com/navaro-app/navaro-api/internal/dto"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	establishmentID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	loc := timezone.Location(timezone.Default())

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.Add(24 * time.Hour)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		establishmentID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, toListDTO(ap))
	}

	return out, nil
}

func toListDTO(ap models.Appointment) dto.AppointmentListDTO {
	serviceName := ""
	if ap.Service != nil {
		serviceName = ap.Service.Name
	} else if ap.Bundle != nil {
		serviceName = ap.Bundle.Name
	}

	return dto.AppointmentListDTO{
		ID:              ap.ID,
		ScheduledAt:     ap.ScheduledAt,
		EndsAt:          ap.EndsAt(),
		Status:          ap.Status,
		CustomerName:    ap.User.Name,
		StaffName:       ap.Staff.Name,
		ServiceName:     serviceName,
		DurationMinutes: ap.DurationMinutes,
		TotalPrice:      ap.TotalPrice,
	}
}
