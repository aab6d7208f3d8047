package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/navaro-app/navaro-api/internal/domain/schedule"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/timezone"
)

func TestAvailabilityGridMarksConflicts(t *testing.T) {
	repo := new(MockRepository)

	loc := timezone.Location(timezone.Default())
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, loc) // segunda
	busy := time.Date(2026, 9, 7, 14, 0, 0, 0, loc)

	repo.On("GetEstablishment", mock.Anything, uint(1)).
		Return(&models.Establishment{ID: 1, BusinessHours: fullWeek(), Active: true}, nil)
	repo.On("GetStaff", mock.Anything, uint(1), uint(3)).
		Return(&models.StaffMember{ID: 3, Active: true}, nil)
	repo.On("GetService", mock.Anything, uint(1), uint(5)).
		Return(&models.Service{ID: 5, Price: 100, DurationMinutes: 30, Active: true}, nil)
	repo.On("ListBookedIntervals", mock.Anything, uint(3), mock.Anything, mock.Anything).
		Return([]schedule.Interval{{Start: busy, End: busy.Add(30 * time.Minute)}}, nil)
	repo.On("ListBlockIntervals", mock.Anything, uint(3), mock.Anything, mock.Anything).
		Return([]schedule.Interval{}, nil)

	slots, err := NewGetAvailability(repo).Execute(context.Background(), GetAvailabilityInput{
		EstablishmentID: 1,
		StaffID:         3,
		ServiceID:       5,
		Date:            day,
	})

	assert.NoError(t, err)
	// 09:00–18:00 em passos de 30 min = 18 candidatos
	assert.Len(t, slots, 18)

	byTime := map[string]bool{}
	for _, s := range slots {
		byTime[s.Time] = s.Available
	}

	assert.False(t, byTime["14:00"])
	assert.True(t, byTime["13:30"])
	assert.True(t, byTime["14:30"])
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "17:30", slots[len(slots)-1].Time)
}

func TestAvailabilityClosedDayReturnsEmpty(t *testing.T) {
	repo := new(MockRepository)

	loc := timezone.Location(timezone.Default())
	day := time.Date(2026, 9, 6, 0, 0, 0, 0, loc) // domingo: fora da agenda

	repo.On("GetEstablishment", mock.Anything, uint(1)).
		Return(&models.Establishment{ID: 1, BusinessHours: fullWeek(), Active: true}, nil)
	repo.On("GetStaff", mock.Anything, uint(1), uint(3)).
		Return(&models.StaffMember{ID: 3, Active: true}, nil)
	repo.On("GetService", mock.Anything, uint(1), uint(5)).
		Return(&models.Service{ID: 5, Price: 100, DurationMinutes: 30, Active: true}, nil)

	slots, err := NewGetAvailability(repo).Execute(context.Background(), GetAvailabilityInput{
		EstablishmentID: 1,
		StaffID:         3,
		ServiceID:       5,
		Date:            day,
	})

	assert.NoError(t, err)
	assert.Empty(t, slots)
	repo.AssertNotCalled(t, "ListBookedIntervals",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Folga explícita do profissional (dia presente mas vazio) zera a grade
// mesmo com o estabelecimento aberto.
func TestAvailabilityStaffDayOff(t *testing.T) {
	repo := new(MockRepository)

	loc := timezone.Location(timezone.Default())
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, loc)

	repo.On("GetEstablishment", mock.Anything, uint(1)).
		Return(&models.Establishment{ID: 1, BusinessHours: fullWeek(), Active: true}, nil)
	repo.On("GetStaff", mock.Anything, uint(1), uint(3)).
		Return(&models.StaffMember{
			ID:           3,
			Active:       true,
			WorkSchedule: models.WeekSchedule{"mon": {}},
		}, nil)
	repo.On("GetService", mock.Anything, uint(1), uint(5)).
		Return(&models.Service{ID: 5, Price: 100, DurationMinutes: 30, Active: true}, nil)

	slots, err := NewGetAvailability(repo).Execute(context.Background(), GetAvailabilityInput{
		EstablishmentID: 1,
		StaffID:         3,
		ServiceID:       5,
		Date:            day,
	})

	assert.NoError(t, err)
	assert.Empty(t, slots)
}
