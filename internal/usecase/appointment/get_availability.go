package appointment

import (
	"context"
	"time"

	domain "github.com/navaro-app/navaro-api/internal/domain/appointment"
	"github.com/navaro-app/navaro-api/internal/domain/schedule"
	"github.com/navaro-app/navaro-api/internal/dto"
	"github.com/navaro-app/navaro-api/internal/httperr"
)

// ======================================================
// INPUT
// ======================================================

type GetAvailabilityInput struct {
	EstablishmentID uint
	StaffID         uint
	ServiceID       uint
	Date            time.Time
}

// ======================================================
// USE CASE
// ======================================================

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in GetAvailabilityInput,
) ([]dto.AvailabilitySlot, error) {

	est, err := uc.repo.GetEstablishment(ctx, in.EstablishmentID)
	if err != nil || !est.Active {
		return nil, httperr.ErrBusiness("establishment_not_found")
	}

	staff, err := uc.repo.GetStaff(ctx, in.EstablishmentID, in.StaffID)
	if err != nil || !staff.Active {
		return nil, httperr.ErrBusiness("staff_not_found")
	}

	svc, err := uc.repo.GetService(ctx, in.EstablishmentID, in.ServiceID)
	if err != nil || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	weekday := schedule.WeekdayKey(in.Date)

	hours, ok := schedule.ResolveDayHours(est.BusinessHours, staff.WorkSchedule, weekday)
	if !ok {
		// dia fechado ou folga do profissional
		return []dto.AvailabilitySlot{}, nil
	}

	loc := in.Date.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			in.Date.Year(), in.Date.Month(), in.Date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	dayStart := parseHM(hours.Open)
	dayEnd := parseHM(hours.Close)

	booked, err := uc.repo.ListBookedIntervals(ctx, in.StaffID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	blocks, err := uc.repo.ListBlockIntervals(ctx, in.StaffID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	step := time.Duration(svc.DurationMinutes) * time.Minute
	slots := []dto.AvailabilitySlot{}

	for cur := dayStart; cur.Add(step).Before(dayEnd) || cur.Add(step).Equal(dayEnd); cur = cur.Add(step) {

		slotEnd := cur.Add(step)
		free := true

		for _, b := range blocks {
			if schedule.Overlaps(cur, slotEnd, b.Start, b.End) {
				free = false
				break
			}
		}

		if free {
			for _, a := range booked {
				if schedule.Overlaps(cur, slotEnd, a.Start, a.End) {
					free = false
					break
				}
			}
		}

		slots = append(slots, dto.AvailabilitySlot{
			Time:      cur.Format("15:04"),
			Available: free,
		})
	}

	return slots, nil
}
