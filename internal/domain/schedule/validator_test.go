package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/navaro-app/navaro-api/internal/models"
)

// segunda-feira, 2026-03-02
func monday(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func openWeek() models.WeekSchedule {
	return models.WeekSchedule{
		"mon": {Open: "09:00", Close: "18:00"},
		"tue": {Open: "09:00", Close: "18:00"},
		"wed": {Open: "09:00", Close: "18:00"},
		"thu": {Open: "09:00", Close: "18:00"},
		"fri": {Open: "09:00", Close: "18:00"},
		"sat": {Open: "10:00", Close: "14:00"},
	}
}

func TestWeekdayKey(t *testing.T) {
	assert.Equal(t, "mon", WeekdayKey(monday(10, 0)))
	assert.Equal(t, "sun", WeekdayKey(monday(10, 0).AddDate(0, 0, 6)))
}

func TestOverlaps(t *testing.T) {
	base := monday(14, 0)
	end := base.Add(30 * time.Minute)

	cases := []struct {
		name         string
		otherStart   time.Time
		otherEnd     time.Time
		wantsOverlap bool
	}{
		{"identical", base, end, true},
		{"inside", base.Add(10 * time.Minute), base.Add(20 * time.Minute), true},
		{"containing", base.Add(-10 * time.Minute), end.Add(10 * time.Minute), true},
		{"partial head", base.Add(-15 * time.Minute), base.Add(15 * time.Minute), true},
		{"partial tail", base.Add(15 * time.Minute), end.Add(15 * time.Minute), true},
		{"adjacent before", base.Add(-30 * time.Minute), base, false},
		{"adjacent after", end, end.Add(30 * time.Minute), false},
		{"disjoint", end.Add(time.Hour), end.Add(2 * time.Hour), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantsOverlap, Overlaps(base, end, tc.otherStart, tc.otherEnd))
			assert.Equal(t, tc.wantsOverlap, Overlaps(tc.otherStart, tc.otherEnd, base, end))
		})
	}
}

func TestCheck_AcceptsFreeSlot(t *testing.T) {
	err := Check(CheckInput{
		BusinessHours:   openWeek(),
		StartAt:         monday(14, 0),
		DurationMinutes: 30,
	})
	assert.Nil(t, err)
}

func TestCheck_RejectsClosedDay(t *testing.T) {
	sunday := monday(14, 0).AddDate(0, 0, 6)

	err := Check(CheckInput{
		BusinessHours:   openWeek(),
		StartAt:         sunday,
		DurationMinutes: 30,
	})
	assert.NotNil(t, err)
	assert.Equal(t, CodeEstablishmentClosed, err.Code)
}

func TestCheck_StaffDayOffDoesNotFallBack(t *testing.T) {
	staff := models.WeekSchedule{
		"mon": {}, // folga explícita
	}

	err := Check(CheckInput{
		BusinessHours:   openWeek(),
		StaffSchedule:   staff,
		StartAt:         monday(14, 0),
		DurationMinutes: 30,
	})
	assert.NotNil(t, err)
	assert.Equal(t, CodeStaffUnavailable, err.Code)
}

func TestCheck_StaffFallsBackToBusinessHours(t *testing.T) {
	staff := models.WeekSchedule{
		"tue": {Open: "12:00", Close: "20:00"},
	}

	err := Check(CheckInput{
		BusinessHours:   openWeek(),
		StaffSchedule:   staff,
		StartAt:         monday(14, 0),
		DurationMinutes: 30,
	})
	assert.Nil(t, err)
}

func TestCheck_StaffOwnHoursWin(t *testing.T) {
	staff := models.WeekSchedule{
		"mon": {Open: "13:00", Close: "15:00"},
	}

	in := CheckInput{
		BusinessHours:   openWeek(),
		StaffSchedule:   staff,
		StartAt:         monday(10, 0),
		DurationMinutes: 30,
	}
	err := Check(in)
	assert.NotNil(t, err)
	assert.Equal(t, CodeStaffUnavailable, err.Code)
	assert.Contains(t, err.Message, "13:00-15:00")

	in.StartAt = monday(14, 0)
	assert.Nil(t, Check(in))
}

func TestCheck_HoursBoundaries(t *testing.T) {
	in := CheckInput{
		BusinessHours:   openWeek(),
		DurationMinutes: 30,
	}

	in.StartAt = monday(9, 0)
	assert.Nil(t, Check(in), "abrir às 09:00 deve aceitar início 09:00")

	in.StartAt = monday(8, 59)
	assert.NotNil(t, Check(in))

	in.StartAt = monday(18, 0)
	err := Check(in)
	assert.NotNil(t, err, "início exatamente no fechamento é rejeitado")
	assert.Equal(t, CodeStaffUnavailable, err.Code)

	// O término pode ultrapassar o fechamento; só o início é validado.
	in.StartAt = monday(17, 59)
	assert.Nil(t, Check(in))
}

func TestCheck_RejectsScheduleBlock(t *testing.T) {
	err := Check(CheckInput{
		BusinessHours:   openWeek(),
		StartAt:         monday(14, 0),
		DurationMinutes: 30,
		Blocks: []Interval{
			{Start: monday(14, 15), End: monday(15, 0)},
		},
	})
	assert.NotNil(t, err)
	assert.Equal(t, CodeScheduleBlocked, err.Code)
}

func TestCheck_AdjacentBlockAllowed(t *testing.T) {
	err := Check(CheckInput{
		BusinessHours:   openWeek(),
		StartAt:         monday(14, 0),
		DurationMinutes: 30,
		Blocks: []Interval{
			{Start: monday(14, 30), End: monday(15, 0)},
		},
	})
	assert.Nil(t, err)
}

// Cenário de referência: aberto seg 09:00-18:00, serviço de 30 minutos.
func TestCheck_BookingScenario(t *testing.T) {
	in := CheckInput{
		BusinessHours:   openWeek(),
		DurationMinutes: 30,
	}

	// 14:00 livre: aceita.
	in.StartAt = monday(14, 0)
	assert.Nil(t, Check(in))

	// Com 14:00-14:30 ocupado, 14:15 conflita.
	in.Existing = []Interval{{Start: monday(14, 0), End: monday(14, 30)}}
	in.StartAt = monday(14, 15)
	err := Check(in)
	assert.NotNil(t, err)
	assert.Equal(t, CodeTimeConflict, err.Code)

	// 14:30 encosta no anterior sem sobrepor: aceita.
	in.StartAt = monday(14, 30)
	assert.Nil(t, Check(in))
}

func TestCheck_ClosedDayShortCircuitsConflicts(t *testing.T) {
	sunday := monday(14, 0).AddDate(0, 0, 6)

	err := Check(CheckInput{
		BusinessHours:   openWeek(),
		StartAt:         sunday,
		DurationMinutes: 30,
		Existing: []Interval{
			{Start: sunday, End: sunday.Add(30 * time.Minute)},
		},
	})
	assert.NotNil(t, err)
	assert.Equal(t, CodeEstablishmentClosed, err.Code)
}

func TestCheck_CancelledAppointmentsNotConsidered(t *testing.T) {
	// O chamador só passa agendamentos não cancelados; aqui garantimos que
	// uma lista vazia libera o horário antes ocupado.
	err := Check(CheckInput{
		BusinessHours:   openWeek(),
		StartAt:         monday(14, 0),
		DurationMinutes: 30,
		Existing:        []Interval{},
	})
	assert.Nil(t, err)
}
