package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/navaro-app/navaro-api/internal/models"
)

// ===============================
// Availability Validator
// ===============================
//
// Decide se um horário pode ser reservado para um par estabelecimento/
// profissional. Puro: opera apenas sobre dados já carregados, sem tocar
// no banco.

type CheckInput struct {
	BusinessHours models.WeekSchedule
	StaffSchedule models.WeekSchedule

	StartAt         time.Time
	DurationMinutes int

	// Bloqueios do profissional no período candidato.
	Blocks []Interval

	// Agendamentos não cancelados do mesmo profissional.
	Existing []Interval
}

// Check aplica as regras em ordem; a primeira falha interrompe e sai com o
// motivo. Ordem: dia do estabelecimento, escala do profissional, horário de
// início, bloqueios, conflitos.
func Check(in CheckInput) *ValidationError {
	weekday := WeekdayKey(in.StartAt)
	end := in.StartAt.Add(time.Duration(in.DurationMinutes) * time.Minute)

	if _, ok := dayEntry(in.BusinessHours, weekday); !ok {
		return reject(CodeEstablishmentClosed,
			fmt.Sprintf("establishment closed on %s", weekday))
	}

	hours, ok := ResolveDayHours(in.BusinessHours, in.StaffSchedule, weekday)
	if !ok {
		return reject(CodeStaffUnavailable,
			fmt.Sprintf("staff does not work on %s", weekday))
	}

	// Só o início precisa cair dentro do expediente; o término pode passar
	// do fechamento (comportamento corrente do produto, ver DESIGN.md).
	if !StartsWithinHours(in.StartAt, hours) {
		return reject(CodeStaffUnavailable,
			fmt.Sprintf("outside staff hours %s-%s", hours.Open, hours.Close))
	}

	for _, b := range in.Blocks {
		if Overlaps(in.StartAt, end, b.Start, b.End) {
			return reject(CodeScheduleBlocked, "staff unavailable (schedule block)")
		}
	}

	for _, a := range in.Existing {
		if Overlaps(in.StartAt, end, a.Start, a.End) {
			return reject(CodeTimeConflict, "time conflict with another appointment")
		}
	}

	return nil
}

// WeekdayKey devolve a chave de 3 letras (mon..sun) do instante.
func WeekdayKey(t time.Time) string {
	return strings.ToLower(t.Weekday().String()[:3])
}

// ResolveDayHours resolve o expediente do profissional no dia: entrada
// própria quando existir, senão o horário do estabelecimento. Entrada
// presente mas vazia marca folga explícita (sem fallback).
func ResolveDayHours(business, staff models.WeekSchedule, weekday string) (models.DayHours, bool) {
	if staff != nil {
		if h, exists := staff[weekday]; exists {
			if h.Open == "" || h.Close == "" {
				return models.DayHours{}, false
			}
			return h, true
		}
	}
	return dayEntry(business, weekday)
}

// StartsWithinHours testa o início contra [open, close): começar exatamente
// no fechamento é rejeitado, no horário de abertura é aceito.
func StartsWithinHours(start time.Time, hours models.DayHours) bool {
	tod := start.Format("15:04")
	return tod >= hours.Open && tod < hours.Close
}

func dayEntry(ws models.WeekSchedule, weekday string) (models.DayHours, bool) {
	if ws == nil {
		return models.DayHours{}, false
	}
	h, exists := ws[weekday]
	if !exists || h.Open == "" || h.Close == "" {
		return models.DayHours{}, false
	}
	return h, true
}
