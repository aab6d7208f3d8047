package appointment

import (
	"context"

	"github.com/navaro-app/navaro-api/internal/audit"
	domain "github.com/navaro-app/navaro-api/internal/domain/appointment"
	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/notification"
	"github.com/navaro-app/navaro-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CancelAppointmentInput struct {
	AppointmentID uint
	ActorID       uint
	Reason        string

	// Dono cancela qualquer horário do próprio estabelecimento; cliente só
	// cancela os seus.
	IsOwner         bool
	EstablishmentID uint
}

// ======================================================
// USE CASE
// ======================================================

type CancelAppointment struct {
	repo     domain.Repository
	notifier Notifier
	audit    Auditor
}

func NewCancelAppointment(
	repo domain.Repository,
	notifier Notifier,
	audit Auditor,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in CancelAppointmentInput,
) (*models.Appointment, error) {

	now := timezone.Now()

	var ap *models.Appointment

	err := uc.repo.InTx(ctx, func(r domain.Repository) error {

		var err error
		ap, err = r.GetAppointmentForUpdate(ctx, in.AppointmentID)
		if err != nil {
			return httperr.ErrBusiness("appointment_not_found")
		}

		if in.IsOwner {
			if ap.EstablishmentID != in.EstablishmentID {
				return httperr.ErrBusiness("appointment_not_found")
			}
		} else if ap.UserID != in.ActorID {
			return httperr.ErrBusiness("appointment_not_found")
		}

		// cancelar de novo é no-op
		if domain.Status(ap.Status) == domain.StatusCancelled {
			return nil
		}

		if err := domain.Cancel(ap, now, in.Reason); err != nil {
			return err
		}
		if err := r.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		// --------------------------------------------------
		// Multa de cancelamento tardio (janela de 30 minutos)
		// --------------------------------------------------
		est, err := r.GetEstablishment(ctx, ap.EstablishmentID)
		if err != nil {
			return err
		}

		fee := domain.LateCancellationFee(now, ap.ScheduledAt, est.CancellationFeeFixed)
		if fee > 0 {
			apID := ap.ID
			return r.CreateDebt(ctx, &models.UserDebt{
				UserID:          ap.UserID,
				EstablishmentID: ap.EstablishmentID,
				AppointmentID:   &apID,
				Amount:          fee,
				Reason:          "late_cancellation",
				Status:          models.DebtPending,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(notification.Message{
		UserID: ap.UserID,
		Title:  "Agendamento cancelado",
		Body:   "Seu agendamento foi cancelado.",
		Type:   "appointment_cancelled",
		Data:   map[string]any{"appointment_id": ap.ID},
	})

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: ap.EstablishmentID,
		ActorID:         &in.ActorID,
		Action:          "appointment_cancelled",
		Entity:          "appointment",
		EntityID:        &ap.ID,
	})

	return ap, nil
}
