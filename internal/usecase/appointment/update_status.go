package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/navaro-app/navaro-api/internal/audit"
	domain "github.com/navaro-app/navaro-api/internal/domain/appointment"
	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/metrics"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/notification"
	"github.com/navaro-app/navaro-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type UpdateStatusInput struct {
	EstablishmentID uint
	ActorID         uint
	AppointmentID   uint

	// confirmed | completed | no_show
	Status string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointmentStatus struct {
	repo     domain.Repository
	settler  *Settler
	notifier Notifier
	audit    Auditor
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	settler *Settler,
	notifier Notifier,
	audit Auditor,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:     repo,
		settler:  settler,
		notifier: notifier,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Appointment, error) {

	target := domain.Status(in.Status)
	switch target {
	case domain.StatusConfirmed, domain.StatusCompleted, domain.StatusNoShow:
	default:
		// cancelamento tem endpoint próprio (multa e motivo)
		return nil, httperr.ErrBusiness("invalid_status")
	}

	now := timezone.Now()

	var ap *models.Appointment
	settled := false

	err := uc.repo.InTx(ctx, func(r domain.Repository) error {

		var err error
		ap, err = r.GetAppointmentForUpdate(ctx, in.AppointmentID)
		if err != nil || ap.EstablishmentID != in.EstablishmentID {
			return httperr.ErrBusiness("appointment_not_found")
		}

		// Repetir o estado atual é no-op: efeitos financeiros nunca
		// aplicam duas vezes.
		if domain.Status(ap.Status) == target {
			return nil
		}

		switch target {

		// --------------------------------------------------
		// Confirmação manual
		// --------------------------------------------------
		case domain.StatusConfirmed:
			if err := domain.Confirm(ap); err != nil {
				return err
			}
			return r.UpdateAppointment(ctx, ap)

		// --------------------------------------------------
		// Conclusão + liquidação (mesma transação)
		// --------------------------------------------------
		case domain.StatusCompleted:
			if err := domain.Complete(ap, now); err != nil {
				return err
			}
			if err := r.UpdateAppointment(ctx, ap); err != nil {
				return err
			}

			settleStart := time.Now()
			if err := uc.settler.Run(ctx, r, ap, now); err != nil {
				return err
			}
			metrics.SettlementDuration.Observe(time.Since(settleStart).Seconds())

			settled = true
			return nil

		// --------------------------------------------------
		// Não comparecimento
		// --------------------------------------------------
		case domain.StatusNoShow:
			if err := domain.MarkNoShow(ap); err != nil {
				return err
			}
			if err := r.UpdateAppointment(ctx, ap); err != nil {
				return err
			}

			est, err := r.GetEstablishment(ctx, ap.EstablishmentID)
			if err != nil {
				return err
			}

			fee := domain.NoShowFee(ap.TotalPrice, est.NoShowFeePercent)
			if fee > 0 {
				apID := ap.ID
				return r.CreateDebt(ctx, &models.UserDebt{
					UserID:          ap.UserID,
					EstablishmentID: ap.EstablishmentID,
					AppointmentID:   &apID,
					Amount:          fee,
					Reason:          "no_show",
					Status:          models.DebtPending,
				})
			}
			return nil
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if settled {
		metrics.AppointmentsCompleted.Inc()
	}

	uc.notifier.Notify(notification.Message{
		UserID: ap.UserID,
		Title:  "Agendamento atualizado",
		Body:   fmt.Sprintf("Seu agendamento agora está %s.", ap.Status),
		Type:   "appointment_status",
		Data:   map[string]any{"appointment_id": ap.ID, "status": ap.Status},
	})

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: in.EstablishmentID,
		ActorID:         &in.ActorID,
		Action:          "appointment_" + string(target),
		Entity:          "appointment",
		EntityID:        &ap.ID,
	})

	return ap, nil
}
