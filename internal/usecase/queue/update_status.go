package queue

import (
	"context"

	"github.com/navaro-app/navaro-api/internal/audit"
	domain "github.com/navaro-app/navaro-api/internal/domain/queue"
	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/notification"
	"github.com/navaro-app/navaro-api/internal/settings"
	"github.com/navaro-app/navaro-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type UpdateStatusInput struct {
	EstablishmentID uint
	ActorID         uint
	EntryID         uint

	// called | serving | completed
	Status string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateQueueStatus struct {
	repo     domain.Repository
	settings SettingsReader
	notifier Notifier
	audit    Auditor
}

func NewUpdateQueueStatus(
	repo domain.Repository,
	settings SettingsReader,
	notifier Notifier,
	audit Auditor,
) *UpdateQueueStatus {
	return &UpdateQueueStatus{
		repo:     repo,
		settings: settings,
		notifier: notifier,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateQueueStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.QueueEntry, error) {

	target := domain.Status(in.Status)
	switch target {
	case domain.StatusCalled, domain.StatusServing, domain.StatusCompleted:
	default:
		// saída da fila tem endpoint próprio
		return nil, httperr.ErrBusiness("invalid_status")
	}

	now := timezone.Now()

	var entry *models.QueueEntry

	err := uc.repo.InTx(ctx, func(r domain.Repository) error {

		var err error
		entry, err = r.GetEntryForUpdate(ctx, in.EntryID)
		if err != nil || entry.EstablishmentID != in.EstablishmentID {
			return httperr.ErrBusiness("queue_entry_not_found")
		}

		if domain.Status(entry.Status) == target {
			return nil
		}

		freedPosition := entry.Position

		switch target {
		case domain.StatusCalled:
			if err := domain.Call(entry, now); err != nil {
				return err
			}
		case domain.StatusServing:
			if err := domain.Serve(entry, now); err != nil {
				return err
			}
		case domain.StatusCompleted:
			if err := domain.Finish(entry, now); err != nil {
				return err
			}
		}

		if err := r.UpdateEntry(ctx, entry); err != nil {
			return err
		}

		// A conclusão libera a posição; quem está atrás anda um número.
		if target == domain.StatusCompleted && freedPosition > 0 {
			return r.ShiftPositionsAfter(ctx, in.EstablishmentID, freedPosition)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if target == domain.StatusCalled &&
		uc.settings.GetBool(ctx, settings.KeyQueueNotifyEnable, true) {
		uc.notifier.Notify(notification.Message{
			UserID: entry.UserID,
			Title:  "É a sua vez!",
			Body:   "Você foi chamado, dirija-se ao atendimento.",
			Type:   "queue_called",
			Data:   map[string]any{"queue_entry_id": entry.ID},
		})
	}

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: in.EstablishmentID,
		ActorID:         &in.ActorID,
		Action:          "queue_" + string(target),
		Entity:          "queue_entry",
		EntityID:        &entry.ID,
	})

	return entry, nil
}
