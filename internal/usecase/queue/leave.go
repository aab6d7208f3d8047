package queue

import (
	"context"

	"github.com/navaro-app/navaro-api/internal/audit"
	domain "github.com/navaro-app/navaro-api/internal/domain/queue"
	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type LeaveQueueInput struct {
	EntryID uint
	ActorID uint

	// Dono remove qualquer entrada do próprio estabelecimento.
	IsOwner         bool
	EstablishmentID uint
}

// ======================================================
// USE CASE
// ======================================================

type LeaveQueue struct {
	repo  domain.Repository
	audit Auditor
}

func NewLeaveQueue(repo domain.Repository, audit Auditor) *LeaveQueue {
	return &LeaveQueue{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *LeaveQueue) Execute(
	ctx context.Context,
	in LeaveQueueInput,
) (*models.QueueEntry, error) {

	now := timezone.Now()

	var entry *models.QueueEntry

	err := uc.repo.InTx(ctx, func(r domain.Repository) error {

		var err error
		entry, err = r.GetEntryForUpdate(ctx, in.EntryID)
		if err != nil {
			return httperr.ErrBusiness("queue_entry_not_found")
		}

		if in.IsOwner {
			if entry.EstablishmentID != in.EstablishmentID {
				return httperr.ErrBusiness("queue_entry_not_found")
			}
		} else if entry.UserID != in.ActorID {
			return httperr.ErrBusiness("queue_entry_not_found")
		}

		if domain.Status(entry.Status) == domain.StatusLeft {
			return nil
		}

		freedPosition := entry.Position

		if err := domain.Leave(entry, now); err != nil {
			return err
		}
		if err := r.UpdateEntry(ctx, entry); err != nil {
			return err
		}

		if freedPosition > 0 {
			return r.ShiftPositionsAfter(ctx, entry.EstablishmentID, freedPosition)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: entry.EstablishmentID,
		ActorID:         &in.ActorID,
		Action:          "queue_left",
		Entity:          "queue_entry",
		EntityID:        &entry.ID,
	})

	return entry, nil
}
