package queue

import (
	"context"

	"github.com/navaro-app/navaro-api/internal/audit"
	domain "github.com/navaro-app/navaro-api/internal/domain/queue"
	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/metrics"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/timezone"
)

// ======================================================
// USE CASE
// ======================================================

type JoinQueue struct {
	repo  domain.Repository
	audit Auditor
}

func NewJoinQueue(repo domain.Repository, audit Auditor) *JoinQueue {
	return &JoinQueue{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *JoinQueue) Execute(
	ctx context.Context,
	establishmentID uint,
	userID uint,
) (*models.QueueEntry, error) {

	var entry *models.QueueEntry

	// Posição atribuída com as linhas waiting travadas: dois joins
	// simultâneos nunca recebem o mesmo número.
	err := uc.repo.InTx(ctx, func(r domain.Repository) error {

		active, err := r.HasActiveEntry(ctx, establishmentID, userID)
		if err != nil {
			return err
		}
		if active {
			return httperr.ErrBusiness("already_in_queue")
		}

		max, err := r.MaxWaitingPosition(ctx, establishmentID)
		if err != nil {
			return err
		}

		entry = &models.QueueEntry{
			EstablishmentID: establishmentID,
			UserID:          userID,
			Position:        max + 1,
			Status:          string(domain.StatusWaiting),
			JoinedAt:        timezone.Now(),
		}

		return r.CreateEntry(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	metrics.QueueJoins.Inc()

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: establishmentID,
		ActorID:         &userID,
		Action:          "queue_joined",
		Entity:          "queue_entry",
		EntityID:        &entry.ID,
	})

	return entry, nil
}
