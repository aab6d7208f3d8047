package queue

import (
	"context"

	domain "github.com/navaro-app/navaro-api/internal/domain/queue"
	"github.com/navaro-app/navaro-api/internal/models"
)

type ListQueue struct {
	repo domain.Repository
}

func NewListQueue(repo domain.Repository) *ListQueue {
	return &ListQueue{repo: repo}
}

// Execute devolve as entradas waiting em ordem de posição.
func (uc *ListQueue) Execute(
	ctx context.Context,
	establishmentID uint,
) ([]models.QueueEntry, error) {
	return uc.repo.ListWaiting(ctx, establishmentID)
}
