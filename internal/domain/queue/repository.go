package queue

import (
	"context"

	"github.com/navaro-app/navaro-api/internal/models"
)

type Repository interface {
	// InTx executa fn transacionado; as leituras de posição dentro de fn
	// travam as linhas waiting do estabelecimento.
	InTx(
		ctx context.Context,
		fn func(r Repository) error,
	) error

	HasActiveEntry(
		ctx context.Context,
		establishmentID uint,
		userID uint,
	) (bool, error)

	// MaxWaitingPosition trava as entradas waiting do estabelecimento e
	// devolve a maior posição (0 quando a fila está vazia).
	MaxWaitingPosition(
		ctx context.Context,
		establishmentID uint,
	) (int, error)

	CreateEntry(
		ctx context.Context,
		e *models.QueueEntry,
	) error

	GetEntry(
		ctx context.Context,
		id uint,
	) (*models.QueueEntry, error)

	GetEntryForUpdate(
		ctx context.Context,
		id uint,
	) (*models.QueueEntry, error)

	UpdateEntry(
		ctx context.Context,
		e *models.QueueEntry,
	) error

	// ShiftPositionsAfter decrementa a posição das entradas waiting acima
	// da posição removida, mantendo a numeração contígua a partir de 1.
	ShiftPositionsAfter(
		ctx context.Context,
		establishmentID uint,
		removedPosition int,
	) error

	ListWaiting(
		ctx context.Context,
		establishmentID uint,
	) ([]models.QueueEntry, error)
}
