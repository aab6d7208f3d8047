package queue

import (
	"time"

	"github.com/navaro-app/navaro-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Call(e *models.QueueEntry, now time.Time) error {
	if err := CanTransition(Status(e.Status), StatusCalled); err != nil {
		return err
	}

	e.Status = string(StatusCalled)
	e.CalledAt = &now
	return nil
}

func Serve(e *models.QueueEntry, now time.Time) error {
	if err := CanTransition(Status(e.Status), StatusServing); err != nil {
		return err
	}

	e.Status = string(StatusServing)
	e.ServingAt = &now
	return nil
}

// Finish conclui o atendimento; a posição é liberada e a fila renumerada
// pelo chamador.
func Finish(e *models.QueueEntry, now time.Time) error {
	if err := CanTransition(Status(e.Status), StatusCompleted); err != nil {
		return err
	}

	e.Status = string(StatusCompleted)
	e.FinishedAt = &now
	e.Position = 0
	return nil
}

func Leave(e *models.QueueEntry, now time.Time) error {
	if err := CanTransition(Status(e.Status), StatusLeft); err != nil {
		return err
	}

	e.Status = string(StatusLeft)
	e.FinishedAt = &now
	e.Position = 0
	return nil
}
