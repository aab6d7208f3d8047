package queue

import "fmt"

// ===============================
// Queue Status
// ===============================

type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusCalled    Status = "called"
	StatusServing   Status = "serving"
	StatusCompleted Status = "completed"
	StatusLeft      Status = "left"
)

// Ativo = ainda ocupa lugar na fila.
func (s Status) IsActive() bool {
	switch s {
	case StatusWaiting, StatusCalled, StatusServing:
		return true
	}
	return false
}

var allowedTransitions = map[Status][]Status{
	StatusWaiting: {StatusCalled, StatusLeft},
	StatusCalled:  {StatusServing, StatusLeft},
	StatusServing: {StatusCompleted, StatusLeft},
}

type StateError struct {
	From Status
	To   Status
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot move queue entry from %s to %s", e.From, e.To)
}

func CanTransition(from, to Status) error {
	if from == to {
		return nil
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return nil
		}
	}
	return &StateError{From: from, To: to}
}
