package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending         Status = "pending"
	StatusAwaitingDeposit Status = "awaiting_deposit"
	StatusConfirmed       Status = "confirmed"
	StatusCompleted       Status = "completed"
	StatusCancelled       Status = "cancelled"
	StatusNoShow          Status = "no_show"
)

// Terminais não têm transição de saída.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAwaitingDeposit, StatusConfirmed,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// InitialStatus decide o estado de criação: aguarda sinal quando o serviço
// exige ou o estabelecimento configura percentual de depósito.
func InitialStatus(depositRequired bool) Status {
	if depositRequired {
		return StatusAwaitingDeposit
	}
	return StatusPending
}

// transições legais por estado de origem; repetir o mesmo estado é
// tratado como no-op pelos casos de uso antes de chegar aqui.
var allowedTransitions = map[Status][]Status{
	StatusPending:         {StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusAwaitingDeposit: {StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusConfirmed:       {StatusCompleted, StatusCancelled, StatusNoShow},
}

// CanTransition valida a saída de from para to.
func CanTransition(from, to Status) error {
	if !to.Valid() {
		return &StateError{From: from, To: to}
	}
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
