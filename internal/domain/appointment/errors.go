package appointment

import "fmt"

// StateError sinaliza tentativa de transição ilegal; o repetir idempotente
// do mesmo estado nunca chega a gerar este erro.
type StateError struct {
	From Status
	To   Status
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot transition appointment from %s to %s", e.From, e.To)
}
