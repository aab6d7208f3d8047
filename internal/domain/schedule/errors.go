package schedule

// ===============================
// Validation reason codes
// ===============================

const (
	CodeEstablishmentClosed = "ESTABLISHMENT_CLOSED"
	CodeStaffUnavailable    = "STAFF_UNAVAILABLE"
	CodeScheduleBlocked     = "SCHEDULE_BLOCKED"
	CodeTimeConflict        = "TIME_CONFLICT"
)

// ValidationError é a rejeição da validação de disponibilidade, sempre
// corrigível pelo cliente (escolher outro horário ou profissional).
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func reject(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}
