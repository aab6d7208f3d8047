package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DayHours guarda abertura e fechamento como "HH:MM".
type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// WeekSchedule mapeia dias da semana (mon..sun) para o expediente.
// Dia ausente no mapa significa fechado.
type WeekSchedule map[string]DayHours

func (ws WeekSchedule) Value() (driver.Value, error) {
	if ws == nil {
		return nil, nil
	}
	return json.Marshal(ws)
}

func (ws *WeekSchedule) Scan(value any) error {
	if value == nil {
		*ws = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, ws)
	case string:
		return json.Unmarshal([]byte(v), ws)
	default:
		return fmt.Errorf("week_schedule: cannot scan %T", value)
	}
}

// JSONMap é uma coluna jsonb genérica (metadata de pagamento, data de
// notificação).
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("json_map: cannot scan %T", value)
	}
}
