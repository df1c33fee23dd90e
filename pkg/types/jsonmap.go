package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap is a semi-structured jsonb payload (recipient_data, branding,
// analytics_data). Key sets are documented on the owning model.
type JSONMap map[string]any

// Value marshals the map into a jsonb literal.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan decodes the jsonb column value.
func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("jsonmap: unsupported scan type %T", value)
	}

	if len(raw) == 0 {
		*m = JSONMap{}
		return nil
	}
	return json.Unmarshal(raw, m)
}
