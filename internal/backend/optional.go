package backend

import (
	"bytes"
	"encoding/json"
)

// OptionalFloat is a float that the history backend may report as a number,
// null, or the literal string "N/A" for years with gaps in the record.
type OptionalFloat struct {
	Value float64
	Valid bool
}

func (f *OptionalFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = OptionalFloat{}
		return nil
	}
	if data[0] == '"' {
		// String values such as "N/A" mean no reading.
		*f = OptionalFloat{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = OptionalFloat{Value: v, Valid: true}
	return nil
}

func (f OptionalFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
