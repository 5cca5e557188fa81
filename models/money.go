package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Money is a monetary amount that tolerates the backend's mixed encodings:
// JSON numbers, decimal strings ("12.50"), null, or missing fields all
// decode without error. Anything unparseable degrades to 0.
type Money float64

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*m = 0
		return nil
	}

	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*m = 0
			return nil
		}
		s = strings.TrimSpace(str)
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*m = 0
		return nil
	}

	*m = Money(value)
	return nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(m))
}

func (m Money) Float64() float64 {
	return float64(m)
}
