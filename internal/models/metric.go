package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Metric is a numeric wire field tolerant of the encodings agents have shipped
// over time: a plain number, a numeric string, or a wrapper object carrying a
// pre-parsed "value" and/or a raw source string. After decoding it is an
// ordinary float64; nothing past the ingestion boundary sees the variance.
type Metric float64

// UnmarshalJSON never fails for a well-typed leaf: an unparseable value
// degrades to 0 rather than rejecting the whole report.
func (m *Metric) UnmarshalJSON(data []byte) error {
	*m = Metric(coerceFloat(data))
	return nil
}

func (m Metric) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(m))
}

func (m Metric) Float64() float64 {
	return float64(m)
}

// metricWrapper is the structured encoding some agent versions emit for
// values they parse out of tool output.
type metricWrapper struct {
	Value json.RawMessage `json:"value"`
	Raw   *string         `json:"raw"`
}

func coerceFloat(data []byte) float64 {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return 0
	}

	if trimmed[0] == '{' {
		var w metricWrapper
		if err := json.Unmarshal(data, &w); err != nil {
			return 0
		}
		if f, ok := scalarFloat(w.Value); ok {
			return f
		}
		if w.Raw != nil {
			if f, ok := parseFloat(*w.Raw); ok {
				return f
			}
		}
		return 0
	}

	f, _ := scalarFloat(data)
	return f
}

// scalarFloat interprets a JSON number or numeric string.
func scalarFloat(data []byte) (float64, bool) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return 0, false
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, false
		}
		return parseFloat(s)
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return 0, false
	}
	return f, true
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
