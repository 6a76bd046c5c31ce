package models

import (
	"encoding/json"
	"testing"
)

func decodeMetric(t *testing.T, raw string) Metric {
	t.Helper()
	var m Metric
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal %s: %v", raw, err)
	}
	return m
}

func TestMetricCoercion(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want float64
	}{
		{"number", `42.5`, 42.5},
		{"integer", `7`, 7},
		{"zero", `0`, 0},
		{"numeric string", `"88.25"`, 88.25},
		{"padded string", `" 12.5 "`, 12.5},
		{"garbage string", `"N/A"`, 0},
		{"empty string", `""`, 0},
		{"null", `null`, 0},
		{"wrapper with value", `{"value": 63.2, "raw": "ignored"}`, 63.2},
		{"wrapper with string value", `{"value": "63.2"}`, 63.2},
		{"wrapper falls back to raw", `{"value": "n/a", "raw": "17.5"}`, 17.5},
		{"wrapper raw only", `{"raw": "99"}`, 99},
		{"wrapper nothing usable", `{"value": null, "raw": "??"}`, 0},
		{"empty wrapper", `{}`, 0},
		{"bool degrades", `true`, 0},
		{"array degrades", `[1,2]`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := decodeMetric(t, tc.raw)
			if got.Float64() != tc.want {
				t.Fatalf("coerce %s: got %v, want %v", tc.raw, got.Float64(), tc.want)
			}
		})
	}
}

func TestMetricNeverRejectsLeaf(t *testing.T) {
	// A whole payload with every weird leaf encoding must still decode.
	payload := `{
		"percent": "96",
		"loadavg": {"1m": {"value": 1.5}, "5m": {"raw": "0.8"}, "15m": "bogus"}
	}`
	var c CPU
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		t.Fatalf("decode cpu: %v", err)
	}
	if c.Percent.Float64() != 96 {
		t.Errorf("percent = %v, want 96", c.Percent.Float64())
	}
	if c.LoadAvg.OneMin.Float64() != 1.5 {
		t.Errorf("1m = %v, want 1.5", c.LoadAvg.OneMin.Float64())
	}
	if c.LoadAvg.FiveMin.Float64() != 0.8 {
		t.Errorf("5m = %v, want 0.8", c.LoadAvg.FiveMin.Float64())
	}
	if c.LoadAvg.FifteenMin.Float64() != 0 {
		t.Errorf("15m = %v, want 0", c.LoadAvg.FifteenMin.Float64())
	}
}

func TestMetricMarshalsAsPlainNumber(t *testing.T) {
	out, err := json.Marshal(Metric(12.5))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "12.5" {
		t.Fatalf("marshal = %s, want 12.5", out)
	}
}
