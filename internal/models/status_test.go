package models

import (
	"testing"
	"time"
)

func reportWith(cpuPct, memPct float64, gpus []GPU) *Report {
	return &Report{
		ServerAlias: "test-host",
		Hostname:    "test-host",
		IP:          "10.0.0.1",
		CPU:         &CPU{Percent: Metric(cpuPct), LoadAvg: &LoadAvg{}},
		Memory:      &Memory{Percent: Metric(memPct)},
		GPUs:        gpus,
	}
}

func TestClassifyScenarios(t *testing.T) {
	cases := []struct {
		name string
		cpu  float64
		mem  float64
		gpus []GPU
		want Status
	}{
		{"high cpu trips degraded despite moderate composite", 96, 50, nil, StatusDegraded},
		{"idle host is available", 10, 10, nil, StatusAvailable},
		{"composite threshold exactly met", 60, 20, nil, StatusInUse},
		{"high memory alone degrades", 10, 96, nil, StatusDegraded},
		{"memory in-use threshold", 10, 60, nil, StatusInUse},
		{"cpu in-use threshold", 50, 0, nil, StatusInUse},
		{
			"saturated gpu memory degrades",
			5, 5,
			[]GPU{{MemoryUsedMB: 970, MemoryTotalMB: 1000}},
			StatusDegraded,
		},
		{
			"busy gpu memory means in-use",
			5, 5,
			[]GPU{{MemoryUsedMB: 500, MemoryTotalMB: 1000}},
			StatusInUse,
		},
		{
			"peak across gpus is what counts",
			5, 5,
			[]GPU{
				{MemoryUsedMB: 100, MemoryTotalMB: 1000},
				{MemoryUsedMB: 960, MemoryTotalMB: 1000},
			},
			StatusDegraded,
		},
		{"gpu with unknown total contributes zero", 5, 5, []GPU{{MemoryUsedMB: 500}}, StatusAvailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := reportWith(tc.cpu, tc.mem, tc.gpus)
			if got := Classify(r, false); got != tc.want {
				t.Fatalf("Classify = %q, want %q (composite %.1f)", got, tc.want, r.CompositeScore())
			}
		})
	}
}

func TestClassifyStaleOverridesHealthyMetrics(t *testing.T) {
	r := reportWith(10, 10, nil)
	if got := Classify(r, true); got != StatusOffline {
		t.Fatalf("Classify(stale) = %q, want %q", got, StatusOffline)
	}
}

func TestClassifyIsPure(t *testing.T) {
	r := reportWith(60, 20, []GPU{{MemoryUsedMB: 400, MemoryTotalMB: 1000, UtilizationPct: 30}})
	first := Classify(r, false)
	second := Classify(r, false)
	if first != second {
		t.Fatalf("Classify not deterministic: %q then %q", first, second)
	}
}

func TestCompositeScore(t *testing.T) {
	r := reportWith(96, 50, nil)
	if got := r.CompositeScore(); got != 53.4 {
		t.Fatalf("composite = %v, want 53.4", got)
	}
}

func TestStatusPriorityOrdering(t *testing.T) {
	order := []Status{StatusInUse, StatusDegraded, StatusAvailable, StatusOffline}
	for i := 1; i < len(order); i++ {
		if order[i-1].Priority() >= order[i].Priority() {
			t.Fatalf("%q should sort before %q", order[i-1], order[i])
		}
	}
}

func TestIsStaleBoundary(t *testing.T) {
	threshold := 300 * time.Second
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if IsStale(t0, t0.Add(299*time.Second), threshold) {
		t.Error("just inside threshold should not be stale")
	}
	if IsStale(t0, t0.Add(300*time.Second), threshold) {
		t.Error("exactly at threshold should not be stale")
	}
	if !IsStale(t0, t0.Add(301*time.Second), threshold) {
		t.Error("past threshold should be stale")
	}
}
