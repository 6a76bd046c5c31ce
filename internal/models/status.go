package models

import "time"

// Status is the derived operational state of a monitored host. It is computed
// on every read and never stored.
type Status string

const (
	StatusAvailable Status = "available"
	StatusInUse     Status = "in-use"
	StatusDegraded  Status = "degraded"
	StatusOffline   Status = "offline"
)

// Priority orders statuses for listing: busiest and most actionable first.
func (s Status) Priority() int {
	switch s {
	case StatusInUse:
		return 0
	case StatusDegraded:
		return 1
	case StatusAvailable:
		return 2
	default:
		return 3
	}
}

// Classification thresholds. A host trips "degraded" on any single saturated
// resource even when the blended score is moderate.
const (
	compositeDegraded = 85.0
	compositeInUse    = 30.0

	cpuDegraded = 95.0
	cpuInUse    = 50.0

	memDegraded = 95.0
	memInUse    = 60.0

	gpuMemDegraded = 95.0
	gpuMemInUse    = 50.0
)

// IsStale reports whether a snapshot that arrived at lastReport has gone
// silent past the threshold as of now.
func IsStale(lastReport, now time.Time, threshold time.Duration) bool {
	return now.Sub(lastReport) > threshold
}

// CompositeScore blends CPU, memory and GPU pressure into one load figure.
// GPU terms use the peak across all GPUs and contribute 0 on GPU-less hosts.
func (r *Report) CompositeScore() float64 {
	cpu := r.CPU.Percent.Float64()
	mem := r.Memory.Percent.Float64()
	return 0.4*cpu + 0.3*mem + 0.15*r.PeakGPUUtilizationPercent() + 0.15*r.PeakGPUMemoryPercent()
}

// Classify derives the operational status from a snapshot and its staleness.
// Staleness wins over everything: a silent host is offline no matter how
// healthy its last-known metrics look. The function is pure; calling it twice
// on the same inputs yields the same result.
func Classify(r *Report, stale bool) Status {
	if stale {
		return StatusOffline
	}

	cpu := r.CPU.Percent.Float64()
	mem := r.Memory.Percent.Float64()
	gpuMem := r.PeakGPUMemoryPercent()
	composite := r.CompositeScore()

	switch {
	case composite >= compositeDegraded, cpu >= cpuDegraded, mem >= memDegraded, gpuMem >= gpuMemDegraded:
		return StatusDegraded
	case composite >= compositeInUse, cpu >= cpuInUse, mem >= memInUse, gpuMem >= gpuMemInUse:
		return StatusInUse
	default:
		return StatusAvailable
	}
}
