// Package telemetry samples the monitoring service's own resource usage for
// the health endpoint.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Self is one sample of the service host's CPU and memory usage.
type Self struct {
	CPUPercent    float64   `json:"cpu_percent"`
	MemoryPercent float64   `json:"memory_percent"`
	MemoryUsed    uint64    `json:"memory_used_bytes"`
	MemoryTotal   uint64    `json:"memory_total_bytes"`
	SampledAt     time.Time `json:"sampled_at"`
}

// Sampler caches samples briefly so health checks polled in quick succession
// don't hammer the OS probes.
type Sampler struct {
	mu   sync.Mutex
	ttl  time.Duration
	last Self
}

func NewSampler(ttl time.Duration) *Sampler {
	return &Sampler{ttl: ttl}
}

// Sample returns the cached reading when fresh, otherwise takes a new one.
// Probe failures leave the affected fields at zero rather than failing the
// health check.
func (s *Sampler) Sample(ctx context.Context) Self {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if !s.last.SampledAt.IsZero() && now.Sub(s.last.SampledAt) < s.ttl {
		return s.last
	}

	sample := Self{SampledAt: now}
	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		sample.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		sample.MemoryPercent = vm.UsedPercent
		sample.MemoryUsed = vm.Used
		sample.MemoryTotal = vm.Total
	}

	s.last = sample
	return sample
}
