package models

// LoadAvg carries the 1/5/15-minute load averages.
type LoadAvg struct {
	OneMin     Metric `json:"1m"`
	FiveMin    Metric `json:"5m"`
	FifteenMin Metric `json:"15m"`
}

type CPU struct {
	Percent Metric   `json:"percent"`
	LoadAvg *LoadAvg `json:"loadavg" binding:"required"`
}

type Memory struct {
	TotalGB Metric `json:"total_gb"`
	UsedGB  Metric `json:"used_gb"`
	Percent Metric `json:"percent"`
}

type Disk struct {
	Mountpoint string `json:"mountpoint" binding:"required"`
	Fstype     string `json:"fstype"`
	FreeGB     Metric `json:"free_gb"`
	TotalGB    Metric `json:"total_gb"`
	Percent    Metric `json:"percent"`
}

type LoggedUser struct {
	Name    string `json:"name"`
	TTY     string `json:"tty"`
	Host    string `json:"host"`
	Started string `json:"started"`
}

// GPUProcess is one process attributed to a GPU by the driver tooling.
// Type is "C" for compute, "G" for graphics when the driver reports it.
type GPUProcess struct {
	PID          int    `json:"pid"`
	Username     string `json:"username"`
	Cmd          string `json:"cmd"`
	UsedMemoryMB Metric `json:"used_memory_mb"`
	Type         string `json:"type,omitempty"`
}

type GPU struct {
	Index              int          `json:"index"`
	Name               string       `json:"name"`
	UtilizationPct     Metric       `json:"utilization_pct"`
	MemoryUsedMB       Metric       `json:"memory_used_mb"`
	MemoryTotalMB      Metric       `json:"memory_total_mb"`
	TemperatureCelsius *Metric      `json:"temperature_celsius,omitempty"`
	FanSpeedPct        *Metric      `json:"fan_speed_pct,omitempty"`
	PowerDrawWatts     *Metric      `json:"power_draw_watts,omitempty"`
	Processes          []GPUProcess `json:"processes"`
}

// MemoryPercent returns used memory as a percentage of total, 0 when the
// total is unknown.
func (g *GPU) MemoryPercent() float64 {
	total := g.MemoryTotalMB.Float64()
	if total <= 0 {
		return 0
	}
	return g.MemoryUsedMB.Float64() / total * 100
}

type Container struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Image   string `json:"image"`
	State   string `json:"state"`
	Created string `json:"created"`
	Ports   string `json:"ports,omitempty"`
	CPUPct  Metric `json:"cpu_pct"`
	MemMB   Metric `json:"mem_mb"`
}

// Report is one full health submission from an agent. An accepted report is
// stored as-is and replaces the previous snapshot for the alias in whole;
// fields are never merged across reports.
//
// The Timestamp field is the agent's own clock and is kept for display only;
// liveness decisions use the server-assigned arrival time.
type Report struct {
	ServerAlias   string       `json:"server_alias" binding:"required"`
	Hostname      string       `json:"hostname" binding:"required"`
	IP            string       `json:"ip" binding:"required"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	CPU           *CPU         `json:"cpu" binding:"required"`
	Memory        *Memory      `json:"memory" binding:"required"`
	Disks         []Disk       `json:"disks" binding:"required,dive"`
	Users         []LoggedUser `json:"users" binding:"required"`
	GPUs          []GPU        `json:"gpus"`
	Containers    []Container  `json:"containers"`
	Timestamp     string       `json:"timestamp" binding:"required"`

	MachineType string   `json:"machine_type"`
	Group       string   `json:"group"`
	OS          string   `json:"os"`
	Labels      []string `json:"labels"`
}

// Normalize fills the optional-metadata defaults and guarantees the nested
// collections are non-nil, so every stored snapshot has one canonical shape.
func (r *Report) Normalize() {
	if r.MachineType == "" {
		r.MachineType = "host"
	}
	if r.Group == "" {
		r.Group = "default"
	}
	if r.OS == "" {
		r.OS = "Unknown"
	}
	if r.Labels == nil {
		r.Labels = []string{}
	}
	if r.GPUs == nil {
		r.GPUs = []GPU{}
	}
	if r.Containers == nil {
		r.Containers = []Container{}
	}
	for i := range r.GPUs {
		if r.GPUs[i].Processes == nil {
			r.GPUs[i].Processes = []GPUProcess{}
		}
	}
}

// PeakGPUMemoryPercent returns the highest memory-usage percentage across the
// host's GPUs, 0 when there are none.
func (r *Report) PeakGPUMemoryPercent() float64 {
	peak := 0.0
	for i := range r.GPUs {
		if pct := r.GPUs[i].MemoryPercent(); pct > peak {
			peak = pct
		}
	}
	return peak
}

// PeakGPUUtilizationPercent returns the highest utilization percentage across
// the host's GPUs, 0 when there are none.
func (r *Report) PeakGPUUtilizationPercent() float64 {
	peak := 0.0
	for i := range r.GPUs {
		if pct := r.GPUs[i].UtilizationPct.Float64(); pct > peak {
			peak = pct
		}
	}
	return peak
}
