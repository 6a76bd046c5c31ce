package handlers

import (
	"net/http"
	"time"

	"fleetmon/internal/version"

	"github.com/gin-gonic/gin"
)

// Healthz reports the service's own state: how many hosts it is tracking and
// a sample of its own resource usage.
func (h *MonitorHandlers) Healthz(c *gin.Context) {
	self := h.sampler.Sample(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"service":           "fleetmon",
		"version":           version.String(),
		"status":            "online",
		"servers_monitored": h.store.Len(),
		"timestamp":         time.Now().UTC().Format(time.RFC3339),
		"self": gin.H{
			"cpu_percent":    self.CPUPercent,
			"memory_percent": self.MemoryPercent,
			"memory_used":    self.MemoryUsed,
			"memory_total":   self.MemoryTotal,
			"sampled_at":     self.SampledAt.Format(time.RFC3339),
		},
	})
}
