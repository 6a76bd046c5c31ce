package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"fleetmon/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// reportEvent is the advisory message broadcast to websocket subscribers
// after a report is accepted.
type reportEvent struct {
	ID          string        `json:"id"`
	Event       string        `json:"event"`
	ServerAlias string        `json:"server_alias"`
	Status      models.Status `json:"status"`
	ReceivedAt  string        `json:"received_at"`
}

// APIReport ingests one agent report. The report either lands in whole or
// not at all: an invalid body leaves the previous snapshot untouched, and an
// accepted one atomically replaces it with a server-assigned arrival time.
func (h *MonitorHandlers) APIReport(c *gin.Context) {
	var report models.Report
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid report payload",
			"details": err.Error(),
		})
		return
	}

	report.Normalize()

	receivedAt := time.Now().UTC()
	h.store.Upsert(report.ServerAlias, &report, receivedAt)

	h.broadcastAccepted(&report, receivedAt)

	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"server_alias": report.ServerAlias,
		"received_at":  receivedAt.Format(time.RFC3339),
	})
}

func (h *MonitorHandlers) broadcastAccepted(report *models.Report, receivedAt time.Time) {
	if h.hub == nil {
		return
	}
	event := reportEvent{
		ID:          uuid.NewString(),
		Event:       "report_accepted",
		ServerAlias: report.ServerAlias,
		Status:      models.Classify(report, false),
		ReceivedAt:  receivedAt.Format(time.RFC3339),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Writef("failed to encode report event: %v", err)
		return
	}
	h.hub.Broadcast(payload)
}
