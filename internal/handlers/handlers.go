// Package handlers wires the HTTP surface: report ingestion, the classified
// status views the dashboard polls, and the admin delete.
package handlers

import (
	"time"

	"fleetmon/internal/config"
	"fleetmon/internal/middleware"
	"fleetmon/internal/store"
	"fleetmon/internal/telemetry"
	"fleetmon/internal/utils"
)

type MonitorHandlers struct {
	store   *store.Store
	cfg     *config.Config
	hub     *middleware.Hub
	logger  *utils.Logger
	sampler *telemetry.Sampler
}

func NewMonitorHandlers(st *store.Store, cfg *config.Config, hub *middleware.Hub, logger *utils.Logger) *MonitorHandlers {
	return &MonitorHandlers{
		store:   st,
		cfg:     cfg,
		hub:     hub,
		logger:  logger,
		sampler: telemetry.NewSampler(5 * time.Second),
	}
}
