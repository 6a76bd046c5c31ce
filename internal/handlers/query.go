package handlers

import (
	"net/http"
	"sort"
	"time"

	"fleetmon/internal/models"
	"fleetmon/internal/store"

	"github.com/gin-gonic/gin"
)

// serverView is one entry in the status listing: the latest snapshot plus the
// derived status and server-side arrival time.
type serverView struct {
	*models.Report
	Status     models.Status `json:"status"`
	ReceivedAt string        `json:"received_at"`
}

func (h *MonitorHandlers) view(rec *store.Record, now time.Time) serverView {
	stale := models.IsStale(rec.ReceivedAt, now, h.cfg.StaleThreshold)
	return serverView{
		Report:     rec.Report,
		Status:     models.Classify(rec.Report, stale),
		ReceivedAt: rec.ReceivedAt.Format(time.RFC3339),
	}
}

// APIStatus lists every monitored host with its derived status. Busiest hosts
// come first: status priority, then descending peak GPU-memory pressure, then
// alias for a stable order.
func (h *MonitorHandlers) APIStatus(c *gin.Context) {
	now := time.Now().UTC()
	records := h.store.List()

	results := make([]serverView, 0, len(records))
	for _, rec := range records {
		results = append(results, h.view(rec, now))
	}

	sort.SliceStable(results, func(i, j int) bool {
		pi, pj := results[i].Status.Priority(), results[j].Status.Priority()
		if pi != pj {
			return pi < pj
		}
		gi, gj := results[i].PeakGPUMemoryPercent(), results[j].PeakGPUMemoryPercent()
		if gi != gj {
			return gi > gj
		}
		return results[i].ServerAlias < results[j].ServerAlias
	})

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// APIServer returns one host by alias.
func (h *MonitorHandlers) APIServer(c *gin.Context) {
	alias := c.Param("alias")
	rec, ok := h.store.Get(alias)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Server '" + alias + "' not found"})
		return
	}
	c.JSON(http.StatusOK, h.view(rec, time.Now().UTC()))
}

// APIDeleteServer removes a host from monitoring entirely. This is the
// explicit admin path; a host that merely stops reporting stays visible as
// offline.
func (h *MonitorHandlers) APIDeleteServer(c *gin.Context) {
	alias := c.Param("alias")
	if !h.store.Delete(alias) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Server '" + alias + "' not found"})
		return
	}
	h.logger.Writef("server %q removed from monitoring", alias)
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Server '" + alias + "' removed",
	})
}

// machineView is one row of the machine inventory: hosts plus the containers
// they reported, flattened into a parent/child listing.
type machineView struct {
	ID     string   `json:"id"`
	Alias  string   `json:"alias"`
	Type   string   `json:"type"`
	Group  string   `json:"group"`
	Parent *string  `json:"parent"`
	IP     string   `json:"ip"`
	OS     string   `json:"os"`
	Labels []string `json:"labels"`
	Status string   `json:"status"`
}

func onlineLabel(stale bool) string {
	if stale {
		return "offline"
	}
	return "online"
}

// APIMachines returns the machine inventory derived from the latest
// snapshots. Containers inherit their host's group and go offline when the
// host goes silent, since their state is only as fresh as the host's report.
func (h *MonitorHandlers) APIMachines(c *gin.Context) {
	now := time.Now().UTC()
	records := h.store.List()

	machines := make([]machineView, 0, len(records))
	for _, rec := range records {
		r := rec.Report
		stale := models.IsStale(rec.ReceivedAt, now, h.cfg.StaleThreshold)

		machines = append(machines, machineView{
			ID:     rec.Alias,
			Alias:  rec.Alias,
			Type:   r.MachineType,
			Group:  r.Group,
			Parent: nil,
			IP:     r.IP,
			OS:     r.OS,
			Labels: r.Labels,
			Status: onlineLabel(stale),
		})

		for _, ct := range r.Containers {
			parent := rec.Alias
			status := "offline"
			if !stale && ct.State == "running" {
				status = "online"
			}
			machines = append(machines, machineView{
				ID:     rec.Alias + "-" + ct.Name,
				Alias:  ct.Name,
				Type:   "container",
				Group:  r.Group,
				Parent: &parent,
				IP:     r.IP,
				OS:     ct.Image,
				Labels: []string{"container", ct.State},
				Status: status,
			})
		}
	}

	sort.Slice(machines, func(i, j int) bool { return machines[i].ID < machines[j].ID })

	c.JSON(http.StatusOK, gin.H{"machines": machines})
}

// APIHosts returns the compact host list used by dashboard selectors.
func (h *MonitorHandlers) APIHosts(c *gin.Context) {
	now := time.Now().UTC()
	records := h.store.List()

	hosts := make([]gin.H, 0, len(records))
	for _, rec := range records {
		if rec.Report.MachineType != "host" {
			continue
		}
		stale := models.IsStale(rec.ReceivedAt, now, h.cfg.StaleThreshold)
		hosts = append(hosts, gin.H{
			"alias":    rec.Alias,
			"hostname": rec.Report.Hostname,
			"ip":       rec.Report.IP,
			"status":   onlineLabel(stale),
		})
	}

	sort.Slice(hosts, func(i, j int) bool {
		return hosts[i]["alias"].(string) < hosts[j]["alias"].(string)
	})

	c.JSON(http.StatusOK, gin.H{"hosts": hosts})
}

// APIHostContainers returns the containers from a host's latest snapshot.
func (h *MonitorHandlers) APIHostContainers(c *gin.Context) {
	host := c.Param("host")
	rec, ok := h.store.Get(host)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Host '" + host + "' not found"})
		return
	}
	c.JSON(http.StatusOK, rec.Report.Containers)
}
