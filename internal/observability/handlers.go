// README: Health/metrics/diagnostics Gin handlers (§6.4 "Diagnostics
// endpoint combines health, metrics, model-cost report, and feature
// flags"). Grounded on handlers.LocationHandler's small
// struct-holding-dependencies-plus-method-per-route shape.
package observability

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ark/internal/circuitbreaker"
	"ark/internal/costopt"
	"ark/internal/flags"
)

// Handler serves the three operator-facing endpoints the search API
// exposes alongside the discovery route.
type Handler struct {
	Breakers     *circuitbreaker.Registry
	Flags        *flags.Registry
	PlacesBudget *costopt.Tracker
	EventsBudget *costopt.Tracker
	AIBudget     *costopt.Tracker
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	health := Check(h.Breakers)
	status := http.StatusOK
	if health.Status == StatusDegraded {
		status = http.StatusOK // degraded is still a valid, serving state
	}
	c.JSON(status, health)
}

// Metrics handles GET /metrics via the standard Prometheus exposition
// format, delegated to promhttp against the default registry.
func Metrics() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// costReport is one dependency's day-bounded spend, mirroring
// costopt.Tracker.Snapshot.
type costReport struct {
	SpentUSD  float64 `json:"spent_usd"`
	CallCount int     `json:"call_count"`
}

// Diagnostics handles GET /diagnostics, combining health, cost reports, and
// the live feature-flag snapshot into one operator-facing payload.
func (h *Handler) Diagnostics(c *gin.Context) {
	now := time.Now()

	costs := map[string]costReport{}
	if h.PlacesBudget != nil {
		spent, calls := h.PlacesBudget.Snapshot(now)
		costs["places"] = costReport{SpentUSD: spent, CallCount: calls}
	}
	if h.EventsBudget != nil {
		spent, calls := h.EventsBudget.Snapshot(now)
		costs["events"] = costReport{SpentUSD: spent, CallCount: calls}
	}
	if h.AIBudget != nil {
		spent, calls := h.AIBudget.Snapshot(now)
		costs["ai"] = costReport{SpentUSD: spent, CallCount: calls}
	}

	c.JSON(http.StatusOK, gin.H{
		"health": Check(h.Breakers),
		"costs":  costs,
		"flags":  h.Flags.Snapshot(),
	})
}
