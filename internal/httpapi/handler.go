// Package httpapi exposes the ambient admin/observability surface over
// HTTP (spec.md's ambient concerns are carried regardless of Non-goals,
// per the teacher's pattern of a small gin surface beside the core
// engine). It intentionally does not expose price levels, executions, or
// account state — those are the spec's explicit Non-goals; only health and
// instrument names are served here. Prometheus /metrics is served by a
// separate server in cmd/server; this package only records request
// durations into it.
package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nathanyu/lob-engine/internal/engine"
	"github.com/nathanyu/lob-engine/internal/metrics"
)

// Handler holds the HTTP handler dependencies.
type Handler struct {
	engine *engine.Engine
}

// NewHandler creates a new Handler.
func NewHandler(eng *engine.Engine) *Handler {
	return &Handler{engine: eng}
}

// RegisterRoutes sets up the Gin routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	v1 := r.Group("/v1")
	{
		v1.GET("/instruments", h.ListInstruments)
	}
}

// Health returns a health check response.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "lob-engine",
	})
}

// ListInstruments handles GET /v1/instruments. It returns only the set of
// instrument names the engine has seen, never price-level data.
func (h *Handler) ListInstruments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"instruments": h.engine.InstrumentNames(),
	})
}

// PrometheusMiddleware records admin-surface request metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start).Seconds()

		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(c.Writer.Status()),
		).Observe(duration)
	}
}
