package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the gin engine serving health, metrics and the read API
func NewRouter(handler *Handler, gatherer prometheus.Gatherer) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), handler.requestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "Healthy")
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	RegisterFusionRoutes(r.Group("/api/v1"), handler)
	return r
}

// RegisterFusionRoutes registers the read-only fusion endpoints
func RegisterFusionRoutes(rg *gin.RouterGroup, handler *Handler) {
	// GET /api/v1/identities
	rg.GET("/identities", handler.GetIdentities)

	// GET /api/v1/conflicts
	rg.GET("/conflicts", handler.GetConflicts)

	// GET /api/v1/history?passenger=
	rg.GET("/history", handler.GetHistory)

	// GET /api/v1/flight-graph?from=&to=&min=
	rg.GET("/flight-graph", handler.GetFlightGraph)

	// POST /api/v1/runs (trigger a fusion run)
	rg.POST("/runs", handler.TriggerRun)
}
