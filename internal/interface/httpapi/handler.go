package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"paxfusion-service/internal/domain/entity"
	"paxfusion-service/internal/usecase"
	"paxfusion-service/pkg/logger"
)

// Runner triggers a fusion run
type Runner interface {
	RunOnce(ctx context.Context) (*entity.FusionResult, error)
}

// ResultReader exposes the latest fusion result
type ResultReader interface {
	Latest() (*entity.FusionResult, time.Time, bool)
}

// Handler serves the fusion result tables
type Handler struct {
	store  ResultReader
	graph  *usecase.FlightGraphBuilder
	runner Runner
	logger logger.Logger
}

// NewHandler creates a new handler. runner may be nil to disable triggered runs.
func NewHandler(store ResultReader, graph *usecase.FlightGraphBuilder, runner Runner, logger logger.Logger) *Handler {
	return &Handler{
		store:  store,
		graph:  graph,
		runner: runner,
		logger: logger,
	}
}

// ConflictsResponse groups every conflict table of a run
type ConflictsResponse struct {
	RunID                  string                         `json:"runId"`
	DocumentConflicts      []entity.DocumentConflict      `json:"documentConflicts"`
	DocumentChains         []entity.DocumentChain         `json:"documentChains"`
	AmbiguousTickets       []entity.AmbiguousTicket       `json:"ambiguousTickets"`
	ConflictedKeys         []entity.ConflictedKey         `json:"conflictedKeys"`
	NicknameConflicts      []entity.NicknameConflict      `json:"nicknameConflicts"`
	FFKeyDocumentConflicts []entity.FFKeyDocumentConflict `json:"ffKeyDocumentConflicts"`
	SuspiciousLegs         []entity.SuspiciousLeg         `json:"suspiciousLegs"`
}

func (h *Handler) latest(c *gin.Context) (*entity.FusionResult, bool) {
	result, finished, ok := h.store.Latest()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No fusion result available yet"})
		return nil, false
	}
	c.Header("X-Fusion-Run", result.RunID)
	c.Header("Last-Modified", finished.UTC().Format(http.TimeFormat))
	return result, true
}

// GetIdentities returns the canonical identities of the latest run
func (h *Handler) GetIdentities(c *gin.Context) {
	result, ok := h.latest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"runId":      result.RunID,
		"identities": nonNil(result.Identities),
	})
}

// GetConflicts returns every conflict and audit table of the latest run
func (h *Handler) GetConflicts(c *gin.Context) {
	result, ok := h.latest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ConflictsResponse{
		RunID:                  result.RunID,
		DocumentConflicts:      nonNil(result.DocumentConflicts),
		DocumentChains:         nonNil(result.DocumentChains),
		AmbiguousTickets:       nonNil(result.AmbiguousTickets),
		ConflictedKeys:         nonNil(result.ConflictedKeys),
		NicknameConflicts:      nonNil(result.NicknameConflicts),
		FFKeyDocumentConflicts: nonNil(result.FFKeyDocumentConflicts),
		SuspiciousLegs:         nonNil(result.SuspiciousLegs),
	})
}

// GetHistory returns the unified history, optionally for a single assigned id
func (h *Handler) GetHistory(c *gin.Context) {
	result, ok := h.latest(c)
	if !ok {
		return
	}

	passenger := c.Query("passenger")
	rows := result.History
	if passenger != "" {
		rows = make([]entity.HistoryRow, 0)
		for _, row := range result.History {
			if row.AssignedID == passenger {
				rows = append(rows, row)
			}
		}
		if len(rows) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Passenger not found"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"runId":   result.RunID,
		"history": nonNil(rows),
	})
}

// GetFlightGraph returns geocoded flight paths of the most active passengers
func (h *Handler) GetFlightGraph(c *gin.Context) {
	result, ok := h.latest(c)
	if !ok {
		return
	}

	q := usecase.GraphQuery{
		From: c.Query("from"),
		To:   c.Query("to"),
	}
	if raw := c.Query("min"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min"})
			return
		}
		q.MinFlights = n
	}

	graph, err := h.graph.Build(c.Request.Context(), result.History, q)
	if errors.Is(err, entity.ErrMalformedInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("Failed to build flight graph", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build flight graph"})
		return
	}
	c.JSON(http.StatusOK, graph)
}

// TriggerRun runs the fusion synchronously and returns the new run id
func (h *Handler) TriggerRun(c *gin.Context) {
	if h.runner == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Triggered runs are disabled"})
		return
	}

	result, err := h.runner.RunOnce(c.Request.Context())
	if errors.Is(err, usecase.ErrRunInProgress) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("Triggered fusion run failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fusion run failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"runId":    result.RunID,
		"history":  len(result.History),
		"identity": len(result.Identities),
	})
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// nonNil keeps empty tables encoded as [] instead of null
func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
