package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"paxfusion-service/internal/domain/entity"
	"paxfusion-service/internal/domain/repository"
	"paxfusion-service/pkg/logger"
)

// VisualizationPublisher hands the unified history to the map visualization service
type VisualizationPublisher struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
	client      *http.Client
}

// NewVisualizationPublisher creates a new visualization publisher
func NewVisualizationPublisher(baseURL, bearerToken string, logger logger.Logger) repository.ResultPublisher {
	return &VisualizationPublisher{
		logger:      logger,
		baseURL:     strings.TrimRight(baseURL, "/"),
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

// VisualizationPayload is the body posted to the visualization service
type VisualizationPayload struct {
	RunID      string                     `json:"runId"`
	Identities []entity.CanonicalIdentity `json:"identities"`
	History    []entity.HistoryRow        `json:"history"`
}

// Publish posts the identities and unified history of a run
func (p *VisualizationPublisher) Publish(ctx context.Context, result *entity.FusionResult) error {
	payload := VisualizationPayload{
		RunID:      result.RunID,
		Identities: result.Identities,
		History:    result.History,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/flight-history", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if p.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+p.bearerToken)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusAccepted {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("visualization service returned status %d: %v", resp.StatusCode, errorBody)
	}

	p.logger.Info("Published fusion result", "runID", result.RunID, "rows", len(result.History))
	return nil
}
