package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paxfusion-service/internal/domain/entity"
	"paxfusion-service/pkg/logger"
)

func TestVisualizationPublisher_Publish(t *testing.T) {
	var got VisualizationPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/flight-history", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	p := NewVisualizationPublisher(srv.URL+"/", "secret", logger.NewNop())
	result := &entity.FusionResult{
		RunID:   "run-1",
		History: []entity.HistoryRow{{AssignedID: "pass_D1", FlightNumber: "FL100", FlightDate: "2024-05-01"}},
	}

	require.NoError(t, p.Publish(context.Background(), result))
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, result.History, got.History)
}

func TestVisualizationPublisher_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"down"}`))
	}))
	defer srv.Close()

	p := NewVisualizationPublisher(srv.URL, "", logger.NewNop())
	err := p.Publish(context.Background(), &entity.FusionResult{RunID: "run-2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
