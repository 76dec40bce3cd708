package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paxfusion-service/internal/domain/entity"
	"paxfusion-service/pkg/logger"
	"paxfusion-service/pkg/utils"
)

func TestExtractHandlerAdapter_CanHandle(t *testing.T) {
	h := NewExchangeHandler(utils.NewExtractParser(logger.NewNop()), []string{"PointzAggregator", ""})

	assert.True(t, h.CanHandle("/tmp/pointzaggregator-2024.yaml"))
	assert.False(t, h.CanHandle("/pointzaggregator/club.csv"))
	assert.False(t, h.CanHandle("club.csv"))
	assert.Equal(t, entity.SourceExchange, h.Source())
}

func TestExtractHandlerAdapter_LoadAppends(t *testing.T) {
	h := NewExchangeHandler(utils.NewExtractParser(logger.NewNop()), []string{"exchange"})
	snapshot := &entity.Snapshot{Exchange: []entity.ExchangeFlight{{FFKey: "SU1"}}}

	feed := "- Date: 2024-05-01\n  FlightNumber: SU100\n  FFKey: SU 222\n  Fare: 150\n"
	require.NoError(t, h.Load(context.Background(), strings.NewReader(feed), snapshot))

	require.Len(t, snapshot.Exchange, 2)
	assert.Equal(t, "SU100", snapshot.Exchange[1].FlightNumber)
	assert.Equal(t, "150", snapshot.Exchange[1].Fare)
}

func TestExtractHandlerAdapter_LoadCanceled(t *testing.T) {
	h := NewClubHandler(utils.NewExtractParser(logger.NewNop()), []string{"club"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.Load(ctx, strings.NewReader(""), &entity.Snapshot{})
	assert.ErrorIs(t, err, context.Canceled)
}
