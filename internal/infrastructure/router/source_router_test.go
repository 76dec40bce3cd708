package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paxfusion-service/internal/domain/entity"
	"paxfusion-service/internal/usecase"
	"paxfusion-service/pkg/logger"
	"paxfusion-service/pkg/utils"
)

func TestSourceRouter_GetHandler(t *testing.T) {
	r := NewSourceRouter(logger.NewNop())
	usecase.RegisterDefaultHandlers(r, utils.NewExtractParser(logger.NewNop()), map[entity.Source][]string{
		entity.SourceReservation: {"Sirena-export"},
		entity.SourceBoarding:    {"BoardingData"},
		entity.SourceExchange:    {"PointzAggregator"},
		entity.SourceClub:        {"SkyTeam"},
		entity.SourceForum:       {"FrequentFlyerForum"},
	})

	tests := []struct {
		file string
		want entity.Source
	}{
		{"/data/Sirena-export-fixed.tab", entity.SourceReservation},
		{"boardingdata.csv", entity.SourceBoarding},
		{"PointzAggregator-AirlinesData.yaml", entity.SourceExchange},
		{"SkyTeam-Exchange.csv", entity.SourceClub},
		{"FrequentFlyerForum-Profiles.json", entity.SourceForum},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			h := r.GetHandler(tt.file)
			require.NotNil(t, h)
			assert.Equal(t, tt.want, h.Source())
		})
	}

	assert.Nil(t, r.GetHandler("readme.txt"))
}
