package shaper_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passbi/routeopt/internal/models"
	"github.com/passbi/routeopt/internal/pareto"
	"github.com/passbi/routeopt/internal/segment"
	"github.com/passbi/routeopt/internal/selector"
	"github.com/passbi/routeopt/internal/shaper"
)

func floatPtr(f float64) *float64 { return &f }

func TestShapeProducesIdsAndRounding(t *testing.T) {
	raw := []models.Segment{
		{Type: models.SegmentTrain, UniqueID: "T1", Origin: "DEL", Destination: "BLR",
			Departure: "08:00:00", Arrival: "18:00:01", DurationMinutes: floatPtr(600.333),
			CostINR: floatPtr(1999.995), DistanceKM: floatPtr(2100), TrainName: "Rajdhani"},
	}
	store := segment.NewStore(raw, rand.New(rand.NewSource(42)))

	path := models.Path{{
		From: "DEL", To: "BLR", SegID: 0,
		Departure: "08:00:00", Arrival: "18:00:01",
		DurationHours: 10.00555, Cost: 1999.995, Distance: 2100, SeatAvailable: 1,
	}}
	candidate := pareto.Scored{
		Path: path,
		Objectives: models.Objectives{
			TimeMinutes: 600.333, Cost: 1999.995, Transfers: 0,
			SeatProbPercent: 100, SafetyScore: 100, DistanceKM: 2100,
		},
		Type: models.RouteTrainOnly,
	}

	travelDate := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	doc := shaper.Shape("DEL", "BLR", travelDate, 0,
		[]pareto.Scored{candidate},
		1,
		[]selector.Selected{{Scored: candidate, Category: selector.CategoryFastest}},
		store,
	)

	require.Len(t, doc.OptimalRoutes, 1)
	require.Len(t, doc.AllGeneratedRoutes, 1)
	assert.Equal(t, "OPT_ROUTE_01", doc.OptimalRoutes[0].RouteID)
	assert.Equal(t, "ALL_ROUTE_001", doc.AllGeneratedRoutes[0].RouteID)
	assert.Equal(t, selector.CategoryFastest, doc.OptimalRoutes[0].Category)
	assert.Equal(t, string(models.RouteTrainOnly), doc.AllGeneratedRoutes[0].Category)
	assert.Equal(t, 600.33, doc.OptimalRoutes[0].TotalTimeMinutes)
	assert.Equal(t, 2000.0, doc.OptimalRoutes[0].TotalCostINR)
	assert.Equal(t, "2026-07-30", doc.Metadata.TravelDate)
	assert.Equal(t, 1, doc.Metadata.TotalRoutesGenerated)
	assert.Equal(t, 1, doc.Metadata.ParetoFrontSize)
	assert.Equal(t, 1, doc.Metadata.TotalOptimalRoutes)
	assert.Equal(t, "train", doc.OptimalRoutes[0].Steps[0].Mode)
	assert.Equal(t, "Rajdhani", doc.OptimalRoutes[0].Steps[0].Name)
	assert.True(t, doc.OptimalRoutes[0].Steps[0].SeatAvailable)
}
