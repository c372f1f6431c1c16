package selector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passbi/routeopt/internal/models"
	"github.com/passbi/routeopt/internal/pareto"
	"github.com/passbi/routeopt/internal/selector"
)

func scored(segID int32, time, cost float64, transfers int, seat, safety float64, typ models.RouteType) pareto.Scored {
	return pareto.Scored{
		Path: models.Path{{SegID: models.SegmentID(segID)}},
		Objectives: models.Objectives{
			TimeMinutes: time, Cost: cost, Transfers: transfers,
			SeatProbPercent: seat, SafetyScore: safety,
		},
		Type: typ,
	}
}

func TestSelectEmptyFrontier(t *testing.T) {
	assert.Nil(t, selector.Select(nil))
}

func TestSelectNeverExceedsMaxFinal(t *testing.T) {
	var frontier []pareto.Scored
	for i := 0; i < 40; i++ {
		frontier = append(frontier, scored(int32(i), float64(100+i), float64(500+i), 0, 90, 100, models.RouteTrainOnly))
	}
	out := selector.Select(frontier)
	assert.LessOrEqual(t, len(out), selector.MaxFinal)
}

func TestSelectSeedsMustHaveCategories(t *testing.T) {
	frontier := []pareto.Scored{
		scored(1, 100, 900, 0, 90, 100, models.RouteTrainOnly),   // fastest
		scored(2, 300, 200, 0, 90, 100, models.RouteTrainOnly),   // cheapest
		scored(3, 250, 700, 0, 95, 95, models.RouteTrainFlight),  // best multimodal (fastest among multimodal)
		scored(4, 280, 750, 1, 70, 90, models.RouteFlightOnly),
	}
	out := selector.Select(frontier)
	require.NotEmpty(t, out)

	categories := make(map[string]bool)
	for _, s := range out {
		categories[s.Category] = true
	}
	assert.True(t, categories[selector.CategoryFastest])
	assert.True(t, categories[selector.CategoryCheapest])
	assert.True(t, categories[selector.CategoryBestMultimodal])
}

func TestSelectDeduplicatesFingerprints(t *testing.T) {
	frontier := []pareto.Scored{
		scored(1, 100, 500, 0, 90, 100, models.RouteTrainOnly),
	}
	out := selector.Select(frontier)
	assert.Len(t, out, 1)
}

func TestSelectOrdersSeededCategoriesByPriority(t *testing.T) {
	frontier := []pareto.Scored{
		scored(1, 500, 100, 0, 90, 100, models.RouteTrainOnly),
		scored(2, 100, 900, 0, 90, 100, models.RouteTrainOnly),
	}
	out := selector.Select(frontier)
	require.Len(t, out, 2)
	// Both are seeded as must-have categories, each insertion at its own
	// priority: FASTEST (route 2) first, then CHEAPEST (route 1).
	assert.Equal(t, selector.CategoryFastest, out[0].Category)
	assert.Equal(t, selector.CategoryCheapest, out[1].Category)
}
