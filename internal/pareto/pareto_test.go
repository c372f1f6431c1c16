package pareto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/passbi/routeopt/internal/models"
	"github.com/passbi/routeopt/internal/pareto"
)

func obj(time, cost float64, transfers int, seat, safety float64) models.Objectives {
	return models.Objectives{
		TimeMinutes: time, Cost: cost, Transfers: transfers,
		SeatProbPercent: seat, SafetyScore: safety,
	}
}

func TestDominatesStrictlyBetterOnOneAxis(t *testing.T) {
	a := obj(100, 500, 0, 90, 100)
	b := obj(120, 500, 0, 90, 100)
	assert.True(t, pareto.Dominates(a, b))
	assert.False(t, pareto.Dominates(b, a))
}

func TestDominatesIdenticalIsFalse(t *testing.T) {
	a := obj(100, 500, 0, 90, 100)
	assert.False(t, pareto.Dominates(a, a))
}

func TestDominatesMixedTradeoffIsFalse(t *testing.T) {
	a := obj(100, 600, 0, 90, 100) // faster, pricier
	b := obj(150, 500, 0, 90, 100) // slower, cheaper
	assert.False(t, pareto.Dominates(a, b))
	assert.False(t, pareto.Dominates(b, a))
}

func TestFrontierDropsDominatedCandidates(t *testing.T) {
	candidates := []pareto.Scored{
		{Objectives: obj(100, 500, 0, 90, 100)}, // dominates the next one
		{Objectives: obj(120, 500, 0, 90, 100)},
		{Objectives: obj(90, 900, 0, 90, 100)}, // tradeoff: faster but pricier, stays
	}
	frontier := pareto.Frontier(candidates)
	assert.Len(t, frontier, 2)
	for _, f := range frontier {
		assert.NotEqual(t, 120.0, f.Objectives.TimeMinutes)
	}
}
