// Package pareto extracts the non-dominated frontier from a set of scored
// candidate routes.
package pareto

import "github.com/passbi/routeopt/internal/models"

// Scored pairs a candidate Path with its computed objectives and route
// type, the shape every downstream stage (selector, shaper) consumes.
type Scored struct {
	Path       models.Path
	Objectives models.Objectives
	Type       models.RouteType
}

// Dominates reports whether a is at least as good as b on every objective
// and strictly better on at least one, using exact float comparison — no
// epsilon tolerance.
func Dominates(a, b models.Objectives) bool {
	betterOrEqual := a.TimeMinutes <= b.TimeMinutes &&
		a.Cost <= b.Cost &&
		a.Transfers <= b.Transfers &&
		a.SeatProbPercent >= b.SeatProbPercent &&
		a.SafetyScore >= b.SafetyScore
	if !betterOrEqual {
		return false
	}

	return a.TimeMinutes < b.TimeMinutes ||
		a.Cost < b.Cost ||
		a.Transfers < b.Transfers ||
		a.SeatProbPercent > b.SeatProbPercent ||
		a.SafetyScore > b.SafetyScore
}

// Frontier returns every candidate not dominated by any other candidate in
// the set. O(n^2); the candidate sets here are small enough that this
// never needs a sweep-line variant.
func Frontier(candidates []Scored) []Scored {
	frontier := make([]Scored, 0, len(candidates))
	for i, ci := range candidates {
		dominated := false
		for j, cj := range candidates {
			if i == j {
				continue
			}
			if Dominates(cj.Objectives, ci.Objectives) {
				dominated = true
				break
			}
		}
		if !dominated {
			frontier = append(frontier, ci)
		}
	}
	return frontier
}
