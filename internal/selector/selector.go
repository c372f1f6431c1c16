// Package selector reduces a Pareto frontier down to a diverse, bounded set
// of recommended routes: five seeded "must-have" categories, then a
// round-robin fill across five sorted views, tagged and ordered for
// presentation.
package selector

import (
	"sort"

	"github.com/passbi/routeopt/internal/models"
	"github.com/passbi/routeopt/internal/pareto"
)

// MaxFinal is the maximum number of routes the selector ever returns.
const MaxFinal = 20

// Category tags, spelled to match original_source/route_optimizer.py —
// the selector/shaper is free to choose the spelling as long as
// they agree.
const (
	CategoryFastest            = "FASTEST ⚡"
	CategoryCheapest           = "CHEAPEST 💰"
	CategoryMostDirect         = "MOST DIRECT 🚂"
	CategorySafest             = "SAFEST 🛡️"
	CategoryBestMultimodal     = "BEST MULTIMODAL ✈️+🚂"
	CategoryFast               = "FAST ⚡"
	CategoryCheap              = "CHEAP 💰"
	CategoryBalanced           = "BALANCED ⚖️"
	CategoryMultimodal         = "MULTIMODAL ✈️+🚂"
	CategoryOptimalAlternative = "OPTIMAL ALTERNATIVE 🎯"
)

// Selected is one chosen route plus the category it was selected under.
type Selected struct {
	Scored   pareto.Scored
	Category string
}

type entry struct {
	scored   pareto.Scored
	category string
	priority int
}

// Select applies the full selection procedure to a Pareto frontier,
// returning at most MaxFinal routes sorted by (category priority desc,
// time asc).
func Select(frontier []pareto.Scored) []Selected {
	if len(frontier) == 0 {
		return nil
	}

	byTime := sortedBy(frontier, func(a, b pareto.Scored) bool {
		return a.Objectives.TimeMinutes < b.Objectives.TimeMinutes
	})
	byCost := sortedBy(frontier, func(a, b pareto.Scored) bool {
		return a.Objectives.Cost < b.Objectives.Cost
	})
	byTransfers := sortedBy(frontier, func(a, b pareto.Scored) bool {
		return a.Objectives.Transfers < b.Objectives.Transfers
	})
	bySafetyDesc := sortedBy(frontier, func(a, b pareto.Scored) bool {
		return a.Objectives.SafetyScore > b.Objectives.SafetyScore
	})
	multimodal := filterAndKeepOrder(byTime, func(s pareto.Scored) bool {
		return s.Type == models.RouteTrainFlight
	})

	selected := make(map[string]*entry)
	priority := 1000

	add := func(s pareto.Scored, category string) bool {
		fp := s.Path.Fingerprint()
		if _, ok := selected[fp]; ok {
			return false
		}
		selected[fp] = &entry{scored: s, category: category, priority: priority}
		priority--
		return true
	}

	// Step 1: seed the five must-have categories.
	if len(byTime) > 0 {
		add(byTime[0], CategoryFastest)
	}
	if len(byCost) > 0 {
		add(byCost[0], CategoryCheapest)
	}
	if len(byTransfers) > 0 {
		add(byTransfers[0], CategoryMostDirect)
	}
	if len(bySafetyDesc) > 0 {
		add(bySafetyDesc[0], CategorySafest)
	}
	if len(multimodal) > 0 {
		add(multimodal[0], CategoryBestMultimodal)
	}

	// Step 2: balanced-score ranking.
	byBalanced := sortedByBalancedDesc(frontier)

	// Step 3: round-robin fill across the five sorted views.
	type view struct {
		name  string
		items []pareto.Scored
		idx   int
	}
	views := []*view{
		{name: "time", items: byTime},
		{name: "cost", items: byCost},
		{name: "transfers", items: byTransfers},
		{name: "balanced", items: byBalanced},
		{name: "multimodal", items: multimodal},
	}

	for len(selected) < MaxFinal {
		anyLeft := false
		for _, v := range views {
			if len(selected) >= MaxFinal {
				break
			}
			if v.idx >= len(v.items) {
				continue
			}
			anyLeft = true
			candidate := v.items[v.idx]
			v.idx++

			ok := false
			switch v.name {
			case "time":
				ok = add(candidate, CategoryFast)
			case "cost":
				ok = add(candidate, CategoryCheap)
			case "balanced":
				ok = add(candidate, CategoryBalanced)
			case "multimodal":
				if candidate.Type == models.RouteTrainFlight {
					ok = add(candidate, CategoryMultimodal)
				}
			}
			if !ok {
				add(candidate, CategoryOptimalAlternative)
			}
		}
		if !anyLeft {
			break
		}
	}

	// Step 4: fill remaining slots from the balanced-score ranking.
	for _, s := range byBalanced {
		if len(selected) >= MaxFinal {
			break
		}
		add(s, CategoryOptimalAlternative)
	}

	entries := make([]*entry, 0, len(selected))
	for _, e := range selected {
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].scored.Objectives.TimeMinutes < entries[j].scored.Objectives.TimeMinutes
	})

	out := make([]Selected, len(entries))
	for i, e := range entries {
		out[i] = Selected{Scored: e.scored, Category: e.category}
	}
	return out
}

func sortedBy(in []pareto.Scored, less func(a, b pareto.Scored) bool) []pareto.Scored {
	out := make([]pareto.Scored, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func filterAndKeepOrder(in []pareto.Scored, keep func(pareto.Scored) bool) []pareto.Scored {
	out := make([]pareto.Scored, 0, len(in))
	for _, s := range in {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// sortedByBalancedDesc min-max normalizes each objective across the
// frontier (a +0.001 floor on the range avoids a divide-by-zero when every
// candidate ties on an axis) and ranks by the weighted composite score,
// descending: 0.25 time + 0.25 cost + 0.20 transfers + 0.15 seat
// probability + 0.15 safety.
func sortedByBalancedDesc(frontier []pareto.Scored) []pareto.Scored {
	const rangeFloor = 0.001

	minTime, maxTime := bounds(frontier, func(o models.Objectives) float64 { return o.TimeMinutes })
	minCost, maxCost := bounds(frontier, func(o models.Objectives) float64 { return o.Cost })
	minTransfers, maxTransfers := bounds(frontier, func(o models.Objectives) float64 { return float64(o.Transfers) })
	minSeat, maxSeat := bounds(frontier, func(o models.Objectives) float64 { return o.SeatProbPercent })
	minSafety, maxSafety := bounds(frontier, func(o models.Objectives) float64 { return o.SafetyScore })

	timeRange := maxTime - minTime + rangeFloor
	costRange := maxCost - minCost + rangeFloor
	transfersRange := maxTransfers - minTransfers + rangeFloor
	seatRange := maxSeat - minSeat + rangeFloor
	safetyRange := maxSafety - minSafety + rangeFloor

	score := make(map[string]float64, len(frontier))
	for _, s := range frontier {
		o := s.Objectives
		balanced := 0.25*((maxTime-o.TimeMinutes)/timeRange) +
			0.25*((maxCost-o.Cost)/costRange) +
			0.20*((maxTransfers-float64(o.Transfers))/transfersRange) +
			0.15*((o.SeatProbPercent-minSeat)/seatRange) +
			0.15*((o.SafetyScore-minSafety)/safetyRange)
		score[s.Path.Fingerprint()] = balanced
	}

	out := make([]pareto.Scored, len(frontier))
	copy(out, frontier)
	sort.SliceStable(out, func(i, j int) bool {
		return score[out[i].Path.Fingerprint()] > score[out[j].Path.Fingerprint()]
	})
	return out
}

func bounds(frontier []pareto.Scored, value func(models.Objectives) float64) (min, max float64) {
	if len(frontier) == 0 {
		return 0, 0
	}
	min, max = value(frontier[0].Objectives), value(frontier[0].Objectives)
	for _, s := range frontier[1:] {
		v := value(s.Objectives)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
