// Package enumerate generates every candidate itinerary between two
// locations under a transfer budget: direct edges, single-transfer via a
// junction, and a bounded-transfer breadth-first search.
package enumerate

import (
	"time"

	"github.com/passbi/routeopt/internal/clock"
	"github.com/passbi/routeopt/internal/graph"
	"github.com/passbi/routeopt/internal/models"
	"github.com/passbi/routeopt/internal/segment"
)

// Limits bounds the enumerator's search. Values match the original
// hard-coded constants by default; the config package exposes them as
// overridable settings (see SPEC_FULL.md §5 on the 8h/5000km caps).
type Limits struct {
	MinTransferWaitH      float64
	MaxTransferWaitH      float64
	MaxDistanceKM         float64
	MaxEmittedPerStrategy int
}

// DefaultLimits returns the standard hard-coded enumeration limits.
func DefaultLimits() Limits {
	return Limits{
		MinTransferWaitH:      0.5,
		MaxTransferWaitH:      8.0,
		MaxDistanceKM:         5000.0,
		MaxEmittedPerStrategy: 100,
	}
}

// Enumerator walks a single graph+store pair for one request's lifetime.
type Enumerator struct {
	graph      *graph.Graph
	store      *segment.Store
	travelDate time.Time
	limits     Limits
}

// New builds an Enumerator. travelDate anchors every transfer-wait
// calculation.
func New(g *graph.Graph, s *segment.Store, travelDate time.Time, limits Limits) *Enumerator {
	return &Enumerator{graph: g, store: s, travelDate: travelDate, limits: limits}
}

// Enumerate runs the three strategies in order and returns the deduplicated
// union, first-occurrence order preserved. maxTransfers bounds every strategy: 0 yields direct routes
// only, 1 adds single-transfer routes, >=2 additionally runs the
// bounded-transfer BFS (matching the source's strategy gating).
func (e *Enumerator) Enumerate(source, dest models.LocationID, maxTransfers int) []models.Path {
	var all []models.Path

	all = append(all, e.direct(source, dest)...)

	if maxTransfers >= 1 {
		all = append(all, e.singleTransfer(source, dest)...)
	}
	if maxTransfers >= 2 {
		all = append(all, e.boundedBFS(source, dest, maxTransfers)...)
	}

	return dedupe(all)
}

func (e *Enumerator) newStep(fromID models.LocationID, edge models.Edge, wait float64) models.Step {
	return models.Step{
		From:          e.store.LocationCode(fromID),
		To:            e.store.LocationCode(edge.ToID),
		SegID:         edge.SegID,
		Departure:     edge.Departure,
		Arrival:       edge.Arrival,
		Distance:      edge.Distance,
		DurationHours: edge.DurationHours,
		Cost:          edge.Cost,
		SeatAvailable: edge.SeatAvailable,
		WaitBeforeH:   wait,
	}
}

// direct returns every single-edge path from source straight to dest.
func (e *Enumerator) direct(source, dest models.LocationID) []models.Path {
	var out []models.Path
	for _, edge := range e.graph.Outgoing(source) {
		if edge.ToID != dest {
			continue
		}
		out = append(out, models.Path{e.newStep(source, edge, 0)})
	}
	return out
}

// singleTransfer finds two-hop paths through exactly one junction. Each
// distinct junction is considered via only the first outgoing edge from
// source that reaches it (junction dedup on first arrival).
func (e *Enumerator) singleTransfer(source, dest models.LocationID) []models.Path {
	var out []models.Path
	visitedJunctions := make(map[models.LocationID]bool)

	for _, first := range e.graph.Outgoing(source) {
		junction := first.ToID
		if junction == dest || visitedJunctions[junction] {
			continue
		}
		visitedJunctions[junction] = true

		for _, second := range e.graph.Outgoing(junction) {
			if second.ToID != dest || second.SegID == first.SegID {
				continue
			}
			wait := clock.Wait(first.Arrival, second.Departure, e.travelDate)
			if wait < e.limits.MinTransferWaitH || wait > e.limits.MaxTransferWaitH {
				continue
			}
			step1 := e.newStep(source, first, 0)
			step2 := e.newStep(junction, second, wait)
			out = append(out, models.Path{step1, step2})
			if len(out) >= e.limits.MaxEmittedPerStrategy {
				return out
			}
		}
	}
	return out
}

// bfsState is one node in the search arena. A step is only populated for
// non-root states; reconstruct walks parent links instead of cloning the
// path into every queued state.
type bfsState struct {
	locID     models.LocationID
	parent    int32
	hasStep   bool
	step      models.Step
	transfers int
	distance  float64
}

type visitedKey struct {
	loc       models.LocationID
	transfers int
}

// boundedBFS explores paths with up to maxTransfers transfers, pruning on transfer count
// and cumulative distance, and caps emitted paths at
// limits.MaxEmittedPerStrategy.
func (e *Enumerator) boundedBFS(source, dest models.LocationID, maxTransfers int) []models.Path {
	var out []models.Path

	arena := []bfsState{{locID: source, parent: -1}}
	queue := []int32{0}
	visited := make(map[visitedKey]bool)

	for len(queue) > 0 && len(out) < e.limits.MaxEmittedPerStrategy {
		idx := queue[0]
		queue = queue[1:]
		cur := arena[idx]

		if cur.locID == dest && cur.hasStep {
			out = append(out, e.reconstruct(arena, idx))
			continue
		}

		if cur.transfers >= maxTransfers || cur.distance > e.limits.MaxDistanceKM {
			continue
		}

		key := visitedKey{loc: cur.locID, transfers: cur.transfers}
		if visited[key] {
			continue
		}
		visited[key] = true

		for _, edge := range e.graph.Outgoing(cur.locID) {
			wait := 0.0
			transfers := cur.transfers
			if cur.hasStep && cur.step.SegID != edge.SegID {
				wait = clock.Wait(cur.step.Arrival, edge.Departure, e.travelDate)
				if wait < e.limits.MinTransferWaitH || wait > e.limits.MaxTransferWaitH {
					continue
				}
				transfers++
			}

			step := e.newStep(cur.locID, edge, wait)
			arena = append(arena, bfsState{
				locID:     edge.ToID,
				parent:    idx,
				hasStep:   true,
				step:      step,
				transfers: transfers,
				distance:  cur.distance + edge.Distance,
			})
			queue = append(queue, int32(len(arena)-1))
		}
	}

	return out
}

func (e *Enumerator) reconstruct(arena []bfsState, idx int32) models.Path {
	var steps []models.Step
	for idx != -1 {
		st := arena[idx]
		if !st.hasStep {
			break
		}
		steps = append(steps, st.step)
		idx = st.parent
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return models.Path(steps)
}

// dedupe removes repeated fingerprints, keeping first occurrence order.
func dedupe(paths []models.Path) []models.Path {
	seen := make(map[string]bool, len(paths))
	out := make([]models.Path, 0, len(paths))
	for _, p := range paths {
		fp := p.Fingerprint()
		if seen[fp] {
			continue
		}
		seen[fp] = true
		out = append(out, p)
	}
	return out
}
