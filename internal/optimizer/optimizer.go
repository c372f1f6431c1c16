// Package optimizer wires the core components (segment store, graph,
// enumerator, objective calculator, Pareto filter, selector, result
// shaper) into a single-request pipeline: validate
// request → build graph → enumerate → annotate → filter → select → shape.
package optimizer

import (
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/passbi/routeopt/internal/apierr"
	"github.com/passbi/routeopt/internal/enumerate"
	"github.com/passbi/routeopt/internal/graph"
	"github.com/passbi/routeopt/internal/models"
	"github.com/passbi/routeopt/internal/objective"
	"github.com/passbi/routeopt/internal/pareto"
	"github.com/passbi/routeopt/internal/segment"
	"github.com/passbi/routeopt/internal/selector"
	"github.com/passbi/routeopt/internal/shaper"
)

const dateLayout = "2006-01-02"

// Request is a validated route-search request.
type Request struct {
	Origin       string
	Destination  string
	MaxTransfers int
	TravelDate   time.Time
}

// ParseRequest validates and normalizes raw request parameters.
// maxTransfers may be nil (defaults to 3); travelDate may be
// empty (defaults to today).
func ParseRequest(origin, destination string, maxTransfers *int, travelDate string, now time.Time) (Request, error) {
	origin = strings.ToUpper(strings.TrimSpace(origin))
	destination = strings.ToUpper(strings.TrimSpace(destination))

	if origin == "" || destination == "" {
		return Request{}, apierr.MissingOriginDestination()
	}
	if origin == destination {
		return Request{}, apierr.SameOriginDestination()
	}

	mt := 3
	if maxTransfers != nil {
		mt = *maxTransfers
	}
	if mt < 0 || mt > 3 {
		return Request{}, apierr.InvalidMaxTransfers()
	}

	date := now
	if travelDate != "" {
		parsed, err := time.Parse(dateLayout, travelDate)
		if err != nil {
			return Request{}, apierr.InvalidTravelDate()
		}
		date = parsed
	}

	return Request{
		Origin:       origin,
		Destination:  destination,
		MaxTransfers: mt,
		TravelDate:   date,
	}, nil
}

// Optimizer holds the immutable inputs for one dataset: the unified
// segment list, search limits, and the seat-availability RNG seed. A new
// graph and segment store are built per Run call — no state persists
// across requests.
type Optimizer struct {
	segments []models.Segment
	limits   enumerate.Limits
	rngSeed  int64
}

// New builds an Optimizer over a unified segment list.
func New(segments []models.Segment, limits enumerate.Limits, rngSeed int64) *Optimizer {
	return &Optimizer{segments: segments, limits: limits, rngSeed: rngSeed}
}

// Run executes the full pipeline for a validated Request and returns the
// shaped result document, or a terminal *apierr.Error.
func (o *Optimizer) Run(req Request) (shaper.Document, error) {
	store := segment.NewStore(o.segments, rand.New(rand.NewSource(o.rngSeed)))
	g := graph.Build(store.NumLocations(), store.Resolved())

	originID, ok := store.LocationID(req.Origin)
	if !ok {
		return shaper.Document{}, apierr.UnknownLocation(req.Origin)
	}
	destID, ok := store.LocationID(req.Destination)
	if !ok {
		return shaper.Document{}, apierr.UnknownLocation(req.Destination)
	}

	en := enumerate.New(g, store, req.TravelDate, o.limits)
	paths := en.Enumerate(originID, destID, req.MaxTransfers)
	if len(paths) == 0 {
		return shaper.Document{}, apierr.EmptyResult()
	}

	candidates := make([]pareto.Scored, 0, len(paths))
	for _, p := range paths {
		candidates = append(candidates, pareto.Scored{
			Path:       p,
			Objectives: objective.Calculate(p),
			Type:       objective.RouteType(p, store),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Objectives.TimeMinutes < candidates[j].Objectives.TimeMinutes
	})

	frontier := pareto.Frontier(candidates)
	selected := selector.Select(frontier)

	doc := shaper.Shape(req.Origin, req.Destination, req.TravelDate, req.MaxTransfers, candidates, len(frontier), selected, store)
	return doc, nil
}
