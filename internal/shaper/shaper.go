// Package shaper renders the optimizer's internal Scored/Selected types
// into the external result document: metadata, the selected optimal
// routes, and the full generated-route list ("Result
// shaper").
package shaper

import (
	"fmt"
	"math"
	"time"

	"github.com/passbi/routeopt/internal/objective"
	"github.com/passbi/routeopt/internal/pareto"
	"github.com/passbi/routeopt/internal/segment"
	"github.com/passbi/routeopt/internal/selector"
)

// StepView is one leg of a route as rendered in the result document.
type StepView struct {
	From            string  `json:"from"`
	To              string  `json:"to"`
	Mode            string  `json:"mode"`
	Name            string  `json:"name"`
	Departure       string  `json:"departure_time"`
	Arrival         string  `json:"arrival_time"`
	DurationHours   float64 `json:"duration_hours"`
	CostINR         float64 `json:"cost_inr"`
	DistanceKM      float64 `json:"distance_km"`
	SeatAvailable   bool    `json:"seat_available"`
	WaitBeforeHours float64 `json:"wait_before_hours"`
}

// RouteView is one route as rendered in the result document.
type RouteView struct {
	RouteID                string     `json:"route_id"`
	Category               string     `json:"category,omitempty"`
	RouteType              string     `json:"route_type"`
	Steps                  []StepView `json:"steps"`
	TotalTimeMinutes       float64    `json:"total_time_minutes"`
	TotalTimeDisplay       string     `json:"total_time_display"`
	TotalCostINR           float64    `json:"total_cost_inr"`
	Transfers              int        `json:"transfers"`
	SeatProbabilityPercent float64    `json:"seat_probability_percent"`
	SafetyScore            float64    `json:"safety_score"`
	TotalDistanceKM        float64    `json:"total_distance_km"`
}

// Metadata describes the request the document answers.
type Metadata struct {
	Origin               string `json:"origin"`
	Destination          string `json:"destination"`
	TravelDate           string `json:"travel_date"`
	MaxTransfers         int    `json:"max_transfers"`
	TotalRoutesGenerated int    `json:"total_routes_generated"`
	ParetoFrontSize      int    `json:"pareto_front_size"`
	TotalOptimalRoutes   int    `json:"total_optimal_routes"`
}

// Document is the full external result shape ("Result
// document").
type Document struct {
	Metadata           Metadata    `json:"metadata"`
	OptimalRoutes      []RouteView `json:"optimal_routes"`
	AllGeneratedRoutes []RouteView `json:"all_generated_routes"`
}

// Shape assembles the final document. allCandidates is every enumerated,
// annotated route (pre-Pareto-filter); frontierSize is the size of the
// Pareto-filtered set allCandidates was reduced to; selected is the
// selector's output.
func Shape(
	origin, destination string,
	travelDate time.Time,
	maxTransfers int,
	allCandidates []pareto.Scored,
	frontierSize int,
	selected []selector.Selected,
	store *segment.Store,
) Document {
	optimal := make([]RouteView, 0, len(selected))
	for i, s := range selected {
		rv := buildRouteView(s.Scored, store)
		rv.RouteID = fmt.Sprintf("OPT_ROUTE_%02d", i+1)
		rv.Category = s.Category
		optimal = append(optimal, rv)
	}

	all := make([]RouteView, 0, len(allCandidates))
	for i, c := range allCandidates {
		rv := buildRouteView(c, store)
		rv.RouteID = fmt.Sprintf("ALL_ROUTE_%03d", i+1)
		rv.Category = string(c.Type)
		all = append(all, rv)
	}

	return Document{
		Metadata: Metadata{
			Origin:               origin,
			Destination:          destination,
			TravelDate:           travelDate.Format("2006-01-02"),
			MaxTransfers:         maxTransfers,
			TotalRoutesGenerated: len(allCandidates),
			ParetoFrontSize:      frontierSize,
			TotalOptimalRoutes:   len(selected),
		},
		OptimalRoutes:      optimal,
		AllGeneratedRoutes: all,
	}
}

func buildRouteView(c pareto.Scored, store *segment.Store) RouteView {
	steps := make([]StepView, 0, len(c.Path))
	for _, step := range c.Path {
		meta := store.SegmentMeta(step.SegID)
		steps = append(steps, StepView{
			From:            step.From,
			To:              step.To,
			Mode:            string(meta.Type),
			Name:            meta.DisplayName,
			Departure:       step.Departure,
			Arrival:         step.Arrival,
			DurationHours:   round2(step.DurationHours),
			CostINR:         round2(step.Cost),
			DistanceKM:      round2(step.Distance),
			SeatAvailable:   step.SeatAvailable == 1,
			WaitBeforeHours: round2(step.WaitBeforeH),
		})
	}

	return RouteView{
		RouteType:              string(c.Type),
		Steps:                  steps,
		TotalTimeMinutes:       round2(c.Objectives.TimeMinutes),
		TotalTimeDisplay:       objective.FormatDuration(c.Objectives.TimeMinutes),
		TotalCostINR:           round2(c.Objectives.Cost),
		Transfers:              c.Objectives.Transfers,
		SeatProbabilityPercent: round2(c.Objectives.SeatProbPercent),
		SafetyScore:            round2(c.Objectives.SafetyScore),
		TotalDistanceKM:        round2(c.Objectives.DistanceKM),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
