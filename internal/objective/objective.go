// Package objective computes the five optimization objectives (plus total
// distance) for a candidate Path, and formats durations for display
// (the objective calculator).
package objective

import (
	"fmt"

	"github.com/passbi/routeopt/internal/models"
	"github.com/passbi/routeopt/internal/segment"
)

// MinSafetyScore is the floor safety never drops below, regardless of
// transfer count.
const MinSafetyScore = 40.0

// Calculate derives a Path's objective vector: total time (minutes) is the
// sum of every leg's ride duration plus its wait-before, cost and distance
// sum across legs, transfers is len(path)-1, seat probability is the mean
// of each leg's seat-available bit, and safety decays 10 points per
// transfer with a floor of 40.
func Calculate(p models.Path) models.Objectives {
	var timeHours, cost, distance float64
	seatSum := 0

	for _, step := range p {
		timeHours += step.DurationHours + step.WaitBeforeH
		cost += step.Cost
		distance += step.Distance
		seatSum += step.SeatAvailable
	}

	transfers := len(p) - 1
	if transfers < 0 {
		transfers = 0
	}

	seatProb := 0.0
	if len(p) > 0 {
		seatProb = 100 * float64(seatSum) / float64(len(p))
	}

	safety := 100.0 - 10.0*float64(transfers)
	if safety < MinSafetyScore {
		safety = MinSafetyScore
	}

	return models.Objectives{
		TimeMinutes:     timeHours * 60,
		Cost:            cost,
		Transfers:       transfers,
		SeatProbPercent: seatProb,
		SafetyScore:     safety,
		DistanceKM:      distance,
	}
}

// RouteType classifies a Path by the transport types its steps use.
func RouteType(p models.Path, store *segment.Store) models.RouteType {
	hasTrain, hasFlight := false, false
	for _, step := range p {
		switch store.SegmentMeta(step.SegID).Type {
		case models.SegmentTrain:
			hasTrain = true
		case models.SegmentFlight:
			hasFlight = true
		}
	}
	switch {
	case hasTrain && hasFlight:
		return models.RouteTrainFlight
	case hasTrain:
		return models.RouteTrainOnly
	case hasFlight:
		return models.RouteFlightOnly
	default:
		return models.RouteTypeUnknown
	}
}

// FormatDuration renders a minute count as "Xh Ym", matching
// original_source's format_duration.
func FormatDuration(minutes float64) string {
	total := int(minutes)
	if total < 0 {
		total = 0
	}
	h := total / 60
	m := total % 60
	return fmt.Sprintf("%dh %dm", h, m)
}
