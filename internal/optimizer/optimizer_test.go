package optimizer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passbi/routeopt/internal/apierr"
	"github.com/passbi/routeopt/internal/enumerate"
	"github.com/passbi/routeopt/internal/models"
	"github.com/passbi/routeopt/internal/optimizer"
	"github.com/passbi/routeopt/internal/selector"
)

func floatPtr(f float64) *float64 { return &f }

func mustParse(t *testing.T, origin, dest string, maxTransfers *int, date string) optimizer.Request {
	t.Helper()
	req, err := optimizer.ParseRequest(origin, dest, maxTransfers, date, time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return req
}

func intPtr(i int) *int { return &i }

// Direct route, single leg, no transfer.
func TestScenarioDirectRoute(t *testing.T) {
	segments := []models.Segment{
		{Type: models.SegmentTrain, UniqueID: "S1", Origin: "A", Destination: "B",
			Departure: "08:00:00", Arrival: "09:00:00", DurationMinutes: floatPtr(60), CostINR: floatPtr(500)},
	}
	opt := optimizer.New(segments, enumerate.DefaultLimits(), 42)
	req := mustParse(t, "A", "B", intPtr(0), "2025-01-01")

	doc, err := opt.Run(req)
	require.NoError(t, err)
	require.Len(t, doc.OptimalRoutes, 1)

	r := doc.OptimalRoutes[0]
	assert.Equal(t, 60.0, r.TotalTimeMinutes)
	assert.Equal(t, 500.0, r.TotalCostINR)
	assert.Equal(t, 0, r.Transfers)
	assert.Equal(t, 100.0, r.SafetyScore)
}

// Reverse direction with no matching segment yields an empty result.
func TestScenarioReverseDirectionEmptyResult(t *testing.T) {
	segments := []models.Segment{
		{Type: models.SegmentTrain, UniqueID: "S1", Origin: "A", Destination: "B",
			Departure: "08:00:00", Arrival: "09:00:00", DurationMinutes: floatPtr(60), CostINR: floatPtr(500)},
	}
	opt := optimizer.New(segments, enumerate.DefaultLimits(), 42)
	req := mustParse(t, "B", "A", intPtr(0), "2025-01-01")

	_, err := opt.Run(req)
	require.Error(t, err)
	assert.Equal(t, "No routes found!", err.Error())
	assert.True(t, apierr.IsKind(err, apierr.KindEmptyResult))
}

// Single transfer: wait time accrues between arrival and next departure.
func TestScenarioSingleTransferWaitAndTime(t *testing.T) {
	segments := []models.Segment{
		{Type: models.SegmentTrain, UniqueID: "S1", Origin: "A", Destination: "C",
			Departure: "10:00:00", Arrival: "11:00:00", DurationMinutes: floatPtr(60), CostINR: floatPtr(200)},
		{Type: models.SegmentTrain, UniqueID: "S2", Origin: "C", Destination: "B",
			Departure: "11:30:00", Arrival: "12:30:00", DurationMinutes: floatPtr(60), CostINR: floatPtr(300)},
	}
	opt := optimizer.New(segments, enumerate.DefaultLimits(), 42)
	req := mustParse(t, "A", "B", intPtr(1), "2025-01-01")

	doc, err := opt.Run(req)
	require.NoError(t, err)
	require.Len(t, doc.OptimalRoutes, 1)

	r := doc.OptimalRoutes[0]
	assert.InDelta(t, 150.0, r.TotalTimeMinutes, 0.01)
	assert.Equal(t, 1, r.Transfers)
	assert.Equal(t, 90.0, r.SafetyScore)
	require.Len(t, r.Steps, 2)
	assert.InDelta(t, 0.5, r.Steps[1].WaitBeforeHours, 0.01)
}

// Transfer rolls past midnight and exceeds the 8h cap, so no route is
// produced.
func TestScenarioTransferExceedsCapAfterRollover(t *testing.T) {
	segments := []models.Segment{
		{Type: models.SegmentTrain, UniqueID: "S1", Origin: "A", Destination: "C",
			Departure: "10:00:00", Arrival: "11:00:00", DurationMinutes: floatPtr(60), CostINR: floatPtr(200)},
		{Type: models.SegmentTrain, UniqueID: "S2", Origin: "C", Destination: "B",
			Departure: "10:40:00", Arrival: "12:20:00", DurationMinutes: floatPtr(60), CostINR: floatPtr(300)},
	}
	opt := optimizer.New(segments, enumerate.DefaultLimits(), 42)
	req := mustParse(t, "A", "B", intPtr(1), "2025-01-01")

	_, err := opt.Run(req)
	require.Error(t, err)
	assert.True(t, apierr.IsKind(err, apierr.KindEmptyResult))
}

// Multimodal route gets BEST MULTIMODAL tag; a faster, pricier direct
// flight takes FASTEST, since a route already seeded under one category is
// not seeded again under another.
func TestScenarioMultimodalTagging(t *testing.T) {
	segments := []models.Segment{
		{Type: models.SegmentTrain, UniqueID: "S1", Origin: "A", Destination: "B",
			Departure: "08:00:00", Arrival: "20:00:00", DurationMinutes: floatPtr(720), CostINR: floatPtr(800)},
		{Type: models.SegmentFlight, UniqueID: "F2", Origin: "A", Destination: "B",
			Departure: "08:00:00", Arrival: "10:00:00", DurationMinutes: floatPtr(120), CostINR: floatPtr(9000)},
		{Type: models.SegmentTrain, UniqueID: "S2", Origin: "A", Destination: "C",
			Departure: "08:00:00", Arrival: "09:00:00", DurationMinutes: floatPtr(60), CostINR: floatPtr(200)},
		{Type: models.SegmentFlight, UniqueID: "F1", Origin: "C", Destination: "B",
			Departure: "10:00:00", Arrival: "11:30:00", DurationMinutes: floatPtr(90), CostINR: floatPtr(3000)},
	}
	opt := optimizer.New(segments, enumerate.DefaultLimits(), 42)
	req := mustParse(t, "A", "B", intPtr(2), "2025-01-01")

	doc, err := opt.Run(req)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(doc.OptimalRoutes), 2)

	var sawMultimodal, sawFastest bool
	for _, r := range doc.OptimalRoutes {
		if r.Category == selector.CategoryBestMultimodal {
			sawMultimodal = true
			assert.Equal(t, "Train-Flight", r.RouteType)
		}
		if r.Category == selector.CategoryFastest {
			sawFastest = true
		}
	}
	assert.True(t, sawMultimodal)
	assert.True(t, sawFastest)
}

func TestParseRequestValidation(t *testing.T) {
	now := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)

	_, err := optimizer.ParseRequest("", "BLR", nil, "", now)
	require.Error(t, err)
	assert.Equal(t, "Origin and destination are required.", err.Error())

	_, err = optimizer.ParseRequest("DEL", "DEL", nil, "", now)
	require.Error(t, err)
	assert.Equal(t, "Origin and destination must be different.", err.Error())

	_, err = optimizer.ParseRequest("DEL", "BLR", nil, "not-a-date", now)
	require.Error(t, err)
	assert.Equal(t, "Invalid travel date format. Expected YYYY-MM-DD.", err.Error())

	bad := 5
	_, err = optimizer.ParseRequest("DEL", "BLR", &bad, "", now)
	require.Error(t, err)

	req, err := optimizer.ParseRequest(" del ", " blr ", nil, "", now)
	require.NoError(t, err)
	assert.Equal(t, "DEL", req.Origin)
	assert.Equal(t, "BLR", req.Destination)
	assert.Equal(t, 3, req.MaxTransfers)
}

func TestUnknownLocation(t *testing.T) {
	opt := optimizer.New(nil, enumerate.DefaultLimits(), 42)
	req := mustParse(t, "ZZZ", "YYY", nil, "")
	_, err := opt.Run(req)
	require.Error(t, err)
	assert.Equal(t, "Station 'ZZZ' not found.", err.Error())
}
