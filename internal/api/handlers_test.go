package api

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passbi/routeopt/internal/enumerate"
	"github.com/passbi/routeopt/internal/models"
	"github.com/passbi/routeopt/internal/optimizer"
)

func floatPtr(f float64) *float64 { return &f }

func testServer() *Server {
	segments := []models.Segment{
		{Type: models.SegmentTrain, UniqueID: "S1", Origin: "NDLS", Destination: "BCT",
			Departure: "08:00:00", Arrival: "20:00:00", DurationMinutes: floatPtr(720), CostINR: floatPtr(1500)},
	}
	return &Server{
		Optimizer: optimizer.New(segments, enumerate.DefaultLimits(), 42),
	}
}

func TestRouteSearchReturnsShapedDocument(t *testing.T) {
	app := fiber.New()
	srv := testServer()
	app.Get("/v2/route-search", srv.RouteSearch)

	req := httptest.NewRequest("GET", "/v2/route-search?origin=NDLS&destination=BCT&max_transfers=0&travel_date=2026-07-30", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "optimal_routes")
	assert.Contains(t, string(body), "NDLS")
}

func TestRouteSearchRejectsMissingParams(t *testing.T) {
	app := fiber.New()
	srv := testServer()
	app.Get("/v2/route-search", srv.RouteSearch)

	req := httptest.NewRequest("GET", "/v2/route-search?origin=NDLS", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRouteSearchUnknownLocationReturns404(t *testing.T) {
	app := fiber.New()
	srv := testServer()
	app.Get("/v2/route-search", srv.RouteSearch)

	req := httptest.NewRequest("GET", "/v2/route-search?origin=NDLS&destination=XXXX", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHealthReportsHealthyWithNoDependencies(t *testing.T) {
	app := fiber.New()
	srv := testServer()
	app.Get("/health", srv.Health)

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
