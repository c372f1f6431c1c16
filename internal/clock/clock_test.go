package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/passbi/routeopt/internal/clock"
)

func TestWait(t *testing.T) {
	travelDate := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		arrival   string
		departure string
		want      float64
	}{
		{"same day, ample gap", "10:00:00", "12:30:00", 2.5},
		{"back to back", "10:00:00", "10:00:00", 0},
		{"rolls to next day", "23:30:00", "01:00:00", 1.5},
		{"malformed arrival falls back", "not-a-time", "12:00:00", clock.FallbackWaitHours},
		{"malformed departure falls back", "10:00:00", "not-a-time", clock.FallbackWaitHours},
		{"both malformed falls back", "", "", clock.FallbackWaitHours},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := clock.Wait(tc.arrival, tc.departure, travelDate)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestWaitNeverNegative(t *testing.T) {
	travelDate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	got := clock.Wait("12:00:00", "12:00:00", travelDate)
	assert.GreaterOrEqual(t, got, 0.0)
}
