package persist

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passbi/routeopt/internal/shaper"
)

func sampleDoc() shaper.Document {
	route := shaper.RouteView{
		RouteID:                "OPT_ROUTE_01",
		Category:               "FASTEST",
		RouteType:              "Train Only",
		Steps:                  []shaper.StepView{{From: "NDLS", To: "BCT"}},
		TotalTimeMinutes:       120,
		TotalTimeDisplay:       "2h 0m",
		TotalCostINR:           500,
		Transfers:              0,
		SeatProbabilityPercent: 80,
		SafetyScore:            100,
		TotalDistanceKM:        1400,
	}
	return shaper.Document{
		Metadata:           shaper.Metadata{Origin: "NDLS", Destination: "BCT"},
		OptimalRoutes:      []shaper.RouteView{route},
		AllGeneratedRoutes: []shaper.RouteView{route},
	}
}

func TestSaveJSONRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	doc := sampleDoc()

	require.NoError(t, SaveJSON(doc, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got shaper.Document
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, doc.Metadata.Origin, got.Metadata.Origin)
	assert.Len(t, got.OptimalRoutes, 1)
}

func TestSaveOptimalCSVWritesHeaderAndRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	doc := sampleDoc()

	require.NoError(t, SaveOptimalCSV(doc, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "OPT_ROUTE_01", rows[1][0])
}

func TestFormatStepsJoinsLegs(t *testing.T) {
	steps := []shaper.StepView{{From: "NDLS", To: "KOTA"}, {From: "KOTA", To: "BCT"}}
	assert.Equal(t, "NDLS-KOTA -> KOTA-BCT", formatSteps(steps))
}
