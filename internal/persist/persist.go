// Package persist writes a shaped result document to JSON and a flattened
// CSV, mirroring original_source/route_optimizer.py's save_all_routes and
// save_results.
package persist

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/passbi/routeopt/internal/shaper"
)

// SaveJSON writes the full document as pretty-printed JSON.
func SaveJSON(doc shaper.Document, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("persist: marshaling document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("persist: writing %s: %w", path, err)
	}
	log.Printf("persist: wrote %s (%d optimal, %d generated)", path, len(doc.OptimalRoutes), len(doc.AllGeneratedRoutes))
	return nil
}

var csvHeader = []string{
	"route_id", "category", "route_type", "total_time_minutes", "total_time_display",
	"total_cost_inr", "transfers", "seat_probability_percent", "safety_score",
	"total_distance_km", "steps",
}

// SaveOptimalCSV flattens the optimal-route list to a CSV, one row per
// route, matching save_results' column layout.
func SaveOptimalCSV(doc shaper.Document, path string) error {
	return saveRoutesCSV(doc.OptimalRoutes, path)
}

// SaveAllRoutesCSV flattens the full generated-route list to a CSV,
// matching save_all_routes' column layout.
func SaveAllRoutesCSV(doc shaper.Document, path string) error {
	return saveRoutesCSV(doc.AllGeneratedRoutes, path)
}

func saveRoutesCSV(routes []shaper.RouteView, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("persist: creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("persist: writing header to %s: %w", path, err)
	}

	for _, r := range routes {
		row := []string{
			r.RouteID,
			r.Category,
			r.RouteType,
			strconv.FormatFloat(r.TotalTimeMinutes, 'f', 2, 64),
			r.TotalTimeDisplay,
			strconv.FormatFloat(r.TotalCostINR, 'f', 2, 64),
			strconv.Itoa(r.Transfers),
			strconv.FormatFloat(r.SeatProbabilityPercent, 'f', 2, 64),
			strconv.FormatFloat(r.SafetyScore, 'f', 2, 64),
			strconv.FormatFloat(r.TotalDistanceKM, 'f', 2, 64),
			formatSteps(r.Steps),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("persist: writing row to %s: %w", path, err)
		}
	}

	log.Printf("persist: wrote %d rows to %s", len(routes), path)
	return nil
}

func formatSteps(steps []shaper.StepView) string {
	out := ""
	for i, s := range steps {
		if i > 0 {
			out += " -> "
		}
		out += s.From + "-" + s.To
	}
	return out
}
