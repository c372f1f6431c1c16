// Command cli is the interactive route-search prompt, grounded on
// original_source/route_optimizer.py's main(): same banner copy, same
// origin/destination/max-transfers prompts, same quick-comparison table
// layout. Cost is formatted via golang.org/x/text/currency +
// golang.org/x/text/message (grounded on gilby125-google-flights-api's
// currency.ParseISO usage for fare display) instead of the source's raw
// ₹ string formatting.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/passbi/routeopt/internal/enumerate"
	"github.com/passbi/routeopt/internal/ingest"
	"github.com/passbi/routeopt/internal/optimizer"
	"github.com/passbi/routeopt/internal/persist"
	"github.com/passbi/routeopt/internal/shaper"
)

var inr = currency.MustParseISO("INR")

func main() {
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println(" PARETO-OPTIMAL TRAIN ROUTE OPTIMIZER")
	fmt.Println(" Multi-Objective Optimization: Time | Cost | Transfers | Comfort | Safety")
	fmt.Println(strings.Repeat("=", 80))

	reader := bufio.NewReader(os.Stdin)

	origin := prompt(reader, "Enter origin station/airport code (e.g., JP, DEL): ")
	destination := prompt(reader, "Enter destination station/airport code (e.g., KOTA, BLR): ")
	maxTransfers := promptMaxTransfers(reader)

	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("STARTING PARETO OPTIMIZATION PIPELINE")
	fmt.Println(strings.Repeat("=", 80))

	segmentsPath := "unified_routes.json"
	if len(os.Args) > 1 {
		segmentsPath = os.Args[1]
	}

	segments, err := ingest.LoadSegments(segmentsPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	opt := optimizer.New(segments, enumerate.DefaultLimits(), 42)

	req, err := optimizer.ParseRequest(origin, destination, &maxTransfers, "", time.Now())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	doc, err := opt.Run(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("ALL OPTIMAL ROUTES - COMPARE & CHOOSE YOUR PREFERENCE")
	fmt.Println(strings.Repeat("=", 80))

	printComparisonTable(doc.OptimalRoutes)

	jsonPath := fmt.Sprintf("%s_to_%s_results.json", origin, destination)
	allCSVPath := fmt.Sprintf("%s_to_%s_all_routes.csv", origin, destination)
	optimalCSVPath := fmt.Sprintf("%s_to_%s_optimal_routes.csv", origin, destination)

	if err := persist.SaveJSON(doc, jsonPath); err != nil {
		fmt.Printf("Warning: %v\n", err)
	}
	if err := persist.SaveAllRoutesCSV(doc, allCSVPath); err != nil {
		fmt.Printf("Warning: %v\n", err)
	}
	if err := persist.SaveOptimalCSV(doc, optimalCSVPath); err != nil {
		fmt.Printf("Warning: %v\n", err)
	}

	fmt.Println("\n💾 Results also saved to JSON and CSV files.")
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.ToUpper(strings.TrimSpace(line))
}

func promptMaxTransfers(reader *bufio.Reader) int {
	for {
		fmt.Print("Maximum transfers allowed (0-3): ")
		line, _ := reader.ReadString('\n')
		v, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Println("Invalid input")
			continue
		}
		if v < 0 || v > 3 {
			fmt.Println("Please enter 0-3")
			continue
		}
		return v
	}
}

func printComparisonTable(routes []shaper.RouteView) {
	p := message.NewPrinter(language.English)

	fmt.Println("\n📊 QUICK COMPARISON TABLE")
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("%-8s %-20s %-10s %-10s %-9s %-8s %-7s\n",
		"Route", "Category", "Time", "Cost", "Transfer", "Seats", "Safety")
	fmt.Println(strings.Repeat("-", 80))

	for _, r := range routes {
		fmt.Printf("%-8s %-20s %-10s %-10s %-9d %-7.1f%% %-6.0f/100\n",
			r.RouteID, r.Category, r.TotalTimeDisplay, formatCost(p, r.TotalCostINR),
			r.Transfers, r.SeatProbabilityPercent, r.SafetyScore)
	}

	fmt.Println(strings.Repeat("-", 80))
}

func formatCost(p *message.Printer, amount float64) string {
	return p.Sprintf("%v", currency.Symbol(inr.Amount(amount)))
}
