// Package models holds the shared data shapes that flow through the route
// optimizer: segment input records, the graph's internal edge shape, path
// steps, and the five-objective vector attached to every candidate route.
package models

// SegmentType distinguishes the two transport modes the optimizer reasons
// about.
type SegmentType string

const (
	SegmentTrain  SegmentType = "train"
	SegmentFlight SegmentType = "flight"
)

// Segment is a single transport service edge as it arrives from the unified
// segment list. It is the boundary shape: string
// location codes, clock-of-day strings, optional numeric fields.
type Segment struct {
	Type            SegmentType `json:"type"`
	UniqueID        string      `json:"unique_id"`
	Origin          string      `json:"origin"`
	Destination     string      `json:"destination"`
	Departure       string      `json:"departure_time"`
	Arrival         string      `json:"arrival_time"`
	DurationMinutes *float64    `json:"duration_minutes"`
	CostINR         *float64    `json:"cost_inr"`
	DistanceKM      *float64    `json:"distance_km"`
	TrainName       string      `json:"train_name,omitempty"`
	Airline         string      `json:"airline,omitempty"`

	// SeatAvailable is not part of the input record. segment.Store does not
	// set it: the store draws the seat bit once at load time
	// (Bernoulli(0.8)) and keeps it on each derived Edge instead.
	SeatAvailable int `json:"-"`
}

// DurationHours returns the segment's duration in hours, treating a missing
// value as zero.
func (s Segment) DurationHours() float64 {
	if s.DurationMinutes == nil {
		return 0
	}
	return *s.DurationMinutes / 60.0
}

// Cost returns the segment's cost, treating a missing value as zero.
func (s Segment) Cost() float64 {
	if s.CostINR == nil {
		return 0
	}
	return *s.CostINR
}

// Distance returns the segment's distance in km, treating a missing value
// as zero.
func (s Segment) Distance() float64 {
	if s.DistanceKM == nil {
		return 0
	}
	return *s.DistanceKM
}

// DisplayName returns the human-facing name for a segment: the train name
// for trains, the airline for flights.
func (s Segment) DisplayName() string {
	if s.Type == SegmentTrain {
		if s.TrainName != "" {
			return s.TrainName
		}
		return "N/A"
	}
	if s.Airline != "" {
		return s.Airline
	}
	return "N/A"
}

// LocationID is a dense integer id assigned to a location code on first
// sight. Ids are stable only within a single segment.Store instance.
type LocationID int32

// SegmentID indexes into a segment.Store's segment metadata table. It is
// distinct from a segment's string UniqueID: many edges can share a
// SegmentID when a service is listed more than once in the input.
type SegmentID int32

// Edge is the store's internal, integer-keyed view of a Segment, derived
// once at graph-build time.
type Edge struct {
	ToID          LocationID
	SegID         SegmentID
	Departure     string
	Arrival       string
	Distance      float64
	DurationHours float64
	Cost          float64
	SeatAvailable int
}

// SegmentMeta is the per-SegmentID display metadata, written once even if
// several edges share a SegmentID.
type SegmentMeta struct {
	Type        SegmentType
	DisplayName string
}

// Step is one leg of a Path: the underlying edge traversed, plus the wait
// incurred before boarding it.
type Step struct {
	From          string
	To            string
	SegID         SegmentID
	Departure     string
	Arrival       string
	Distance      float64
	DurationHours float64
	Cost          float64
	SeatAvailable int
	WaitBeforeH   float64
}

// Path is an ordered sequence of Steps from origin to destination.
type Path []Step

// Fingerprint returns the route fingerprint: the ordered tuple of segment
// ids, as a comparable string key.
func (p Path) Fingerprint() string {
	b := make([]byte, 0, len(p)*6)
	for i, step := range p {
		if i > 0 {
			b = append(b, '|')
		}
		b = appendInt32(b, int32(step.SegID))
	}
	return string(b)
}

func appendInt32(b []byte, v int32) []byte {
	if v == 0 {
		return append(b, '0')
	}
	if v < 0 {
		b = append(b, '-')
		v = -v
	}
	start := len(b)
	for v > 0 {
		b = append(b, byte('0'+v%10))
		v /= 10
	}
	end := len(b) - 1
	for start < end {
		b[start], b[end] = b[end], b[start]
		start++
		end--
	}
	return b
}

// RouteType classifies a Path by which transport types its steps use.
type RouteType string

const (
	RouteTrainOnly   RouteType = "Train Only"
	RouteFlightOnly  RouteType = "Flight Only"
	RouteTrainFlight RouteType = "Train-Flight"
	RouteTypeUnknown RouteType = "Unknown"
)

// Objectives holds the five per-route optimization objectives plus total
// distance.
type Objectives struct {
	TimeMinutes     float64 `json:"time"`
	Cost            float64 `json:"cost"`
	Transfers       int     `json:"transfers"`
	SeatProbPercent float64 `json:"seat_prob"`
	SafetyScore     float64 `json:"safety_score"`
	DistanceKM      float64 `json:"distance"`
}
