// Package segment owns the normalized segment records that the optimizer
// reasons about: it assigns dense location ids, interns service identifiers
// into dense segment ids, and draws the per-segment seat-availability bit
// once at load time.
package segment

import (
	"math/rand"
	"strings"

	"github.com/passbi/routeopt/internal/models"
)

// ResolvedEdge is a Segment after location/service interning: ready to be
// handed to the graph builder.
type ResolvedEdge struct {
	FromID models.LocationID
	Edge   models.Edge
}

// Store is built once per request from the unified segment list. It is
// read-only for the remainder of the request.
type Store struct {
	locationIDs   map[string]models.LocationID
	locationCodes []string

	segmentIDs map[string]models.SegmentID
	segmentMeta []models.SegmentMeta

	resolved []ResolvedEdge
}

// NewStore builds a Store from the raw unified segment list. rng supplies
// the Bernoulli(0.8) seat-availability draws; callers must seed it
// deterministically for reproducible runs.
func NewStore(raw []models.Segment, rng *rand.Rand) *Store {
	s := &Store{
		locationIDs: make(map[string]models.LocationID),
		segmentIDs:  make(map[string]models.SegmentID),
	}
	s.resolved = make([]ResolvedEdge, 0, len(raw))

	for _, seg := range raw {
		origin := normalizeCode(seg.Origin)
		dest := normalizeCode(seg.Destination)
		if origin == "" || dest == "" {
			continue
		}

		fromID := s.internLocation(origin)
		toID := s.internLocation(dest)
		segID := s.internSegment(seg)

		seatAvailable := 0
		if rng.Float64() < 0.8 {
			seatAvailable = 1
		}

		s.resolved = append(s.resolved, ResolvedEdge{
			FromID: fromID,
			Edge: models.Edge{
				ToID:          toID,
				SegID:         segID,
				Departure:     seg.Departure,
				Arrival:       seg.Arrival,
				Distance:      seg.Distance(),
				DurationHours: seg.DurationHours(),
				Cost:          seg.Cost(),
				SeatAvailable: seatAvailable,
			},
		})
	}

	return s
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *Store) internLocation(code string) models.LocationID {
	if id, ok := s.locationIDs[code]; ok {
		return id
	}
	id := models.LocationID(len(s.locationCodes))
	s.locationIDs[code] = id
	s.locationCodes = append(s.locationCodes, code)
	return id
}

func (s *Store) internSegment(seg models.Segment) models.SegmentID {
	if id, ok := s.segmentIDs[seg.UniqueID]; ok {
		return id
	}
	id := models.SegmentID(len(s.segmentMeta))
	s.segmentIDs[seg.UniqueID] = id
	s.segmentMeta = append(s.segmentMeta, models.SegmentMeta{
		Type:        seg.Type,
		DisplayName: seg.DisplayName(),
	})
	return id
}

// LocationID looks up the dense id for a location code, case-insensitive.
func (s *Store) LocationID(code string) (models.LocationID, bool) {
	id, ok := s.locationIDs[normalizeCode(code)]
	return id, ok
}

// LocationCode returns the upper-cased code for a dense location id.
func (s *Store) LocationCode(id models.LocationID) string {
	if int(id) < 0 || int(id) >= len(s.locationCodes) {
		return ""
	}
	return s.locationCodes[id]
}

// NumLocations returns the number of distinct locations seen.
func (s *Store) NumLocations() int {
	return len(s.locationCodes)
}

// SegmentMeta returns the display metadata for a segment id.
func (s *Store) SegmentMeta(id models.SegmentID) models.SegmentMeta {
	if int(id) < 0 || int(id) >= len(s.segmentMeta) {
		return models.SegmentMeta{}
	}
	return s.segmentMeta[id]
}

// Resolved returns every interned edge, in input order, ready for the graph
// builder.
func (s *Store) Resolved() []ResolvedEdge {
	return s.resolved
}
