// Package ingest loads the unified segment list from disk. It is the
// file-backed stand-in for the source's get_routes_data: the optimizer
// core treats its output as an immutable snapshot ("Input
// file").
package ingest

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/passbi/routeopt/internal/apierr"
	"github.com/passbi/routeopt/internal/models"
)

// LoadSegments reads and parses the unified segment list at path. A
// missing file surfaces as apierr.MissingSegmentFile, matching the
// §6's fixed error string.
func LoadSegments(path string) ([]models.Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apierr.MissingSegmentFile()
		}
		return nil, fmt.Errorf("ingest: reading %s: %w", path, err)
	}

	var segments []models.Segment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, fmt.Errorf("ingest: parsing %s: %w", path, err)
	}

	valid := make([]models.Segment, 0, len(segments))
	for i, seg := range segments {
		if seg.Origin == "" || seg.Destination == "" {
			log.Printf("ingest: skipping segment %d: missing origin/destination", i)
			continue
		}
		if seg.UniqueID == "" {
			log.Printf("ingest: skipping segment %d: missing unique_id", i)
			continue
		}
		valid = append(valid, seg)
	}

	log.Printf("ingest: loaded %d segments (%d skipped) from %s", len(valid), len(segments)-len(valid), path)
	return valid, nil
}
