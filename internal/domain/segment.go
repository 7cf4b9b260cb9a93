package domain

import (
	"time"

	"github.com/google/uuid"
)

// RouteSegment is a directed edge between two consecutive destinations of a
// trip. Segments are entirely derived: recalculating a trip's route deletes
// and rebuilds them wholesale, never edits them in place.
type RouteSegment struct {
	ID            uuid.UUID `json:"id"`
	TripID        uuid.UUID `json:"trip_id"`
	OriginID      uuid.UUID `json:"origin_id"`
	DestinationID uuid.UUID `json:"destination_id"`
	// Distance is the segment length in kilometres.
	Distance float64 `json:"distance"`
	// Duration is the travel time in seconds.
	Duration int `json:"duration"`
	// Polyline is the provider's serialized path geometry, kept opaque for
	// map rendering. Nil when the segment was computed from the great-circle
	// fallback rather than a real route.
	Polyline *string `json:"polyline,omitempty"`
	// Estimated is true when the segment's distance and duration come from
	// the great-circle fallback rather than the routing provider.
	Estimated bool      `json:"estimated"`
	CreatedAt time.Time `json:"created_at"`
}

// SegmentDetail is a route segment expanded with its endpoint destinations
// and attached points of interest.
type SegmentDetail struct {
	RouteSegment
	Origin           Destination       `json:"origin"`
	Destination      Destination       `json:"destination"`
	PointsOfInterest []PointOfInterest `json:"points_of_interest"`
}

// SkippedPair records a consecutive destination pair for which no segment
// could be computed during route recalculation, together with the reason.
type SkippedPair struct {
	OriginID      uuid.UUID `json:"origin_id"`
	DestinationID uuid.UUID `json:"destination_id"`
	Reason        string    `json:"reason"`
}

// TripRoute is the result of recalculating a trip's route: the updated trip
// totals, the freshly created segments, any pairs that were skipped, and
// whether any segment fell back to an estimated (non-provider) route.
type TripRoute struct {
	Trip     Trip           `json:"trip"`
	Segments []RouteSegment `json:"route_segments"`
	Skipped  []SkippedPair  `json:"skipped_pairs,omitempty"`
	Degraded bool           `json:"degraded"`
}
