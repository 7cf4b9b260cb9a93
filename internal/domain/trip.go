// Package domain contains the core data types for the road trip planner.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler, providers).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate: an ordered itinerary of destinations
// connected by route segments. Totals are derived fields owned by the route
// recalculation and are never set directly from user input.
type Trip struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"` // must not precede StartDate when both are set
	// TotalDistance is the sum of segment distances in kilometres.
	TotalDistance float64 `json:"total_distance"`
	// TotalDuration is the sum of segment durations in seconds.
	TotalDuration int `json:"total_duration"`
	// FuelConsumption is the estimated fuel use in litres for the whole route.
	FuelConsumption float64   `json:"fuel_consumption"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TripDetail is a trip expanded with its owned collections, as returned by
// GET /trips/{tripID}.
type TripDetail struct {
	Trip
	Destinations []Destination   `json:"destinations"`
	Segments     []SegmentDetail `json:"route_segments"`
}
