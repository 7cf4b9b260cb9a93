package domain

import (
	"time"

	"github.com/google/uuid"
)

// Destination is a single stop on a trip's itinerary.
// Position is the zero-based slot within the trip; positions of a trip's
// destinations are always unique and contiguous (0..N-1). Deleting a
// destination renumbers the ones after it to keep the sequence dense.
type Destination struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`  // degrees, [-90, 90]
	Longitude float64   `json:"longitude"` // degrees, [-180, 180]
	Address   string    `json:"address,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Coords returns the destination's location as a Coordinates value.
func (d Destination) Coords() Coordinates {
	return Coordinates{Lat: d.Latitude, Lng: d.Longitude}
}

// PositionUpdate is one entry of a bulk reorder request: destination ID and
// its new position. A reorder must supply exactly the trip's destinations
// with positions forming a permutation of 0..N-1.
type PositionUpdate struct {
	ID       uuid.UUID `json:"id"`
	Position int       `json:"position"`
}

// GeocodeResult is a resolved free-text address as returned by the geocoding
// provider (and cached between lookups).
type GeocodeResult struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Formatted string  `json:"formatted_address"`
	Name      string  `json:"name"`
}
