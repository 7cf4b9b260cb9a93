package domain

import (
	"time"

	"github.com/google/uuid"
)

// PointOfInterest is a place worth visiting along a route segment,
// discovered through the places provider and persisted per segment.
// Category follows the provider's taxonomy (e.g. "tourism.attraction").
type PointOfInterest struct {
	ID             uuid.UUID `json:"id"`
	RouteSegmentID uuid.UUID `json:"route_segment_id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	Description    string    `json:"description,omitempty"`
	ImageURL       *string   `json:"image_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
