package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/provider/geoapify"
	"roadtrip-planner/internal/repo"
)

// PlacesProvider finds POIs, lodging, and events near route segments.
// Implemented by the geoapify client; mocked in tests. The boolean in each
// result reports degradation (provider unavailable, placeholder or empty
// data returned).
type PlacesProvider interface {
	FindPOIs(ctx context.Context, origin, destination domain.Coordinates, categories []string, radiusMeters int) ([]geoapify.Place, bool)
	FindAccommodation(ctx context.Context, origin, destination domain.Coordinates, maxPrice *float64, minRating float64) ([]geoapify.Lodging, bool)
	FindEvents(ctx context.Context, origin, destination domain.Coordinates, startDate, endDate time.Time) ([]geoapify.Event, bool)
}

// Accommodation suggestions only make sense on long driving legs; shorter
// segments return an empty list without calling the provider.
const accommodationMinDuration = 3 * 60 * 60 // seconds

// defaultPOICategories is used when a discovery request names no categories.
var defaultPOICategories = []string{"tourist_attraction", "natural_feature", "museum"}

// defaultPOIRadiusMeters is the search radius used when the request gives none.
const defaultPOIRadiusMeters = 5000

// POIService implements discovery and persistence of points of interest,
// plus the non-persisted accommodation and event suggestions.
type POIService struct {
	trips        repo.TripRepo
	destinations repo.DestinationRepo
	segments     repo.SegmentRepo
	pois         repo.POIRepo
	places       PlacesProvider
}

// NewPOIService constructs a POIService.
func NewPOIService(trips repo.TripRepo, destinations repo.DestinationRepo,
	segments repo.SegmentRepo, pois repo.POIRepo, places PlacesProvider) *POIService {
	return &POIService{
		trips:        trips,
		destinations: destinations,
		segments:     segments,
		pois:         pois,
		places:       places,
	}
}

// DiscoverForSegment searches for places around a route segment and persists
// them as the segment's POIs. Empty categories and a non-positive radius fall
// back to defaults. When replace is true the segment's existing POIs are
// removed first; otherwise new finds are appended.
// The returned bool reports provider degradation.
// Returns domain.ErrNotFound if the segment does not exist.
func (s *POIService) DiscoverForSegment(ctx context.Context, segmentID uuid.UUID,
	categories []string, radiusMeters int, replace bool) ([]domain.PointOfInterest, bool, error) {

	origin, dest, _, err := s.segmentEndpoints(ctx, segmentID)
	if err != nil {
		return nil, false, fmt.Errorf("service.POIService.DiscoverForSegment: %w", err)
	}
	if len(categories) == 0 {
		categories = defaultPOICategories
	}
	if radiusMeters <= 0 {
		radiusMeters = defaultPOIRadiusMeters
	}

	places, degraded := s.places.FindPOIs(ctx, origin.Coords(), dest.Coords(), categories, radiusMeters)

	if replace {
		if err := s.pois.DeleteBySegmentID(ctx, segmentID); err != nil {
			return nil, degraded, fmt.Errorf("service.POIService.DiscoverForSegment: %w", err)
		}
	}
	if len(places) == 0 {
		return []domain.PointOfInterest{}, degraded, nil
	}

	batch := make([]domain.PointOfInterest, 0, len(places))
	for _, p := range places {
		batch = append(batch, domain.PointOfInterest{
			RouteSegmentID: segmentID,
			Name:           p.Name,
			Category:       p.Category,
			Latitude:       p.Latitude,
			Longitude:      p.Longitude,
			Description:    p.Description,
			ImageURL:       p.ImageURL,
		})
	}
	saved, err := s.pois.CreateBatch(ctx, batch)
	if err != nil {
		return nil, degraded, fmt.Errorf("service.POIService.DiscoverForSegment: %w", err)
	}
	return saved, degraded, nil
}

// ListBySegment returns the POIs stored for a route segment.
// Returns domain.ErrNotFound if the segment does not exist.
func (s *POIService) ListBySegment(ctx context.Context, segmentID uuid.UUID) ([]domain.PointOfInterest, error) {
	if _, err := s.segments.GetByID(ctx, segmentID); err != nil {
		return nil, fmt.Errorf("service.POIService.ListBySegment: %w", err)
	}
	pois, err := s.pois.ListBySegmentID(ctx, segmentID)
	if err != nil {
		return nil, fmt.Errorf("service.POIService.ListBySegment: %w", err)
	}
	if pois == nil {
		return []domain.PointOfInterest{}, nil
	}
	return pois, nil
}

// ListByTrip returns every POI stored across all of a trip's segments.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *POIService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.PointOfInterest, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.POIService.ListByTrip: %w", err)
	}
	pois, err := s.pois.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.POIService.ListByTrip: %w", err)
	}
	if pois == nil {
		return []domain.PointOfInterest{}, nil
	}
	return pois, nil
}

// Accommodation suggests lodging along a segment. Segments shorter than
// three hours of driving return an empty list without consulting the
// provider. Suggestions are not persisted.
// Returns domain.ErrNotFound if the segment does not exist.
func (s *POIService) Accommodation(ctx context.Context, segmentID uuid.UUID,
	maxPrice *float64, minRating float64) ([]geoapify.Lodging, bool, error) {

	origin, dest, seg, err := s.segmentEndpoints(ctx, segmentID)
	if err != nil {
		return nil, false, fmt.Errorf("service.POIService.Accommodation: %w", err)
	}
	if seg.Duration < accommodationMinDuration {
		return []geoapify.Lodging{}, false, nil
	}
	lodging, degraded := s.places.FindAccommodation(ctx, origin.Coords(), dest.Coords(), maxPrice, minRating)
	if lodging == nil {
		lodging = []geoapify.Lodging{}
	}
	return lodging, degraded, nil
}

// EventsForTrip suggests events between the trip's first and last destination.
// Nil start/end fall back to the trip's own dates; a trip without dates
// defaults to a week starting today. Suggestions are not persisted.
// Returns domain.ErrNotFound if the trip does not exist and
// domain.ErrPrecondition if it has fewer than two destinations.
func (s *POIService) EventsForTrip(ctx context.Context, tripID uuid.UUID,
	start, end *time.Time) ([]geoapify.Event, bool, error) {

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, false, fmt.Errorf("service.POIService.EventsForTrip: %w", err)
	}
	dests, err := s.destinations.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, false, fmt.Errorf("service.POIService.EventsForTrip: %w", err)
	}
	if len(dests) < 2 {
		return nil, false, fmt.Errorf("service.POIService.EventsForTrip: %w: trip needs at least two destinations", domain.ErrPrecondition)
	}

	startDate, endDate := eventWindow(trip, start, end)
	first, last := dests[0], dests[len(dests)-1]
	events, degraded := s.places.FindEvents(ctx, first.Coords(), last.Coords(), startDate, endDate)
	if events == nil {
		events = []geoapify.Event{}
	}
	return events, degraded, nil
}

// eventWindow resolves the date range for event suggestions: explicit
// parameters win, then the trip's dates, then a week starting today.
func eventWindow(trip domain.Trip, start, end *time.Time) (time.Time, time.Time) {
	startDate := time.Now().Truncate(24 * time.Hour)
	switch {
	case start != nil:
		startDate = *start
	case trip.StartDate != nil:
		startDate = *trip.StartDate
	}

	endDate := startDate.AddDate(0, 0, 7)
	switch {
	case end != nil:
		endDate = *end
	case trip.EndDate != nil:
		endDate = *trip.EndDate
	}
	if endDate.Before(startDate) {
		endDate = startDate
	}
	return startDate, endDate
}

// segmentEndpoints loads a segment and its two endpoint destinations.
func (s *POIService) segmentEndpoints(ctx context.Context, segmentID uuid.UUID) (domain.Destination, domain.Destination, domain.RouteSegment, error) {
	seg, err := s.segments.GetByID(ctx, segmentID)
	if err != nil {
		return domain.Destination{}, domain.Destination{}, domain.RouteSegment{}, err
	}
	origin, err := s.destinations.GetByID(ctx, seg.OriginID)
	if err != nil {
		return domain.Destination{}, domain.Destination{}, domain.RouteSegment{}, err
	}
	dest, err := s.destinations.GetByID(ctx, seg.DestinationID)
	if err != nil {
		return domain.Destination{}, domain.Destination{}, domain.RouteSegment{}, err
	}
	return origin, dest, seg, nil
}
