// Package service contains the business logic for the road trip planner.
// Services validate inputs, enforce business rules, and orchestrate repo and
// provider calls. No SQL lives here — services depend on repo interfaces,
// not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/repo"
)

// TripService implements business logic for Trip operations.
// It holds the destination, segment, and POI repos as well because the trip
// detail view assembles the whole aggregate.
type TripService struct {
	trips        repo.TripRepo
	destinations repo.DestinationRepo
	segments     repo.SegmentRepo
	pois         repo.POIRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, destinations repo.DestinationRepo,
	segments repo.SegmentRepo, pois repo.POIRepo) *TripService {
	return &TripService{trips: trips, destinations: destinations, segments: segments, pois: pois}
}

// Create validates and persists a new trip. Totals always start at zero;
// they are owned by route recalculation.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID without its owned collections.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// GetDetail returns a trip with its destinations and segments, each segment
// expanded with endpoint destinations and attached points of interest.
func (s *TripService) GetDetail(ctx context.Context, id uuid.UUID) (domain.TripDetail, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripService.GetDetail: %w", err)
	}

	dests, err := s.destinations.ListByTripID(ctx, id)
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripService.GetDetail: %w", err)
	}
	segments, err := s.segments.ListByTripID(ctx, id)
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripService.GetDetail: %w", err)
	}
	pois, err := s.pois.ListByTripID(ctx, id)
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripService.GetDetail: %w", err)
	}

	byID := make(map[uuid.UUID]domain.Destination, len(dests))
	for _, d := range dests {
		byID[d.ID] = d
	}
	poisBySegment := make(map[uuid.UUID][]domain.PointOfInterest)
	for _, p := range pois {
		poisBySegment[p.RouteSegmentID] = append(poisBySegment[p.RouteSegmentID], p)
	}

	detail := domain.TripDetail{
		Trip:         trip,
		Destinations: dests,
		Segments:     make([]domain.SegmentDetail, 0, len(segments)),
	}
	if detail.Destinations == nil {
		detail.Destinations = []domain.Destination{}
	}
	for _, seg := range segments {
		sd := domain.SegmentDetail{
			RouteSegment:     seg,
			Origin:           byID[seg.OriginID],
			Destination:      byID[seg.DestinationID],
			PointsOfInterest: poisBySegment[seg.ID],
		}
		if sd.PointsOfInterest == nil {
			sd.PointsOfInterest = []domain.PointOfInterest{}
		}
		detail.Segments = append(detail.Segments, sd)
	}
	return detail, nil
}

// ListPaged returns one page of trips plus the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int, error) {
	trips, total, err := s.trips.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates and updates an existing trip's user-editable fields.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by ID, cascading to everything it owns.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - EndDate, if both dates are set, must not be before StartDate.
func validateTrip(trip domain.Trip) error {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(trip.Name) == "" {
		verr.Add("name", "name is required")
	}
	if trip.StartDate != nil && trip.EndDate != nil && trip.EndDate.Before(*trip.StartDate) {
		verr.Add("end_date", "end_date must not be before start_date")
	}
	if verr.Empty() {
		return nil
	}
	return verr
}
