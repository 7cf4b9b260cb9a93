package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/geo"
	"roadtrip-planner/internal/provider/ors"
	"roadtrip-planner/internal/repo"
)

// RouteProvider returns routing data for a single origin/destination pair.
// Implemented by the ors client; mocked in tests.
type RouteProvider interface {
	RouteBetween(ctx context.Context, origin, destination domain.Coordinates) (ors.RouteData, error)
}

// RouteService recalculates a trip's route: one segment per consecutive
// destination pair, plus aggregated totals on the trip itself.
type RouteService struct {
	trips          repo.TripRepo
	destinations   repo.DestinationRepo
	segments       repo.SegmentRepo
	routes         RouteProvider
	fuelEfficiency float64 // liters per 100 km used for the trip total
	log            *slog.Logger
}

// NewRouteService constructs a RouteService. fuelEfficiency is the assumed
// consumption in liters per 100 km (see config.FuelEfficiency).
func NewRouteService(trips repo.TripRepo, destinations repo.DestinationRepo,
	segments repo.SegmentRepo, routes RouteProvider, fuelEfficiency float64,
	log *slog.Logger) *RouteService {
	return &RouteService{
		trips:          trips,
		destinations:   destinations,
		segments:       segments,
		routes:         routes,
		fuelEfficiency: fuelEfficiency,
		log:            log,
	}
}

// GetRoute returns the trip's currently stored segments without recalculating.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *RouteService) GetRoute(ctx context.Context, tripID uuid.UUID) (domain.TripRoute, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.TripRoute{}, fmt.Errorf("service.RouteService.GetRoute: %w", err)
	}
	segments, err := s.segments.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.TripRoute{}, fmt.Errorf("service.RouteService.GetRoute: %w", err)
	}
	if segments == nil {
		segments = []domain.RouteSegment{}
	}
	degraded := false
	for _, seg := range segments {
		if seg.Estimated {
			degraded = true
			break
		}
	}
	return domain.TripRoute{
		Trip:     trip,
		Segments: segments,
		Skipped:  []domain.SkippedPair{},
		Degraded: degraded,
	}, nil
}

// Recalculate rebuilds the trip's route from its current destination order.
// It walks consecutive destination pairs in position order, fetches routing
// data for each, then atomically replaces the trip's segments and updates the
// stored totals. Recalculating twice in a row yields the same totals.
//
// A pair whose lookup fails is recorded in the result's Skipped list and
// contributes nothing to the totals; the rest of the route is still built.
// Context cancellation is the exception: it aborts the whole recalculation
// with nothing persisted.
//
// Returns domain.ErrNotFound if the trip does not exist and
// domain.ErrPrecondition if it has fewer than two destinations.
func (s *RouteService) Recalculate(ctx context.Context, tripID uuid.UUID) (domain.TripRoute, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return domain.TripRoute{}, fmt.Errorf("service.RouteService.Recalculate: %w", err)
	}
	dests, err := s.destinations.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.TripRoute{}, fmt.Errorf("service.RouteService.Recalculate: %w", err)
	}
	if len(dests) < 2 {
		return domain.TripRoute{}, fmt.Errorf("service.RouteService.Recalculate: %w: trip needs at least two destinations", domain.ErrPrecondition)
	}

	var (
		segments      = make([]domain.RouteSegment, 0, len(dests)-1)
		skipped       = []domain.SkippedPair{}
		totalDistance float64
		totalDuration int
		degraded      bool
	)
	for i := 0; i < len(dests)-1; i++ {
		origin, dest := dests[i], dests[i+1]
		data, err := s.routes.RouteBetween(ctx, origin.Coords(), dest.Coords())
		if err != nil {
			if ctx.Err() != nil {
				return domain.TripRoute{}, fmt.Errorf("service.RouteService.Recalculate: %w", err)
			}
			s.log.Warn("skipping segment, route lookup failed",
				"trip_id", tripID, "origin_id", origin.ID, "destination_id", dest.ID, "error", err)
			skipped = append(skipped, domain.SkippedPair{
				OriginID:      origin.ID,
				DestinationID: dest.ID,
				Reason:        err.Error(),
			})
			continue
		}
		if data.Estimated {
			degraded = true
		}
		totalDistance += data.DistanceKm
		totalDuration += data.DurationSeconds
		segments = append(segments, domain.RouteSegment{
			TripID:        tripID,
			OriginID:      origin.ID,
			DestinationID: dest.ID,
			Distance:      data.DistanceKm,
			Duration:      data.DurationSeconds,
			Polyline:      data.Polyline,
			Estimated:     data.Estimated,
		})
	}

	fuel := geo.FuelConsumption(totalDistance, s.fuelEfficiency)
	inserted, trip, err := s.segments.ReplaceTripRoute(ctx, tripID, segments, totalDistance, totalDuration, fuel)
	if err != nil {
		return domain.TripRoute{}, fmt.Errorf("service.RouteService.Recalculate: %w", err)
	}
	if inserted == nil {
		inserted = []domain.RouteSegment{}
	}
	return domain.TripRoute{
		Trip:     trip,
		Segments: inserted,
		Skipped:  skipped,
		Degraded: degraded,
	}, nil
}
