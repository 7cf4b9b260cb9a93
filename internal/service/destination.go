package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/repo"
)

// Geocoder resolves a free-form address to coordinates.
// Implemented by the geoapify client; mocked in tests.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.GeocodeResult, error)
}

// DestinationService implements business logic for Destination operations.
// It holds the trip repo because most operations must verify the parent trip
// exists, and the geocode cache because lookups are cached before hitting
// the external provider.
type DestinationService struct {
	trips        repo.TripRepo
	destinations repo.DestinationRepo
	geocache     repo.GeocodeCacheRepo
	geocoder     Geocoder
	log          *slog.Logger
}

// NewDestinationService constructs a DestinationService.
func NewDestinationService(trips repo.TripRepo, destinations repo.DestinationRepo,
	geocache repo.GeocodeCacheRepo, geocoder Geocoder, log *slog.Logger) *DestinationService {
	return &DestinationService{
		trips:        trips,
		destinations: destinations,
		geocache:     geocache,
		geocoder:     geocoder,
		log:          log,
	}
}

// Create validates the destination, verifies the parent trip exists, then
// persists. When position is nil the destination is appended after the trip's
// current last position.
// Returns domain.ErrValidation if input violates business rules.
// Returns domain.ErrNotFound if the parent trip does not exist.
func (s *DestinationService) Create(ctx context.Context, dest domain.Destination, position *int) (domain.Destination, error) {
	if err := validateDestination(dest, position); err != nil {
		return domain.Destination{}, err
	}
	if _, err := s.trips.GetByID(ctx, dest.TripID); err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w", err)
	}
	if position != nil {
		dest.Position = *position
	} else {
		next, err := s.destinations.NextPosition(ctx, dest.TripID)
		if err != nil {
			return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w", err)
		}
		dest.Position = next
	}
	result, err := s.destinations.Create(ctx, dest)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single destination by ID.
func (s *DestinationService) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	result, err := s.destinations.GetByID(ctx, id)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns all destinations for a trip ordered by position.
// Returns domain.ErrNotFound if the trip does not exist.
// Always returns a non-nil slice so callers can safely range over it.
func (s *DestinationService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.DestinationService.ListByTripID: %w", err)
	}
	dests, err := s.destinations.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.ListByTripID: %w", err)
	}
	if dests == nil {
		return []domain.Destination{}, nil
	}
	return dests, nil
}

// Update validates and persists changes to an existing destination. When
// position is nil the stored position is kept; the trip association never
// changes on update.
func (s *DestinationService) Update(ctx context.Context, dest domain.Destination, position *int) (domain.Destination, error) {
	if err := validateDestination(dest, position); err != nil {
		return domain.Destination{}, err
	}
	existing, err := s.destinations.GetByID(ctx, dest.ID)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Update: %w", err)
	}
	dest.TripID = existing.TripID
	if position != nil {
		dest.Position = *position
	} else {
		dest.Position = existing.Position
	}
	result, err := s.destinations.Update(ctx, dest)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a destination and closes the gap it leaves: every later
// destination in the same trip shifts down one position, so positions stay
// contiguous from zero.
func (s *DestinationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.destinations.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.DestinationService.Delete: %w", err)
	}
	return nil
}

// Reorder applies a full reordering of the trip's destinations. The updates
// must cover exactly the trip's destinations and the new positions must form
// a permutation of 0..N-1; anything else is rejected with domain.ErrValidation
// before any row is touched. Returns the reordered list.
func (s *DestinationService) Reorder(ctx context.Context, tripID uuid.UUID, updates []domain.PositionUpdate) ([]domain.Destination, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.DestinationService.Reorder: %w", err)
	}
	current, err := s.destinations.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.Reorder: %w", err)
	}
	if err := validateReorder(current, updates); err != nil {
		return nil, err
	}
	if _, err := s.destinations.UpdatePositions(ctx, tripID, updates); err != nil {
		return nil, fmt.Errorf("service.DestinationService.Reorder: %w", err)
	}
	result, err := s.destinations.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.Reorder: %w", err)
	}
	if result == nil {
		result = []domain.Destination{}
	}
	return result, nil
}

// Geocode resolves an address to coordinates, consulting the cache first.
// Cache writes are best-effort; a failed write is logged and the result is
// still returned.
func (s *DestinationService) Geocode(ctx context.Context, address string) (domain.GeocodeResult, error) {
	address = normalizeAddress(address)
	if address == "" {
		verr := &domain.ValidationError{}
		verr.Add("address", "address is required")
		return domain.GeocodeResult{}, verr
	}

	cached, err := s.geocache.Get(ctx, address)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		s.log.Warn("geocode cache read failed", "error", err)
	}

	result, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("service.DestinationService.Geocode: %w", err)
	}
	if err := s.geocache.Put(ctx, address, result); err != nil {
		s.log.Warn("geocode cache write failed", "address", address, "error", err)
	}
	return result, nil
}

// normalizeAddress trims and collapses inner whitespace so that visually
// identical addresses share one cache entry.
func normalizeAddress(address string) string {
	return strings.Join(strings.Fields(address), " ")
}

// validateDestination enforces business rules common to Create and Update.
func validateDestination(dest domain.Destination, position *int) error {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(dest.Name) == "" {
		verr.Add("name", "name is required")
	}
	if dest.Latitude < -90 || dest.Latitude > 90 {
		verr.Add("latitude", "latitude must be between -90 and 90")
	}
	if dest.Longitude < -180 || dest.Longitude > 180 {
		verr.Add("longitude", "longitude must be between -180 and 180")
	}
	if position != nil && *position < 0 {
		verr.Add("position", "position must not be negative")
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

// validateReorder checks that updates cover exactly the trip's destinations
// and that the requested positions are a permutation of 0..N-1.
func validateReorder(current []domain.Destination, updates []domain.PositionUpdate) error {
	verr := &domain.ValidationError{}
	if len(updates) == 0 {
		verr.Add("destinations", "at least one position update is required")
		return verr
	}
	if len(updates) != len(current) {
		verr.Add("destinations", fmt.Sprintf("expected %d position updates, got %d", len(current), len(updates)))
		return verr
	}

	known := make(map[uuid.UUID]bool, len(current))
	for _, d := range current {
		known[d.ID] = true
	}
	seenID := make(map[uuid.UUID]bool, len(updates))
	seenPos := make(map[int]bool, len(updates))
	for _, u := range updates {
		if !known[u.ID] {
			verr.Add("destinations", fmt.Sprintf("destination %s does not belong to this trip", u.ID))
		}
		if seenID[u.ID] {
			verr.Add("destinations", fmt.Sprintf("destination %s listed more than once", u.ID))
		}
		seenID[u.ID] = true
		if u.Position < 0 || u.Position >= len(updates) {
			verr.Add("destinations", fmt.Sprintf("position %d out of range 0..%d", u.Position, len(updates)-1))
		} else if seenPos[u.Position] {
			verr.Add("destinations", fmt.Sprintf("position %d assigned more than once", u.Position))
		}
		seenPos[u.Position] = true
	}
	if verr.Empty() {
		return nil
	}
	return verr
}
