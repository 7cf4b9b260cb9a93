package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/provider/geoapify"
	"roadtrip-planner/internal/provider/ors"
	"roadtrip-planner/internal/repo"
	"roadtrip-planner/internal/service"
)

// Hand-written test doubles for the repo and provider interfaces.
// Each mock holds one function field per method; tests set only the fields
// they exercise. An unset field that gets called panics, which is the
// desired behavior: it flags an unexpected interaction.

// ---- mockTripRepo ----------------------------------------------------------

type mockTripRepo struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int, error)
	update    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

// foundTrip returns a mockTripRepo whose GetByID succeeds with a bare trip.
func foundTrip() *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			return domain.Trip{ID: id, Name: "Pacific Coast"}, nil
		},
	}
}

// ---- mockDestinationRepo ---------------------------------------------------

type mockDestinationRepo struct {
	create          func(ctx context.Context, dest domain.Destination) (domain.Destination, error)
	getByID         func(ctx context.Context, id uuid.UUID) (domain.Destination, error)
	listByTripID    func(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error)
	nextPosition    func(ctx context.Context, tripID uuid.UUID) (int, error)
	update          func(ctx context.Context, dest domain.Destination) (domain.Destination, error)
	delete          func(ctx context.Context, id uuid.UUID) error
	updatePositions func(ctx context.Context, tripID uuid.UUID, updates []domain.PositionUpdate) (int, error)
}

func (m *mockDestinationRepo) Create(ctx context.Context, dest domain.Destination) (domain.Destination, error) {
	return m.create(ctx, dest)
}
func (m *mockDestinationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	return m.getByID(ctx, id)
}
func (m *mockDestinationRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockDestinationRepo) NextPosition(ctx context.Context, tripID uuid.UUID) (int, error) {
	return m.nextPosition(ctx, tripID)
}
func (m *mockDestinationRepo) Update(ctx context.Context, dest domain.Destination) (domain.Destination, error) {
	return m.update(ctx, dest)
}
func (m *mockDestinationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockDestinationRepo) UpdatePositions(ctx context.Context, tripID uuid.UUID, updates []domain.PositionUpdate) (int, error) {
	return m.updatePositions(ctx, tripID, updates)
}

var _ repo.DestinationRepo = (*mockDestinationRepo)(nil)

// ---- mockSegmentRepo -------------------------------------------------------

type mockSegmentRepo struct {
	getByID          func(ctx context.Context, id uuid.UUID) (domain.RouteSegment, error)
	listByTripID     func(ctx context.Context, tripID uuid.UUID) ([]domain.RouteSegment, error)
	replaceTripRoute func(ctx context.Context, tripID uuid.UUID, segments []domain.RouteSegment,
		totalDistance float64, totalDuration int, fuelConsumption float64) ([]domain.RouteSegment, domain.Trip, error)
}

func (m *mockSegmentRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.RouteSegment, error) {
	return m.getByID(ctx, id)
}
func (m *mockSegmentRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.RouteSegment, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockSegmentRepo) ReplaceTripRoute(ctx context.Context, tripID uuid.UUID, segments []domain.RouteSegment,
	totalDistance float64, totalDuration int, fuelConsumption float64) ([]domain.RouteSegment, domain.Trip, error) {
	return m.replaceTripRoute(ctx, tripID, segments, totalDistance, totalDuration, fuelConsumption)
}

var _ repo.SegmentRepo = (*mockSegmentRepo)(nil)

// ---- mockPOIRepo -----------------------------------------------------------

type mockPOIRepo struct {
	createBatch       func(ctx context.Context, pois []domain.PointOfInterest) ([]domain.PointOfInterest, error)
	listBySegmentID   func(ctx context.Context, segmentID uuid.UUID) ([]domain.PointOfInterest, error)
	listByTripID      func(ctx context.Context, tripID uuid.UUID) ([]domain.PointOfInterest, error)
	deleteBySegmentID func(ctx context.Context, segmentID uuid.UUID) error
}

func (m *mockPOIRepo) CreateBatch(ctx context.Context, pois []domain.PointOfInterest) ([]domain.PointOfInterest, error) {
	return m.createBatch(ctx, pois)
}
func (m *mockPOIRepo) ListBySegmentID(ctx context.Context, segmentID uuid.UUID) ([]domain.PointOfInterest, error) {
	return m.listBySegmentID(ctx, segmentID)
}
func (m *mockPOIRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.PointOfInterest, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockPOIRepo) DeleteBySegmentID(ctx context.Context, segmentID uuid.UUID) error {
	return m.deleteBySegmentID(ctx, segmentID)
}

var _ repo.POIRepo = (*mockPOIRepo)(nil)

// ---- mockGeocodeCacheRepo --------------------------------------------------

type mockGeocodeCacheRepo struct {
	get func(ctx context.Context, address string) (domain.GeocodeResult, error)
	put func(ctx context.Context, address string, result domain.GeocodeResult) error
}

func (m *mockGeocodeCacheRepo) Get(ctx context.Context, address string) (domain.GeocodeResult, error) {
	return m.get(ctx, address)
}
func (m *mockGeocodeCacheRepo) Put(ctx context.Context, address string, result domain.GeocodeResult) error {
	return m.put(ctx, address, result)
}

var _ repo.GeocodeCacheRepo = (*mockGeocodeCacheRepo)(nil)

// ---- provider mocks --------------------------------------------------------

type mockGeocoder struct {
	geocode func(ctx context.Context, address string) (domain.GeocodeResult, error)
}

func (m *mockGeocoder) Geocode(ctx context.Context, address string) (domain.GeocodeResult, error) {
	return m.geocode(ctx, address)
}

var _ service.Geocoder = (*mockGeocoder)(nil)

type mockRouteProvider struct {
	routeBetween func(ctx context.Context, origin, destination domain.Coordinates) (ors.RouteData, error)
}

func (m *mockRouteProvider) RouteBetween(ctx context.Context, origin, destination domain.Coordinates) (ors.RouteData, error) {
	return m.routeBetween(ctx, origin, destination)
}

var _ service.RouteProvider = (*mockRouteProvider)(nil)

type mockPlacesProvider struct {
	findPOIs func(ctx context.Context, origin, destination domain.Coordinates,
		categories []string, radiusMeters int) ([]geoapify.Place, bool)
	findAccommodation func(ctx context.Context, origin, destination domain.Coordinates,
		maxPrice *float64, minRating float64) ([]geoapify.Lodging, bool)
	findEvents func(ctx context.Context, origin, destination domain.Coordinates,
		startDate, endDate time.Time) ([]geoapify.Event, bool)
}

func (m *mockPlacesProvider) FindPOIs(ctx context.Context, origin, destination domain.Coordinates,
	categories []string, radiusMeters int) ([]geoapify.Place, bool) {
	return m.findPOIs(ctx, origin, destination, categories, radiusMeters)
}
func (m *mockPlacesProvider) FindAccommodation(ctx context.Context, origin, destination domain.Coordinates,
	maxPrice *float64, minRating float64) ([]geoapify.Lodging, bool) {
	return m.findAccommodation(ctx, origin, destination, maxPrice, minRating)
}
func (m *mockPlacesProvider) FindEvents(ctx context.Context, origin, destination domain.Coordinates,
	startDate, endDate time.Time) ([]geoapify.Event, bool) {
	return m.findEvents(ctx, origin, destination, startDate, endDate)
}

var _ service.PlacesProvider = (*mockPlacesProvider)(nil)
