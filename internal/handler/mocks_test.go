package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/handler"
	"roadtrip-planner/internal/provider/geoapify"
)

// Test doubles for the handler's service interfaces. Set only the method
// fields a test needs; a call on an unset field panics, flagging an
// unexpected interaction.

type mockTripServicer struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getDetail func(ctx context.Context, id uuid.UUID) (domain.TripDetail, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int, error)
	update    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetDetail(ctx context.Context, id uuid.UUID) (domain.TripDetail, error) {
	return m.getDetail(ctx, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockDestinationServicer struct {
	create       func(ctx context.Context, dest domain.Destination, position *int) (domain.Destination, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error)
	update       func(ctx context.Context, dest domain.Destination, position *int) (domain.Destination, error)
	delete       func(ctx context.Context, id uuid.UUID) error
	reorder      func(ctx context.Context, tripID uuid.UUID, updates []domain.PositionUpdate) ([]domain.Destination, error)
	geocode      func(ctx context.Context, address string) (domain.GeocodeResult, error)
}

func (m *mockDestinationServicer) Create(ctx context.Context, d domain.Destination, position *int) (domain.Destination, error) {
	return m.create(ctx, d, position)
}
func (m *mockDestinationServicer) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockDestinationServicer) Update(ctx context.Context, d domain.Destination, position *int) (domain.Destination, error) {
	return m.update(ctx, d, position)
}
func (m *mockDestinationServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockDestinationServicer) Reorder(ctx context.Context, tripID uuid.UUID, updates []domain.PositionUpdate) ([]domain.Destination, error) {
	return m.reorder(ctx, tripID, updates)
}
func (m *mockDestinationServicer) Geocode(ctx context.Context, address string) (domain.GeocodeResult, error) {
	return m.geocode(ctx, address)
}

var _ handler.DestinationServicer = (*mockDestinationServicer)(nil)

type mockRouteServicer struct {
	recalculate func(ctx context.Context, tripID uuid.UUID) (domain.TripRoute, error)
	getRoute    func(ctx context.Context, tripID uuid.UUID) (domain.TripRoute, error)
}

func (m *mockRouteServicer) Recalculate(ctx context.Context, tripID uuid.UUID) (domain.TripRoute, error) {
	return m.recalculate(ctx, tripID)
}
func (m *mockRouteServicer) GetRoute(ctx context.Context, tripID uuid.UUID) (domain.TripRoute, error) {
	return m.getRoute(ctx, tripID)
}

var _ handler.RouteServicer = (*mockRouteServicer)(nil)

type mockPOIServicer struct {
	discoverForSegment func(ctx context.Context, segmentID uuid.UUID, categories []string,
		radiusMeters int, replace bool) ([]domain.PointOfInterest, bool, error)
	listByTrip    func(ctx context.Context, tripID uuid.UUID) ([]domain.PointOfInterest, error)
	accommodation func(ctx context.Context, segmentID uuid.UUID, maxPrice *float64,
		minRating float64) ([]geoapify.Lodging, bool, error)
	eventsForTrip func(ctx context.Context, tripID uuid.UUID, start, end *time.Time) ([]geoapify.Event, bool, error)
}

func (m *mockPOIServicer) DiscoverForSegment(ctx context.Context, segmentID uuid.UUID,
	categories []string, radiusMeters int, replace bool) ([]domain.PointOfInterest, bool, error) {
	return m.discoverForSegment(ctx, segmentID, categories, radiusMeters, replace)
}
func (m *mockPOIServicer) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.PointOfInterest, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockPOIServicer) Accommodation(ctx context.Context, segmentID uuid.UUID,
	maxPrice *float64, minRating float64) ([]geoapify.Lodging, bool, error) {
	return m.accommodation(ctx, segmentID, maxPrice, minRating)
}
func (m *mockPOIServicer) EventsForTrip(ctx context.Context, tripID uuid.UUID,
	start, end *time.Time) ([]geoapify.Event, bool, error) {
	return m.eventsForTrip(ctx, tripID, start, end)
}

var _ handler.POIServicer = (*mockPOIServicer)(nil)

// newHTTPHandler wires a Server with the given mocks into its chi router,
// mirroring how cmd/api wires it in production. Nil mocks are fine for
// endpoints the test never hits.
func newHTTPHandler(trips handler.TripServicer, dests handler.DestinationServicer,
	routes handler.RouteServicer, pois handler.POIServicer) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handler.NewServer(trips, dests, routes, pois, log, false).Routes()
}
