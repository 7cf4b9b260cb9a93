// Package handler implements the HTTP layer of the road trip planner API.
// All handlers are methods on Server; they parse and validate the wire
// format, call a service interface, and map errors to status codes. Methods
// are split into resource-specific files but share the one Server struct.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/provider/geoapify"
)

// TripServicer defines the trip operations the handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the service or repo layers.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetDetail(ctx context.Context, id uuid.UUID) (domain.TripDetail, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DestinationServicer defines the destination operations the handlers use.
type DestinationServicer interface {
	Create(ctx context.Context, dest domain.Destination, position *int) (domain.Destination, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error)
	Update(ctx context.Context, dest domain.Destination, position *int) (domain.Destination, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, tripID uuid.UUID, updates []domain.PositionUpdate) ([]domain.Destination, error)
	Geocode(ctx context.Context, address string) (domain.GeocodeResult, error)
}

// RouteServicer defines the route operations the handlers use.
type RouteServicer interface {
	Recalculate(ctx context.Context, tripID uuid.UUID) (domain.TripRoute, error)
	GetRoute(ctx context.Context, tripID uuid.UUID) (domain.TripRoute, error)
}

// POIServicer defines the point-of-interest operations the handlers use.
type POIServicer interface {
	DiscoverForSegment(ctx context.Context, segmentID uuid.UUID, categories []string,
		radiusMeters int, replace bool) ([]domain.PointOfInterest, bool, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.PointOfInterest, error)
	Accommodation(ctx context.Context, segmentID uuid.UUID, maxPrice *float64,
		minRating float64) ([]geoapify.Lodging, bool, error)
	EventsForTrip(ctx context.Context, tripID uuid.UUID, start, end *time.Time) ([]geoapify.Event, bool, error)
}

// Server holds the handler dependencies and implements every endpoint.
type Server struct {
	trips        TripServicer
	destinations DestinationServicer
	routes       RouteServicer
	pois         POIServicer
	log          *slog.Logger
	debugErrors  bool
}

// NewServer constructs the Server with all its dependencies.
// When debugErrors is true, 500 responses carry the underlying error text;
// keep it off outside local development.
func NewServer(trips TripServicer, destinations DestinationServicer,
	routes RouteServicer, pois POIServicer, log *slog.Logger, debugErrors bool) *Server {
	return &Server{
		trips:        trips,
		destinations: destinations,
		routes:       routes,
		pois:         pois,
		log:          log,
		debugErrors:  debugErrors,
	}
}

// Routes mounts every endpoint on a fresh chi router. Middleware is applied
// by the caller (cmd/api) so tests can exercise routes without it.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.Health)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)
		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Post("/calculate-route", s.CalculateRoute)
			r.Get("/route", s.GetTripRoute)
			r.Get("/destinations", s.ListTripDestinations)
			r.Post("/destinations/reorder", s.ReorderDestinations)
			r.Get("/points-of-interest", s.ListTripPOIs)
			r.Get("/events", s.ListTripEvents)
		})
	})

	r.Route("/destinations", func(r chi.Router) {
		r.Post("/", s.CreateDestination)
		r.Post("/geocode", s.GeocodeAddress)
		r.Route("/{destinationID}", func(r chi.Router) {
			r.Put("/", s.UpdateDestination)
			r.Delete("/", s.DeleteDestination)
		})
	})

	r.Route("/route-segments/{segmentID}", func(r chi.Router) {
		r.Get("/points-of-interest", s.DiscoverSegmentPOIs)
		r.Get("/accommodation", s.SegmentAccommodation)
	})

	return r
}

// pathUUID extracts and parses a UUID path parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}
