package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"roadtrip-planner/internal/domain"
)

// dateLayout is the wire format for trip dates.
const dateLayout = "2006-01-02"

// tripRequest is the body of POST /trips and PUT /trips/{tripID}.
// Dates are YYYY-MM-DD strings; both are optional.
type tripRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// toDomain converts the wire representation into a domain.Trip.
func (req tripRequest) toDomain() (domain.Trip, error) {
	t := domain.Trip{Name: req.Name, Description: req.Description}

	var err error
	if t.StartDate, err = parseDate(req.StartDate); err != nil {
		return domain.Trip{}, err
	}
	if t.EndDate, err = parseDate(req.EndDate); err != nil {
		return domain.Trip{}, err
	}
	return t, nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// listResponse is the paginated envelope for list endpoints.
type listResponse struct {
	Data       any        `json:"data"`
	Pagination pagination `json:"pagination"`
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	trip, err := req.toDomain()
	if err != nil {
		s.badRequest(w, "dates must use YYYY-MM-DD")
		return
	}

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max 100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	trips, total, err := s.trips.ListPaged(r.Context(), params)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, listResponse{
		Data: trips,
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetTrip handles GET /trips/{tripID}: the trip plus its destinations,
// segments with endpoints, and points of interest.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		s.badRequest(w, "invalid trip id")
		return
	}

	detail, err := s.trips.GetDetail(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, detail)
}

// UpdateTrip handles PUT /trips/{tripID}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		s.badRequest(w, "invalid trip id")
		return
	}

	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	trip, err := req.toDomain()
	if err != nil {
		s.badRequest(w, "dates must use YYYY-MM-DD")
		return
	}
	trip.ID = id

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		s.badRequest(w, "invalid trip id")
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CalculateRoute handles POST /trips/{tripID}/calculate-route.
// Rebuilds the trip's segments from its current destination order and
// returns the fresh route with updated totals.
func (s *Server) CalculateRoute(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		s.badRequest(w, "invalid trip id")
		return
	}

	route, err := s.routes.Recalculate(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, route)
}

// GetTripRoute handles GET /trips/{tripID}/route: the stored segments
// without recalculating.
func (s *Server) GetTripRoute(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		s.badRequest(w, "invalid trip id")
		return
	}

	route, err := s.routes.GetRoute(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, route)
}

// queryInt parses an optional integer query parameter; malformed values are
// treated as absent.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
