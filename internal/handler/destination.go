package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"roadtrip-planner/internal/domain"
)

// destinationRequest is the body of POST /destinations and
// PUT /destinations/{destinationID}. Position is optional: on create a nil
// position appends to the end of the trip, on update it keeps the stored one.
type destinationRequest struct {
	TripID    uuid.UUID `json:"trip_id"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Address   string    `json:"address"`
	Position  *int      `json:"position"`
}

func (req destinationRequest) toDomain() domain.Destination {
	return domain.Destination{
		TripID:    req.TripID,
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Address:   req.Address,
	}
}

// CreateDestination handles POST /destinations.
func (s *Server) CreateDestination(w http.ResponseWriter, r *http.Request) {
	var req destinationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}

	created, err := s.destinations.Create(r.Context(), req.toDomain(), req.Position)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

// UpdateDestination handles PUT /destinations/{destinationID}.
func (s *Server) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "destinationID")
	if err != nil {
		s.badRequest(w, "invalid destination id")
		return
	}

	var req destinationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	dest := req.toDomain()
	dest.ID = id

	updated, err := s.destinations.Update(r.Context(), dest, req.Position)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

// DeleteDestination handles DELETE /destinations/{destinationID}.
// Later destinations in the same trip shift down to close the gap.
func (s *Server) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "destinationID")
	if err != nil {
		s.badRequest(w, "invalid destination id")
		return
	}

	if err := s.destinations.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTripDestinations handles GET /trips/{tripID}/destinations.
func (s *Server) ListTripDestinations(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.badRequest(w, "invalid trip id")
		return
	}

	dests, err := s.destinations.ListByTripID(r.Context(), tripID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"data": dests})
}

// reorderRequest is the body of POST /trips/{tripID}/destinations/reorder.
// It must cover exactly the trip's destinations with positions forming a
// permutation of 0..N-1.
type reorderRequest struct {
	Destinations []domain.PositionUpdate `json:"destinations"`
}

// ReorderDestinations handles POST /trips/{tripID}/destinations/reorder.
func (s *Server) ReorderDestinations(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.badRequest(w, "invalid trip id")
		return
	}

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}

	dests, err := s.destinations.Reorder(r.Context(), tripID, req.Destinations)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"data": dests})
}

// geocodeRequest is the body of POST /destinations/geocode.
type geocodeRequest struct {
	Address string `json:"address"`
}

// GeocodeAddress handles POST /destinations/geocode: resolves a free-form
// address to coordinates, serving repeated lookups from the cache.
func (s *Server) GeocodeAddress(w http.ResponseWriter, r *http.Request) {
	var req geocodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}

	result, err := s.destinations.Geocode(r.Context(), req.Address)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}
