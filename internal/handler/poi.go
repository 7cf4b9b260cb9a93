package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DiscoverSegmentPOIs handles GET /route-segments/{segmentID}/points-of-interest.
// Query parameters:
//
//	categories  comma-separated list (default tourist_attraction,natural_feature,museum)
//	radius      search radius in meters (default 5000)
//	replace     when true, the segment's stored POIs are replaced instead of appended
//
// Results are persisted on the segment and returned. A degraded provider is
// reported via "degraded": true rather than an error.
func (s *Server) DiscoverSegmentPOIs(w http.ResponseWriter, r *http.Request) {
	segmentID, err := pathUUID(r, "segmentID")
	if err != nil {
		s.badRequest(w, "invalid segment id")
		return
	}

	q := r.URL.Query()
	var categories []string
	if raw := q.Get("categories"); raw != "" {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				categories = append(categories, c)
			}
		}
	}
	radius := 0
	if raw := q.Get("radius"); raw != "" {
		if radius, err = strconv.Atoi(raw); err != nil {
			s.badRequest(w, "radius must be an integer")
			return
		}
	}
	replace, _ := strconv.ParseBool(q.Get("replace"))

	pois, degraded, err := s.pois.DiscoverForSegment(r.Context(), segmentID, categories, radius, replace)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"data": pois, "degraded": degraded})
}

// SegmentAccommodation handles GET /route-segments/{segmentID}/accommodation.
// Query parameters max_price and min_rating filter the suggestions; segments
// under three hours of driving return an empty list. Nothing is persisted.
func (s *Server) SegmentAccommodation(w http.ResponseWriter, r *http.Request) {
	segmentID, err := pathUUID(r, "segmentID")
	if err != nil {
		s.badRequest(w, "invalid segment id")
		return
	}

	q := r.URL.Query()
	var maxPrice *float64
	if raw := q.Get("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.badRequest(w, "max_price must be a number")
			return
		}
		maxPrice = &v
	}
	minRating := 0.0
	if raw := q.Get("min_rating"); raw != "" {
		if minRating, err = strconv.ParseFloat(raw, 64); err != nil {
			s.badRequest(w, "min_rating must be a number")
			return
		}
	}

	lodging, degraded, err := s.pois.Accommodation(r.Context(), segmentID, maxPrice, minRating)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"data": lodging, "degraded": degraded})
}

// ListTripPOIs handles GET /trips/{tripID}/points-of-interest: every stored
// POI across the trip's segments.
func (s *Server) ListTripPOIs(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.badRequest(w, "invalid trip id")
		return
	}

	pois, err := s.pois.ListByTrip(r.Context(), tripID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"data": pois})
}

// ListTripEvents handles GET /trips/{tripID}/events. Optional start_date and
// end_date (YYYY-MM-DD) narrow the window; they default to the trip's dates.
func (s *Server) ListTripEvents(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.badRequest(w, "invalid trip id")
		return
	}

	q := r.URL.Query()
	var start, end *time.Time
	if raw := q.Get("start_date"); raw != "" {
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			s.badRequest(w, "start_date must use YYYY-MM-DD")
			return
		}
		start = &d
	}
	if raw := q.Get("end_date"); raw != "" {
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			s.badRequest(w, "end_date must use YYYY-MM-DD")
			return
		}
		end = &d
	}

	events, degraded, err := s.pois.EventsForTrip(r.Context(), tripID, start, end)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"data": events, "degraded": degraded})
}
