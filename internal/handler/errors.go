package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/provider/geoapify"
)

// errorResponse is the JSON envelope for every non-2xx response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// writeJSON serializes v with a JSON content type. Encoding failures are
// logged but not surfaced; by then the status line is already written.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "error", err)
	}
}

// respondError maps a service error onto the HTTP surface:
//
//	domain.ErrValidation   → 422 with per-field messages
//	domain.ErrNotFound     → 404
//	domain.ErrPrecondition → 409
//	geoapify.ErrUnavailable → 502
//	anything else          → 500 (detail only included when DebugErrors is on)
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: errorDetail{
			Code:    "validation_error",
			Message: "validation failed",
			Fields:  verr.Fields,
		}})
	case errors.Is(err, domain.ErrValidation):
		s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: errorDetail{
			Code:    "validation_error",
			Message: err.Error(),
		}})
	case errors.Is(err, domain.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: errorDetail{
			Code:    "not_found",
			Message: "resource not found",
		}})
	case errors.Is(err, domain.ErrPrecondition):
		s.writeJSON(w, http.StatusConflict, errorResponse{Error: errorDetail{
			Code:    "precondition_failed",
			Message: "trip needs at least two destinations",
		}})
	case errors.Is(err, geoapify.ErrUnavailable):
		s.writeJSON(w, http.StatusBadGateway, errorResponse{Error: errorDetail{
			Code:    "provider_unavailable",
			Message: "geocoding provider unavailable",
		}})
	default:
		s.log.LogAttrs(r.Context(), slog.LevelError, "internal error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		msg := "internal server error"
		if s.debugErrors {
			msg = err.Error()
		}
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: errorDetail{
			Code:    "internal_error",
			Message: msg,
		}})
	}
}

// badRequest rejects a request before it reaches the service layer, e.g. a
// malformed body or an unparseable path parameter.
func (s *Server) badRequest(w http.ResponseWriter, message string) {
	s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorDetail{
		Code:    "bad_request",
		Message: message,
	}})
}
