package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadtrip-planner/internal/domain"
)

func tripFixture() domain.Trip {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	return domain.Trip{
		ID:          uuid.New(),
		Name:        "Summer Coast Run",
		Description: "down the 101",
		StartDate:   &start,
		EndDate:     &end,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
}

func doJSON(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := newHTTPHandler(nil, nil, nil, nil)

	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreateTrip_Created(t *testing.T) {
	stored := tripFixture()
	h := newHTTPHandler(&mockTripServicer{
		create: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			assert.Equal(t, "Summer Coast Run", trip.Name)
			require.NotNil(t, trip.StartDate)
			assert.Equal(t, 2026, trip.StartDate.Year())
			return stored, nil
		},
	}, nil, nil, nil)

	rec := doJSON(t, h, http.MethodPost, "/trips", map[string]any{
		"name":       "Summer Coast Run",
		"start_date": "2026-06-01",
		"end_date":   "2026-06-15",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var got domain.Trip
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, stored.ID, got.ID)
}

func TestCreateTrip_ValidationError(t *testing.T) {
	h := newHTTPHandler(&mockTripServicer{
		create: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, domain.NewValidationError("name", "name is required")
		},
	}, nil, nil, nil)

	rec := doJSON(t, h, http.MethodPost, "/trips", map[string]any{"name": ""})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Error struct {
			Code   string            `json:"code"`
			Fields map[string]string `json:"fields"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Contains(t, resp.Error.Fields, "name")
}

func TestCreateTrip_MalformedDate(t *testing.T) {
	h := newHTTPHandler(&mockTripServicer{}, nil, nil, nil)

	rec := doJSON(t, h, http.MethodPost, "/trips", map[string]any{
		"name":       "Trip",
		"start_date": "06/01/2026",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTrip_DetailOK(t *testing.T) {
	trip := tripFixture()
	detail := domain.TripDetail{
		Trip:         trip,
		Destinations: []domain.Destination{{ID: uuid.New(), TripID: trip.ID, Name: "Monterey"}},
		Segments:     []domain.SegmentDetail{},
	}
	h := newHTTPHandler(&mockTripServicer{
		getDetail: func(_ context.Context, id uuid.UUID) (domain.TripDetail, error) {
			assert.Equal(t, trip.ID, id)
			return detail, nil
		},
	}, nil, nil, nil)

	rec := doJSON(t, h, http.MethodGet, "/trips/"+trip.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, trip.ID.String(), got["id"])
	assert.NotNil(t, got["destinations"])
	assert.NotNil(t, got["route_segments"])
}

func TestGetTrip_NotFound(t *testing.T) {
	h := newHTTPHandler(&mockTripServicer{
		getDetail: func(_ context.Context, id uuid.UUID) (domain.TripDetail, error) {
			return domain.TripDetail{}, domain.ErrNotFound
		},
	}, nil, nil, nil)

	rec := doJSON(t, h, http.MethodGet, "/trips/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTrip_BadID(t *testing.T) {
	h := newHTTPHandler(&mockTripServicer{}, nil, nil, nil)

	rec := doJSON(t, h, http.MethodGet, "/trips/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTrips_Pagination(t *testing.T) {
	h := newHTTPHandler(&mockTripServicer{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int, error) {
			assert.Equal(t, 2, p.Page)
			assert.Equal(t, 5, p.Limit)
			return []domain.Trip{tripFixture()}, 11, nil
		},
	}, nil, nil, nil)

	rec := doJSON(t, h, http.MethodGet, "/trips?page=2&limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data       []domain.Trip `json:"data"`
		Pagination struct {
			Page  int `json:"page"`
			Limit int `json:"limit"`
			Total int `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 11, resp.Pagination.Total)
}

func TestUpdateTrip_OK(t *testing.T) {
	trip := tripFixture()
	h := newHTTPHandler(&mockTripServicer{
		update: func(_ context.Context, got domain.Trip) (domain.Trip, error) {
			assert.Equal(t, trip.ID, got.ID)
			assert.Equal(t, "Renamed", got.Name)
			return got, nil
		},
	}, nil, nil, nil)

	rec := doJSON(t, h, http.MethodPut, "/trips/"+trip.ID.String(), map[string]any{"name": "Renamed"})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteTrip_NoContent(t *testing.T) {
	h := newHTTPHandler(&mockTripServicer{
		delete: func(_ context.Context, id uuid.UUID) error { return nil },
	}, nil, nil, nil)

	rec := doJSON(t, h, http.MethodDelete, "/trips/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteTrip_NotFound(t *testing.T) {
	h := newHTTPHandler(&mockTripServicer{
		delete: func(_ context.Context, id uuid.UUID) error { return domain.ErrNotFound },
	}, nil, nil, nil)

	rec := doJSON(t, h, http.MethodDelete, "/trips/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCalculateRoute_OK(t *testing.T) {
	trip := tripFixture()
	h := newHTTPHandler(nil, nil, &mockRouteServicer{
		recalculate: func(_ context.Context, tripID uuid.UUID) (domain.TripRoute, error) {
			return domain.TripRoute{
				Trip:     trip,
				Segments: []domain.RouteSegment{{ID: uuid.New(), TripID: trip.ID, Estimated: true}},
				Skipped:  []domain.SkippedPair{},
				Degraded: true,
			}, nil
		},
	}, nil)

	rec := doJSON(t, h, http.MethodPost, "/trips/"+trip.ID.String()+"/calculate-route", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["degraded"])
	assert.NotNil(t, resp["route_segments"])
}

func TestCalculateRoute_PreconditionConflict(t *testing.T) {
	h := newHTTPHandler(nil, nil, &mockRouteServicer{
		recalculate: func(_ context.Context, tripID uuid.UUID) (domain.TripRoute, error) {
			return domain.TripRoute{}, domain.ErrPrecondition
		},
	}, nil)

	rec := doJSON(t, h, http.MethodPost, "/trips/"+uuid.NewString()+"/calculate-route", nil)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetTripRoute_OK(t *testing.T) {
	trip := tripFixture()
	h := newHTTPHandler(nil, nil, &mockRouteServicer{
		getRoute: func(_ context.Context, tripID uuid.UUID) (domain.TripRoute, error) {
			return domain.TripRoute{Trip: trip, Segments: []domain.RouteSegment{}, Skipped: []domain.SkippedPair{}}, nil
		},
	}, nil)

	rec := doJSON(t, h, http.MethodGet, "/trips/"+trip.ID.String()+"/route", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
