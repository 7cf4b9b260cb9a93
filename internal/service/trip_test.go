package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/service"
)

func validTrip() domain.Trip {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)
	return domain.Trip{
		Name:        "Pacific Coast Highway",
		Description: "San Francisco to San Diego",
		StartDate:   &start,
		EndDate:     &end,
	}
}

// ---- Create ----------------------------------------------------------------

func TestTripService_Create_OK(t *testing.T) {
	input := validTrip()
	stored := input
	stored.ID = uuid.New()

	svc := service.NewTripService(&mockTripRepo{
		create: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			assert.Equal(t, input.Name, trip.Name)
			return stored, nil
		},
	}, nil, nil, nil)

	got, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
}

func TestTripService_Create_EmptyName(t *testing.T) {
	input := validTrip()
	input.Name = "   "

	svc := service.NewTripService(&mockTripRepo{}, nil, nil, nil)

	_, err := svc.Create(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
}

func TestTripService_Create_EndBeforeStart(t *testing.T) {
	input := validTrip()
	end := input.StartDate.AddDate(0, 0, -1)
	input.EndDate = &end

	svc := service.NewTripService(&mockTripRepo{}, nil, nil, nil)

	_, err := svc.Create(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "end_date")
}

func TestTripService_Create_DatesOptional(t *testing.T) {
	input := validTrip()
	input.StartDate = nil
	input.EndDate = nil

	svc := service.NewTripService(&mockTripRepo{
		create: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			return trip, nil
		},
	}, nil, nil, nil)

	_, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
}

// ---- GetDetail -------------------------------------------------------------

func TestTripService_GetDetail_AssemblesAggregate(t *testing.T) {
	tripID := uuid.New()
	destA := domain.Destination{ID: uuid.New(), TripID: tripID, Name: "Monterey", Position: 0}
	destB := domain.Destination{ID: uuid.New(), TripID: tripID, Name: "Big Sur", Position: 1}
	seg := domain.RouteSegment{ID: uuid.New(), TripID: tripID, OriginID: destA.ID, DestinationID: destB.ID}
	poi := domain.PointOfInterest{ID: uuid.New(), RouteSegmentID: seg.ID, Name: "Bixby Bridge"}

	svc := service.NewTripService(
		foundTrip(),
		&mockDestinationRepo{
			listByTripID: func(_ context.Context, id uuid.UUID) ([]domain.Destination, error) {
				return []domain.Destination{destA, destB}, nil
			},
		},
		&mockSegmentRepo{
			listByTripID: func(_ context.Context, id uuid.UUID) ([]domain.RouteSegment, error) {
				return []domain.RouteSegment{seg}, nil
			},
		},
		&mockPOIRepo{
			listByTripID: func(_ context.Context, id uuid.UUID) ([]domain.PointOfInterest, error) {
				return []domain.PointOfInterest{poi}, nil
			},
		},
	)

	detail, err := svc.GetDetail(context.Background(), tripID)
	require.NoError(t, err)

	assert.Len(t, detail.Destinations, 2)
	require.Len(t, detail.Segments, 1)
	assert.Equal(t, destA.ID, detail.Segments[0].Origin.ID)
	assert.Equal(t, destB.ID, detail.Segments[0].Destination.ID)
	require.Len(t, detail.Segments[0].PointsOfInterest, 1)
	assert.Equal(t, "Bixby Bridge", detail.Segments[0].PointsOfInterest[0].Name)
}

func TestTripService_GetDetail_TripNotFound(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}, nil, nil, nil)

	_, err := svc.GetDetail(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- ListPaged -------------------------------------------------------------

func TestTripService_ListPaged_NilBecomesEmpty(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int, error) {
			return nil, 0, nil
		},
	}, nil, nil, nil)

	trips, total, err := svc.ListPaged(context.Background(), domain.PaginationParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.NotNil(t, trips)
	assert.Empty(t, trips)
	assert.Zero(t, total)
}

// ---- Update ----------------------------------------------------------------

func TestTripService_Update_PropagatesNotFound(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{
		update: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}, nil, nil, nil)

	input := validTrip()
	input.ID = uuid.New()
	_, err := svc.Update(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_Update_Validates(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{}, nil, nil, nil)

	input := validTrip()
	input.Name = ""
	_, err := svc.Update(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrValidation)
}

// ---- Delete ----------------------------------------------------------------

func TestTripService_Delete_WrapsRepoError(t *testing.T) {
	boom := errors.New("connection reset")
	svc := service.NewTripService(&mockTripRepo{
		delete: func(_ context.Context, id uuid.UUID) error { return boom },
	}, nil, nil, nil)

	err := svc.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, boom)
}
