package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"roadtrip-planner/internal/domain"
)

// SegmentRepo defines the persistence operations for RouteSegments.
// Segments are derived data: the only write path is ReplaceTripRoute, which
// swaps a trip's entire segment set and its totals in one transaction.
type SegmentRepo interface {
	// GetByID retrieves a single segment by its UUID.
	// Returns domain.ErrNotFound if no segment with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.RouteSegment, error)

	// ListByTripID returns all segments for a trip in insertion order.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.RouteSegment, error)

	// ReplaceTripRoute atomically deletes the trip's existing segments,
	// inserts the given ones, and writes the trip's totals. Readers never
	// observe a trip with zero segments mid-recalculation.
	// Returns the inserted segments and the updated trip.
	ReplaceTripRoute(ctx context.Context, tripID uuid.UUID, segments []domain.RouteSegment,
		totalDistance float64, totalDuration int, fuelConsumption float64) ([]domain.RouteSegment, domain.Trip, error)
}

// pgSegmentRepo is the Postgres implementation of SegmentRepo.
type pgSegmentRepo struct {
	db txdb
}

// NewSegmentRepo constructs a SegmentRepo backed by the provided connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx.
func NewSegmentRepo(db txdb) SegmentRepo {
	return &pgSegmentRepo{db: db}
}

const segmentColumns = `id, trip_id, origin_id, destination_id, distance, duration, polyline, estimated, created_at`

func (r *pgSegmentRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.RouteSegment, error) {
	const q = `SELECT ` + segmentColumns + ` FROM route_segments WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanSegment(row)
	if err != nil {
		return domain.RouteSegment{}, fmt.Errorf("repo.SegmentRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgSegmentRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.RouteSegment, error) {
	const q = `
		SELECT ` + segmentColumns + `
		FROM route_segments
		WHERE trip_id = @trip_id
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.SegmentRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var segments []domain.RouteSegment
	for rows.Next() {
		s, err := scanSegment(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.SegmentRepo.ListByTripID: scan: %w", err)
		}
		segments = append(segments, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SegmentRepo.ListByTripID: rows: %w", err)
	}

	return segments, nil
}

func (r *pgSegmentRepo) ReplaceTripRoute(ctx context.Context, tripID uuid.UUID, segments []domain.RouteSegment,
	totalDistance float64, totalDuration int, fuelConsumption float64) ([]domain.RouteSegment, domain.Trip, error) {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, domain.Trip{}, fmt.Errorf("repo.SegmentRepo.ReplaceTripRoute: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const del = `DELETE FROM route_segments WHERE trip_id = @trip_id`
	if _, err := tx.Exec(ctx, del, pgx.NamedArgs{"trip_id": tripID}); err != nil {
		return nil, domain.Trip{}, fmt.Errorf("repo.SegmentRepo.ReplaceTripRoute: delete: %w", err)
	}

	const ins = `
		INSERT INTO route_segments (trip_id, origin_id, destination_id, distance, duration, polyline, estimated)
		VALUES (@trip_id, @origin_id, @destination_id, @distance, @duration, @polyline, @estimated)
		RETURNING ` + segmentColumns

	inserted := make([]domain.RouteSegment, 0, len(segments))
	for _, seg := range segments {
		row := tx.QueryRow(ctx, ins, pgx.NamedArgs{
			"trip_id":        tripID,
			"origin_id":      seg.OriginID,
			"destination_id": seg.DestinationID,
			"distance":       seg.Distance,
			"duration":       seg.Duration,
			"polyline":       seg.Polyline, // nil becomes NULL
			"estimated":      seg.Estimated,
		})
		s, err := scanSegment(row)
		if err != nil {
			return nil, domain.Trip{}, fmt.Errorf("repo.SegmentRepo.ReplaceTripRoute: insert: %w", err)
		}
		inserted = append(inserted, s)
	}

	const upd = `
		UPDATE trips
		SET total_distance   = @total_distance,
		    total_duration   = @total_duration,
		    fuel_consumption = @fuel_consumption,
		    updated_at       = now()
		WHERE id = @trip_id
		RETURNING ` + tripColumns

	row := tx.QueryRow(ctx, upd, pgx.NamedArgs{
		"trip_id":          tripID,
		"total_distance":   totalDistance,
		"total_duration":   totalDuration,
		"fuel_consumption": fuelConsumption,
	})
	trip, err := scanTrip(row)
	if err != nil {
		return nil, domain.Trip{}, fmt.Errorf("repo.SegmentRepo.ReplaceTripRoute: totals: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.Trip{}, fmt.Errorf("repo.SegmentRepo.ReplaceTripRoute: commit: %w", err)
	}
	return inserted, trip, nil
}

// scanSegment maps a single database row into a domain.RouteSegment.
func scanSegment(s scanner) (domain.RouteSegment, error) {
	var (
		seg      domain.RouteSegment
		id       pgtype.UUID
		tripID   pgtype.UUID
		originID pgtype.UUID
		destID   pgtype.UUID
		polyline pgtype.Text
	)

	err := s.Scan(&id, &tripID, &originID, &destID,
		&seg.Distance, &seg.Duration, &polyline, &seg.Estimated, &seg.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RouteSegment{}, domain.ErrNotFound
		}
		return domain.RouteSegment{}, err
	}

	seg.ID = uuid.UUID(id.Bytes)
	seg.TripID = uuid.UUID(tripID.Bytes)
	seg.OriginID = uuid.UUID(originID.Bytes)
	seg.DestinationID = uuid.UUID(destID.Bytes)
	if polyline.Valid {
		p := polyline.String
		seg.Polyline = &p
	}

	return seg, nil
}
