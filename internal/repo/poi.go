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

// POIRepo defines the persistence operations for PointsOfInterest.
// POIs are written in batches whenever a segment's places are (re)discovered.
type POIRepo interface {
	// CreateBatch inserts the given POIs and returns the persisted records.
	CreateBatch(ctx context.Context, pois []domain.PointOfInterest) ([]domain.PointOfInterest, error)

	// ListBySegmentID returns all POIs attached to a route segment.
	ListBySegmentID(ctx context.Context, segmentID uuid.UUID) ([]domain.PointOfInterest, error)

	// ListByTripID returns all POIs attached to any of a trip's segments.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.PointOfInterest, error)

	// DeleteBySegmentID removes all POIs attached to a route segment.
	DeleteBySegmentID(ctx context.Context, segmentID uuid.UUID) error
}

// pgPOIRepo is the Postgres implementation of POIRepo.
type pgPOIRepo struct {
	db db
}

// NewPOIRepo constructs a POIRepo backed by the provided db connection.
func NewPOIRepo(db db) POIRepo {
	return &pgPOIRepo{db: db}
}

const poiColumns = `id, route_segment_id, name, category, latitude, longitude, description, image_url, created_at`

func (r *pgPOIRepo) CreateBatch(ctx context.Context, pois []domain.PointOfInterest) ([]domain.PointOfInterest, error) {
	const q = `
		INSERT INTO points_of_interest (route_segment_id, name, category, latitude, longitude, description, image_url)
		VALUES (@route_segment_id, @name, @category, @latitude, @longitude, @description, @image_url)
		RETURNING ` + poiColumns

	inserted := make([]domain.PointOfInterest, 0, len(pois))
	for _, p := range pois {
		row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
			"route_segment_id": p.RouteSegmentID,
			"name":             p.Name,
			"category":         p.Category,
			"latitude":         p.Latitude,
			"longitude":        p.Longitude,
			"description":      p.Description,
			"image_url":        p.ImageURL,
		})
		created, err := scanPOI(row)
		if err != nil {
			return nil, fmt.Errorf("repo.POIRepo.CreateBatch: %w", err)
		}
		inserted = append(inserted, created)
	}
	return inserted, nil
}

func (r *pgPOIRepo) ListBySegmentID(ctx context.Context, segmentID uuid.UUID) ([]domain.PointOfInterest, error) {
	const q = `
		SELECT ` + poiColumns + `
		FROM points_of_interest
		WHERE route_segment_id = @segment_id
		ORDER BY created_at, id`

	return r.list(ctx, q, pgx.NamedArgs{"segment_id": segmentID}, "ListBySegmentID")
}

func (r *pgPOIRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.PointOfInterest, error) {
	const q = `
		SELECT p.id, p.route_segment_id, p.name, p.category, p.latitude, p.longitude,
		       p.description, p.image_url, p.created_at
		FROM points_of_interest p
		JOIN route_segments s ON s.id = p.route_segment_id
		WHERE s.trip_id = @trip_id
		ORDER BY p.created_at, p.id`

	return r.list(ctx, q, pgx.NamedArgs{"trip_id": tripID}, "ListByTripID")
}

func (r *pgPOIRepo) DeleteBySegmentID(ctx context.Context, segmentID uuid.UUID) error {
	const q = `DELETE FROM points_of_interest WHERE route_segment_id = @segment_id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"segment_id": segmentID}); err != nil {
		return fmt.Errorf("repo.POIRepo.DeleteBySegmentID: %w", err)
	}
	return nil
}

func (r *pgPOIRepo) list(ctx context.Context, q string, args pgx.NamedArgs, op string) ([]domain.PointOfInterest, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.POIRepo.%s: %w", op, err)
	}
	defer rows.Close()

	var pois []domain.PointOfInterest
	for rows.Next() {
		p, err := scanPOI(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.POIRepo.%s: scan: %w", op, err)
		}
		pois = append(pois, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.POIRepo.%s: rows: %w", op, err)
	}

	return pois, nil
}

// scanPOI maps a single database row into a domain.PointOfInterest.
func scanPOI(s scanner) (domain.PointOfInterest, error) {
	var (
		p         domain.PointOfInterest
		id        pgtype.UUID
		segmentID pgtype.UUID
		imageURL  pgtype.Text
	)

	err := s.Scan(&id, &segmentID, &p.Name, &p.Category,
		&p.Latitude, &p.Longitude, &p.Description, &imageURL, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PointOfInterest{}, domain.ErrNotFound
		}
		return domain.PointOfInterest{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.RouteSegmentID = uuid.UUID(segmentID.Bytes)
	if imageURL.Valid {
		u := imageURL.String
		p.ImageURL = &u
	}

	return p, nil
}
