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

// DestinationRepo defines the persistence operations for Destinations.
// Mutations that touch the position sequence (delete, reorder) run in a
// transaction so the 0..N-1 contiguity invariant never leaks mid-write.
type DestinationRepo interface {
	// Create inserts a new destination and returns the persisted record.
	Create(ctx context.Context, dest domain.Destination) (domain.Destination, error)

	// GetByID retrieves a single destination by its UUID.
	// Returns domain.ErrNotFound if no destination with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error)

	// ListByTripID returns all destinations for a trip ordered by position.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error)

	// NextPosition returns the position a newly appended destination should
	// take: max(position)+1, or 0 for a trip with no destinations.
	NextPosition(ctx context.Context, tripID uuid.UUID) (int, error)

	// Update overwrites the mutable fields of a destination and returns the
	// updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, dest domain.Destination) (domain.Destination, error)

	// Delete removes a destination and decrements the position of every
	// destination in the same trip with a strictly greater position,
	// restoring 0..N-1 contiguity. Atomic.
	// Returns domain.ErrNotFound if the destination does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdatePositions bulk-overwrites positions for the given destinations,
	// scoped to tripID, in one transaction. Entries referencing destinations
	// outside the trip are not updated; the count of updated rows is
	// returned so the caller can detect a partial match.
	UpdatePositions(ctx context.Context, tripID uuid.UUID, updates []domain.PositionUpdate) (int, error)
}

// pgDestinationRepo is the Postgres implementation of DestinationRepo.
type pgDestinationRepo struct {
	db txdb
}

// NewDestinationRepo constructs a DestinationRepo backed by the provided
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx
// (position mutations then nest via savepoints).
func NewDestinationRepo(db txdb) DestinationRepo {
	return &pgDestinationRepo{db: db}
}

const destinationColumns = `id, trip_id, name, latitude, longitude, address, position, created_at, updated_at`

func (r *pgDestinationRepo) Create(ctx context.Context, dest domain.Destination) (domain.Destination, error) {
	const q = `
		INSERT INTO destinations (trip_id, name, latitude, longitude, address, position)
		VALUES (@trip_id, @name, @latitude, @longitude, @address, @position)
		RETURNING ` + destinationColumns

	args := pgx.NamedArgs{
		"trip_id":   dest.TripID,
		"name":      dest.Name,
		"latitude":  dest.Latitude,
		"longitude": dest.Longitude,
		"address":   dest.Address,
		"position":  dest.Position,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanDestination(row)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	const q = `SELECT ` + destinationColumns + ` FROM destinations WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanDestination(row)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error) {
	const q = `
		SELECT ` + destinationColumns + `
		FROM destinations
		WHERE trip_id = @trip_id
		ORDER BY position`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var dests []domain.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DestinationRepo.ListByTripID: scan: %w", err)
		}
		dests = append(dests, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListByTripID: rows: %w", err)
	}

	return dests, nil
}

func (r *pgDestinationRepo) NextPosition(ctx context.Context, tripID uuid.UUID) (int, error) {
	// coalesce(max+1, 0) puts the first destination at position 0.
	const q = `SELECT coalesce(max(position) + 1, 0) FROM destinations WHERE trip_id = @trip_id`

	var next int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}).Scan(&next); err != nil {
		return 0, fmt.Errorf("repo.DestinationRepo.NextPosition: %w", err)
	}
	return next, nil
}

func (r *pgDestinationRepo) Update(ctx context.Context, dest domain.Destination) (domain.Destination, error) {
	const q = `
		UPDATE destinations
		SET name       = @name,
		    latitude   = @latitude,
		    longitude  = @longitude,
		    address    = @address,
		    position   = @position,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + destinationColumns

	args := pgx.NamedArgs{
		"id":        dest.ID,
		"name":      dest.Name,
		"latitude":  dest.Latitude,
		"longitude": dest.Longitude,
		"address":   dest.Address,
		"position":  dest.Position,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanDestination(row)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.DestinationRepo.Delete: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const del = `
		DELETE FROM destinations
		WHERE id = @id
		RETURNING trip_id, position`

	var (
		tripID   pgtype.UUID
		position int
	)
	if err := tx.QueryRow(ctx, del, pgx.NamedArgs{"id": id}).Scan(&tripID, &position); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("repo.DestinationRepo.Delete: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", err)
	}

	// Close the gap so positions stay contiguous 0..N-1.
	const renumber = `
		UPDATE destinations
		SET position = position - 1, updated_at = now()
		WHERE trip_id = @trip_id AND position > @position`

	if _, err := tx.Exec(ctx, renumber, pgx.NamedArgs{
		"trip_id":  uuid.UUID(tripID.Bytes),
		"position": position,
	}); err != nil {
		return fmt.Errorf("repo.DestinationRepo.Delete: renumber: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.DestinationRepo.Delete: commit: %w", err)
	}
	return nil
}

func (r *pgDestinationRepo) UpdatePositions(ctx context.Context, tripID uuid.UUID, updates []domain.PositionUpdate) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("repo.DestinationRepo.UpdatePositions: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const q = `
		UPDATE destinations
		SET position = @position, updated_at = now()
		WHERE id = @id AND trip_id = @trip_id`

	updated := 0
	for _, u := range updates {
		tag, err := tx.Exec(ctx, q, pgx.NamedArgs{
			"id":       u.ID,
			"trip_id":  tripID,
			"position": u.Position,
		})
		if err != nil {
			return 0, fmt.Errorf("repo.DestinationRepo.UpdatePositions: %w", err)
		}
		updated += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("repo.DestinationRepo.UpdatePositions: commit: %w", err)
	}
	return updated, nil
}

// scanDestination maps a single database row into a domain.Destination.
func scanDestination(s scanner) (domain.Destination, error) {
	var (
		d      domain.Destination
		id     pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &d.Name, &d.Latitude, &d.Longitude,
		&d.Address, &d.Position, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Destination{}, domain.ErrNotFound
		}
		return domain.Destination{}, err
	}

	d.ID = uuid.UUID(id.Bytes)
	d.TripID = uuid.UUID(tripID.Bytes)
	return d, nil
}
