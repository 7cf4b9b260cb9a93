package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"roadtrip-planner/internal/domain"
)

// GeocodeCacheRepo persists resolved addresses so repeated geocode requests
// do not burn provider quota. The cache key is the normalized address text.
type GeocodeCacheRepo interface {
	// Get returns the cached result for an address.
	// Returns domain.ErrNotFound on a cache miss.
	Get(ctx context.Context, address string) (domain.GeocodeResult, error)

	// Put stores a result for an address, overwriting any previous entry.
	Put(ctx context.Context, address string, result domain.GeocodeResult) error
}

// pgGeocodeCacheRepo is the Postgres implementation of GeocodeCacheRepo.
type pgGeocodeCacheRepo struct {
	db db
}

// NewGeocodeCacheRepo constructs a GeocodeCacheRepo backed by the provided db connection.
func NewGeocodeCacheRepo(db db) GeocodeCacheRepo {
	return &pgGeocodeCacheRepo{db: db}
}

func (r *pgGeocodeCacheRepo) Get(ctx context.Context, address string) (domain.GeocodeResult, error) {
	const q = `
		SELECT latitude, longitude, formatted, name
		FROM geocode_cache
		WHERE address = @address`

	var result domain.GeocodeResult
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"address": address}).
		Scan(&result.Latitude, &result.Longitude, &result.Formatted, &result.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.GeocodeResult{}, domain.ErrNotFound
		}
		return domain.GeocodeResult{}, fmt.Errorf("repo.GeocodeCacheRepo.Get: %w", err)
	}
	return result, nil
}

func (r *pgGeocodeCacheRepo) Put(ctx context.Context, address string, result domain.GeocodeResult) error {
	const q = `
		INSERT INTO geocode_cache (address, latitude, longitude, formatted, name)
		VALUES (@address, @latitude, @longitude, @formatted, @name)
		ON CONFLICT (address) DO UPDATE
		SET latitude = excluded.latitude,
		    longitude = excluded.longitude,
		    formatted = excluded.formatted,
		    name = excluded.name`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"address":   address,
		"latitude":  result.Latitude,
		"longitude": result.Longitude,
		"formatted": result.Formatted,
		"name":      result.Name,
	})
	if err != nil {
		return fmt.Errorf("repo.GeocodeCacheRepo.Put: %w", err)
	}
	return nil
}
