package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/repo"
)

func TestGeocodeCacheRepo_GetMiss(t *testing.T) {
	r := repo.NewGeocodeCacheRepo(newTestTx(t))

	_, err := r.Get(context.Background(), "Nowhere, KS")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGeocodeCacheRepo_PutThenGet(t *testing.T) {
	r := repo.NewGeocodeCacheRepo(newTestTx(t))
	ctx := context.Background()

	result := domain.GeocodeResult{
		Latitude:  39.7392,
		Longitude: -104.9903,
		Formatted: "Denver, CO, United States",
		Name:      "Denver",
	}
	require.NoError(t, r.Put(ctx, "Denver, CO", result))

	got, err := r.Get(ctx, "Denver, CO")
	require.NoError(t, err)
	assert.InDelta(t, result.Latitude, got.Latitude, 1e-7)
	assert.InDelta(t, result.Longitude, got.Longitude, 1e-7)
	assert.Equal(t, result.Formatted, got.Formatted)
	assert.Equal(t, result.Name, got.Name)
}

func TestGeocodeCacheRepo_PutOverwrites(t *testing.T) {
	r := repo.NewGeocodeCacheRepo(newTestTx(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "Springfield", domain.GeocodeResult{Latitude: 1, Longitude: 1, Formatted: "Springfield, IL"}))
	require.NoError(t, r.Put(ctx, "Springfield", domain.GeocodeResult{Latitude: 2, Longitude: 2, Formatted: "Springfield, MO"}))

	got, err := r.Get(ctx, "Springfield")
	require.NoError(t, err)
	assert.Equal(t, "Springfield, MO", got.Formatted)
	assert.InDelta(t, 2.0, got.Latitude, 1e-7)
}
