// Package geo provides the pure geodesy helpers used by the route and places
// services: great-circle distance, crude duration and fuel estimates, and the
// midpoint geometry the places provider centers its searches on.
package geo

import (
	"math"

	"roadtrip-planner/internal/domain"
)

const (
	// EarthRadiusKm is the mean Earth radius used by the Haversine formula.
	EarthRadiusKm = 6371.0

	// DefaultSpeedKmh is the assumed average speed for fallback duration
	// estimates. At 60 km/h the estimate degenerates to distance*60 seconds.
	DefaultSpeedKmh = 60.0

	// DefaultFuelEfficiency is the assumed vehicle consumption in L/100km.
	DefaultFuelEfficiency = 8.0
)

// Distance returns the great-circle distance between two coordinates in
// kilometres, computed with the Haversine formula. Symmetric, and exactly
// zero for identical points.
func Distance(a, b domain.Coordinates) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// EstimateDuration returns the estimated travel time in seconds for a
// distance in kilometres at the given average speed. This is a deliberately
// crude flat-speed model used only when the routing provider is unavailable.
func EstimateDuration(distanceKm, speedKmh float64) int {
	if speedKmh <= 0 {
		speedKmh = DefaultSpeedKmh
	}
	return int(math.Round(distanceKm / speedKmh * 3600))
}

// FuelConsumption returns the estimated fuel use in litres for a distance in
// kilometres at the given efficiency in L/100km.
func FuelConsumption(distanceKm, lPer100km float64) float64 {
	return distanceKm * lPer100km / 100
}

// Midpoint returns the componentwise arithmetic midpoint of two coordinates.
// Linear, not geodesic: fine for centering a search radius over short to
// moderate distances, wrong near the antimeridian.
func Midpoint(a, b domain.Coordinates) domain.Coordinates {
	return Intermediate(a, b, 0.5)
}

// Intermediate returns the point a fraction of the way from a to b,
// interpolating latitude and longitude independently.
func Intermediate(a, b domain.Coordinates, fraction float64) domain.Coordinates {
	return domain.Coordinates{
		Lat: a.Lat + (b.Lat-a.Lat)*fraction,
		Lng: a.Lng + (b.Lng-a.Lng)*fraction,
	}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
