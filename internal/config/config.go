// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// ORSAPIKey authenticates against the OpenRouteService directions API.
	// An empty key is a valid, handled condition: every route falls back to
	// the great-circle estimate instead of failing at startup.
	ORSAPIKey string

	// GeoapifyAPIKey authenticates against the Geoapify places/geocoding API.
	// Empty is handled the same way: place lookups degrade, geocoding
	// reports the service as unavailable.
	GeoapifyAPIKey string

	// ProviderTimeout bounds every outbound provider call. Single attempt,
	// no retries: the fallback path is the resilience mechanism.
	// Defaults to 10s. Set PROVIDER_TIMEOUT to a Go duration to override.
	ProviderTimeout time.Duration

	// FallbackSpeedKmh is the assumed average speed for fallback duration
	// estimates. Defaults to 60.
	FallbackSpeedKmh float64

	// FuelEfficiency is the assumed vehicle consumption in L/100km used for
	// the trip fuel estimate. Defaults to 8.0.
	FuelEfficiency float64

	// DebugErrors, when true, includes internal error detail in 500 response
	// bodies. Keep false in production.
	DebugErrors bool
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		CORSOrigins:      splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		ORSAPIKey:        os.Getenv("ORS_API_KEY"),
		GeoapifyAPIKey:   os.Getenv("GEOAPIFY_API_KEY"),
		ProviderTimeout:  getDuration("PROVIDER_TIMEOUT", 10*time.Second),
		FallbackSpeedKmh: getFloat("FALLBACK_SPEED_KMH", 60),
		FuelEfficiency:   getFloat("FUEL_EFFICIENCY_L_PER_100KM", 8.0),
		DebugErrors:      getEnv("DEBUG_ERRORS", "false") == "true",
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration parses the named variable as a Go duration, falling back on
// absence or parse failure.
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// getFloat parses the named variable as a float, falling back on absence or
// parse failure. Non-positive values also fall back: every float setting in
// this config is a physical quantity that must be > 0.
func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
