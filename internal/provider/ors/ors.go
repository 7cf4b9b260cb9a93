// Package ors wraps the OpenRouteService directions API.
//
// The adapter never fails a route request outright: a missing API key, a
// non-success response, an empty result set, or a transport error all fall
// back to a great-circle estimate. Callers distinguish the two cases through
// RouteData.Estimated (and the nil Polyline that comes with it).
package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/geo"
)

// DefaultBaseURL is the production OpenRouteService endpoint.
const DefaultBaseURL = "https://api.openrouteservice.org"

// RouteData is the outcome of a single route lookup.
type RouteData struct {
	// DistanceKm is the route length in kilometres.
	DistanceKm float64
	// DurationSeconds is the travel time rounded to the nearest whole second.
	DurationSeconds int
	// Polyline is the provider's geometry re-serialized opaquely.
	// Nil when the route is an estimate.
	Polyline *string
	// Estimated marks a great-circle fallback instead of a real route.
	Estimated bool
}

// Client calls the OpenRouteService directions endpoint.
// Construct with New; the zero value falls back on every request.
type Client struct {
	// BaseURL may be overridden in tests. Defaults to DefaultBaseURL.
	BaseURL string

	apiKey     string
	httpClient *http.Client
	speedKmh   float64
	log        *slog.Logger
}

// New builds a Client. An empty apiKey is valid: every request then takes the
// fallback path. timeout bounds each call (single attempt, no retries);
// speedKmh feeds the fallback duration estimate.
func New(apiKey string, timeout time.Duration, speedKmh float64, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		BaseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		speedKmh:   speedKmh,
		log:        log,
	}
}

type directionsRequest struct {
	Coordinates [][2]float64 `json:"coordinates"`
	Format      string       `json:"format"`
}

type directionsResponse struct {
	Features []struct {
		Properties struct {
			Segments []struct {
				Distance float64 `json:"distance"` // metres
				Duration float64 `json:"duration"` // seconds
			} `json:"segments"`
		} `json:"properties"`
		Geometry json.RawMessage `json:"geometry"`
	} `json:"features"`
}

// RouteBetween returns route data for the ordered origin/destination pair.
// Provider failures are absorbed into the great-circle fallback; the only
// error returned is a cancelled or expired caller context, so that route
// recalculation can stop early instead of estimating every remaining leg.
func (c *Client) RouteBetween(ctx context.Context, origin, destination domain.Coordinates) (RouteData, error) {
	if c.apiKey == "" {
		c.log.Warn("ors: missing API key, using direct distance estimate")
		return c.estimate(origin, destination), nil
	}

	data, err := c.fetchRoute(ctx, origin, destination)
	if err != nil {
		if ctx.Err() != nil {
			return RouteData{}, ctx.Err()
		}
		c.log.Error("ors: directions request failed, using direct distance estimate",
			"error", err,
			"origin", origin,
			"destination", destination,
		)
		return c.estimate(origin, destination), nil
	}
	return data, nil
}

func (c *Client) fetchRoute(ctx context.Context, origin, destination domain.Coordinates) (RouteData, error) {
	body := directionsRequest{
		// The provider expects longitude-first pairs.
		Coordinates: [][2]float64{origin.LngLat(), destination.LngLat()},
		Format:      "geojson",
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return RouteData{}, fmt.Errorf("marshal directions request: %w", err)
	}

	endpoint := c.BaseURL + "/v2/directions/driving-car"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return RouteData{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json, application/geo+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return RouteData{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return RouteData{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return RouteData{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(decoded.Features) == 0 || len(decoded.Features[0].Properties.Segments) == 0 {
		return RouteData{}, fmt.Errorf("empty directions result")
	}

	feature := decoded.Features[0]
	segment := feature.Properties.Segments[0]

	polyline := string(feature.Geometry)
	return RouteData{
		DistanceKm:      segment.Distance / 1000,
		DurationSeconds: int(math.Round(segment.Duration)),
		Polyline:        &polyline,
	}, nil
}

// estimate builds the great-circle fallback: Haversine distance and a flat
// average-speed duration, with no geometry.
func (c *Client) estimate(origin, destination domain.Coordinates) RouteData {
	distance := geo.Distance(origin, destination)
	return RouteData{
		DistanceKm:      distance,
		DurationSeconds: geo.EstimateDuration(distance, c.speedKmh),
		Polyline:        nil,
		Estimated:       true,
	}
}
