// Package geoapify wraps the Geoapify places and geocoding APIs.
//
// Searches are centered on geometry derived from a segment's two endpoints
// (arithmetic midpoint, or a fractional intermediate point for lodging).
// Place lookups degrade instead of failing: an unreachable provider yields an
// empty or placeholder result set with a degraded flag, never an error.
// Geocoding is the exception and reports the provider as unavailable.
package geoapify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"roadtrip-planner/internal/domain"
)

// DefaultBaseURL is the production Geoapify endpoint.
const DefaultBaseURL = "https://api.geoapify.com"

// ErrUnavailable is returned by Geocode when the provider cannot be reached.
// Handlers should map this to HTTP 503.
var ErrUnavailable = errors.New("geocoding service unavailable")

// Client calls the Geoapify places and geocoding endpoints.
type Client struct {
	// BaseURL may be overridden in tests. Defaults to DefaultBaseURL.
	BaseURL string
	// Rand supplies the bounded randomization used to synthesize missing
	// prices, ratings, and event dates. Tests may inject a seeded source.
	Rand *rand.Rand

	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// New builds a Client. An empty apiKey is valid: place lookups then degrade
// and geocoding reports ErrUnavailable. timeout bounds each call.
func New(apiKey string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		BaseURL:    DefaultBaseURL,
		Rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// categoryMap expands caller-facing generic category names into the
// provider's taxonomy tags. Unknown names pass through unchanged.
var categoryMap = map[string][]string{
	"tourist_attraction": {"tourism.attraction", "tourism.sights"},
	"natural_feature":    {"natural", "natural.water", "leisure.park"},
	"museum":             {"tourism.museum", "tourism.gallery"},
	"restaurant":         {"catering.restaurant", "catering.cafe"},
	"park":               {"leisure.park", "leisure.garden"},
	"entertainment":      {"entertainment", "entertainment.culture"},
}

// MapCategories expands generic category names to provider taxonomy tags.
func MapCategories(categories []string) []string {
	var out []string
	for _, c := range categories {
		if mapped, ok := categoryMap[c]; ok {
			out = append(out, mapped...)
		} else {
			out = append(out, c)
		}
	}
	return out
}

type placeFeature struct {
	Properties struct {
		Name       string   `json:"name"`
		Formatted  string   `json:"formatted"`
		Categories []string `json:"categories"`
		City       string   `json:"city"`
		Image      *string  `json:"image"`
		PriceLevel *int     `json:"price_level"`
		Rating     *float64 `json:"rating"`
	} `json:"properties"`
	Geometry struct {
		Coordinates []float64 `json:"coordinates"` // [lng, lat]
	} `json:"geometry"`
}

type placesResponse struct {
	Features []placeFeature `json:"features"`
}

// searchPlaces issues one circular radius search against /v2/places.
func (c *Client) searchPlaces(ctx context.Context, categories string, center domain.Coordinates, radiusMeters, limit int) ([]placeFeature, error) {
	if c.apiKey == "" {
		return nil, errors.New("missing API key")
	}

	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	q.Set("categories", categories)
	// Geo filter is longitude-first.
	q.Set("filter", fmt.Sprintf("circle:%g,%g,%d", center.Lng, center.Lat, radiusMeters))
	q.Set("limit", strconv.Itoa(limit))

	endpoint := c.BaseURL + "/v2/places?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var decoded placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode places response: %w", err)
	}
	return decoded.Features, nil
}

// latLng extracts the feature's coordinates, which arrive longitude-first.
func (f placeFeature) latLng() (float64, float64) {
	if len(f.Geometry.Coordinates) < 2 {
		return 0, 0
	}
	return f.Geometry.Coordinates[1], f.Geometry.Coordinates[0]
}

// Geocode resolves a free-text address to coordinates via /v1/geocode/search.
// Returns domain.ErrNotFound when no feature matches and ErrUnavailable when
// the provider cannot be reached or the key is missing.
func (c *Client) Geocode(ctx context.Context, address string) (domain.GeocodeResult, error) {
	if c.apiKey == "" {
		return domain.GeocodeResult{}, ErrUnavailable
	}

	q := url.Values{}
	q.Set("text", address)
	q.Set("apiKey", c.apiKey)

	endpoint := c.BaseURL + "/v1/geocode/search?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.GeocodeResult{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var decoded placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if len(decoded.Features) == 0 {
		return domain.GeocodeResult{}, domain.ErrNotFound
	}

	f := decoded.Features[0]
	lat, lng := f.latLng()
	name := f.Properties.Name
	if name == "" {
		name = f.Properties.Formatted
	}
	return domain.GeocodeResult{
		Latitude:  lat,
		Longitude: lng,
		Formatted: f.Properties.Formatted,
		Name:      name,
	}, nil
}
