package geoapify

import (
	"context"
	"strings"
	"time"

	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/geo"
)

const (
	poiResultCap        = 10
	lodgingResultCap    = 5
	lodgingRadiusMeters = 10_000
	eventRadiusMeters   = 25_000

	lodgingCategories = "accommodation.hotel,accommodation.motel"
	eventCategories   = "entertainment,catering.restaurant,tourism.attraction"

	dateLayout = "2006-01-02"
)

// Place is a point-of-interest candidate returned by FindPOIs.
type Place struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// Lodging is an accommodation candidate returned by FindAccommodation.
// Price and Rating may be synthesized when the provider omits them.
type Lodging struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Price     float64 `json:"price"`
	Rating    float64 `json:"rating"`
	Address   string  `json:"address,omitempty"`
	ImageURL  *string `json:"image_url,omitempty"`
}

// Event is an event candidate returned by FindEvents. Dates are synthesized
// from the requested range; Date uses YYYY-MM-DD.
type Event struct {
	Name        string  `json:"name"`
	Venue       string  `json:"venue"`
	Date        string  `json:"date"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// FindPOIs searches for points of interest around the midpoint of the two
// endpoints. Generic category names are expanded to provider taxonomy tags;
// at most ten results are returned. The boolean reports degradation: on any
// provider failure the result is an empty list with degraded=true.
func (c *Client) FindPOIs(ctx context.Context, origin, destination domain.Coordinates, categories []string, radiusMeters int) ([]Place, bool) {
	midpoint := geo.Midpoint(origin, destination)
	tags := strings.Join(MapCategories(categories), ",")

	features, err := c.searchPlaces(ctx, tags, midpoint, radiusMeters, poiResultCap)
	if err != nil {
		c.log.Error("geoapify: POI search failed", "error", err, "categories", tags)
		return []Place{}, true
	}

	places := make([]Place, 0, len(features))
	for _, f := range features {
		lat, lng := f.latLng()
		name := f.Properties.Name
		if name == "" {
			name = f.Properties.Formatted
		}
		category := "tourist_attraction"
		if len(f.Properties.Categories) > 0 {
			category = f.Properties.Categories[0]
		}
		description := f.Properties.Formatted
		places = append(places, Place{
			Name:        name,
			Category:    category,
			Latitude:    lat,
			Longitude:   lng,
			Description: description,
			ImageURL:    f.Properties.Image,
		})
	}
	return places, false
}

// FindAccommodation searches for lodging around the point halfway along the
// path, within a fixed 10 km radius. Results are filtered client-side by
// price (when maxPrice is non-nil) and rating; missing prices and ratings are
// synthesized with bounded randomization. On provider failure a small fixed
// placeholder set is returned with degraded=true, preserving the upstream
// interface contract (see DESIGN.md for the smell).
func (c *Client) FindAccommodation(ctx context.Context, origin, destination domain.Coordinates, maxPrice *float64, minRating float64) ([]Lodging, bool) {
	point := geo.Intermediate(origin, destination, 0.5)

	features, err := c.searchPlaces(ctx, lodgingCategories, point, lodgingRadiusMeters, lodgingResultCap)
	if err != nil {
		c.log.Error("geoapify: accommodation search failed", "error", err)
		return placeholderLodging(point), true
	}

	lodgings := make([]Lodging, 0, len(features))
	for _, f := range features {
		lat, lng := f.latLng()

		priceLevel := c.Rand.Intn(4) + 1
		if f.Properties.PriceLevel != nil {
			priceLevel = *f.Properties.PriceLevel
		}
		price := float64(priceLevel) * 50 // rough per-level estimate

		rating := 3.0 + c.Rand.Float64()*2
		if f.Properties.Rating != nil {
			rating = *f.Properties.Rating
		}

		if maxPrice != nil && price > *maxPrice {
			continue
		}
		if rating < minRating {
			continue
		}

		name := f.Properties.Name
		if name == "" {
			name = "Hotel near " + f.Properties.City
		}
		lodgings = append(lodgings, Lodging{
			Name:      name,
			Latitude:  lat,
			Longitude: lng,
			Price:     price,
			Rating:    rating,
			Address:   f.Properties.Formatted,
			ImageURL:  f.Properties.Image,
		})
	}
	return lodgings, false
}

// FindEvents searches venues around the midpoint within a fixed 25 km radius
// and synthesizes events: every third place becomes an event with a uniformly
// random date inside [startDate, endDate]. On provider failure a small fixed
// placeholder set is returned with degraded=true.
func (c *Client) FindEvents(ctx context.Context, origin, destination domain.Coordinates, startDate, endDate time.Time) ([]Event, bool) {
	midpoint := geo.Midpoint(origin, destination)

	features, err := c.searchPlaces(ctx, eventCategories, midpoint, eventRadiusMeters, poiResultCap)
	if err != nil {
		c.log.Error("geoapify: event search failed", "error", err)
		return placeholderEvents(midpoint, startDate), true
	}

	events := make([]Event, 0, len(features)/3+1)
	for i, f := range features {
		if i%3 != 0 || !startDate.Before(endDate) {
			continue
		}
		lat, lng := f.latLng()
		venue := f.Properties.Name
		if venue == "" {
			venue = "Local Venue"
		}
		events = append(events, Event{
			Name:        "Event at " + venue,
			Venue:       venue,
			Date:        c.randomDate(startDate, endDate).Format(dateLayout),
			Latitude:    lat,
			Longitude:   lng,
			Description: "A local event happening during your trip",
			ImageURL:    f.Properties.Image,
		})
	}
	return events, false
}

// randomDate picks a uniformly random day in [start, end].
func (c *Client) randomDate(start, end time.Time) time.Time {
	window := end.Unix() - start.Unix()
	if window <= 0 {
		return start
	}
	return time.Unix(start.Unix()+c.Rand.Int63n(window+1), 0).UTC()
}

// placeholderLodging is the illustrative fallback set returned when the
// provider cannot be reached, anchored around the search point.
func placeholderLodging(point domain.Coordinates) []Lodging {
	img := "https://via.placeholder.com/150"
	return []Lodging{
		{
			Name:      "Grand Hotel",
			Latitude:  point.Lat + 0.02,
			Longitude: point.Lng - 0.01,
			Price:     120,
			Rating:    4.5,
			Address:   "Main Street, Midpoint City",
			ImageURL:  &img,
		},
		{
			Name:      "Budget Inn",
			Latitude:  point.Lat - 0.01,
			Longitude: point.Lng + 0.02,
			Price:     75,
			Rating:    3.8,
			Address:   "Highway Road, Midpoint City",
			ImageURL:  &img,
		},
	}
}

// placeholderEvents is the illustrative fallback set for event searches.
func placeholderEvents(point domain.Coordinates, startDate time.Time) []Event {
	return []Event{
		{
			Name:        "Local Music Festival",
			Venue:       "City Park",
			Date:        startDate.Format(dateLayout),
			Latitude:    point.Lat + 0.05,
			Longitude:   point.Lng - 0.03,
			Description: "Annual music festival with local artists",
		},
		{
			Name:        "Food & Wine Expo",
			Venue:       "Convention Center",
			Date:        startDate.AddDate(0, 0, 1).Format(dateLayout),
			Latitude:    point.Lat - 0.02,
			Longitude:   point.Lng + 0.04,
			Description: "Explore local cuisine and wines",
		},
	}
}
