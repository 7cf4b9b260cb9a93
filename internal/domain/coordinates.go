package domain

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

// LngLat returns the pair in longitude-first order, which is what both the
// directions and places providers expect on the wire.
func (c Coordinates) LngLat() [2]float64 {
	return [2]float64{c.Lng, c.Lat}
}

// ValidCoordinates reports whether lat/lng fall inside the valid ranges
// [-90, 90] and [-180, 180].
func ValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
