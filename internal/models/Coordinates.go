package models

import "fmt"

// Coordinates is a searched location. Either axis may be missing when the
// dashboard has not resolved a city yet.
type Coordinates struct {
	Lat *float64 `json:"lat" validate:"required,latitude"`
	Lon *float64 `json:"lon" validate:"required,longitude"`
}

func NewCoordinates(lat, lon float64) *Coordinates {
	return &Coordinates{Lat: &lat, Lon: &lon}
}

// Valid reports whether both latitude and longitude are present.
func (c *Coordinates) Valid() bool {
	return c != nil && c.Lat != nil && c.Lon != nil
}

func (c *Coordinates) String() string {
	if !c.Valid() {
		return "lat: - lon: -"
	}
	return fmt.Sprintf("lat: %.4f lon: %.4f", *c.Lat, *c.Lon)
}
