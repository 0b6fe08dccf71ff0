// Package coordinates provides parsing and validation of geographic
// coordinates and construction of the bounding boxes used as spatial
// query filters.
//
// All positions use the WGS84 coordinate system (same as GPS).
package coordinates

import (
	"fmt"
	"strconv"
	"strings"
)

// Valid coordinate ranges in decimal degrees.
const (
	// LatitudeMin is the southernmost valid latitude
	LatitudeMin = -90.0

	// LatitudeMax is the northernmost valid latitude
	LatitudeMax = 90.0

	// LongitudeMin is the westernmost valid longitude
	LongitudeMin = -180.0

	// LongitudeMax is the easternmost valid longitude
	LongitudeMax = 180.0
)

// Coordinate represents a position on Earth's surface.
type Coordinate struct {
	// Latitude in decimal degrees (-90 to +90)
	// Positive = North, Negative = South
	Latitude float64

	// Longitude in decimal degrees (-180 to +180)
	// Positive = East, Negative = West
	Longitude float64
}

// NewCoordinate creates a coordinate and validates both components.
// Out-of-range values fail immediately; no clamping is applied. The
// checks are written in negated form so NaN, which fails every ordered
// comparison, is rejected rather than slipping past both bounds.
func NewCoordinate(latitude, longitude float64) (Coordinate, error) {
	if !(latitude >= LatitudeMin && latitude <= LatitudeMax) {
		return Coordinate{}, &RangeError{
			Field: "latitude",
			Value: latitude,
			Min:   LatitudeMin,
			Max:   LatitudeMax,
		}
	}
	if !(longitude >= LongitudeMin && longitude <= LongitudeMax) {
		return Coordinate{}, &RangeError{
			Field: "longitude",
			Value: longitude,
			Min:   LongitudeMin,
			Max:   LongitudeMax,
		}
	}
	return Coordinate{Latitude: latitude, Longitude: longitude}, nil
}

// ParseCoordinates parses a "latitude,longitude" string into a Coordinate.
// Whitespace around either token is tolerated.
//
// Checks are applied in structural order: token count first, then each
// field's numeric parse, then each field's range. This keeps error
// messages pointing at the first thing actually wrong with the input.
func ParseCoordinates(text string) (Coordinate, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 2 {
		return Coordinate{}, &FormatError{Input: text}
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinate{}, &NumberError{Field: "latitude", Token: parts[0]}
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinate{}, &NumberError{Field: "longitude", Token: parts[1]}
	}

	return NewCoordinate(lat, lon)
}

// String returns the coordinate as a "lat,lon" string, round-trippable
// through ParseCoordinates.
func (c Coordinate) String() string {
	return fmt.Sprintf("%v,%v", c.Latitude, c.Longitude)
}

// FormatError indicates coordinate text that does not split into exactly
// two comma-separated tokens.
type FormatError struct {
	// Input is the original text that failed to parse
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid coordinates %q: must be in format 'latitude,longitude'", e.Input)
}

// NumberError indicates a coordinate token that is not a valid number.
type NumberError struct {
	// Field is "latitude" or "longitude"
	Field string

	// Token is the offending input token
	Token string
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("invalid %s: %q is not a number", e.Field, strings.TrimSpace(e.Token))
}

// RangeError indicates a syntactically valid value outside its valid range.
type RangeError struct {
	// Field is "latitude" or "longitude"
	Field string

	// Value is the out-of-range value
	Value float64

	// Min and Max describe the valid range
	Min float64
	Max float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %v out of range (%v to %v)", e.Field, e.Value, e.Min, e.Max)
}
