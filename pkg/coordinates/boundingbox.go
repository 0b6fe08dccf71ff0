package coordinates

import (
	"fmt"
	"math"
)

// BoundingBox is an axis-aligned latitude/longitude rectangle used as a
// spatial query filter. Boxes are built once per query and discarded.
type BoundingBox struct {
	// LatMin is the southern edge in decimal degrees
	LatMin float64

	// LonMin is the western edge in decimal degrees
	LonMin float64

	// LatMax is the northern edge in decimal degrees
	LatMax float64

	// LonMax is the eastern edge in decimal degrees
	LonMax float64
}

// BoxAround expands a center point into a bounding box of radiusDeg degrees
// in every direction, clamped independently per bound to the valid
// coordinate ranges.
//
// A box whose longitude span would cross the antimeridian is clamped at
// ±180°, not split into two ranges: aircraft on the far side of the date
// line are excluded. Zero or negative radius is accepted and yields a
// degenerate or inverted box; Validate rejects such boxes before they
// reach the network.
func BoxAround(center Coordinate, radiusDeg float64) BoundingBox {
	return BoundingBox{
		LatMin: math.Max(LatitudeMin, center.Latitude-radiusDeg),
		LonMin: math.Max(LongitudeMin, center.Longitude-radiusDeg),
		LatMax: math.Min(LatitudeMax, center.Latitude+radiusDeg),
		LonMax: math.Min(LongitudeMax, center.Longitude+radiusDeg),
	}
}

// Validate checks the bounding box invariants: every bound within its valid
// range and strict min < max ordering on both axes. The range checks are
// written in negated form so NaN bounds fail them instead of passing both.
func (b BoundingBox) Validate() error {
	for _, lat := range []struct {
		name  string
		value float64
	}{
		{"lat_min", b.LatMin},
		{"lat_max", b.LatMax},
	} {
		if !(lat.value >= LatitudeMin && lat.value <= LatitudeMax) {
			return &RangeError{Field: lat.name, Value: lat.value, Min: LatitudeMin, Max: LatitudeMax}
		}
	}
	for _, lon := range []struct {
		name  string
		value float64
	}{
		{"lon_min", b.LonMin},
		{"lon_max", b.LonMax},
	} {
		if !(lon.value >= LongitudeMin && lon.value <= LongitudeMax) {
			return &RangeError{Field: lon.name, Value: lon.value, Min: LongitudeMin, Max: LongitudeMax}
		}
	}
	if b.LatMin >= b.LatMax {
		return fmt.Errorf("invalid bounding box: lat_min %v must be less than lat_max %v", b.LatMin, b.LatMax)
	}
	if b.LonMin >= b.LonMax {
		return fmt.Errorf("invalid bounding box: lon_min %v must be less than lon_max %v", b.LonMin, b.LonMax)
	}
	return nil
}
