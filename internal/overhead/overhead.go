// Package overhead orchestrates one aircraft-overhead lookup: resolve a
// location, expand it into a bounding box, query the aircraft-state feed.
package overhead

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/skyward-dev/ifo/pkg/coordinates"
	"github.com/skyward-dev/ifo/pkg/geocode"
	"github.com/skyward-dev/ifo/pkg/opensky"
)

// ErrLocationNotFound reports that the geocoding service had no match for
// the requested place. It is a normal terminal outcome with its own user
// message, deliberately distinct from transport failures.
var ErrLocationNotFound = errors.New("could not find location")

// ResolvedLocation is the outcome of location resolution. It lives for one
// invocation only.
type ResolvedLocation struct {
	// Point is the validated center of the query
	Point coordinates.Coordinate

	// DisplayName is the literal "lat,lon" string for direct coordinates
	// or the geocoding service's canonical name
	DisplayName string
}

// Service runs the lookup pipeline. Construct with NewService; both
// collaborators are interfaces so tests can substitute fakes.
type Service struct {
	geocoder  geocode.Geocoder
	source    opensky.Source
	radiusDeg float64
	logger    *logrus.Logger
}

// NewService creates a lookup service with the given collaborators and
// query box radius in degrees.
func NewService(geocoder geocode.Geocoder, source opensky.Source, radiusDeg float64, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{
		geocoder:  geocoder,
		source:    source,
		radiusDeg: radiusDeg,
		logger:    logger,
	}
}

// Resolve produces exactly one ResolvedLocation from either a literal
// coordinate string or a place name. Exactly one of the two must be
// non-empty; the caller enforces that at its input boundary.
func (s *Service) Resolve(ctx context.Context, coords, place string) (*ResolvedLocation, error) {
	if coords != "" {
		point, err := coordinates.ParseCoordinates(coords)
		if err != nil {
			return nil, err
		}
		return &ResolvedLocation{Point: point, DisplayName: point.String()}, nil
	}

	loc, err := s.geocoder.Geocode(ctx, place)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, fmt.Errorf("%w: %q", ErrLocationNotFound, place)
	}

	point, err := coordinates.NewCoordinate(loc.Latitude, loc.Longitude)
	if err != nil {
		return nil, fmt.Errorf("geocoding service returned invalid coordinates: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"place":        place,
		"display_name": loc.DisplayName,
		"latitude":     loc.Latitude,
		"longitude":    loc.Longitude,
	}).Debug("Resolved place name")

	return &ResolvedLocation{Point: point, DisplayName: loc.DisplayName}, nil
}

// Lookup queries all aircraft inside a box of the configured radius around
// the resolved location. The box is built fresh for each call and
// discarded afterwards.
func (s *Service) Lookup(ctx context.Context, loc *ResolvedLocation) ([]opensky.Aircraft, error) {
	box := coordinates.BoxAround(loc.Point, s.radiusDeg)

	s.logger.WithFields(logrus.Fields{
		"lat_min": box.LatMin,
		"lon_min": box.LonMin,
		"lat_max": box.LatMax,
		"lon_max": box.LonMax,
	}).Debug("Querying aircraft in area")

	aircraft, err := s.source.AircraftInArea(ctx, box)
	if err != nil {
		return nil, err
	}

	s.logger.WithField("count", len(aircraft)).Debug("Area query complete")

	return aircraft, nil
}
