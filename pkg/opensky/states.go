package opensky

import (
	"fmt"
	"strings"
)

// State vector field positions as defined by the OpenSky Network
// /states/all response. Each state is a fixed-position array; all
// positional knowledge lives in this table.
//
// Positions 3 (time_position), 4 (last_contact), 12 (sensors),
// 15 (spi) and 16 (position_source) are not surfaced.
const (
	svICAO24 = iota
	svCallsign
	svOriginCountry
	svTimePosition
	svLastContact
	svLongitude
	svLatitude
	svBaroAltitude
	svOnGround
	svVelocity
	svTrueTrack
	svVerticalRate
	svSensors
	svGeoAltitude
	svSquawk
	svSPI
	svPositionSource

	// stateVectorLength is the minimum number of positions in a state vector
	stateVectorLength = 17
)

// Aircraft is one normalized aircraft state vector.
//
// The upstream feed may omit any positional or velocity value (an aircraft
// broadcasting no barometric altitude, for example), so those fields are
// pointers: nil means "not reported", which is distinct from zero.
type Aircraft struct {
	// ICAO24 is the unique 24-bit ICAO transponder address (e.g., "a12345")
	ICAO24 string `json:"icao24"`

	// Callsign is the flight number or registration, whitespace-trimmed.
	// nil when the aircraft broadcasts no callsign.
	Callsign *string `json:"callsign,omitempty"`

	// OriginCountry is the country of registration
	OriginCountry string `json:"origin_country"`

	// Longitude in decimal degrees
	Longitude *float64 `json:"longitude,omitempty"`

	// Latitude in decimal degrees
	Latitude *float64 `json:"latitude,omitempty"`

	// BaroAltitude is barometric altitude in meters
	BaroAltitude *float64 `json:"baro_altitude,omitempty"`

	// OnGround reports whether the position comes from a surface report
	OnGround bool `json:"on_ground"`

	// Velocity is ground speed in m/s
	Velocity *float64 `json:"velocity,omitempty"`

	// TrueTrack is the ground track in degrees clockwise from north
	TrueTrack *float64 `json:"true_track,omitempty"`

	// VerticalRate in m/s (positive = climbing, negative = descending)
	VerticalRate *float64 `json:"vertical_rate,omitempty"`

	// GeoAltitude is geometric (GPS) altitude in meters
	GeoAltitude *float64 `json:"geo_altitude,omitempty"`

	// Squawk is the transponder code
	Squawk *string `json:"squawk,omitempty"`
}

// FromStateVector normalizes one raw positional state vector into an
// Aircraft. It is a pure transform: no I/O, no hidden state, identical
// output for identical input.
func FromStateVector(state []any) (Aircraft, error) {
	if len(state) < stateVectorLength {
		return Aircraft{}, &StateVectorError{Expected: stateVectorLength, Got: len(state)}
	}

	return Aircraft{
		ICAO24:        asString(state[svICAO24]),
		Callsign:      trimmedCallsign(state[svCallsign]),
		OriginCountry: asString(state[svOriginCountry]),
		Longitude:     asFloat(state[svLongitude]),
		Latitude:      asFloat(state[svLatitude]),
		BaroAltitude:  asFloat(state[svBaroAltitude]),
		OnGround:      asBool(state[svOnGround]),
		Velocity:      asFloat(state[svVelocity]),
		TrueTrack:     asFloat(state[svTrueTrack]),
		VerticalRate:  asFloat(state[svVerticalRate]),
		GeoAltitude:   asFloat(state[svGeoAltitude]),
		Squawk:        asStringPtr(state[svSquawk]),
	}, nil
}

// trimmedCallsign normalizes a raw callsign value: surrounding whitespace
// is stripped and an empty result becomes nil, never an empty string. The
// distinction carries through to rendering ("N/A").
func trimmedCallsign(val any) *string {
	s, ok := val.(string)
	if !ok {
		return nil
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// asString extracts a required string field, empty on null or wrong type.
func asString(val any) string {
	s, _ := val.(string)
	return s
}

// asStringPtr extracts an optional string field, nil on null.
func asStringPtr(val any) *string {
	s, ok := val.(string)
	if !ok {
		return nil
	}
	return &s
}

// asFloat extracts an optional numeric field, nil on null. JSON numbers
// decode as float64; anything else means the value was not reported.
func asFloat(val any) *float64 {
	f, ok := val.(float64)
	if !ok {
		return nil
	}
	return &f
}

// asBool extracts a boolean field, false on null or wrong type.
func asBool(val any) bool {
	b, _ := val.(bool)
	return b
}

// StateVectorError indicates a telemetry record shorter than the fixed
// width the positional protocol defines.
type StateVectorError struct {
	// Expected is the minimum number of positions
	Expected int

	// Got is the actual number of positions received
	Got int
}

func (e *StateVectorError) Error() string {
	return fmt.Sprintf("invalid state vector: expected %d elements, got %d", e.Expected, e.Got)
}
