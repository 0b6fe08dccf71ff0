// Package report formats normalized aircraft states as human-readable
// text. Its input contract is a resolved display name plus the aircraft
// slice; it performs no queries of its own.
package report

import (
	"fmt"
	"io"

	"github.com/skyward-dev/ifo/pkg/opensky"
)

// Write renders the classic multi-line report. Absent optional values are
// omitted entirely except the callsign, which renders as "N/A".
func Write(w io.Writer, displayName string, aircraft []opensky.Aircraft) {
	if len(aircraft) == 0 {
		fmt.Fprintf(w, "No aircraft found near %s\n", displayName)
		return
	}

	fmt.Fprintf(w, "Found %d aircraft near %s:\n\n", len(aircraft), displayName)

	for _, ac := range aircraft {
		fmt.Fprintf(w, "Callsign: %s\n", callsignOrNA(ac.Callsign))
		fmt.Fprintf(w, "  ICAO24: %s\n", ac.ICAO24)
		fmt.Fprintf(w, "  Country: %s\n", ac.OriginCountry)
		if ac.Latitude != nil && ac.Longitude != nil {
			fmt.Fprintf(w, "  Position: %.4f, %.4f\n", *ac.Latitude, *ac.Longitude)
		}
		if ac.BaroAltitude != nil {
			fmt.Fprintf(w, "  Altitude: %.0f m\n", *ac.BaroAltitude)
		}
		if ac.Velocity != nil {
			fmt.Fprintf(w, "  Velocity: %.1f m/s\n", *ac.Velocity)
		}
		if ac.OnGround {
			fmt.Fprintln(w, "  Status: On ground")
		}
		fmt.Fprintln(w)
	}
}

// callsignOrNA maps an absent callsign to the "N/A" display form. The
// normalizer guarantees a present callsign is already trimmed and
// non-empty.
func callsignOrNA(callsign *string) string {
	if callsign == nil {
		return "N/A"
	}
	return *callsign
}

// formatOptional renders an optional numeric with the given precision, or
// a dash when the value was not reported.
func formatOptional(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}
