package report

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/skyward-dev/ifo/pkg/opensky"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

// Table renders the aircraft list as a bordered table. The empty case
// keeps the same message as the plain renderer.
func Table(displayName string, aircraft []opensky.Aircraft) string {
	if len(aircraft) == 0 {
		return fmt.Sprintf("No aircraft found near %s\n", displayName)
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Headers("CALLSIGN", "ICAO24", "COUNTRY", "LAT", "LON", "ALT (m)", "SPD (m/s)", "TRK", "GND")

	for _, ac := range aircraft {
		tbl.Row(
			callsignOrNA(ac.Callsign),
			ac.ICAO24,
			ac.OriginCountry,
			formatOptional(ac.Latitude, "%.4f"),
			formatOptional(ac.Longitude, "%.4f"),
			formatOptional(ac.BaroAltitude, "%.0f"),
			formatOptional(ac.Velocity, "%.1f"),
			formatOptional(ac.TrueTrack, "%.0f"),
			onGroundMark(ac.OnGround),
		)
	}

	title := titleStyle.Render(fmt.Sprintf("Found %d aircraft near %s", len(aircraft), displayName))
	return title + "\n" + tbl.String() + "\n"
}

func onGroundMark(onGround bool) string {
	if onGround {
		return "yes"
	}
	return ""
}
