package main

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skyward-dev/ifo/pkg/opensky"
)

var (
	browserTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	selectedRowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	detailBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// browserModel is a one-shot viewer over a single query result. It never
// re-queries; arrow keys move the selection and q quits.
type browserModel struct {
	displayName string
	aircraft    []opensky.Aircraft
	cursor      int
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.aircraft)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m browserModel) View() string {
	var sb strings.Builder

	sb.WriteString(browserTitleStyle.Render(
		fmt.Sprintf("%d aircraft near %s", len(m.aircraft), m.displayName)))
	sb.WriteString("\n\n")

	for i, ac := range m.aircraft {
		line := fmt.Sprintf("%-10s %-8s %s", displayCallsign(ac), ac.ICAO24, ac.OriginCountry)
		if i == m.cursor {
			line = selectedRowStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(detailBoxStyle.Render(m.detailView()))
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("↑/↓ select • q quit"))
	sb.WriteString("\n")

	return sb.String()
}

// detailView renders every field of the selected aircraft, absent values
// as a dash.
func (m browserModel) detailView() string {
	ac := m.aircraft[m.cursor]

	rows := []struct {
		label string
		value string
	}{
		{"Callsign", displayCallsign(ac)},
		{"ICAO24", ac.ICAO24},
		{"Country", ac.OriginCountry},
		{"Latitude", optional(ac.Latitude, "%.4f°")},
		{"Longitude", optional(ac.Longitude, "%.4f°")},
		{"Baro altitude", optional(ac.BaroAltitude, "%.0f m")},
		{"Geo altitude", optional(ac.GeoAltitude, "%.0f m")},
		{"Velocity", optional(ac.Velocity, "%.1f m/s")},
		{"Track", optional(ac.TrueTrack, "%.0f°")},
		{"Vertical rate", optional(ac.VerticalRate, "%.1f m/s")},
		{"Squawk", optionalString(ac.Squawk)},
		{"On ground", fmt.Sprintf("%v", ac.OnGround)},
	}

	var sb strings.Builder
	for i, row := range rows {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%-14s %s", row.label+":", row.value))
	}
	return sb.String()
}

func displayCallsign(ac opensky.Aircraft) string {
	if ac.Callsign == nil {
		return "N/A"
	}
	return *ac.Callsign
}

func optional(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

func optionalString(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}

// runBrowser starts the interactive viewer. An empty result skips the
// viewer and prints the usual message to stdout instead.
func runBrowser(stdout io.Writer, displayName string, aircraft []opensky.Aircraft) error {
	if len(aircraft) == 0 {
		fmt.Fprintf(stdout, "No aircraft found near %s\n", displayName)
		return nil
	}

	model := browserModel{displayName: displayName, aircraft: aircraft}
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("interactive viewer failed: %w", err)
	}
	return nil
}
