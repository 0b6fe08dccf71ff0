// ifo-radar renders one aircraft-overhead query as a plan-view scope:
// range rings around the resolved location with aircraft glyphs, beside a
// detail table. One query, one screen; no live updates.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"

	"github.com/skyward-dev/ifo/internal/overhead"
	"github.com/skyward-dev/ifo/pkg/config"
	"github.com/skyward-dev/ifo/pkg/geocode"
	"github.com/skyward-dev/ifo/pkg/opensky"
)

func main() {
	coords := flag.String("coords", "", `location coordinates as "latitude,longitude"`)
	place := flag.String("place", "", `place name (e.g., "San Francisco")`)
	radius := flag.Float64("radius", 0.5, "search radius in degrees")
	timeout := flag.Int("timeout", 10, "API request timeout in seconds")
	configPath := flag.String("config", "configs/config.json", "path to configuration file")
	flag.Parse()

	if (*coords == "") == (*place == "") {
		fmt.Fprintln(os.Stderr, "Error: exactly one of -coords or -place is required")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags win over config, config wins over built-in defaults. The
	// single -timeout flag covers both upstreams; without it each client
	// falls back to its own configured timeout.
	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	if !explicit["radius"] {
		*radius = cfg.Search.RadiusDeg
	}
	openskyTimeout := cfg.OpenSky.TimeoutSeconds
	nominatimTimeout := cfg.Nominatim.TimeoutSeconds
	if explicit["timeout"] {
		openskyTimeout = *timeout
		nominatimTimeout = *timeout
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	svc := overhead.NewService(
		geocode.NewClient(cfg.Nominatim.BaseURL, time.Duration(nominatimTimeout)*time.Second),
		opensky.NewClient(cfg.OpenSky.BaseURL, time.Duration(openskyTimeout)*time.Second),
		*radius,
		logger,
	)

	ctx := context.Background()

	loc, err := svc.Resolve(ctx, *coords, *place)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	aircraft, err := svc.Lookup(ctx, loc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(aircraft) == 0 {
		fmt.Printf("No aircraft found near %s\n", loc.DisplayName)
		return
	}

	if err := runScope(loc, *radius, aircraft); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runScope assembles the tview layout: scope on the left, aircraft table
// on the right, a one-line footer with keys.
func runScope(loc *overhead.ResolvedLocation, radiusDeg float64, aircraft []opensky.Aircraft) error {
	app := tview.NewApplication()

	scope := NewScopeView(loc, radiusDeg, aircraft)

	table := tview.NewTable().SetBorders(false)
	table.SetBorder(true).SetTitle(fmt.Sprintf(" %d aircraft near %s ", len(aircraft), loc.DisplayName))
	for col, header := range []string{"CALLSIGN", "ICAO24", "ALT (m)", "SPD (m/s)"} {
		table.SetCell(0, col, tview.NewTableCell(header).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false))
	}
	for i, ac := range aircraft {
		table.SetCell(i+1, 0, tview.NewTableCell(callsignLabel(ac)))
		table.SetCell(i+1, 1, tview.NewTableCell(ac.ICAO24))
		table.SetCell(i+1, 2, tview.NewTableCell(optionalCell(ac.BaroAltitude, "%.0f")))
		table.SetCell(i+1, 3, tview.NewTableCell(optionalCell(ac.Velocity, "%.1f")))
	}

	footer := tview.NewTextView().SetText(" q: quit ")

	layout := tview.NewFlex().
		AddItem(scope, 0, 2, true).
		AddItem(table, 0, 1, false)
	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(layout, 0, 1, true).
		AddItem(footer, 1, 0, false)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() == 'q' || event.Key() == tcell.KeyEscape {
			app.Stop()
			return nil
		}
		return event
	})

	return app.SetRoot(root, true).Run()
}

func callsignLabel(ac opensky.Aircraft) string {
	if ac.Callsign == nil {
		return "N/A"
	}
	return *ac.Callsign
}

func optionalCell(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}
