// IFO - Identified Flying Object CLI
//
// Query aircraft flying over a location using coordinates or a place name.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/skyward-dev/ifo/internal/overhead"
	"github.com/skyward-dev/ifo/internal/report"
	"github.com/skyward-dev/ifo/pkg/config"
	"github.com/skyward-dev/ifo/pkg/geocode"
	"github.com/skyward-dev/ifo/pkg/opensky"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one lookup and returns the process exit code: 0 on success
// (including zero aircraft found), 1 on any validation, lookup or
// transport failure with a single diagnostic line on stderr.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ifo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	coords := fs.String("coords", "", `location coordinates as "latitude,longitude" (e.g., "37.7,-122.4")`)
	place := fs.String("place", "", `place name (e.g., "San Francisco" or "London, UK")`)
	radius := fs.Float64("radius", 0.5, "search radius in degrees (0.5 is roughly 55km)")
	timeout := fs.Int("timeout", 10, "API request timeout in seconds")
	format := fs.String("format", "text", "output format: text or table")
	interactive := fs.Bool("interactive", false, "browse results in an interactive viewer")
	configPath := fs.String("config", "configs/config.json", "path to configuration file")
	verbose := fs.Bool("verbose", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	// Exactly one location mode per invocation
	if (*coords == "") == (*place == "") {
		fmt.Fprintln(stderr, "Error: exactly one of -coords or -place is required")
		fs.Usage()
		return 1
	}
	if *format != "text" && *format != "table" {
		fmt.Fprintf(stderr, "Error: unknown format %q (want text or table)\n", *format)
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// Flags win over config, config wins over built-in defaults. The
	// single -timeout flag covers both upstreams; without it each client
	// falls back to its own configured timeout.
	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
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
	logger.SetOutput(stderr)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}

	geocoder := geocode.NewClient(cfg.Nominatim.BaseURL, time.Duration(nominatimTimeout)*time.Second)
	source := opensky.NewClient(cfg.OpenSky.BaseURL, time.Duration(openskyTimeout)*time.Second)
	svc := overhead.NewService(geocoder, source, *radius, logger)

	ctx := context.Background()

	loc, err := svc.Resolve(ctx, *coords, *place)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if *place != "" {
		fmt.Fprintf(stdout, "Found location: %s (%.4f, %.4f)\n",
			loc.DisplayName, loc.Point.Latitude, loc.Point.Longitude)
	}

	aircraft, err := svc.Lookup(ctx, loc)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	switch {
	case *interactive:
		if err := runBrowser(stdout, loc.DisplayName, aircraft); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	case *format == "table":
		fmt.Fprint(stdout, report.Table(loc.DisplayName, aircraft))
	default:
		report.Write(stdout, loc.DisplayName, aircraft)
	}

	return 0
}
