// ifo-server exposes the aircraft-overhead lookup as a small HTTP API.
//
//	GET /healthz
//	GET /api/v1/overhead?coords=LAT,LON | place=NAME [&radius=DEG]
package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/skyward-dev/ifo/internal/overhead"
	"github.com/skyward-dev/ifo/pkg/config"
	"github.com/skyward-dev/ifo/pkg/coordinates"
	"github.com/skyward-dev/ifo/pkg/geocode"
	"github.com/skyward-dev/ifo/pkg/opensky"
)

func main() {
	configPath := flag.String("config", "configs/config.json", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	}

	intro := figure.NewFigure("IFO", "", false).Slicify()
	for i := 0; i < len(intro); i++ {
		logger.Info(intro[i])
	}

	handler := newOverheadHandler(cfg, logger)

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now().UTC()})
	})
	router.GET("/api/v1/overhead", handler.Overhead)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.WithField("addr", addr).Info("Starting ifo-server")
	if err := router.Run(addr); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}
}

// overheadHandler serves the lookup endpoint. Each request builds its own
// service so per-request radius overrides stay isolated.
type overheadHandler struct {
	cfg    *config.Config
	logger *logrus.Logger

	geocoder geocode.Geocoder
	source   opensky.Source
}

func newOverheadHandler(cfg *config.Config, logger *logrus.Logger) *overheadHandler {
	return &overheadHandler{
		cfg:      cfg,
		logger:   logger,
		geocoder: geocode.NewClient(cfg.Nominatim.BaseURL, time.Duration(cfg.Nominatim.TimeoutSeconds)*time.Second),
		source:   opensky.NewClient(cfg.OpenSky.BaseURL, time.Duration(cfg.OpenSky.TimeoutSeconds)*time.Second),
	}
}

// overheadResponse is the JSON shape of a successful lookup.
type overheadResponse struct {
	Location  string             `json:"location"`
	Latitude  float64            `json:"latitude"`
	Longitude float64            `json:"longitude"`
	RadiusDeg float64            `json:"radius_deg"`
	Count     int                `json:"count"`
	Aircraft  []opensky.Aircraft `json:"aircraft"`
}

// Overhead handles GET /api/v1/overhead.
func (h *overheadHandler) Overhead(c *gin.Context) {
	coords := c.Query("coords")
	place := c.Query("place")
	if (coords == "") == (place == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly one of coords or place is required"})
		return
	}

	radius := h.cfg.Search.RadiusDeg
	if raw := c.Query("radius"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid radius %q", raw)})
			return
		}
		radius = parsed
	}

	svc := overhead.NewService(h.geocoder, h.source, radius, h.logger)
	ctx := c.Request.Context()

	loc, err := svc.Resolve(ctx, coords, place)
	if err != nil {
		h.writeError(c, err)
		return
	}

	aircraft, err := svc.Lookup(ctx, loc)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, overheadResponse{
		Location:  loc.DisplayName,
		Latitude:  loc.Point.Latitude,
		Longitude: loc.Point.Longitude,
		RadiusDeg: radius,
		Count:     len(aircraft),
		Aircraft:  aircraft,
	})
}

// writeError maps the error taxonomy onto HTTP statuses: input problems
// are 400, a geocoding miss is 404, upstream failures are 502.
func (h *overheadHandler) writeError(c *gin.Context, err error) {
	var (
		formatErr *coordinates.FormatError
		numberErr *coordinates.NumberError
		rangeErr  *coordinates.RangeError
		placeErr  *geocode.PlaceError
		apiErr    *opensky.APIError
	)

	switch {
	case errors.Is(err, overhead.ErrLocationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &formatErr),
		errors.As(err, &numberErr),
		errors.As(err, &rangeErr),
		errors.As(err, &placeErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &apiErr):
		h.logger.WithError(err).Warn("Upstream API failure")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		h.logger.WithError(err).Error("Lookup failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}
