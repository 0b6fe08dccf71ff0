package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/skyward-dev/ifo/internal/overhead"
	"github.com/skyward-dev/ifo/pkg/opensky"
)

// ScopeView is a custom tview primitive that draws the query area as a
// plan view: the resolved location at the center, range rings at fractions
// of the search radius, and one glyph per aircraft with a known position.
type ScopeView struct {
	*tview.Box
	center    *overhead.ResolvedLocation
	radiusDeg float64
	aircraft  []opensky.Aircraft
}

// NewScopeView creates a scope for one query result.
func NewScopeView(center *overhead.ResolvedLocation, radiusDeg float64, aircraft []opensky.Aircraft) *ScopeView {
	sv := &ScopeView{
		Box:       tview.NewBox(),
		center:    center,
		radiusDeg: radiusDeg,
		aircraft:  aircraft,
	}
	sv.SetBorder(true).SetTitle(fmt.Sprintf(" Scope - %.2f° radius ", radiusDeg))
	return sv
}

// Draw renders the scope using tcell.
func (sv *ScopeView) Draw(screen tcell.Screen) {
	sv.Box.DrawForSubclass(screen, sv)

	x, y, width, height := sv.GetInnerRect()
	if width < 3 || height < 3 {
		return
	}

	centerX := x + width/2
	centerY := y + height/2

	// Terminal cells are roughly twice as tall as wide; stretch the
	// horizontal axis so rings look circular.
	maxR := height / 2
	if width/4 < maxR {
		maxR = width / 4
	}
	if maxR < 1 {
		maxR = 1
	}

	ringStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	centerStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	aircraftStyle := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	groundStyle := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)

	// Range rings at 1/2 and full radius
	for _, frac := range []float64{0.5, 1.0} {
		drawRing(screen, centerX, centerY, int(float64(maxR)*frac), ringStyle)
	}

	screen.SetContent(centerX, centerY, '+', nil, centerStyle)

	for _, ac := range sv.aircraft {
		if ac.Latitude == nil || ac.Longitude == nil {
			continue
		}

		// Normalized offsets from center in units of the search radius
		dLat := (*ac.Latitude - sv.center.Point.Latitude) / sv.radiusDeg
		dLon := (*ac.Longitude - sv.center.Point.Longitude) / sv.radiusDeg
		if math.Abs(dLat) > 1 || math.Abs(dLon) > 1 {
			continue
		}

		px := centerX + int(dLon*float64(maxR)*2)
		py := centerY - int(dLat*float64(maxR))

		style := aircraftStyle
		glyph := '✈'
		if ac.OnGround {
			style = groundStyle
			glyph = '·'
		}
		screen.SetContent(px, py, glyph, nil, style)

		// Callsign label to the right of the glyph when it fits
		label := callsignLabel(ac)
		for i, r := range label {
			lx := px + 2 + i
			if lx >= x+width {
				break
			}
			screen.SetContent(lx, py, r, nil, style)
		}
	}
}

// drawRing draws an approximate circle of the given radius in cells,
// stretched 2:1 horizontally.
func drawRing(screen tcell.Screen, cx, cy, r int, style tcell.Style) {
	if r < 1 {
		return
	}
	steps := 16 * r
	for i := 0; i < steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		px := cx + int(math.Round(2*float64(r)*math.Cos(angle)))
		py := cy + int(math.Round(float64(r)*math.Sin(angle)))
		screen.SetContent(px, py, '·', nil, style)
	}
}
