// ui.go
// Copyright(c) 2024-2026 skimmer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/skimmer-sim/skimmer/renderer"
	"github.com/skimmer-sim/skimmer/sim"
)

// hudRows is how many terminal rows the HUD claims at the bottom of the
// screen; the render grid gets the rest.
const hudRows = 2

var (
	styleSky     = tcell.StyleDefault.Foreground(tcell.ColorDarkBlue)
	styleFar     = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	styleMid     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleNear    = tcell.StyleDefault.Foreground(tcell.ColorOlive).Bold(true)
	styleMarker  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleWarning = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true).Blink(true)
	stylePaused  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

func shadeStyle(s renderer.ShadeClass) tcell.Style {
	switch s {
	case renderer.ShadeFar:
		return styleFar
	case renderer.ShadeMid:
		return styleMid
	case renderer.ShadeNear:
		return styleNear
	default:
		return styleSky
	}
}

// aircraftMarker is drawn at the chase camera's focal point, screen
// center.
const aircraftMarker = ">-o"

// drawFrame blits the render grid and the HUD to the screen.
func drawFrame(screen tcell.Screen, g *renderer.Grid, state sim.AircraftState, paused bool) {
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			c := g.At(row, col)
			screen.SetContent(col, row, c.Glyph, nil, shadeStyle(c.Shade))
		}
	}

	if !state.Crashed {
		drawText(screen, g.Cols/2-1, g.Rows/2, len(aircraftMarker), styleMarker, aircraftMarker)
	}

	drawHUD(screen, g, state, paused)
	screen.Show()
}

func drawHUD(screen tcell.Screen, g *renderer.Grid, state sim.AircraftState, paused bool) {
	hud := fmt.Sprintf("ALT %5.0f  IAS %5.1f  HDG %03.0f  PIT %+5.1f  ROL %+5.1f  THR %3.0f%%  AOA %+5.1f",
		state.Altitude(), state.Airspeed, state.Heading, state.Pitch, state.Roll,
		state.Throttle*100, state.AngleOfAttack)
	drawText(screen, 0, g.Rows, g.Cols, styleHUD, hud)

	status, style := "", styleWarning
	switch {
	case state.Crashed:
		status = "*** CRASHED - press R to reset, Q to quit ***"
	case state.Stalled:
		status = "*** STALL ***"
	case paused:
		status, style = "- PAUSED -", stylePaused
	}
	drawText(screen, 0, g.Rows+1, g.Cols, style, status)
}

// drawText draws text at the given position, truncating and space-padding
// to maxWidth.
func drawText(screen tcell.Screen, x, y, maxWidth int, style tcell.Style, text string) {
	col := 0
	for _, r := range text {
		if col >= maxWidth {
			break
		}
		screen.SetContent(x+col, y, r, nil, style)
		col++
	}
	for ; col < maxWidth; col++ {
		screen.SetContent(x+col, y, ' ', nil, style)
	}
}
