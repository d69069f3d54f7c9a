// renderer/renderer.go
// Copyright(c) 2024-2026 skimmer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"errors"

	"github.com/skimmer-sim/skimmer/log"
	"github.com/skimmer-sim/skimmer/math"
	"github.com/skimmer-sim/skimmer/sim"
)

var (
	ErrInvalidFOV      = errors.New("Field of view must be in (0,180) degrees")
	ErrInvalidRayStep  = errors.New("Ray march step must be positive")
	ErrInvalidMaxRange = errors.New("Max ray range must exceed the step size")
	ErrInvalidGridSize = errors.New("Grid must have positive rows and columns")
)

// Field is the terrain interface the raycaster marches against.
// MaxElevation bounds the terrain so rays that climb above it can be
// terminated early.
type Field interface {
	Height(x, z float32) float32
	MaxElevation() float32
}

type Config struct {
	FOV      float32 // horizontal field of view, degrees
	MaxRange float32 // world units
	Step     float32 // ray march increment, world units

	// Chase camera displacement along the aircraft's local back and up
	// axes. Zero for both gives a cockpit view.
	ChaseBack float32
	ChaseUp   float32

	// Terminal cells are roughly twice as tall as wide; the vertical
	// field of view accounts for it.
	CellAspect float32
}

func DefaultConfig() Config {
	return Config{
		FOV:        70,
		MaxRange:   1200,
		Step:       2,
		ChaseBack:  30,
		ChaseUp:    10,
		CellAspect: 2,
	}
}

func (c Config) Validate() error {
	if c.FOV <= 0 || c.FOV >= 180 {
		return ErrInvalidFOV
	}
	if c.Step <= 0 {
		return ErrInvalidRayStep
	}
	if c.MaxRange <= c.Step {
		return ErrInvalidMaxRange
	}
	return nil
}

// Renderer turns an aircraft state into a glyph grid by marching one ray
// per grid cell through the terrain field.
type Renderer struct {
	field Field
	cfg   Config
	lg    *log.Logger
}

func New(field Field, cfg Config, lg *log.Logger) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.CellAspect <= 0 {
		cfg.CellAspect = 2
	}
	return &Renderer{field: field, cfg: cfg, lg: lg}, nil
}

// Frame fills g with one rendered frame for the given aircraft state.
// The grid is caller-owned and reused across frames.
func (r *Renderer) Frame(state sim.AircraftState, g *Grid) {
	view := DeriveView(state, r.cfg)

	tanH := math.Tan(math.Radians(r.cfg.FOV / 2))
	tanV := tanH * float32(g.Rows) * r.cfg.CellAspect / float32(g.Cols)

	for row := 0; row < g.Rows; row++ {
		// v runs +1 at the top of the screen to -1 at the bottom.
		v := 1 - 2*(float32(row)+0.5)/float32(g.Rows)
		for col := 0; col < g.Cols; col++ {
			u := 2*(float32(col)+0.5)/float32(g.Cols) - 1

			dir := math.Normalize3f(math.Add3f(view.Forward,
				math.Add3f(math.Scale3f(view.Right, u*tanH),
					math.Scale3f(view.Up, v*tanV))))

			depth := r.cast(view.Position, dir)
			*g.At(row, col) = Shade(depth, r.cfg.MaxRange)
		}
	}
}

// cast marches a ray from origin along dir and returns the distance to
// the first terrain intersection, or SkyDepth if none within MaxRange.
//
// The step is fixed rather than adaptive: the noise octave parameters
// bound the terrain's highest spatial frequency, and the default step is
// well below the finest feature size, so no spike can be stepped over.
func (r *Renderer) cast(origin, dir [3]float32) float32 {
	maxEl := r.field.MaxElevation()

	prev := float32(0)
	for t := r.cfg.Step; t <= r.cfg.MaxRange; t += r.cfg.Step {
		p := math.Add3f(origin, math.Scale3f(dir, t))

		// A climbing ray above the highest possible terrain can never hit.
		if p[1] > maxEl && dir[1] >= 0 {
			return SkyDepth
		}

		if p[1] <= r.field.Height(p[0], p[2]) {
			return r.refine(origin, dir, prev, t)
		}
		prev = t
	}
	return SkyDepth
}

// refine bisects between the last clear distance and the first
// intersecting one to tighten the hit estimate.
func (r *Renderer) refine(origin, dir [3]float32, lo, hi float32) float32 {
	for i := 0; i < 8; i++ {
		mid := (lo + hi) / 2
		p := math.Add3f(origin, math.Scale3f(dir, mid))
		if p[1] <= r.field.Height(p[0], p[2]) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi
}
