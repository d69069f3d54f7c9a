// sim/state.go
// Copyright(c) 2024-2026 skimmer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"log/slog"

	"github.com/skimmer-sim/skimmer/math"
)

// AircraftState is the full state of the simulated aircraft. It is a
// plain value; callers get snapshots by copying and nothing outside Sim
// mutates it.
type AircraftState struct {
	Position [3]float32 // world units; y is altitude
	Velocity [3]float32 // world units / second

	Pitch   float32 // degrees, positive nose up
	Roll    float32 // degrees, positive right wing down
	Heading float32 // degrees, [0,360), 0 is +z

	Throttle       float32 // actual, [0,1]
	ThrottleTarget float32 // commanded, [0,1]; Throttle ramps toward it

	PitchInput float32 // [-1,1]
	RollInput  float32 // [-1,1]

	// Derived each tick from the force model.
	AngleOfAttack float32 // degrees
	Airspeed      float32
	Stalled       bool

	Crashed bool
}

func (s AircraftState) Altitude() float32 {
	return s.Position[1]
}

func (s AircraftState) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("altitude", float64(s.Position[1])),
		slog.Float64("airspeed", float64(s.Airspeed)),
		slog.Float64("heading", float64(s.Heading)),
		slog.Float64("pitch", float64(s.Pitch)),
		slog.Float64("roll", float64(s.Roll)),
		slog.Float64("throttle", float64(s.Throttle)),
		slog.Float64("alpha", float64(s.AngleOfAttack)),
		slog.Bool("stalled", s.Stalled),
		slog.Bool("crashed", s.Crashed))
}

// Command is the per-tick control input. Zero value means "hands off":
// neutral stick, no throttle change, no mode changes.
type Command struct {
	PitchInput    float32 // [-1,1], positive pitches up
	RollInput     float32 // [-1,1], positive rolls right
	ThrottleDelta float32 // added to the throttle target this tick

	Reset bool
	Pause bool // toggles pause
	Quit  bool // observed by the outer loop; Step ignores it
}

// Clamped returns the command with its analog fields clamped to their
// documented ranges.
func (c Command) Clamped() Command {
	c.PitchInput = math.Clamp(c.PitchInput, -1, 1)
	c.RollInput = math.Clamp(c.RollInput, -1, 1)
	return c
}
