// aero/aero.go
// Copyright(c) 2024-2026 skimmer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aero

import (
	"errors"

	"github.com/skimmer-sim/skimmer/math"
)

var (
	ErrInvalidWingArea    = errors.New("Wing area must be positive")
	ErrInvalidMass        = errors.New("Mass must be positive")
	ErrInvalidAirDensity  = errors.New("Air density must be positive")
	ErrInvalidThrust      = errors.New("Max thrust must be non-negative")
	ErrInvalidStallAngles = errors.New("Stall entry angle must exceed stall exit angle")
)

// Config holds the aerodynamic constants. Everything is SI: meters,
// seconds, kilograms, Newtons; angles in the config are degrees.
type Config struct {
	Gravity    float32
	AirDensity float32
	WingArea   float32
	Mass       float32
	MaxThrust  float32

	// Lift curve: CL = CL0 + CLSlope * alpha (alpha in radians) below
	// stall; the coefficient collapses to CLStalled above it.
	CL0       float32
	CLSlope   float32
	CLStalled float32

	// Drag polar: CD = CD0 + K * CL^2, plus CDStall while stalled.
	CD0     float32
	K       float32
	CDStall float32

	// Hysteresis thresholds, degrees. Stall engages above
	// StallEnterDeg and releases below StallExitDeg.
	StallEnterDeg float32
	StallExitDeg  float32

	// Below this airspeed the angle of attack is treated as zero and
	// aerodynamic forces vanish; the aircraft is essentially ballistic.
	AirspeedEpsilon float32
}

func DefaultConfig() Config {
	return Config{
		Gravity:         9.81,
		AirDensity:      1.225,
		WingArea:        16,
		Mass:            1100,
		MaxThrust:       7000,
		CL0:             0.3,
		CLSlope:         5.0,
		CLStalled:       0.8,
		CD0:             0.03,
		K:               0.05,
		CDStall:         0.2,
		StallEnterDeg:   15,
		StallExitDeg:    12,
		AirspeedEpsilon: 0.5,
	}
}

func (c Config) Validate() error {
	if c.WingArea <= 0 {
		return ErrInvalidWingArea
	}
	if c.Mass <= 0 {
		return ErrInvalidMass
	}
	if c.AirDensity <= 0 {
		return ErrInvalidAirDensity
	}
	if c.MaxThrust < 0 {
		return ErrInvalidThrust
	}
	if c.StallEnterDeg <= c.StallExitDeg || c.StallExitDeg <= 0 {
		return ErrInvalidStallAngles
	}
	return nil
}

// State is the slice of aircraft state the force model needs. Stalled
// carries the previous tick's stall flag for hysteresis.
type State struct {
	Velocity            [3]float32
	Pitch, Roll, Heading float32 // degrees
	Throttle            float32 // [0,1]
	Stalled             bool
}

// ForceSet is the per-tick force decomposition, world frame, Newtons.
type ForceSet struct {
	Lift    [3]float32
	Drag    [3]float32
	Thrust  [3]float32
	Gravity [3]float32

	AngleOfAttack float32 // degrees
	Airspeed      float32
	Stalled       bool
}

// Sum returns the net force.
func (f ForceSet) Sum() [3]float32 {
	return math.Add3f(math.Add3f(f.Lift, f.Drag), math.Add3f(f.Thrust, f.Gravity))
}

// Forces computes the force set for the given state. Pure function: no
// state is read or written beyond the arguments.
//
// The angle of attack is the aircraft pitch minus the flight path angle,
// i.e. the angle between the nose and the velocity vector in the vertical
// plane. Lift acts perpendicular to the velocity, tilted about it by the
// roll angle, which is what turns the aircraft when banked.
func Forces(s State, c Config) ForceSet {
	up := [3]float32{0, 1, 0}
	orient := math.RotationPRH(s.Pitch, s.Roll, s.Heading)
	forward := orient.TransformVector([3]float32{0, 0, 1})

	fs := ForceSet{
		Thrust:  math.Scale3f(forward, math.Clamp(s.Throttle, 0, 1)*c.MaxThrust),
		Gravity: [3]float32{0, -c.Mass * c.Gravity, 0},
	}

	airspeed := math.Length3f(s.Velocity)
	fs.Airspeed = airspeed
	if airspeed < c.AirspeedEpsilon {
		// At rest (or nearly): alpha is undefined, so clamp it and the
		// aerodynamic forces to zero rather than dividing by it.
		return fs
	}

	vhat := math.Scale3f(s.Velocity, 1/airspeed)
	gamma := math.Degrees(math.SafeASin(vhat[1])) // flight path angle
	alpha := s.Pitch - gamma
	fs.AngleOfAttack = alpha

	// Hysteresis: the entry and exit thresholds differ so the flag can't
	// flicker when alpha rides the boundary.
	fs.Stalled = s.Stalled
	if alpha > c.StallEnterDeg {
		fs.Stalled = true
	} else if alpha < c.StallExitDeg {
		fs.Stalled = false
	}

	ar := math.Radians(alpha)
	var cl float32
	if fs.Stalled {
		cl = c.CLStalled
	} else {
		cl = c.CL0 + c.CLSlope*ar
	}
	cd := c.CD0 + c.K*math.Sqr(cl)
	if fs.Stalled {
		cd += c.CDStall
	}

	q := 0.5 * c.AirDensity * math.Sqr(airspeed) * c.WingArea

	// Lift direction: perpendicular to the velocity in the vertical
	// plane, then tilted about the velocity axis by the roll angle.
	right := math.Cross3f(up, vhat)
	if math.Length3f(right) < 1e-4 {
		// Flying straight up or down; use the aircraft's own right axis.
		right = orient.TransformVector([3]float32{1, 0, 0})
	}
	right = math.Normalize3f(right)
	liftUp := math.Cross3f(vhat, right)

	sr, cr := math.Sin(math.Radians(s.Roll)), math.Cos(math.Radians(s.Roll))
	liftDir := math.Add3f(math.Scale3f(liftUp, cr), math.Scale3f(right, sr))

	fs.Lift = math.Scale3f(liftDir, q*cl)
	fs.Drag = math.Scale3f(vhat, -q*cd)
	return fs
}
