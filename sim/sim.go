// sim/sim.go
// Copyright(c) 2024-2026 skimmer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"errors"
	"log/slog"

	"github.com/skimmer-sim/skimmer/aero"
	"github.com/skimmer-sim/skimmer/log"
	"github.com/skimmer-sim/skimmer/math"

	"github.com/brunoga/deep"
)

var (
	ErrInvalidTimestep     = errors.New("Timestep must be positive")
	ErrInvalidControlRates = errors.New("Pitch and roll rates must be positive")
	ErrInvalidThrottleRate = errors.New("Throttle ramp rate must be positive")
	ErrNoTerrain           = errors.New("No terrain field provided")
	ErrStartBelowTerrain   = errors.New("Initial position is below the terrain")
)

// Terrain is the height field the sim collides against. The renderer uses
// a richer type; the sim only ever asks for elevations.
type Terrain interface {
	Height(x, z float32) float32
}

type Config struct {
	Aero aero.Config

	DT float32 // fixed physics timestep, seconds

	// Full stick deflection commands these angular rates, degrees/second.
	// Pitch and roll are direct rate commands, not torque simulation; the
	// resulting attitudes are clamped to the Max values below.
	PitchRate float32
	RollRate  float32
	MaxPitch  float32
	MaxRoll   float32

	// Throttle ramps toward its target at this rate (fraction/second)
	// rather than jumping, so thrust can't spike instantaneously.
	ThrottleRate float32

	// Below this airspeed, banking doesn't turn the aircraft; the banked
	// turn rate formula divides by airspeed.
	MinTurnAirspeed float32

	Initial AircraftState
}

func DefaultConfig() Config {
	return Config{
		Aero:            aero.DefaultConfig(),
		DT:              1.0 / 30,
		PitchRate:       25,
		RollRate:        60,
		MaxPitch:        75,
		MaxRoll:         70,
		ThrottleRate:    0.5,
		MinTurnAirspeed: 5,
		Initial: AircraftState{
			Position:       [3]float32{0, 250, 0},
			Velocity:       [3]float32{0, 0, 55},
			Throttle:       0.5,
			ThrottleTarget: 0.5,
		},
	}
}

func (c Config) Validate() error {
	if err := c.Aero.Validate(); err != nil {
		return err
	}
	if c.DT <= 0 {
		return ErrInvalidTimestep
	}
	if c.PitchRate <= 0 || c.RollRate <= 0 {
		return ErrInvalidControlRates
	}
	if c.ThrottleRate <= 0 {
		return ErrInvalidThrottleRate
	}
	return nil
}

// Sim owns the aircraft state and advances it one fixed timestep at a
// time. It is single-writer: only the caller's loop mutates it, via Step.
type Sim struct {
	State AircraftState

	cfg     Config
	terrain Terrain
	initial AircraftState

	paused bool
	ticks  int64

	eventStream *EventStream
	lg          *log.Logger
}

func New(cfg Config, terrain Terrain, es *EventStream, lg *log.Logger) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if terrain == nil {
		return nil, ErrNoTerrain
	}
	if cfg.Initial.Position[1] <= terrain.Height(cfg.Initial.Position[0], cfg.Initial.Position[2]) {
		return nil, ErrStartBelowTerrain
	}

	s := &Sim{
		State:       cfg.Initial,
		cfg:         cfg,
		terrain:     terrain,
		initial:     deep.MustCopy(cfg.Initial),
		eventStream: es,
		lg:          lg,
	}
	lg.Info("Sim initialized", slog.Any("state", s.State))
	return s, nil
}

func (s *Sim) Paused() bool { return s.paused }

func (s *Sim) Ticks() int64 { return s.ticks }

// Step advances the simulation by one fixed timestep under the given
// command. While paused or crashed the physics state is frozen, but Reset
// and Pause are still honored.
func (s *Sim) Step(cmd Command) {
	cmd = cmd.Clamped()

	if cmd.Reset {
		s.reset()
		return
	}
	if cmd.Pause {
		s.paused = !s.paused
		s.lg.Info("Pause toggled", slog.Bool("paused", s.paused))
	}
	if s.paused || s.State.Crashed {
		return
	}

	s.ticks++
	dt := s.cfg.DT
	st := &s.State

	st.PitchInput = cmd.PitchInput
	st.RollInput = cmd.RollInput

	// Throttle: the command adjusts the target; the actual setting ramps.
	st.ThrottleTarget = math.Clamp(st.ThrottleTarget+cmd.ThrottleDelta, 0, 1)
	if d := st.ThrottleTarget - st.Throttle; d != 0 {
		step := s.cfg.ThrottleRate * dt
		st.Throttle += math.Clamp(d, -step, step)
	}

	// Attitude: stick deflection commands pitch/roll rates directly.
	st.Pitch = math.Clamp(st.Pitch+cmd.PitchInput*s.cfg.PitchRate*dt,
		-s.cfg.MaxPitch, s.cfg.MaxPitch)
	st.Roll = math.Clamp(st.Roll+cmd.RollInput*s.cfg.RollRate*dt,
		-s.cfg.MaxRoll, s.cfg.MaxRoll)

	// Banked turn: heading follows from bank angle and airspeed. There's
	// no rudder; this is the only yaw path.
	if as := math.Length3f(st.Velocity); as > s.cfg.MinTurnAirspeed {
		rate := math.Degrees(s.cfg.Aero.Gravity * math.Tan(math.Radians(st.Roll)) / as)
		st.Heading = math.NormalizeHeading(st.Heading + rate*dt)
	}

	forces := aero.Forces(aero.State{
		Velocity: st.Velocity,
		Pitch:    st.Pitch,
		Roll:     st.Roll,
		Heading:  st.Heading,
		Throttle: st.Throttle,
		Stalled:  st.Stalled,
	}, s.cfg.Aero)

	if forces.Stalled != st.Stalled {
		if forces.Stalled {
			s.postEvent(StallEnteredEvent)
			s.lg.Warn("Stall", slog.Float64("alpha", float64(forces.AngleOfAttack)))
		} else {
			s.postEvent(StallExitedEvent)
		}
	}
	st.Stalled = forces.Stalled
	st.AngleOfAttack = forces.AngleOfAttack

	accel := math.Scale3f(forces.Sum(), 1/s.cfg.Aero.Mass)
	st.Velocity = math.Add3f(st.Velocity, math.Scale3f(accel, dt))
	st.Position = math.Add3f(st.Position, math.Scale3f(st.Velocity, dt))
	st.Airspeed = math.Length3f(st.Velocity)

	// Collision check: below the terrain is a crash, full stop. The
	// state stays frozen until an explicit reset.
	if h := s.terrain.Height(st.Position[0], st.Position[2]); st.Position[1] <= h {
		st.Position[1] = h
		st.Velocity = [3]float32{}
		st.Airspeed = 0
		st.Crashed = true
		s.postEvent(CrashedEvent)
		s.lg.Info("Crashed", slog.Any("state", *st))
	}
}

func (s *Sim) reset() {
	s.State = deep.MustCopy(s.initial)
	s.paused = false
	s.ticks = 0
	s.postEvent(ResetEvent)
	s.lg.Info("Reset", slog.Any("state", s.State))
}

func (s *Sim) postEvent(t EventType) {
	if s.eventStream != nil {
		s.eventStream.Post(Event{Type: t, State: s.State})
	}
}
