// sim/sim_test.go
// Copyright(c) 2024-2026 skimmer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"testing"

	"github.com/skimmer-sim/skimmer/terrain"
)

// flatTerrain is a height field that is zero everywhere; handy for tests
// with known collision altitude.
type flatTerrain struct{}

func (flatTerrain) Height(x, z float32) float32 { return 0 }

func newTestSim(t *testing.T, cfg Config) *Sim {
	t.Helper()
	s, err := New(cfg, flatTerrain{}, NewEventStream(nil), nil)
	if err != nil {
		t.Fatalf("unexpected error creating sim: %v", err)
	}
	return s
}

func TestConfigValidate(t *testing.T) {
	for _, c := range []struct {
		mutate func(*Config)
		err    error
	}{
		{func(c *Config) { c.DT = 0 }, ErrInvalidTimestep},
		{func(c *Config) { c.PitchRate = -1 }, ErrInvalidControlRates},
		{func(c *Config) { c.ThrottleRate = 0 }, ErrInvalidThrottleRate},
	} {
		cfg := DefaultConfig()
		c.mutate(&cfg)
		if _, err := New(cfg, flatTerrain{}, nil, nil); err != c.err {
			t.Errorf("got %v creating sim, expected %v", err, c.err)
		}
	}

	if _, err := New(DefaultConfig(), nil, nil, nil); err != ErrNoTerrain {
		t.Errorf("got %v for nil terrain, expected ErrNoTerrain", err)
	}

	cfg := DefaultConfig()
	cfg.Initial.Position[1] = -10
	if _, err := New(cfg, flatTerrain{}, nil, nil); err != ErrStartBelowTerrain {
		t.Errorf("got %v for underground start, expected ErrStartBelowTerrain", err)
	}
}

func TestGravityDescentAndCrash(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Initial.Throttle = 0
	cfg.Initial.ThrottleTarget = 0
	cfg.Initial.Velocity = [3]float32{0, 0, 50}
	s := newTestSim(t, cfg)

	start := s.State.Altitude()
	crashedAt := -1
	for i := 0; i < 20000; i++ {
		s.Step(Command{})
		if s.State.Crashed {
			crashedAt = i
			break
		}
		if s.State.Altitude() > start+10 {
			t.Fatalf("altitude %v climbed well above start %v with no thrust",
				s.State.Altitude(), start)
		}
	}

	if crashedAt < 0 {
		t.Fatalf("never crashed descending with zero throttle; altitude %v", s.State.Altitude())
	}
	if s.State.Altitude() != 0 {
		t.Errorf("got altitude %v after crash on flat terrain, expected 0", s.State.Altitude())
	}

	// The overall trend must be downward well before impact.
	s2 := newTestSim(t, cfg)
	var altAt300, altAt900 float32
	for i := 0; i < 900 && !s2.State.Crashed; i++ {
		s2.Step(Command{})
		if i == 299 {
			altAt300 = s2.State.Altitude()
		}
		if i == 899 {
			altAt900 = s2.State.Altitude()
		}
	}
	if !s2.State.Crashed && altAt900 >= altAt300 {
		t.Errorf("altitude not trending down: %v at tick 300, %v at tick 900", altAt300, altAt900)
	}
}

func TestClimbWithoutStall(t *testing.T) {
	cfg := DefaultConfig()
	s := newTestSim(t, cfg)

	start := s.State.Altitude()
	for i := 0; i < 3000; i++ {
		var cmd Command
		if i == 0 {
			cmd.ThrottleDelta = 1 // target full throttle; actual ramps
		}
		if s.State.Pitch < 8 {
			cmd.PitchInput = 0.5
		}
		s.Step(cmd)

		if s.State.Stalled {
			t.Fatalf("stalled at tick %d with alpha %v", i, s.State.AngleOfAttack)
		}
		if s.State.Crashed {
			t.Fatalf("crashed at tick %d climbing under full throttle", i)
		}
	}

	if s.State.Altitude() < start+50 {
		t.Errorf("altitude %v after climb, expected at least %v", s.State.Altitude(), start+50)
	}
	if s.State.Throttle != 1 {
		t.Errorf("throttle %v after ramp, expected 1", s.State.Throttle)
	}
}

func TestThrottleRamps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Initial.Throttle = 0
	cfg.Initial.ThrottleTarget = 0
	s := newTestSim(t, cfg)

	s.Step(Command{ThrottleDelta: 1})
	if s.State.ThrottleTarget != 1 {
		t.Errorf("got throttle target %v, expected 1", s.State.ThrottleTarget)
	}
	if s.State.Throttle >= 0.5 {
		t.Errorf("throttle jumped to %v in one tick, expected gradual ramp", s.State.Throttle)
	}

	// At 0.5/sec the ramp takes two seconds of ticks to complete.
	for i := 0; i < int(2.5/cfg.DT); i++ {
		s.Step(Command{})
	}
	if s.State.Throttle != 1 {
		t.Errorf("throttle %v after ramp completed, expected 1", s.State.Throttle)
	}
}

func TestCrashFreezesState(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Initial.Position[1] = 5
	cfg.Initial.Velocity = [3]float32{0, -30, 30}
	s := newTestSim(t, cfg)

	for i := 0; i < 100 && !s.State.Crashed; i++ {
		s.Step(Command{})
	}
	if !s.State.Crashed {
		t.Fatalf("never crashed diving at the ground")
	}

	frozen := s.State
	for i := 0; i < 100; i++ {
		s.Step(Command{PitchInput: 1, RollInput: -1, ThrottleDelta: 0.1})
	}
	if s.State != frozen {
		t.Errorf("state changed after crash: %+v vs %+v", s.State, frozen)
	}
}

func TestReset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Initial.Position[1] = 5
	cfg.Initial.Velocity = [3]float32{0, -30, 30}
	s := newTestSim(t, cfg)
	sub := s.eventStream.Subscribe()

	for i := 0; i < 100 && !s.State.Crashed; i++ {
		s.Step(Command{})
	}
	if !s.State.Crashed {
		t.Fatalf("never crashed diving at the ground")
	}

	s.Step(Command{Reset: true})
	if s.State != cfg.Initial {
		t.Errorf("got %+v after reset, expected initial state %+v", s.State, cfg.Initial)
	}

	events := sub.Get()
	var sawCrash, sawReset bool
	for _, e := range events {
		sawCrash = sawCrash || e.Type == CrashedEvent
		sawReset = sawReset || e.Type == ResetEvent
	}
	if !sawCrash || !sawReset {
		t.Errorf("expected crash and reset events, got %+v", events)
	}
}

func TestPause(t *testing.T) {
	s := newTestSim(t, DefaultConfig())

	s.Step(Command{Pause: true})
	if !s.Paused() {
		t.Fatalf("not paused after pause command")
	}

	before := s.State
	for i := 0; i < 50; i++ {
		s.Step(Command{PitchInput: 1})
	}
	if s.State != before {
		t.Errorf("state advanced while paused")
	}

	// Reset is honored while paused and resumes.
	s.Step(Command{Reset: true})
	if s.Paused() {
		t.Errorf("still paused after reset")
	}

	s.Step(Command{Pause: true})
	s.Step(Command{Pause: true})
	if s.Paused() {
		t.Errorf("pause didn't toggle back off")
	}
}

func TestDeterminism(t *testing.T) {
	field, err := terrain.New(terrain.DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error creating terrain: %v", err)
	}

	run := func() []AircraftState {
		s, err := New(DefaultConfig(), field, NewEventStream(nil), nil)
		if err != nil {
			t.Fatalf("unexpected error creating sim: %v", err)
		}
		var states []AircraftState
		for i := 0; i < 1000; i++ {
			cmd := Command{
				PitchInput: float32(i%7-3) / 3,
				RollInput:  float32(i%5-2) / 2,
			}
			if i%100 == 0 {
				cmd.ThrottleDelta = 0.05
			}
			s.Step(cmd)
			if i%50 == 0 {
				states = append(states, s.State)
			}
		}
		return states
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("runs diverged at sample %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestBankedTurnChangesHeading(t *testing.T) {
	s := newTestSim(t, DefaultConfig())

	for i := 0; i < 60; i++ {
		s.Step(Command{RollInput: 1})
	}
	if s.State.Roll <= 0 {
		t.Fatalf("roll %v after right stick, expected positive", s.State.Roll)
	}

	h0 := s.State.Heading
	for i := 0; i < 120; i++ {
		s.Step(Command{})
	}
	if s.State.Heading == h0 {
		t.Errorf("heading unchanged while banked at %v degrees", s.State.Roll)
	}
}
