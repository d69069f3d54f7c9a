// main.go
// Copyright(c) 2024-2026 skimmer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// This file contains the implementation of the main() function, which
// initializes the system and then runs the simulation loop until the
// user quits.

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/skimmer-sim/skimmer/log"
	"github.com/skimmer-sim/skimmer/rand"
	"github.com/skimmer-sim/skimmer/renderer"
	"github.com/skimmer-sim/skimmer/sim"
	"github.com/skimmer-sim/skimmer/terrain"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"
)

var (
	logLevel = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir   = flag.String("logdir", "", "log file directory")
	seedFlag = flag.Uint("seed", 0, "terrain noise seed (0 chooses one randomly)")
	cockpit  = flag.Bool("cockpit", false, "cockpit view instead of chase view")
)

func main() {
	flag.Parse()

	// Initialize the logging system first and foremost.
	lg := log.New(*logLevel, *logDir)
	defer lg.CatchAndLogCrash()

	config, err := LoadOrMakeDefaultConfig(lg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if *seedFlag != 0 {
		config.Terrain.Seed = uint32(*seedFlag)
	}
	if config.Terrain.Seed == 0 {
		rand.Seed(time.Now().UnixNano())
		config.Terrain.Seed = rand.Uint32()
	}
	if *cockpit {
		config.Render.ChaseBack, config.Render.ChaseUp = 0, 0
	}

	field, err := terrain.New(config.Terrain)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid terrain configuration: %v\n", err)
		os.Exit(1)
	}

	eventStream := sim.NewEventStream(lg)
	s, err := sim.New(config.Sim, field, eventStream, lg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid sim configuration: %v\n", err)
		os.Exit(1)
	}

	rend, err := renderer.New(field, config.Render, lg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid renderer configuration: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.
		Background(tcell.ColorReset).
		Foreground(tcell.ColorReset))
	screen.Clear()

	if err := run(screen, config, s, eventStream, rend, lg); err != nil {
		lg.Errorf("%v", err)
	}
}

// run wires the tcell event pump and the simulation loop together and
// waits for both to wind down.
func run(screen tcell.Screen, config *GlobalConfig, s *sim.Sim, eventStream *sim.EventStream,
	rend *renderer.Renderer, lg *log.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		// Returns when quit is closed by the sim loop.
		screen.ChannelEvents(events, quit)
		return nil
	})
	eg.Go(func() error {
		defer close(quit)
		return simLoop(ctx, screen, config, s, eventStream, rend, lg, events)
	})
	return eg.Wait()
}

// simLoop is the single-writer heart of the program: poll input, advance
// physics one fixed timestep, render, pace to the target frame rate.
func simLoop(ctx context.Context, screen tcell.Screen, config *GlobalConfig, s *sim.Sim,
	eventStream *sim.EventStream, rend *renderer.Renderer, lg *log.Logger,
	events <-chan tcell.Event) error {
	in := NewInputHandler()
	stats := NewStats(lg)
	sub := eventStream.Subscribe()
	defer sub.Unsubscribe()

	w, h := screen.Size()
	grid, err := renderer.NewGrid(max(1, h-hudRows), w)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(time.Second / time.Duration(config.TargetFPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			in.Process(ev)

		case <-ticker.C:
			if in.ConsumeResize() {
				w, h := screen.Size()
				grid.Resize(max(1, h-hudRows), w)
				screen.Sync()
			}

			cmd := in.Consume()
			if cmd.Quit {
				lg.Info("Quit")
				return nil
			}

			s.Step(cmd)

			for _, ev := range sub.Get() {
				if ev.Type == sim.CrashedEvent || ev.Type == sim.StallEnteredEvent {
					screen.Beep()
				}
			}

			rend.Frame(s.State, grid)
			drawFrame(screen, grid, s.State, s.Paused())
			stats.FrameRendered()
			stats.MaybeLog(lg)
		}
	}
}
