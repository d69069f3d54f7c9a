// input.go
// Copyright(c) 2024-2026 skimmer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/skimmer-sim/skimmer/sim"
)

// InputHandler accumulates key presses between ticks and hands the sim
// one Command per tick. Terminals only report key-down, so controls are
// impulses: each press nudges the corresponding input for one tick.
type InputHandler struct {
	pending sim.Command
	resized bool
}

func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Process folds one tcell event into the pending command. Returns true
// if the event was consumed.
func (in *InputHandler) Process(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		in.resized = true
		return true

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyUp:
			in.pending.PitchInput += 1
		case tcell.KeyDown:
			in.pending.PitchInput -= 1
		case tcell.KeyLeft:
			in.pending.RollInput -= 1
		case tcell.KeyRight:
			in.pending.RollInput += 1
		case tcell.KeyEscape, tcell.KeyCtrlC:
			in.pending.Quit = true
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'w', 'W':
				in.pending.PitchInput += 1
			case 's', 'S':
				in.pending.PitchInput -= 1
			case 'a', 'A':
				in.pending.RollInput -= 1
			case 'd', 'D':
				in.pending.RollInput += 1
			case '+', '=':
				in.pending.ThrottleDelta += 0.05
			case '-', '_':
				in.pending.ThrottleDelta -= 0.05
			case 'r', 'R':
				in.pending.Reset = true
			case 'p', ' ':
				in.pending.Pause = true
			case 'q', 'Q':
				in.pending.Quit = true
			default:
				return false
			}
		default:
			return false
		}
		return true
	}
	return false
}

// Consume returns the accumulated command and resets for the next tick.
func (in *InputHandler) Consume() sim.Command {
	cmd := in.pending.Clamped()
	in.pending = sim.Command{}
	return cmd
}

// ConsumeResize reports and clears the pending resize flag.
func (in *InputHandler) ConsumeResize() bool {
	r := in.resized
	in.resized = false
	return r
}
