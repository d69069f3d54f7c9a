// renderer/shade.go
// Copyright(c) 2024-2026 skimmer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"github.com/skimmer-sim/skimmer/math"
)

// SkyDepth is the sentinel depth for rays that hit nothing within range.
const SkyDepth float32 = -1

// Ramp is the light-to-dark glyph ramp; nearer terrain gets darker
// glyphs, with the nearest mapped to the last entry.
var Ramp = []rune(" .:-=+*#%@")

type ShadeClass uint8

const (
	ShadeSky ShadeClass = iota
	ShadeFar
	ShadeMid
	ShadeNear
)

type Cell struct {
	Glyph rune
	Shade ShadeClass
}

// Shade maps a hit depth to a glyph and shade class. The mapping is
// monotonic: smaller depths never shade lighter than larger ones. Depths
// at or beyond maxRange clamp to the lightest glyph; depths at or below
// zero clamp to the darkest.
func Shade(depth, maxRange float32) Cell {
	if depth == SkyDepth {
		return Cell{Glyph: ' ', Shade: ShadeSky}
	}

	t := math.Clamp(depth/maxRange, 0, 1)
	idx := int((1 - t) * float32(len(Ramp)-1))

	var class ShadeClass
	switch {
	case idx <= 3:
		class = ShadeFar
	case idx <= 6:
		class = ShadeMid
	default:
		class = ShadeNear
	}
	return Cell{Glyph: Ramp[idx], Shade: class}
}
