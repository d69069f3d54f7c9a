// renderer/camera.go
// Copyright(c) 2024-2026 skimmer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"github.com/skimmer-sim/skimmer/math"
	"github.com/skimmer-sim/skimmer/sim"
)

// View is the camera frame for one rendered frame: an origin and an
// orthonormal basis.
type View struct {
	Position [3]float32
	Forward  [3]float32
	Up       [3]float32
	Right    [3]float32
}

// DeriveView computes the camera from the aircraft state. The camera
// shares the aircraft's orientation; its position trails by the
// configured chase offsets, applied along the aircraft's local axes.
// Pure function; the camera has no state of its own.
func DeriveView(state sim.AircraftState, cfg Config) View {
	m := math.RotationPRH(state.Pitch, state.Roll, state.Heading)

	v := View{
		Forward: m.TransformVector([3]float32{0, 0, 1}),
		Up:      m.TransformVector([3]float32{0, 1, 0}),
		Right:   m.TransformVector([3]float32{1, 0, 0}),
	}
	v.Position = math.Add3f(state.Position,
		math.Add3f(math.Scale3f(v.Forward, -cfg.ChaseBack),
			math.Scale3f(v.Up, cfg.ChaseUp)))
	return v
}
