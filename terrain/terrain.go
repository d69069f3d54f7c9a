// terrain/terrain.go
// Copyright(c) 2024-2026 skimmer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package terrain

import (
	"errors"

	"github.com/skimmer-sim/skimmer/math"
	"github.com/skimmer-sim/skimmer/rand"

	lru "github.com/hashicorp/golang-lru/v2"
)

var (
	ErrInvalidOctaves     = errors.New("Octave count must be between 1 and 12")
	ErrInvalidWavelength  = errors.New("Base wavelength must be positive")
	ErrInvalidAmplitude   = errors.New("Amplitude must be non-negative")
	ErrInvalidLacunarity  = errors.New("Lacunarity must be greater than 1")
	ErrInvalidPersistence = errors.New("Persistence must be in (0,1]")
)

// Params configures the terrain height field. The field is a pure function
// of position and Params; two Fields created with equal Params return
// identical heights everywhere.
type Params struct {
	Seed        uint32
	Octaves     int
	Wavelength  float32 // feature size of the lowest octave, world units
	Amplitude   float32 // height contribution of the lowest octave
	Lacunarity  float32 // frequency multiplier between octaves
	Persistence float32 // amplitude multiplier between octaves
}

func DefaultParams() Params {
	return Params{
		Seed:        0x5eed1e55,
		Octaves:     5,
		Wavelength:  256,
		Amplitude:   60,
		Lacunarity:  2,
		Persistence: 0.5,
	}
}

func (p Params) Validate() error {
	if p.Octaves < 1 || p.Octaves > 12 {
		return ErrInvalidOctaves
	}
	if p.Wavelength <= 0 {
		return ErrInvalidWavelength
	}
	if p.Amplitude < 0 {
		return ErrInvalidAmplitude
	}
	if p.Lacunarity <= 1 {
		return ErrInvalidLacunarity
	}
	if p.Persistence <= 0 || p.Persistence > 1 {
		return ErrInvalidPersistence
	}
	return nil
}

// Field evaluates multi-octave gradient noise over an unbounded plane.
// Heights are deterministic in (x, z, Seed) regardless of query order; the
// only internal state is a memoization cache for lattice gradients, which
// are themselves pure functions of their lattice coordinates.
type Field struct {
	p     Params
	maxEl float32
	grads *lru.Cache[uint64, [2]float32]
}

func New(p Params) (*Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	// Gradients for the four corners of the cells visited by a frame's
	// rays; 8k entries is far more than one frame touches.
	grads, err := lru.New[uint64, [2]float32](8192)
	if err != nil {
		return nil, err
	}

	f := &Field{p: p, grads: grads}
	amp := p.Amplitude
	for o := 0; o < p.Octaves; o++ {
		f.maxEl += amp
		amp *= p.Persistence
	}
	return f, nil
}

// Height returns the terrain elevation at (x, z). x and z are unbounded.
func (f *Field) Height(x, z float32) float32 {
	freq := 1 / f.p.Wavelength
	amp := f.p.Amplitude
	var h float32
	for o := 0; o < f.p.Octaves; o++ {
		h += amp * f.noise(x*freq, z*freq, uint32(o))
		freq *= f.p.Lacunarity
		amp *= f.p.Persistence
	}
	return h
}

// MaxElevation returns a bound on |Height|: the sum of the octave
// amplitudes. The raycaster uses it to terminate rays that have climbed
// above any possible terrain.
func (f *Field) MaxElevation() float32 {
	return f.maxEl
}

// There are 16 candidate gradient directions, evenly spaced on the unit
// circle. Which one a lattice point gets is determined by a seeded
// permutation of its hashed coordinates.
var gradientDirs [16][2]float32

func init() {
	for i := range gradientDirs {
		a := float32(i) / 16 * 2 * math.Pi()
		gradientDirs[i] = [2]float32{math.Cos(a), math.Sin(a)}
	}
}

// 30 bits per coordinate plus 4 octave bits, packed without overlap so
// distinct lattice points can't share a cache entry. Rays never get
// anywhere near +/-2^29 lattice cells from the origin.
func latticeKey(ix, iz int32, octave uint32) uint64 {
	return uint64(uint32(ix)&0x3fffffff)<<34 | uint64(uint32(iz)&0x3fffffff)<<4 | uint64(octave&15)
}

func (f *Field) gradient(ix, iz int32, octave uint32) [2]float32 {
	key := latticeKey(ix, iz, octave)
	if g, ok := f.grads.Get(key); ok {
		return g
	}

	// Avalanche the lattice coordinates down to 16 bits and let the
	// seeded permutation pick the direction; the permutation is a pure
	// function, so a cache miss can never change the result.
	h := uint32(ix)*0x9e3779b1 ^ uint32(iz)*0x85ebca6b ^ octave*0xc2b2ae35
	h ^= h >> 15
	h *= 0x2c1b3c6d
	h ^= h >> 12
	gi := rand.PermutationElement(int(h&0xffff), 1<<16, f.p.Seed) & 15

	g := gradientDirs[gi]
	f.grads.Add(key, g)
	return g
}

// quintic fade, zero first and second derivatives at the lattice
func fade(t float32) float32 {
	return t * t * t * (t*(t*6-15) + 10)
}

// noise returns 2D gradient noise at (x, z), roughly in [-1, 1].
func (f *Field) noise(x, z float32, octave uint32) float32 {
	fx, fz := math.Floor(x), math.Floor(z)
	ix, iz := int32(fx), int32(fz)
	tx, tz := x-fx, z-fz

	g00 := f.gradient(ix, iz, octave)
	g10 := f.gradient(ix+1, iz, octave)
	g01 := f.gradient(ix, iz+1, octave)
	g11 := f.gradient(ix+1, iz+1, octave)

	d00 := g00[0]*tx + g00[1]*tz
	d10 := g10[0]*(tx-1) + g10[1]*tz
	d01 := g01[0]*tx + g01[1]*(tz-1)
	d11 := g11[0]*(tx-1) + g11[1]*(tz-1)

	u, v := fade(tx), fade(tz)
	n := math.Lerp(v, math.Lerp(u, d00, d10), math.Lerp(u, d01, d11))

	// Scale so the extrema of unit-gradient 2D noise reach roughly +/-1.
	return n * 1.4142135
}
