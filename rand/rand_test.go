// rand/rand_test.go
// Copyright(c) 2024-2026 skimmer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rand

import (
	"testing"
)

func TestPermutationElement(t *testing.T) {
	for _, n := range []int{8, 31, 10523} {
		for _, h := range []uint32{0, 0xff, 0xfeedface} {
			m := make(map[int]int)

			for i := 0; i < n; i++ {
				p := PermutationElement(i, n, h)
				if p < 0 || p >= n {
					t.Errorf("got %d for PermutationElement(%d, %d, %#x), out of range", p, i, n, h)
				}
				m[p]++
			}

			// Each element of [0,n) appears exactly once: it's a permutation.
			for p, count := range m {
				if count != 1 {
					t.Errorf("element %d appeared %d times for n=%d h=%#x", p, count, n, h)
				}
			}
		}
	}
}

func TestPermutationElementDeterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		a := PermutationElement(i, 256, 0xdeadbeef)
		b := PermutationElement(i, 256, 0xdeadbeef)
		if a != b {
			t.Errorf("PermutationElement not deterministic: got %d then %d for i=%d", a, b, i)
		}
	}
}

func TestSeededRand(t *testing.T) {
	var a, b Rand
	a = New()
	b = New()
	a.Seed(12345)
	b.Seed(12345)
	for i := 0; i < 32; i++ {
		if av, bv := a.Uint32(), b.Uint32(); av != bv {
			t.Errorf("seeded generators diverged at %d: %d vs %d", i, av, bv)
		}
	}
}
