// Released under an MIT license. See LICENSE.

// Package randsrc provides the random source behind the `?=` builtin: a
// uniform integer below a floored upper bound. The teacher has no
// third-party RNG dependency either, so math/rand/v2 is the grounded
// choice here.
package randsrc

import (
	"math"
	"math/rand/v2"
)

// T is a RandBelow source suitable for eval.Host.
type T struct{}

// New creates a random source seeded from the runtime's default generator.
func New() T { return T{} }

// RandBelow returns a uniform integer in [0, max(0, floor(n))), or 0 when
// n <= 0.
func (T) RandBelow(n float64) float64 {
	bound := math.Floor(n)
	if bound <= 0 {
		return 0
	}

	return float64(rand.Int64N(int64(bound)))
}
