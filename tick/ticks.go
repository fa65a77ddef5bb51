// Package tick implements the engine's fixed-point time base and the
// animation primitives (tweens, wobblers) that every other package layers
// its timing on. Nothing in here touches rendering or scenario state.
package tick

import "fmt"

// Ticks is a frame-rate independent time duration, counted in 1/60th of a
// second units the way the original engine counts them. Using an integer
// tick count instead of a float seconds value keeps fast-forward and replay
// math exact instead of accumulating rounding error frame over frame.
type Ticks int32

// TicksPerSecond is the fixed tick rate the whole timing model is built on.
const TicksPerSecond = 60

// FromSeconds converts a floating point second duration to Ticks, rounding
// to the nearest tick.
func FromSeconds(seconds float64) Ticks {
	return Ticks(seconds*TicksPerSecond + 0.5)
}

// Seconds converts back to a floating point second duration.
func (t Ticks) Seconds() float64 {
	return float64(t) / TicksPerSecond
}

// Rational is an exact fractional tick count, used where the original
// engine needs sub-tick precision (e.g. fast-forward multipliers) without
// drifting the way a float64 accumulator would over a long scene.
type Rational struct {
	Num, Den int64
}

// NewRational returns a reduced Rational equal to num/den. Den must not be 0.
func NewRational(num, den int64) Rational {
	if den == 0 {
		panic("tick: zero denominator")
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs64(num), den)
	if g == 0 {
		g = 1
	}
	return Rational{Num: num / g, Den: den / g}
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Float64 returns the rational as a float64.
func (r Rational) Float64() float64 {
	return float64(r.Num) / float64(r.Den)
}

// Mul returns r*other as a reduced Rational.
func (r Rational) Mul(other Rational) Rational {
	return NewRational(r.Num*other.Num, r.Den*other.Den)
}

// ScaleTicks scales a Ticks duration by this rational, rounding to nearest.
func (r Rational) ScaleTicks(t Ticks) Ticks {
	num := int64(t) * r.Num
	den := r.Den
	q := num / den
	rem := num % den
	if rem*2 >= den {
		q++
	} else if rem*2 <= -den {
		q--
	}
	return Ticks(q)
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}
