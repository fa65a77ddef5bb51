package layer

import (
	"math"

	"github.com/DCNick3/shin-go/tick"
)

// WobbleMode selects the waveform a Wobbler outputs. The numeric values
// are the wire identifiers LAYERCTRL sends for the wobble-mode property,
// so they must not be renumbered.
type WobbleMode int32

const (
	WobbleDisabled WobbleMode = iota
	// WobbleRandom jumps to a new random value every period.
	WobbleRandom
	// WobbleTriangular ramps 0->1 over the first quarter period, 1->-1
	// over the middle half, then -1->0 over the last quarter.
	WobbleTriangular
	// WobbleSquare holds -1 for the first half of the period, 1 for the
	// second half.
	WobbleSquare
	WobbleSine
	WobbleCosine
	// WobbleAbsSine is abs(sin(2*pi*t)).
	WobbleAbsSine
	// WobbleSawtooth ramps 0->1 across the period then jumps back to 0.
	WobbleSawtooth
	// WobbleInvSawtooth ramps 1->0 across the period then jumps back to 1.
	WobbleInvSawtooth
)

// Wobbler drives a layer property's wobble offset per spec: one of nine
// waveforms, parameterized by a period and (for the random mode) a seed,
// producing a value in [-1,1].
type Wobbler struct {
	mode   WobbleMode
	seed   int32
	period tick.Ticks
	time   float64 // measured in periods, integral part wraps at 1000
}

// NewWobbler returns a disabled Wobbler.
func NewWobbler(seed int32) *Wobbler {
	return &Wobbler{mode: WobbleDisabled, seed: seed}
}

// Active reports whether the wobbler produces a nonzero output.
func (w *Wobbler) Active() bool {
	return w.mode != WobbleDisabled && w.period > 0
}

// Value returns the current waveform output in [-1,1].
func (w *Wobbler) Value() float64 {
	if !w.Active() {
		return 0
	}
	t := w.time - math.Floor(w.time)
	switch w.mode {
	case WobbleRandom:
		return randomWobble(t, int32(math.Floor(w.time-t)), w.seed)
	case WobbleTriangular:
		switch {
		case t < 0.25:
			return t * 4
		case t < 0.75:
			return 2 - t*4
		default:
			return t*4 - 4
		}
	case WobbleSquare:
		if t < 0.5 {
			return -1
		}
		return 1
	case WobbleSine:
		return math.Sin(t * 2 * math.Pi)
	case WobbleCosine:
		return math.Cos(t * 2 * math.Pi)
	case WobbleAbsSine:
		return math.Abs(math.Sin(t * 2 * math.Pi))
	case WobbleSawtooth:
		return t
	case WobbleInvSawtooth:
		return 1 - t
	default:
		return 0
	}
}

// Configure sets the wobbler's mode and period, resetting its phase to
// zero whenever either changes from its current setting. LAYERCTRL calls
// this directly (mode and period are not tweened).
func (w *Wobbler) Configure(mode WobbleMode, period tick.Ticks) {
	if mode != w.mode || period != w.period {
		w.mode = mode
		w.period = period
		w.time = 0
	}
}

// Update advances the wobbler's phase by dt ticks.
func (w *Wobbler) Update(dt tick.Ticks) {
	if !w.Active() {
		return
	}

	t := w.time + float64(dt)/float64(w.period)
	intPart := math.Floor(t)
	frac := t - intPart
	if frac < 0 {
		frac += 1
	}
	intPart = math.Mod(intPart, 1000)
	if intPart < 0 {
		intPart += 1000
	}
	w.time = intPart + frac
}

// randomWobble returns a deterministic pseudo-random value in [-1,1] for
// period index n of a seeded random-mode wobbler, held constant across a
// period and changing only when n or seed changes. The exact bit-mixing
// function used by the original engine's PRNG was not available to ground
// this on, so this uses a standard integer hash instead; it satisfies the
// same contract (stable per period, deterministic, roughly uniform) without
// claiming byte-for-byte parity.
func randomWobble(t float64, n int32, seed int32) float64 {
	_ = t
	x := uint32(n)*0x9e3779b1 + uint32(seed)*0x85ebca6b
	x ^= x >> 15
	x *= 0x27d4eb2d
	x ^= x >> 15
	return float64(x%2000)/1000 - 1
}
