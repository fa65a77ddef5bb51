package tick

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Easing is a 0..1 -> 0..1 shaping function, an alias of gween's ease.TweenFunc
// so callers outside this package don't need to import gween directly.
type Easing = ease.TweenFunc

// Segment is one leg of a queued tween: animate to To over Duration ticks
// using Fn. A zero Duration means "jump immediately", matching the engine's
// convention that a zero-length segment is a set rather than an animation.
type Segment struct {
	To       float64
	Duration Ticks
	Fn       Easing
}

// Tweener drives a single float64 property over time, backed by
// github.com/tanema/gween for the actual interpolation math. Unlike a bare
// gween.Tween it supports queuing several segments back to back and
// fast-forwarding through all of them in one call, which layer properties
// need when a command is skipped during message-skip mode.
//
// A Tweener with no active segment behaves as a constant: Update always
// reports done and leaves Value unchanged.
type Tweener struct {
	value   float64
	active  *gween.Tween
	queue   []Segment
	elapsed Ticks
}

// NewTweener creates a Tweener holding the given initial value with no
// queued animation.
func NewTweener(initial float64) *Tweener {
	return &Tweener{value: initial}
}

// Value returns the current interpolated value.
func (t *Tweener) Value() float64 {
	return t.value
}

// Set jumps the value immediately, clearing any in-flight or queued segment.
func (t *Tweener) Set(v float64) {
	t.value = v
	t.active = nil
	t.queue = t.queue[:0]
}

// Enqueue appends a segment to animate to, run after any segment already in
// flight or queued.
func (t *Tweener) Enqueue(seg Segment) {
	t.queue = append(t.queue, seg)
	if t.active == nil {
		t.startNext()
	}
}

// EnqueueNow clears the queue and starts seg immediately from the current value.
func (t *Tweener) EnqueueNow(seg Segment) {
	t.queue = t.queue[:0]
	t.active = nil
	t.queue = append(t.queue, seg)
	t.startNext()
}

func (t *Tweener) startNext() {
	if len(t.queue) == 0 {
		t.active = nil
		return
	}
	seg := t.queue[0]
	t.queue = t.queue[1:]
	t.elapsed = 0
	if seg.Duration <= 0 {
		t.value = seg.To
		t.active = nil
		t.startNext()
		return
	}
	fn := seg.Fn
	if fn == nil {
		fn = ease.Linear
	}
	t.active = gween.New(float32(t.value), float32(seg.To), float32(seg.Duration.Seconds()), fn)
}

// Update advances the active segment by dt and pulls the next queued segment
// in when it finishes. Returns true once the whole queue has drained.
func (t *Tweener) Update(dt Ticks) bool {
	if t.active == nil {
		return len(t.queue) == 0
	}
	val, finished := t.active.Update(float32(dt.Seconds()))
	t.value = float64(val)
	t.elapsed += dt
	if finished {
		t.startNext()
	}
	return t.active == nil && len(t.queue) == 0
}

// Busy reports whether a segment is in flight or queued.
func (t *Tweener) Busy() bool {
	return t.active != nil || len(t.queue) > 0
}

// FastForward collapses all in-flight and queued segments to their final
// values in one step. Used when the scheduler is told to skip ahead (e.g.
// during message-skip mode). gween clamps Update at the segment duration, so
// driving it with a duration-sized step lands exactly on the end value.
func (t *Tweener) FastForward() {
	for t.active != nil {
		val, _ := t.active.Update(1 << 20)
		t.value = float64(val)
		t.startNext()
	}
	for len(t.queue) > 0 {
		seg := t.queue[0]
		t.queue = t.queue[1:]
		t.value = seg.To
	}
	t.active = nil
}

// Wobbler layers a continuous low-frequency oscillation on top of a
// Tweener's settled value, the way the original engine's WOBBLE layer
// property perturbs translation/zoom/rotation without disturbing the
// underlying tween target. It is driven by a free-running phase rather than
// a gween.Tween since it never finishes.
type Wobbler struct {
	Amplitude float64
	Period    Ticks // ticks per full cycle; 0 disables wobble
	phase     Ticks
}

// Update advances the wobble phase by dt.
func (w *Wobbler) Update(dt Ticks) {
	if w.Period <= 0 {
		return
	}
	w.phase = (w.phase + dt) % w.Period
}

// Offset returns the current sinusoidal displacement to add to a base value.
func (w *Wobbler) Offset() float64 {
	if w.Period <= 0 || w.Amplitude == 0 {
		return 0
	}
	phase := float64(w.phase) / float64(w.Period)
	return w.Amplitude * math.Sin(2*math.Pi*phase)
}
