package tick

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenerReachesTarget(t *testing.T) {
	tw := NewTweener(10)
	tw.Enqueue(Segment{To: 100, Duration: FromSeconds(1.0), Fn: ease.Linear})

	done := tw.Update(FromSeconds(0.5))
	if done {
		t.Fatal("expected not done at half duration")
	}
	done = tw.Update(FromSeconds(0.5))
	if !done {
		t.Fatal("expected done after full duration")
	}
	if math.Abs(tw.Value()-100) > 0.5 {
		t.Errorf("Value = %f, want ~100", tw.Value())
	}
}

func TestTweenerQueueChaining(t *testing.T) {
	tw := NewTweener(0)
	tw.Enqueue(Segment{To: 10, Duration: FromSeconds(1.0), Fn: ease.Linear})
	tw.Enqueue(Segment{To: 20, Duration: FromSeconds(1.0), Fn: ease.Linear})

	for i := 0; i < 60; i++ {
		tw.Update(1)
	}
	if math.Abs(tw.Value()-10) > 0.5 {
		t.Fatalf("after first segment, Value = %f, want ~10", tw.Value())
	}
	if !tw.Busy() {
		t.Fatal("expected second segment still queued/active")
	}
	for i := 0; i < 60; i++ {
		tw.Update(1)
	}
	if math.Abs(tw.Value()-20) > 0.5 {
		t.Fatalf("after second segment, Value = %f, want ~20", tw.Value())
	}
	if tw.Busy() {
		t.Fatal("expected queue drained")
	}
}

func TestTweenerZeroDurationJumps(t *testing.T) {
	tw := NewTweener(0)
	tw.Enqueue(Segment{To: 42, Duration: 0})
	if tw.Value() != 42 {
		t.Fatalf("zero-duration segment should jump immediately, got %f", tw.Value())
	}
	if tw.Busy() {
		t.Fatal("zero-duration segment should not leave the tweener busy")
	}
}

func TestTweenerFastForward(t *testing.T) {
	tw := NewTweener(0)
	tw.Enqueue(Segment{To: 10, Duration: FromSeconds(5), Fn: ease.Linear})
	tw.Enqueue(Segment{To: 30, Duration: FromSeconds(5), Fn: ease.Linear})

	tw.Update(1)
	tw.FastForward()

	if tw.Value() != 30 {
		t.Fatalf("Value = %f, want 30 after fast-forward", tw.Value())
	}
	if tw.Busy() {
		t.Fatal("expected tweener idle after fast-forward")
	}
}

func TestRationalScaleTicks(t *testing.T) {
	r := NewRational(1, 2)
	got := r.ScaleTicks(Ticks(121))
	if got != 61 {
		t.Fatalf("ScaleTicks(121) with 1/2 = %d, want 61 (rounds half up)", got)
	}
}

func TestWobblerOffsetBounded(t *testing.T) {
	w := Wobbler{Amplitude: 5, Period: FromSeconds(2)}
	max := 0.0
	for i := 0; i < 120; i++ {
		w.Update(1)
		if v := math.Abs(w.Offset()); v > max {
			max = v
		}
	}
	if max > 5.0001 {
		t.Fatalf("wobble amplitude exceeded bound: %f", max)
	}
}
