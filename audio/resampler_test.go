package audio

import "testing"

func TestResamplerStartsSilent(t *testing.T) {
	r := NewResampler(0)
	if !r.OutputtingSilence() {
		t.Fatal("a freshly created resampler should be outputting silence")
	}
}

func TestResamplerInterpolatesBetweenCenterTaps(t *testing.T) {
	r := NewResampler(0)
	r.PushFrame(Frame{L: 0, R: 0}, 0)
	r.PushFrame(Frame{L: 0, R: 0}, 1)
	r.PushFrame(Frame{L: 1, R: 1}, 2)
	r.PushFrame(Frame{L: 1, R: 1}, 3)

	if r.OutputtingSilence() {
		t.Fatal("window has nonzero taps, should not report silence")
	}

	at0 := r.Get(0)
	if at0.L < -0.01 || at0.L > 0.01 {
		t.Fatalf("Get(0) should land on the first center tap (0), got %v", at0.L)
	}

	at1 := r.Get(1)
	if at1.L < 0.99 || at1.L > 1.01 {
		t.Fatalf("Get(1) should land on the second center tap (1), got %v", at1.L)
	}
}

func TestResamplerCurrentFrameIndexIsSecondTap(t *testing.T) {
	r := NewResampler(0)
	r.PushFrame(Frame{}, 10)
	r.PushFrame(Frame{}, 11)
	r.PushFrame(Frame{}, 12)
	r.PushFrame(Frame{}, 13)
	if got := r.CurrentFrameIndex(); got != 11 {
		t.Fatalf("CurrentFrameIndex() = %d, want 11 (second tap)", got)
	}
}
