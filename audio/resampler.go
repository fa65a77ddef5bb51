package audio

// Frame is one stereo sample pair, matching kira's Frame type that
// resampler.rs interpolates between.
type Frame struct {
	L, R float32
}

// recentFrame pairs a Frame with the source sample index it was decoded
// from, so current_frame_index (for a future BGMSYNC) can report it.
type recentFrame struct {
	frame Frame
	index uint32
}

// Resampler is a 4-tap interpolation window over a FrameSource's recently
// decoded frames, transcribed from shin-audio's Resampler: pushFrame
// shifts a 4-element ring, get interpolates within it at a fractional
// position between the two center taps. The interpolation itself is the
// "4-point, 3rd-order" Catmull-Rom variant kira documents its own
// interpolate_frame as using; kira's crate source wasn't in the retrieved
// example set, so this is the standard published formula rather than a
// byte-for-byte transcription of kira's internals.
type Resampler struct {
	frames [4]recentFrame
}

// NewResampler returns a Resampler whose window is filled with silence
// stamped at startingFrameIndex.
func NewResampler(startingFrameIndex uint32) *Resampler {
	r := &Resampler{}
	for i := range r.frames {
		r.frames[i] = recentFrame{frame: Frame{}, index: startingFrameIndex}
	}
	return r
}

// PushFrame shifts frame into the window at sampleIndex, discarding the
// oldest tap.
func (r *Resampler) PushFrame(frame Frame, sampleIndex uint32) {
	copy(r.frames[:3], r.frames[1:])
	r.frames[3] = recentFrame{frame: frame, index: sampleIndex}
}

// Get interpolates the frame at fractionalPosition (0..1) between the two
// center taps, using the outer two taps to shape the curve.
func (r *Resampler) Get(fractionalPosition float32) Frame {
	y0, y1, y2, y3 := r.frames[0].frame, r.frames[1].frame, r.frames[2].frame, r.frames[3].frame
	return Frame{
		L: interpolate(y0.L, y1.L, y2.L, y3.L, fractionalPosition),
		R: interpolate(y0.R, y1.R, y2.R, y3.R, fractionalPosition),
	}
}

// interpolate is Olli Niemitalo's optimal 4-point, 3rd-order Hermite /
// Catmull-Rom spline: the standard formula kira's interpolate_frame
// implements for this exact 4-tap shape.
func interpolate(y0, y1, y2, y3, x float32) float32 {
	c0 := y1
	c1 := 0.5 * (y2 - y0)
	c2 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	c3 := 0.5*(y3-y0) + 1.5*(y1-y2)
	return ((c3*x+c2)*x+c1)*x + c0
}

// CurrentFrameIndex returns the source frame index the user is currently
// hearing — not the most recently pushed frame, but the window's first
// center tap, matching resampler.rs's documented semantics. Unused until
// BGMSYNC is implemented, mirroring the Rust source's own #[allow(unused)].
func (r *Resampler) CurrentFrameIndex() uint32 {
	return r.frames[1].index
}

// OutputtingSilence reports whether every tap in the window is still
// silence (the window has never been pushed to, or the source ended).
func (r *Resampler) OutputtingSilence() bool {
	for _, f := range r.frames {
		if f.frame != (Frame{}) {
			return false
		}
	}
	return true
}
