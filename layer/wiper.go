package layer

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/DCNick3/shin-go/render"
	"github.com/DCNick3/shin-go/tick"
)

// wiperPass is the shared Kage pass both wiper kinds draw through. Lazily
// used, never reassigned, matching the teacher's single-render-goroutine
// assumption for its own lazily-compiled shaders (filter.go).
var wiperPass = render.NewEbitenPass()

// MaskFlags are the bit flags a Mask wiper's minmax band and UV mapping
// read.
type MaskFlags uint32

const (
	MaskFlipMinMax MaskFlags = 1 << iota
	MaskFlipX
	MaskFlipY
	MaskScale
)

// Wiper transitions a LayerGroup from its previous render (the "from"
// texture, snapshotted the instant the wipe starts) to its current render
// (the "to" texture) over time. A group has at most one wipe running at
// once.
type Wiper interface {
	// Update advances the wipe by dt; it is a no-op once the wipe has
	// finished.
	Update(dt tick.Ticks)
	// Running reports whether the wipe still has progress left to make.
	Running() bool
	// FastForward snaps the wipe to its completed state immediately.
	FastForward()
	// Render composites from and to (plus, for a Mask wipe, the mask
	// texture) onto dst according to current progress.
	Render(dst, from, to *ebiten.Image)
}

// timedWiper is the shared progress clock both wiper kinds wrap, matching
// the teacher's TimedWiperWrapper split between progress bookkeeping and
// the kind-specific render step.
type timedWiper struct {
	current  tick.Ticks
	duration tick.Ticks
}

func newTimedWiper(duration tick.Ticks) timedWiper {
	return timedWiper{duration: duration}
}

func (w *timedWiper) Update(dt tick.Ticks) {
	if w.current >= w.duration {
		return
	}
	w.current += dt
	if w.current >= w.duration {
		w.current = w.duration
	}
}

func (w *timedWiper) Running() bool {
	return w.current < w.duration
}

func (w *timedWiper) FastForward() {
	w.current = w.duration
}

func (w *timedWiper) progress() float64 {
	if w.duration <= 0 {
		return 1
	}
	return float64(w.current) / float64(w.duration)
}

// DefaultWiper is a plain cross-fade: it draws from opaque, then draws to
// with alpha = progress on top.
type DefaultWiper struct {
	timedWiper
}

// NewDefaultWiper returns a cross-fade wipe lasting duration ticks.
func NewDefaultWiper(duration tick.Ticks) *DefaultWiper {
	return &DefaultWiper{timedWiper: newTimedWiper(duration)}
}

func (w *DefaultWiper) Render(dst, from, to *ebiten.Image) {
	wiperPass.Draw(dst, render.ProgramWithArguments{
		Kind:  render.ProgramCrossFade,
		Alpha: float32(w.progress()),
	}, from, to, nil)
}

// MaskWiper blends from and to using a mask texture's luminance as a
// threshold: pixels whose mask value falls within a progress-driven
// [min,max] band show the "to" image, matching the teacher's min/max band
// sweep driven by 1/param2 as the band's width.
type MaskWiper struct {
	timedWiper
	mask   *ebiten.Image
	param2 float64
	flags  MaskFlags
}

// NewMaskWiper returns a mask-driven wipe lasting duration ticks. param2 is
// the slope of the threshold band (the band is 1/param2 wide): larger
// values produce a sharper edge.
func NewMaskWiper(duration tick.Ticks, mask *ebiten.Image, param2 float64, flags MaskFlags) *MaskWiper {
	return &MaskWiper{timedWiper: newTimedWiper(duration), mask: mask, param2: param2, flags: flags}
}

// band returns the current [min,max] threshold band the mask shader
// compares each pixel's mask value against.
func (w *MaskWiper) band() (min, max float64) {
	invParam2 := 1.0
	if w.param2 != 0 {
		invParam2 = 1.0 / w.param2
	}
	progress := w.progress()
	min = 1.0 - progress*(invParam2+1.0)
	max = min + invParam2
	if w.flags&MaskFlipMinMax != 0 {
		min, max = max, min
	}
	return min, max
}

// Render draws the progress-band threshold blend described by band(): for
// each pixel, from shows where the mask's red channel falls below the
// band and to shows where it falls above, with a linear ramp across the
// band itself. Falls back to a plain cross-fade when no mask texture was
// supplied.
func (w *MaskWiper) Render(dst, from, to *ebiten.Image) {
	if w.mask == nil {
		wiperPass.Draw(dst, render.ProgramWithArguments{
			Kind:  render.ProgramCrossFade,
			Alpha: float32(w.progress()),
		}, from, to, nil)
		return
	}

	min, max := w.band()
	wiperPass.Draw(dst, render.ProgramWithArguments{
		Kind:      render.ProgramMaskBlend,
		MaskMin:   float32(min),
		MaskMax:   float32(max),
		MaskFlipX: w.flags&MaskFlipX != 0,
		MaskFlipY: w.flags&MaskFlipY != 0,
	}, from, to, w.mask)
}
