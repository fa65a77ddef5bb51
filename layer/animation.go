package layer

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/DCNick3/shin-go/format/picture"
	"github.com/DCNick3/shin-go/tick"
)

// Animation is a frame-sequence layer: a fixed list of pictures shown one
// at a time, advancing at frameDuration ticks per frame and looping,
// grounded on the teacher's particle/tilemap frame-stepping pattern
// (tilemap.go) generalized from tile indices to whole composited frames.
type Animation struct {
	props         *Properties
	frames        []*ebiten.Image
	frameDuration tick.Ticks
	elapsed       tick.Ticks
	current       int
	looping       bool
}

// NewAnimation builds one texture per decoded picture frame.
func NewAnimation(pics []*picture.Picture, frameDuration tick.Ticks, looping bool) *Animation {
	frames := make([]*ebiten.Image, len(pics))
	for i, pic := range pics {
		frames[i] = NewPicture(pic).texture
	}
	return &Animation{
		props:         NewProperties(),
		frames:        frames,
		frameDuration: frameDuration,
		looping:       looping,
	}
}

func (a *Animation) Properties() *Properties { return a.props }

// Update advances both the tweened properties and the frame clock.
func (a *Animation) Update(dt tick.Ticks) {
	a.props.Update(dt)
	if len(a.frames) == 0 || a.frameDuration <= 0 {
		return
	}
	a.elapsed += dt
	for a.elapsed >= a.frameDuration {
		a.elapsed -= a.frameDuration
		a.current++
		if a.current >= len(a.frames) {
			if a.looping {
				a.current = 0
			} else {
				a.current = len(a.frames) - 1
				a.elapsed = 0
			}
		}
	}
}

// CurrentFrame returns the 0-indexed frame currently displayed.
func (a *Animation) CurrentFrame() int { return a.current }

// Draw composites the current frame onto dst.
func (a *Animation) Draw(dst *ebiten.Image) {
	if len(a.frames) == 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(a.props.Value(PropScaleX), a.props.Value(PropScaleY))
	op.GeoM.Translate(a.props.Value(PropTranslateX), a.props.Value(PropTranslateY))
	op.ColorScale.ScaleAlpha(float32(a.props.Value(PropOpacity)))
	dst.DrawImage(a.frames[a.current], &op)
}
