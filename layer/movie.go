package layer

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/DCNick3/shin-go/tick"
)

// VideoFrameSource pulls decoded video frames on demand. No concrete
// decoder is wired in this module (the pack carries no Go video-decoding
// library), so Movie depends only on this interface; a future decoder
// package can satisfy it without changing the layer.
type VideoFrameSource interface {
	// NextFrame returns the next decoded frame, or nil once the stream is
	// exhausted.
	NextFrame() *ebiten.Image
	// FrameDuration is how long the current frame should be shown for.
	FrameDuration() tick.Ticks
}

// Movie is a video playback layer, stepping through a VideoFrameSource at
// its own frame rate independent of the properties tween clock.
type Movie struct {
	props   *Properties
	source  VideoFrameSource
	frame   *ebiten.Image
	elapsed tick.Ticks
}

// NewMovie returns a Movie pulling frames from source.
func NewMovie(source VideoFrameSource) *Movie {
	m := &Movie{props: NewProperties(), source: source}
	if source != nil {
		m.frame = source.NextFrame()
	}
	return m
}

func (m *Movie) Properties() *Properties { return m.props }

func (m *Movie) Update(dt tick.Ticks) {
	m.props.Update(dt)
	if m.source == nil {
		return
	}
	frameDur := m.source.FrameDuration()
	if frameDur <= 0 {
		return
	}
	m.elapsed += dt
	for m.elapsed >= frameDur {
		m.elapsed -= frameDur
		if next := m.source.NextFrame(); next != nil {
			m.frame = next
		}
	}
}

// Draw composites the current video frame onto dst.
func (m *Movie) Draw(dst *ebiten.Image) {
	if m.frame == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(m.props.Value(PropScaleX), m.props.Value(PropScaleY))
	op.GeoM.Translate(m.props.Value(PropTranslateX), m.props.Value(PropTranslateY))
	op.ColorScale.ScaleAlpha(float32(m.props.Value(PropOpacity)))
	dst.DrawImage(m.frame, &op)
}
