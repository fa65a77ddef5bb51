package render

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	etext "github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/DCNick3/shin-go/message"
)

// Font wraps Ebitengine's text/v2 GoTextFace so a decoded TrueType font can
// satisfy message.Font (per-rune advance plus line height) and also draw
// glyphs to an *ebiten.Image, generalized from the teacher's TTFFont
// (text.go) which served the same two roles for its own bitmap-atlas text
// pipeline.
type Font struct {
	face etext.Face
	lh   float64
}

var _ message.Font = (*Font)(nil)

// LoadFont parses ttfData (TTF/OTF) at the given pixel size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := etext.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("render: parse font data: %w", err)
	}

	face := &etext.GoTextFace{Source: source, Size: size}
	m := face.Metrics()

	return &Font{
		face: face,
		lh:   m.HAscent + m.HDescent + m.HLineGap,
	}, nil
}

// Advance returns the horizontal distance a single rune's glyph advances.
func (f *Font) Advance(r rune) float64 {
	w, _ := etext.Measure(string(r), f.face, f.lh)
	return w
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 { return f.lh }

// Draw renders s at (x, y) (top-left origin) onto dst, tinted by the given
// straight-alpha color.
func (f *Font) Draw(dst *ebiten.Image, s string, x, y float64, clr message.Color) {
	var op etext.DrawOptions
	op.GeoM.Translate(x, y)
	op.ColorScale.Scale(float32(clr.R), float32(clr.G), float32(clr.B), float32(clr.A))
	etext.Draw(dst, s, f.face, &op)
}
