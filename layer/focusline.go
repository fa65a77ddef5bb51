package layer

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/DCNick3/shin-go/render"
	"github.com/DCNick3/shin-go/tick"
)

// FocusLine is a radial-blur layer: it draws its source texture pulled
// toward a focus point by PropBlurStrength, used for "rush lines" impact
// effects. Grounded on render.ProgramRadialBlur, itself generalized from
// the teacher's isotropic BlurFilter.
type FocusLine struct {
	props *Properties
	pass  render.Pass
}

// NewFocusLine returns a FocusLine layer with no blur (Strength 0).
func NewFocusLine() *FocusLine {
	return &FocusLine{props: NewProperties(), pass: render.NewEbitenPass()}
}

func (f *FocusLine) Properties() *Properties { return f.props }

func (f *FocusLine) Update(dt tick.Ticks) { f.props.Update(dt) }

// Apply draws src pulled toward the focus point (PropTranslateX/Y, in
// src's own pixel space) by PropBlurStrength, writing the result to dst.
func (f *FocusLine) Apply(dst, src *ebiten.Image) {
	f.pass.Draw(dst, render.ProgramWithArguments{
		Kind:     render.ProgramRadialBlur,
		CenterX:  float32(f.props.Value(PropTranslateX)),
		CenterY:  float32(f.props.Value(PropTranslateY)),
		Strength: float32(f.props.Value(PropBlurStrength)),
	}, src, nil, nil)
}
