package layer

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/DCNick3/shin-go/render"
	"github.com/DCNick3/shin-go/tick"
)

// Effect is a full-screen post-processing layer driven by its 20 leading
// shader-param slots as a 4x5 color matrix, grounded on the teacher's
// ColorMatrixFilter (filter.go), generalized from a per-node filter to a
// standalone layer kind LAYERCTRL can address like any other layer.
type Effect struct {
	props *Properties
	pass  render.Pass
}

// NewEffect returns an Effect layer with an identity color matrix.
func NewEffect() *Effect {
	return &Effect{props: NewProperties(), pass: render.NewEbitenPass()}
}

func (e *Effect) Properties() *Properties { return e.props }

func (e *Effect) Update(dt tick.Ticks) { e.props.Update(dt) }

// Apply renders src through the color matrix built from this effect's
// shader-param slots 0-19, writing the result to dst.
func (e *Effect) Apply(dst, src *ebiten.Image) {
	var matrix [20]float32
	for i := range matrix {
		matrix[i] = float32(e.props.Value(ShaderParam(i)))
	}
	e.pass.Draw(dst, render.ProgramWithArguments{Kind: render.ProgramColorMatrix, Matrix: matrix}, src, nil, nil)
}
