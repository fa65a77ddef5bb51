package render

import "github.com/hajimehoshi/ebiten/v2"

// Pass is a single composite operation targeting one offscreen or screen
// image. It is the generalization of the teacher's per-filter Apply(src,
// dst) method (filter.go) to programs that read more than one source
// image, which every layer wipe needs (from + to, or from + to + mask).
type Pass interface {
	// Draw runs program over the given source images and writes the
	// result to dst. Unused source slots may be nil.
	Draw(dst *ebiten.Image, program ProgramWithArguments, src0, src1, src2 *ebiten.Image)
}

// EbitenPass is the concrete Pass backed by Ebitengine's shader pipeline.
// It owns no state beyond a reusable DrawRectShaderOptions, matching the
// teacher's per-filter shaderOp field (filter.go) kept around to avoid a
// per-draw allocation of the uniforms/images arrays.
type EbitenPass struct {
	op ebiten.DrawRectShaderOptions
}

// NewEbitenPass returns a Pass ready to draw.
func NewEbitenPass() *EbitenPass {
	return &EbitenPass{}
}

func (p *EbitenPass) Draw(dst *ebiten.Image, program ProgramWithArguments, src0, src1, src2 *ebiten.Image) {
	shader := compiledShader(program.Kind)

	p.op.Images[0] = src0
	p.op.Images[1] = src1
	p.op.Images[2] = src2
	p.op.Images[3] = nil
	p.op.Uniforms = program.uniforms()

	bounds := dst.Bounds()
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &p.op)
}
