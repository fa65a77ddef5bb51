package layer

import (
	"fmt"
	stdimage "image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/DCNick3/shin-go/format/bustup"
	"github.com/DCNick3/shin-go/tick"
)

// Bustup is a character portrait layer, switched between named facial
// expressions. Unlike Picture, which composites once at load time, a
// Bustup recomposites whenever SetExpression picks a different expression,
// matching the skeleton/builder two-phase handshake format/bustup exposes:
// only the blocks the chosen expression actually references get
// materialized.
type Bustup struct {
	props      *Properties
	skeleton   *bustup.Skeleton
	builder    *bustup.Builder
	expression string
	texture    *ebiten.Image
}

// NewBustup returns a Bustup showing the named initial expression.
func NewBustup(skeleton *bustup.Skeleton, initialExpression string) (*Bustup, error) {
	b := &Bustup{
		props:    NewProperties(),
		skeleton: skeleton,
		builder:  bustup.NewBuilder(skeleton),
	}
	if err := b.SetExpression(initialExpression); err != nil {
		return nil, err
	}
	return b, nil
}

// SetExpression materializes the named expression's blocks and replaces
// the displayed texture.
func (b *Bustup) SetExpression(name string) error {
	var promises []bustup.BlockPromise
	found := false
	for _, e := range b.skeleton.Expressions {
		if e.Name == name {
			promises = e.Promises
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("bustup: unknown expression %q", name)
	}

	blocks, err := b.builder.Build(promises)
	if err != nil {
		return err
	}

	w, h := b.skeleton.CanvasSize()
	canvas := stdimage.NewRGBA(stdimage.Rect(0, 0, int(w), int(h)))
	for _, blk := range blocks {
		compositeBlock(canvas, blk)
	}

	b.expression = name
	b.texture = ebiten.NewImageFromImage(canvas)
	return nil
}

// Expression returns the currently displayed expression's name.
func (b *Bustup) Expression() string { return b.expression }

func (b *Bustup) Properties() *Properties { return b.props }

func (b *Bustup) Update(dt tick.Ticks) { b.props.Update(dt) }

// Draw composites the bustup's current expression onto dst.
func (b *Bustup) Draw(dst *ebiten.Image) {
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(b.props.Value(PropScaleX), b.props.Value(PropScaleY))
	op.GeoM.Translate(b.props.Value(PropTranslateX), b.props.Value(PropTranslateY))
	op.ColorScale.ScaleAlpha(float32(b.props.Value(PropOpacity)))
	dst.DrawImage(b.texture, &op)
}
