package layer

import (
	stdimage "image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/DCNick3/shin-go/format/picture"
	"github.com/DCNick3/shin-go/tick"
)

// Picture is a static composited image layer, the most common leaf kind
// LAYERLOAD installs. Its texture is built once at load time by
// compositing every decoded block onto the picture's canvas, the same
// block-positioned composition the original engine's picture layer and
// willow's atlas page builder (atlas.go) both do at load time rather than
// per frame.
type Picture struct {
	props   *Properties
	texture *ebiten.Image
}

// NewPicture decodes pic's blocks onto a single RGBA canvas and uploads it
// as one Ebitengine texture.
func NewPicture(pic *picture.Picture) *Picture {
	canvas := stdimage.NewRGBA(stdimage.Rect(0, 0, int(pic.CanvasWidth), int(pic.CanvasHeight)))
	for _, b := range pic.Blocks {
		compositeBlock(canvas, b)
	}
	return &Picture{
		props:   NewProperties(),
		texture: ebiten.NewImageFromImage(canvas),
	}
}

// compositeBlock copies one decoded block's RGBA8 pixels onto dst at the
// block's origin, clipping rows that fall outside the canvas.
func compositeBlock(dst *stdimage.RGBA, b picture.Block) {
	rowBytes := int(b.Width) * 4
	for y := 0; y < int(b.Height); y++ {
		dstY := int(b.OriginY) + y
		if dstY < 0 || dstY >= dst.Bounds().Dy() {
			continue
		}
		srcOff := y * rowBytes
		if srcOff+rowBytes > len(b.Pixels) {
			break
		}
		dstOff := dst.PixOffset(int(b.OriginX), dstY)
		if dstOff+rowBytes > len(dst.Pix) {
			continue
		}
		copy(dst.Pix[dstOff:dstOff+rowBytes], b.Pixels[srcOff:srcOff+rowBytes])
	}
}

func (p *Picture) Properties() *Properties { return p.props }

func (p *Picture) Update(dt tick.Ticks) { p.props.Update(dt) }

// Draw composites the picture's texture onto dst using its current
// translate/scale/opacity properties.
func (p *Picture) Draw(dst *ebiten.Image) {
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(p.props.Value(PropScaleX), p.props.Value(PropScaleY))
	op.GeoM.Translate(p.props.Value(PropTranslateX), p.props.Value(PropTranslateY))
	op.ColorScale.Scale(
		float32(p.props.Value(PropColorMulR)),
		float32(p.props.Value(PropColorMulG)),
		float32(p.props.Value(PropColorMulB)),
		float32(p.props.Value(PropColorMulA)),
	)
	op.ColorScale.ScaleAlpha(float32(p.props.Value(PropOpacity)))
	dst.DrawImage(p.texture, &op)
}
