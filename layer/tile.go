package layer

import (
	"fmt"
	stdimage "image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/DCNick3/shin-go/format/picture"
	"github.com/DCNick3/shin-go/format/texarchive"
	"github.com/DCNick3/shin-go/tick"
)

// Tile is a texture-backed rectangle layer,
// repeated (tiled) across a width/height independent of its source
// texture's own size, used for backgrounds built from a small repeating
// swatch rather than one full-screen picture.
type Tile struct {
	props   *Properties
	texture *ebiten.Image
	width   int
	height  int
}

// NewTileFromArchive looks up blockName in archive and builds a tile of
// the given size from it.
func NewTileFromArchive(archive *texarchive.Archive, blockName string, width, height int) (*Tile, error) {
	blk, ok := archive.Lookup(blockName)
	if !ok {
		return nil, fmt.Errorf("tile: block %q not found in archive", blockName)
	}
	canvas := stdimage.NewRGBA(stdimage.Rect(0, 0, int(blk.Width), int(blk.Height)))
	compositeBlock(canvas, picture.Block{Width: blk.Width, Height: blk.Height, Pixels: blk.Pixels})
	return &Tile{
		props:   NewProperties(),
		texture: ebiten.NewImageFromImage(canvas),
		width:   width,
		height:  height,
	}, nil
}

func (t *Tile) Properties() *Properties { return t.props }

func (t *Tile) Update(dt tick.Ticks) { t.props.Update(dt) }

// Draw repeats the source texture across t.width x t.height, offset and
// scaled by the layer's translate/scale properties.
func (t *Tile) Draw(dst *ebiten.Image) {
	bounds := t.texture.Bounds()
	tw, th := bounds.Dx(), bounds.Dy()
	if tw == 0 || th == 0 {
		return
	}

	scaleX := t.props.Value(PropScaleX)
	scaleY := t.props.Value(PropScaleY)
	tx := t.props.Value(PropTranslateX)
	ty := t.props.Value(PropTranslateY)
	alpha := float32(t.props.Value(PropOpacity))

	for y := 0; y < t.height; y += th {
		for x := 0; x < t.width; x += tw {
			var op ebiten.DrawImageOptions
			op.GeoM.Scale(scaleX, scaleY)
			op.GeoM.Translate(tx+float64(x)*scaleX, ty+float64(y)*scaleY)
			op.ColorScale.ScaleAlpha(alpha)
			dst.DrawImage(t.texture, &op)
		}
	}
}
