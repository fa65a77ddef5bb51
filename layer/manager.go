package layer

import (
	"context"
	"fmt"
	stdimage "image"
	"sort"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/DCNick3/shin-go/asset"
	"github.com/DCNick3/shin-go/format/bustup"
	"github.com/DCNick3/shin-go/format/mask"
	"github.com/DCNick3/shin-go/format/picture"
	"github.com/DCNick3/shin-go/render"
	"github.com/DCNick3/shin-go/tick"
)

// pictureArgs is the (unit) argument type picture loads are cached under;
// asset.Load requires a comparable args type even when a loader needs none.
type pictureArgs struct{}

func loadPicture(ctx context.Context, io asset.Io, path string, _ pictureArgs) (*picture.Picture, error) {
	data, err := asset.ReadAll(io, path)
	if err != nil {
		return nil, err
	}
	return picture.Decode(data)
}

func loadMask(ctx context.Context, io asset.Io, path string, _ pictureArgs) (*mask.Texture, error) {
	data, err := asset.ReadAll(io, path)
	if err != nil {
		return nil, err
	}
	return mask.Decode(data)
}

func loadRawBytes(ctx context.Context, io asset.Io, path string, _ pictureArgs) ([]byte, error) {
	return asset.ReadAll(io, path)
}

// Manager owns the live set of loaded layers addressed by Id and
// implements command.LayerManager, wiring LAYERLOAD/LAYERCTRL/LAYERWAIT/
// MASKLOAD to the asset server and this package's concrete leaf kinds.
type Manager struct {
	assets *asset.Server

	mu     sync.Mutex
	layers map[Id]Layer
	masks  map[int32]*ebiten.Image
}

// NewManager returns a Manager decoding assets through server.
func NewManager(server *asset.Server) *Manager {
	return &Manager{
		assets: server,
		layers: make(map[Id]Layer),
		masks:  make(map[int32]*ebiten.Image),
	}
}

// Layer returns the layer currently loaded at id, if any.
func (m *Manager) Layer(id Id) (Layer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.layers[id]
	return l, ok
}

func (m *Manager) resolve(vlayer int32) Layer {
	v := VLayerId(vlayer)
	if v.IsVirtual() {
		return nil
	}
	l, _ := m.Layer(v.Resolve())
	return l
}

func (m *Manager) SetProperty(vlayer int32, prop int, target float64, duration tick.Ticks, easing tick.Easing) {
	l := m.resolve(vlayer)
	if l == nil {
		return
	}
	l.Properties().Animate(Property(prop), target, duration, easing)
}

func (m *Manager) PropertiesIdle(vlayer int32, props []int) bool {
	l := m.resolve(vlayer)
	if l == nil {
		return true
	}
	return l.Properties().Idle(toProperties(props))
}

func (m *Manager) FastForwardProperties(vlayer int32, props []int) {
	l := m.resolve(vlayer)
	if l == nil {
		return
	}
	l.Properties().FastForward(toProperties(props))
}

func toProperties(props []int) []Property {
	out := make([]Property, len(props))
	for i, p := range props {
		out[i] = Property(p)
	}
	return out
}

// LoadLayer decodes the layer kind named by kind, using params as the
// asset path for kinds backed by a file (picture, tile, bustup), and
// installs it under id once decoding completes. Animation, movie and quiz
// kinds are not decoded here and report an error.
func (m *Manager) LoadLayer(ctx context.Context, id int32, kind string, params []byte) <-chan error {
	done := make(chan error, 1)
	path := string(params)

	go func() {
		layerID, err := NewId(int(id))
		if err != nil {
			done <- err
			return
		}

		l, err := m.decodeLayer(ctx, kind, path)
		if err != nil {
			done <- err
			return
		}

		m.mu.Lock()
		m.layers[layerID] = l
		m.mu.Unlock()
		done <- nil
	}()

	return done
}

func (m *Manager) decodeLayer(ctx context.Context, kind, path string) (Layer, error) {
	switch kind {
	case "picture":
		pic, err := asset.Load(ctx, m.assets, path, pictureArgs{}, loadPicture)
		if err != nil {
			return nil, err
		}
		return NewPicture(pic), nil

	case "bustup":
		data, err := asset.Load(ctx, m.assets, path, pictureArgs{}, loadRawBytes)
		if err != nil {
			return nil, err
		}
		// The real scenario-side expression naming table lives outside
		// the bustup container itself; without it every decoded block is
		// grouped into one "default" expression so the layer still shows
		// something real rather than nothing.
		pic, err := picture.Decode(data)
		if err != nil {
			return nil, err
		}
		names := make([]string, len(pic.Blocks))
		for i, b := range pic.Blocks {
			names[i] = fmt.Sprintf("%d,%d", b.OriginX, b.OriginY)
		}
		skeleton, err := bustup.Decode(data, map[string][]string{"default": names})
		if err != nil {
			return nil, err
		}
		return NewBustup(skeleton, "default")

	case "tile":
		fields := strings.SplitN(path, "|", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("layer: tile params must be \"path|WxH\"")
		}
		var w, h int
		if _, err := fmt.Sscanf(fields[1], "%dx%d", &w, &h); err != nil {
			return nil, fmt.Errorf("layer: bad tile size %q: %w", fields[1], err)
		}
		pic, err := asset.Load(ctx, m.assets, fields[0], pictureArgs{}, loadPicture)
		if err != nil {
			return nil, err
		}
		if len(pic.Blocks) == 0 {
			return nil, fmt.Errorf("layer: tile source %q has no blocks", fields[0])
		}
		canvas := stdimage.NewRGBA(stdimage.Rect(0, 0, int(pic.CanvasWidth), int(pic.CanvasHeight)))
		compositeBlock(canvas, pic.Blocks[0])
		return &Tile{
			props:   NewProperties(),
			texture: ebiten.NewImageFromImage(canvas),
			width:   w,
			height:  h,
		}, nil

	case "null":
		return NewNull(), nil
	case "effect":
		return NewEffect(), nil
	case "focusline":
		return NewFocusLine(), nil
	case "rain":
		return NewRain(1920, 1080, 512), nil

	default:
		return nil, fmt.Errorf("layer: kind %q is not decodable from a bare asset path", kind)
	}
}

// LoadMask decodes an MSK texture and remembers it under maskID for a
// later MaskWiper to reference; flags is currently unused (the engine's
// mask flags live on the wipe, not the mask texture itself).
func (m *Manager) LoadMask(ctx context.Context, planeID int32, maskID int32, flags uint32) <-chan error {
	done := make(chan error, 1)
	go func() {
		tex, err := asset.Load(ctx, m.assets, fmt.Sprintf("mask/%d.msk", maskID), pictureArgs{}, loadMask)
		if err != nil {
			done <- err
			return
		}
		img := maskToImage(tex)
		m.mu.Lock()
		m.masks[maskID] = img
		m.mu.Unlock()
		done <- nil
	}()
	return done
}

// Update advances every loaded layer's properties by dt, the compositor's
// per-frame counterpart to the scenario-driven SetProperty/LoadLayer calls.
func (m *Manager) Update(dt tick.Ticks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.layers {
		l.Update(dt)
	}
}

// drawable is satisfied by leaf kinds that paint themselves directly, the
// same Draw(dst) shape picture.go/tile.go/bustup.go/animation.go/movie.go/
// rain.go already expose.
type drawable interface{ Draw(dst *ebiten.Image) }

// applicable is satisfied by post-processing kinds (Effect, FocusLine) that
// transform whatever has been composited so far rather than painting
// independently.
type applicable interface{ Apply(dst, src *ebiten.Image) }

// Draw composites every loaded layer onto dst in ascending
// PropRenderPosition order, using buf to snapshot intermediate results for
// the post-processing (applicable) kinds. Layers that are neither drawable
// nor applicable (Null, Quiz) contribute nothing to the flat composite;
// Quiz's choice buttons are a UI concern layered on top by the caller.
func (m *Manager) Draw(dst *ebiten.Image, buf *render.DynamicBuffer) {
	m.mu.Lock()
	ids := make([]Id, 0, len(m.layers))
	for id := range m.layers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return m.layers[ids[i]].Properties().Value(PropRenderPosition) < m.layers[ids[j]].Properties().Value(PropRenderPosition)
	})
	layers := make([]Layer, len(ids))
	for i, id := range ids {
		layers[i] = m.layers[id]
	}
	m.mu.Unlock()

	for _, l := range layers {
		switch t := l.(type) {
		case drawable:
			t.Draw(dst)
		case applicable:
			src := render.RenderClone(buf, dst)
			t.Apply(dst, src)
			buf.Release(src)
		}
	}
}

// Mask returns the decoded mask texture previously loaded under maskID.
func (m *Manager) Mask(maskID int32) (*ebiten.Image, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.masks[maskID]
	return img, ok
}

// maskToImage converts a grayscale mask.Texture into an opaque RGBA image
// whose red channel carries the texel value the mask-blend shader samples.
func maskToImage(tex *mask.Texture) *ebiten.Image {
	canvas := stdimage.NewRGBA(stdimage.Rect(0, 0, int(tex.Width), int(tex.Height)))
	for y := uint32(0); y < tex.Height; y++ {
		for x := uint32(0); x < tex.Width; x++ {
			v := tex.At(x, y)
			off := canvas.PixOffset(int(x), int(y))
			canvas.Pix[off+0] = v
			canvas.Pix[off+1] = v
			canvas.Pix[off+2] = v
			canvas.Pix[off+3] = 255
		}
	}
	return ebiten.NewImageFromImage(canvas)
}
