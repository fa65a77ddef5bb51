package render

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// DynamicBuffer is a power-of-two bucketed pool of offscreen images, reused
// across frames so wipes, masks and filters don't allocate a fresh GPU
// texture every time they need a working surface. Grounded on the teacher's
// renderTexturePool (rendertarget.go): Acquire rounds up to the next power
// of two and serves a cleared image from the matching bucket if one is
// free, Release returns it without clearing (the clear happens on the next
// Acquire that hands it out).
type DynamicBuffer struct {
	buckets map[uint64][]*ebiten.Image
}

// NewDynamicBuffer returns an empty buffer pool.
func NewDynamicBuffer() *DynamicBuffer {
	return &DynamicBuffer{}
}

func bucketKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << int(math.Ceil(math.Log2(float64(n))))
}

// Acquire returns a cleared offscreen image with at least (w, h) pixels.
func (b *DynamicBuffer) Acquire(w, h int) *ebiten.Image {
	pw, ph := nextPowerOfTwo(w), nextPowerOfTwo(h)
	key := bucketKey(pw, ph)

	if b.buckets != nil {
		if stack := b.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			b.buckets[key] = stack[:len(stack)-1]
			img.Clear()
			return img
		}
	}

	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, pw, ph),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// Release returns img to the pool for reuse. A nil img is a no-op.
func (b *DynamicBuffer) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	bounds := img.Bounds()
	key := bucketKey(bounds.Dx(), bounds.Dy())
	if b.buckets == nil {
		b.buckets = make(map[uint64][]*ebiten.Image)
	}
	b.buckets[key] = append(b.buckets[key], img)
}

// RenderClone snapshots src into a freshly acquired buffer image at least
// as large as src (each dimension rounded up to a power of two). Wipes need this the instant a transition starts: the "from"
// side of a wipe is whatever was on screen the frame before, and it has to
// survive being overwritten once the group underneath starts drawing its
// new state. Grounded on the teacher's Node.ToTexture subtree snapshot.
func RenderClone(buf *DynamicBuffer, src *ebiten.Image) *ebiten.Image {
	bounds := src.Bounds()
	clone := buf.Acquire(bounds.Dx(), bounds.Dy())
	clone.DrawImage(src, nil)
	return clone
}
