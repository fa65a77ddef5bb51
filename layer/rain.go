package layer

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/DCNick3/shin-go/tick"
)

// rainDrop is one falling streak's simulation state.
type rainDrop struct {
	x, y float64
}

// Rain is a screen-space falling-streak weather layer, a CPU particle pool
// grounded on the teacher's ParticleEmitter (particle.go) simplified from
// general-purpose emission (arbitrary angle/lifetime/color ranges) to the
// fixed density/speed/angle rain the engine's PropRainDensity/
// PropRainSpeed/PropRainAngle properties drive.
type Rain struct {
	props  *Properties
	drops  []rainDrop
	width  float64
	height float64
	pixel  *ebiten.Image
	rng    *rand.Rand
}

// NewRain returns a Rain layer covering a width x height screen region
// with maxDrops streaks.
func NewRain(width, height float64, maxDrops int) *Rain {
	px := ebiten.NewImage(1, 2)
	px.Fill(color.White)

	r := &Rain{
		props:  NewProperties(),
		drops:  make([]rainDrop, maxDrops),
		width:  width,
		height: height,
		pixel:  px,
		rng:    rand.New(rand.NewPCG(1, 2)),
	}
	for i := range r.drops {
		r.drops[i] = rainDrop{x: r.rng.Float64() * width, y: r.rng.Float64() * height}
	}
	return r
}

func (r *Rain) Properties() *Properties { return r.props }

// Update advances every active drop (as determined by PropRainDensity) by
// its speed and angle, wrapping around the screen bounds.
func (r *Rain) Update(dt tick.Ticks) {
	r.props.Update(dt)

	density := r.props.Value(PropRainDensity)
	active := int(density * float64(len(r.drops)))
	if active > len(r.drops) {
		active = len(r.drops)
	}

	speed := r.props.Value(PropRainSpeed)
	angle := r.props.Value(PropRainAngle)
	dx := math.Sin(angle) * speed * dt.Seconds()
	dy := math.Cos(angle) * speed * dt.Seconds()

	for i := 0; i < active; i++ {
		d := &r.drops[i]
		d.x += dx
		d.y += dy
		if d.y > r.height {
			d.y -= r.height
			d.x = r.rng.Float64() * r.width
		}
		if d.x < 0 {
			d.x += r.width
		} else if d.x > r.width {
			d.x -= r.width
		}
	}
}

// Draw renders every currently active drop as a short vertical streak.
func (r *Rain) Draw(dst *ebiten.Image) {
	density := r.props.Value(PropRainDensity)
	active := int(density * float64(len(r.drops)))
	if active > len(r.drops) {
		active = len(r.drops)
	}
	alpha := float32(r.props.Value(PropOpacity))

	for i := 0; i < active; i++ {
		d := r.drops[i]
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(d.x, d.y)
		op.ColorScale.ScaleAlpha(alpha)
		dst.DrawImage(r.pixel, &op)
	}
}
