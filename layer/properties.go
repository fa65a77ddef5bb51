package layer

import "github.com/DCNick3/shin-go/tick"

// Property names one of the 90 tweened scalar values a layer carries.
// LAYERCTRL addresses layers by VLayerId and properties by this index;
// the numeric values below are the wire identifiers LAYERCTRL actually
// sends, so they must not be renumbered.
type Property int

const (
	PropTranslateX Property = iota
	PropTranslateY
	PropTranslateZ
	PropScaleX
	PropScaleY
	PropRotateX
	PropRotateY
	PropRotateZ
	PropColorMulR
	PropColorMulG
	PropColorMulB
	PropColorMulA
	PropClipX0
	PropClipY0
	PropClipX1
	PropClipY1
	PropBlurRadius
	PropBlurStrength
	PropMosaicSize
	PropGhostingAlpha
	PropGhostingCount
	PropRasterAmplitudeX
	PropRasterAmplitudeY
	PropRasterPeriod
	PropRasterPhase
	PropRippleAmplitude
	PropRipplePeriod
	PropRipplePhase
	PropDissolveThreshold
	PropRainDensity
	PropRainSpeed
	PropRainAngle
	PropWobbleAmplitudeTranslateX
	PropWobbleBiasTranslateX
	PropWobbleAmplitudeTranslateY
	PropWobbleBiasTranslateY
	PropWobbleAmplitudeScaleX
	PropWobbleBiasScaleX
	PropWobbleAmplitudeScaleY
	PropWobbleBiasScaleY
	PropWobbleAmplitudeRotateZ
	PropWobbleBiasRotateZ
	PropRenderPosition
	PropOpacity
	PropBlendMode
	PropShaderSelector
	propShaderParamBase // shader params occupy the remainder of the table
)

// NumShaderParams is how many generic numbered shader parameters fill out
// the property table after propShaderParamBase, sized so the table totals
// exactly NumProperties entries.
const NumShaderParams = 44

// NumProperties is the fixed size of a layer's property table.
const NumProperties = int(propShaderParamBase) + NumShaderParams

// ShaderParam returns the Property identifying shader parameter slot i
// (0-indexed).
func ShaderParam(i int) Property {
	return propShaderParamBase + Property(i)
}

// composeMode describes how a child layer's transform combines with its
// parent's for one property; fixed per property, never configured at
// runtime.
type composeMode int

const (
	composeReplace composeMode = iota
	composeAdd
	composeMultiply
)

// composeTable maps each property to its fixed composition policy.
// Transform properties accumulate with the parent (add for
// translate/rotate, multiply for scale); everything else replaces.
var composeTable = func() [NumProperties]composeMode {
	var t [NumProperties]composeMode
	for i := range t {
		t[i] = composeReplace
	}
	t[PropTranslateX] = composeAdd
	t[PropTranslateY] = composeAdd
	t[PropTranslateZ] = composeAdd
	t[PropRotateX] = composeAdd
	t[PropRotateY] = composeAdd
	t[PropRotateZ] = composeAdd
	t[PropScaleX] = composeMultiply
	t[PropScaleY] = composeMultiply
	t[PropColorMulR] = composeMultiply
	t[PropColorMulG] = composeMultiply
	t[PropColorMulB] = composeMultiply
	t[PropColorMulA] = composeMultiply
	return t
}()

// defaultValues holds each property's default, applied when a Properties
// table is constructed. Anything not listed here defaults to zero.
var defaultValues = map[Property]float64{
	PropScaleX:            1,
	PropScaleY:            1,
	PropColorMulR:         1,
	PropColorMulG:         1,
	PropColorMulB:         1,
	PropColorMulA:         1,
	PropOpacity:           1,
	PropClipX1:            1,
	PropClipY1:            1,
	PropDissolveThreshold: 1,
	// Shader-param slots 0-19 double as an Effect layer's 4x5 color
	// matrix; slots 0, 6, 12 and 18 are its diagonal (R_r, G_g, B_b, A_a),
	// so they default to the identity matrix rather than zero.
	ShaderParam(0):  1,
	ShaderParam(6):  1,
	ShaderParam(12): 1,
	ShaderParam(18): 1,
}

// Properties holds the full tweened scalar state for one layer: one
// Tweener per property driving its settled value, plus a Wobbler for the
// handful of properties the engine allows to wobble.
type Properties struct {
	tweeners [NumProperties]*tick.Tweener
	wobblers map[Property]*Wobbler
}

// NewProperties builds a Properties table with every Tweener seeded at its
// property's default value.
func NewProperties() *Properties {
	p := &Properties{wobblers: make(map[Property]*Wobbler)}
	for i := range p.tweeners {
		p.tweeners[i] = tick.NewTweener(defaultValues[Property(i)])
	}
	return p
}

// wobbleParams maps a wobblable base property to the amplitude/bias
// property pair that scales and offsets its wobbler's output.
var wobbleParams = map[Property][2]Property{
	PropTranslateX: {PropWobbleAmplitudeTranslateX, PropWobbleBiasTranslateX},
	PropTranslateY: {PropWobbleAmplitudeTranslateY, PropWobbleBiasTranslateY},
	PropScaleX:     {PropWobbleAmplitudeScaleX, PropWobbleBiasScaleX},
	PropScaleY:     {PropWobbleAmplitudeScaleY, PropWobbleBiasScaleY},
	PropRotateZ:    {PropWobbleAmplitudeRotateZ, PropWobbleBiasRotateZ},
}

// Value returns a property's current rendered value: its tweener's settled
// value plus bias + amplitude*wobbler.Value() for the properties that
// support wobble.
func (p *Properties) Value(prop Property) float64 {
	v := p.tweeners[prop].Value()
	if w, ok := p.wobblers[prop]; ok {
		params, hasParams := wobbleParams[prop]
		amplitude, bias := 1.0, 0.0
		if hasParams {
			amplitude = p.tweeners[params[0]].Value()
			bias = p.tweeners[params[1]].Value()
		}
		v += bias + amplitude*w.Value()
	}
	return v
}

// Set jumps a property to v immediately, clearing any in-flight tween.
func (p *Properties) Set(prop Property, v float64) {
	p.tweeners[prop].Set(v)
}

// Animate enqueues a tween on prop to reach target over duration using fn.
func (p *Properties) Animate(prop Property, target float64, duration tick.Ticks, fn tick.Easing) {
	p.tweeners[prop].Enqueue(tick.Segment{To: target, Duration: duration, Fn: fn})
}

// AnimateNow clears prop's queue and starts a new tween immediately.
func (p *Properties) AnimateNow(prop Property, target float64, duration tick.Ticks, fn tick.Easing) {
	p.tweeners[prop].EnqueueNow(tick.Segment{To: target, Duration: duration, Fn: fn})
}

// Idle reports whether every property named in props has no in-flight or
// queued tween.
func (p *Properties) Idle(props []Property) bool {
	for _, prop := range props {
		if p.tweeners[prop].Busy() {
			return false
		}
	}
	return true
}

// FastForward snaps every property named in props to its final tween
// target, used when the scheduler is told to skip ahead.
func (p *Properties) FastForward(props []Property) {
	for _, prop := range props {
		p.tweeners[prop].FastForward()
	}
}

// Update advances every property's tweener and wobbler by dt.
func (p *Properties) Update(dt tick.Ticks) {
	for _, t := range p.tweeners {
		t.Update(dt)
	}
	for _, w := range p.wobblers {
		w.Update(dt)
	}
}

// Wobble returns the Wobbler driving prop's wobble offset, creating a
// disabled one on first use. Only properties listed in wobbleParams have
// any effect once configured.
func (p *Properties) Wobble(prop Property) *Wobbler {
	w, ok := p.wobblers[prop]
	if !ok {
		w = NewWobbler(0)
		p.wobblers[prop] = w
	}
	return w
}

// Compose combines a child's value for prop with its parent's already
// computed value, per the property's fixed composition policy.
func Compose(prop Property, parent, child float64) float64 {
	switch composeTable[prop] {
	case composeAdd:
		return parent + child
	case composeMultiply:
		return parent * child
	default:
		return child
	}
}
