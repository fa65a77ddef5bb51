package render

import "github.com/hajimehoshi/ebiten/v2"

// ProgramKind names one of the compiled Kage programs a Pass can draw with.
type ProgramKind uint8

const (
	// ProgramCrossFade blends two images by a single alpha factor. Used by
	// plain (non-masked) wipes.
	ProgramCrossFade ProgramKind = iota
	// ProgramColorMatrix applies a 4x5 color matrix, grounded on the
	// teacher's ColorMatrixFilter.
	ProgramColorMatrix
	// ProgramMaskBlend composites two images using a third image's
	// luminance as a progress-band threshold, grounded on the teacher's
	// mask.go + the original mask wiper's min/max band sweep.
	ProgramMaskBlend
	// ProgramRadialBlur samples along the line from each pixel to a focus
	// center, grounded on the teacher's BlurFilter (filter.go) generalized
	// from an isotropic box blur to a directional one for FocusLine layers.
	ProgramRadialBlur
)

// ProgramWithArguments is a closed sum type pairing a compiled program with
// the uniform arguments one draw call needs. It plays the role the
// teacher's per-filter uniforms map (filter.go) plays per-filter-struct,
// generalized to a single value every Pass.Draw call can switch on.
type ProgramWithArguments struct {
	Kind ProgramKind

	// CrossFade
	Alpha float32

	// ColorMatrix
	Matrix [20]float32

	// MaskBlend
	MaskMin, MaskMax     float32
	MaskFlipX, MaskFlipY bool

	// RadialBlur
	CenterX, CenterY float32
	Strength         float32
}

const crossFadeShaderSrc = `//kage:unit pixels
package main

var Alpha float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	from := imageSrc0At(src)
	to := imageSrc1At(src)
	return from*(1-Alpha) + to*Alpha
}
`

const colorMatrixShaderSrc = `//kage:unit pixels
package main

var Matrix [20]float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if c.a > 0 {
		c.rgb /= c.a
	}
	r := Matrix[0]*c.r + Matrix[1]*c.g + Matrix[2]*c.b + Matrix[3]*c.a + Matrix[4]
	g := Matrix[5]*c.r + Matrix[6]*c.g + Matrix[7]*c.b + Matrix[8]*c.a + Matrix[9]
	b := Matrix[10]*c.r + Matrix[11]*c.g + Matrix[12]*c.b + Matrix[13]*c.a + Matrix[14]
	a := Matrix[15]*c.r + Matrix[16]*c.g + Matrix[17]*c.b + Matrix[18]*c.a + Matrix[19]
	r = clamp(r, 0, 1)
	g = clamp(g, 0, 1)
	b = clamp(b, 0, 1)
	a = clamp(a, 0, 1)
	return vec4(r*a, g*a, b*a, a)
}
`

const maskBlendShaderSrc = `//kage:unit pixels
package main

var MaskMin float
var MaskMax float
var MaskFlipX float
var MaskFlipY float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	from := imageSrc0At(src)
	to := imageSrc1At(src)

	maskSrc := src
	if MaskFlipX > 0.5 {
		maskSrc.x = imageDstTextureSize().x - maskSrc.x
	}
	if MaskFlipY > 0.5 {
		maskSrc.y = imageDstTextureSize().y - maskSrc.y
	}
	m := imageSrc2At(maskSrc).r

	span := MaskMax - MaskMin
	t := 0.0
	if span != 0 {
		t = clamp((m-MaskMin)/span, 0, 1)
	} else if m >= MaskMin {
		t = 1.0
	}
	return from*(1-t) + to*t
}
`

const radialBlurShaderSrc = `//kage:unit pixels
package main

var CenterX float
var CenterY float
var Strength float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	center := vec2(CenterX, CenterY)
	dir := src - center
	sum := vec4(0)
	for i := 0; i < 8; i++ {
		t := float(i) / 8.0
		sum += imageSrc0At(center + dir*(1.0-Strength*t))
	}
	return sum / 8.0
}
`

var shaderCache = map[ProgramKind]*ebiten.Shader{}

// compiledShader lazily compiles and caches the Kage program for kind.
// There's no sync.Once guard here: like the teacher, this package assumes
// a single render goroutine driving Ebitengine's draw loop.
func compiledShader(kind ProgramKind) *ebiten.Shader {
	if s, ok := shaderCache[kind]; ok {
		return s
	}
	var src string
	switch kind {
	case ProgramCrossFade:
		src = crossFadeShaderSrc
	case ProgramColorMatrix:
		src = colorMatrixShaderSrc
	case ProgramMaskBlend:
		src = maskBlendShaderSrc
	case ProgramRadialBlur:
		src = radialBlurShaderSrc
	default:
		panic("render: unknown program kind")
	}
	s, err := ebiten.NewShader([]byte(src))
	if err != nil {
		panic("render: failed to compile shader: " + err.Error())
	}
	shaderCache[kind] = s
	return s
}

// uniforms packs a ProgramWithArguments into the map Ebitengine's shader
// options expect.
func (p ProgramWithArguments) uniforms() map[string]any {
	switch p.Kind {
	case ProgramCrossFade:
		return map[string]any{"Alpha": p.Alpha}
	case ProgramColorMatrix:
		m := p.Matrix
		return map[string]any{"Matrix": m[:]}
	case ProgramMaskBlend:
		flipX, flipY := float32(0), float32(0)
		if p.MaskFlipX {
			flipX = 1
		}
		if p.MaskFlipY {
			flipY = 1
		}
		return map[string]any{
			"MaskMin": p.MaskMin, "MaskMax": p.MaskMax,
			"MaskFlipX": flipX, "MaskFlipY": flipY,
		}
	case ProgramRadialBlur:
		return map[string]any{
			"CenterX": p.CenterX, "CenterY": p.CenterY, "Strength": p.Strength,
		}
	default:
		return nil
	}
}
