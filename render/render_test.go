package render

import (
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestDynamicBufferReusesReleasedImage(t *testing.T) {
	buf := NewDynamicBuffer()
	a := buf.Acquire(100, 50)
	buf.Release(a)
	b := buf.Acquire(100, 50)
	if a != b {
		t.Fatal("expected Acquire after Release to return the pooled image")
	}
}

func TestDynamicBufferRoundsUpToPowerOfTwo(t *testing.T) {
	buf := NewDynamicBuffer()
	img := buf.Acquire(100, 50)
	bounds := img.Bounds()
	if bounds.Dx() != 128 || bounds.Dy() != 64 {
		t.Errorf("got %dx%d, want 128x64", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderCloneCopiesPixels(t *testing.T) {
	buf := NewDynamicBuffer()
	src := ebiten.NewImage(8, 8)
	src.Fill(color.White)

	clone := RenderClone(buf, src)
	if clone == src {
		t.Fatal("RenderClone should return a distinct image")
	}
	if clone.Bounds().Dx() < 8 || clone.Bounds().Dy() < 8 {
		t.Fatal("clone should be at least as large as the source")
	}
}

func TestProgramUniformsCrossFade(t *testing.T) {
	p := ProgramWithArguments{Kind: ProgramCrossFade, Alpha: 0.5}
	u := p.uniforms()
	if u["Alpha"] != float32(0.5) {
		t.Errorf("Alpha uniform = %v, want 0.5", u["Alpha"])
	}
}

func TestProgramUniformsMaskBlend(t *testing.T) {
	p := ProgramWithArguments{Kind: ProgramMaskBlend, MaskMin: 0.2, MaskMax: 0.8, MaskFlipX: true}
	u := p.uniforms()
	if u["MaskMin"] != float32(0.2) || u["MaskMax"] != float32(0.8) {
		t.Errorf("unexpected band uniforms: %+v", u)
	}
	if u["MaskFlipX"] != float32(1) {
		t.Errorf("MaskFlipX = %v, want 1", u["MaskFlipX"])
	}
	if u["MaskFlipY"] != float32(0) {
		t.Errorf("MaskFlipY = %v, want 0", u["MaskFlipY"])
	}
}
