package layer

import (
	"testing"

	"github.com/DCNick3/shin-go/tick"
	"github.com/tanema/gween/ease"
)

func TestNewIdRejectsOutOfRange(t *testing.T) {
	if _, err := NewId(-1); err == nil {
		t.Error("expected error for negative id")
	}
	if _, err := NewId(256); err == nil {
		t.Error("expected error for id >= 256")
	}
	if id, err := NewId(255); err != nil || id != 255 {
		t.Errorf("got %v, %v", id, err)
	}
}

func TestNewBankIdRejectsOutOfRange(t *testing.T) {
	if _, err := NewBankId(48); err == nil {
		t.Error("expected error for bank id >= 48")
	}
	if id, err := NewBankId(47); err != nil || id != 47 {
		t.Errorf("got %v, %v", id, err)
	}
}

func TestNewPlaneIdRejectsOutOfRange(t *testing.T) {
	if _, err := NewPlaneId(5); err == nil {
		t.Error("expected error for plane id >= 5")
	}
	if _, err := NewPlaneId(-1); err == nil {
		t.Error("expected error for negative plane id")
	}
}

func TestVLayerIdVirtualVsReal(t *testing.T) {
	if !VLayerRootLayerGroup.IsVirtual() {
		t.Error("RootLayerGroup should be virtual")
	}
	real := VLayerId(5)
	if real.IsVirtual() {
		t.Error("a non-negative VLayerId should not be virtual")
	}
	if real.Resolve() != Id(5) {
		t.Errorf("Resolve() = %v, want 5", real.Resolve())
	}
}

func TestPropertiesDefaults(t *testing.T) {
	p := NewProperties()
	if v := p.Value(PropScaleX); v != 1 {
		t.Errorf("ScaleX default = %v, want 1", v)
	}
	if v := p.Value(PropTranslateX); v != 0 {
		t.Errorf("TranslateX default = %v, want 0", v)
	}
	if v := p.Value(PropColorMulA); v != 1 {
		t.Errorf("ColorMulA default = %v, want 1", v)
	}
}

func TestPropertiesAnimateAndIdle(t *testing.T) {
	p := NewProperties()
	p.Animate(PropTranslateX, 10, 5, ease.Linear)
	if p.Idle([]Property{PropTranslateX}) {
		t.Fatal("should not be idle right after animating")
	}
	for i := 0; i < 5; i++ {
		p.Update(1)
	}
	if !p.Idle([]Property{PropTranslateX}) {
		t.Fatal("should be idle once the tween has fully elapsed")
	}
	if v := p.Value(PropTranslateX); v != 10 {
		t.Errorf("TranslateX = %v, want 10", v)
	}
}

func TestPropertiesFastForward(t *testing.T) {
	p := NewProperties()
	p.Animate(PropTranslateX, 10, 1000, ease.Linear)
	p.FastForward([]Property{PropTranslateX})
	if !p.Idle([]Property{PropTranslateX}) {
		t.Fatal("expected idle after fast-forward")
	}
	if v := p.Value(PropTranslateX); v != 10 {
		t.Errorf("TranslateX = %v, want 10", v)
	}
}

func TestComposeAddAndMultiply(t *testing.T) {
	if got := Compose(PropTranslateX, 5, 3); got != 8 {
		t.Errorf("translate compose = %v, want 8 (additive)", got)
	}
	if got := Compose(PropScaleX, 2, 3); got != 6 {
		t.Errorf("scale compose = %v, want 6 (multiplicative)", got)
	}
	if got := Compose(PropOpacity, 5, 3); got != 3 {
		t.Errorf("opacity compose = %v, want 3 (replace)", got)
	}
}

func TestWobbleContributesToValue(t *testing.T) {
	p := NewProperties()
	p.Set(PropWobbleAmplitudeTranslateX, 2)
	w := p.Wobble(PropTranslateX)
	w.Configure(WobbleSine, 4)
	w.Update(1) // quarter period -> sin(2*pi*0.25) == 1
	if v := p.Value(PropTranslateX); v < 1.9 || v > 2.1 {
		t.Errorf("TranslateX with wobble = %v, want ~2", v)
	}
}

func TestWobblerWaveforms(t *testing.T) {
	w := NewWobbler(0)
	w.Configure(WobbleSquare, 10)
	w.Update(1)
	if v := w.Value(); v != -1 {
		t.Errorf("square wave at t<0.5 = %v, want -1", v)
	}
	w.Update(4) // now at t=0.5
	if v := w.Value(); v != 1 {
		t.Errorf("square wave at t>=0.5 = %v, want 1", v)
	}
}

func TestGroupInsertReorderRemove(t *testing.T) {
	g := NewGroup()
	a := &fakeLeaf{}
	b := &fakeLeaf{}
	c := &fakeLeaf{}
	g.Insert(0, a)
	g.Insert(1, b)
	g.Insert(2, c)

	order := func() []Id {
		var ids []Id
		for _, e := range g.Children() {
			ids = append(ids, e.ID)
		}
		return ids
	}

	if got := order(); !equalIds(got, []Id{0, 1, 2}) {
		t.Fatalf("initial order = %v", got)
	}

	g.Reorder(2, 0)
	if got := order(); !equalIds(got, []Id{2, 0, 1}) {
		t.Fatalf("after reorder = %v", got)
	}

	g.Remove(0)
	if got := order(); !equalIds(got, []Id{2, 1}) {
		t.Fatalf("after remove = %v", got)
	}
	if _, ok := g.Get(0); ok {
		t.Error("removed id should no longer resolve")
	}
}

func equalIds(a, b []Id) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

type fakeLeaf struct {
	props *Properties
}

func (f *fakeLeaf) Properties() *Properties {
	if f.props == nil {
		f.props = NewProperties()
	}
	return f.props
}

func (f *fakeLeaf) Update(dt tick.Ticks) {}

func TestBankAcquireShareRelease(t *testing.T) {
	b := NewBank()
	id1, err := NewId(1)
	if err != nil {
		t.Fatal(err)
	}
	bank, err := b.Acquire(id1, 64, 64)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if b.Texture(bank) == nil {
		t.Fatal("expected a texture after Acquire")
	}

	id2, _ := NewId(2)
	if err := b.Share(bank, id2); err != nil {
		t.Fatalf("Share: %v", err)
	}

	b.Release(bank, id1)
	if b.Texture(bank) == nil {
		t.Fatal("texture should still be alive while id2 references it")
	}

	b.Release(bank, id2)
	if b.Texture(bank) != nil {
		t.Fatal("texture should be freed once the last reference is released")
	}
}

func TestBankExhaustion(t *testing.T) {
	b := NewBank()
	for i := 0; i < maxBankId; i++ {
		id, _ := NewId(i)
		if _, err := b.Acquire(id, 8, 8); err != nil {
			t.Fatalf("Acquire %d: %v", i, err)
		}
	}
	overflow, _ := NewId(200)
	if _, err := b.Acquire(overflow, 8, 8); err == nil {
		t.Fatal("expected error once all 48 slots are taken")
	}
}

func TestWiperLifecycle(t *testing.T) {
	w := NewDefaultWiper(10)
	if !w.Running() {
		t.Fatal("expected running immediately after creation")
	}
	for i := 0; i < 9; i++ {
		w.Update(1)
	}
	if !w.Running() {
		t.Fatal("expected still running before duration elapses")
	}
	w.Update(1)
	if w.Running() {
		t.Fatal("expected finished once duration has elapsed")
	}
}

func TestWiperFastForward(t *testing.T) {
	w := NewDefaultWiper(1000)
	w.FastForward()
	if w.Running() {
		t.Fatal("expected finished after FastForward")
	}
}

func TestMaskWiperBandFlip(t *testing.T) {
	w := NewMaskWiper(10, nil, 2, 0)
	w.Update(5) // halfway
	min, max := w.band()
	w2 := NewMaskWiper(10, nil, 2, MaskFlipMinMax)
	w2.Update(5)
	flippedMin, flippedMax := w2.band()
	if min != flippedMax || max != flippedMin {
		t.Errorf("MaskFlipMinMax should swap min/max: got (%v,%v) vs (%v,%v)", min, max, flippedMin, flippedMax)
	}
}
