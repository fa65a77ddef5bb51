package message

import (
	"testing"

	"github.com/DCNick3/shin-go/tick"
)

type fixedBoxFont struct{ advance, lineHeight float64 }

func (f fixedBoxFont) Advance(r rune) float64 { return f.advance }
func (f fixedBoxFont) LineHeight() float64    { return f.lineHeight }

func testParams() LayoutParams {
	return LayoutParams{LayoutWidth: 1000, TextSize: 24, BaseFontHorizontalScale: 1}
}

func TestBoxSetTextStartsUnfinished(t *testing.T) {
	b := NewBox(fixedBoxFont{advance: 10, lineHeight: 30}, fixedBoxFont{advance: 6, lineHeight: 18}, testParams(), Defaults{DrawSpeed: 0.5})
	b.SetText("hello", false)
	if !b.Visible() {
		t.Fatal("expected the box to be visible after SetText")
	}
	if b.Finished() {
		t.Fatal("expected the box not to be finished immediately after SetText")
	}
}

func TestBoxFinishesAfterRevealElapses(t *testing.T) {
	b := NewBox(fixedBoxFont{advance: 10, lineHeight: 30}, fixedBoxFont{advance: 6, lineHeight: 18}, testParams(), Defaults{DrawSpeed: 1})
	b.SetText("hi", false)
	for i := 0; i < 10000 && !b.Finished(); i++ {
		b.Update(tick.Ticks(1))
	}
	if !b.Finished() {
		t.Fatal("expected the box to finish revealing within a bounded number of ticks")
	}
}

func TestBoxCloseHidesAndResolvesImmediately(t *testing.T) {
	b := NewBox(fixedBoxFont{advance: 10, lineHeight: 30}, fixedBoxFont{advance: 6, lineHeight: 18}, testParams(), Defaults{})
	b.SetText("hi", false)
	done := b.Close()
	select {
	case <-done:
	default:
		t.Fatal("Close should resolve immediately")
	}
	if b.Visible() {
		t.Fatal("expected the box to be hidden after Close")
	}
}
