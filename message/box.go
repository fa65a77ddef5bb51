package message

import "github.com/DCNick3/shin-go/tick"

// Box is the runtime driver for one messagebox: it owns the fonts and
// layout configuration SetText needs, tracks how much of the current
// message's reveal has played out, and answers the command.MessageManager
// surface the MSGINIT/MSGSET/MSGCLOSE commands drive.
type Box struct {
	base, rubi Font
	params     LayoutParams
	defaults   Defaults

	style   int32
	current *LayoutedMessage
	elapsed tick.Ticks
}

// NewBox returns a Box laying out messages with base/rubi fonts under a
// fixed set of layout parameters. Per-style parameter presets aren't
// recoverable from the retrieved sources, so every style shares params;
// SetStyle only records the style id against a future per-style table.
func NewBox(base, rubi Font, params LayoutParams, defaults Defaults) *Box {
	return &Box{base: base, rubi: rubi, params: params, defaults: defaults}
}

// SetStyle records the messagebox style MSGINIT selected.
func (b *Box) SetStyle(style int32) { b.style = style }

// Style returns the style last set by SetStyle.
func (b *Box) Style() int32 { return b.style }

// SetText lays out text and resets the reveal clock. A layout failure
// (malformed markup) leaves the box showing nothing rather than panicking,
// since MSGSET is fire-and-forget from the VM's perspective.
func (b *Box) SetText(text string, autoWait bool) {
	b.elapsed = 0
	layout, err := Layout(text, b.base, b.rubi, b.params, b.defaults)
	if err != nil {
		b.current = nil
		return
	}
	b.current = layout
}

// Finished reports whether every event in the current message has played.
func (b *Box) Finished() bool {
	if b.current == nil || len(b.current.Events) == 0 {
		return true
	}
	last := b.current.Events[len(b.current.Events)-1]
	return float64(b.elapsed) >= last.Time
}

// Close hides the messagebox. There's no close animation modeled yet, so
// it resolves immediately rather than blocking on one.
func (b *Box) Close() <-chan struct{} {
	b.current = nil
	done := make(chan struct{})
	close(done)
	return done
}

// Update advances the reveal clock by dt ticks.
func (b *Box) Update(dt tick.Ticks) {
	if b.current != nil {
		b.elapsed += dt
	}
}

// Visible reports whether a message is currently displayed.
func (b *Box) Visible() bool { return b.current != nil }

// VisibleEvents returns the entries of the current message whose Time has
// elapsed, for a renderer to draw glyph-by-glyph as they're revealed.
func (b *Box) VisibleEvents() []Event {
	if b.current == nil {
		return nil
	}
	out := make([]Event, 0, len(b.current.Events))
	for _, e := range b.current.Events {
		if float64(b.elapsed) >= e.Time {
			out = append(out, e)
		}
	}
	return out
}
