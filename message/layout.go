package message

// Font is the minimal glyph-metric surface the layouter needs, satisfied
// by render.Font in the render layer; kept separate here so
// package message never imports ebiten.
type Font interface {
	Advance(r rune) float64
	LineHeight() float64
}

// Color is a 0..1 RGBA color, matching the scenario's @c color table and
// the default text color.
type Color struct {
	R, G, B, A float64
}

// Alignment mirrors LayoutParams.text_alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// LayoutParams configures one message's layout pass.
type LayoutParams struct {
	LayoutWidth             float64
	TextAlignment           Alignment
	LinePaddingAbove        float64
	LinePaddingBelow        float64
	LinePaddingBetween      float64
	RubiSize                float64
	TextSize                float64
	BaseFontHorizontalScale float64
	FollowKinsokuShoriRules bool
	AlwaysLeaveSpaceForRubi bool
	PerformSoftBreaks       bool
}

// Defaults holds the style a message starts with before any @c/@w markup
// overrides it.
type Defaults struct {
	Color     Color
	DrawSpeed float64 // characters per tick
	Fade      float64
}

// leadingProhibited is the kinsoku-shori set of characters that may never
// start a line (closing punctuation, small kana).
var leadingProhibited = map[rune]bool{
	'、': true, '。': true, '」': true, '』': true, '）': true, '〉': true,
	'ィ': true, 'ッ': true, 'ー': true, '々': true, '？': true, '！': true,
}

// trailingProhibited is the set of characters that may never end a line
// (opening punctuation).
var trailingProhibited = map[rune]bool{
	'「': true, '『': true, '（': true, '〈': true,
}

// placedChar is one shaped glyph ready for line breaking.
type placedChar struct {
	tok     Token
	advance float64

	// baseAdvances and baseLeadPad are set for TokRubi: the natural
	// per-rune advance of each base character, and the padding inserted
	// before the first one when the rubi annotation is wider than the
	// base span (split fore/aft so the annotation centers over its base
	// glyphs while the base run stays internally contiguous).
	baseAdvances []float64
	baseLeadPad  float64
}

// Layout runs the full lex -> shape -> break -> reveal-time pipeline over
// s and produces the event stream a MessageLayer replays.
func Layout(s string, base, rubi Font, params LayoutParams, defaults Defaults) (*LayoutedMessage, error) {
	tokens, err := Lex(s)
	if err != nil {
		return nil, err
	}

	placed := shape(tokens, base, rubi, params)
	lineOf, lines := breakLines(placed, params, base.LineHeight())
	events := computeEvents(placed, lineOf, lines, params, defaults)

	width := params.LayoutWidth
	height := 0.0
	for _, l := range lines {
		height = l.YOffset + l.Height
	}

	return &LayoutedMessage{Events: events, Lines: lines, Width: width, Height: height}, nil
}

// shape computes each token's advance width, scaled by
// BaseFontHorizontalScale for base glyphs. Non-character tokens carry a
// zero advance; they still occupy a slot so breakLines/computeEvents can
// walk one slice.
//
// A TokRubi's advance is the widened base span: if the rubi annotation
// (shaped with the rubi font) is wider than its base text, the base
// characters' advances are padded out so the base span is at least as
// wide as the rubi, while staying contiguous with the characters on
// either side.
func shape(tokens []Token, base, rubi Font, params LayoutParams) []placedChar {
	out := make([]placedChar, len(tokens))
	for i, tok := range tokens {
		switch tok.Kind {
		case TokChar:
			r := []rune(tok.Text)[0]
			out[i] = placedChar{tok: tok, advance: base.Advance(r) * params.BaseFontHorizontalScale}
		case TokRubi:
			baseRunes := []rune(tok.Text)
			baseAdvances := make([]float64, len(baseRunes))
			baseWidth := 0.0
			for j, r := range baseRunes {
				a := base.Advance(r) * params.BaseFontHorizontalScale
				baseAdvances[j] = a
				baseWidth += a
			}
			rubiWidth := 0.0
			for _, r := range tok.Rubi {
				rubiWidth += rubi.Advance(r)
			}
			widened := baseWidth
			leadPad := 0.0
			if rubiWidth > baseWidth {
				widened = rubiWidth
				leadPad = (rubiWidth - baseWidth) / 2
			}
			out[i] = placedChar{tok: tok, advance: widened, baseAdvances: baseAdvances, baseLeadPad: leadPad}
		default:
			out[i] = placedChar{tok: tok}
		}
	}
	return out
}

// breakLines greedily places tokens on lines, breaking at the last legal
// kinsoku-shori point when enabled, or right before the overflowing token
// otherwise.
// It returns each token's line index and the finalized Line geometry.
func breakLines(placed []placedChar, params LayoutParams, lineHeight float64) ([]int, []Line) {
	lineOf := make([]int, len(placed))
	var lines []Line

	line := 0
	x := 0.0
	lastBreakable := -1 // index of the last token after which breaking is legal

	flushLine := func() {
		y := 0.0
		if len(lines) > 0 {
			prev := lines[len(lines)-1]
			y = prev.YOffset + prev.Height + params.LinePaddingBetween
		} else {
			y = params.LinePaddingAbove
		}
		lines = append(lines, Line{YOffset: y, Height: lineHeight + params.LinePaddingBelow})
	}
	flushLine()

	for i, pc := range placed {
		if pc.tok.Kind == TokNewline {
			lineOf[i] = line
			line++
			x = 0
			lastBreakable = -1
			flushLine()
			continue
		}

		if x+pc.advance > params.LayoutWidth && x > 0 {
			breakAt := i
			if params.FollowKinsokuShoriRules && lastBreakable >= 0 && lastBreakable+1 < i {
				breakAt = lastBreakable + 1
			}
			line++
			flushLine()

			// Tokens from breakAt up to (but not including) i were already
			// assigned to the old line; move them to the new one and
			// recompute the pending line width from their advances.
			x = 0
			for j := breakAt; j < i; j++ {
				lineOf[j] = line
				x += placed[j].advance
			}
			lastBreakable = -1
		}

		lineOf[i] = line
		x += pc.advance

		if pc.tok.Kind == TokChar {
			r := []rune(pc.tok.Text)[0]
			if isBreakable(r, placed, i) {
				lastBreakable = i
			}
		}
	}

	return lineOf, lines
}

// isBreakable reports whether a break is legal right after token i: the
// character itself isn't trailing-prohibited, and the next character (if
// any) isn't leading-prohibited.
func isBreakable(r rune, placed []placedChar, i int) bool {
	if trailingProhibited[r] {
		return false
	}
	if i+1 < len(placed) && placed[i+1].tok.Kind == TokChar {
		next := []rune(placed[i+1].tok.Text)[0]
		if leadingProhibited[next] {
			return false
		}
	}
	return true
}

// computeEvents walks the token stream in order, accumulating a reveal
// time from draw speed, @w pauses, @y absolute offsets and voice-sync
// barriers.
func computeEvents(placed []placedChar, lineOf []int, lines []Line, params LayoutParams, defaults Defaults) []Event {
	var events []Event
	currentTime := 0.0
	x := 0.0
	lastLine := -1
	var lastVoiceTime float64

	for i, pc := range placed {
		if lineOf[i] != lastLine {
			x = 0
			lastLine = lineOf[i]
		}
		switch pc.tok.Kind {
		case TokChar:
			r := []rune(pc.tok.Text)[0]
			events = append(events, Event{Kind: EventCharAt, Time: currentTime, LineIndex: lineOf[i], Char: r, X: x, Y: lines[lineOf[i]].YOffset})
			x += pc.advance
			if defaults.DrawSpeed > 0 {
				currentTime += 1.0 / defaults.DrawSpeed
			}
		case TokRubi:
			xx := x + pc.baseLeadPad
			for j, r := range []rune(pc.tok.Text) {
				events = append(events, Event{Kind: EventCharAt, Time: currentTime, LineIndex: lineOf[i], Char: r, X: xx, Y: lines[lineOf[i]].YOffset})
				xx += pc.baseAdvances[j]
				if defaults.DrawSpeed > 0 {
					currentTime += 1.0 / defaults.DrawSpeed
				}
			}
			x += pc.advance
		case TokPause:
			currentTime += float64(pc.tok.Millis) / 1000.0 * 60.0 // ms -> ticks
			events = append(events, Event{Kind: EventWait, Time: currentTime, LineIndex: lineOf[i]})
		case TokTimedWait:
			currentTime = float64(pc.tok.Millis) / 1000.0 * 60.0
			events = append(events, Event{Kind: EventWait, Time: currentTime, LineIndex: lineOf[i]})
		case TokAbsoluteTime:
			currentTime = float64(pc.tok.Millis) / 1000.0 * 60.0
		case TokWaitClick:
			events = append(events, Event{Kind: EventWait, Time: currentTime, LineIndex: lineOf[i]})
		case TokVoice:
			events = append(events, Event{Kind: EventVoice, Time: currentTime, LineIndex: lineOf[i], VoiceFile: pc.tok.ID})
			lastVoiceTime = currentTime
		case TokVoiceSync:
			currentTime = max64(currentTime, lastVoiceTime)
			events = append(events, Event{Kind: EventVoiceSync, Time: currentTime, LineIndex: lineOf[i]})
		case TokNewline:
			events = append(events, Event{Kind: EventSection, Time: currentTime, LineIndex: lineOf[i]})
		}
	}

	return events
}

func max64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
