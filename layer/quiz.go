package layer

import "github.com/DCNick3/shin-go/tick"

// QuizChoice is one selectable region of a Quiz layer.
type QuizChoice struct {
	X, Y, Width, Height float64
}

// Quiz is a multiple-choice selection layer: a set of hit-test rectangles
// plus the currently hovered/selected index. Nothing in this package
// reports the selection back to the VM. It prescribes no particular visual
// presentation — presentation is built from ordinary child layers
// (Picture/Animation) the quiz's hit-test geometry overlays.
type Quiz struct {
	props    *Properties
	choices  []QuizChoice
	selected int
}

// NewQuiz returns a Quiz layer with no choice selected (-1).
func NewQuiz(choices []QuizChoice) *Quiz {
	return &Quiz{props: NewProperties(), choices: choices, selected: -1}
}

func (q *Quiz) Properties() *Properties { return q.props }

func (q *Quiz) Update(dt tick.Ticks) { q.props.Update(dt) }

// HitTest returns the index of the choice containing (x, y), or -1.
func (q *Quiz) HitTest(x, y float64) int {
	for i, c := range q.choices {
		if x >= c.X && x < c.X+c.Width && y >= c.Y && y < c.Y+c.Height {
			return i
		}
	}
	return -1
}

// Select records choice i (or -1 to clear) as the current selection.
func (q *Quiz) Select(i int) { q.selected = i }

// Selected returns the currently selected choice index, or -1.
func (q *Quiz) Selected() int { return q.selected }
