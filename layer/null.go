package layer

import "github.com/DCNick3/shin-go/tick"

// Null is a layer with no visual output: a pure property/hierarchy node,
// used where the scenario wants a LAYERCTRL-addressable transform or
// opacity without any pixels of its own (e.g. a grouping anchor for
// several sibling layers that should move together).
type Null struct {
	props *Properties
}

// NewNull returns an empty Null layer.
func NewNull() *Null {
	return &Null{props: NewProperties()}
}

func (n *Null) Properties() *Properties { return n.props }

func (n *Null) Update(dt tick.Ticks) { n.props.Update(dt) }
