package layer

import "github.com/DCNick3/shin-go/tick"

// Layer is anything a Group can hold as a child: the discriminated leaf
// kinds (Tile, Picture, Bustup, Animation, Effect, Movie, FocusLine, Rain,
// Quiz, Null) and Group itself, which nests.
type Layer interface {
	Properties() *Properties
	Update(dt tick.Ticks)
}

// entry pairs a child layer with the Id it was assigned within its Group.
type entry struct {
	id    Id
	layer Layer
}

// Group is an ordered container of (Id -> Layer) children, the composition
// unit LAYERLOAD installs newly decoded layers into and LAYERCTRL's
// RenderPosition property reorders. Children keep stable relative order
// within equal z-position, matching insertion order, the way willow's
// Node keeps children in append order until explicitly reindexed.
type Group struct {
	props    *Properties
	children []entry
	byID     map[Id]int
}

// NewGroup returns an empty Group with default properties.
func NewGroup() *Group {
	return &Group{props: NewProperties(), byID: make(map[Id]int)}
}

func (g *Group) Properties() *Properties { return g.props }

// Update advances this group's own properties and recurses into children.
func (g *Group) Update(dt tick.Ticks) {
	g.props.Update(dt)
	for _, e := range g.children {
		e.layer.Update(dt)
	}
}

// Insert adds or replaces the child at id, appended after any existing
// children (RenderPosition is what reorders, not insertion order).
func (g *Group) Insert(id Id, child Layer) {
	if i, ok := g.byID[id]; ok {
		g.children[i].layer = child
		return
	}
	g.byID[id] = len(g.children)
	g.children = append(g.children, entry{id: id, layer: child})
}

// Remove detaches the child at id, if present.
func (g *Group) Remove(id Id) {
	i, ok := g.byID[id]
	if !ok {
		return
	}
	g.children = append(g.children[:i], g.children[i+1:]...)
	delete(g.byID, id)
	for j := i; j < len(g.children); j++ {
		g.byID[g.children[j].id] = j
	}
}

// Get returns the child at id, or (nil, false) if absent.
func (g *Group) Get(id Id) (Layer, bool) {
	i, ok := g.byID[id]
	if !ok {
		return nil, false
	}
	return g.children[i].layer, true
}

// Reorder moves the child at id so it renders at the given RenderPosition
// among its siblings, used by LAYERCTRL on PropRenderPosition.
func (g *Group) Reorder(id Id, position int) {
	i, ok := g.byID[id]
	if !ok {
		return
	}
	e := g.children[i]
	g.children = append(g.children[:i], g.children[i+1:]...)
	if position < 0 {
		position = 0
	}
	if position > len(g.children) {
		position = len(g.children)
	}
	g.children = append(g.children, entry{})
	copy(g.children[position+1:], g.children[position:])
	g.children[position] = e
	for j := range g.children {
		g.byID[g.children[j].id] = j
	}
}

// Children returns the ordered list of (Id, Layer) pairs for rendering.
func (g *Group) Children() []struct {
	ID    Id
	Layer Layer
} {
	out := make([]struct {
		ID    Id
		Layer Layer
	}, len(g.children))
	for i, e := range g.children {
		out[i].ID = e.id
		out[i].Layer = e.layer
	}
	return out
}
