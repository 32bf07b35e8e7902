package render

import (
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// target is the live node a patch applies to and the event chain in
// effect there. depth counts the Mapped layers of node above the patched
// view node; layer is set when that view node is itself Mapped.
type target struct {
	node   dom.Node
	events *EventNode
	depth  int
	layer  *EventNode
}

// Resolution binds patches to live nodes. It is produced by Locate and
// consumed by Apply; the view trees themselves never hold live references.
type Resolution struct {
	targets map[*vdom.Patch]target
	// moved holds the live node of every keyed child that is moved rather
	// than recreated.
	moved map[*vdom.Entry]dom.Node
}

// Node returns the live node p is bound to, or nil.
func (res *Resolution) Node(p *vdom.Patch) dom.Node {
	return res.targets[p].node
}

// Len returns the number of bound patches, nested ones included.
func (res *Resolution) Len() int {
	return len(res.targets)
}

// Locate walks the live tree rooted at root together with old, the view
// tree it was rendered from, and binds every patch to its live node.
// Subtrees whose index range holds no patch are skipped without being
// visited.
//
// Locate panics with E102 if a patch cannot be bound, which means root
// was not rendered from old or was modified outside the engine.
func Locate(root dom.Node, old *vdom.VNode, patches []*vdom.Patch, events *EventNode) *Resolution {
	res := &Resolution{
		targets: make(map[*vdom.Patch]target),
		moved:   make(map[*vdom.Entry]dom.Node),
	}
	res.locate(root, old, patches, events, 0)
	return res
}

func (res *Resolution) locate(node dom.Node, v *vdom.VNode, patches []*vdom.Patch, events *EventNode, depth int) {
	if len(patches) == 0 {
		return
	}
	res.sub(node, v, patches, 0, 0, v.Descendants, events, depth)
}

// sub binds a nested patch list and checks that all of it was consumed.
func (res *Resolution) sub(node dom.Node, v *vdom.VNode, patches []*vdom.Patch, i, low, high int, events *EventNode, depth int) {
	if i = res.walk(node, v, patches, i, low, high, events, depth); i < len(patches) {
		panic(errors.New("E102").WithDetailf(
			"%s patch at index %d has no live node", patches[i].Kind, patches[i].Index))
	}
}

// walk binds patches[i:] whose index lies in [low, high], the index range
// of v, and returns the position of the first patch it did not bind.
// depth is the number of node's Mapped layers already entered.
func (res *Resolution) walk(node dom.Node, v *vdom.VNode, patches []*vdom.Patch, i, low, high int, events *EventNode, depth int) int {
	if node == nil {
		panic(errors.New("E102").WithDetailf("no live node at index %d", low))
	}

	var layer *EventNode
	if v.Kind == vdom.KindMapped {
		if layers := eventLayers(node); depth < len(layers) {
			layer = layers[depth]
		}
	}

	p := patches[i]
	index := p.Index

	for index == low {
		res.targets[p] = target{node: node, events: events, depth: depth, layer: layer}

		switch p.Kind {
		case vdom.PatchMemo:
			res.locate(node, v.Memo.Force(), p.Sub, events, depth)
		case vdom.PatchReorder:
			if len(p.Reorder.Local) > 0 {
				res.sub(node, v, p.Reorder.Local, 0, low, high, events, depth)
			}
		case vdom.PatchRemoveKeyed:
			if p.Removal != nil {
				res.moved[p.Removal.Entry] = node
				if len(p.Removal.Sub) > 0 {
					res.sub(node, v, p.Removal.Sub, 0, low, high, events, depth)
				}
			}
		}

		i++
		if i >= len(patches) || patches[i].Index > high {
			return i
		}
		p = patches[i]
		index = p.Index
	}

	switch v.Kind {
	case vdom.KindMapped:
		_, child := vdom.FlattenTaggers(v)
		sub := layer
		if sub == nil {
			sub = events
		}
		return res.walk(node, child, patches, i, low+1, high, sub, depth+1)

	case vdom.KindElement, vdom.KindKeyedElement:
		for j := 0; j < v.ChildCount(); j++ {
			low++
			child := v.ChildNode(j)
			nextLow := low + child.Descendants
			if low <= index && index <= nextLow {
				i = res.walk(node.ChildAt(j), child, patches, i, low, nextLow, events, 0)
				if i >= len(patches) || patches[i].Index > high {
					return i
				}
				index = patches[i].Index
			}
			low = nextLow
		}
	}
	return i
}
