package render

import (
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Patch diffs old against next, locates the patches in the live tree
// rooted at root and applies them. It returns the new live root.
func (r *Renderer) Patch(root dom.Node, old, next *vdom.VNode, events *EventNode) dom.Node {
	patches := vdom.Diff(old, next)
	if len(patches) == 0 {
		return root
	}
	return r.Apply(root, Locate(root, old, patches, events), patches)
}

// Apply performs located patches in order and returns the new live root,
// which differs from root only when the root itself was redrawn.
func (r *Renderer) Apply(root dom.Node, res *Resolution, patches []*vdom.Patch) dom.Node {
	for _, p := range patches {
		t, ok := res.targets[p]
		if !ok {
			panic(errors.New("E102").WithDetailf(
				"%s patch at index %d was not located", p.Kind, p.Index))
		}
		replaced := r.applyPatch(t, res, p)
		if t.node == root {
			root = replaced
		}
	}
	return root
}

func (r *Renderer) applyPatch(t target, res *Resolution, p *vdom.Patch) dom.Node {
	node := t.node

	switch p.Kind {
	case vdom.PatchRedraw:
		return r.redraw(node, p.Node, t.events, t.depth)

	case vdom.PatchFacts:
		r.applyDelta(node, t.events, p.Facts)
		return node

	case vdom.PatchText:
		node.(dom.Text).SetData(p.Text)
		return node

	case vdom.PatchMemo:
		return r.Apply(node, res, p.Sub)

	case vdom.PatchTagger:
		if t.layer != nil {
			t.layer.Taggers = p.Taggers
		}
		return node

	case vdom.PatchRemoveLast:
		for i := 0; i < p.Count; i++ {
			node.RemoveChild(node.ChildAt(p.From))
		}
		return node

	case vdom.PatchAppend:
		end := node.ChildAt(p.From)
		for _, kid := range p.Nodes[p.From:] {
			node.InsertBefore(r.Render(kid, t.events), end)
		}
		return node

	case vdom.PatchReorder:
		return r.reorder(node, t.events, res, p.Reorder)

	case vdom.PatchRemoveKeyed:
		if parent := node.Parent(); parent != nil {
			parent.RemoveChild(node)
		}
		if p.Removal != nil {
			res.moved[p.Removal.Entry] = r.Apply(node, res, p.Removal.Sub)
		}
		return node

	case vdom.PatchCustom:
		return replace(node, p.Node.Widget.Patch(node, p.Payload))

	case vdom.PatchCallback:
		return replace(node, p.Callback(node))
	}

	panic(errors.New("E100").WithDetailf("kind %d at index %d", p.Kind, p.Index))
}

// redraw renders v and swaps it in for node. The first depth Mapped
// layers of node belong to view nodes above v and carry over.
func (r *Renderer) redraw(node dom.Node, v *vdom.VNode, events *EventNode, depth int) dom.Node {
	parent := node.Parent()
	next := r.Render(v, events)
	if outer := eventLayers(node); depth > 0 && len(outer) > 0 {
		outer = outer[:min(depth, len(outer)):min(depth, len(outer))]
		next.SetProperty(propEvents, append(outer, eventLayers(next)...))
	}
	if parent != nil && next != node {
		parent.ReplaceChild(next, node)
	}
	return next
}

// reorder applies a keyed reconciliation: same-position patches and
// removals first, then inserts in ascending position, then trailing
// inserts in one fragment.
func (r *Renderer) reorder(node dom.Node, events *EventNode, res *Resolution, ro *vdom.Reorder) dom.Node {
	node = r.Apply(node, res, ro.Local)

	for _, ins := range ro.Inserts {
		node.InsertBefore(r.entryNode(ins.Entry, events, res), node.ChildAt(ins.Position))
	}

	if len(ro.Trailing) > 0 {
		frag := r.doc.CreateDocumentFragment()
		for _, ins := range ro.Trailing {
			frag.AppendChild(r.entryNode(ins.Entry, events, res))
		}
		node.AppendChild(frag)
	}
	return node
}

// entryNode returns the live node to insert for a keyed entry: the moved
// node when the key was seen on both sides, a fresh rendering otherwise.
func (r *Renderer) entryNode(e *vdom.Entry, events *EventNode, res *Resolution) dom.Node {
	if e.Status == vdom.EntryMoved {
		if node, ok := res.moved[e]; ok {
			return node
		}
		panic(errors.New("E102").WithDetail("moved keyed child has no live node"))
	}
	return r.Render(e.Node, events)
}

// replace swaps next in for node under node's parent when they differ.
// The Mapped layers of node move to next.
func replace(node, next dom.Node) dom.Node {
	if next != nil && next != node {
		if layers := eventLayers(node); layers != nil && next.Property(propEvents) == nil {
			next.SetProperty(propEvents, layers)
		}
		if parent := node.Parent(); parent != nil {
			parent.ReplaceChild(next, node)
		}
		return next
	}
	return node
}
