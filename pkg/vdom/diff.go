package vdom

import (
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/dom"
)

// Diff compares two view trees and returns the patches needed to turn the
// live rendering of prev into a rendering of next. Patches are addressed
// by pre-order traversal index in prev and are sorted by index.
//
// Diff caches thunk results inside next's Lazy nodes; next should be kept
// as the "old" tree of the following cycle.
func Diff(prev, next *VNode) []*Patch {
	var patches []*Patch
	diff(prev, next, &patches, 0)
	return patches
}

func push(patches *[]*Patch, p *Patch) *Patch {
	*patches = append(*patches, p)
	return p
}

// diff recursively compares nodes and appends patches.
func diff(x, y *VNode, patches *[]*Patch, index int) {
	if x == y {
		return
	}

	if x.Kind != y.Kind {
		switch {
		case x.Kind == KindElement && y.Kind == KindKeyedElement:
			y = dekey(y)
		case x.Kind == KindKeyedElement && y.Kind == KindElement:
			x = dekey(x)
		default:
			push(patches, &Patch{Kind: PatchRedraw, Index: index, Node: y})
			return
		}
	}

	switch x.Kind {
	case KindLazy:
		diffLazy(x, y, patches, index)
	case KindMapped:
		diffMapped(x, y, patches, index)
	case KindText:
		if x.Text != y.Text {
			push(patches, &Patch{Kind: PatchText, Index: index, Text: y.Text})
		}
	case KindElement:
		if diffNodes(x, y, patches, index) {
			diffChildren(x, y, patches, index)
		}
	case KindKeyedElement:
		if diffNodes(x, y, patches, index) {
			diffKeyedChildren(x, y, patches, index)
		}
	case KindCustom:
		diffCustom(x, y, patches, index)
	default:
		panic(errors.New("E101").WithDetailf("kind %d at index %d", x.Kind, index))
	}
}

// diffLazy reuses the cached tree when the dependencies are unchanged and
// otherwise diffs the two thunk results in their own index space.
func diffLazy(x, y *VNode, patches *[]*Patch, index int) {
	if sameDeps(x.Memo.Deps, y.Memo.Deps) {
		y.Memo.Cached = x.Memo.Force()
		return
	}
	var sub []*Patch
	diff(x.Memo.Force(), y.Memo.Force(), &sub, 0)
	if len(sub) > 0 {
		push(patches, &Patch{Kind: PatchMemo, Index: index, Sub: sub})
	}
}

// diffMapped flattens nested taggers on both sides. A different nesting
// depth means the tree structure changed, so the subtree is redrawn.
func diffMapped(x, y *VNode, patches *[]*Patch, index int) {
	xTaggers, xChild := FlattenTaggers(x)
	yTaggers, yChild := FlattenTaggers(y)

	if len(xTaggers) != len(yTaggers) {
		push(patches, &Patch{Kind: PatchRedraw, Index: index, Node: y})
		return
	}
	for i := range xTaggers {
		if xTaggers[i] != yTaggers[i] {
			push(patches, &Patch{Kind: PatchTagger, Index: index, Taggers: yTaggers})
			break
		}
	}
	diff(xChild, yChild, patches, index+1)
}

// FlattenTaggers collects the taggers of nested Mapped nodes, outermost
// first, and returns the first non-Mapped descendant.
func FlattenTaggers(v *VNode) ([]*Tagger, *VNode) {
	var taggers []*Tagger
	for v.Kind == KindMapped {
		taggers = append(taggers, v.Tagger)
		v = v.Child
	}
	return taggers, v
}

// diffNodes handles the tag/namespace bail-out and the facts of two
// elements. It reports whether the children still need diffing.
func diffNodes(x, y *VNode, patches *[]*Patch, index int) bool {
	if x.Tag != y.Tag || x.Namespace != y.Namespace {
		push(patches, &Patch{Kind: PatchRedraw, Index: index, Node: y})
		return false
	}
	if delta := diffFacts(&x.Facts, &y.Facts); delta != nil {
		push(patches, &Patch{Kind: PatchFacts, Index: index, Facts: delta})
	}
	return true
}

func diffCustom(x, y *VNode, patches *[]*Patch, index int) {
	if !SameRef(x.Widget, y.Widget) {
		push(patches, &Patch{Kind: PatchRedraw, Index: index, Node: y})
		return
	}
	if delta := diffFacts(&x.Facts, &y.Facts); delta != nil {
		push(patches, &Patch{Kind: PatchFacts, Index: index, Facts: delta})
	}
	switch payload := y.Widget.Diff(x.State, y.State).(type) {
	case nil:
	case Callback:
		push(patches, &Patch{Kind: PatchCallback, Index: index, Callback: payload})
	case func(dom.Node) dom.Node:
		push(patches, &Patch{Kind: PatchCallback, Index: index, Callback: payload})
	default:
		push(patches, &Patch{Kind: PatchCustom, Index: index, Node: y, Payload: payload})
	}
}

// diffChildren pairs unkeyed children by position. The length change is
// recorded before the children's own patches to keep the list sorted.
func diffChildren(x, y *VNode, patches *[]*Patch, index int) {
	xKids, yKids := x.Children, y.Children
	xLen, yLen := len(xKids), len(yKids)

	switch {
	case xLen > yLen:
		push(patches, &Patch{Kind: PatchRemoveLast, Index: index, From: yLen, Count: xLen - yLen})
	case xLen < yLen:
		push(patches, &Patch{Kind: PatchAppend, Index: index, From: xLen, Nodes: yKids})
	}

	minLen := min(xLen, yLen)
	for i := 0; i < minLen; i++ {
		index++
		diff(xKids[i], yKids[i], patches, index)
		index += xKids[i].Descendants
	}
}
