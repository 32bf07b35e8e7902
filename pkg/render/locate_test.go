package render

import (
	"testing"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func TestLocateBindsPatches(t *testing.T) {
	h := newHarness()
	old := vdom.Div(
		vdom.P("a"),
		vdom.Ul(vdom.Li("x"), vdom.Li("y")),
		vdom.Span("b"),
	)
	next := vdom.Div(
		vdom.P("a"),
		vdom.Ul(vdom.Li("x"), vdom.Li("Y")),
		vdom.Span(vdom.Class("c"), "b"),
	)
	root := h.mount(old)

	patches := vdom.Diff(old, next)
	res := Locate(root, old, patches, h.events)

	if res.Len() != len(patches) {
		t.Fatalf("Len() = %d, want %d", res.Len(), len(patches))
	}

	ul := root.ChildAt(1)
	span := root.ChildAt(2)
	want := map[vdom.PatchKind]dom.Node{
		vdom.PatchText:  ul.ChildAt(1).ChildAt(0),
		vdom.PatchFacts: span,
	}
	for _, p := range patches {
		if got := res.Node(p); got != want[p.Kind] {
			t.Errorf("%s patch at %d bound to %v, want %v", p.Kind, p.Index, got, want[p.Kind])
		}
	}
}

// countingNode wraps a live node and counts ChildAt calls.
type countingNode struct {
	dom.Node
	calls *int
}

func (c countingNode) ChildAt(i int) dom.Node {
	*c.calls++
	child := c.Node.ChildAt(i)
	if child == nil {
		return nil
	}
	return countingNode{Node: child, calls: c.calls}
}

func TestLocateSkipsCleanSubtrees(t *testing.T) {
	h := newHarness()
	big := func(last string) *vdom.VNode {
		return vdom.Div(
			vdom.Ul(vdom.Repeat(50, func(i int) *vdom.VNode { return vdom.Li(vdom.Textf("%d", i)) })),
			vdom.P(last),
		)
	}
	old := big("a")
	root := h.mount(old)

	calls := 0
	patches := vdom.Diff(old, big("b"))
	Locate(countingNode{Node: root, calls: &calls}, old, patches, h.events)

	// Only the path div -> p -> text is visited.
	if calls != 2 {
		t.Errorf("ChildAt called %d times, want 2", calls)
	}
}

func TestLocateMemoUsesOldCachedTree(t *testing.T) {
	h := newHarness()
	view := func(name string) *vdom.VNode {
		return vdom.Div(vdom.Lazy(func() *vdom.VNode { return vdom.P(vdom.Span(name)) }, name), vdom.El("em", "tail"))
	}
	old := view("a")
	root := h.mount(old)

	patches := vdom.Diff(old, view("b"))
	res := Locate(root, old, patches, h.events)

	if len(patches) != 1 || patches[0].Kind != vdom.PatchMemo {
		t.Fatalf("patches = %v, want [Memo]", patches)
	}
	sub := patches[0].Sub[0]
	if got, want := res.Node(sub), root.ChildAt(0).ChildAt(0).ChildAt(0); got != want {
		t.Errorf("memo sub patch bound to %v, want the span's text", got)
	}
}

func TestLocateMismatchPanics(t *testing.T) {
	h := newHarness()
	old := vdom.Div(vdom.P("a"), vdom.P("b"))
	root := h.mount(old)
	root.RemoveChild(root.ChildAt(1))

	patches := vdom.Diff(old, vdom.Div(vdom.P("a"), vdom.P("c")))
	expectPanicCode(t, "E102", func() {
		Locate(root, old, patches, h.events)
	})
}

func TestApplyUnlocatedPatchPanics(t *testing.T) {
	h := newHarness()
	old := vdom.P("a")
	root := h.mount(old)

	patches := vdom.Diff(old, vdom.P("b"))
	expectPanicCode(t, "E102", func() {
		h.r.Apply(root, Locate(root, old, nil, h.events), patches)
	})
}

func TestApplyUnknownPatchKindPanics(t *testing.T) {
	h := newHarness()
	old := vdom.P("a")
	root := h.mount(old)

	patches := []*vdom.Patch{{Kind: vdom.PatchKind(200), Index: 0}}
	expectPanicCode(t, "E100", func() {
		h.r.Apply(root, Locate(root, old, patches, h.events), patches)
	})
}
