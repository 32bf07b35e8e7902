package render

import (
	"testing"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{
			name: "text",
			node: vdom.P("hello"),
			want: "<p>hello</p>",
		},
		{
			name: "attributes and styles",
			node: vdom.Div(vdom.ID("x"), vdom.Class("a"), vdom.Style("color", "red"), "t"),
			want: `<div class="a" id="x" style="color: red;">t</div>`,
		},
		{
			name: "keyed children",
			node: vdom.Ul(vdom.Key("a", vdom.Li("A")), vdom.Key("b", vdom.Li("B"))),
			want: "<ul><li>A</li><li>B</li></ul>",
		},
		{
			name: "namespaced",
			node: vdom.Svg(vdom.Use(vdom.XLinkHref("#i"))),
			want: `<svg><use xlink:href="#i"></use></svg>`,
		},
		{
			name: "lazy",
			node: vdom.Div(vdom.Lazy(func() *vdom.VNode { return vdom.Span("lazy") })),
			want: "<div><span>lazy</span></div>",
		},
		{
			name: "mapped",
			node: vdom.Map(vdom.NewTagger(func(m vdom.Msg) vdom.Msg { return m }), vdom.P("m")),
			want: "<p>m</p>",
		},
		{
			name: "custom widget",
			node: vdom.Custom(&labelWidget{}, "w", vdom.Class("c")),
			want: `<label class="c">w</label>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			if got := outer(t, h.r.Render(tt.node, h.events)); got != tt.want {
				t.Errorf("Render() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRenderProperties(t *testing.T) {
	h := newHarness()
	node := h.r.Render(vdom.Input(vdom.Value("v"), vdom.Checked(true), vdom.Prop("title", "t")), h.events)

	if node.Property("value") != "v" || node.Property("checked") != true || node.Property("title") != "t" {
		t.Errorf("properties = %v %v %v", node.Property("value"), node.Property("checked"), node.Property("title"))
	}
}

func TestRenderMappedSetsEventNode(t *testing.T) {
	h := newHarness()
	outerTagger := vdom.NewTagger(func(m vdom.Msg) vdom.Msg { return m })
	innerTagger := vdom.NewTagger(func(m vdom.Msg) vdom.Msg { return m })

	node := h.r.Render(vdom.Map(outerTagger, vdom.Map(innerTagger, vdom.P("x"))), h.events)

	layers := eventLayers(node)
	if len(layers) != 1 {
		t.Fatalf("mapped root has %d event layers, want 1", len(layers))
	}
	ev := layers[0]
	if len(ev.Taggers) != 2 || ev.Taggers[0] != outerTagger || ev.Taggers[1] != innerTagger {
		t.Errorf("Taggers = %v, want [outer inner]", ev.Taggers)
	}
	if ev.Parent != h.events {
		t.Error("event node is not linked to the root")
	}
}

func TestRenderMappedLayersAcrossLazy(t *testing.T) {
	h := newHarness()
	outerTagger := vdom.NewTagger(func(m vdom.Msg) vdom.Msg { return m })
	innerTagger := vdom.NewTagger(func(m vdom.Msg) vdom.Msg { return m })

	node := h.r.Render(vdom.Map(outerTagger, vdom.Lazy(func() *vdom.VNode {
		return vdom.Map(innerTagger, vdom.P("x"))
	})), h.events)

	layers := eventLayers(node)
	if len(layers) != 2 {
		t.Fatalf("got %d event layers, want 2", len(layers))
	}
	if layers[0].Taggers[0] != outerTagger || layers[1].Taggers[0] != innerTagger {
		t.Error("layers are not ordered outermost first")
	}
	if layers[1].Parent != layers[0] {
		t.Error("inner layer is not linked to the outer one")
	}
}

func TestRenderUnknownKindPanics(t *testing.T) {
	h := newHarness()
	expectPanicCode(t, "E101", func() {
		h.r.Render(&vdom.VNode{Kind: vdom.VKind(99)}, h.events)
	})
}

// labelWidget renders its string state into a <label>. Diff returns the
// new text; Patch writes it.
type labelWidget struct{ name string }

func (w *labelWidget) Render(doc dom.Document, state any) dom.Node {
	el := doc.CreateElement("label")
	el.AppendChild(doc.CreateTextNode(state.(string)))
	return el
}

func (w *labelWidget) Diff(oldState, newState any) any {
	if oldState == newState {
		return nil
	}
	return newState
}

func (w *labelWidget) Patch(node dom.Node, payload any) dom.Node {
	node.ChildAt(0).(dom.Text).SetData(payload.(string))
	return node
}
