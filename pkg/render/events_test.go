package render

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/dom/htmldom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

type wrapped struct {
	Tag string
	Msg vdom.Msg
}

func wrapWith(tag string) *vdom.Tagger {
	return vdom.NewTagger(func(m vdom.Msg) vdom.Msg { return wrapped{Tag: tag, Msg: m} })
}

func TestEventThroughTaggers(t *testing.T) {
	h := newHarness()
	outerTagger, innerTagger, leafTagger := wrapWith("outer"), wrapWith("inner"), wrapWith("leaf")

	view := vdom.Map(outerTagger, vdom.Map(innerTagger,
		vdom.Div(vdom.Map(leafTagger, vdom.Button(vdom.OnClick("click"), "go"))),
	))
	root := h.mount(view)

	btn, err := h.doc.Query(root, "button")
	if err != nil || btn == nil {
		t.Fatalf("Query(button) = %v, %v", btn, err)
	}
	htmldom.Dispatch(btn, htmldom.NewEvent("click", nil))

	want := []sent{{
		Msg: wrapped{Tag: "outer", Msg: wrapped{Tag: "inner", Msg: wrapped{Tag: "leaf", Msg: "click"}}},
	}}
	if diff := cmp.Diff(want, h.sent); diff != "" {
		t.Errorf("sent mismatch (-want +got):\n%s", diff)
	}
}

func TestTaggerChangeInsideLazy(t *testing.T) {
	outerTagger := wrapWith("outer")
	view := func(inner *vdom.Tagger) *vdom.VNode {
		return vdom.Div(vdom.Map(outerTagger, vdom.Lazy(func() *vdom.VNode {
			return vdom.Map(inner, vdom.Button(vdom.OnClick("click")))
		}, inner)))
	}
	click := func(h *harness, root dom.Node) {
		t.Helper()
		btn, err := h.doc.Query(root, "button")
		if err != nil || btn == nil {
			t.Fatalf("Query(button) = %v, %v", btn, err)
		}
		htmldom.Dispatch(btn, htmldom.NewEvent("click", nil))
	}

	old, next := view(wrapWith("B")), view(wrapWith("C"))

	fresh := newHarness()
	click(fresh, fresh.mount(next))

	h := newHarness()
	root := h.mount(old)
	root = h.r.Patch(root, old, next, h.events)
	click(h, root)

	want := []sent{{Msg: wrapped{Tag: "outer", Msg: wrapped{Tag: "C", Msg: "click"}}}}
	if diff := cmp.Diff(want, fresh.sent); diff != "" {
		t.Fatalf("fresh render sent mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, h.sent); diff != "" {
		t.Errorf("patched tree sent mismatch (-want +got):\n%s", diff)
	}

	// The outer tagger changes too; each layer keeps its own taggers.
	third := vdom.Div(vdom.Map(wrapWith("outer2"), vdom.Lazy(func() *vdom.VNode {
		return vdom.Map(wrapWith("D"), vdom.Button(vdom.OnClick("click")))
	}, "d")))
	root = h.r.Patch(root, next, third, h.events)
	h.sent = nil
	click(h, root)

	want = []sent{{Msg: wrapped{Tag: "outer2", Msg: wrapped{Tag: "D", Msg: "click"}}}}
	if diff := cmp.Diff(want, h.sent); diff != "" {
		t.Errorf("second patch sent mismatch (-want +got):\n%s", diff)
	}
}

func TestEventFlagsByKind(t *testing.T) {
	both := vdom.NewDecoder(func(dom.Event) (vdom.Decoded, error) {
		return vdom.Decoded{Msg: "m", StopPropagation: true, PreventDefault: true}, nil
	})

	tests := []struct {
		name        string
		fact        vdom.Fact
		wantStop    bool
		wantPrevent bool
	}{
		{"normal", vdom.On("click", both), false, false},
		{"may stop propagation", vdom.MayStopPropagationOn("click", both), true, false},
		{"may prevent default", vdom.MayPreventDefaultOn("click", both), false, true},
		{"custom", vdom.CustomOn("click", both), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			outerClicks := 0
			view := vdom.Div(vdom.On("click", vdom.NewDecoder(func(dom.Event) (vdom.Decoded, error) {
				outerClicks++
				return vdom.Decoded{Msg: "outer"}, nil
			})), vdom.Button(tt.fact))
			root := h.mount(view)

			ev := htmldom.NewEvent("click", nil)
			htmldom.Dispatch(root.ChildAt(0), ev)

			if ev.PropagationStopped() != tt.wantStop || ev.DefaultPrevented() != tt.wantPrevent {
				t.Errorf("stopped=%v prevented=%v, want %v %v",
					ev.PropagationStopped(), ev.DefaultPrevented(), tt.wantStop, tt.wantPrevent)
			}
			if h.sent[0].Sync != tt.wantStop {
				t.Errorf("Sync = %v, want %v", h.sent[0].Sync, tt.wantStop)
			}
			wantOuter := 1
			if tt.wantStop {
				wantOuter = 0
			}
			if outerClicks != wantOuter {
				t.Errorf("outer handler ran %d times, want %d", outerClicks, wantOuter)
			}
		})
	}
}

func TestDecodeFailureDropsEvent(t *testing.T) {
	h := newHarness()
	var hookType string
	var hookErr error
	h.r.config.OnDecodeError = func(eventType string, err error) {
		hookType, hookErr = eventType, err
	}

	root := h.mount(vdom.Input(vdom.OnInput(func(s string) vdom.Msg { return s })))

	htmldom.Dispatch(root, htmldom.NewEvent("input", map[string]any{"value": 42}))
	if len(h.sent) != 0 {
		t.Errorf("sent = %v, want nothing", h.sent)
	}
	if hookType != "input" || !errors.Is(hookErr, vdom.ErrDecode) {
		t.Errorf("hook got (%q, %v)", hookType, hookErr)
	}

	htmldom.Dispatch(root, htmldom.NewEvent("input", map[string]any{"value": "ok"}))
	if len(h.sent) != 1 || h.sent[0].Msg != "ok" || !h.sent[0].Sync {
		t.Errorf("sent = %+v, want one sync \"ok\"", h.sent)
	}
}

func TestHandlerSwapKeepsListener(t *testing.T) {
	h := newHarness()
	old := vdom.Button(vdom.OnClick("first"))
	root := h.mount(old)
	btn := root.(*htmldom.Element)

	h.doc.ResetStats()
	next := vdom.Button(vdom.OnClick("second"))
	root = h.r.Patch(root, old, next, h.events)

	if s := h.doc.Stats(); s.ListenersAdded != 0 || s.ListenersRemoved != 0 {
		t.Errorf("listener churn: added=%d removed=%d", s.ListenersAdded, s.ListenersRemoved)
	}
	htmldom.Dispatch(btn, htmldom.NewEvent("click", nil))
	if len(h.sent) != 1 || h.sent[0].Msg != "second" {
		t.Errorf("sent = %+v, want the swapped handler's message", h.sent)
	}

	// A different kind re-registers the native listener.
	h.doc.ResetStats()
	third := vdom.Button(vdom.MayStopPropagationOn("click", vdom.Succeed("third")))
	h.r.Patch(root, next, third, h.events)
	if s := h.doc.Stats(); s.ListenersAdded != 1 || s.ListenersRemoved != 1 {
		t.Errorf("kind change: added=%d removed=%d, want 1/1", s.ListenersAdded, s.ListenersRemoved)
	}
	if btn.Listeners("click") != 1 {
		t.Errorf("Listeners(click) = %d, want 1", btn.Listeners("click"))
	}
}

func TestHandlerRemoved(t *testing.T) {
	h := newHarness()
	old := vdom.Button(vdom.OnClick("x"))
	root := h.mount(old)

	h.r.Patch(root, old, vdom.Button(), h.events)

	if n := root.(*htmldom.Element).Listeners("click"); n != 0 {
		t.Errorf("Listeners(click) = %d, want 0", n)
	}
	htmldom.Dispatch(root, htmldom.NewEvent("click", nil))
	if len(h.sent) != 0 {
		t.Errorf("sent = %v, want nothing", h.sent)
	}
}

func TestTaggerPatchRewiresMessages(t *testing.T) {
	h := newHarness()
	a, b := wrapWith("a"), wrapWith("b")
	old := vdom.Div(vdom.Map(a, vdom.Button(vdom.OnClick("c"))))
	root := h.mount(old)

	root = h.r.Patch(root, old, vdom.Div(vdom.Map(b, vdom.Button(vdom.OnClick("c")))), h.events)

	htmldom.Dispatch(root.ChildAt(0), htmldom.NewEvent("click", nil))
	want := []sent{{Msg: wrapped{Tag: "b", Msg: "c"}}}
	if diff := cmp.Diff(want, h.sent); diff != "" {
		t.Errorf("sent mismatch (-want +got):\n%s", diff)
	}
}

func TestRedrawInsideMappedKeepsTaggers(t *testing.T) {
	h := newHarness()
	tagger := wrapWith("t")
	old := vdom.Map(tagger, vdom.Button(vdom.OnClick("c")))
	root := h.mount(old)

	root = h.r.Patch(root, old, vdom.Map(tagger, vdom.A(vdom.OnClick("c"))), h.events)

	if el, ok := root.(dom.Element); !ok || el.Tag() != "a" {
		t.Fatalf("root = %v, want <a>", root)
	}
	htmldom.Dispatch(root, htmldom.NewEvent("click", nil))
	want := []sent{{Msg: wrapped{Tag: "t", Msg: "c"}}}
	if diff := cmp.Diff(want, h.sent); diff != "" {
		t.Errorf("sent mismatch (-want +got):\n%s", diff)
	}
}
