package render

import (
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/dom/htmldom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// sent is one message delivered to the root of an event chain.
type sent struct {
	Msg  vdom.Msg
	Sync bool
}

type harness struct {
	doc    *htmldom.Document
	r      *Renderer
	events *EventNode
	sent   []sent
}

func newHarness() *harness {
	h := &harness{doc: htmldom.New()}
	h.r = NewRenderer(h.doc, RendererConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	h.events = NewEventRoot(func(msg vdom.Msg, sync bool) {
		h.sent = append(h.sent, sent{Msg: msg, Sync: sync})
	})
	return h
}

// mount renders v under a fresh parent so root replacement is visible.
func (h *harness) mount(v *vdom.VNode) dom.Node {
	parent := h.doc.Root()
	node := h.r.Render(v, h.events)
	parent.AppendChild(node)
	return node
}

func outer(t *testing.T, n dom.Node) string {
	t.Helper()
	s, err := htmldom.OuterHTML(n)
	if err != nil {
		t.Fatalf("OuterHTML() error = %v", err)
	}
	return s
}

func expectPanicCode(t *testing.T, code string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %s", code)
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %v is not an error", r)
		}
		if got := err.Error(); len(got) < len(code) || got[:len(code)] != code {
			t.Errorf("panic = %q, want code %s", got, code)
		}
	}()
	fn()
}
