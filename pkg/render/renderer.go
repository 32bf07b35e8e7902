package render

import (
	"log/slog"
	"sort"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Live node properties used for bookkeeping.
const (
	// propEvents holds the []*EventNode of every Mapped layer rendered
	// onto a node, outermost first.
	propEvents = "vtree.events"
	// propHandlers holds the map of event type to *listener.
	propHandlers = "vtree.handlers"
)

// RendererConfig configures the live renderer.
type RendererConfig struct {
	// Logger receives debug output about dropped events. Defaults to
	// slog.Default().
	Logger *slog.Logger

	// OnDecodeError is called when a handler's decoder rejects an event.
	// The event is dropped either way.
	OnDecodeError func(eventType string, err error)
}

// Renderer creates and patches live nodes in a document.
type Renderer struct {
	doc    dom.Document
	config RendererConfig
}

// NewRenderer creates a new Renderer for doc.
func NewRenderer(doc dom.Document, config RendererConfig) *Renderer {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Renderer{doc: doc, config: config}
}

// Document returns the document the renderer creates nodes in.
func (r *Renderer) Document() dom.Document {
	return r.doc
}

// eventLayers returns the Mapped layers of node, outermost first. A Lazy
// between two Mapped nodes puts both layers on the same live node.
func eventLayers(node dom.Node) []*EventNode {
	layers, _ := node.Property(propEvents).([]*EventNode)
	return layers
}

// Render creates a live subtree for v. Handlers found in the tree deliver
// messages through events.
func (r *Renderer) Render(v *vdom.VNode, events *EventNode) dom.Node {
	switch v.Kind {
	case vdom.KindLazy:
		return r.Render(v.Memo.Force(), events)

	case vdom.KindText:
		return r.doc.CreateTextNode(v.Text)

	case vdom.KindMapped:
		taggers, child := vdom.FlattenTaggers(v)
		sub := &EventNode{Taggers: taggers, Parent: events}
		node := r.Render(child, sub)
		node.SetProperty(propEvents, append([]*EventNode{sub}, eventLayers(node)...))
		return node

	case vdom.KindCustom:
		node := v.Widget.Render(r.doc, v.State)
		r.applyFacts(node, events, &v.Facts)
		return node

	case vdom.KindElement, vdom.KindKeyedElement:
		var el dom.Element
		if v.Namespace != "" {
			el = r.doc.CreateElementNS(v.Namespace, v.Tag)
		} else {
			el = r.doc.CreateElement(v.Tag)
		}
		r.applyFacts(el, events, &v.Facts)
		for i := 0; i < v.ChildCount(); i++ {
			el.AppendChild(r.Render(v.ChildNode(i), events))
		}
		return el
	}

	panic(errors.New("E101").WithDetailf("cannot render kind %d", v.Kind))
}

// applyFacts writes a full fact set onto a freshly created node.
func (r *Renderer) applyFacts(node dom.Node, events *EventNode, facts *vdom.Facts) {
	if facts.Len() == 0 {
		return
	}

	for _, key := range sortedKeys(facts.Props) {
		setProp(node, key, facts.Props[key])
	}

	el, ok := node.(dom.Element)
	if !ok {
		return
	}
	for _, key := range sortedKeys(facts.Styles) {
		el.SetStyle(key, facts.Styles[key])
	}
	for _, key := range sortedKeys(facts.Attrs) {
		el.SetAttribute(key, facts.Attrs[key])
	}
	for _, key := range sortedKeys(facts.AttrsNS) {
		a := facts.AttrsNS[key]
		el.SetAttributeNS(a.Namespace, key, a.Value)
	}
	for _, key := range sortedKeys(facts.Events) {
		r.setHandler(el, events, key, facts.Events[key])
	}
}

// applyDelta writes a facts delta onto a live node.
func (r *Renderer) applyDelta(node dom.Node, events *EventNode, delta *vdom.FactsDelta) {
	for _, key := range sortedKeys(delta.Props) {
		setProp(node, key, delta.Props[key])
	}

	el, ok := node.(dom.Element)
	if !ok {
		return
	}
	for _, key := range sortedKeys(delta.Styles) {
		el.SetStyle(key, delta.Styles[key])
	}
	for _, key := range sortedKeys(delta.Attrs) {
		c := delta.Attrs[key]
		if c.Removed {
			el.RemoveAttribute(key)
		} else {
			el.SetAttribute(key, c.Value)
		}
	}
	for _, key := range sortedKeys(delta.AttrsNS) {
		c := delta.AttrsNS[key]
		if c.Removed {
			el.RemoveAttributeNS(c.Value.Namespace, key)
		} else {
			el.SetAttributeNS(c.Value.Namespace, key, c.Value.Value)
		}
	}
	for _, key := range sortedKeys(delta.Events) {
		c := delta.Events[key]
		if c.Removed {
			removeHandler(el, key)
		} else {
			r.setHandler(el, events, key, c.Value)
		}
	}
}

// setProp writes a property. "value" and "checked" are only written when
// the live value differs, so user edits are not clobbered needlessly.
func setProp(node dom.Node, key string, value any) {
	if (key == "value" || key == "checked") && vdom.SameRef(node.Property(key), value) {
		return
	}
	node.SetProperty(key, value)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
