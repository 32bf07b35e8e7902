package render

import (
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// SendFunc delivers a message to the application. sync is true when the
// handler stopped propagation, in which case the view should be updated
// before the event returns.
type SendFunc func(msg vdom.Msg, sync bool)

// EventNode is one link of the chain a message travels from a handler to
// the application. Each Mapped subtree gets a node holding its taggers;
// the root node holds the send function.
type EventNode struct {
	// Taggers of a Mapped subtree, outermost first. Patched in place when
	// a Mapped node's taggers change.
	Taggers []*vdom.Tagger
	Parent  *EventNode

	send SendFunc
}

// NewEventRoot creates the root of an event chain.
func NewEventRoot(send SendFunc) *EventNode {
	return &EventNode{send: send}
}

// dispatch runs msg through the taggers of every node up to the root,
// innermost first, and sends the result.
func (n *EventNode) dispatch(msg vdom.Msg, sync bool) {
	for n.send == nil {
		for i := len(n.Taggers) - 1; i >= 0; i-- {
			msg = n.Taggers[i].Apply(msg)
		}
		n = n.Parent
	}
	n.send(msg, sync)
}

// listener is the native listener attached for one event type on one
// element. It always runs its current handler, so a handler of the same
// kind can be swapped without touching the native listener.
type listener struct {
	r         *Renderer
	eventType string
	handler   vdom.Handler
	events    *EventNode
}

// HandleEvent implements dom.Listener.
func (l *listener) HandleEvent(ev dom.Event) {
	decoded, err := l.handler.Decoder.Decode(ev)
	if err != nil {
		l.r.config.Logger.Debug("event dropped",
			"event", l.eventType,
			"error", err)
		if l.r.config.OnDecodeError != nil {
			l.r.config.OnDecodeError(l.eventType, err)
		}
		return
	}

	decoded = l.handler.Resolve(decoded)
	if decoded.StopPropagation {
		ev.StopPropagation()
	}
	if decoded.PreventDefault {
		ev.PreventDefault()
	}
	l.events.dispatch(decoded.Msg, decoded.StopPropagation)
}

func handlers(el dom.Element) map[string]*listener {
	m, _ := el.Property(propHandlers).(map[string]*listener)
	return m
}

// setHandler attaches handler for eventType. An existing listener whose
// handler has the same kind is updated in place.
func (r *Renderer) setHandler(el dom.Element, events *EventNode, eventType string, handler vdom.Handler) {
	all := handlers(el)
	if all == nil {
		all = make(map[string]*listener)
		el.SetProperty(propHandlers, all)
	}

	if old, ok := all[eventType]; ok {
		if old.handler.Kind == handler.Kind {
			old.handler = handler
			return
		}
		el.RemoveEventListener(eventType, old)
	}

	l := &listener{r: r, eventType: eventType, handler: handler, events: events}
	el.AddEventListener(eventType, l)
	all[eventType] = l
}

func removeHandler(el dom.Element, eventType string) {
	all := handlers(el)
	if l, ok := all[eventType]; ok {
		el.RemoveEventListener(eventType, l)
		delete(all, eventType)
	}
}
