package htmldom

import "github.com/vango-dev/vtree/pkg/dom"

// Event is a synthetic event carrying a flat payload.
type Event struct {
	typ       string
	target    dom.Node
	fields    map[string]any
	stopped   bool
	prevented bool
}

var _ dom.Event = (*Event)(nil)

// NewEvent creates an event of the given type. Fields are returned by Get.
func NewEvent(eventType string, fields map[string]any) *Event {
	return &Event{typ: eventType, fields: fields}
}

// Type implements dom.Event.
func (e *Event) Type() string { return e.typ }

// Target implements dom.Event.
func (e *Event) Target() dom.Node { return e.target }

// Get implements dom.Event.
func (e *Event) Get(field string) (any, bool) {
	v, ok := e.fields[field]
	return v, ok
}

// StopPropagation implements dom.Event.
func (e *Event) StopPropagation() { e.stopped = true }

// PreventDefault implements dom.Event.
func (e *Event) PreventDefault() { e.prevented = true }

// PropagationStopped reports whether a listener stopped propagation.
func (e *Event) PropagationStopped() bool { return e.stopped }

// DefaultPrevented reports whether a listener prevented the default action.
func (e *Event) DefaultPrevented() bool { return e.prevented }

// Dispatch delivers ev to target and then bubbles it through the target's
// ancestors until a listener stops propagation.
func Dispatch(target dom.Node, ev *Event) {
	ev.target = target
	for n := target; n != nil; n = n.Parent() {
		el, ok := n.(*Element)
		if ok {
			// Snapshot so listeners can add/remove during dispatch.
			listeners := append([]dom.Listener(nil), el.listeners[ev.typ]...)
			for _, l := range listeners {
				l.HandleEvent(ev)
			}
		}
		if ev.stopped {
			return
		}
	}
}
