package vdom

import (
	"github.com/vango-dev/vtree/pkg/dom"
)

// Category identifies which table of a live node a Fact writes to.
type Category uint8

const (
	CategoryProp    Category = iota // DOM property (node[key] = value)
	CategoryStyle                   // Inline style declaration
	CategoryAttr                    // Plain attribute
	CategoryAttrNS                  // Namespaced attribute
	CategoryEvent                   // Event handler
)

// String returns the string representation of the Category.
func (c Category) String() string {
	switch c {
	case CategoryProp:
		return "prop"
	case CategoryStyle:
		return "style"
	case CategoryAttr:
		return "attr"
	case CategoryAttrNS:
		return "attrNS"
	case CategoryEvent:
		return "event"
	default:
		return "unknown"
	}
}

// Fact is a single attribute, property, style or handler.
type Fact struct {
	Category  Category
	Key       string
	Value     any     // CategoryProp
	Str       string  // CategoryStyle, CategoryAttr, CategoryAttrNS
	Namespace string  // CategoryAttrNS
	Handler   Handler // CategoryEvent
}

// IsEmpty returns true if this is an empty/nil fact.
func (f Fact) IsEmpty() bool {
	return f.Key == ""
}

// NSAttr is the value of a namespaced attribute.
type NSAttr struct {
	Namespace string
	Value     string
}

// Facts groups a node's facts by category. Later facts with the same key
// replace earlier ones.
type Facts struct {
	Props   map[string]any
	Styles  map[string]string
	Attrs   map[string]string
	AttrsNS map[string]NSAttr
	Events  map[string]Handler
}

// Len returns the total number of facts.
func (f *Facts) Len() int {
	return len(f.Props) + len(f.Styles) + len(f.Attrs) + len(f.AttrsNS) + len(f.Events)
}

func (f *Facts) add(fact Fact) {
	if fact.IsEmpty() {
		return
	}
	switch fact.Category {
	case CategoryProp:
		if f.Props == nil {
			f.Props = make(map[string]any)
		}
		f.Props[fact.Key] = fact.Value
	case CategoryStyle:
		if f.Styles == nil {
			f.Styles = make(map[string]string)
		}
		f.Styles[fact.Key] = fact.Str
	case CategoryAttr:
		if f.Attrs == nil {
			f.Attrs = make(map[string]string)
		}
		f.Attrs[fact.Key] = fact.Str
	case CategoryAttrNS:
		if f.AttrsNS == nil {
			f.AttrsNS = make(map[string]NSAttr)
		}
		f.AttrsNS[fact.Key] = NSAttr{Namespace: fact.Namespace, Value: fact.Str}
	case CategoryEvent:
		if f.Events == nil {
			f.Events = make(map[string]Handler)
		}
		f.Events[fact.Key] = fact.Handler
	}
}

// Attr creates a plain attribute.
func Attr(key, value string) Fact {
	return Fact{Category: CategoryAttr, Key: key, Str: value}
}

// AttrNS creates a namespaced attribute.
func AttrNS(namespace, key, value string) Fact {
	return Fact{Category: CategoryAttrNS, Key: key, Namespace: namespace, Str: value}
}

// Prop creates a DOM property.
func Prop(key string, value any) Fact {
	return Fact{Category: CategoryProp, Key: key, Value: value}
}

// Style creates an inline style declaration.
func Style(key, value string) Fact {
	return Fact{Category: CategoryStyle, Key: key, Str: value}
}

// HandlerKind describes which flags a handler's decoder may set. Two
// handlers of the same kind can be swapped on a live listener in place.
type HandlerKind uint8

const (
	HandlerNormal             HandlerKind = iota // Message only
	HandlerMayStopPropagation                    // Message + stopPropagation
	HandlerMayPreventDefault                     // Message + preventDefault
	HandlerCustom                                // Message + both flags
)

// String returns the string representation of the HandlerKind.
func (k HandlerKind) String() string {
	switch k {
	case HandlerNormal:
		return "Normal"
	case HandlerMayStopPropagation:
		return "MayStopPropagation"
	case HandlerMayPreventDefault:
		return "MayPreventDefault"
	case HandlerCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// Decoded is the result of decoding a native event.
type Decoded struct {
	Msg             Msg
	StopPropagation bool
	PreventDefault  bool
}

// Decoder turns a native event into a message. Decoders are compared by
// pointer identity when facts are diffed, so create them once where
// possible.
type Decoder struct {
	decode func(dom.Event) (Decoded, error)

	// constant decoders (Succeed) compare by message.
	constant bool
	msg      Msg
}

// NewDecoder wraps fn in a Decoder.
func NewDecoder(fn func(dom.Event) (Decoded, error)) *Decoder {
	return &Decoder{decode: fn}
}

// Decode runs the decoder.
func (d *Decoder) Decode(ev dom.Event) (Decoded, error) {
	return d.decode(ev)
}

// Handler is an event handler attached through the facts of a node.
type Handler struct {
	Kind    HandlerKind
	Decoder *Decoder
}

// Equal reports whether two handlers are interchangeable: same kind and
// the same decoder.
func (h Handler) Equal(other Handler) bool {
	return h.Kind == other.Kind && h.Decoder.equal(other.Decoder)
}

func (d *Decoder) equal(other *Decoder) bool {
	if d == other {
		return true
	}
	if d == nil || other == nil {
		return false
	}
	return d.constant && other.constant && SameRef(d.msg, other.msg)
}

// Resolve applies the kind's permissions to a decoded result: flags a
// kind may not set are cleared.
func (h Handler) Resolve(d Decoded) Decoded {
	switch h.Kind {
	case HandlerNormal:
		d.StopPropagation, d.PreventDefault = false, false
	case HandlerMayStopPropagation:
		d.PreventDefault = false
	case HandlerMayPreventDefault:
		d.StopPropagation = false
	}
	return d
}
