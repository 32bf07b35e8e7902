// Package dom defines the platform boundary the reconciliation engine
// mutates. It mirrors the subset of the W3C DOM the engine needs:
// node creation, child list surgery, attributes, styles, properties and
// event listeners.
//
// Implementations live elsewhere; htmldom provides an in-memory document
// backed by golang.org/x/net/html.
package dom

// NodeType is the type of a live DOM node.
type NodeType uint8

const (
	ElementNode  NodeType = iota // <div>, <svg>, etc.
	TextNode                     // Character data
	FragmentNode                 // Document fragment used for batched inserts
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case FragmentNode:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// Document creates live nodes.
type Document interface {
	CreateElement(tag string) Element
	CreateElementNS(namespace, tag string) Element
	CreateTextNode(data string) Text
	CreateDocumentFragment() Node
}

// Node is a live DOM node.
//
// InsertBefore with a nil reference appends. Inserting a fragment moves
// all of its children. Inserting a node that already has a parent moves it.
type Node interface {
	Type() NodeType
	Parent() Node
	ChildNodes() []Node
	ChildAt(i int) Node
	Len() int

	AppendChild(child Node)
	InsertBefore(child, ref Node)
	RemoveChild(child Node)
	ReplaceChild(newChild, oldChild Node)

	// Property and SetProperty expose arbitrary per-node properties
	// (the DOM "expando" slots). A nil value deletes the property.
	Property(name string) any
	SetProperty(name string, value any)
}

// Text is a character data node.
type Text interface {
	Node
	Data() string
	SetData(data string)
}

// Element is an element node.
type Element interface {
	Node
	Tag() string
	Namespace() string

	Attribute(name string) (string, bool)
	SetAttribute(name, value string)
	RemoveAttribute(name string)
	SetAttributeNS(namespace, name, value string)
	RemoveAttributeNS(namespace, name string)

	Style(name string) string
	// SetStyle sets an inline style declaration. An empty value removes it.
	SetStyle(name, value string)

	AddEventListener(eventType string, l Listener)
	RemoveEventListener(eventType string, l Listener)
}

// Event is a native event delivered to listeners.
type Event interface {
	Type() string
	Target() Node
	// Get returns a payload field such as "value" or "key".
	Get(field string) (any, bool)
	StopPropagation()
	PreventDefault()
}

// Listener receives native events. Listeners are compared by identity
// when removed, so implementations should be pointers.
type Listener interface {
	HandleEvent(ev Event)
}

// ListenerFunc adapts a function to a Listener. Use a pointer to it
// (&fn) when the listener must later be removed.
type ListenerFunc func(ev Event)

// HandleEvent implements Listener.
func (f *ListenerFunc) HandleEvent(ev Event) { (*f)(ev) }
