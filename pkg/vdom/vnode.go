package vdom

import (
	"github.com/vango-dev/vtree/pkg/dom"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindText         VKind = iota // Plain text node
	KindElement                   // <div>, <button>, etc. with ordered children
	KindKeyedElement              // Element whose children carry stable keys
	KindCustom                    // Rendered and diffed by a Widget
	KindMapped                    // Rewrites messages bubbling out of its child
	KindLazy                      // Memoized subtree
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindKeyedElement:
		return "KeyedElement"
	case KindCustom:
		return "Custom"
	case KindMapped:
		return "Mapped"
	case KindLazy:
		return "Lazy"
	default:
		return "Unknown"
	}
}

// Msg is an application message produced by event handlers.
type Msg = any

// VNode is the virtual DOM node. Exactly the fields of the active Kind are
// meaningful. Nodes are immutable once built, except for the cache inside
// a Lazy node's Memo.
type VNode struct {
	Kind      VKind
	Tag       string       // Element tag name (e.g., "div")
	Namespace string       // Element namespace; "" for HTML
	Facts     Facts        // Attributes, properties, styles and handlers
	Children  []*VNode     // KindElement children
	Keyed     []KeyedChild // KindKeyedElement children
	Text      string       // KindText content

	Widget Widget // KindCustom renderer/differ
	State  any    // KindCustom widget state

	Tagger *Tagger // KindMapped transform
	Child  *VNode  // KindMapped wrapped node

	Memo *Memo // KindLazy cache

	// Descendants is the number of nodes below this one in the traversal
	// index space. It is fixed at construction.
	Descendants int
}

// KeyedChild is a child of a keyed element.
type KeyedChild struct {
	Key  string
	Node *VNode
}

// Key pairs a node with a reconciliation key.
func Key(key string, node *VNode) KeyedChild {
	return KeyedChild{Key: key, Node: node}
}

// Widget renders and diffs a custom node. Two custom nodes are only
// diffed against each other when their widgets are reference-equal;
// otherwise the subtree is redrawn.
type Widget interface {
	// Render creates the live node for state.
	Render(doc dom.Document, state any) dom.Node
	// Diff returns a payload describing how to go from oldState to
	// newState, or nil when nothing changed. A Callback payload is applied
	// directly to the live node.
	Diff(oldState, newState any) any
	// Patch applies a non-Callback payload returned by Diff.
	Patch(node dom.Node, payload any) dom.Node
}

// Callback is an imperative patch applied to a live node, such as focusing
// it. It returns the node that replaces it (usually the same node).
type Callback func(node dom.Node) dom.Node

// Tagger transforms messages that bubble out of a Mapped subtree.
// Taggers are compared by pointer identity, so create them once.
type Tagger struct {
	fn func(Msg) Msg
}

// NewTagger wraps fn in a Tagger.
func NewTagger(fn func(Msg) Msg) *Tagger {
	return &Tagger{fn: fn}
}

// Apply transforms msg.
func (t *Tagger) Apply(msg Msg) Msg {
	return t.fn(msg)
}

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Map wraps child so that messages it produces are passed through tagger.
func Map(tagger *Tagger, child *VNode) *VNode {
	return &VNode{
		Kind:        KindMapped,
		Tagger:      tagger,
		Child:       child,
		Descendants: 1 + child.Descendants,
	}
}

// Custom creates a node rendered and diffed by widget.
func Custom(widget Widget, state any, facts ...Fact) *VNode {
	node := &VNode{Kind: KindCustom, Widget: widget, State: state}
	for _, f := range facts {
		node.Facts.add(f)
	}
	return node
}

// KeyOf returns the key of child i of a keyed element.
func (v *VNode) KeyOf(i int) string {
	return v.Keyed[i].Key
}

// ChildCount returns the number of immediate children of an element or
// keyed element.
func (v *VNode) ChildCount() int {
	switch v.Kind {
	case KindElement:
		return len(v.Children)
	case KindKeyedElement:
		return len(v.Keyed)
	default:
		return 0
	}
}

// ChildNode returns immediate child i of an element or keyed element.
func (v *VNode) ChildNode(i int) *VNode {
	if v.Kind == KindKeyedElement {
		return v.Keyed[i].Node
	}
	return v.Children[i]
}

// dekey returns a plain element with the same tag, facts and children as
// the keyed element v.
func dekey(v *VNode) *VNode {
	children := make([]*VNode, len(v.Keyed))
	for i, kc := range v.Keyed {
		children[i] = kc.Node
	}
	return &VNode{
		Kind:        KindElement,
		Tag:         v.Tag,
		Namespace:   v.Namespace,
		Facts:       v.Facts,
		Children:    children,
		Descendants: v.Descendants,
	}
}
