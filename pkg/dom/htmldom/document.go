// Package htmldom is an in-memory dom.Document backed by
// golang.org/x/net/html nodes.
//
// The tree structure is kept in *html.Node so a live tree can be
// serialized with html.Render and queried with CSS selectors. Styles,
// properties and listeners live on wrapper nodes. Each wrapper indexes the
// wrappers of its own children, so a detached subtree is reachable only
// through whoever still holds its root.
package htmldom

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/vtree/pkg/dom"
)

// Stats counts mutation calls made against a Document.
type Stats struct {
	Created          int
	Inserted         int
	Removed          int
	Replaced         int
	AttrWrites       int
	StyleWrites      int
	PropWrites       int
	TextWrites       int
	ListenersAdded   int
	ListenersRemoved int
}

// Mutations returns the total number of tree, attribute, style, property,
// text and listener writes (node creation is not counted).
func (s Stats) Mutations() int {
	return s.Inserted + s.Removed + s.Replaced + s.AttrWrites + s.StyleWrites +
		s.PropWrites + s.TextWrites + s.ListenersAdded + s.ListenersRemoved
}

// Document is an in-memory DOM document.
type Document struct {
	stats Stats
}

var _ dom.Document = (*Document)(nil)

// New creates an empty Document.
func New() *Document {
	return &Document{}
}

// Stats returns the mutation counters.
func (d *Document) Stats() Stats { return d.stats }

// ResetStats zeroes the mutation counters.
func (d *Document) ResetStats() { d.stats = Stats{} }

// CreateElement implements dom.Document.
func (d *Document) CreateElement(tag string) dom.Element {
	return d.CreateElementNS("", tag)
}

// CreateElementNS implements dom.Document.
func (d *Document) CreateElementNS(namespace, tag string) dom.Element {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	el := &Element{
		base:      base{doc: d, n: n},
		namespace: namespace,
	}
	el.self = el
	d.stats.Created++
	return el
}

// CreateTextNode implements dom.Document.
func (d *Document) CreateTextNode(data string) dom.Text {
	n := &html.Node{Type: html.TextNode, Data: data}
	t := &Text{base: base{doc: d, n: n}}
	t.self = t
	d.stats.Created++
	return t
}

// CreateDocumentFragment implements dom.Document.
func (d *Document) CreateDocumentFragment() dom.Node {
	n := &html.Node{Type: html.DocumentNode}
	f := &Fragment{base: base{doc: d, n: n}}
	f.self = f
	d.stats.Created++
	return f
}

// Root creates a detached <body> element that can serve as a mount point.
func (d *Document) Root() dom.Element {
	return d.CreateElement("body")
}

// baseOf returns the shared state of a node created by this package.
func baseOf(n dom.Node) *base {
	switch v := n.(type) {
	case *Element:
		return &v.base
	case *Text:
		return &v.base
	case *Fragment:
		return &v.base
	default:
		panic("htmldom: foreign node")
	}
}

// htmlNode returns the backing *html.Node of a node created by this package.
func htmlNode(n dom.Node) *html.Node {
	return baseOf(n).n
}

// resolve finds the wrapper of h, a node inside root's subtree.
func resolve(root dom.Node, h *html.Node) dom.Node {
	top := htmlNode(root)
	var path []*html.Node
	for ; h != top; h = h.Parent {
		if h == nil {
			return nil
		}
		path = append(path, h)
	}
	n := root
	for i := len(path) - 1; i >= 0 && n != nil; i-- {
		n = baseOf(n).kids[path[i]]
	}
	return n
}
