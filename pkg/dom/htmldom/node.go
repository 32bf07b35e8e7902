package htmldom

import (
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/vango-dev/vtree/pkg/dom"
)

// base implements the dom.Node methods shared by every node type.
type base struct {
	doc    *Document
	n      *html.Node
	self   dom.Node
	parent dom.Node
	kids   map[*html.Node]dom.Node
	props  map[string]any
}

func (b *base) adopt(child *base) {
	if b.kids == nil {
		b.kids = make(map[*html.Node]dom.Node)
	}
	b.kids[child.n] = child.self
	child.parent = b.self
}

func (b *base) release(child *base) {
	delete(b.kids, child.n)
	child.parent = nil
}

// detach unlinks child from its current parent, if any.
func detach(child *base) {
	if child.parent == nil {
		return
	}
	baseOf(child.parent).release(child)
	child.n.Parent.RemoveChild(child.n)
}

func (b *base) Parent() dom.Node {
	return b.parent
}

func (b *base) ChildNodes() []dom.Node {
	var out []dom.Node
	for c := b.n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, b.kids[c])
	}
	return out
}

func (b *base) ChildAt(i int) dom.Node {
	if i < 0 {
		return nil
	}
	for c := b.n.FirstChild; c != nil; c = c.NextSibling {
		if i == 0 {
			return b.kids[c]
		}
		i--
	}
	return nil
}

func (b *base) Len() int {
	return len(b.kids)
}

func (b *base) AppendChild(child dom.Node) {
	b.InsertBefore(child, nil)
}

func (b *base) InsertBefore(child, ref dom.Node) {
	if child == nil {
		return
	}
	if ref != nil && child == ref {
		return
	}
	cb := baseOf(child)
	var r *html.Node
	if ref != nil {
		r = htmlNode(ref)
		if r.Parent != b.n {
			panic("htmldom: reference node is not a child of this node")
		}
	}

	if cb.n.Type == html.DocumentNode {
		for cb.n.FirstChild != nil {
			kid := baseOf(cb.kids[cb.n.FirstChild])
			detach(kid)
			b.n.InsertBefore(kid.n, r)
			b.adopt(kid)
			b.doc.stats.Inserted++
		}
		return
	}

	detach(cb)
	b.n.InsertBefore(cb.n, r)
	b.adopt(cb)
	b.doc.stats.Inserted++
}

func (b *base) RemoveChild(child dom.Node) {
	cb := baseOf(child)
	if cb.n.Parent != b.n {
		panic("htmldom: node is not a child of this node")
	}
	b.release(cb)
	b.n.RemoveChild(cb.n)
	b.doc.stats.Removed++
}

func (b *base) ReplaceChild(newChild, oldChild dom.Node) {
	if newChild == oldChild {
		return
	}
	ob := baseOf(oldChild)
	if ob.n.Parent != b.n {
		panic("htmldom: node is not a child of this node")
	}
	nb := baseOf(newChild)
	detach(nb)
	b.n.InsertBefore(nb.n, ob.n)
	b.adopt(nb)
	b.release(ob)
	b.n.RemoveChild(ob.n)
	b.doc.stats.Replaced++
}

func (b *base) Property(name string) any {
	return b.props[name]
}

func (b *base) SetProperty(name string, value any) {
	b.doc.stats.PropWrites++
	if value == nil {
		delete(b.props, name)
		return
	}
	if b.props == nil {
		b.props = make(map[string]any)
	}
	b.props[name] = value
}

// Text is a character data node.
type Text struct {
	base
}

var _ dom.Text = (*Text)(nil)

// Type implements dom.Node.
func (t *Text) Type() dom.NodeType { return dom.TextNode }

// Data implements dom.Text.
func (t *Text) Data() string { return t.n.Data }

// SetData implements dom.Text.
func (t *Text) SetData(data string) {
	t.n.Data = data
	t.doc.stats.TextWrites++
}

// Fragment is a document fragment.
type Fragment struct {
	base
}

// Type implements dom.Node.
func (f *Fragment) Type() dom.NodeType { return dom.FragmentNode }

type styleDecl struct {
	name  string
	value string
}

// Element is an element node.
type Element struct {
	base
	namespace string
	attrNS    map[string]string // attribute name -> namespace
	styles    []styleDecl
	listeners map[string][]dom.Listener
}

var _ dom.Element = (*Element)(nil)

// Type implements dom.Node.
func (e *Element) Type() dom.NodeType { return dom.ElementNode }

// Tag implements dom.Element.
func (e *Element) Tag() string { return e.n.Data }

// Namespace implements dom.Element.
func (e *Element) Namespace() string { return e.namespace }

// Attribute implements dom.Element.
func (e *Element) Attribute(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// AttributeNS returns a namespaced attribute.
func (e *Element) AttributeNS(namespace, name string) (string, bool) {
	if e.attrNS[name] != namespace {
		return "", false
	}
	return e.Attribute(name)
}

// Attributes returns all attributes sorted by name.
func (e *Element) Attributes() map[string]string {
	out := make(map[string]string, len(e.n.Attr))
	for _, a := range e.n.Attr {
		out[a.Key] = a.Val
	}
	return out
}

// SetAttribute implements dom.Element.
func (e *Element) SetAttribute(name, value string) {
	e.doc.stats.AttrWrites++
	e.setAttr(name, value)
}

func (e *Element) setAttr(name, value string) {
	for i := range e.n.Attr {
		if e.n.Attr[i].Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttribute implements dom.Element.
func (e *Element) RemoveAttribute(name string) {
	e.doc.stats.AttrWrites++
	e.removeAttr(name)
}

func (e *Element) removeAttr(name string) {
	for i := range e.n.Attr {
		if e.n.Attr[i].Key == name {
			e.n.Attr = append(e.n.Attr[:i], e.n.Attr[i+1:]...)
			return
		}
	}
}

// SetAttributeNS implements dom.Element.
func (e *Element) SetAttributeNS(namespace, name, value string) {
	e.doc.stats.AttrWrites++
	if e.attrNS == nil {
		e.attrNS = make(map[string]string)
	}
	e.attrNS[name] = namespace
	e.setAttr(name, value)
}

// RemoveAttributeNS implements dom.Element.
func (e *Element) RemoveAttributeNS(namespace, name string) {
	e.doc.stats.AttrWrites++
	if e.attrNS[name] != namespace {
		return
	}
	delete(e.attrNS, name)
	e.removeAttr(name)
}

// Style implements dom.Element.
func (e *Element) Style(name string) string {
	for _, s := range e.styles {
		if s.name == name {
			return s.value
		}
	}
	return ""
}

// SetStyle implements dom.Element. The serialized declarations are
// reflected into the style attribute.
func (e *Element) SetStyle(name, value string) {
	e.doc.stats.StyleWrites++
	idx := -1
	for i, s := range e.styles {
		if s.name == name {
			idx = i
			break
		}
	}
	switch {
	case value == "" && idx >= 0:
		e.styles = append(e.styles[:idx], e.styles[idx+1:]...)
	case value == "":
		return
	case idx >= 0:
		e.styles[idx].value = value
	default:
		e.styles = append(e.styles, styleDecl{name: name, value: value})
	}

	if len(e.styles) == 0 {
		e.removeAttr("style")
		return
	}
	decls := make([]string, len(e.styles))
	for i, s := range e.styles {
		decls[i] = s.name + ": " + s.value
	}
	sort.Strings(decls)
	e.setAttr("style", strings.Join(decls, "; ")+";")
}

// AddEventListener implements dom.Element. Adding the same listener twice
// for one event type has no effect.
func (e *Element) AddEventListener(eventType string, l dom.Listener) {
	for _, existing := range e.listeners[eventType] {
		if existing == l {
			return
		}
	}
	if e.listeners == nil {
		e.listeners = make(map[string][]dom.Listener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], l)
	e.doc.stats.ListenersAdded++
}

// RemoveEventListener implements dom.Element.
func (e *Element) RemoveEventListener(eventType string, l dom.Listener) {
	list := e.listeners[eventType]
	for i, existing := range list {
		if existing == l {
			e.listeners[eventType] = append(list[:i], list[i+1:]...)
			e.doc.stats.ListenersRemoved++
			return
		}
	}
}

// Listeners returns the number of listeners registered for eventType.
func (e *Element) Listeners(eventType string) int {
	return len(e.listeners[eventType])
}
