package vdom

import (
	"fmt"
	"strconv"
)

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element. Arguments can be: nil, Fact, []Fact, *VNode,
// []*VNode, string (text child), KeyedChild, []KeyedChild.
//
// If any KeyedChild is given the result is a keyed element; plain children
// mixed in are keyed by their position.
func El(tag string, args ...any) *VNode {
	return createElement("", tag, args)
}

// ElNS creates an element in the given namespace.
func ElNS(namespace, tag string, args ...any) *VNode {
	return createElement(namespace, tag, args)
}

// Keyed creates a keyed element even when it has no children yet.
func Keyed(tag string, args ...any) *VNode {
	node := createElement("", tag, args)
	if node.Kind == KindElement {
		node.Kind = KindKeyedElement
		node.Keyed = positionalKeys(node.Children, nil)
		node.Children = nil
	}
	return node
}

// createElement creates a new VNode with the given tag and arguments.
func createElement(namespace, tag string, args []any) *VNode {
	node := &VNode{
		Kind:      KindElement,
		Tag:       tag,
		Namespace: namespace,
	}

	var keyed []KeyedChild
	isKeyed := false
	addChild := func(child *VNode) {
		if child == nil {
			return
		}
		if isKeyed {
			keyed = append(keyed, KeyedChild{Key: "#" + strconv.Itoa(len(keyed)), Node: child})
			return
		}
		node.Children = append(node.Children, child)
	}
	addKeyed := func(kc KeyedChild) {
		if kc.Node == nil {
			return
		}
		if !isKeyed {
			isKeyed = true
			keyed = positionalKeys(node.Children, keyed)
			node.Children = nil
		}
		keyed = append(keyed, kc)
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue
		case Fact:
			node.Facts.add(v)
		case []Fact:
			for _, f := range v {
				node.Facts.add(f)
			}
		case *VNode:
			addChild(v)
		case []*VNode:
			for _, child := range v {
				addChild(child)
			}
		case string:
			addChild(Text(v))
		case KeyedChild:
			addKeyed(v)
		case []KeyedChild:
			for _, kc := range v {
				addKeyed(kc)
			}
		default:
			panic(fmt.Sprintf("vdom: unsupported element argument of type %T", arg))
		}
	}

	if isKeyed {
		node.Kind = KindKeyedElement
		node.Keyed = keyed
		for _, kc := range keyed {
			node.Descendants += 1 + kc.Node.Descendants
		}
		return node
	}
	for _, child := range node.Children {
		node.Descendants += 1 + child.Descendants
	}
	return node
}

func positionalKeys(children []*VNode, into []KeyedChild) []KeyedChild {
	for _, child := range children {
		into = append(into, KeyedChild{Key: "#" + strconv.Itoa(len(into)), Node: child})
	}
	return into
}

// Document structure

// Div creates a <div> element.
func Div(args ...any) *VNode { return El("div", args...) }

// Span creates a <span> element.
func Span(args ...any) *VNode { return El("span", args...) }

// P creates a <p> element.
func P(args ...any) *VNode { return El("p", args...) }

// Section creates a <section> element.
func Section(args ...any) *VNode { return El("section", args...) }

// Header creates a <header> element.
func Header(args ...any) *VNode { return El("header", args...) }

// Footer creates a <footer> element.
func Footer(args ...any) *VNode { return El("footer", args...) }

// Nav creates a <nav> element.
func Nav(args ...any) *VNode { return El("nav", args...) }

// H1 creates an <h1> element.
func H1(args ...any) *VNode { return El("h1", args...) }

// H2 creates an <h2> element.
func H2(args ...any) *VNode { return El("h2", args...) }

// A creates an <a> element.
func A(args ...any) *VNode { return El("a", args...) }

// Lists

// Ul creates a <ul> element.
func Ul(args ...any) *VNode { return El("ul", args...) }

// Ol creates an <ol> element.
func Ol(args ...any) *VNode { return El("ol", args...) }

// Li creates an <li> element.
func Li(args ...any) *VNode { return El("li", args...) }

// Tables

// Table creates a <table> element.
func Table(args ...any) *VNode { return El("table", args...) }

// Tbody creates a <tbody> element.
func Tbody(args ...any) *VNode { return El("tbody", args...) }

// Tr creates a <tr> element.
func Tr(args ...any) *VNode { return El("tr", args...) }

// Td creates a <td> element.
func Td(args ...any) *VNode { return El("td", args...) }

// Th creates a <th> element.
func Th(args ...any) *VNode { return El("th", args...) }

// Forms

// Form creates a <form> element.
func Form(args ...any) *VNode { return El("form", args...) }

// Button creates a <button> element.
func Button(args ...any) *VNode { return El("button", args...) }

// Input creates an <input> element.
func Input(args ...any) *VNode { return El("input", args...) }

// Label creates a <label> element.
func Label(args ...any) *VNode { return El("label", args...) }

// Select creates a <select> element.
func Select(args ...any) *VNode { return El("select", args...) }

// Option creates an <option> element.
func Option(args ...any) *VNode { return El("option", args...) }

// SVG

// Svg creates an <svg> element in the SVG namespace.
func Svg(args ...any) *VNode { return ElNS(NamespaceSVG, "svg", args...) }

// Circle creates an SVG <circle> element.
func Circle(args ...any) *VNode { return ElNS(NamespaceSVG, "circle", args...) }

// Use creates an SVG <use> element.
func Use(args ...any) *VNode { return ElNS(NamespaceSVG, "use", args...) }
