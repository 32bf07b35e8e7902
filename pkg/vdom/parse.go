package vdom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// KeyAttr is the attribute ParseHTML reads child keys from.
const KeyAttr = "data-key"

// ParseHTML builds a view tree from an HTML fragment with a single root
// element. Whitespace-only text is dropped. An element whose element
// children all carry data-key (and that has no text children) becomes a
// keyed element.
func ParseHTML(r io.Reader) (*VNode, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body"}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var roots []*html.Node
	for _, n := range nodes {
		switch {
		case n.Type == html.ElementNode:
			roots = append(roots, n)
		case n.Type == html.TextNode && strings.TrimSpace(n.Data) != "":
			return nil, fmt.Errorf("parse html: text outside the root element")
		}
	}
	if len(roots) != 1 {
		return nil, fmt.Errorf("parse html: expected one root element, found %d", len(roots))
	}
	return fromHTML(roots[0]), nil
}

func fromHTML(n *html.Node) *VNode {
	if n.Type == html.TextNode {
		return Text(n.Data)
	}

	var args []any
	for _, a := range n.Attr {
		if a.Namespace != "" {
			args = append(args, AttrNS(namespaceURI(a.Namespace), a.Namespace+":"+a.Key, a.Val))
			continue
		}
		args = append(args, Attr(a.Key, a.Val))
	}

	keyed := isKeyedParent(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
			args = append(args, fromHTML(c))
		case html.ElementNode:
			child := fromHTML(c)
			if keyed {
				args = append(args, Key(attrValue(c, KeyAttr), child))
			} else {
				args = append(args, child)
			}
		}
	}

	return createElement(namespaceURI(n.Namespace), n.Data, args)
}

func isKeyedParent(n *html.Node) bool {
	elements := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return false
			}
		case html.ElementNode:
			if _, ok := lookupAttr(c, KeyAttr); !ok {
				return false
			}
			elements++
		}
	}
	return elements > 0
}

func attrValue(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// namespaceURI maps the short namespace names used by the HTML parser to
// their URIs.
func namespaceURI(short string) string {
	switch short {
	case "":
		return ""
	case "svg":
		return NamespaceSVG
	case "math":
		return NamespaceMath
	case "xlink":
		return NamespaceXLink
	default:
		return short
	}
}
