package htmldom

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/vango-dev/vtree/pkg/dom"
)

// OuterHTML serializes n and its subtree. Attributes are written in sorted
// order so two trees with equal content serialize identically regardless
// of the order their attributes were set in.
func OuterHTML(n dom.Node) (string, error) {
	h := htmlNode(n)
	sortAttrs(h)

	var buf bytes.Buffer
	if h.Type == html.DocumentNode {
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", fmt.Errorf("render fragment: %w", err)
			}
		}
		return buf.String(), nil
	}
	if err := html.Render(&buf, h); err != nil {
		return "", fmt.Errorf("render node: %w", err)
	}
	return buf.String(), nil
}

// InnerHTML serializes the children of n.
func InnerHTML(n dom.Node) (string, error) {
	var b strings.Builder
	for _, c := range n.ChildNodes() {
		s, err := OuterHTML(c)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func sortAttrs(n *html.Node) {
	if n.Type == html.ElementNode {
		sort.SliceStable(n.Attr, func(i, j int) bool { return n.Attr[i].Key < n.Attr[j].Key })
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sortAttrs(c)
	}
}

// TextContent concatenates the character data of n's subtree.
func TextContent(n dom.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(h *html.Node) {
		if h.Type == html.TextNode {
			b.WriteString(h.Data)
		}
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(htmlNode(n))
	return b.String()
}

// Query returns the first element in root's subtree (root included)
// matching the CSS selector, or nil.
func (d *Document) Query(root dom.Node, selector string) (dom.Element, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("compile selector %q: %w", selector, err)
	}
	h := sel.MatchFirst(htmlNode(root))
	if h == nil {
		return nil, nil
	}
	el, _ := resolve(root, h).(dom.Element)
	return el, nil
}

// QueryAll returns every element in root's subtree matching the selector,
// in document order.
func (d *Document) QueryAll(root dom.Node, selector string) ([]dom.Element, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("compile selector %q: %w", selector, err)
	}
	var out []dom.Element
	for _, h := range sel.MatchAll(htmlNode(root)) {
		if el, ok := resolve(root, h).(dom.Element); ok {
			out = append(out, el)
		}
	}
	return out, nil
}
