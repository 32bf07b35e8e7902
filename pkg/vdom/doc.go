// Package vdom provides the view tree model and the differ.
//
// A view tree is an immutable description of what the UI should look
// like. The differ compares the previous tree with the next one and
// produces patches addressed by the pre-order traversal index of their
// target in the previous tree; pkg/render locates and applies them.
//
// # Node Kinds
//
//   - Text: a text node
//   - Element: tag, namespace, facts and ordered children
//   - KeyedElement: like Element, with each child carrying a stable key
//   - Custom: rendered and diffed by a caller-supplied Widget
//   - Mapped: rewrites messages bubbling out of its child
//   - Lazy: a memoized subtree rebuilt only when its dependencies change
//
// Every node records its descendant count at construction, which lets the
// locator skip whole subtrees that carry no patch.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1("Title"),
//	    P(Text("Content")),
//	)
//
// Arguments can be facts (Attr, Prop, Style, handlers), nodes, strings
// (text children), slices of those, or keyed children. A single keyed
// child makes the element keyed:
//
//	Ul(KeyedRange(users, userKey, func(u User, _ int) *VNode {
//	    return Li(u.Name)
//	}))
//
// # Events
//
// Handlers pair a kind with a Decoder. The kind controls whether the
// decoded result may stop propagation or prevent the default action:
//
//	Button(OnClick(Increment), "+")
//	Input(OnInput(func(s string) Msg { return SetName(s) }))
//
// # Diffing
//
// Diff never holds live nodes. Two nodes of different kinds (other than
// Element and KeyedElement, which are interchangeable) or with different
// tags are redrawn. Keyed children are reconciled with a one-element
// lookahead that recognizes swaps, single insertions and single removals;
// longer-range moves fall back to removals and trailing inserts paired by
// key.
package vdom
