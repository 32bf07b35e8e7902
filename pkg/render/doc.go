// Package render turns view trees into live DOM nodes and applies patches
// produced by the vdom differ to them.
//
// The package has three parts:
//
//   - Render creates a live subtree for a view tree and wires its event
//     handlers to an EventNode chain.
//   - Locate binds every patch to the live node it targets by walking the
//     old view tree and the live tree together. It only reads.
//   - Apply performs the mutations and returns the (possibly replaced)
//     root.
//
// # Basic Usage
//
//	r := render.NewRenderer(doc, render.RendererConfig{})
//	root := render.NewEventRoot(func(msg vdom.Msg, sync bool) { ... })
//	live := r.Render(view, root)
//
//	next := app.View(model)
//	live = r.Patch(live, view, next, root)
//	view = next
//
// # Events
//
// Handlers are attached through a node's facts. When a native event fires
// the handler's decoder runs, the kind's stopPropagation and
// preventDefault flags are honored, and the decoded message is passed
// through the taggers of every enclosing Mapped node, innermost first,
// before reaching the send function at the root of the chain.
//
// A live listener always runs the handler most recently patched onto it,
// so swapping a handler for one of the same kind never touches the
// native listener.
package render
