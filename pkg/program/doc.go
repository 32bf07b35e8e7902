// Package program mounts an application on a live DOM root and runs the
// view/diff/patch cycle for it.
//
// An application is a Program: an initial model, an update function and a
// view function. Mount renders the first view in place of the root node;
// every message produced by an event handler (or passed to Dispatch) is
// run through Update, and the scheduler decides when the resulting model
// is drawn.
//
//	rt := program.Mount(doc, root, program.Program[Model]{
//	    Init:   Model{},
//	    Update: update,
//	    View:   view,
//	}, program.WithMetrics(prometheus.DefaultRegisterer))
//
// Each draw diffs the new view against the previous one, locates the
// patches in the live tree and applies them. Draws are counted and timed
// with Prometheus when WithMetrics is given, and traced with one span per
// cycle.
package program
