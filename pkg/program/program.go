package program

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/scheduler"
	"github.com/vango-dev/vtree/pkg/vdom"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Program describes an application.
type Program[M any] struct {
	// Init is the initial model.
	Init M

	// Update returns the model that results from handling msg.
	Update func(model M, msg vdom.Msg) M

	// View builds the view tree of a model. It must not mutate the model.
	View func(model M) *vdom.VNode
}

// Runtime is a program mounted on a live root.
type Runtime[M any] struct {
	prog     Program[M]
	cfg      config
	renderer *render.Renderer
	animator *scheduler.Animator[M]
	events   *render.EventNode
	metrics  *metrics

	updateMu sync.Mutex // guards model, queue and running
	model    M
	queue    []queued
	running  bool

	mu   sync.Mutex // guards root and view
	root dom.Node
	view *vdom.VNode
}

// Mount renders prog's initial view, puts it in place of root and starts
// handling events. The returned runtime owns the live subtree.
func Mount[M any](doc dom.Document, root dom.Node, prog Program[M], opts ...Option) *Runtime[M] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	rt := &Runtime[M]{
		prog:  prog,
		cfg:   cfg,
		model: prog.Init,
	}
	if cfg.registry != nil {
		rt.metrics = newMetrics(cfg.registry, cfg.metricLabels)
	}

	rt.renderer = render.NewRenderer(doc, render.RendererConfig{
		Logger:        cfg.logger,
		OnDecodeError: rt.onDecodeError,
	})
	rt.events = render.NewEventRoot(rt.send)

	var schedOpts []scheduler.Option
	if rt.metrics != nil {
		schedOpts = append(schedOpts, scheduler.WithCoalesceHook(rt.metrics.coalesced.Inc))
	}
	rt.animator = scheduler.New(prog.Init, rt.draw, cfg.frames, schedOpts...)

	view := prog.View(prog.Init)
	live := rt.renderer.Render(view, rt.events)
	if parent := root.Parent(); parent != nil {
		parent.ReplaceChild(live, root)
	}
	rt.root, rt.view = live, view

	cfg.logger.Debug("program mounted",
		"kind", view.Kind,
		"descendants", view.Descendants)

	return rt
}

// Dispatch handles msg as if an event handler had produced it.
func (rt *Runtime[M]) Dispatch(msg vdom.Msg) {
	rt.send(msg, false)
}

// Root returns the current live root.
func (rt *Runtime[M]) Root() dom.Node {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.root
}

// View returns the view tree the live root was last drawn from.
func (rt *Runtime[M]) View() *vdom.VNode {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.view
}

// Model returns the latest model.
func (rt *Runtime[M]) Model() M {
	rt.updateMu.Lock()
	defer rt.updateMu.Unlock()
	return rt.model
}

// State returns the scheduler state.
func (rt *Runtime[M]) State() scheduler.State {
	return rt.animator.State()
}

type queued struct {
	msg       vdom.Msg
	immediate bool
}

// send is the root of the event chain. Messages are handled one at a time
// in arrival order. A message sent while another is being handled, for
// example by a listener that a draw triggered, is queued and handled by
// the goroutine already running the loop once the current draw returns.
func (rt *Runtime[M]) send(msg vdom.Msg, immediate bool) {
	rt.updateMu.Lock()
	rt.queue = append(rt.queue, queued{msg: msg, immediate: immediate})
	if rt.running {
		rt.updateMu.Unlock()
		return
	}
	rt.running = true

	for len(rt.queue) > 0 {
		q := rt.queue[0]
		rt.queue = rt.queue[1:]
		model := rt.model
		rt.updateMu.Unlock()

		model = rt.prog.Update(model, q.msg)

		rt.updateMu.Lock()
		rt.model = model
		rt.updateMu.Unlock()

		if q.immediate {
			rt.animator.NotifySync(model)
		} else {
			rt.animator.Notify(model)
		}
		rt.updateMu.Lock()
	}
	rt.running = false
	rt.updateMu.Unlock()
}

// draw runs one view/diff/locate/apply cycle.
func (rt *Runtime[M]) draw(model M) {
	_, span := rt.cfg.tracer.Start(context.Background(), "vtree.cycle")
	defer span.End()
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			panic(r)
		}
	}()

	rt.mu.Lock()
	old, root := rt.view, rt.root
	rt.mu.Unlock()

	start := time.Now()
	next := rt.prog.View(model)
	patches := vdom.Diff(old, next)
	diffTime := time.Since(start)

	start = time.Now()
	if len(patches) > 0 {
		root = rt.renderer.Apply(root, render.Locate(root, old, patches, rt.events), patches)
	}
	applyTime := time.Since(start)

	rt.mu.Lock()
	rt.root, rt.view = root, next
	rt.mu.Unlock()

	span.SetAttributes(
		attribute.Int("vtree.patch_count", len(patches)),
		attribute.Int("vtree.descendants", next.Descendants),
	)
	span.SetStatus(codes.Ok, "")

	if rt.metrics != nil {
		rt.metrics.cycles.Inc()
		rt.metrics.diffDuration.Observe(diffTime.Seconds())
		rt.metrics.applyDuration.Observe(applyTime.Seconds())
		rt.metrics.observePatches(patches)
	}

	rt.cfg.logger.Debug("cycle",
		"patches", len(patches),
		"diff", diffTime,
		"apply", applyTime)
}

func (rt *Runtime[M]) onDecodeError(eventType string, err error) {
	if rt.metrics != nil {
		rt.metrics.dropped.WithLabelValues(eventType).Inc()
	}
}
