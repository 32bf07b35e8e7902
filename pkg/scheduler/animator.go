package scheduler

import "sync"

// State is the position of an Animator in its state machine.
type State uint8

const (
	StateIdle    State = iota // No frame requested
	StatePending              // Drawn this frame, frame requested
	StateExtra                // Changed again since the last draw
)

// String returns the string representation of the State.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateExtra:
		return "extra"
	default:
		return "unknown"
	}
}

// Option configures an Animator.
type Option func(*options)

type options struct {
	onCoalesce func()
}

// WithCoalesceHook sets a function called for every notification that is
// merged into a later draw instead of being drawn immediately.
func WithCoalesceHook(fn func()) Option {
	return func(o *options) {
		o.onCoalesce = fn
	}
}

// Animator coalesces model updates into draws.
//
// Draws never run concurrently: frames arriving on timer goroutines wait
// for an in-progress draw. draw must not call back into the Animator.
type Animator[M any] struct {
	draw   func(M)
	frames Frames
	opts   options

	mu    sync.Mutex // guards state and model
	state State
	model M

	drawMu sync.Mutex
}

// New creates an idle Animator holding model. It does not draw.
func New[M any](model M, draw func(M), frames Frames, opts ...Option) *Animator[M] {
	a := &Animator[M]{
		draw:   draw,
		frames: frames,
		model:  model,
	}
	for _, opt := range opts {
		opt(&a.opts)
	}
	return a
}

// State returns the current state.
func (a *Animator[M]) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Model returns the most recent model.
func (a *Animator[M]) Model() M {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.model
}

// Notify records a new model. When idle it is drawn immediately and a
// frame is requested; otherwise it replaces any model waiting for the
// next frame.
func (a *Animator[M]) Notify(model M) {
	a.mu.Lock()
	a.model = model
	if a.state != StateIdle {
		a.state = StateExtra
		a.mu.Unlock()
		if a.opts.onCoalesce != nil {
			a.opts.onCoalesce()
		}
		return
	}
	a.state = StatePending
	a.mu.Unlock()

	a.frames.RequestFrame(a.frame)
	a.drawLatest()
}

// NotifySync records a new model and draws it before returning. A change
// waiting for the next frame is covered by this draw. When idle, a frame is
// requested as for Notify, so later notifications in the same frame are
// coalesced.
func (a *Animator[M]) NotifySync(model M) {
	a.mu.Lock()
	a.model = model
	idle := a.state == StateIdle
	a.state = StatePending
	a.mu.Unlock()

	if idle {
		a.frames.RequestFrame(a.frame)
	}
	a.drawLatest()
}

func (a *Animator[M]) frame() {
	a.mu.Lock()
	if a.state != StateExtra {
		a.state = StateIdle
		a.mu.Unlock()
		return
	}
	a.state = StatePending
	a.mu.Unlock()

	a.frames.RequestFrame(a.frame)
	a.drawLatest()
}

func (a *Animator[M]) drawLatest() {
	a.drawMu.Lock()
	defer a.drawMu.Unlock()

	a.mu.Lock()
	model := a.model
	a.mu.Unlock()

	a.draw(model)
}
