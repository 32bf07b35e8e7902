package scheduler

import (
	"sync"
	"time"
)

// DefaultFrameInterval approximates one frame at 60Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// Frames schedules a callback for the next frame.
type Frames interface {
	RequestFrame(fn func())
}

// FrameFunc adapts a function to Frames.
type FrameFunc func(fn func())

// RequestFrame implements Frames.
func (f FrameFunc) RequestFrame(fn func()) { f(fn) }

// TickerFrames returns a Frames that runs each callback interval after it
// was requested, on its own goroutine. A non-positive interval selects
// DefaultFrameInterval.
func TickerFrames(interval time.Duration) Frames {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return FrameFunc(func(fn func()) {
		time.AfterFunc(interval, fn)
	})
}

// ManualFrames queues frame callbacks until Fire is called. It is meant
// for tests and for hosts that drive frames themselves.
type ManualFrames struct {
	mu      sync.Mutex
	pending []func()
}

// RequestFrame implements Frames.
func (f *ManualFrames) RequestFrame(fn func()) {
	f.mu.Lock()
	f.pending = append(f.pending, fn)
	f.mu.Unlock()
}

// Pending returns the number of queued callbacks.
func (f *ManualFrames) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Fire runs the callbacks queued so far and returns how many ran.
// Callbacks requested while firing wait for the next call.
func (f *ManualFrames) Fire() int {
	f.mu.Lock()
	batch := f.pending
	f.pending = nil
	f.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}
