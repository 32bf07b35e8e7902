package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type recorder struct {
	mu    sync.Mutex
	draws []int
}

func (r *recorder) draw(m int) {
	r.mu.Lock()
	r.draws = append(r.draws, m)
	r.mu.Unlock()
}

func (r *recorder) get() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.draws...)
}

func TestNotifyIdleDrawsImmediately(t *testing.T) {
	rec := &recorder{}
	frames := &ManualFrames{}
	a := New(0, rec.draw, frames)

	a.Notify(1)

	if diff := cmp.Diff([]int{1}, rec.get()); diff != "" {
		t.Errorf("draws mismatch (-want +got):\n%s", diff)
	}
	if a.State() != StatePending {
		t.Errorf("State() = %v, want pending", a.State())
	}
	if frames.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", frames.Pending())
	}
}

func TestNotifyCoalescesWithinFrame(t *testing.T) {
	rec := &recorder{}
	frames := &ManualFrames{}
	coalesced := 0
	a := New(0, rec.draw, frames, WithCoalesceHook(func() { coalesced++ }))

	a.Notify(1)
	a.Notify(2)
	a.Notify(3)
	a.Notify(4)

	if a.State() != StateExtra {
		t.Fatalf("State() = %v, want extra", a.State())
	}
	if coalesced != 3 {
		t.Errorf("coalesced = %d, want 3", coalesced)
	}

	frames.Fire()
	if diff := cmp.Diff([]int{1, 4}, rec.get()); diff != "" {
		t.Errorf("draws mismatch (-want +got):\n%s", diff)
	}
	if a.State() != StatePending {
		t.Errorf("State() = %v, want pending", a.State())
	}

	// A quiet frame returns to idle.
	frames.Fire()
	if a.State() != StateIdle {
		t.Errorf("State() = %v, want idle", a.State())
	}
	if frames.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", frames.Pending())
	}

	a.Notify(5)
	if diff := cmp.Diff([]int{1, 4, 5}, rec.get()); diff != "" {
		t.Errorf("draws mismatch (-want +got):\n%s", diff)
	}
}

func TestNotifySync(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(a *Animator[int])
		wantState State
		wantDraws []int
	}{
		{
			name:      "idle requests a frame",
			setup:     func(a *Animator[int]) {},
			wantState: StatePending,
			wantDraws: []int{9},
		},
		{
			name:      "pending stays pending",
			setup:     func(a *Animator[int]) { a.Notify(1) },
			wantState: StatePending,
			wantDraws: []int{1, 9},
		},
		{
			name: "extra is downgraded",
			setup: func(a *Animator[int]) {
				a.Notify(1)
				a.Notify(2)
			},
			wantState: StatePending,
			wantDraws: []int{1, 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			a := New(0, rec.draw, &ManualFrames{})
			tt.setup(a)

			a.NotifySync(9)

			if a.State() != tt.wantState {
				t.Errorf("State() = %v, want %v", a.State(), tt.wantState)
			}
			if diff := cmp.Diff(tt.wantDraws, rec.get()); diff != "" {
				t.Errorf("draws mismatch (-want +got):\n%s", diff)
			}
			if a.Model() != 9 {
				t.Errorf("Model() = %d, want 9", a.Model())
			}
		})
	}
}

func TestNotifyAfterSyncDrawWaitsForFrame(t *testing.T) {
	rec := &recorder{}
	frames := &ManualFrames{}
	a := New(0, rec.draw, frames)

	a.NotifySync(1)
	if frames.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", frames.Pending())
	}
	a.Notify(2)

	if diff := cmp.Diff([]int{1}, rec.get()); diff != "" {
		t.Errorf("draws before the frame mismatch (-want +got):\n%s", diff)
	}
	if a.State() != StateExtra {
		t.Errorf("State() = %v, want extra", a.State())
	}

	frames.Fire()
	if diff := cmp.Diff([]int{1, 2}, rec.get()); diff != "" {
		t.Errorf("draws mismatch (-want +got):\n%s", diff)
	}
}

func TestExtraAfterSyncFrameDoesNotRedraw(t *testing.T) {
	rec := &recorder{}
	frames := &ManualFrames{}
	a := New(0, rec.draw, frames)

	a.Notify(1)
	a.Notify(2)
	a.NotifySync(3)
	frames.Fire()

	if diff := cmp.Diff([]int{1, 3}, rec.get()); diff != "" {
		t.Errorf("draws mismatch (-want +got):\n%s", diff)
	}
	if a.State() != StateIdle {
		t.Errorf("State() = %v, want idle", a.State())
	}
}

func TestIndependentAnimators(t *testing.T) {
	recA, recB := &recorder{}, &recorder{}
	framesA, framesB := &ManualFrames{}, &ManualFrames{}
	a := New(0, recA.draw, framesA)
	b := New(0, recB.draw, framesB)

	a.Notify(1)
	a.Notify(2)
	b.Notify(10)

	if a.State() != StateExtra || b.State() != StatePending {
		t.Errorf("states = %v, %v; want extra, pending", a.State(), b.State())
	}
}

func TestTickerFrames(t *testing.T) {
	rec := &recorder{}
	a := New(0, rec.draw, TickerFrames(time.Millisecond))

	a.Notify(1)
	a.Notify(2)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if a.State() == StateIdle {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if a.State() != StateIdle {
		t.Fatalf("State() = %v, want idle", a.State())
	}
	if diff := cmp.Diff([]int{1, 2}, rec.get()); diff != "" {
		t.Errorf("draws mismatch (-want +got):\n%s", diff)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "idle"},
		{StatePending, "pending"},
		{StateExtra, "extra"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
