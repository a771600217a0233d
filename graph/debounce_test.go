package graph

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// manualClock hands out timers that only fire when the test says so.
type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (m *manualTimer) Stop() bool {
	wasActive := !m.stopped
	m.stopped = true
	return wasActive
}

func (c *manualClock) after(d time.Duration, f func()) stopper {
	c.mu.Lock()
	defer c.mu.Unlock()
	tm := &manualTimer{d: d, f: f}
	c.timers = append(c.timers, tm)
	return tm
}

// fire runs every timer that has not been stopped.
func (c *manualClock) fire() {
	c.mu.Lock()
	pending := append([]*manualTimer(nil), c.timers...)
	c.timers = nil
	c.mu.Unlock()

	for _, tm := range pending {
		if !tm.stopped {
			tm.stopped = true
			tm.f()
		}
	}
}

func (c *manualClock) last() *manualTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timers[len(c.timers)-1]
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	clock := &manualClock{}
	var runs int32
	d := newDebouncer(200*time.Millisecond, func() { atomic.AddInt32(&runs, 1) }, clock.after)

	for i := 0; i < 5; i++ {
		d.Trigger()
	}
	clock.fire()

	if got := atomic.LoadInt32(&runs); got != 1 {
		t.Errorf("runs = %d, want 1", got)
	}
}

func TestDebouncer_UsesWindow(t *testing.T) {
	clock := &manualClock{}
	d := newDebouncer(75*time.Millisecond, func() {}, clock.after)
	d.Trigger()

	if got := clock.last().d; got != 75*time.Millisecond {
		t.Errorf("scheduled after %v, want 75ms", got)
	}

	if NewDebouncer(0, func() {}).Window() != DefaultDebounceWindow {
		t.Error("non-positive window should fall back to the default")
	}
}

func TestDebouncer_SupersededTimerDoesNothing(t *testing.T) {
	clock := &manualClock{}
	var runs int32
	d := newDebouncer(time.Second, func() { atomic.AddInt32(&runs, 1) }, clock.after)

	d.Trigger()
	stale := clock.last()
	d.Trigger()

	// The stale timer fired concurrently with the second Trigger.
	stale.f()
	if got := atomic.LoadInt32(&runs); got != 0 {
		t.Fatalf("stale timer ran the task: runs = %d", got)
	}

	clock.fire()
	if got := atomic.LoadInt32(&runs); got != 1 {
		t.Errorf("runs = %d, want 1", got)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	clock := &manualClock{}
	var runs int32
	d := newDebouncer(time.Second, func() { atomic.AddInt32(&runs, 1) }, clock.after)

	d.Trigger()
	pending := clock.last()
	d.Stop()
	pending.f()
	clock.fire()

	if got := atomic.LoadInt32(&runs); got != 0 {
		t.Errorf("stopped debouncer ran the task %d times", got)
	}

	d.Trigger()
	clock.fire()
	if got := atomic.LoadInt32(&runs); got != 1 {
		t.Errorf("Trigger after Stop: runs = %d, want 1", got)
	}
}

func TestDebouncer_RealTimer(t *testing.T) {
	done := make(chan struct{}, 4)
	d := NewDebouncer(20*time.Millisecond, func() { done <- struct{}{} })

	d.Trigger()
	d.Trigger()
	d.Trigger()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced task never ran")
	}

	select {
	case <-done:
		t.Error("burst produced more than one run")
	case <-time.After(100 * time.Millisecond):
	}
}
