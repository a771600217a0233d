package graph

import (
	"sync"
	"time"
)

// DefaultDebounceWindow is the quiescence window for viewport redraws.
const DefaultDebounceWindow = 200 * time.Millisecond

// afterFunc matches time.AfterFunc; tests substitute a manual clock.
type afterFunc func(d time.Duration, f func()) stopper

type stopper interface {
	Stop() bool
}

func realAfterFunc(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

// Debouncer runs a task once a burst of triggers has been quiet for the
// configured window. Each Trigger cancels the pending run and schedules a
// new one.
//
// A generation counter guards against a timer that fired just before being
// superseded: only the run scheduled by the latest Trigger executes.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	task   func()
	after  afterFunc
	timer  stopper
	gen    uint64
}

// NewDebouncer creates a debouncer that calls task after window of quiet.
// A non-positive window uses DefaultDebounceWindow.
func NewDebouncer(window time.Duration, task func()) *Debouncer {
	return newDebouncer(window, task, realAfterFunc)
}

func newDebouncer(window time.Duration, task func(), after afterFunc) *Debouncer {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Debouncer{window: window, task: task, after: after}
}

// Trigger restarts the quiescence window.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.after(d.window, func() { d.fire(gen) })
}

// Stop cancels any pending run. A later Trigger schedules again.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Window returns the quiescence window.
func (d *Debouncer) Window() time.Duration {
	return d.window
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.task()
}
