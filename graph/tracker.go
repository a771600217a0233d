package graph

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/curriculum-go/graph/emit"
	"github.com/dshills/curriculum-go/graph/store"
)

// Tracker is the interaction handler for one curriculum.
//
// It owns the course graph, the focus selection and the derived available
// set, and ties them to persistence, events, metrics and the debounced
// viewport redraw:
//
//	Toggle -> persist full completed-set -> recompute available -> emit
//	Focus / FocusOutside -> selection transition -> emit
//	ViewportChanged (bursty) -> debounce -> redraw focused relations
//
// Tracker is safe for concurrent use. Redraws fire on a timer goroutine, so
// all state is guarded by a single mutex.
type Tracker struct {
	mu sync.Mutex

	graph     *CourseGraph
	selection Selection
	available IDSet

	store      store.Store
	storageKey string
	emitter    emit.Emitter
	metrics    *PrometheusMetrics

	sessionID string
	seq       int

	redraw    func(Relations)
	debouncer *Debouncer
	closed    bool
}

// New builds a tracker over the static course list.
//
// The completed-set starts empty; call Load to rehydrate it from the store
// before presenting availability.
func New(specs []CourseSpec, options ...Option) (*Tracker, error) {
	g, err := NewCourseGraph(specs)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	for _, opt := range options {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.store == nil {
		cfg.store = store.NewMemStore()
	}
	if cfg.emitter == nil {
		cfg.emitter = emit.NewNullEmitter()
	}
	if cfg.sessionID == "" {
		cfg.sessionID = uuid.NewString()
	}

	t := &Tracker{
		graph:      g,
		store:      cfg.store,
		storageKey: cfg.storageKey,
		emitter:    cfg.emitter,
		metrics:    cfg.metrics,
		sessionID:  cfg.sessionID,
		redraw:     cfg.redraw,
	}
	t.debouncer = newDebouncer(cfg.window, t.viewportSettled, cfg.after)
	t.recompute()

	return t, nil
}

// SessionID returns the id stamped on emitted events.
func (t *Tracker) SessionID() string {
	return t.sessionID
}

// Load rehydrates the completed-set from the store.
//
// A missing key yields an empty set. A value that cannot be decoded is
// erased, the set starts empty, and a state_corrupt event is emitted; this
// is not an error. Ids in the stored value that no longer name a course are
// ignored. Only store I/O failures are returned.
func (t *Tracker) Load(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	raw, err := t.store.Get(ctx, t.storageKey)
	switch {
	case errors.Is(err, store.ErrNotFound):
		t.graph.SetCompletedIDs(nil)
		latency := t.recompute()
		t.emit("", "state_loaded", map[string]interface{}{
			"completed":  0,
			"available":  t.available.Len(),
			"latency_ms": latency.Milliseconds(),
			"found":      false,
		})
		return nil
	case err != nil:
		return &CurriculumError{Message: "failed to load completed set", Code: "LOAD_FAILED", Cause: err}
	}

	ids, decodeErr := DecodeCompleted(raw)
	if decodeErr != nil {
		t.graph.SetCompletedIDs(nil)
		t.recompute()

		meta := map[string]interface{}{"error": decodeErr.Error()}
		if err := t.store.Delete(ctx, t.storageKey); err != nil {
			meta["erase_error"] = err.Error()
		}
		if t.metrics != nil {
			t.metrics.IncrementCorruptState()
		}
		t.emit("", "state_corrupt", meta)
		return nil
	}

	ignored := t.graph.SetCompletedIDs(ids)
	latency := t.recompute()
	t.emit("", "state_loaded", map[string]interface{}{
		"completed":  len(t.graph.CompletedIDs()),
		"available":  t.available.Len(),
		"ignored":    ignored,
		"latency_ms": latency.Milliseconds(),
		"found":      true,
	})
	return nil
}

// Toggle flips the completed flag of id, persists the full completed-set and
// recomputes availability. It returns the new flag value.
//
// An unknown id changes nothing, is not persisted, and returns an error
// wrapping ErrUnknownCourse. If the store write fails the flag is restored
// and the error is returned, so memory and store never disagree.
func (t *Tracker) Toggle(ctx context.Context, id string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	completed, err := t.graph.ToggleCompleted(id)
	if err != nil {
		if t.metrics != nil {
			t.metrics.IncrementUnknownCourse()
		}
		t.emit(id, "unknown_course", map[string]interface{}{"operation": "toggle"})
		return false, &CurriculumError{
			Message:  "cannot toggle course",
			Code:     "UNKNOWN_COURSE",
			CourseID: id,
			Cause:    err,
		}
	}

	if err := t.persist(ctx); err != nil {
		_, _ = t.graph.ToggleCompleted(id)
		t.emit(id, "persist_failed", map[string]interface{}{"error": err.Error()})
		return !completed, &CurriculumError{
			Message:  "failed to persist completed set",
			Code:     "PERSIST_FAILED",
			CourseID: id,
			Cause:    err,
		}
	}

	latency := t.recompute()
	if t.metrics != nil {
		t.metrics.RecordToggle(completed)
	}

	msg := "course_uncompleted"
	if completed {
		msg = "course_completed"
	}
	t.emit(id, msg, map[string]interface{}{
		"completed":  len(t.graph.CompletedIDs()),
		"available":  t.available.Len(),
		"latency_ms": latency.Milliseconds(),
	})

	return completed, nil
}

// Focus applies a focus event for id. Focusing the selected course again
// clears the selection. Ids outside the graph may be focused; they simply
// have no prerequisites to highlight.
func (t *Tracker) Focus(id string) SelectionState {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.selection.State()
	next := t.selection.Focus(id)
	t.recordFocus(prev, next, id)
	return next
}

// FocusOutside clears the selection.
func (t *Tracker) FocusOutside() SelectionState {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.selection.State()
	next := t.selection.FocusOutside()
	t.recordFocus(prev, next, prev.ID)
	return next
}

func (t *Tracker) recordFocus(prev, next SelectionState, id string) {
	transition := transitionName(prev, next)
	if t.metrics != nil {
		t.metrics.RecordFocusChange(transition)
	}

	if !next.Selected {
		t.emit(id, "focus_cleared", map[string]interface{}{"transition": transition})
		return
	}

	rel := FocusRelations(t.graph, next.ID)
	t.emit(next.ID, "focus_changed", map[string]interface{}{
		"transition":    transition,
		"known":         t.graph.Has(next.ID),
		"prerequisites": rel.PrerequisiteIDs(),
		"dependents":    rel.DependentIDs(),
	})
}

// Selected returns the focused course id, if any.
func (t *Tracker) Selected() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.selection.State()
	return s.ID, s.Selected
}

// Available returns a copy of the current available set.
func (t *Tracker) Available() IDSet {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(IDSet, len(t.available))
	for id := range t.available {
		out[id] = struct{}{}
	}
	return out
}

// Relations returns the direct relations of the focused course. The second
// result is false when nothing is focused.
func (t *Tracker) Relations() (Relations, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.selection.State()
	if !s.Selected {
		return Relations{}, false
	}
	return FocusRelations(t.graph, s.ID), true
}

// RelationsOf returns the direct relations of any course without changing
// the selection.
func (t *Tracker) RelationsOf(id string) Relations {
	t.mu.Lock()
	defer t.mu.Unlock()

	return FocusRelations(t.graph, id)
}

// CompletedIDs returns the completed course ids in declaration order.
func (t *Tracker) CompletedIDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.graph.CompletedIDs()
}

// Snapshot returns the render state of every course in declaration order.
func (t *Tracker) Snapshot() []CourseView {
	t.mu.Lock()
	defer t.mu.Unlock()

	return buildSnapshot(t.graph, t.available, t.selection.State())
}

// Validate reports structural issues in the tracked graph.
func (t *Tracker) Validate() []Issue {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Validate(t.graph)
}

// ViewportChanged signals a resize or scroll. Bursts are coalesced: once the
// viewport has been quiet for the debounce window the focused course's
// relations are recomputed and handed to the redraw callback.
func (t *Tracker) ViewportChanged() {
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()

	if closed {
		return
	}
	t.debouncer.Trigger()
}

func (t *Tracker) viewportSettled() {
	t.mu.Lock()
	s := t.selection.State()
	if t.closed || !s.Selected {
		t.mu.Unlock()
		return
	}

	rel := FocusRelations(t.graph, s.ID)
	if t.metrics != nil {
		t.metrics.IncrementRedraws()
	}
	t.emit(s.ID, "viewport_redraw", map[string]interface{}{
		"prerequisites": rel.PrerequisiteIDs(),
		"dependents":    rel.DependentIDs(),
	})
	redraw := t.redraw
	t.mu.Unlock()

	if redraw != nil {
		redraw(rel)
	}
}

// Close cancels any pending redraw. The store is owned by the caller and is
// left open. Close is idempotent.
func (t *Tracker) Close() error {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()

	t.debouncer.Stop()
	return nil
}

func (t *Tracker) persist(ctx context.Context) error {
	value, err := EncodeCompleted(t.graph.CompletedIDs())
	if err != nil {
		return err
	}
	return t.store.Put(ctx, t.storageKey, value)
}

func (t *Tracker) recompute() time.Duration {
	start := time.Now()
	t.available = ComputeAvailable(t.graph)
	latency := time.Since(start)

	if t.metrics != nil {
		t.metrics.RecordRecompute(latency, len(t.graph.CompletedIDs()), t.available.Len())
	}
	return latency
}

func (t *Tracker) emit(courseID, msg string, meta map[string]interface{}) {
	t.seq++
	t.emitter.Emit(emit.Event{
		SessionID: t.sessionID,
		Seq:       t.seq,
		CourseID:  courseID,
		Msg:       msg,
		Meta:      meta,
	})
}
