package emit

// Emitter receives and processes observability events from the tracker.
//
// Emitters enable pluggable observability backends:
//   - Logging: stdout, files
//   - Distributed tracing: OpenTelemetry
//   - In-memory history for tests and debugging
//
// Implementations should be:
//   - Non-blocking: the tracker emits while holding its lock
//   - Thread-safe: the debounced redraw emits from a timer goroutine
//   - Resilient: Emit must not panic
type Emitter interface {
	// Emit sends an observability event to the configured backend.
	//
	// Emit should not panic. Errors should be handled internally.
	Emit(event Event)
}

// MultiEmitter fans every event out to a fixed list of emitters in order.
type MultiEmitter struct {
	emitters []Emitter
}

// NewMultiEmitter creates a MultiEmitter. Nil entries are skipped.
func NewMultiEmitter(emitters ...Emitter) *MultiEmitter {
	kept := make([]Emitter, 0, len(emitters))
	for _, e := range emitters {
		if e != nil {
			kept = append(kept, e)
		}
	}
	return &MultiEmitter{emitters: kept}
}

// Emit forwards the event to every wrapped emitter.
func (m *MultiEmitter) Emit(event Event) {
	for _, e := range m.emitters {
		e.Emit(event)
	}
}
