package emit

// Event represents an observability event emitted by the curriculum tracker.
//
// Events describe what happened to the completion and selection state:
//   - Course completion toggles
//   - Selection (focus) transitions
//   - Persisted state loads, saves and corruption recovery
//   - Debounced viewport redraws
//
// Events are emitted to an Emitter which can:
//   - Log to stdout/stderr
//   - Send to OpenTelemetry
//   - Keep an in-memory history for inspection
type Event struct {
	// SessionID identifies the tracker session that emitted this event.
	SessionID string

	// Seq is the per-session sequence number, starting at 1.
	Seq int

	// CourseID identifies the course the event concerns.
	// Empty string for session-level events (state_loaded, focus_cleared).
	CourseID string

	// Msg is the event name, e.g. "course_completed" or "state_corrupt".
	Msg string

	// Meta contains additional structured data specific to this event.
	// Common keys:
	//   - "available": Number of available courses after recomputation
	//   - "completed": Number of completed courses
	//   - "latency_ms": Recompute duration in milliseconds
	//   - "error": Error details
	Meta map[string]interface{}
}
