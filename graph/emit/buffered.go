package emit

import "sync"

// BufferedEmitter implements Emitter by storing events in memory.
//
// Events are grouped by session so a single emitter can be shared by
// several trackers (for example one per curriculum in a test).
//
// Warning: all events are retained until Clear is called.
//
// Example usage:
//
//	emitter := emit.NewBufferedEmitter()
//	tracker, _ := graph.New(courses, graph.WithEmitter(emitter), graph.WithSessionID("s1"))
//	_, _ = tracker.Toggle(ctx, "PSI101")
//
//	all := emitter.GetHistory("s1")
//	toggles := emitter.GetHistoryWithFilter("s1", emit.HistoryFilter{Msg: "course_completed"})
type BufferedEmitter struct {
	mu     sync.RWMutex
	events map[string][]Event // sessionID -> events
}

// HistoryFilter specifies criteria for filtering event history.
//
// All fields are optional and combined with AND logic.
type HistoryFilter struct {
	CourseID string // Filter by course ID (empty = no filter)
	Msg      string // Filter by event name (empty = no filter)
	MinSeq   *int   // Minimum sequence number (nil = no filter)
	MaxSeq   *int   // Maximum sequence number (nil = no filter)
}

// NewBufferedEmitter creates a new BufferedEmitter.
func NewBufferedEmitter() *BufferedEmitter {
	return &BufferedEmitter{
		events: make(map[string][]Event),
	}
}

// Emit stores an event in the buffer.
func (b *BufferedEmitter) Emit(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events[event.SessionID] = append(b.events[event.SessionID], event)
}

// GetHistory returns a copy of all events for a session in emission order.
// Unknown sessions yield an empty, non-nil slice.
func (b *BufferedEmitter) GetHistory(sessionID string) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	events := b.events[sessionID]
	result := make([]Event, len(events))
	copy(result, events)
	return result
}

// GetHistoryWithFilter returns the events of a session matching filter.
func (b *BufferedEmitter) GetHistoryWithFilter(sessionID string, filter HistoryFilter) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := []Event{}
	for _, event := range b.events[sessionID] {
		if matchesFilter(event, filter) {
			result = append(result, event)
		}
	}
	return result
}

// Count returns how many events named msg were recorded for a session.
func (b *BufferedEmitter) Count(sessionID, msg string) int {
	return len(b.GetHistoryWithFilter(sessionID, HistoryFilter{Msg: msg}))
}

func matchesFilter(event Event, filter HistoryFilter) bool {
	if filter.CourseID != "" && event.CourseID != filter.CourseID {
		return false
	}
	if filter.Msg != "" && event.Msg != filter.Msg {
		return false
	}
	if filter.MinSeq != nil && event.Seq < *filter.MinSeq {
		return false
	}
	if filter.MaxSeq != nil && event.Seq > *filter.MaxSeq {
		return false
	}
	return true
}

// Clear removes stored events for one session, or for all sessions when
// sessionID is empty.
func (b *BufferedEmitter) Clear(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sessionID == "" {
		b.events = make(map[string][]Event)
		return
	}
	delete(b.events, sessionID)
}
