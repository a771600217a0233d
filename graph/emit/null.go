package emit

// NullEmitter implements Emitter by discarding all events.
//
// It is the tracker's default when no emitter is configured.
//
// Example usage:
//
//	tracker, err := graph.New(courses, graph.WithEmitter(emit.NewNullEmitter()))
type NullEmitter struct{}

// NewNullEmitter creates a new NullEmitter.
func NewNullEmitter() *NullEmitter {
	return &NullEmitter{}
}

// Emit discards the event.
func (n *NullEmitter) Emit(event Event) {}
