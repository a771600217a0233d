package emit

import "testing"

// Compile-time interface checks.
var (
	_ Emitter = (*LogEmitter)(nil)
	_ Emitter = (*BufferedEmitter)(nil)
	_ Emitter = (*NullEmitter)(nil)
	_ Emitter = (*OTelEmitter)(nil)
	_ Emitter = (*MultiEmitter)(nil)
)

func TestMultiEmitter_FansOut(t *testing.T) {
	a := NewBufferedEmitter()
	b := NewBufferedEmitter()
	multi := NewMultiEmitter(a, nil, b)

	multi.Emit(Event{SessionID: "s", Seq: 1, CourseID: "A", Msg: "course_completed"})

	for name, e := range map[string]*BufferedEmitter{"a": a, "b": b} {
		if got := len(e.GetHistory("s")); got != 1 {
			t.Errorf("emitter %s received %d events, want 1", name, got)
		}
	}
}

func TestNullEmitter_NoOp(t *testing.T) {
	emitter := NewNullEmitter()

	// Must not panic, with or without meta.
	emitter.Emit(Event{SessionID: "s", Seq: 1, Msg: "course_completed"})
	emitter.Emit(Event{SessionID: "s", Seq: 2, Msg: "state_corrupt", Meta: map[string]interface{}{"error": "bad"}})
}
