package emit

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestTracer(t *testing.T) (*OTelEmitter, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	return NewOTelEmitter(otel.Tracer("test")), exporter
}

// TestOTelEmitter_Emit verifies single event emission creates a span.
func TestOTelEmitter_Emit(t *testing.T) {
	emitter, exporter := newTestTracer(t)

	emitter.Emit(Event{
		SessionID: "session-001",
		Seq:       3,
		CourseID:  "PSI101",
		Msg:       "course_completed",
		Meta: map[string]interface{}{
			"available":  4,
			"completed":  2,
			"latency_ms": int64(1),
			"term":       "spring",
		},
	})

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]

	if span.Name != "course_completed" {
		t.Errorf("span name = %q, want %q", span.Name, "course_completed")
	}

	attrs := attributeMap(span.Attributes)
	if got := attrs["curriculum.session_id"]; got != "session-001" {
		t.Errorf("session_id = %v, want %q", got, "session-001")
	}
	if got := attrs["curriculum.seq"]; got != int64(3) {
		t.Errorf("seq = %v, want 3", got)
	}
	if got := attrs["curriculum.course_id"]; got != "PSI101" {
		t.Errorf("course_id = %v, want %q", got, "PSI101")
	}
	if got := attrs["curriculum.available_count"]; got != int64(4) {
		t.Errorf("available_count = %v, want 4", got)
	}
	if got := attrs["curriculum.completed_count"]; got != int64(2) {
		t.Errorf("completed_count = %v, want 2", got)
	}
	if got := attrs["curriculum.recompute.latency_ms"]; got != int64(1) {
		t.Errorf("latency_ms = %v, want 1", got)
	}
	if got := attrs["term"]; got != "spring" {
		t.Errorf("term = %v, want %q", got, "spring")
	}
}

// TestOTelEmitter_SessionEventOmitsCourse verifies session-level events carry no course attribute.
func TestOTelEmitter_SessionEventOmitsCourse(t *testing.T) {
	emitter, exporter := newTestTracer(t)

	emitter.Emit(Event{SessionID: "s", Seq: 1, Msg: "focus_cleared"})

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if _, ok := attributeMap(spans[0].Attributes)["curriculum.course_id"]; ok {
		t.Error("session-level span should not carry curriculum.course_id")
	}
}

// TestOTelEmitter_EmitWithError verifies error events set error status.
func TestOTelEmitter_EmitWithError(t *testing.T) {
	emitter, exporter := newTestTracer(t)

	emitter.Emit(Event{
		SessionID: "session-001",
		Seq:       1,
		Msg:       "state_corrupt",
		Meta: map[string]interface{}{
			"error": "invalid character 'x'",
		},
	})

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]

	if span.Status.Code != codes.Error {
		t.Errorf("status code = %v, want %v", span.Status.Code, codes.Error)
	}
	if span.Status.Description != "invalid character 'x'" {
		t.Errorf("status description = %q", span.Status.Description)
	}
	if len(span.Events) == 0 {
		t.Error("expected recorded error event, got none")
	}
}

// TestOTelEmitter_FocusAttributes verifies the keys carried by focus events.
func TestOTelEmitter_FocusAttributes(t *testing.T) {
	emitter, exporter := newTestTracer(t)

	emitter.Emit(Event{
		SessionID: "s",
		Seq:       2,
		CourseID:  "C",
		Msg:       "focus_changed",
		Meta: map[string]interface{}{
			"transition":    "selected",
			"known":         false,
			"prerequisites": []string{"A"},
		},
	})

	attrs := attributeMap(exporter.GetSpans()[0].Attributes)
	if got := attrs["curriculum.focus.transition"]; got != "selected" {
		t.Errorf("transition = %v, want selected", got)
	}
	if got := attrs["curriculum.focus.known"]; got != false {
		t.Errorf("known = %v, want false", got)
	}
	if _, ok := attrs["transition"]; ok {
		t.Error("transition should only appear under the curriculum namespace")
	}
}

// TestOTelEmitter_AttributeTypes verifies metadata value conversion.
func TestOTelEmitter_AttributeTypes(t *testing.T) {
	emitter, exporter := newTestTracer(t)

	emitter.Emit(Event{
		SessionID: "s",
		Seq:       1,
		Msg:       "viewport_redraw",
		Meta: map[string]interface{}{
			"ratio":    0.5,
			"known":    true,
			"ids":      []string{"A", "B"},
			"window":   200 * time.Millisecond,
			"other":    struct{ X int }{X: 7},
		},
	})

	attrs := attributeMap(exporter.GetSpans()[0].Attributes)
	if got := attrs["ratio"]; got != 0.5 {
		t.Errorf("ratio = %v, want 0.5", got)
	}
	if got := attrs["curriculum.focus.known"]; got != true {
		t.Errorf("known = %v, want true", got)
	}
	if got, ok := attrs["ids"].([]string); !ok || len(got) != 2 {
		t.Errorf("ids = %v, want [A B]", attrs["ids"])
	}
	if got := attrs["window"]; got != int64(200) {
		t.Errorf("window = %v, want 200", got)
	}
	if got := attrs["other"]; got != "{7}" {
		t.Errorf("other = %v, want %q", got, "{7}")
	}
}

// TestOTelEmitter_EmitBatch verifies batch emission creates one span per event.
func TestOTelEmitter_EmitBatch(t *testing.T) {
	emitter, exporter := newTestTracer(t)

	events := []Event{
		{SessionID: "s", Seq: 1, CourseID: "A", Msg: "course_completed"},
		{SessionID: "s", Seq: 2, CourseID: "B", Msg: "course_completed"},
		{SessionID: "s", Seq: 3, CourseID: "B", Msg: "focus_changed"},
	}
	if err := emitter.EmitBatch(context.Background(), events); err != nil {
		t.Fatalf("EmitBatch failed: %v", err)
	}

	if got := len(exporter.GetSpans()); got != 3 {
		t.Errorf("expected 3 spans, got %d", got)
	}

	t.Run("cancelled context stops the batch", func(t *testing.T) {
		exporter.Reset()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := emitter.EmitBatch(ctx, events); err == nil {
			t.Error("expected context error, got nil")
		}
		if got := len(exporter.GetSpans()); got != 0 {
			t.Errorf("expected 0 spans after cancellation, got %d", got)
		}
	})
}

// TestOTelEmitter_Flush verifies Flush succeeds on an SDK provider.
func TestOTelEmitter_Flush(t *testing.T) {
	emitter, _ := newTestTracer(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := emitter.Flush(ctx); err != nil {
		t.Errorf("Flush failed: %v", err)
	}
}

func attributeMap(attrs []attribute.KeyValue) map[string]interface{} {
	m := make(map[string]interface{})
	for _, kv := range attrs {
		m[string(kv.Key)] = kv.Value.AsInterface()
	}
	return m
}
