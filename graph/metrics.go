package graph

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics collects Prometheus metrics for a curriculum tracker.
//
// Metrics exposed (all namespaced with "curriculum_"):
//
//  1. toggles_total (counter): completion toggles.
//     Labels: action (completed/uncompleted).
//  2. completed_courses (gauge): size of the completed-set.
//  3. available_courses (gauge): size of the available set after the
//     latest recomputation.
//  4. recompute_latency_ms (histogram): availability recomputation time.
//  5. unknown_course_total (counter): operations naming an id absent from
//     the graph.
//  6. corrupt_state_total (counter): persisted values that failed to decode.
//  7. focus_changes_total (counter): selection transitions.
//     Labels: transition (selected/replaced/cleared/noop).
//  8. viewport_redraws_total (counter): debounced redraws that ran.
//
// Usage:
//
//	registry := prometheus.NewRegistry()
//	metrics := graph.NewPrometheusMetrics(registry)
//	tracker, err := graph.New(specs, graph.WithMetrics(metrics))
//
//	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
//
// Thread-safe: collectors are safe for concurrent use and the enabled flag
// is guarded by a mutex.
type PrometheusMetrics struct {
	completedCourses prometheus.Gauge
	availableCourses prometheus.Gauge

	recomputeLatency prometheus.Histogram

	toggles        *prometheus.CounterVec
	focusChanges   *prometheus.CounterVec
	unknownCourses prometheus.Counter
	corruptState   prometheus.Counter
	redraws        prometheus.Counter

	registry prometheus.Registerer

	mu      sync.RWMutex
	enabled bool
}

// NewPrometheusMetrics creates and registers all tracker metrics with the
// provided registry. A nil registry uses prometheus.DefaultRegisterer.
//
// Registering twice on the same registry panics, as with any promauto
// collector; use one PrometheusMetrics per registry.
func NewPrometheusMetrics(registry prometheus.Registerer) *PrometheusMetrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	pm := &PrometheusMetrics{
		registry: registry,
		enabled:  true,
	}

	pm.completedCourses = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "curriculum",
		Name:      "completed_courses",
		Help:      "Number of courses currently marked completed",
	})

	pm.availableCourses = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "curriculum",
		Name:      "available_courses",
		Help:      "Number of courses whose prerequisites are all completed",
	})

	pm.recomputeLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: "curriculum",
		Name:      "recompute_latency_ms",
		Help:      "Availability recomputation duration in milliseconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50},
	})

	pm.toggles = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "curriculum",
		Name:      "toggles_total",
		Help:      "Completion toggles by resulting action",
	}, []string{"action"}) // action: completed, uncompleted

	pm.focusChanges = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "curriculum",
		Name:      "focus_changes_total",
		Help:      "Selection state transitions",
	}, []string{"transition"}) // transition: selected, replaced, cleared, noop

	pm.unknownCourses = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "curriculum",
		Name:      "unknown_course_total",
		Help:      "Operations that referenced a course id absent from the graph",
	})

	pm.corruptState = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "curriculum",
		Name:      "corrupt_state_total",
		Help:      "Persisted completed-sets that could not be decoded and were reset",
	})

	pm.redraws = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "curriculum",
		Name:      "viewport_redraws_total",
		Help:      "Debounced viewport redraws that ran",
	})

	return pm
}

func (pm *PrometheusMetrics) isEnabled() bool {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.enabled
}

// RecordToggle counts a toggle. completed is the new flag value.
func (pm *PrometheusMetrics) RecordToggle(completed bool) {
	if !pm.isEnabled() {
		return
	}

	action := "uncompleted"
	if completed {
		action = "completed"
	}
	pm.toggles.WithLabelValues(action).Inc()
}

// RecordRecompute records an availability recomputation and the resulting
// set sizes.
func (pm *PrometheusMetrics) RecordRecompute(latency time.Duration, completed, available int) {
	if !pm.isEnabled() {
		return
	}

	pm.recomputeLatency.Observe(float64(latency.Microseconds()) / 1000)
	pm.completedCourses.Set(float64(completed))
	pm.availableCourses.Set(float64(available))
}

// RecordFocusChange counts a selection transition.
func (pm *PrometheusMetrics) RecordFocusChange(transition string) {
	if !pm.isEnabled() {
		return
	}

	pm.focusChanges.WithLabelValues(transition).Inc()
}

// IncrementUnknownCourse counts an operation naming a missing course.
func (pm *PrometheusMetrics) IncrementUnknownCourse() {
	if !pm.isEnabled() {
		return
	}

	pm.unknownCourses.Inc()
}

// IncrementCorruptState counts a persisted value that failed to decode.
func (pm *PrometheusMetrics) IncrementCorruptState() {
	if !pm.isEnabled() {
		return
	}

	pm.corruptState.Inc()
}

// IncrementRedraws counts a debounced viewport redraw.
func (pm *PrometheusMetrics) IncrementRedraws() {
	if !pm.isEnabled() {
		return
	}

	pm.redraws.Inc()
}

// Disable temporarily disables metric recording (useful for testing).
func (pm *PrometheusMetrics) Disable() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.enabled = false
}

// Enable re-enables metric recording after Disable().
func (pm *PrometheusMetrics) Enable() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.enabled = true
}

// Reset zeroes the gauges. Counters and histograms are cumulative and are
// left as they are.
func (pm *PrometheusMetrics) Reset() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.completedCourses.Set(0)
	pm.availableCourses.Set(0)
}
