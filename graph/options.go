package graph

import (
	"time"

	"github.com/dshills/curriculum-go/graph/emit"
	"github.com/dshills/curriculum-go/graph/store"
)

// DefaultStorageKey is the store key holding the completed-set.
const DefaultStorageKey = "curriculum_completed"

// Option is a functional option for configuring a Tracker.
//
// Example:
//
//	tracker, err := graph.New(specs,
//	    graph.WithStore(st),
//	    graph.WithEmitter(emit.NewLogEmitter(os.Stderr, false)),
//	    graph.WithDebounceWindow(100*time.Millisecond),
//	)
type Option func(*trackerConfig) error

type trackerConfig struct {
	store      store.Store
	storageKey string
	emitter    emit.Emitter
	metrics    *PrometheusMetrics
	sessionID  string
	window     time.Duration
	redraw     func(Relations)
	after      afterFunc
}

func defaultConfig() trackerConfig {
	return trackerConfig{
		storageKey: DefaultStorageKey,
		window:     DefaultDebounceWindow,
		after:      realAfterFunc,
	}
}

// WithStore persists the completed-set through st.
//
// Default: an in-memory store, so progress lasts only as long as the
// tracker.
func WithStore(st store.Store) Option {
	return func(cfg *trackerConfig) error {
		if st == nil {
			return &CurriculumError{Message: "store cannot be nil", Code: "INVALID_OPTION"}
		}
		cfg.store = st
		return nil
	}
}

// WithStorageKey sets the key under which the completed-set is stored.
//
// Default: DefaultStorageKey. Use distinct keys to keep several curricula in
// one store.
func WithStorageKey(key string) Option {
	return func(cfg *trackerConfig) error {
		if key == "" {
			return &CurriculumError{Message: "storage key cannot be empty", Code: "INVALID_OPTION"}
		}
		cfg.storageKey = key
		return nil
	}
}

// WithEmitter sends tracker events to e.
//
// Default: emit.NullEmitter.
func WithEmitter(e emit.Emitter) Option {
	return func(cfg *trackerConfig) error {
		cfg.emitter = e
		return nil
	}
}

// WithMetrics enables Prometheus metrics collection.
//
// Example:
//
//	registry := prometheus.NewRegistry()
//	tracker, err := graph.New(specs, graph.WithMetrics(graph.NewPrometheusMetrics(registry)))
func WithMetrics(metrics *PrometheusMetrics) Option {
	return func(cfg *trackerConfig) error {
		cfg.metrics = metrics
		return nil
	}
}

// WithSessionID labels emitted events. Default: a random UUID.
func WithSessionID(id string) Option {
	return func(cfg *trackerConfig) error {
		cfg.sessionID = id
		return nil
	}
}

// WithDebounceWindow sets the quiet period before a viewport redraw runs.
//
// Default: 200ms.
func WithDebounceWindow(d time.Duration) Option {
	return func(cfg *trackerConfig) error {
		if d <= 0 {
			return &CurriculumError{Message: "debounce window must be positive", Code: "INVALID_OPTION"}
		}
		cfg.window = d
		return nil
	}
}

// WithRedraw registers the callback that receives the focused course's
// relations after a debounced viewport change. It is called from a timer
// goroutine and never while the tracker lock is held.
func WithRedraw(fn func(Relations)) Option {
	return func(cfg *trackerConfig) error {
		cfg.redraw = fn
		return nil
	}
}

// withAfterFunc replaces the timer source for deterministic tests.
func withAfterFunc(fn afterFunc) Option {
	return func(cfg *trackerConfig) error {
		cfg.after = fn
		return nil
	}
}
