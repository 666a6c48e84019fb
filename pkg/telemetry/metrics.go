package telemetry

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsConfig configures the runtime collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "kite").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render pass duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the runtime collectors.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "kite",
		// Render passes are sub-frame work; DefBuckets starts at 5ms.
		Buckets:  []float64{.0001, .0005, .001, .0025, .005, .01, .016, .033, .1, .5},
		Registry: prometheus.DefaultRegisterer,
	}
}

// Effect kinds reported by EffectRun.
const (
	EffectLayout  = "layout"
	EffectPassive = "passive"
	EffectCleanup = "cleanup"
)

// DOM operation labels reported by DOMOp.
const (
	OpCreate   = "create"
	OpInsert   = "insert"
	OpReplace  = "replace"
	OpRemove   = "remove"
	OpText     = "text"
	OpAttr     = "attr"
	OpProp     = "prop"
	OpListener = "listener"
)

// Metrics holds the runtime collectors.
type Metrics struct {
	renderPasses     prometheus.Counter
	renderDuration   prometheus.Histogram
	componentRenders *prometheus.CounterVec
	effectRuns       *prometheus.CounterVec
	errors           *prometheus.CounterVec
	domOps           *prometheus.CounterVec
	rerenders        *prometheus.CounterVec
}

// NewMetrics creates and registers the runtime collectors. Collectors with
// the same options already registered on the registry are reused, so several
// runtimes built from one configuration share them.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	reg := config.Registry

	return &Metrics{
		renderPasses: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_passes_total",
			Help:        "Total number of reconciliation passes",
			ConstLabels: config.ConstLabels,
		})),

		renderDuration: register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_pass_duration_seconds",
			Help:        "Reconciliation pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		})),

		componentRenders: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "component_renders_total",
			Help:        "Total number of component render function calls",
			ConstLabels: config.ConstLabels,
		}, []string{"component"})),

		effectRuns: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_runs_total",
			Help:        "Total number of effect and cleanup invocations",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"})),

		errors: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "errors_total",
			Help:        "Total number of errors caught by the runtime",
			ConstLabels: config.ConstLabels,
		}, []string{"category", "handled"})),

		domOps: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dom_operations_total",
			Help:        "Total number of DOM writes issued by the reconciler",
			ConstLabels: config.ConstLabels,
		}, []string{"op"})),

		rerenders: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "rerenders_total",
			Help:        "State-driven component re-renders by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"})),
	}
}

// register adds c to reg, returning the collector already registered under
// the same descriptors instead when there is one.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if reg == nil {
		return c
	}
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// RenderPass records one reconciliation pass.
func (m *Metrics) RenderPass(d time.Duration) {
	if m == nil {
		return
	}
	m.renderPasses.Inc()
	m.renderDuration.Observe(d.Seconds())
}

// ComponentRender records one call of a component render function.
func (m *Metrics) ComponentRender(name string) {
	if m == nil {
		return
	}
	m.componentRenders.WithLabelValues(name).Inc()
}

// EffectRun records an effect or cleanup invocation.
func (m *Metrics) EffectRun(kind string) {
	if m == nil {
		return
	}
	m.effectRuns.WithLabelValues(kind).Inc()
}

// Error records a caught error by category and whether a handler took it.
func (m *Metrics) Error(category string, handled bool) {
	if m == nil {
		return
	}
	h := "false"
	if handled {
		h = "true"
	}
	m.errors.WithLabelValues(category, h).Inc()
}

// DOMOp records one DOM write.
func (m *Metrics) DOMOp(op string) {
	if m == nil {
		return
	}
	m.domOps.WithLabelValues(op).Inc()
}

// Rerender records the outcome of a scheduled re-render: "rendered",
// "dead" or "reentrant".
func (m *Metrics) Rerender(outcome string) {
	if m == nil {
		return
	}
	m.rerenders.WithLabelValues(outcome).Inc()
}
