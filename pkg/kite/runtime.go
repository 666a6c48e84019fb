package kite

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/vango-dev/kite/internal/config"
	"github.com/vango-dev/kite/pkg/dom"
	"github.com/vango-dev/kite/pkg/telemetry"
	"github.com/vango-dev/kite/pkg/vdom"
)

// Runtime reconciles virtual trees into a document and runs component
// instances. A Runtime is not safe for concurrent use; all calls, including
// event handlers and frame callbacks, must happen on one goroutine.
type Runtime struct {
	doc     dom.Document
	frames  FrameScheduler
	logger  *slog.Logger
	metrics *telemetry.Metrics
	tracer  *telemetry.Tracer
	onError func(error)
	debug   bool
	ctx     context.Context

	roots []*root
}

// root is a tree mounted into a container element.
type root struct {
	el   dom.Node
	tree []*vdom.VNode
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithFrames sets the frame scheduler. The default is requestAnimationFrame
// in the browser and a ManualFrames elsewhere.
func WithFrames(frames FrameScheduler) Option {
	return func(r *Runtime) {
		r.frames = frames
	}
}

// WithMetrics sets the Prometheus collectors.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(r *Runtime) {
		r.metrics = m
	}
}

// WithTracer sets the span tracer.
func WithTracer(t *telemetry.Tracer) Option {
	return func(r *Runtime) {
		r.tracer = t
	}
}

// WithDebug logs every component render at debug level.
func WithDebug(debug bool) Option {
	return func(r *Runtime) {
		r.debug = debug
	}
}

// WithOnError sets the hook receiving errors that escaped every error
// handler during Mount and frame callbacks. The default logs them.
func WithOnError(fn func(error)) Option {
	return func(r *Runtime) {
		r.onError = fn
	}
}

// WithContext sets the parent context of render spans.
func WithContext(ctx context.Context) Option {
	return func(r *Runtime) {
		r.ctx = ctx
	}
}

// WithConfig applies a kite.json configuration: debug mode, a stderr logger
// at the configured level, and metrics and tracing when enabled. Options
// given after it take precedence.
func WithConfig(cfg *config.Config) Option {
	return func(r *Runtime) {
		if cfg == nil {
			return
		}
		r.debug = cfg.Debug
		r.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
		if cfg.Metrics.Enabled {
			r.metrics = telemetry.NewMetrics(telemetry.WithNamespace(cfg.Metrics.Namespace))
		}
		if cfg.Tracing.Enabled {
			r.tracer = telemetry.NewTracer(telemetry.WithTracerName(cfg.Tracing.TracerName))
		}
	}
}

// New creates a Runtime writing into doc.
func New(doc dom.Document, opts ...Option) *Runtime {
	r := &Runtime{doc: doc}
	for _, opt := range opts {
		opt(r)
	}
	if r.frames == nil {
		r.frames = defaultFrames()
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.ctx == nil {
		r.ctx = context.Background()
	}
	return r
}

// Document returns the document the runtime writes into.
func (r *Runtime) Document() dom.Document { return r.doc }

// Frames returns the frame scheduler.
func (r *Runtime) Frames() FrameScheduler { return r.frames }

// Mount renders v into el on the next frame. Mounting again into the same
// element reconciles against the previously mounted tree. Errors that no
// handler took are reported through WithOnError.
func (r *Runtime) Mount(v *vdom.VNode, el dom.Node) {
	r.frames.RequestFrame(func() {
		if err := r.MountNow(v, el); err != nil {
			r.report(err)
		}
	})
}

// MountNow renders v into el synchronously.
func (r *Runtime) MountNow(v *vdom.VNode, el dom.Node) error {
	rt := r.rootFor(el)
	var prev []*vdom.VNode
	if rt != nil {
		prev = rt.tree
	} else {
		rt = &root{el: el}
		r.roots = append(r.roots, rt)
	}
	next := []*vdom.VNode{v}
	err := r.Render(el, next, prev)
	rt.tree = next
	return err
}

// Unmount tears down the tree mounted into el: cleanups run, instances are
// marked dead and the DOM nodes are removed. It reports whether a tree was
// mounted there.
func (r *Runtime) Unmount(el dom.Node) bool {
	for i, rt := range r.roots {
		if !dom.SameNode(rt.el, el) {
			continue
		}
		r.roots = append(r.roots[:i], r.roots[i+1:]...)
		for _, v := range rt.tree {
			nodes := v.DOMNodes()
			r.unmount(v)
			r.removeNodes(nodes)
		}
		return true
	}
	return false
}

// Mounted returns the tree currently mounted into el, or nil.
func (r *Runtime) Mounted(el dom.Node) *vdom.VNode {
	if rt := r.rootFor(el); rt != nil && len(rt.tree) > 0 {
		return rt.tree[0]
	}
	return nil
}

func (r *Runtime) rootFor(el dom.Node) *root {
	for _, rt := range r.roots {
		if dom.SameNode(rt.el, el) {
			return rt
		}
	}
	return nil
}

// Render reconciles next against prev as children of parent and returns
// once the DOM reflects next and layout effects have run. prev must be the
// list previously rendered into parent (nil for a first render). Render
// with the same list as next and prev issues no DOM mutation.
//
// Errors that escaped every error handler are joined and returned; the
// failing instances render nothing.
func (r *Runtime) Render(parent dom.Node, next, prev []*vdom.VNode) error {
	return r.runPass("kite.render", func(p *pass) {
		end := runEnd(prev)
		r.reconcileChildren(p, scopeFor(parent, nil), next, prev, end)
	})
}

// pass accumulates the work of one reconciliation.
type pass struct {
	layout  []pendingEffect
	passive []pendingEffect
	swaps   []*boundarySwap
	errs    []error
}

func (r *Runtime) runPass(name string, fn func(p *pass)) error {
	start := time.Now()
	_, span := r.tracer.Start(r.ctx, name)

	p := &pass{}
	fn(p)
	// Fallbacks and layout effects can each produce more of the other.
	for {
		r.applyBoundaries(p)
		if len(p.layout) == 0 {
			break
		}
		r.flushLayout(p)
	}
	r.schedulePassive(p.passive)

	err := errors.Join(p.errs...)
	r.metrics.RenderPass(time.Since(start))
	telemetry.End(span, err)
	return err
}

func (r *Runtime) report(err error) {
	if r.onError != nil {
		r.onError(err)
		return
	}
	r.logger.Error("kite: unhandled error", "error", err)
}
