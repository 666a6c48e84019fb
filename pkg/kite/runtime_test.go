package kite

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/kite/internal/config"
	"github.com/vango-dev/kite/pkg/dom/memdom"
	"github.com/vango-dev/kite/pkg/telemetry"
	"github.com/vango-dev/kite/pkg/vdom"
)

var mountCounter = Define("MountCounter", func(c *Ctx, props vdom.Props) *vdom.VNode {
	n, set := UseState(c, 0)
	UseEffect(c, func() Cleanup {
		return func() {
			if log, ok := props.Get("log").(*[]string); ok {
				*log = append(*log, "cleanup")
			}
		}
	}, Deps())
	return vdom.Button(
		vdom.ID("inc"),
		vdom.OnClick(func() { set.Update(func(n int) int { return n + 1 }) }),
		vdom.Textf("%d", n),
	)
})

func TestMountAndUnmount(t *testing.T) {
	var log []string
	f := newFixture(t)
	f.rt.Mount(C(mountCounter, vdom.Props{"log": &log}), f.root)
	if f.html() != "" {
		t.Fatal("Mount rendered synchronously")
	}
	f.settle()
	f.expectHTML(`<button id="inc">0</button>`)
	if f.rt.Mounted(f.root) == nil {
		t.Error("Mounted() = nil after mount")
	}

	f.root.ByID("inc").Click()
	f.settle()
	f.expectHTML(`<button id="inc">1</button>`)

	if !f.rt.Unmount(f.root) {
		t.Fatal("Unmount() = false")
	}
	f.expectHTML("")
	if len(log) != 1 {
		t.Errorf("cleanup log = %v, want one cleanup", log)
	}
	if f.rt.Unmount(f.root) {
		t.Error("second Unmount() = true")
	}
	if f.rt.Mounted(f.root) != nil {
		t.Error("Mounted() != nil after unmount")
	}
}

func TestMountAgainReconciles(t *testing.T) {
	f := newFixture(t)
	if err := f.rt.MountNow(C(mountCounter, nil), f.root); err != nil {
		t.Fatal(err)
	}
	f.root.ByID("inc").Click()
	f.settle()

	button := f.root.ByID("inc")
	if err := f.rt.MountNow(C(mountCounter, nil), f.root); err != nil {
		t.Fatal(err)
	}
	f.expectHTML(`<button id="inc">1</button>`)
	if f.root.ByID("inc") != button {
		t.Error("mounting again replaced the element")
	}
}

func TestWithConfig(t *testing.T) {
	cfg := config.New()
	cfg.Debug = true
	cfg.LogLevel = "debug"

	rt := New(nil, WithConfig(cfg), WithFrames(NewManualFrames()))
	if !rt.debug {
		t.Error("debug not applied")
	}
	if !rt.logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("log level not applied")
	}
	if rt.metrics != nil || rt.tracer != nil {
		t.Error("disabled metrics and tracing must stay off")
	}

	rt = New(nil, WithConfig(nil))
	if rt.debug || rt.logger == nil || rt.frames == nil {
		t.Error("WithConfig(nil) must leave the defaults")
	}
}

func TestRuntimesShareConfiguredMetrics(t *testing.T) {
	cfg := config.New()
	cfg.Metrics.Enabled = true
	cfg.Metrics.Namespace = "kite_shared_runtime_test"

	var rts []*Runtime
	for i := 0; i < 2; i++ {
		rt := New(memdom.NewDocument(), WithConfig(cfg), WithFrames(NewManualFrames()))
		if rt.metrics == nil {
			t.Fatalf("runtime %d: metrics not enabled", i)
		}
		rts = append(rts, rt)
	}

	for _, rt := range rts {
		root := rt.Document().(*memdom.Document).Element("div")
		if err := rt.MountNow(vdom.P("hi"), root); err != nil {
			t.Fatal(err)
		}
	}

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	var passes float64
	for _, fam := range families {
		if fam.GetName() == "kite_shared_runtime_test_render_passes_total" {
			passes = fam.GetMetric()[0].GetCounter().GetValue()
		}
	}
	if passes != 2 {
		t.Errorf("render passes = %v, want 2 across both runtimes", passes)
	}
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f := newFixture(t, WithLogger(logger), WithDebug(true))

	var set *Evolver[int]
	comp := Define("Logged", func(c *Ctx, props vdom.Props) *vdom.VNode {
		_, set = UseState(c, 0)
		return nil
	})
	f.mustRender(C(comp, nil))
	set.Set(1)
	f.mustRender()
	f.settle()

	out := buf.String()
	for _, want := range []string{"kite: render", "component=Logged", "kite: re-render of unmounted instance dropped"} {
		if !strings.Contains(out, want) {
			t.Errorf("log does not contain %q:\n%s", want, out)
		}
	}
}

func TestUnhandledErrorsAreLoggedByDefault(t *testing.T) {
	var buf bytes.Buffer
	rt := New(nil, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	rt.report(context.Canceled)
	if !strings.Contains(buf.String(), "kite: unhandled error") {
		t.Errorf("log = %s", buf.String())
	}
}

// gatherCounter sums the counter samples of name whose label matches
// value, or every sample when label is empty.
func gatherCounter(t *testing.T, reg *prometheus.Registry, name, label, value string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	var total float64
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, m := range fam.GetMetric() {
			if label == "" || hasLabel(m.GetLabel(), label, value) {
				total += m.GetCounter().GetValue()
			}
		}
	}
	return total
}

func hasLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, lp := range labels {
		if lp.GetName() == name && lp.GetValue() == value {
			return true
		}
	}
	return false
}

func TestRuntimeMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	f := newFixture(t, WithMetrics(telemetry.NewMetrics(telemetry.WithRegistry(reg))))

	f.mustRender(C(mountCounter, nil))
	f.settle()
	f.root.ByID("inc").Click()
	f.settle()
	if err := f.render(C(bomb, nil)); err == nil {
		t.Fatal("Render() error = nil, want the unhandled render panic")
	}

	tests := []struct {
		name, label, value string
		want               float64
	}{
		{"kite_render_passes_total", "", "", 3},
		{"kite_component_renders_total", "component", "MountCounter", 2},
		{"kite_effect_runs_total", "kind", "passive", 1},
		{"kite_effect_runs_total", "kind", "cleanup", 1},
		{"kite_rerenders_total", "outcome", "rendered", 1},
		{"kite_errors_total", "handled", "false", 1},
		{"kite_dom_operations_total", "op", "replace", 1},
	}
	for _, tt := range tests {
		if got := gatherCounter(t, reg, tt.name, tt.label, tt.value); got != tt.want {
			t.Errorf("%s{%s=%q} = %v, want %v", tt.name, tt.label, tt.value, got, tt.want)
		}
	}
}

type spanRecorder struct {
	noop.Tracer
	names []string
}

func (r *spanRecorder) Start(ctx context.Context, name string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
	r.names = append(r.names, name)
	return ctx, noop.Span{}
}

type recorderProvider struct {
	noop.TracerProvider
	rec *spanRecorder
}

func (p recorderProvider) Tracer(string, ...trace.TracerOption) trace.Tracer { return p.rec }

func TestRuntimeSpans(t *testing.T) {
	rec := &spanRecorder{}
	tracer := telemetry.NewTracer(telemetry.WithTracerProvider(recorderProvider{rec: rec}))
	f := newFixture(t, WithTracer(tracer))

	f.mustRender(C(mountCounter, nil))
	f.root.ByID("inc").Click()
	f.settle()

	want := []string{"kite.render", "kite.rerender"}
	if strings.Join(rec.names, ",") != strings.Join(want, ",") {
		t.Errorf("spans = %v, want %v", rec.names, want)
	}
}
