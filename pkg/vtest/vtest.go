package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/kite/pkg/dom/memdom"
	"github.com/vango-dev/kite/pkg/kite"
	"github.com/vango-dev/kite/pkg/render"
	"github.com/vango-dev/kite/pkg/vdom"
)

// DefaultMaxFrames bounds Settle so a component that schedules a re-render
// from every render fails the test instead of hanging it.
const DefaultMaxFrames = 100

// Harness mounts components into an in-memory document.
type Harness struct {
	t testing.TB

	Doc     *memdom.Document
	Root    *memdom.Node
	Frames  *kite.ManualFrames
	Runtime *kite.Runtime

	maxFrames int
	tree      *vdom.VNode
	errs      []error
}

type config struct {
	rootTag   string
	maxFrames int
	runtime   []kite.Option
}

// Option configures a Harness.
type Option func(*config)

// WithRuntimeOptions passes options to kite.New. They are applied after the
// harness's own frames and error hook, so they can replace them.
func WithRuntimeOptions(opts ...kite.Option) Option {
	return func(c *config) {
		c.runtime = append(c.runtime, opts...)
	}
}

// WithMaxFrames sets the frame budget of Settle.
func WithMaxFrames(n int) Option {
	return func(c *config) {
		c.maxFrames = n
	}
}

// WithRootTag sets the tag of the container element. The default is div.
func WithRootTag(tag string) Option {
	return func(c *config) {
		c.rootTag = tag
	}
}

// New creates a harness with an empty container.
func New(t testing.TB, opts ...Option) *Harness {
	t.Helper()
	cfg := config{rootTag: "div", maxFrames: DefaultMaxFrames}
	for _, opt := range opts {
		opt(&cfg)
	}

	doc := memdom.NewDocument()
	h := &Harness{
		t:         t,
		Doc:       doc,
		Root:      doc.Element(cfg.rootTag),
		Frames:    kite.NewManualFrames(),
		maxFrames: cfg.maxFrames,
	}
	runtimeOpts := append([]kite.Option{
		kite.WithFrames(h.Frames),
		kite.WithOnError(func(err error) { h.errs = append(h.errs, err) }),
	}, cfg.runtime...)
	h.Runtime = kite.New(doc, runtimeOpts...)
	return h
}

// Mount schedules v into the container and settles.
func (h *Harness) Mount(v *vdom.VNode) *Harness {
	h.t.Helper()
	h.tree = v
	h.Runtime.Mount(v, h.Root)
	h.Settle()
	return h
}

// Render reconciles v into the container synchronously, against whatever
// was mounted before, and returns the errors no handler took. It does not
// run passive effects; call Settle for that.
func (h *Harness) Render(v *vdom.VNode) error {
	h.tree = v
	return h.Runtime.MountNow(v, h.Root)
}

// Rerender renders the mounted tree again. With unchanged nodes nothing is
// written to the document.
func (h *Harness) Rerender() error {
	return h.Runtime.MountNow(h.tree, h.Root)
}

// Unmount tears the mounted tree down.
func (h *Harness) Unmount() {
	h.Runtime.Unmount(h.Root)
	h.tree = nil
}

// Flush runs one frame and returns the number of callbacks it ran.
func (h *Harness) Flush() int {
	return h.Frames.Flush()
}

// Settle runs frames until none are pending and returns how many ran. It
// fails the test if the frame budget runs out first.
func (h *Harness) Settle() int {
	h.t.Helper()
	n := h.Frames.FlushAll(h.maxFrames)
	if h.Frames.Pending() > 0 {
		h.t.Fatalf("vtest: frames still pending after %d frames", n)
	}
	return n
}

// HTML returns the markup inside the container.
func (h *Harness) HTML() string {
	return render.InnerHTML(h.Root)
}

// Text returns the text content of the container.
func (h *Harness) Text() string {
	return h.Root.TextContent()
}

// Errors returns the errors reported by the runtime so far.
func (h *Harness) Errors() []error {
	return h.errs
}

// Mutations returns the mutation log as strings.
func (h *Harness) Mutations() []string {
	return memdom.Strings(h.Doc.Mutations())
}

// ResetMutations clears the mutation log.
func (h *Harness) ResetMutations() {
	h.Doc.ResetMutations()
}

// ByID returns the element with the given id, failing the test if there is
// none.
func (h *Harness) ByID(id string) *memdom.Node {
	h.t.Helper()
	n := h.Root.ByID(id)
	if n == nil {
		h.t.Fatalf("vtest: no element with id %q in:\n%s", id, truncate(h.HTML(), 500))
	}
	return n
}

// Click dispatches a click on the element with the given id and settles.
func (h *Harness) Click(id string) {
	h.t.Helper()
	h.Dispatch(id, "click", nil)
}

// Dispatch dispatches an event on the element with the given id and
// settles.
func (h *Harness) Dispatch(id, eventType string, data any) *memdom.Event {
	h.t.Helper()
	ev := h.ByID(id).Dispatch(eventType, data)
	h.Settle()
	return ev
}

// Input sets the value property of a form control and dispatches input.
func (h *Harness) Input(id, value string) {
	h.t.Helper()
	n := h.ByID(id)
	n.SetProperty("value", value)
	n.Dispatch("input", value)
	h.Settle()
}

// ExpectHTML asserts the markup inside the container.
func (h *Harness) ExpectHTML(want string) {
	h.t.Helper()
	if got := h.HTML(); got != want {
		h.t.Errorf("rendered HTML mismatch\ngot:  %s\nwant: %s", got, want)
	}
}

// ExpectContains asserts that the markup contains expected.
func (h *Harness) ExpectContains(expected string) {
	h.t.Helper()
	if html := h.HTML(); !strings.Contains(html, expected) {
		h.t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that the markup does not contain unexpected.
func (h *Harness) ExpectNotContains(unexpected string) {
	h.t.Helper()
	if html := h.HTML(); strings.Contains(html, unexpected) {
		h.t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectNoErrors asserts that the runtime reported no errors.
func (h *Harness) ExpectNoErrors() {
	h.t.Helper()
	for _, err := range h.errs {
		h.t.Errorf("unexpected runtime error: %v", err)
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
