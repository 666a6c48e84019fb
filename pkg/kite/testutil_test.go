package kite

import (
	"testing"

	"github.com/vango-dev/kite/pkg/dom/memdom"
	"github.com/vango-dev/kite/pkg/render"
	"github.com/vango-dev/kite/pkg/vdom"
)

// fixture renders into a detached div with manual frames.
type fixture struct {
	t      *testing.T
	doc    *memdom.Document
	root   *memdom.Node
	frames *ManualFrames
	rt     *Runtime
	tree   []*vdom.VNode
	errs   []error
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	doc := memdom.NewDocument()
	f := &fixture{
		t:      t,
		doc:    doc,
		root:   doc.Element("div"),
		frames: NewManualFrames(),
	}
	opts = append([]Option{
		WithFrames(f.frames),
		WithOnError(func(err error) { f.errs = append(f.errs, err) }),
	}, opts...)
	f.rt = New(doc, opts...)
	return f
}

// render reconciles next against the previous render.
func (f *fixture) render(next ...*vdom.VNode) error {
	err := f.rt.Render(f.root, next, f.tree)
	f.tree = next
	return err
}

// mustRender renders and fails the test on an unhandled error.
func (f *fixture) mustRender(next ...*vdom.VNode) {
	f.t.Helper()
	if err := f.render(next...); err != nil {
		f.t.Fatalf("Render: %v", err)
	}
}

func (f *fixture) html() string {
	return render.InnerHTML(f.root)
}

func (f *fixture) expectHTML(want string) {
	f.t.Helper()
	if got := f.html(); got != want {
		f.t.Errorf("html mismatch\ngot:  %s\nwant: %s", got, want)
	}
}

func (f *fixture) mutations() []string {
	return memdom.Strings(f.doc.Mutations())
}

func (f *fixture) settle() {
	f.t.Helper()
	f.frames.FlushAll(50)
	if n := f.frames.Pending(); n > 0 {
		f.t.Fatalf("%d frame callbacks still pending", n)
	}
}

// recovered runs fn and returns what it panicked with.
func recovered(fn func()) (rec any) {
	defer func() { rec = recover() }()
	fn()
	return nil
}
