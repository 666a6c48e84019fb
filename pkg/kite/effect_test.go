package kite

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	kerrors "github.com/vango-dev/kite/internal/errors"
	"github.com/vango-dev/kite/pkg/vdom"
)

func TestEffectDeps(t *testing.T) {
	tests := []struct {
		name    string
		deps    func(dep int) []any
		renders []int
		want    []string
	}{
		{
			name:    "nil deps run after every render",
			deps:    func(int) []any { return nil },
			renders: []int{1, 1, 2},
			want:    []string{"run 1", "cleanup 1", "run 1", "cleanup 1", "run 2", "cleanup 2"},
		},
		{
			name:    "empty deps run once",
			deps:    func(int) []any { return Deps() },
			renders: []int{1, 1, 2},
			want:    []string{"run 1", "cleanup 1"},
		},
		{
			name:    "values run when they change",
			deps:    func(d int) []any { return Deps(d) },
			renders: []int{1, 1, 2, 2},
			want:    []string{"run 1", "cleanup 1", "run 2", "cleanup 2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log []string
			comp := Define("Effect", func(c *Ctx, props vdom.Props) *vdom.VNode {
				d := props.Get("dep").(int)
				UseEffect(c, func() Cleanup {
					log = append(log, fmt.Sprintf("run %d", d))
					return func() { log = append(log, fmt.Sprintf("cleanup %d", d)) }
				}, tt.deps(d))
				return nil
			})

			f := newFixture(t)
			for _, d := range tt.renders {
				f.mustRender(C(comp, vdom.Props{"dep": d}))
				f.settle()
			}
			f.mustRender()
			f.settle()

			if diff := cmp.Diff(tt.want, log); diff != "" {
				t.Errorf("effect log (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPassiveEffectsRunOnNextFrame(t *testing.T) {
	ran := false
	comp := Define("Passive", func(c *Ctx, props vdom.Props) *vdom.VNode {
		UseEffect(c, func() Cleanup {
			ran = true
			return nil
		}, Deps())
		return nil
	})

	f := newFixture(t)
	f.mustRender(C(comp, nil))
	if ran {
		t.Fatal("passive effect ran during the render pass")
	}
	f.frames.Flush()
	if !ran {
		t.Fatal("passive effect did not run on the next frame")
	}
}

func TestLayoutEffectsRunBeforeRenderReturns(t *testing.T) {
	var log []string
	child := Define("Child", func(c *Ctx, props vdom.Props) *vdom.VNode {
		ref := UseRef(c, 0)
		UseLayoutEffect(c, func() Cleanup {
			attached := ref.Node() != nil && ref.Node().ParentNode() != nil
			log = append(log, fmt.Sprintf("child layout attached=%v", attached))
			return nil
		}, Deps())
		return vdom.Span("child")
	})
	parent := Define("Parent", func(c *Ctx, props vdom.Props) *vdom.VNode {
		UseLayoutEffect(c, func() Cleanup {
			log = append(log, "parent layout")
			return nil
		}, Deps())
		UseEffect(c, func() Cleanup {
			log = append(log, "parent passive")
			return nil
		}, Deps())
		return vdom.Div(C(child, nil))
	})

	f := newFixture(t)
	f.mustRender(C(parent, nil))
	want := []string{"child layout attached=true", "parent layout"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("after Render (-want +got):\n%s", diff)
	}

	f.settle()
	want = append(want, "parent passive")
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("after frame (-want +got):\n%s", diff)
	}
}

func TestEffectHookKindMismatch(t *testing.T) {
	comp := Define("Switch", func(c *Ctx, props vdom.Props) *vdom.VNode {
		fn := func() Cleanup { return nil }
		if props.Get("layout") == true {
			UseLayoutEffect(c, fn, nil)
		} else {
			UseEffect(c, fn, nil)
		}
		return nil
	})

	f := newFixture(t)
	f.mustRender(C(comp, nil))
	if err := f.render(C(comp, vdom.Props{"layout": true})); !kerrors.HasCode(err, "K002") {
		t.Errorf("err = %v, want K002", err)
	}
}

func TestCleanupRunsExactlyOnce(t *testing.T) {
	cleanups := 0
	comp := Define("Once", func(c *Ctx, props vdom.Props) *vdom.VNode {
		UseEffect(c, func() Cleanup {
			return func() { cleanups++ }
		}, Deps())
		UseLayoutEffect(c, func() Cleanup {
			return func() { cleanups++ }
		}, Deps())
		return vdom.P("once")
	})

	f := newFixture(t)
	f.mustRender(vdom.Div(C(comp, nil)))
	f.settle()
	f.mustRender(vdom.Div(C(comp, nil)))
	f.settle()
	if cleanups != 0 {
		t.Fatalf("cleanups ran %d times before unmount", cleanups)
	}

	f.mustRender(vdom.Div())
	f.settle()
	f.mustRender(vdom.Div())
	f.settle()
	if cleanups != 2 {
		t.Errorf("cleanups = %d, want 2", cleanups)
	}
}

func TestCleanupPanicIsSwallowed(t *testing.T) {
	comp := Define("BadCleanup", func(c *Ctx, props vdom.Props) *vdom.VNode {
		UseLayoutEffect(c, func() Cleanup {
			return func() { panic("cleanup failed") }
		}, Deps())
		return nil
	})

	f := newFixture(t)
	f.mustRender(C(comp, nil))
	f.mustRender()
	f.settle()
	if len(f.errs) != 0 {
		t.Errorf("errors = %v, want none", f.errs)
	}
	f.expectHTML("")
}

func TestEffectsOfUnmountedInstanceAreDropped(t *testing.T) {
	ran := false
	comp := Define("Gone", func(c *Ctx, props vdom.Props) *vdom.VNode {
		UseEffect(c, func() Cleanup {
			ran = true
			return nil
		}, nil)
		return nil
	})

	f := newFixture(t)
	f.mustRender(C(comp, nil))
	f.mustRender()
	f.settle()
	if ran {
		t.Error("effect of an unmounted instance ran")
	}
}

func TestUpdatesToUnmountedInstanceAreIgnored(t *testing.T) {
	var set *Evolver[int]
	renders := 0
	comp := Define("Dead", func(c *Ctx, props vdom.Props) *vdom.VNode {
		renders++
		_, set = UseState(c, 0)
		return nil
	})

	f := newFixture(t)
	f.mustRender(C(comp, nil))

	// Queued before unmount: the frame finds a dead instance.
	set.Set(1)
	f.mustRender()
	f.settle()

	// After unmount: nothing is queued at all.
	set.Set(2)
	if n := f.frames.Pending(); n != 0 {
		t.Errorf("update to a dead instance queued %d frames", n)
	}
	if renders != 1 || len(f.errs) != 0 {
		t.Errorf("renders = %d, errors = %v", renders, f.errs)
	}
}

func TestEffectSetsStateRerenders(t *testing.T) {
	comp := Define("Loader", func(c *Ctx, props vdom.Props) *vdom.VNode {
		data, set := UseState(c, "loading")
		UseEffect(c, func() Cleanup {
			set.Set("loaded")
			return nil
		}, Deps())
		return vdom.Text(data)
	})

	f := newFixture(t)
	f.mustRender(C(comp, nil))
	f.expectHTML("loading")
	f.settle()
	f.expectHTML("loaded")
}
