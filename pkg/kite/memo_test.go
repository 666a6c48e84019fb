package kite

import (
	"testing"

	"github.com/vango-dev/kite/pkg/vdom"
)

func TestMemoSkipsEqualProps(t *testing.T) {
	renders := 0
	row := Memo(Define("Row", func(c *Ctx, props vdom.Props) *vdom.VNode {
		renders++
		return vdom.Li(vdom.Textf("%v", props.Get("label")))
	}), nil)

	f := newFixture(t)
	f.mustRender(vdom.Ul(C(row, vdom.Props{"label": "a"})))
	if renders != 1 {
		t.Fatalf("renders = %d, want 1", renders)
	}

	f.doc.ResetMutations()
	f.mustRender(vdom.Ul(C(row, vdom.Props{"label": "a"})))
	if renders != 1 {
		t.Errorf("equal props rendered again, renders = %d", renders)
	}
	if muts := f.mutations(); len(muts) != 0 {
		t.Errorf("skipped update wrote %v", muts)
	}

	f.mustRender(vdom.Ul(C(row, vdom.Props{"label": "b"})))
	if renders != 2 {
		t.Errorf("changed props did not render, renders = %d", renders)
	}
	f.expectHTML("<ul><li>b</li></ul>")
}

func TestMemoSkipsLayoutEffects(t *testing.T) {
	runs, cleanups := 0, 0
	row := Memo(Define("MeasuredRow", func(c *Ctx, props vdom.Props) *vdom.VNode {
		UseLayoutEffect(c, func() Cleanup {
			runs++
			return func() { cleanups++ }
		}, nil)
		return vdom.Li(vdom.Textf("%v", props.Get("label")))
	}), nil)

	steps := []struct {
		label        string
		runs, cleans int
	}{
		{"a", 1, 0},
		{"a", 1, 0},
		{"b", 2, 1},
		{"b", 2, 1},
		{"c", 3, 2},
	}
	f := newFixture(t)
	for i, step := range steps {
		f.mustRender(vdom.Ul(C(row, vdom.Props{"label": step.label})))
		if runs != step.runs || cleanups != step.cleans {
			t.Errorf("step %d (label %q): runs = %d, cleanups = %d, want %d and %d",
				i, step.label, runs, cleanups, step.runs, step.cleans)
		}
	}
	f.expectHTML("<ul><li>c</li></ul>")
}

func TestMemoRendersOnOwnStateChange(t *testing.T) {
	var set *Evolver[int]
	renders := 0
	counter := Memo(Define("MemoCounter", func(c *Ctx, props vdom.Props) *vdom.VNode {
		renders++
		n, s := UseState(c, 0)
		set = s
		return vdom.Textf("%d", n)
	}), nil)

	f := newFixture(t)
	f.mustRender(C(counter, nil))
	f.mustRender(C(counter, nil))
	if renders != 1 {
		t.Fatalf("renders = %d, want 1", renders)
	}

	set.Set(5)
	f.settle()
	if renders != 2 {
		t.Errorf("state change did not render, renders = %d", renders)
	}
	f.expectHTML("5")

	// Skipped parent updates keep the state and the hook slots intact.
	f.mustRender(C(counter, nil))
	set.Set(6)
	f.settle()
	f.expectHTML("6")
}

func TestMemoWithHandlerProps(t *testing.T) {
	renders := 0
	def := Define("Button", func(c *Ctx, props vdom.Props) *vdom.VNode {
		renders++
		return vdom.Button(vdom.OnClick(props.Get("onClick")), props.Get("label"))
	})
	byDefault := Memo(def, nil)
	ignoreHandlers := Memo(def, func(prev, next vdom.Props) bool {
		return prev.Get("label") == next.Get("label")
	})

	f := newFixture(t)
	for i := 0; i < 3; i++ {
		f.mustRender(
			C(byDefault, vdom.Props{"label": "x", "onClick": func() {}}),
			C(ignoreHandlers, vdom.Props{"label": "y", "onClick": func() {}}),
		)
	}
	// byDefault renders every time, ignoreHandlers once.
	if renders != 4 {
		t.Errorf("renders = %d, want 4", renders)
	}
}

func TestMemoIsADistinctComponent(t *testing.T) {
	def := Define("Plain", func(c *Ctx, props vdom.Props) *vdom.VNode {
		return vdom.Text("plain")
	})
	memo := Memo(def, nil)
	if memo == def || memo.Name() != def.Name() {
		t.Fatalf("Memo must return a new definition with the same name")
	}

	f := newFixture(t)
	f.mustRender(C(def, nil))
	first := f.tree[0].Link
	f.mustRender(C(memo, nil))
	if f.tree[0].Link == first {
		t.Error("switching to the memoized definition must remount")
	}
}

func TestShallowEqual(t *testing.T) {
	shared := map[string]int{"a": 1}
	slice := []int{1, 2}
	type point struct{ X, Y int }

	tests := []struct {
		name string
		a, b vdom.Props
		want bool
	}{
		{"both empty", nil, vdom.Props{}, true},
		{"same scalars", vdom.Props{"a": 1, "b": "x"}, vdom.Props{"a": 1, "b": "x"}, true},
		{"different value", vdom.Props{"a": 1}, vdom.Props{"a": 2}, false},
		{"different type", vdom.Props{"a": 1}, vdom.Props{"a": int64(1)}, false},
		{"extra key", vdom.Props{"a": 1}, vdom.Props{"a": 1, "b": 2}, false},
		{"renamed key", vdom.Props{"a": 1}, vdom.Props{"b": 1}, false},
		{"children ignored", vdom.Props{"a": 1, vdom.ChildrenProp: []*vdom.VNode{vdom.Text("x")}}, vdom.Props{"a": 1}, true},
		{"same map", vdom.Props{"m": shared}, vdom.Props{"m": shared}, true},
		{"equal maps", vdom.Props{"m": map[string]int{"a": 1}}, vdom.Props{"m": map[string]int{"a": 1}}, false},
		{"same slice", vdom.Props{"s": slice}, vdom.Props{"s": slice}, true},
		{"resliced", vdom.Props{"s": slice}, vdom.Props{"s": slice[:1]}, false},
		{"comparable struct", vdom.Props{"p": point{1, 2}}, vdom.Props{"p": point{1, 2}}, true},
		{"funcs", vdom.Props{"f": func() {}}, vdom.Props{"f": func() {}}, false},
		{"nil values", vdom.Props{"a": nil}, vdom.Props{"a": nil}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShallowEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("ShallowEqual() = %v, want %v", got, tt.want)
			}
		})
	}
}
