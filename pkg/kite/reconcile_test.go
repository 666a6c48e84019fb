package kite

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vango-dev/kite/pkg/dom"
	"github.com/vango-dev/kite/pkg/vdom"
)

var (
	spanComp = Define("SpanComp", func(c *Ctx, props vdom.Props) *vdom.VNode {
		return vdom.Span("comp")
	})
	pairComp = Define("PairComp", func(c *Ctx, props vdom.Props) *vdom.VNode {
		return vdom.Fragment(vdom.Text("p1"), vdom.Text("p2"))
	})
	labelItem = Define("LabelItem", func(c *Ctx, props vdom.Props) *vdom.VNode {
		label, _ := props.Get("label").(string)
		first, _ := UseState(c, label)
		return vdom.Li(vdom.Textf("%s:%s", label, first))
	})
)

func TestRenderSameTreeIsIdle(t *testing.T) {
	f := newFixture(t)
	tree := []*vdom.VNode{
		vdom.Div(vdom.ID("a"), vdom.Class("x"), vdom.OnClick(func() {}), vdom.P("text"), vdom.Nothing()),
		vdom.Fragment(vdom.Text("one"), C(pairComp, nil)),
		vdom.Fragment(),
		C(spanComp, nil),
	}
	f.mustRender(tree...)
	before := f.html()

	f.doc.ResetMutations()
	f.mustRender(tree...)
	if muts := f.mutations(); len(muts) != 0 {
		t.Errorf("re-rendering the same tree wrote %v", muts)
	}
	f.expectHTML(before)
}

func TestRenderEqualTreeIsIdle(t *testing.T) {
	build := func() []*vdom.VNode {
		return []*vdom.VNode{
			vdom.Ul(vdom.Class("list"),
				vdom.Li(vdom.Key(1), "one"),
				vdom.Li(vdom.Key(2), "two"),
			),
			C(pairComp, nil),
			vdom.Input(vdom.Type("checkbox"), vdom.Checked()),
		}
	}
	f := newFixture(t)
	f.mustRender(build()...)
	f.doc.ResetMutations()
	f.mustRender(build()...)
	if muts := f.mutations(); len(muts) != 0 {
		t.Errorf("re-rendering an equal tree wrote %v", muts)
	}
}

func TestFirstRender(t *testing.T) {
	f := newFixture(t)
	f.mustRender(
		vdom.H1(vdom.Class("title"), "Hello"),
		vdom.Fragment(vdom.Text("a"), vdom.Text("b")),
		vdom.Nothing(),
		C(spanComp, nil),
	)
	f.expectHTML(`<h1 class="title">Hello</h1>ab<!----><span>comp</span>`)
}

func TestReplacementMatrix(t *testing.T) {
	kinds := map[string]func() *vdom.VNode{
		"text":     func() *vdom.VNode { return vdom.Text("t") },
		"text2":    func() *vdom.VNode { return vdom.Text("t2") },
		"div":      func() *vdom.VNode { return vdom.Div(vdom.Class("d"), "div") },
		"span":     func() *vdom.VNode { return vdom.Span("span") },
		"nothing":  vdom.Nothing,
		"fragment": func() *vdom.VNode { return vdom.Fragment(vdom.Text("f1"), vdom.B("f2")) },
		"empty":    func() *vdom.VNode { return vdom.Fragment() },
		"spanComp": func() *vdom.VNode { return C(spanComp, nil) },
		"pairComp": func() *vdom.VNode { return C(pairComp, nil) },
	}
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)

	row := func(mid *vdom.VNode) []*vdom.VNode {
		return []*vdom.VNode{vdom.Text("<"), mid, vdom.Text(">")}
	}

	for _, from := range names {
		for _, to := range names {
			from, to := from, to
			t.Run(from+"->"+to, func(t *testing.T) {
				want := newFixture(t)
				want.mustRender(row(kinds[to]())...)

				f := newFixture(t)
				f.mustRender(row(kinds[from]())...)
				f.mustRender(row(kinds[to]())...)
				if diff := cmp.Diff(want.html(), f.html()); diff != "" {
					t.Errorf("html mismatch (-fresh +updated):\n%s", diff)
				}

				for _, v := range f.tree {
					for _, n := range v.DOMNodes() {
						if !dom.SameNode(n.ParentNode(), f.root) {
							t.Errorf("%s owns a node outside the container", v)
						}
					}
				}
				if got, want := len(f.root.Children()), countNodes(f.tree); got != want {
					t.Errorf("container has %d children, tree owns %d", got, want)
				}

				f.doc.ResetMutations()
				f.mustRender(row(kinds[to]())...)
				if muts := f.mutations(); len(muts) != 0 {
					t.Errorf("second render of %s wrote %v", to, muts)
				}
			})
		}
	}
}

func countNodes(tree []*vdom.VNode) int {
	n := 0
	for _, v := range tree {
		n += len(v.DOMNodes())
	}
	return n
}

func TestNothingToTextReplacesInPlace(t *testing.T) {
	f := newFixture(t)
	f.mustRender(vdom.Div(vdom.Nothing()))
	f.expectHTML("<div><!----></div>")

	f.doc.ResetMutations()
	f.mustRender(vdom.Div("text"))
	f.expectHTML("<div>text</div>")

	want := []string{"div replaceChild #text #comment"}
	if diff := cmp.Diff(want, f.mutations()); diff != "" {
		t.Errorf("mutations (-want +got):\n%s", diff)
	}
}

func TestTextUpdate(t *testing.T) {
	f := newFixture(t)
	f.mustRender(vdom.P("before"))
	f.doc.ResetMutations()
	f.mustRender(vdom.P("after"))

	want := []string{"#text setNodeValue after"}
	if diff := cmp.Diff(want, f.mutations()); diff != "" {
		t.Errorf("mutations (-want +got):\n%s", diff)
	}
}

func items(keyed bool, labels ...string) *vdom.VNode {
	kids := make([]*vdom.VNode, len(labels))
	for i, l := range labels {
		p := vdom.Props{"label": l}
		if keyed {
			p["key"] = l
		}
		kids[i] = C(labelItem, p)
	}
	return vdom.Ul(kids)
}

func TestUnkeyedChildrenKeepPositionalState(t *testing.T) {
	f := newFixture(t)
	f.mustRender(items(false, "a", "b"))
	f.mustRender(items(false, "b", "a"))
	f.expectHTML("<ul><li>b:a</li><li>a:b</li></ul>")
}

func TestKeyedChildrenKeepState(t *testing.T) {
	f := newFixture(t)
	f.mustRender(items(true, "a", "b"))

	f.doc.ResetMutations()
	f.mustRender(items(true, "b", "a"))
	f.expectHTML("<ul><li>b:b</li><li>a:a</li></ul>")

	want := []string{"ul insertBefore li li"}
	if diff := cmp.Diff(want, f.mutations()); diff != "" {
		t.Errorf("reorder mutations (-want +got):\n%s", diff)
	}
}

func TestKeyedRemoveAndInsert(t *testing.T) {
	f := newFixture(t)
	f.mustRender(items(true, "a", "b", "c"))

	f.doc.ResetMutations()
	f.mustRender(items(true, "a", "c", "d"))
	f.expectHTML("<ul><li>a:a</li><li>c:c</li><li>d:d</li></ul>")

	want := []string{
		"ul removeChild li",
		"li appendChild #text",
		"ul appendChild li",
	}
	if diff := cmp.Diff(want, f.mutations()); diff != "" {
		t.Errorf("mutations (-want +got):\n%s", diff)
	}
}

func TestKeyedShuffle(t *testing.T) {
	orders := [][]string{
		{"a", "b", "c", "d"},
		{"d", "c", "b", "a"},
		{"b", "d", "a"},
		{"e", "b", "f", "a", "d"},
		{"a"},
		{},
		{"c", "a"},
	}
	f := newFixture(t)
	for _, order := range orders {
		f.mustRender(items(true, order...))

		want := newFixture(t)
		want.mustRender(items(true, order...))
		if diff := cmp.Diff(want.html(), f.html()); diff != "" {
			t.Errorf("order %v (-want +got):\n%s", order, diff)
		}
	}
}

func TestFragmentRunReplacement(t *testing.T) {
	f := newFixture(t)
	f.mustRender(vdom.Text("a"), vdom.Fragment(vdom.B("1"), vdom.B("2"), vdom.B("3")), vdom.Text("z"))
	f.expectHTML("a<b>1</b><b>2</b><b>3</b>z")

	f.mustRender(vdom.Text("a"), vdom.Fragment(vdom.I("x")), vdom.Text("z"))
	f.expectHTML("a<i>x</i>z")

	f.mustRender(vdom.Text("a"), vdom.Fragment(), vdom.Text("z"))
	f.expectHTML("a<!---->z")

	f.mustRender(vdom.Text("a"), vdom.Fragment(vdom.Text("m"), vdom.Text("n")), vdom.Text("z"))
	f.expectHTML("amnz")
}

func TestKeyedFragmentsMove(t *testing.T) {
	f := newFixture(t)
	build := func(keys ...string) *vdom.VNode {
		var kids []*vdom.VNode
		for _, k := range keys {
			switch k {
			case "x":
				kids = append(kids, vdom.WithKey("x", vdom.Fragment(vdom.Text("x1"), vdom.Text("x2"))))
			case "y":
				kids = append(kids, vdom.WithKey("y", vdom.Fragment(vdom.Text("y1"))))
			}
		}
		return vdom.Div(kids)
	}
	f.mustRender(build("x", "y"))
	f.mustRender(build("y", "x"))
	f.expectHTML("<div>y1x1x2</div>")
}

func TestComponentRunMovesWithKey(t *testing.T) {
	f := newFixture(t)
	f.mustRender(vdom.Div(
		vdom.WithKey("pair", C(pairComp, nil)),
		vdom.WithKey("span", C(spanComp, nil)),
	))
	f.mustRender(vdom.Div(
		vdom.WithKey("span", C(spanComp, nil)),
		vdom.WithKey("pair", C(pairComp, nil)),
	))
	f.expectHTML("<div><span>comp</span>p1p2</div>")
}

func TestSVGNamespace(t *testing.T) {
	f := newFixture(t)
	f.mustRender(vdom.Svg(
		vdom.Circle(vdom.R(5)),
		vdom.ForeignObject(vdom.Div("html")),
	))

	tests := []struct {
		tag  string
		want string
	}{
		{"svg", dom.SVGNamespace},
		{"circle", dom.SVGNamespace},
		{"foreignObject", dom.SVGNamespace},
		{"div", dom.HTMLNamespace},
	}
	for _, tt := range tests {
		nodes := f.root.ByTag(tt.tag)
		if len(nodes) != 1 {
			t.Fatalf("found %d <%s>", len(nodes), tt.tag)
		}
		if got := nodes[0].NamespaceURI(); got != tt.want {
			t.Errorf("<%s> namespace = %s, want %s", tt.tag, got, tt.want)
		}
	}

	f.mustRender(vdom.Svg(
		vdom.Circle(vdom.R(5)),
		vdom.ForeignObject(vdom.Div("html"), vdom.P("more")),
		vdom.Rect(),
	))
	if ns := f.root.ByTag("rect")[0].NamespaceURI(); ns != dom.SVGNamespace {
		t.Errorf("rect added on update has namespace %s", ns)
	}
	if ns := f.root.ByTag("p")[0].NamespaceURI(); ns != dom.HTMLNamespace {
		t.Errorf("p added under foreignObject has namespace %s", ns)
	}
	f.expectHTML(`<svg><circle r="5"></circle><foreignObject><div>html</div><p>more</p></foreignObject><rect></rect></svg>`)
}

func TestRenderIntoSVGContainer(t *testing.T) {
	f := newFixture(t)
	svg := f.doc.CreateElementNS(dom.SVGNamespace, "svg")
	if err := f.rt.Render(svg, []*vdom.VNode{vdom.G(vdom.Rect())}, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	g := svg.FirstChild()
	if g.NamespaceURI() != dom.SVGNamespace || g.FirstChild().NamespaceURI() != dom.SVGNamespace {
		t.Errorf("children of an svg container must be SVG elements")
	}
}

func TestNilChildrenRenderAsNothing(t *testing.T) {
	f := newFixture(t)
	div := &vdom.VNode{Kind: vdom.KindElement, Tag: "div", Children: []*vdom.VNode{nil, vdom.Text("x")}}
	f.mustRender(div)
	f.expectHTML("<div><!---->x</div>")
}
