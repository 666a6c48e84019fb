package kite

import (
	"fmt"

	kerrors "github.com/vango-dev/kite/internal/errors"
	"github.com/vango-dev/kite/pkg/vdom"
)

// RenderFunc renders a component instance.
type RenderFunc func(c *Ctx, props vdom.Props) *vdom.VNode

// Component is a component definition. Nodes created from the same
// *Component are the same component; nodes from different definitions are
// always replaced rather than updated, even if the render functions match.
type Component struct {
	name   string
	render RenderFunc
}

var _ vdom.Component = (*Component)(nil)

// Define creates a component definition.
func Define(name string, render RenderFunc) *Component {
	if render == nil {
		panic(kerrors.New("K021").WithDetail(fmt.Sprintf("component %q has no render function", name)))
	}
	return &Component{name: name, render: render}
}

// Name returns the component name used in errors, logs and metrics.
func (c *Component) Name() string { return c.name }

// C creates a node rendering def with props and children. A "key" prop
// becomes the node key.
func C(def *Component, props vdom.Props, children ...any) *vdom.VNode {
	return vdom.H(def, props, children...)
}

// Ctx is the render context of one component render. Hooks take it as
// their first argument. It must not be retained past the render.
type Ctx struct {
	rt    *Runtime
	node  *vdom.VNode
	link  *vdom.Link
	store *vdom.HookStore

	index int
	// init allows the slot array to grow.
	init bool
	done bool

	props        vdom.Props
	prevProps    vdom.Props
	parentDriven bool

	effects    []*effectSlot
	handlerSet bool
	skipped    bool
}

// Props returns the props of the current render.
func (c *Ctx) Props() vdom.Props { return c.props }

// Children returns the children passed to the component.
func (c *Ctx) Children() []*vdom.VNode {
	kids, _ := c.props.Get(vdom.ChildrenProp).([]*vdom.VNode)
	return kids
}

// Name returns the component name.
func (c *Ctx) Name() string { return c.link.Name() }

// Runtime returns the runtime rendering the component.
func (c *Ctx) Runtime() *Runtime { return c.rt }

// Skip abandons this render and keeps the previous rendition, DOM and hook
// state. It only takes effect on a parent-driven update of a mounted
// instance; otherwise the component renders nothing.
func (c *Ctx) Skip() *vdom.VNode {
	c.skipped = true
	return skipSentinel
}

// skipSentinel is returned by Skip.
var skipSentinel = &vdom.VNode{Kind: vdom.KindNothing}

// rendered is the outcome of calling a render function.
type rendered struct {
	tree    *vdom.VNode
	effects []*effectSlot
	skipped bool
	err     error
}

// renderComponent calls the render function of v. prevProps is non-nil on
// parent-driven updates of a mounted instance.
func (r *Runtime) renderComponent(v *vdom.VNode, prevProps vdom.Props, parentDriven, initial bool, prevRendition *vdom.VNode) (out rendered) {
	link := v.Link
	name := link.Name()
	if link.Rendering {
		out.err = kerrors.New("K003").WithComponent(name)
		out.tree = vdom.Nothing()
		return out
	}

	def, ok := v.Comp.(*Component)
	if !ok || def == nil {
		out.err = kerrors.New("K021").WithComponent(name).
			WithDetail(fmt.Sprintf("component node holds %T; create definitions with kite.Define", v.Comp))
		out.tree = vdom.Nothing()
		return out
	}

	store := v.Hooks
	ctx := &Ctx{
		rt:           r,
		node:         v,
		link:         link,
		store:        store,
		init:         !store.Rendered,
		props:        v.Props,
		prevProps:    prevProps,
		parentDriven: parentDriven && prevRendition != nil,
	}
	code := "K011"
	if initial {
		code = "K010"
	}

	r.metrics.ComponentRender(name)
	if r.debug {
		r.logger.Debug("kite: render", "component", name, "initial", initial, "parentDriven", parentDriven)
	}

	link.Rendering = true
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				out.err = kerrors.FromPanic(rec, code).WithComponent(name)
			}
		}()
		out.tree = def.render(ctx, v.Props)
	}()
	link.Rendering = false
	ctx.done = true

	if out.err == nil && ctx.skipped && ctx.parentDriven {
		ctx.discardEffects()
		out.skipped = true
		out.tree = prevRendition
		return out
	}
	if out.err == nil && !ctx.init && ctx.index < len(store.Slots) {
		out.err = kerrors.New("K002").WithComponent(name).
			WithDetail(fmt.Sprintf("expected %d hooks, got %d", len(store.Slots), ctx.index))
	}

	if out.err != nil {
		ctx.discardEffects()
		if ctx.init {
			store.Slots = nil
		}
		out.tree = nil
		return out
	}

	store.Rendered = true
	if !ctx.handlerSet {
		store.ErrorHandler = nil
	}
	if out.tree == nil || out.tree == skipSentinel {
		out.tree = vdom.Nothing()
	}
	out.effects = ctx.effects
	return out
}
