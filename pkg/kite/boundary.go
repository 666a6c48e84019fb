package kite

import (
	"errors"

	kerrors "github.com/vango-dev/kite/internal/errors"
	"github.com/vango-dev/kite/pkg/vdom"
)

// fallback resolves the tree a failed instance renders instead of its own
// output. Handlers are searched from the instance itself up through its
// ancestors; a handler that panics is skipped. A handler on the instance
// itself supplies its fallback directly. A handler on an ancestor takes the
// error for the whole ancestor: the failing instance renders nothing and the
// ancestor's rendition is swapped for the handler's node once the pass has
// reconciled. Without a handler the error is recorded on the pass and the
// instance renders nothing.
func (r *Runtime) fallback(p *pass, link *vdom.Link, err error) *vdom.VNode {
	category := errorCategory(err)
	for l := link; l != nil; l = l.Parent {
		if l.Node == nil || l.Node.Hooks == nil || l.Node.Hooks.ErrorHandler == nil {
			continue
		}
		// A boundary whose fallback is already in place failed again from
		// inside that fallback; the next handler up takes it.
		sw := p.swapFor(l)
		if sw != nil && sw.applied {
			continue
		}
		out, ok := r.callHandler(l, err)
		if !ok {
			continue
		}
		r.metrics.Error(category, true)
		r.logger.Debug("kite: error handled",
			"component", link.Name(), "handler", l.Name(), "error", err)
		if out == nil {
			out = vdom.Nothing()
		}
		if l == link {
			return out
		}
		if sw == nil {
			p.swaps = append(p.swaps, &boundarySwap{link: l, tree: out})
		} else {
			sw.tree = out
		}
		return vdom.Nothing()
	}

	r.metrics.Error(category, false)
	p.errs = append(p.errs, err)
	return vdom.Nothing()
}

// boundarySwap is a handler's fallback waiting to replace the rendition of
// the instance that registered the handler.
type boundarySwap struct {
	link    *vdom.Link
	tree    *vdom.VNode
	applied bool
}

func (p *pass) swapFor(link *vdom.Link) *boundarySwap {
	for _, sw := range p.swaps {
		if sw.link == link {
			return sw
		}
	}
	return nil
}

// applyBoundaries installs pending handler fallbacks. Reconciling a fallback
// may queue more swaps, which are applied in the same loop.
func (r *Runtime) applyBoundaries(p *pass) {
	for i := 0; i < len(p.swaps); i++ {
		sw := p.swaps[i]
		if sw.applied {
			continue
		}
		sw.applied = true
		r.replaceRendition(p, sw.link, sw.tree)
	}
}

func (r *Runtime) callHandler(l *vdom.Link, err error) (out *vdom.VNode, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Debug("kite: error handler panicked", "component", l.Name(), "panic", rec)
			out, ok = nil, false
		}
	}()
	return l.Node.Hooks.ErrorHandler(err), true
}

// failInstance replaces the rendition of a mounted instance with its
// fallback in a pass of its own. Unhandled errors are reported.
func (r *Runtime) failInstance(link *vdom.Link, err error) {
	perr := r.runPass("kite.boundary", func(p *pass) {
		r.failInPass(p, link, err)
	})
	if perr != nil {
		r.report(perr)
	}
}

// failInPass swaps the rendition of a mounted instance for its fallback
// within pass p.
func (r *Runtime) failInPass(p *pass, link *vdom.Link, err error) {
	if link.Dead {
		return
	}
	r.replaceRendition(p, link, r.fallback(p, link, err))
}

// replaceRendition reconciles the mounted rendition of link into out.
func (r *Runtime) replaceRendition(p *pass, link *vdom.Link, out *vdom.VNode) {
	if link.Dead {
		return
	}
	node := link.Node
	first := firstDOM(node)
	if first == nil || first.ParentNode() == nil {
		return
	}
	parent := first.ParentNode()
	end := runEnd([]*vdom.VNode{node.Rendition})
	r.reconcileChildren(p, scopeFor(parent, link), []*vdom.VNode{out}, []*vdom.VNode{node.Rendition}, end)
	node.Rendition = out
	node.DOM = firstDOM(out)
	refreshAncestors(link)
}

func errorCategory(err error) string {
	var ke *kerrors.KiteError
	if errors.As(err, &ke) && ke.Category != "" {
		return string(ke.Category)
	}
	return string(kerrors.CategoryRender)
}
