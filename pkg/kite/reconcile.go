package kite

import (
	"fmt"

	kerrors "github.com/vango-dev/kite/internal/errors"
	"github.com/vango-dev/kite/pkg/dom"
	"github.com/vango-dev/kite/pkg/telemetry"
	"github.com/vango-dev/kite/pkg/vdom"
)

// scope is where a sibling list lives.
type scope struct {
	// parent is the DOM parent of the list.
	parent dom.Node
	// ns is the namespace new elements are created in.
	ns string
	// owner is the component instance whose rendition contains the list.
	owner *vdom.Link
}

func scopeFor(parent dom.Node, owner *vdom.Link) scope {
	return scope{parent: parent, ns: namespaceOf(parent), owner: owner}
}

// namespaceOf returns the namespace children of parent are created in.
func namespaceOf(parent dom.Node) string {
	if parent == nil || parent.NodeType() != dom.ElementNode {
		return dom.HTMLNamespace
	}
	return namespaceBelow(parent.NodeName(), parent.NamespaceURI())
}

// elementNamespace returns the namespace of a new element: svg starts the
// SVG namespace and everything else inherits.
func elementNamespace(tag, inherited string) string {
	if tag == "svg" {
		return dom.SVGNamespace
	}
	if inherited == "" {
		return dom.HTMLNamespace
	}
	return inherited
}

// namespaceBelow returns the namespace of the children of an element.
func namespaceBelow(tag, ns string) string {
	if tag == "foreignObject" || ns == "" {
		return dom.HTMLNamespace
	}
	return ns
}

func firstDOM(v *vdom.VNode) dom.Node {
	nodes := v.DOMNodes()
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// runEnd returns the DOM node following the run of list, or nil when the run
// ends its parent.
func runEnd(list []*vdom.VNode) dom.Node {
	for i := len(list) - 1; i >= 0; i-- {
		if list[i] == nil {
			continue
		}
		if last := list[i].LastDOM(); last != nil {
			return last.NextSibling()
		}
	}
	return nil
}

// fillNothing replaces nil entries with Nothing nodes in place so every
// position owns DOM.
func fillNothing(list []*vdom.VNode) {
	for i, v := range list {
		if v == nil {
			list[i] = vdom.Nothing()
		}
	}
}

// replaces reports whether nv cannot update ov in place.
func replaces(ov, nv *vdom.VNode) bool {
	if ov.Kind != nv.Kind {
		return true
	}
	switch nv.Kind {
	case vdom.KindElement:
		return ov.Tag != nv.Tag
	case vdom.KindComponent:
		return ov.Comp != nv.Comp
	}
	return false
}

// reconcileChildren turns the DOM run of prev, which ends before end, into
// the run of next.
func (r *Runtime) reconcileChildren(p *pass, s scope, next, prev []*vdom.VNode, end dom.Node) {
	fillNothing(next)

	// Keyed nodes match an unused old node with the same key anywhere in
	// prev; unkeyed nodes match the unkeyed old node at the same index.
	matched := make([]*vdom.VNode, len(next))
	used := make([]bool, len(prev))
	var keyed map[string]int
	for j, ov := range prev {
		if ov.Key == "" {
			continue
		}
		if keyed == nil {
			keyed = make(map[string]int)
		}
		if _, dup := keyed[ov.Key]; !dup {
			keyed[ov.Key] = j
		}
	}
	for i, nv := range next {
		if nv.Key != "" {
			if j, ok := keyed[nv.Key]; ok && !used[j] {
				matched[i] = prev[j]
				used[j] = true
			}
			continue
		}
		if i < len(prev) && prev[i].Key == "" && !used[i] {
			matched[i] = prev[i]
			used[i] = true
		}
	}

	for j, ov := range prev {
		if !used[j] {
			r.discard(ov)
		}
	}

	// cursor is the DOM node the next child belongs in front of.
	cursor := end
	for j, ov := range prev {
		if used[j] {
			cursor = firstDOM(ov)
			break
		}
	}

	for i, nv := range next {
		ov := matched[i]
		switch {
		case ov == nil:
			r.insertNodes(s.parent, r.create(p, s, nv), cursor)

		case replaces(ov, nv):
			oldNodes := ov.DOMNodes()
			atCursor := len(oldNodes) > 0 && dom.SameNode(oldNodes[0], cursor)
			r.unmount(ov)
			ov.DOM = nil
			nodes := r.create(p, s, nv)

			switch {
			case atCursor && len(nodes) == 1 && len(oldNodes) == 1:
				s.parent.ReplaceChild(nodes[0], oldNodes[0])
				r.metrics.DOMOp(telemetry.OpReplace)
				cursor = nodes[0].NextSibling()
			case atCursor:
				r.insertNodes(s.parent, nodes, oldNodes[0])
				r.removeNodes(oldNodes)
				cursor = nodes[len(nodes)-1].NextSibling()
			default:
				r.insertNodes(s.parent, nodes, cursor)
				r.removeNodes(oldNodes)
			}

		default:
			atCursor := dom.SameNode(firstDOM(ov), cursor)
			r.patch(p, s, ov, nv)
			nodes := nv.DOMNodes()
			if atCursor {
				if len(nodes) > 0 {
					cursor = nodes[len(nodes)-1].NextSibling()
				}
			} else {
				r.insertNodes(s.parent, nodes, cursor)
			}
		}
	}
}

// create builds detached DOM for v and returns its run.
func (r *Runtime) create(p *pass, s scope, v *vdom.VNode) []dom.Node {
	switch v.Kind {
	case vdom.KindText:
		n := r.doc.CreateTextNode(v.Text)
		r.metrics.DOMOp(telemetry.OpCreate)
		v.DOM = n
		return []dom.Node{n}

	case vdom.KindNothing:
		n := r.doc.CreateComment("")
		r.metrics.DOMOp(telemetry.OpCreate)
		v.DOM = n
		return []dom.Node{n}

	case vdom.KindElement:
		ns := elementNamespace(v.Tag, s.ns)
		var el dom.Node
		if ns == dom.HTMLNamespace {
			el = r.doc.CreateElement(v.Tag)
		} else {
			el = r.doc.CreateElementNS(ns, v.Tag)
		}
		r.metrics.DOMOp(telemetry.OpCreate)
		r.updateProps(el, v.Tag, nil, v.Props)

		inner := scope{parent: el, ns: namespaceBelow(v.Tag, ns), owner: s.owner}
		fillNothing(v.Children)
		for _, c := range v.Children {
			for _, n := range r.create(p, inner, c) {
				el.AppendChild(n)
				r.metrics.DOMOp(telemetry.OpInsert)
			}
		}
		v.DOM = el
		return []dom.Node{el}

	case vdom.KindFragment:
		if len(v.Children) == 0 {
			n := r.doc.CreateComment("")
			r.metrics.DOMOp(telemetry.OpCreate)
			v.DOM = n
			return []dom.Node{n}
		}
		fillNothing(v.Children)
		var nodes []dom.Node
		for _, c := range v.Children {
			nodes = append(nodes, r.create(p, s, c)...)
		}
		v.DOM = nodes[0]
		return nodes

	case vdom.KindComponent:
		return r.mountComponent(p, s, v)

	default:
		panic(kerrors.New("K020").WithDetail(fmt.Sprintf("kind %d", v.Kind)))
	}
}

func (r *Runtime) mountComponent(p *pass, s scope, v *vdom.VNode) []dom.Node {
	v.Link = &vdom.Link{Node: v, Parent: s.owner}
	v.Hooks = &vdom.HookStore{}

	res := r.renderComponent(v, nil, false, true, nil)
	tree := res.tree
	if res.err != nil {
		tree = r.fallback(p, v.Link, res.err)
	}
	nodes := r.create(p, scope{parent: s.parent, ns: s.ns, owner: v.Link}, tree)
	v.Rendition = tree
	v.DOM = nodes[0]
	p.commit(v.Link, res.effects)
	return nodes
}

// patch updates the DOM of ov to reflect nv, which has the same identity.
// On return nv owns the DOM and ov is superseded.
func (r *Runtime) patch(p *pass, s scope, ov, nv *vdom.VNode) {
	if ov == nv && nv.DOM != nil {
		return
	}

	switch nv.Kind {
	case vdom.KindText:
		nv.DOM = ov.DOM
		if ov.Text != nv.Text {
			nv.DOM.SetNodeValue(nv.Text)
			r.metrics.DOMOp(telemetry.OpText)
		}

	case vdom.KindNothing:
		nv.DOM = ov.DOM

	case vdom.KindElement:
		el := ov.DOM
		nv.DOM = el
		r.updateProps(el, nv.Tag, ov.Props, nv.Props)
		inner := scope{parent: el, ns: namespaceBelow(nv.Tag, el.NamespaceURI()), owner: s.owner}
		r.reconcileChildren(p, inner, nv.Children, ov.Children, nil)

	case vdom.KindFragment:
		end := runEnd([]*vdom.VNode{ov})
		oldKids := ov.Children
		if len(oldKids) == 0 {
			oldKids = []*vdom.VNode{{Kind: vdom.KindNothing, DOM: ov.DOM}}
		}
		newKids := nv.Children
		var placeholder *vdom.VNode
		if len(newKids) == 0 {
			placeholder = vdom.Nothing()
			newKids = []*vdom.VNode{placeholder}
		}
		r.reconcileChildren(p, s, newKids, oldKids, end)
		if placeholder != nil {
			nv.DOM = placeholder.DOM
		} else {
			nv.DOM = firstDOM(nv)
		}

	case vdom.KindComponent:
		r.updateComponent(p, s, ov, nv, true)

	default:
		panic(kerrors.New("K020").WithDetail(fmt.Sprintf("kind %d", nv.Kind)))
	}

	if ov != nv {
		ov.DOM = nil
	}
}

// updateComponent re-renders the instance of ov as nv. ov and nv are the
// same node when the instance re-renders itself.
func (r *Runtime) updateComponent(p *pass, s scope, ov, nv *vdom.VNode, parentDriven bool) {
	prevRend := ov.Rendition
	end := runEnd([]*vdom.VNode{ov})
	var prevProps vdom.Props
	if ov != nv {
		nv.Hooks, nv.Link = ov.Hooks, ov.Link
		nv.Link.Node = nv
		prevProps = ov.Props
	}

	res := r.renderComponent(nv, prevProps, parentDriven, false, prevRend)
	if res.skipped {
		nv.Rendition = prevRend
		nv.DOM = firstDOM(prevRend)
		return
	}
	tree := res.tree
	if res.err != nil {
		tree = r.fallback(p, nv.Link, res.err)
	}

	inner := scope{parent: s.parent, ns: s.ns, owner: nv.Link}
	r.reconcileChildren(p, inner, []*vdom.VNode{tree}, []*vdom.VNode{prevRend}, end)
	nv.Rendition = tree
	nv.DOM = firstDOM(tree)
	p.commit(nv.Link, res.effects)
}

// dispatch schedules a re-render of the instance unless one is pending.
func (r *Runtime) dispatch(link *vdom.Link) {
	store := link.Node.Hooks
	store.DispatchLevel++
	if store.DispatchLevel > 1 {
		return
	}
	r.frames.RequestFrame(func() { r.rerender(link) })
}

// rerender renders one instance in place after its state changed.
func (r *Runtime) rerender(link *vdom.Link) {
	node := link.Node
	node.Hooks.DispatchLevel = 0

	if link.Dead {
		r.metrics.Rerender("dead")
		r.logger.Debug("kite: re-render of unmounted instance dropped", "component", link.Name())
		return
	}
	if link.Rendering {
		r.metrics.Rerender("reentrant")
		r.report(kerrors.New("K003").WithComponent(link.Name()))
		return
	}
	first := firstDOM(node)
	if first == nil || first.ParentNode() == nil {
		r.logger.Debug("kite: re-render of detached instance dropped", "component", link.Name())
		return
	}

	r.metrics.Rerender("rendered")
	err := r.runPass("kite.rerender", func(p *pass) {
		r.updateComponent(p, scopeFor(first.ParentNode(), link.Parent), node, node, false)
		refreshAncestors(link)
	})
	if err != nil {
		r.report(err)
	}
}

// refreshAncestors updates the cached first DOM node of the instances
// enclosing link after its run changed.
func refreshAncestors(link *vdom.Link) {
	for l := link.Parent; l != nil; l = l.Parent {
		if l.Node != nil && !l.Dead {
			l.Node.DOM = firstDOM(l.Node)
		}
	}
}

// unmount runs the cleanups of every instance in v, descendants first.
func (r *Runtime) unmount(v *vdom.VNode) {
	switch v.Kind {
	case vdom.KindElement, vdom.KindFragment:
		for _, c := range v.Children {
			if c != nil {
				r.unmount(c)
			}
		}
	case vdom.KindComponent:
		if v.Rendition != nil {
			r.unmount(v.Rendition)
		}
		r.unmountHooks(v.Link, v.Hooks)
	}
}

// discard unmounts ov and removes its DOM.
func (r *Runtime) discard(ov *vdom.VNode) {
	nodes := ov.DOMNodes()
	r.unmount(ov)
	r.removeNodes(nodes)
	ov.DOM = nil
}

func (r *Runtime) insertNodes(parent dom.Node, nodes []dom.Node, ref dom.Node) {
	for _, n := range nodes {
		parent.InsertBefore(n, ref)
		r.metrics.DOMOp(telemetry.OpInsert)
	}
}

func (r *Runtime) removeNodes(nodes []dom.Node) {
	for _, n := range nodes {
		if parent := n.ParentNode(); parent != nil {
			parent.RemoveChild(n)
			r.metrics.DOMOp(telemetry.OpRemove)
		}
	}
}
