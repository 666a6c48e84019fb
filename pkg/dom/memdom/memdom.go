// Package memdom is an in-memory implementation of the dom boundary.
//
// It behaves like a browser DOM for the operations the reconciler uses and
// records every tree, attribute, property and listener write in a mutation
// log, which makes it the backend of choice for tests and tooling:
//
//	doc := memdom.NewDocument()
//	root := doc.CreateElement("div")
//	doc.ResetMutations()
//	// ... reconcile into root ...
//	fmt.Println(doc.MutationCount())
package memdom

import (
	"sort"
	"strings"

	"github.com/vango-dev/kite/pkg/dom"
)

// Document creates memdom nodes and owns their mutation log.
type Document struct {
	mutations []Mutation
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

var _ dom.Document = (*Document)(nil)

// CreateElement creates an HTML element.
func (d *Document) CreateElement(tag string) dom.Node {
	return d.newNode(dom.ElementNode, strings.ToLower(tag), dom.HTMLNamespace, "")
}

// CreateElementNS creates an element in the given namespace. Tag case is
// preserved outside the HTML namespace (foreignObject, linearGradient).
func (d *Document) CreateElementNS(namespace, tag string) dom.Node {
	if namespace == dom.HTMLNamespace || namespace == "" {
		return d.CreateElement(tag)
	}
	return d.newNode(dom.ElementNode, tag, namespace, "")
}

// CreateTextNode creates a text node.
func (d *Document) CreateTextNode(text string) dom.Node {
	return d.newNode(dom.TextNode, "#text", "", text)
}

// CreateComment creates a comment node.
func (d *Document) CreateComment(text string) dom.Node {
	return d.newNode(dom.CommentNode, "#comment", "", text)
}

// Element creates an HTML element typed as *Node, for test setup.
func (d *Document) Element(tag string) *Node {
	return d.CreateElement(tag).(*Node)
}

func (d *Document) newNode(typ dom.NodeType, name, ns, value string) *Node {
	return &Node{doc: d, typ: typ, name: name, ns: ns, value: value}
}

func (d *Document) record(op Op, target *Node, name, value string) {
	d.mutations = append(d.mutations, Mutation{Op: op, Target: target, Name: name, Value: value})
}

// Mutations returns a copy of the mutation log.
func (d *Document) Mutations() []Mutation {
	out := make([]Mutation, len(d.mutations))
	copy(out, d.mutations)
	return out
}

// MutationCount returns the number of recorded mutations.
func (d *Document) MutationCount() int {
	return len(d.mutations)
}

// ResetMutations clears the mutation log.
func (d *Document) ResetMutations() {
	d.mutations = nil
}

// Node is an in-memory DOM node.
type Node struct {
	doc   *Document
	typ   dom.NodeType
	name  string
	ns    string
	value string

	attrs    map[string]string
	props    map[string]any
	handlers map[string]dom.EventHandler

	parent   *Node
	children []*Node
}

var _ dom.Node = (*Node)(nil)

func wrap(n *Node) dom.Node {
	if n == nil {
		return nil
	}
	return n
}

func unwrap(n dom.Node) *Node {
	if n == nil {
		return nil
	}
	return n.(*Node)
}

// NodeType returns the node type.
func (n *Node) NodeType() dom.NodeType { return n.typ }

// NodeName returns the tag name, "#text" or "#comment".
func (n *Node) NodeName() string { return n.name }

// NamespaceURI returns the element namespace; empty for text and comments.
func (n *Node) NamespaceURI() string { return n.ns }

// IsSameNode reports pointer identity.
func (n *Node) IsSameNode(other dom.Node) bool {
	o, ok := other.(*Node)
	return ok && o == n
}

// ParentNode returns the parent or nil.
func (n *Node) ParentNode() dom.Node { return wrap(n.parent) }

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() dom.Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// NextSibling returns the following sibling or nil.
func (n *Node) NextSibling() dom.Node {
	if n.parent == nil {
		return nil
	}
	i := n.parent.indexOf(n)
	if i < 0 || i+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[i+1]
}

// ChildNodes returns a snapshot of the children.
func (n *Node) ChildNodes() []dom.Node {
	out := make([]dom.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// Children returns the children as *Node.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// detach removes n from its parent without recording a mutation; the
// insertion that triggered it is recorded instead, as a browser move is.
func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	if i := p.indexOf(n); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	n.parent = nil
}

// AppendChild appends child, moving it if it already has a parent.
func (n *Node) AppendChild(child dom.Node) {
	c := unwrap(child)
	c.detach()
	c.parent = n
	n.children = append(n.children, c)
	n.doc.record(OpAppendChild, n, c.name, "")
}

// InsertBefore inserts child before ref; a nil ref appends.
func (n *Node) InsertBefore(child, ref dom.Node) {
	c := unwrap(child)
	r := unwrap(ref)
	if r == nil {
		n.AppendChild(c)
		return
	}
	if r.parent != n {
		panic("memdom: InsertBefore reference is not a child of this node")
	}
	c.detach()
	i := n.indexOf(r)
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
	c.parent = n
	n.doc.record(OpInsertBefore, n, c.name, r.name)
}

// ReplaceChild replaces oldChild with newChild.
func (n *Node) ReplaceChild(newChild, oldChild dom.Node) {
	nc := unwrap(newChild)
	oc := unwrap(oldChild)
	if oc.parent != n {
		panic("memdom: ReplaceChild target is not a child of this node")
	}
	nc.detach()
	i := n.indexOf(oc)
	n.children[i] = nc
	nc.parent = n
	oc.parent = nil
	n.doc.record(OpReplaceChild, n, nc.name, oc.name)
}

// RemoveChild removes child.
func (n *Node) RemoveChild(child dom.Node) {
	c := unwrap(child)
	if c.parent != n {
		panic("memdom: RemoveChild target is not a child of this node")
	}
	c.detach()
	n.doc.record(OpRemoveChild, n, c.name, "")
}

// NodeValue returns the text of text and comment nodes.
func (n *Node) NodeValue() string { return n.value }

// SetNodeValue replaces the text of a text or comment node.
func (n *Node) SetNodeValue(value string) {
	n.value = value
	n.doc.record(OpSetNodeValue, n, "", value)
}

// AttributeNames returns attribute names in sorted order.
func (n *Node) AttributeNames() []string {
	names := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// HasAttribute reports whether the attribute is present.
func (n *Node) HasAttribute(name string) bool {
	_, ok := n.attrs[name]
	return ok
}

// GetAttribute returns the attribute value or "".
func (n *Node) GetAttribute(name string) string {
	return n.attrs[name]
}

// SetAttribute writes an attribute.
func (n *Node) SetAttribute(name, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
	n.doc.record(OpSetAttribute, n, name, value)
}

// RemoveAttribute deletes an attribute.
func (n *Node) RemoveAttribute(name string) {
	delete(n.attrs, name)
	n.doc.record(OpRemoveAttribute, n, name, "")
}

// GetProperty reads a host property. Unset boolean properties fall back to
// attribute presence and an unset value falls back to the value attribute,
// the way browsers initialize them.
func (n *Node) GetProperty(name string) any {
	if v, ok := n.props[name]; ok {
		return v
	}
	if dom.IsBooleanProperty(name) {
		return n.HasAttribute(name)
	}
	if name == "value" {
		return n.attrs["value"]
	}
	return nil
}

// SetProperty writes a host property.
func (n *Node) SetProperty(name string, value any) {
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[name] = value
	n.doc.record(OpSetProperty, n, name, propString(value))
}

// SetEventHandler assigns or clears an on* listener property.
func (n *Node) SetEventHandler(name string, handler dom.EventHandler) {
	name = strings.ToLower(name)
	if handler == nil {
		delete(n.handlers, name)
	} else {
		if n.handlers == nil {
			n.handlers = make(map[string]dom.EventHandler)
		}
		n.handlers[name] = handler
	}
	n.doc.record(OpSetEventHandler, n, name, "")
}

// HasEventHandler reports whether an on* listener is bound.
func (n *Node) HasEventHandler(name string) bool {
	_, ok := n.handlers[strings.ToLower(name)]
	return ok
}

// TextContent concatenates descendant text.
func (n *Node) TextContent() string {
	if n.typ == dom.TextNode {
		return n.value
	}
	var b strings.Builder
	for _, c := range n.children {
		if c.typ != dom.CommentNode {
			b.WriteString(c.TextContent())
		}
	}
	return b.String()
}

// Find returns the first descendant of n in document order matching fn.
// n itself is not tested.
func (n *Node) Find(fn func(*Node) bool) *Node {
	for _, c := range n.children {
		if fn(c) {
			return c
		}
		if found := c.Find(fn); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant of n in document order matching fn.
func (n *Node) FindAll(fn func(*Node) bool) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		for _, c := range cur.children {
			if fn(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// ByID returns the descendant element with the given id attribute.
func (n *Node) ByID(id string) *Node {
	return n.Find(func(c *Node) bool {
		return c.typ == dom.ElementNode && c.attrs["id"] == id
	})
}

// ByTag returns the element descendants with the given tag.
func (n *Node) ByTag(tag string) []*Node {
	tag = strings.ToLower(tag)
	return n.FindAll(func(c *Node) bool {
		return c.typ == dom.ElementNode && strings.ToLower(c.name) == tag
	})
}
