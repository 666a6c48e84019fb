//go:build js && wasm

// Package jsdom implements the dom boundary over the browser DOM through
// syscall/js.
package jsdom

import (
	"strings"
	"sync"
	"syscall/js"

	"github.com/vango-dev/kite/pkg/dom"
)

// Document wraps the global document object.
type Document struct {
	v js.Value
}

var _ dom.Document = (*Document)(nil)

// NewDocument returns the page document.
func NewDocument() *Document {
	return &Document{v: js.Global().Get("document")}
}

// GetElementByID returns the element with the given id or nil.
func (d *Document) GetElementByID(id string) dom.Node {
	return wrap(d.v.Call("getElementById", id))
}

// Body returns document.body.
func (d *Document) Body() dom.Node {
	return wrap(d.v.Get("body"))
}

func (d *Document) CreateElement(tag string) dom.Node {
	return wrap(d.v.Call("createElement", tag))
}

func (d *Document) CreateElementNS(namespace, tag string) dom.Node {
	return wrap(d.v.Call("createElementNS", namespace, tag))
}

func (d *Document) CreateTextNode(text string) dom.Node {
	return wrap(d.v.Call("createTextNode", text))
}

func (d *Document) CreateComment(text string) dom.Node {
	return wrap(d.v.Call("createComment", text))
}

// Node wraps a host node handle.
type Node struct {
	v js.Value
}

var _ dom.Node = (*Node)(nil)

// Wrap adapts a js.Value holding a DOM node.
func Wrap(v js.Value) dom.Node {
	return wrap(v)
}

func wrap(v js.Value) dom.Node {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return &Node{v: v}
}

func value(n dom.Node) any {
	if n == nil {
		return nil
	}
	return n.(*Node).v
}

// Value returns the underlying handle.
func (n *Node) Value() js.Value { return n.v }

func (n *Node) NodeType() dom.NodeType { return dom.NodeType(n.v.Get("nodeType").Int()) }

// NodeName lowercases HTML tag names, which browsers report upper-cased.
func (n *Node) NodeName() string {
	name := n.v.Get("nodeName").String()
	if n.NamespaceURI() == dom.HTMLNamespace {
		return strings.ToLower(name)
	}
	return name
}

func (n *Node) NamespaceURI() string {
	ns := n.v.Get("namespaceURI")
	if ns.IsNull() || ns.IsUndefined() {
		return ""
	}
	return ns.String()
}

func (n *Node) IsSameNode(other dom.Node) bool {
	o, ok := other.(*Node)
	return ok && o != nil && n.v.Equal(o.v)
}

func (n *Node) ParentNode() dom.Node  { return wrap(n.v.Get("parentNode")) }
func (n *Node) FirstChild() dom.Node  { return wrap(n.v.Get("firstChild")) }
func (n *Node) NextSibling() dom.Node { return wrap(n.v.Get("nextSibling")) }

func (n *Node) ChildNodes() []dom.Node {
	list := n.v.Get("childNodes")
	out := make([]dom.Node, list.Length())
	for i := range out {
		out[i] = wrap(list.Index(i))
	}
	return out
}

func (n *Node) AppendChild(child dom.Node) { n.v.Call("appendChild", value(child)) }

func (n *Node) InsertBefore(child, ref dom.Node) {
	n.v.Call("insertBefore", value(child), value(ref))
}

func (n *Node) ReplaceChild(newChild, oldChild dom.Node) {
	n.v.Call("replaceChild", value(newChild), value(oldChild))
}

func (n *Node) RemoveChild(child dom.Node) { n.v.Call("removeChild", value(child)) }

func (n *Node) NodeValue() string {
	v := n.v.Get("nodeValue")
	if v.IsNull() {
		return ""
	}
	return v.String()
}

func (n *Node) SetNodeValue(text string) { n.v.Set("nodeValue", text) }

func (n *Node) AttributeNames() []string {
	names := n.v.Call("getAttributeNames")
	out := make([]string, names.Length())
	for i := range out {
		out[i] = names.Index(i).String()
	}
	return out
}

func (n *Node) HasAttribute(name string) bool { return n.v.Call("hasAttribute", name).Bool() }

func (n *Node) GetAttribute(name string) string {
	v := n.v.Call("getAttribute", name)
	if v.IsNull() {
		return ""
	}
	return v.String()
}

func (n *Node) SetAttribute(name, val string) { n.v.Call("setAttribute", name, val) }
func (n *Node) RemoveAttribute(name string)   { n.v.Call("removeAttribute", name) }

func (n *Node) GetProperty(name string) any {
	v := n.v.Get(name)
	switch v.Type() {
	case js.TypeBoolean:
		return v.Bool()
	case js.TypeString:
		return v.String()
	case js.TypeNumber:
		return v.Float()
	case js.TypeNull, js.TypeUndefined:
		return nil
	default:
		return v
	}
}

func (n *Node) SetProperty(name string, val any) { n.v.Set(name, val) }

// funcs holds the js.Func behind each bound listener so it can be released
// when the listener is replaced. Elements carry the registry id in a
// private property.
var (
	funcsMu sync.Mutex
	funcs   = map[int]js.Func{}
	nextID  = 1
)

const funcIDPrefix = "__kite_"

// SetEventHandler assigns the on* property, releasing any listener it
// previously bound on this element.
func (n *Node) SetEventHandler(name string, handler dom.EventHandler) {
	name = strings.ToLower(name)
	idProp := funcIDPrefix + name

	funcsMu.Lock()
	defer funcsMu.Unlock()

	if old := n.v.Get(idProp); old.Type() == js.TypeNumber {
		id := old.Int()
		if fn, ok := funcs[id]; ok {
			fn.Release()
			delete(funcs, id)
		}
	}
	if handler == nil {
		n.v.Set(name, js.Null())
		n.v.Set(idProp, js.Undefined())
		return
	}

	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		handler(&Event{v: ev})
		return nil
	})
	id := nextID
	nextID++
	funcs[id] = fn
	n.v.Set(name, fn)
	n.v.Set(idProp, id)
}

// Event wraps a host event object.
type Event struct {
	v js.Value
}

var _ dom.Event = (*Event)(nil)

func (e *Event) Type() string     { return e.v.Get("type").String() }
func (e *Event) Target() dom.Node { return wrap(e.v.Get("target")) }
func (e *Event) PreventDefault()  { e.v.Call("preventDefault") }

// Value returns the underlying event object.
func (e *Event) Value() js.Value { return e.v }
