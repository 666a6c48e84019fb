package vdom

import (
	"fmt"

	"github.com/vango-dev/kite/pkg/dom"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Component invocation
	KindNothing                // Empty placeholder
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindNothing:
		return "Nothing"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "div")
	Props    Props     // Attributes, listeners, component props
	Children []*VNode  // Element and fragment children
	Key      string    // Reconciliation key
	Text     string    // For KindText
	Comp     Component // For KindComponent

	// Rendition is the tree a component node produced on its last render.
	Rendition *VNode

	// Hooks is the hook slot storage of a mounted component node.
	Hooks *HookStore

	// Link is the stable identity of a mounted component instance.
	Link *Link

	// DOM is the live node for text, element and nothing nodes, and the
	// first node of the run for fragments and components. It is nil before
	// the node is mounted and after it has been superseded.
	DOM dom.Node
}

// Props holds attributes and event handlers.
type Props map[string]any

// Get returns the value of a prop, or nil.
func (p Props) Get(name string) any {
	if p == nil {
		return nil
	}
	return p[name]
}

// Clone returns a shallow copy of the props.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // func(), func(dom.Event) or dom.EventHandler
}

// Component identifies a component definition. Two component nodes refer to
// the same component when their Comp values are identical.
type Component interface {
	Name() string
}

// HookStore is the ordered slot array backing a component instance's hooks.
type HookStore struct {
	Slots []any

	// ErrorHandler is the handler registered by the last render, if any.
	ErrorHandler func(error) *VNode

	// DispatchLevel counts the state updates received since the instance
	// was last scheduled for a re-render.
	DispatchLevel int

	// Rendered is set once a render completes; from then on the number
	// and order of slots is fixed.
	Rendered bool
}

// Link is the indirection record shared by all versions of one mounted
// component instance. Closures that outlive a render (state updaters, refs)
// capture the link and resolve the current node through it.
type Link struct {
	Node      *VNode
	Parent    *Link
	Dead      bool
	Rendering bool
}

// Name returns the component name of the linked instance.
func (l *Link) Name() string {
	if l == nil || l.Node == nil || l.Node.Comp == nil {
		return ""
	}
	return l.Node.Comp.Name()
}

// IsMounted reports whether the node currently owns DOM.
func (v *VNode) IsMounted() bool {
	return v != nil && v.DOM != nil
}

// DOMNodes returns the contiguous run of live DOM nodes owned by v.
func (v *VNode) DOMNodes() []dom.Node {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case KindText, KindElement, KindNothing:
		if v.DOM == nil {
			return nil
		}
		return []dom.Node{v.DOM}
	case KindFragment:
		if len(v.Children) == 0 {
			if v.DOM == nil {
				return nil
			}
			return []dom.Node{v.DOM}
		}
		var out []dom.Node
		for _, c := range v.Children {
			out = append(out, c.DOMNodes()...)
		}
		return out
	case KindComponent:
		return v.Rendition.DOMNodes()
	default:
		panic(fmt.Sprintf("vdom: unknown node kind %d", v.Kind))
	}
}

// LastDOM returns the last node of the run, or nil.
func (v *VNode) LastDOM() dom.Node {
	nodes := v.DOMNodes()
	if len(nodes) == 0 {
		return nil
	}
	return nodes[len(nodes)-1]
}

// String returns a short description such as <div>, "text" or <Counter/>.
func (v *VNode) String() string {
	if v == nil {
		return "<nil>"
	}
	switch v.Kind {
	case KindElement:
		return "<" + v.Tag + ">"
	case KindText:
		return fmt.Sprintf("%q", v.Text)
	case KindFragment:
		return fmt.Sprintf("<>%d</>", len(v.Children))
	case KindComponent:
		if v.Comp == nil {
			return "<?/>"
		}
		return "<" + v.Comp.Name() + "/>"
	case KindNothing:
		return "<!---->"
	default:
		return "<unknown>"
	}
}
