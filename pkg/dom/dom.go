package dom

import "strings"

// Namespaces used when creating elements.
const (
	HTMLNamespace = "http://www.w3.org/1999/xhtml"
	SVGNamespace  = "http://www.w3.org/2000/svg"
)

// NodeType mirrors Node.nodeType.
type NodeType uint8

const (
	ElementNode NodeType = 1
	TextNode    NodeType = 3
	CommentNode NodeType = 8
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Document creates nodes.
type Document interface {
	CreateElement(tag string) Node
	CreateElementNS(namespace, tag string) Node
	CreateTextNode(text string) Node
	CreateComment(text string) Node
}

// Node is a live DOM node.
//
// Implementations must make IsSameNode reliable: the reconciler uses it
// instead of == to compare positions, since some backends wrap host handles
// that are not comparable.
type Node interface {
	NodeType() NodeType
	NodeName() string
	NamespaceURI() string
	IsSameNode(other Node) bool

	ParentNode() Node
	FirstChild() Node
	NextSibling() Node
	ChildNodes() []Node

	AppendChild(child Node)
	InsertBefore(child, ref Node)
	ReplaceChild(newChild, oldChild Node)
	RemoveChild(child Node)

	// NodeValue is the text of Text and Comment nodes.
	NodeValue() string
	SetNodeValue(value string)

	AttributeNames() []string
	HasAttribute(name string) bool
	GetAttribute(name string) string
	SetAttribute(name, value string)
	RemoveAttribute(name string)

	// GetProperty and SetProperty access host properties such as value,
	// checked or disabled.
	GetProperty(name string) any
	SetProperty(name string, value any)

	// SetEventHandler assigns an on* listener property, replacing the
	// previous listener. A nil handler clears it.
	SetEventHandler(name string, handler EventHandler)
}

// Event is the payload delivered to listeners.
type Event interface {
	Type() string
	Target() Node
	PreventDefault()
}

// EventHandler is a bound listener.
type EventHandler func(Event)

// SameNode reports whether a and b are the same node, treating two nil
// nodes as equal.
func SameNode(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.IsSameNode(b)
}

// booleanProperties are written as DOM properties instead of attributes.
var booleanProperties = map[string]bool{
	"checked":   true,
	"disabled":  true,
	"hidden":    true,
	"autofocus": true,
	"required":  true,
	"selected":  true,
	"multiple":  true,
	"draggable": true,
}

// IsBooleanProperty reports whether name is set as a boolean DOM property.
func IsBooleanProperty(name string) bool {
	return booleanProperties[strings.ToLower(name)]
}

// formControls hold a live value property that diverges from the attribute.
var formControls = map[string]bool{
	"input":    true,
	"textarea": true,
	"select":   true,
}

// IsFormControl reports whether tag keeps a live value property.
func IsFormControl(tag string) bool {
	return formControls[strings.ToLower(tag)]
}

// EventPrefix marks listener property names.
const EventPrefix = "on"

// IsEventName reports whether name is a listener property (onclick, onInput).
// The check is case-insensitive.
func IsEventName(name string) bool {
	return len(name) > len(EventPrefix) && strings.EqualFold(name[:len(EventPrefix)], EventPrefix)
}
