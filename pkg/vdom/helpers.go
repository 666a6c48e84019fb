package vdom

import (
	"fmt"
	"strconv"
)

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Nothing creates a placeholder that renders as an empty comment. Unlike a
// skipped child it keeps its sibling position.
func Nothing() *VNode {
	return &VNode{Kind: KindNothing}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	node := &VNode{Kind: KindFragment}

	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		case Component:
			node.Children = append(node.Children, &VNode{
				Kind:  KindComponent,
				Comp:  v,
				Props: Props{},
			})
		}
	}

	return node
}

// If returns the node if condition is true, Nothing otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return Nothing()
}

// IfElse returns the first node if condition is true, the second otherwise.
func IfElse(condition bool, ifTrue, ifFalse *VNode) *VNode {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// When is like If but with lazy evaluation.
// The function is only called if condition is true.
func When(condition bool, fn func() *VNode) *VNode {
	if condition {
		return fn()
	}
	return Nothing()
}

// Unless is the inverse of If.
func Unless(condition bool, node *VNode) *VNode {
	return If(!condition, node)
}

// Case represents a case in a Switch statement.
type Case[T comparable] struct {
	Value     T
	Node      *VNode
	IsDefault bool
}

// Case_ creates a case for Switch.
func Case_[T comparable](value T, node *VNode) Case[T] {
	return Case[T]{Value: value, Node: node}
}

// Default creates a default case for Switch.
func Default[T comparable](node *VNode) Case[T] {
	return Case[T]{Node: node, IsDefault: true}
}

// Switch returns the node for the matching case value, the default node if
// none matches, or Nothing.
func Switch[T comparable](value T, cases ...Case[T]) *VNode {
	for _, c := range cases {
		if !c.IsDefault && c.Value == value {
			return c.Node
		}
	}
	for _, c := range cases {
		if c.IsDefault {
			return c.Node
		}
	}
	return Nothing()
}

// Range maps a slice to VNodes. Give the produced nodes a Key when items
// can be reordered so their state follows the item.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	result := make([]*VNode, 0, len(items))
	for i, item := range items {
		node := fn(item, i)
		if node != nil {
			result = append(result, node)
		}
	}
	return result
}

// Repeat creates n nodes using the given function.
func Repeat(n int, fn func(i int) *VNode) []*VNode {
	if n <= 0 {
		return nil
	}
	result := make([]*VNode, 0, n)
	for i := 0; i < n; i++ {
		node := fn(i)
		if node != nil {
			result = append(result, node)
		}
	}
	return result
}

// Key creates a key attribute for reconciliation.
func Key(key any) Attr {
	return attr("key", keyString(key))
}

// WithKey sets the key of a node and returns it. Use it for component and
// fragment nodes, which do not take attributes.
func WithKey(key any, node *VNode) *VNode {
	if node != nil {
		node.Key = keyString(key)
	}
	return node
}

func keyString(key any) string {
	switch k := key.(type) {
	case nil:
		return ""
	case string:
		return k
	case int:
		return strconv.Itoa(k)
	default:
		return fmt.Sprintf("%v", k)
	}
}
