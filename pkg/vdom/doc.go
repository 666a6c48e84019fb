// Package vdom provides the virtual node model for kite.
//
// A VNode is a lightweight description of a piece of UI: an element, a text
// node, a fragment grouping siblings without a wrapper, a component
// invocation, or a nothing placeholder. Trees of VNodes are produced by
// component render functions and reconciled against the live DOM by the
// kite runtime.
//
// # Core Types
//
// VNode is a closed union discriminated by VKind. Props holds attributes and
// on* listeners. Link and HookStore hold the per-instance state of mounted
// component nodes and are maintained by the runtime.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	    OnClick(handler),
//	)
//
// H builds nodes from a tag, a props map and loosely typed children, which
// is convenient for generated code and tooling. ParseJSON decodes vnode
// literals.
package vdom
