package vdom

import (
	"fmt"

	kerrors "github.com/vango-dev/kite/internal/errors"
)

// Special tags accepted by H.
const (
	FragmentTag = "#fragment"
	NothingTag  = "#nothing"
)

// ChildrenProp is the prop a component receives its children under.
const ChildrenProp = "children"

// H creates a node from a tag, props and children.
//
// tag is an element name, FragmentTag, NothingTag or a Component. Component
// nodes receive their children in props["children"] as []*VNode. A "key"
// prop becomes the node key. Children are coerced with Children.
func H(tag any, props Props, children ...any) *VNode {
	kids := Children(children...)

	switch t := tag.(type) {
	case string:
		switch t {
		case FragmentTag:
			return &VNode{Kind: KindFragment, Children: kids, Key: keyString(props.Get("key"))}
		case NothingTag:
			return Nothing()
		}
		p := props.Clone()
		delete(p, ChildrenProp)
		return &VNode{
			Kind:     KindElement,
			Tag:      t,
			Props:    p,
			Children: kids,
			Key:      keyString(props.Get("key")),
		}

	case Component:
		p := props.Clone()
		if len(children) > 0 {
			p[ChildrenProp] = kids
		}
		return &VNode{
			Kind:  KindComponent,
			Comp:  t,
			Props: p,
			Key:   keyString(props.Get("key")),
		}

	default:
		panic(kerrors.New("K020").WithDetail(fmt.Sprintf("unsupported tag type %T", tag)))
	}
}

// Children coerces loosely typed children into nodes: nil and booleans
// become Nothing, slices are flattened, components become component nodes
// and any other value becomes a text node.
func Children(args ...any) []*VNode {
	out := make([]*VNode, 0, len(args))
	for _, a := range args {
		out = appendChild(out, a)
	}
	return out
}

func appendChild(out []*VNode, child any) []*VNode {
	switch v := child.(type) {
	case nil, bool:
		return append(out, Nothing())
	case *VNode:
		if v == nil {
			return append(out, Nothing())
		}
		return append(out, v)
	case []*VNode:
		for _, c := range v {
			out = appendChild(out, c)
		}
		return out
	case []any:
		for _, c := range v {
			out = appendChild(out, c)
		}
		return out
	case Component:
		return append(out, &VNode{Kind: KindComponent, Comp: v, Props: Props{}})
	case string:
		return append(out, Text(v))
	default:
		return append(out, Text(fmt.Sprint(v)))
	}
}
