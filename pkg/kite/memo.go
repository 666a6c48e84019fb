package kite

import (
	"reflect"

	"github.com/vango-dev/kite/pkg/vdom"
)

// Memo returns a definition that renders like def but skips parent-driven
// updates whose props compare equal to the previous props. The skipped
// instance keeps its rendition, DOM and state. Updates triggered by the
// instance's own state always render. A nil compare uses ShallowEqual.
//
// Memo returns a new definition: nodes of def and of the memoized
// definition are different components.
func Memo(def *Component, compare func(prev, next vdom.Props) bool) *Component {
	if compare == nil {
		compare = ShallowEqual
	}
	inner := def.render
	return &Component{
		name: def.name,
		render: func(c *Ctx, props vdom.Props) *vdom.VNode {
			if c.parentDriven && compare(c.prevProps, props) {
				return c.Skip()
			}
			return inner(c, props)
		},
	}
}

// ShallowEqual reports whether two prop maps hold the same keys with equal
// values, ignoring children. Maps, slices, pointers and channels are equal
// when they share storage. Functions never compare equal, since closures
// created by separate renders cannot be told apart; pass a custom compare
// to Memo to ignore handler props.
func ShallowEqual(prev, next vdom.Props) bool {
	count := func(p vdom.Props) int {
		n := len(p)
		if _, ok := p[vdom.ChildrenProp]; ok {
			n--
		}
		return n
	}
	if count(prev) != count(next) {
		return false
	}
	for k, nv := range next {
		if k == vdom.ChildrenProp {
			continue
		}
		pv, ok := prev[k]
		if !ok || !sameValue(pv, nv) {
			return false
		}
	}
	return true
}

func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Func:
		return va.IsNil() && vb.IsNil()
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
