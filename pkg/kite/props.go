package kite

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/kite/pkg/dom"
	"github.com/vango-dev/kite/pkg/telemetry"
	"github.com/vango-dev/kite/pkg/vdom"
)

// updateProps brings the attributes, properties and listeners of el from
// prev to next. Keys are visited in sorted order so the sequence of DOM
// writes is stable.
func (r *Runtime) updateProps(el dom.Node, tag string, prev, next vdom.Props) {
	for _, name := range sortedKeys(prev) {
		if skipProp(name) {
			continue
		}
		if _, ok := next[name]; !ok {
			r.removeProp(el, tag, name)
		}
	}
	for _, name := range sortedKeys(next) {
		if skipProp(name) {
			continue
		}
		r.setProp(el, tag, name, next[name])
	}
}

func sortedKeys(p vdom.Props) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func skipProp(name string) bool {
	return name == "key" || name == vdom.ChildrenProp
}

func (r *Runtime) removeProp(el dom.Node, tag, name string) {
	switch {
	case dom.IsEventName(name):
		el.SetEventHandler(strings.ToLower(name), nil)
		r.metrics.DOMOp(telemetry.OpListener)
	case dom.IsBooleanProperty(name):
		el.SetProperty(name, false)
		r.metrics.DOMOp(telemetry.OpProp)
	case name == "value" && dom.IsFormControl(tag):
		el.SetProperty("value", "")
		r.metrics.DOMOp(telemetry.OpProp)
		if el.HasAttribute("value") {
			el.RemoveAttribute("value")
			r.metrics.DOMOp(telemetry.OpAttr)
		}
	default:
		r.removeAttr(el, name)
	}
}

func (r *Runtime) removeAttr(el dom.Node, name string) {
	if el.HasAttribute(name) {
		el.RemoveAttribute(name)
		r.metrics.DOMOp(telemetry.OpAttr)
	}
}

func (r *Runtime) setProp(el dom.Node, tag, name string, value any) {
	// Listeners are rebound on every update: closures from successive renders
	// cannot be compared.
	if dom.IsEventName(name) {
		el.SetEventHandler(strings.ToLower(name), toHandler(value))
		r.metrics.DOMOp(telemetry.OpListener)
		return
	}

	if dom.IsBooleanProperty(name) {
		on := truthy(value)
		if live, ok := el.GetProperty(name).(bool); !ok || live != on {
			el.SetProperty(name, on)
			r.metrics.DOMOp(telemetry.OpProp)
		}
		return
	}

	// The live value of a form control follows user input, so it is
	// compared against the property rather than the previous props.
	if name == "value" && dom.IsFormControl(tag) {
		s := ""
		if value != nil {
			s = propToString(value)
		}
		if live, _ := el.GetProperty("value").(string); live != s {
			el.SetProperty("value", s)
			r.metrics.DOMOp(telemetry.OpProp)
		}
		return
	}

	if value == nil {
		r.removeAttr(el, name)
		return
	}
	if !isScalar(value) {
		return
	}
	if b, ok := value.(bool); ok && !isEnumeratedAttr(name) {
		if !b {
			r.removeAttr(el, name)
			return
		}
		value = "true"
	}

	s := propToString(value)
	if !el.HasAttribute(name) || el.GetAttribute(name) != s {
		el.SetAttribute(name, s)
		r.metrics.DOMOp(telemetry.OpAttr)
	}
}

// isEnumeratedAttr reports whether a boolean value is written as the
// strings "true" and "false" instead of toggling presence.
func isEnumeratedAttr(name string) bool {
	return strings.HasPrefix(name, "aria-") || strings.HasPrefix(name, "data-")
}

// truthy converts a boolean prop value.
func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		return b != "" && b != "false"
	default:
		return true
	}
}

// toHandler adapts the handler forms accepted by the element DSL. Anything
// else clears the listener.
func toHandler(v any) dom.EventHandler {
	switch h := v.(type) {
	case dom.EventHandler:
		return h
	case func(dom.Event):
		return h
	case func():
		if h == nil {
			return nil
		}
		return func(dom.Event) { h() }
	default:
		return nil
	}
}

// isScalar reports whether a prop value can be written as an attribute.
func isScalar(v any) bool {
	switch reflect.TypeOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Func,
		reflect.Pointer, reflect.Chan, reflect.Interface, reflect.Complex64,
		reflect.Complex128, reflect.UnsafePointer:
		return false
	}
	return true
}

func propToString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
