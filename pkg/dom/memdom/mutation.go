package memdom

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Op is the kind of recorded mutation.
type Op uint8

const (
	OpAppendChild Op = iota + 1
	OpInsertBefore
	OpReplaceChild
	OpRemoveChild
	OpSetNodeValue
	OpSetAttribute
	OpRemoveAttribute
	OpSetProperty
	OpSetEventHandler
)

// String returns the string representation of the Op.
func (op Op) String() string {
	switch op {
	case OpAppendChild:
		return "appendChild"
	case OpInsertBefore:
		return "insertBefore"
	case OpReplaceChild:
		return "replaceChild"
	case OpRemoveChild:
		return "removeChild"
	case OpSetNodeValue:
		return "setNodeValue"
	case OpSetAttribute:
		return "setAttribute"
	case OpRemoveAttribute:
		return "removeAttribute"
	case OpSetProperty:
		return "setProperty"
	case OpSetEventHandler:
		return "setEventHandler"
	default:
		return "unknown"
	}
}

// Mutation is one recorded DOM write.
//
// For tree operations Name is the inserted/removed node name and Value the
// reference or replaced node name; for attribute, property and listener
// writes Name is the attribute or property name.
type Mutation struct {
	Op     Op
	Target *Node
	Name   string
	Value  string
}

// String renders the mutation as "target op name value", leaving out
// empty fields.
func (m Mutation) String() string {
	target := ""
	if m.Target != nil {
		target = m.Target.name
	}
	parts := []string{target, m.Op.String()}
	if m.Name != "" {
		parts = append(parts, m.Name)
	}
	if m.Value != "" {
		parts = append(parts, m.Value)
	}
	return strings.Join(parts, " ")
}

// Strings renders a mutation list, convenient for cmp.Diff in tests.
func Strings(ms []Mutation) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.String()
	}
	return out
}

func propString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	default:
		if reflect.TypeOf(v).Kind() == reflect.Func {
			return "func"
		}
		return fmt.Sprintf("%v", v)
	}
}
