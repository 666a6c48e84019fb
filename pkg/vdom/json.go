package vdom

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	kerrors "github.com/vango-dev/kite/internal/errors"
)

// literal is the object form of a JSON vnode.
type literal struct {
	Tag      *string            `json:"tag"`
	Props    map[string]any     `json:"props"`
	Key      any                `json:"key"`
	Children []json.RawMessage  `json:"children"`
	Text     *string            `json:"text"`
	Fragment *[]json.RawMessage `json:"fragment"`
	Nothing  bool               `json:"nothing"`
}

// ParseJSON decodes a vnode literal.
//
// Accepted forms:
//
//	{"tag": "ul", "props": {"class": "list"}, "key": 1, "children": [...]}
//	{"text": "hello"}          or a bare JSON string or number
//	{"fragment": [...]}        or a bare JSON array
//	{"nothing": true}          or null / true / false
//
// Malformed literals return a K040 error naming the offending path.
func ParseJSON(data []byte) (*VNode, error) {
	return parseLiteral(json.RawMessage(data), "$")
}

func parseLiteral(raw json.RawMessage, path string) (*VNode, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, literalError(path, "empty literal")
	}

	switch trimmed[0] {
	case 'n', 't', 'f':
		var v any
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return nil, literalError(path, err.Error())
		}
		return Nothing(), nil

	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, literalError(path, err.Error())
		}
		return Text(s), nil

	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, literalError(path, err.Error())
		}
		children, err := parseList(items, path)
		if err != nil {
			return nil, err
		}
		return &VNode{Kind: KindFragment, Children: children}, nil

	case '{':
		return parseObject(trimmed, path)

	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return nil, literalError(path, err.Error())
		}
		return Text(n.String()), nil
	}
}

func parseObject(raw []byte, path string) (*VNode, error) {
	var lit literal
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	dec.UseNumber()
	if err := dec.Decode(&lit); err != nil {
		return nil, literalError(path, err.Error())
	}

	forms := 0
	for _, set := range []bool{lit.Tag != nil, lit.Text != nil, lit.Fragment != nil, lit.Nothing} {
		if set {
			forms++
		}
	}
	if forms != 1 {
		return nil, literalError(path, "object must have exactly one of tag, text, fragment or nothing")
	}

	switch {
	case lit.Text != nil:
		return Text(*lit.Text), nil

	case lit.Nothing:
		return Nothing(), nil

	case lit.Fragment != nil:
		children, err := parseList(*lit.Fragment, path+".fragment")
		if err != nil {
			return nil, err
		}
		return &VNode{Kind: KindFragment, Children: children, Key: keyString(lit.Key)}, nil
	}

	if *lit.Tag == "" {
		return nil, literalError(path, "tag must not be empty")
	}
	children, err := parseList(lit.Children, path+".children")
	if err != nil {
		return nil, err
	}
	props := make(Props, len(lit.Props))
	for k, v := range lit.Props {
		props[k] = normalizeNumber(v)
	}
	key := keyString(normalizeNumber(lit.Key))
	if key == "" {
		key = keyString(props["key"])
	}
	return &VNode{
		Kind:     KindElement,
		Tag:      *lit.Tag,
		Props:    props,
		Children: children,
		Key:      key,
	}, nil
}

func parseList(items []json.RawMessage, path string) ([]*VNode, error) {
	out := make([]*VNode, 0, len(items))
	for i, item := range items {
		child, err := parseLiteral(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, child)
	}
	return out, nil
}

// normalizeNumber turns decoded json.Numbers into int64 when integral and
// float64 otherwise.
func normalizeNumber(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

func literalError(path, detail string) error {
	return kerrors.New("K040").WithDetail(path + ": " + detail)
}
