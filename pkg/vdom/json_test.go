package vdom

import (
	"testing"

	kerrors "github.com/vango-dev/kite/internal/errors"
)

func TestParseJSON(t *testing.T) {
	src := `{
		"tag": "ul",
		"props": {"class": "list", "tabindex": 2, "hidden": false},
		"children": [
			{"tag": "li", "key": 1, "children": ["one"]},
			{"text": "plain"},
			{"fragment": []},
			{"nothing": true},
			null,
			7
		]
	}`
	node, err := ParseJSON([]byte(src))
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	if node.Tag != "ul" || node.Props["class"] != "list" {
		t.Errorf("root = %+v", node)
	}
	if node.Props["tabindex"] != int64(2) {
		t.Errorf("tabindex = %#v, want int64(2)", node.Props["tabindex"])
	}
	if node.Props["hidden"] != false {
		t.Errorf("hidden = %#v, want false", node.Props["hidden"])
	}

	wantKinds := []VKind{KindElement, KindText, KindFragment, KindNothing, KindNothing, KindText}
	if len(node.Children) != len(wantKinds) {
		t.Fatalf("Children len = %d, want %d", len(node.Children), len(wantKinds))
	}
	for i, k := range wantKinds {
		if node.Children[i].Kind != k {
			t.Errorf("child %d kind = %v, want %v", i, node.Children[i].Kind, k)
		}
	}
	if node.Children[0].Key != "1" {
		t.Errorf("li key = %q, want 1", node.Children[0].Key)
	}
	if node.Children[5].Text != "7" {
		t.Errorf("number text = %q, want 7", node.Children[5].Text)
	}
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ``},
		{"no form", `{"props": {}}`},
		{"two forms", `{"tag": "p", "text": "x"}`},
		{"empty tag", `{"tag": ""}`},
		{"unknown field", `{"tag": "p", "colour": "red"}`},
		{"bad child", `{"tag": "p", "children": [{"bogus": 1}]}`},
		{"syntax", `{"tag": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.src))
			if !kerrors.HasCode(err, "K040") {
				t.Errorf("ParseJSON() error = %v, want K040", err)
			}
		})
	}
}
