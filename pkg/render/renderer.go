package render

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/vango-dev/kite/pkg/dom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output with one block element per line.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// Properties writes live boolean properties and form control values as
	// attributes.
	Properties bool

	// SkipComments drops comment nodes from the output.
	SkipComments bool
}

// Renderer serializes DOM nodes to HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders n and its subtree.
func (r *Renderer) RenderToString(n dom.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams n and its subtree to w.
func (r *Renderer) RenderToWriter(w io.Writer, n dom.Node) error {
	bw := bufio.NewWriter(w)
	r.renderNode(bw, n, 0)
	return bw.Flush()
}

// RenderChildren streams the children of n, the equivalent of innerHTML.
func (r *Renderer) RenderChildren(w io.Writer, n dom.Node) error {
	bw := bufio.NewWriter(w)
	for _, c := range n.ChildNodes() {
		r.renderNode(bw, c, 0)
	}
	return bw.Flush()
}

// HTML returns the outer HTML of n with the default configuration.
func HTML(n dom.Node) string {
	var buf bytes.Buffer
	_ = NewRenderer(RendererConfig{}).RenderToWriter(&buf, n)
	return buf.String()
}

// InnerHTML returns the HTML of the children of n with the default
// configuration.
func InnerHTML(n dom.Node) string {
	var buf bytes.Buffer
	_ = NewRenderer(RendererConfig{}).RenderChildren(&buf, n)
	return buf.String()
}

// bufio.Writer keeps the first write error and returns it from Flush, so
// the render functions below do not check each write.
func (r *Renderer) renderNode(w *bufio.Writer, n dom.Node, depth int) {
	if n == nil {
		return
	}
	switch n.NodeType() {
	case dom.ElementNode:
		r.renderElement(w, n, depth)
	case dom.TextNode:
		w.WriteString(escapeHTML(n.NodeValue()))
	case dom.CommentNode:
		if r.config.SkipComments {
			return
		}
		r.writeIndent(w, depth)
		w.WriteString("<!--")
		w.WriteString(escapeComment(n.NodeValue()))
		w.WriteString("-->")
		r.newline(w, depth)
	}
}

func (r *Renderer) renderElement(w *bufio.Writer, n dom.Node, depth int) {
	tag := n.NodeName()
	r.writeIndent(w, depth)

	w.WriteByte('<')
	w.WriteString(tag)
	r.renderAttributes(w, n, tag)
	w.WriteByte('>')

	if isVoidElement(tag) && n.NamespaceURI() != dom.SVGNamespace {
		r.newline(w, depth)
		return
	}

	children := n.ChildNodes()
	block := r.config.Pretty && len(children) > 0 && !isInlineElement(tag) && !onlyText(children)
	if block {
		w.WriteByte('\n')
	}
	childDepth := -1
	if block {
		childDepth = depth + 1
	}
	for _, c := range children {
		r.renderNode(w, c, childDepth)
	}
	if block {
		r.writeIndent(w, depth)
	}

	fmt.Fprintf(w, "</%s>", tag)
	r.newline(w, depth)
}

// renderAttributes writes attributes sorted by name, merged with live
// properties when configured.
func (r *Renderer) renderAttributes(w *bufio.Writer, n dom.Node, tag string) {
	attrs := make(map[string]string)
	for _, name := range n.AttributeNames() {
		attrs[name] = n.GetAttribute(name)
	}

	if r.config.Properties {
		for name := range booleanAttrs {
			if !dom.IsBooleanProperty(name) {
				continue
			}
			if on, ok := n.GetProperty(name).(bool); ok {
				if on {
					attrs[name] = ""
				} else {
					delete(attrs, name)
				}
			}
		}
		if dom.IsFormControl(tag) {
			if v, ok := n.GetProperty("value").(string); ok && v != "" {
				attrs["value"] = v
			}
		}
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := attrs[name]
		w.WriteByte(' ')
		w.WriteString(name)
		if value == "" && isBooleanAttr(name) {
			continue
		}
		w.WriteString(`="`)
		w.WriteString(escapeAttr(value))
		w.WriteByte('"')
	}
}

func onlyText(nodes []dom.Node) bool {
	for _, n := range nodes {
		if n.NodeType() != dom.TextNode {
			return false
		}
	}
	return true
}

// writeIndent writes indentation for pretty printing. A negative depth
// means the node is inline.
func (r *Renderer) writeIndent(w *bufio.Writer, depth int) {
	if !r.config.Pretty || depth < 0 {
		return
	}
	for i := 0; i < depth; i++ {
		w.WriteString(r.config.Indent)
	}
}

func (r *Renderer) newline(w *bufio.Writer, depth int) {
	if r.config.Pretty && depth >= 0 {
		w.WriteByte('\n')
	}
}
