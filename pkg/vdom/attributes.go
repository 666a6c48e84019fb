package vdom

import (
	"fmt"
	"sort"
	"strings"
)

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Prop sets an arbitrary prop.
func Prop(key string, value any) Attr { return attr(key, value) }

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// AriaHidden sets the aria-hidden attribute.
func AriaHidden(hidden bool) Attr { return attr("aria-hidden", hidden) }

// TabIndex sets the tabindex attribute.
func TabIndex(index int) Attr { return attr("tabindex", index) }

// TitleAttr sets the title attribute (named to avoid conflict with Title element).
func TitleAttr(title string) Attr { return attr("title", title) }

// Link attributes

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Target sets the target attribute.
func Target(target string) Attr { return attr("target", target) }

// Rel sets the rel attribute.
func Rel(rel string) Attr { return attr("rel", rel) }

// Form input attributes

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Value sets the value. On input, textarea and select it is written as the
// live value property.
func Value(value string) Attr { return attr("value", value) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// For sets the for attribute (for labels).
func For(id string) Attr { return attr("for", id) }

// Boolean properties. These are written as DOM properties, so passing false
// clears them.

// Disabled sets the disabled property.
func Disabled(on ...bool) Attr { return attr("disabled", flag(on)) }

// Checked sets the checked property.
func Checked(on ...bool) Attr { return attr("checked", flag(on)) }

// Selected sets the selected property.
func Selected(on ...bool) Attr { return attr("selected", flag(on)) }

// Hidden sets the hidden property.
func Hidden(on ...bool) Attr { return attr("hidden", flag(on)) }

// Required sets the required property.
func Required(on ...bool) Attr { return attr("required", flag(on)) }

// Multiple sets the multiple property.
func Multiple(on ...bool) Attr { return attr("multiple", flag(on)) }

// Autofocus sets the autofocus property.
func Autofocus(on ...bool) Attr { return attr("autofocus", flag(on)) }

// Draggable sets the draggable property.
func Draggable(on ...bool) Attr { return attr("draggable", flag(on)) }

func flag(on []bool) bool {
	return len(on) == 0 || on[0]
}

// Media attributes

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Alt sets the alt attribute.
func Alt(text string) Attr { return attr("alt", text) }

// Width sets the width attribute.
func Width(w any) Attr { return attr("width", w) }

// Height sets the height attribute.
func Height(h any) Attr { return attr("height", h) }

// SVG attributes

// ViewBox sets the viewBox attribute.
func ViewBox(minX, minY, width, height float64) Attr {
	return attr("viewBox", fmt.Sprintf("%g %g %g %g", minX, minY, width, height))
}

// D sets the path data attribute.
func D(path string) Attr { return attr("d", path) }

// Fill sets the fill attribute.
func Fill(paint string) Attr { return attr("fill", paint) }

// Stroke sets the stroke attribute.
func Stroke(paint string) Attr { return attr("stroke", paint) }

// StrokeWidth sets the stroke-width attribute.
func StrokeWidth(w float64) Attr { return attr("stroke-width", w) }

// Cx, Cy and R set circle geometry.
func Cx(v float64) Attr { return attr("cx", v) }
func Cy(v float64) Attr { return attr("cy", v) }
func R(v float64) Attr  { return attr("r", v) }

// X and Y set element coordinates.
func X(v float64) Attr { return attr("x", v) }
func Y(v float64) Attr { return attr("y", v) }

// Points sets the points attribute of polyline and polygon.
func Points(points string) Attr { return attr("points", points) }

// Conditional attributes

// ClassIf adds a class conditionally.
func ClassIf(condition bool, class string) Attr {
	if condition {
		return attr("class", class)
	}
	return Attr{}
}

// AttrIf adds any attribute conditionally.
func AttrIf(condition bool, a Attr) Attr {
	if condition {
		return a
	}
	return Attr{}
}

// Classes merges multiple class values.
// Accepts string, []string, and map[string]bool. Map entries are sorted so
// the result is stable across renders.
func Classes(classes ...any) Attr {
	var result []string
	for _, c := range classes {
		switch v := c.(type) {
		case string:
			if v != "" {
				result = append(result, v)
			}
		case []string:
			for _, s := range v {
				if s != "" {
					result = append(result, s)
				}
			}
		case map[string]bool:
			var on []string
			for class, include := range v {
				if include && class != "" {
					on = append(on, class)
				}
			}
			sort.Strings(on)
			result = append(result, on...)
		}
	}
	return attr("class", strings.Join(result, " "))
}
