package render

import "strings"

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
		"\n", "&#10;",
		"\r", "&#13;",
		"\t", "&#9;",
	)
	// Comment text must not close the comment early.
	commentEscaper = strings.NewReplacer("--", "- -")
)

// escapeHTML escapes text node content.
func escapeHTML(s string) string { return textEscaper.Replace(s) }

// escapeAttr escapes an attribute value. Whitespace control characters are
// written as character references so values survive reparsing.
func escapeAttr(s string) string { return attrEscaper.Replace(s) }

func escapeComment(s string) string { return commentEscaper.Replace(s) }
