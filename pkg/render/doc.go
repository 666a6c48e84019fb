// Package render serializes live DOM subtrees to HTML.
//
// It reads nodes through the dom boundary, so it works on any backend, and
// is used for test snapshots and by the kite CLI:
//
//	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(root)
//
// Attributes are written in sorted order. With RendererConfig.Properties the
// live boolean properties (checked, disabled, ...) and the value of form
// controls are written as attributes, which shows what a user would see
// rather than what the markup says.
//
// Text and attribute values are escaped. Comments are kept, since the
// reconciler uses empty comments as placeholders.
package render
