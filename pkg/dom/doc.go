// Package dom defines the DOM boundary the reconciler talks to.
//
// The reconciler never touches a browser API directly. It creates and mutates
// nodes through Document and Node, which are implemented by:
//
//   - memdom: an in-memory DOM with a mutation log, used by tests and tooling
//   - jsdom: the browser DOM through syscall/js (js/wasm builds only)
//
// Only standard DOM operations appear here: node creation, appendChild,
// insertBefore, replaceChild, removeChild, attribute writes, and direct
// property assignment for listeners, boolean state and form values.
package dom
