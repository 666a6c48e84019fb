// Package errors provides structured, coded errors for kite.
//
// Every failure the runtime can surface carries a stable code (e.g. "K011")
// that maps to a short message, a longer explanation and a category:
//   - hook: misuse of hooks (called outside render, order changed)
//   - render: failures raised while initializing or re-rendering a component
//   - effect: failures raised by effect bodies or their cleanups
//   - state: failures raised by state updaters
//   - config: invalid kite.json
//   - literal: invalid JSON vnode literals
//
// # Usage
//
//	err := errors.New("K011").
//	    WithComponent("TodoList").
//	    Wrap(cause)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR K011: Component render failed
//	//
//	//   in <TodoList>
//	//
//	//   cause: index out of range [3] with length 3
package errors
