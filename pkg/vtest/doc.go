// Package vtest provides testing helpers for kite components.
//
// A Harness wires a Runtime to an in-memory document and a manual frame
// scheduler, so tests decide exactly when frames run:
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.New(t)
//	    h.Mount(kite.C(Counter, nil))
//	    h.ExpectHTML(`<button id="inc">0</button>`)
//
//	    h.Click("inc")
//	    h.ExpectHTML(`<button id="inc">1</button>`)
//	}
//
// # Frames
//
// Mount, Click and Dispatch settle the scheduler: frames run until none are
// pending, which covers the mount, the re-renders caused by state updates and
// passive effects. Use Flush to step one frame at a time.
//
// # Errors
//
// Errors reported by the runtime are collected instead of logged.
// ExpectNoErrors fails the test if any were reported, and Errors returns them
// for inspection.
//
// # Mutations
//
// The mutation log of the document records every DOM write since the last
// ResetMutations, which makes it easy to assert that an update was minimal:
//
//	h.ResetMutations()
//	h.Rerender()
//	if n := len(h.Mutations()); n != 0 {
//	    t.Errorf("idle update wrote %d mutations", n)
//	}
package vtest
