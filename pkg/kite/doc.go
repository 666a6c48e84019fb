// Package kite is a virtual-DOM reconciler with a hook-based component
// runtime.
//
// Components are plain render functions registered with Define. They hold
// state and schedule side effects through hooks bound to a *Ctx:
//
//	var Counter = kite.Define("Counter", func(c *kite.Ctx, props vdom.Props) *vdom.VNode {
//	    count, set := kite.UseState(c, 0)
//	    return vdom.Button(
//	        vdom.OnClick(func() { set.Update(func(n int) int { return n + 1 }) }),
//	        vdom.Textf("clicked %d times", count),
//	    )
//	})
//
//	rt := kite.New(doc)
//	rt.Mount(kite.C(Counter, nil), root)
//
// # Rendering
//
// Runtime.Render reconciles a list of virtual nodes against the previous list
// under a DOM parent and issues the minimal DOM mutations. Children are
// matched by key when they have one and by position otherwise.
//
// # Scheduling
//
// State updates made outside a render schedule one re-render of the owning
// instance on the next frame of the runtime's FrameScheduler. Layout effects
// run at the end of the pass that committed them; passive effects run on the
// following frame.
//
// # Errors
//
// Panics in render functions, effects and state updaters are recovered and
// passed to the nearest error handler registered with UseErrorHandler,
// searching from the failing instance up through its ancestors. The tree the
// handler returns replaces the rendition of the instance that registered it.
// Errors no handler takes leave the failing instance rendering a comment
// placeholder and are returned from Render.
package kite
