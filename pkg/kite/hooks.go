package kite

import (
	"fmt"
	"reflect"

	kerrors "github.com/vango-dev/kite/internal/errors"
	"github.com/vango-dev/kite/pkg/dom"
	"github.com/vango-dev/kite/pkg/vdom"
)

// useSlot returns the value stored in the next hook slot, creating it with
// create during the first render. Hooks are addressed purely by call
// position, so a slot of the wrong type or a new slot after the first render
// means the component changed its hook order.
func useSlot[T any](c *Ctx, hook string, create func() T) T {
	if c == nil || c.done {
		panic(kerrors.New("K001").WithDetail(hook + " called outside a component render"))
	}
	idx := c.index
	c.index++

	if idx < len(c.store.Slots) {
		v, ok := c.store.Slots[idx].(T)
		if !ok {
			panic(kerrors.New("K002").WithComponent(c.Name()).
				WithDetail(fmt.Sprintf("%s at index %d found a %s slot", hook, idx, slotKind(c.store.Slots[idx]))))
		}
		return v
	}
	if !c.init {
		panic(kerrors.New("K002").WithComponent(c.Name()).
			WithDetail(fmt.Sprintf("extra %s hook at index %d", hook, idx)))
	}

	v := create()
	c.store.Slots = append(c.store.Slots, v)
	return v
}

// slotKind names the hook that created a slot.
func slotKind(slot any) string {
	switch s := slot.(type) {
	case *effectSlot:
		if s.layout {
			return "UseLayoutEffect"
		}
		return "UseEffect"
	case *handlerSlot:
		return "UseErrorHandler"
	case stateSlotter:
		return "UseState"
	default:
		return reflect.TypeOf(slot).String()
	}
}

type stateSlotter interface{ isStateSlot() }

// ============================================================================
// UseState
// ============================================================================

type stateSlot[T any] struct {
	value   T
	evolver *Evolver[T]
}

func (*stateSlot[T]) isStateSlot() {}

// Evolver updates the state of one UseState slot. The same *Evolver is
// returned on every render of the instance, so it can be captured by event
// handlers and effects. Updates to an unmounted instance are ignored.
type Evolver[T any] struct {
	rt   *Runtime
	link *vdom.Link
	slot *stateSlot[T]
}

// UseState returns the current state and its evolver. initial is used on
// the first render only.
//
//	count, set := kite.UseState(c, 0)
//	set.Update(func(n int) int { return n + 1 })
func UseState[T any](c *Ctx, initial T) (T, *Evolver[T]) {
	s := useSlot(c, "UseState", func() *stateSlot[T] {
		st := &stateSlot[T]{value: initial}
		st.evolver = &Evolver[T]{rt: c.rt, link: c.link, slot: st}
		return st
	})
	return s.value, s.evolver
}

// Get returns the latest state, including updates not yet rendered.
func (e *Evolver[T]) Get() T {
	return e.slot.value
}

// Set stores v. Map states are shallow-merged: keys of v overwrite the
// current entries and other entries are kept. Use Replace to drop keys.
func (e *Evolver[T]) Set(v T) {
	e.evolve(func(cur T) T { return mergeState(cur, v) })
}

// Replace stores v as is.
func (e *Evolver[T]) Replace(v T) {
	e.evolve(func(T) T { return v })
}

// Update stores the result of fn applied to the latest state.
func (e *Evolver[T]) Update(fn func(T) T) {
	e.evolve(fn)
}

func (e *Evolver[T]) evolve(fn func(T) T) {
	if e.link.Dead {
		e.rt.logger.Debug("kite: state update on unmounted instance ignored", "component", e.link.Name())
		return
	}

	next, err := applyUpdate(e.slot.value, fn)
	if err != nil {
		err = err.WithComponent(e.link.Name())
		if e.link.Rendering {
			// The owner's render boundary takes it.
			panic(err)
		}
		e.rt.failInstance(e.link, err)
		return
	}
	e.slot.value = next
	e.rt.dispatch(e.link)
}

func applyUpdate[T any](cur T, fn func(T) T) (next T, kerr *kerrors.KiteError) {
	defer func() {
		if rec := recover(); rec != nil {
			kerr = kerrors.FromPanic(rec, "K013")
		}
	}()
	return fn(cur), nil
}

// mergeState shallow-merges map values and replaces everything else.
func mergeState[T any](cur, v T) T {
	cv := reflect.ValueOf(&cur).Elem()
	nv := reflect.ValueOf(&v).Elem()
	if cv.Kind() != reflect.Map || cv.IsNil() || nv.IsNil() {
		return v
	}
	merged := reflect.MakeMapWithSize(cv.Type(), cv.Len()+nv.Len())
	iter := cv.MapRange()
	for iter.Next() {
		merged.SetMapIndex(iter.Key(), iter.Value())
	}
	iter = nv.MapRange()
	for iter.Next() {
		merged.SetMapIndex(iter.Key(), iter.Value())
	}
	return merged.Interface().(T)
}

// ============================================================================
// UseReducer
// ============================================================================

type reducerSlot[S, A any] struct {
	reducer  func(S, A) S
	dispatch func(A)
}

// UseReducer returns the current state and a stable dispatch function that
// applies the latest reducer to it.
func UseReducer[S, A any](c *Ctx, reducer func(S, A) S, initial S) (S, func(A)) {
	state, ev := UseState(c, initial)
	s := useSlot(c, "UseReducer", func() *reducerSlot[S, A] {
		rs := &reducerSlot[S, A]{}
		rs.dispatch = func(action A) {
			ev.Update(func(cur S) S { return rs.reducer(cur, action) })
		}
		return rs
	})
	s.reducer = reducer
	return state, s.dispatch
}

// ============================================================================
// UseRef
// ============================================================================

// Ref is a mutable box that survives re-renders. Writing Current does not
// schedule a render.
type Ref[T any] struct {
	Current T
	link    *vdom.Link
}

// UseRef returns the instance's ref, created with initial on first render.
func UseRef[T any](c *Ctx, initial T) *Ref[T] {
	return useSlot(c, "UseRef", func() *Ref[T] {
		return &Ref[T]{Current: initial, link: c.link}
	})
}

// Node returns the first live DOM node of the instance, or nil before mount
// and after unmount.
func (r *Ref[T]) Node() dom.Node {
	if r.link == nil || r.link.Dead || r.link.Node == nil {
		return nil
	}
	nodes := r.link.Node.DOMNodes()
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// ============================================================================
// UseMemo / UseCallback
// ============================================================================

type memoSlot[T any] struct {
	value  T
	inputs []any
	ready  bool
}

// UseMemo returns fn's result, recomputing it only when inputs are not
// deeply equal to those of the previous computation.
func UseMemo[T any](c *Ctx, fn func() T, inputs ...any) T {
	s := useSlot(c, "UseMemo", func() *memoSlot[T] { return &memoSlot[T]{} })
	if !s.ready || !reflect.DeepEqual(s.inputs, inputs) {
		s.value = fn()
		s.inputs = inputs
		s.ready = true
	}
	return s.value
}

// UseCallback returns fn as first seen, replacing it only when deps change.
func UseCallback[F any](c *Ctx, fn F, deps ...any) F {
	return UseMemo(c, func() F { return fn }, deps...)
}

// ============================================================================
// UseErrorHandler
// ============================================================================

type handlerSlot struct{}

// UseErrorHandler registers fn as the instance's error handler for errors
// raised by the instance itself and by its descendants. The returned tree
// becomes this instance's rendition, replacing its whole subtree, and the
// failing descendant is torn down; nil renders nothing. The fallback stays
// until the instance renders again. The handler must be registered on every
// render to stay active.
func UseErrorHandler(c *Ctx, fn func(err error) *vdom.VNode) {
	useSlot(c, "UseErrorHandler", func() *handlerSlot { return &handlerSlot{} })
	c.store.ErrorHandler = fn
	c.handlerSet = true
}
