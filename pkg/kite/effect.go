package kite

import (
	"reflect"

	kerrors "github.com/vango-dev/kite/internal/errors"
	"github.com/vango-dev/kite/pkg/telemetry"
	"github.com/vango-dev/kite/pkg/vdom"
)

// Cleanup is returned by an effect and runs before the effect runs again
// and when the instance unmounts.
type Cleanup func()

// effectSlot is the hook slot of UseEffect and UseLayoutEffect.
type effectSlot struct {
	layout bool

	// deps are the dependencies of the last run.
	deps []any
	ran  bool

	// fn and nextDeps are the effect waiting to run.
	fn       func() Cleanup
	nextDeps []any
	queued   bool

	cleanup Cleanup
}

// pendingEffect is a committed effect waiting to run.
type pendingEffect struct {
	link *vdom.Link
	slot *effectSlot
}

// Deps builds a dependency list. Unlike a nil slice, Deps() with no values
// means "run once after mount".
func Deps(values ...any) []any {
	if values == nil {
		return []any{}
	}
	return values
}

// UseEffect schedules fn to run on the frame after the render commits.
//
// deps controls re-runs: nil runs fn after every render, an empty list
// (Deps()) runs it once after mount, and otherwise fn runs whenever deps
// are not deeply equal to those of the previous run. The cleanup fn returns
// runs before the next run and on unmount.
func UseEffect(c *Ctx, fn func() Cleanup, deps []any) {
	useEffect(c, "UseEffect", false, fn, deps)
}

// UseLayoutEffect is UseEffect run synchronously at the end of the render
// pass, after the DOM is updated and before Render returns. Descendants'
// layout effects run before their ancestors'.
func UseLayoutEffect(c *Ctx, fn func() Cleanup, deps []any) {
	useEffect(c, "UseLayoutEffect", true, fn, deps)
}

func useEffect(c *Ctx, hook string, layout bool, fn func() Cleanup, deps []any) {
	s := useSlot(c, hook, func() *effectSlot { return &effectSlot{layout: layout} })
	if s.layout != layout {
		panic(kerrors.New("K002").WithComponent(c.Name()).
			WithDetail(hook + " found a slot created by a different effect hook"))
	}

	if s.ran && deps != nil && reflect.DeepEqual(s.deps, deps) {
		return
	}
	s.fn = fn
	s.nextDeps = deps
	if !s.queued {
		s.queued = true
		c.effects = append(c.effects, s)
	}
}

// discardEffects drops the effects queued by a render that will not commit.
func (c *Ctx) discardEffects() {
	for _, s := range c.effects {
		s.queued = false
		s.fn = nil
	}
	c.effects = nil
}

// commit hands the effects of a committed render to the pass.
func (p *pass) commit(link *vdom.Link, effects []*effectSlot) {
	for _, s := range effects {
		e := pendingEffect{link: link, slot: s}
		if s.layout {
			p.layout = append(p.layout, e)
		} else {
			p.passive = append(p.passive, e)
		}
	}
}

func (r *Runtime) flushLayout(p *pass) {
	// Effects may fail and re-render a boundary, which commits more layout
	// effects into p.
	for i := 0; i < len(p.layout); i++ {
		e := p.layout[i]
		if err := r.runEffect(e); err != nil {
			r.failInPass(p, e.link, err)
		}
	}
	p.layout = nil
}

func (r *Runtime) schedulePassive(effects []pendingEffect) {
	if len(effects) == 0 {
		return
	}
	r.frames.RequestFrame(func() {
		for _, e := range effects {
			if err := r.runEffect(e); err != nil {
				r.failInstance(e.link, err)
			}
		}
	})
}

// runEffect runs a committed effect, first running the previous cleanup.
// Effects of unmounted instances are skipped.
func (r *Runtime) runEffect(e pendingEffect) (err error) {
	s := e.slot
	if !s.queued {
		return nil
	}
	s.queued = false
	if e.link.Dead {
		s.fn = nil
		return nil
	}

	r.runCleanup(e.link, s)

	fn := s.fn
	s.fn = nil
	s.deps = s.nextDeps
	s.ran = true
	if fn == nil {
		return nil
	}

	kind := telemetry.EffectPassive
	if s.layout {
		kind = telemetry.EffectLayout
	}
	r.metrics.EffectRun(kind)

	defer func() {
		if rec := recover(); rec != nil {
			err = kerrors.FromPanic(rec, "K012").WithComponent(e.link.Name())
		}
	}()
	s.cleanup = fn()
	return nil
}

// runCleanup runs and clears the slot's cleanup. Panics are logged and
// swallowed.
func (r *Runtime) runCleanup(link *vdom.Link, s *effectSlot) {
	cleanup := s.cleanup
	if cleanup == nil {
		return
	}
	s.cleanup = nil
	r.metrics.EffectRun(telemetry.EffectCleanup)

	defer func() {
		if rec := recover(); rec != nil {
			err := kerrors.FromPanic(rec, "K014").WithComponent(link.Name())
			r.metrics.Error(string(kerrors.CategoryEffect), false)
			r.logger.Debug("kite: cleanup panicked", "component", link.Name(), "error", err)
		}
	}()
	cleanup()
}

// unmountHooks runs every remaining cleanup of an instance exactly once
// and marks it dead so pending effects and state updates become no-ops.
func (r *Runtime) unmountHooks(link *vdom.Link, store *vdom.HookStore) {
	if link == nil || link.Dead {
		return
	}
	link.Dead = true
	if store == nil {
		return
	}
	for _, slot := range store.Slots {
		if s, ok := slot.(*effectSlot); ok {
			s.queued = false
			s.fn = nil
			r.runCleanup(link, s)
		}
	}
}
