//go:build js && wasm

package jsdom

import (
	"sync"
	"syscall/js"
)

// AnimationFrames schedules callbacks with requestAnimationFrame. Callbacks
// requested before the next frame fires share a single host request.
type AnimationFrames struct {
	mu      sync.Mutex
	queue   []func()
	pending bool
	tick    js.Func
}

// NewAnimationFrames creates a scheduler bound to window.requestAnimationFrame.
func NewAnimationFrames() *AnimationFrames {
	f := &AnimationFrames{}
	f.tick = js.FuncOf(func(js.Value, []js.Value) any {
		f.run()
		return nil
	})
	return f
}

// RequestFrame queues fn for the next animation frame.
func (f *AnimationFrames) RequestFrame(fn func()) {
	f.mu.Lock()
	f.queue = append(f.queue, fn)
	request := !f.pending
	f.pending = true
	f.mu.Unlock()

	if request {
		js.Global().Call("requestAnimationFrame", f.tick)
	}
}

func (f *AnimationFrames) run() {
	f.mu.Lock()
	queue := f.queue
	f.queue = nil
	f.pending = false
	f.mu.Unlock()

	for _, fn := range queue {
		fn()
	}
}

// Release frees the host callback. The scheduler must not be used after.
func (f *AnimationFrames) Release() {
	f.tick.Release()
}
