package kite

import (
	"context"
	"sync"
	"time"
)

// FrameScheduler runs callbacks on a later frame. Callbacks requested before
// a frame starts run in that frame, in request order.
type FrameScheduler interface {
	RequestFrame(fn func())
}

// ManualFrames is a FrameScheduler driven explicitly by Flush. It is the
// default outside the browser and the scheduler used by tests.
type ManualFrames struct {
	mu    sync.Mutex
	queue []func()
}

// NewManualFrames creates an empty manual scheduler.
func NewManualFrames() *ManualFrames {
	return &ManualFrames{}
}

// RequestFrame queues fn for the next Flush.
func (f *ManualFrames) RequestFrame(fn func()) {
	f.mu.Lock()
	f.queue = append(f.queue, fn)
	f.mu.Unlock()
}

// Pending returns the number of queued callbacks.
func (f *ManualFrames) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Flush runs one frame: every callback queued before the call. Callbacks
// requested while it runs wait for the next frame. It returns the number of
// callbacks run.
func (f *ManualFrames) Flush() int {
	f.mu.Lock()
	queue := f.queue
	f.queue = nil
	f.mu.Unlock()

	for _, fn := range queue {
		fn()
	}
	return len(queue)
}

// FlushAll runs frames until none are pending or max frames have run. It
// returns the number of frames run.
func (f *ManualFrames) FlushAll(max int) int {
	frames := 0
	for frames < max && f.Pending() > 0 {
		f.Flush()
		frames++
	}
	return frames
}

// LoopFrames is a goroutine-safe FrameScheduler drained at a fixed interval
// by Run. Callbacks execute on the goroutine that called Run, so code on
// other goroutines must hand state updates to RequestFrame instead of
// calling into the runtime directly.
type LoopFrames struct {
	interval time.Duration

	mu    sync.Mutex
	queue []func()
}

// NewLoopFrames creates a loop scheduler ticking at interval.
func NewLoopFrames(interval time.Duration) *LoopFrames {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return &LoopFrames{interval: interval}
}

// RequestFrame queues fn for the next tick. Safe for concurrent use.
func (f *LoopFrames) RequestFrame(fn func()) {
	f.mu.Lock()
	f.queue = append(f.queue, fn)
	f.mu.Unlock()
}

// Run drains the queue once per tick until ctx is done.
func (f *LoopFrames) Run(ctx context.Context) error {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			f.tick()
		}
	}
}

func (f *LoopFrames) tick() {
	f.mu.Lock()
	queue := f.queue
	f.queue = nil
	f.mu.Unlock()

	for _, fn := range queue {
		fn()
	}
}
