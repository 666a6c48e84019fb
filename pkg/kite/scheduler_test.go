package kite

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/vango-dev/kite/pkg/dom/memdom"
	"github.com/vango-dev/kite/pkg/render"
	"github.com/vango-dev/kite/pkg/vdom"
)

func TestManualFrames(t *testing.T) {
	f := NewManualFrames()
	var order []int
	f.RequestFrame(func() { order = append(order, 1) })
	f.RequestFrame(func() {
		order = append(order, 2)
		f.RequestFrame(func() { order = append(order, 3) })
	})

	if n := f.Pending(); n != 2 {
		t.Fatalf("Pending() = %d, want 2", n)
	}
	if n := f.Flush(); n != 2 {
		t.Errorf("Flush() = %d, want 2", n)
	}
	if len(order) != 2 || f.Pending() != 1 {
		t.Fatalf("callbacks requested during a frame must wait, order = %v", order)
	}
	f.Flush()
	if len(order) != 3 || order[2] != 3 {
		t.Errorf("order = %v", order)
	}
}

func TestManualFramesFlushAllIsBounded(t *testing.T) {
	f := NewManualFrames()
	var loop func()
	loop = func() { f.RequestFrame(loop) }
	f.RequestFrame(loop)

	if n := f.FlushAll(3); n != 3 {
		t.Errorf("FlushAll(3) = %d, want 3", n)
	}
	if f.Pending() != 1 {
		t.Errorf("a self-scheduling callback must still be pending")
	}

	idle := NewManualFrames()
	if n := idle.FlushAll(10); n != 0 {
		t.Errorf("FlushAll on an idle scheduler ran %d frames", n)
	}
}

func TestLoopFramesRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	frames := NewLoopFrames(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- frames.Run(ctx) }()

	done := make(chan struct{})
	frames.RequestFrame(func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("frame callback did not run")
	}

	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}

func TestLoopFramesDriveRuntime(t *testing.T) {
	defer goleak.VerifyNone(t)

	frames := NewLoopFrames(time.Millisecond)
	doc := memdom.NewDocument()
	root := doc.Element("div")
	rt := New(doc, WithFrames(frames))

	var set *Evolver[int]
	counter := Define("Counter", func(c *Ctx, props vdom.Props) *vdom.VNode {
		n, s := UseState(c, 0)
		set = s
		return vdom.Textf("%d", n)
	})

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- frames.Run(ctx) }()

	out := make(chan string, 1)
	rt.Mount(C(counter, nil), root)
	frames.RequestFrame(func() {
		// Runs after the mount frame, on the loop goroutine.
		set.Set(7)
		frames.RequestFrame(func() { out <- render.InnerHTML(root) })
	})

	select {
	case got := <-out:
		if got != "7" {
			t.Errorf("html = %q, want 7", got)
		}
	case <-time.After(time.Second):
		t.Fatal("runtime did not render")
	}
	cancel()
	<-errc
}

func TestNewLoopFramesDefaultsInterval(t *testing.T) {
	if f := NewLoopFrames(0); f.interval <= 0 {
		t.Errorf("interval = %v", f.interval)
	}
}
