//go:build js && wasm

package kite

import "github.com/vango-dev/kite/pkg/dom/jsdom"

func defaultFrames() FrameScheduler {
	return jsdom.NewAnimationFrames()
}
