//go:build !(js && wasm)

package kite

func defaultFrames() FrameScheduler {
	return NewManualFrames()
}
