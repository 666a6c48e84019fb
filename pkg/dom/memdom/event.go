package memdom

import (
	"strings"

	"github.com/vango-dev/kite/pkg/dom"
)

// Event is a synthetic event delivered by Dispatch.
type Event struct {
	EventType string
	Source    *Node

	// Data carries arbitrary payload for handlers under test.
	Data any

	defaultPrevented bool
	stopped          bool
}

var _ dom.Event = (*Event)(nil)

// Type returns the event type, e.g. "click".
func (e *Event) Type() string { return e.EventType }

// Target returns the node the event was dispatched on.
func (e *Event) Target() dom.Node { return wrap(e.Source) }

// PreventDefault marks the event as handled.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation stops bubbling after the current handler.
func (e *Event) StopPropagation() { e.stopped = true }

// Dispatch fires an event of the given type at n and bubbles it through the
// ancestors' on* listener properties. It returns the delivered event.
func (n *Node) Dispatch(eventType string, data any) *Event {
	ev := &Event{EventType: strings.ToLower(eventType), Source: n, Data: data}
	for cur := n; cur != nil && !ev.stopped; cur = cur.parent {
		if h := cur.handlers[dom.EventPrefix+ev.EventType]; h != nil {
			h(ev)
		}
	}
	return ev
}

// Click dispatches a click event at n.
func (n *Node) Click() *Event {
	return n.Dispatch("click", nil)
}
