// Package events keeps the ordered list of listeners that are notified when a
// framework event fires. Firing is driven by the request layer; this package
// only stores listeners and delivers to them in registration order.
package events

import "sync"

// Listener receives fired events.
type Listener interface {
	Receive(eventType string, payload any)
}

// ListenerFunc adapts a function to a Listener.
type ListenerFunc func(eventType string, payload any)

func (f ListenerFunc) Receive(eventType string, payload any) { f(eventType, payload) }

// Subscriber is an optional Listener capability restricting delivery to the
// listed event types.
type Subscriber interface {
	Listener
	SubscribedEvents() []string
}

// Dispatcher holds listeners in registration order.
//
// Registration is list-like: adding the same listener twice makes it receive
// every event twice.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners []Listener
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher { return &Dispatcher{} }

// AddListener appends l. A nil listener is ignored.
func (d *Dispatcher) AddListener(l Listener) {
	if l == nil {
		return
	}
	d.mu.Lock()
	d.listeners = append(d.listeners, l)
	d.mu.Unlock()
}

// Listeners returns a snapshot of the registered listeners.
func (d *Dispatcher) Listeners() []Listener {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Listener, len(d.listeners))
	copy(out, d.listeners)
	return out
}

// Dispatch notifies every interested listener, in registration order, and
// returns how many were notified. Listeners added while dispatching only see
// later events.
func (d *Dispatcher) Dispatch(eventType string, payload any) int {
	n := 0
	for _, l := range d.Listeners() {
		if s, ok := l.(Subscriber); ok && !subscribed(s, eventType) {
			continue
		}
		l.Receive(eventType, payload)
		n++
	}
	return n
}

func subscribed(s Subscriber, eventType string) bool {
	for _, e := range s.SubscribedEvents() {
		if e == eventType {
			return true
		}
	}
	return false
}
