package dom

import "sync"

// Event types dispatched by this package and its embedders.
const (
	EventMouseEnter       = "mouseenter"
	EventMouseLeave       = "mouseleave"
	EventCanPlay          = "canplay"
	EventVisibilityChange = "visibilitychange"
)

// Event is a dispatched event.
type Event struct {
	Type   string
	Target *Node
}

// Listener is an event callback.
type Listener func(*Event)

// ListenerHandle identifies a registered listener for removal.
type ListenerHandle struct {
	eventType string
	id        int
}

type registeredListener struct {
	id       int
	callback Listener
}

// EventTarget manages event listeners for one node.
type EventTarget struct {
	listeners map[string][]registeredListener
	nextID    int
	mu        sync.Mutex
}

// NewEventTarget creates an empty event target.
func NewEventTarget() *EventTarget {
	return &EventTarget{listeners: make(map[string][]registeredListener)}
}

// AddEventListener registers a listener and returns a handle for removal.
func (et *EventTarget) AddEventListener(eventType string, callback Listener) ListenerHandle {
	et.mu.Lock()
	defer et.mu.Unlock()

	et.nextID++
	et.listeners[eventType] = append(et.listeners[eventType], registeredListener{
		id:       et.nextID,
		callback: callback,
	})
	return ListenerHandle{eventType: eventType, id: et.nextID}
}

// RemoveEventListener removes the listener identified by handle. Removing
// an already removed listener is a no-op.
func (et *EventTarget) RemoveEventListener(handle ListenerHandle) {
	et.mu.Lock()
	defer et.mu.Unlock()

	list := et.listeners[handle.eventType]
	for i, l := range list {
		if l.id == handle.id {
			et.listeners[handle.eventType] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of listeners registered for eventType.
func (et *EventTarget) ListenerCount(eventType string) int {
	et.mu.Lock()
	defer et.mu.Unlock()
	return len(et.listeners[eventType])
}

// Dispatch delivers the event synchronously to listeners in registration
// order. Listeners added during dispatch do not receive the current event.
func (et *EventTarget) Dispatch(ev *Event) {
	et.mu.Lock()
	list := make([]registeredListener, len(et.listeners[ev.Type]))
	copy(list, et.listeners[ev.Type])
	et.mu.Unlock()

	for _, l := range list {
		l.callback(ev)
	}
}

// DispatchEvent dispatches an event of the given type targeting e.
func (e *Element) DispatchEvent(eventType string) {
	e.Events().Dispatch(&Event{Type: eventType, Target: e.AsNode()})
}
