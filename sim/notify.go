// Implements the notification fan-out shared by every emitting component.
// Clock, ArrivalQueue, FlightLedger and CheckInWorker each embed a Notifier
// and publish an Event after completing a state change.

package sim

import "sync"

// Event is delivered to listeners when a component's state changes.
// Source is the emitting component. Payload identifies the entity whose
// state just changed and is one of:
//   - int64: the new tick value (published by Clock)
//   - *Booking: a record that moved in or out of the queue
//   - *FlightLedger: a ledger whose gate or totals changed
//   - *CheckInWorker: a worker whose serving state changed
//   - nil: inspect the Source itself (e.g. a dequeue, or "all released")
type Event struct {
	Source  any
	Payload any
}

// Listener receives events from any component it subscribed to.
type Listener interface {
	HandleEvent(Event)
}

// Notifier holds a subscriber list and publishes events to it.
// It is embedded by value into each emitting component rather than
// implemented through a shared base type.
type Notifier struct {
	mu        sync.Mutex
	listeners []Listener
}

// Subscribe registers a listener for future events.
func (n *Notifier) Subscribe(l Listener) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, l)
}

// Unsubscribe removes a previously registered listener.
// Unknown listeners are ignored.
func (n *Notifier) Unsubscribe(l Listener) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, cur := range n.listeners {
		if cur == l {
			n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
			return
		}
	}
}

// Publish delivers an event to every current subscriber.
// The subscriber list is snapshotted so listeners may subscribe or
// unsubscribe from within HandleEvent without deadlocking.
func (n *Notifier) Publish(source, payload any) {
	n.mu.Lock()
	snapshot := make([]Listener, len(n.listeners))
	copy(snapshot, n.listeners)
	n.mu.Unlock()

	for _, l := range snapshot {
		l.HandleEvent(Event{Source: source, Payload: payload})
	}
}
