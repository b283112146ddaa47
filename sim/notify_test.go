package sim

import (
	"sync"
	"testing"
)

// recordingListener captures every event it receives, for use across the
// package's tests.
type recordingListener struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingListener) HandleEvent(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingListener) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recordingListener) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestNotifier_PublishReachesAllSubscribers(t *testing.T) {
	var n Notifier
	a := &recordingListener{}
	b := &recordingListener{}
	n.Subscribe(a)
	n.Subscribe(b)

	n.Publish("src", "payload")

	if a.Count() != 1 || b.Count() != 1 {
		t.Fatalf("subscriber counts: got (%d, %d), want (1, 1)", a.Count(), b.Count())
	}
	e := a.Events()[0]
	if e.Source != "src" || e.Payload != "payload" {
		t.Errorf("event: got %+v, want {src payload}", e)
	}
}

func TestNotifier_UnsubscribeStopsDelivery(t *testing.T) {
	var n Notifier
	a := &recordingListener{}
	b := &recordingListener{}
	n.Subscribe(a)
	n.Subscribe(b)

	n.Unsubscribe(a)
	n.Publish("src", nil)

	if a.Count() != 0 {
		t.Errorf("unsubscribed listener received %d events", a.Count())
	}
	if b.Count() != 1 {
		t.Errorf("remaining listener: got %d events, want 1", b.Count())
	}
}

func TestNotifier_UnsubscribeUnknownIsNoop(t *testing.T) {
	var n Notifier
	n.Unsubscribe(&recordingListener{})
	n.Publish("src", nil)
}

// selfRemover unsubscribes itself from inside HandleEvent.
type selfRemover struct {
	n     *Notifier
	calls int
}

func (s *selfRemover) HandleEvent(Event) {
	s.calls++
	s.n.Unsubscribe(s)
}

func TestNotifier_ListenerMayUnsubscribeDuringHandle(t *testing.T) {
	var n Notifier
	s := &selfRemover{n: &n}
	n.Subscribe(s)

	n.Publish("src", nil)
	n.Publish("src", nil)

	if s.calls != 1 {
		t.Fatalf("self-removing listener called %d times, want 1", s.calls)
	}
}
