// Implements the CheckInWorker, one unit of the worker pool. Each worker
// wakes on every tick broadcast and serves at most one passenger from the
// shared queue head, resolving the matching FlightLedger. A missing flight
// lookup degrades to the missed-flight path; it never aborts the worker.

package sim

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// CheckInWorker serves passengers from the shared ArrivalQueue. The
// administrative open flag is independent of any flight gate. The most
// recently served record is retained for inspection by observers.
type CheckInWorker struct {
	Notifier

	id      int
	clock   *Clock
	queue   *ArrivalQueue
	flights *FlightStore
	journal *Journal

	mu      sync.Mutex
	open    bool
	current *Booking
}

// NewCheckInWorker creates an open worker with the given identity.
func NewCheckInWorker(id int, flights *FlightStore, clock *Clock, queue *ArrivalQueue, journal *Journal) *CheckInWorker {
	return &CheckInWorker{
		id:      id,
		clock:   clock,
		queue:   queue,
		flights: flights,
		journal: journal,
		open:    true,
	}
}

// ID returns the worker's identity.
func (w *CheckInWorker) ID() int {
	return w.id
}

// Open reports whether the worker is administratively open.
func (w *CheckInWorker) Open() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}

// ToggleOpen flips the administrative open flag, journals the change and
// notifies subscribers.
func (w *CheckInWorker) ToggleOpen() {
	w.mu.Lock()
	w.open = !w.open
	open := w.open
	w.mu.Unlock()

	state := "closed."
	if open {
		state = "opened."
	}
	w.journal.Append(fmt.Sprintf("%s Checkin counter %d %s", w.clock.CurrentTickLabel(), w.id, state))
	w.Publish(w, w)
}

// CurrentBooking returns the record this worker most recently served, or nil
// when the last tick recycled the head or the worker has not served yet.
func (w *CheckInWorker) CurrentBooking() *Booking {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

func (w *CheckInWorker) setCurrent(rec *Booking) {
	w.mu.Lock()
	w.current = rec
	w.mu.Unlock()
}

// ServeOneTick performs this worker's step for one tick: no-op when closed
// or the line is empty; recycle the head when it is already marked missed;
// otherwise dequeue the head and check it in against its flight's ledger.
func (w *CheckInWorker) ServeOneTick(currentTick int64, label string) {
	if !w.Open() || w.queue.Len() == 0 {
		return
	}

	head := w.queue.PeekHead()
	if head == nil {
		return
	}
	if head.Missed() {
		// Leave the record in the simulation for a later tick; this worker
		// just pushes it behind the rest of the line.
		w.queue.RecycleHeadToTail()
		w.setCurrent(nil)
		w.Publish(w, w)
		return
	}

	rec := w.queue.DequeueHead()
	if rec == nil {
		// Another worker won the head between the peek and the dequeue.
		w.setCurrent(nil)
		w.Publish(w, w)
		return
	}

	w.checkIn(rec, currentTick, label)
	w.setCurrent(rec)
	w.Publish(w, w)
}

// checkIn resolves the flight ledger and either boards the passenger or
// sends them back to the tail as a missed flight.
func (w *CheckInWorker) checkIn(rec *Booking, currentTick int64, label string) {
	flight := w.flights.Get(rec.FlightCode)
	if flight == nil {
		logrus.Warnf("counter %d: no flight %q for booking %s", w.id, rec.FlightCode, rec.Reference)
	}

	if flight != nil && flight.CheckGate(currentTick, label) {
		outcome := flight.EvaluateBaggage(rec.BaggageWeight, rec.BaggageLength, rec.BaggageHeight, rec.BaggageWidth)
		if outcome.OverLimit {
			rec.SetExcessFee(flight.ExcessFee())
		}
		// An over-limit passenger still boards, having paid the fee.
		flight.RecordBoarding()
		rec.MarkCheckedIn()
		w.journal.Append(fmt.Sprintf("%s [Counter %d] %s checked into flight %s. Excess fee of £%v charged.",
			label, w.id, rec.FullName(), flight.FlightCode(), rec.ExcessFee()))
		return
	}

	// Gate closed or unknown flight: the passenger rejoins the tail for
	// bookkeeping rather than vanishing.
	rec.MarkMissed()
	w.queue.EnqueueDirect(rec)
	flightName := "Unknown Flight"
	if flight != nil {
		flightName = flight.FlightCode()
	}
	w.journal.Append(fmt.Sprintf("%s [Counter %d] %s has already departed, %s has missed their flight and has joined the end of the queue.",
		label, w.id, flightName, rec.FullName()))
}

// Run is the worker loop: block until the next tick broadcast, then serve at
// most one passenger for that tick. Exits when the clock is stopped. Runs as
// its own goroutine.
func (w *CheckInWorker) Run() {
	logrus.Debugf("counter %d loop started", w.id)
	last := w.clock.CurrentTick()
	for {
		tick, ok := w.clock.WaitNextTick(last)
		if !ok {
			logrus.Debugf("counter %d: clock stopped", w.id)
			return
		}
		last = tick
		w.ServeOneTick(tick, TickLabel(tick))
	}
}
