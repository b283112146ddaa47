package sim

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// workerFixture wires a worker against one flight ledger and a live queue.
type workerFixture struct {
	worker  *CheckInWorker
	queue   *ArrivalQueue
	ledger  *FlightLedger
	journal *Journal
}

func newWorkerFixture(t *testing.T) *workerFixture {
	t.Helper()
	journal := NewJournal("")
	clock := NewClock(time.Second)
	queue := newTestQueue(nil, 6)
	ledger := NewFlightLedger(testFlightConfig(), journal)
	flights := NewFlightStore()
	require.NoError(t, flights.Add(ledger))
	return &workerFixture{
		worker:  NewCheckInWorker(1, flights, clock, queue, journal),
		queue:   queue,
		ledger:  ledger,
		journal: journal,
	}
}

func TestCheckInWorker_BoardsPassengerWithinLimits(t *testing.T) {
	f := newWorkerFixture(t)
	rec := NewBooking("R1", "Ann", "Archer", "BA123", 10, 50, 50, 50)
	f.queue.EnqueueDirect(rec)

	f.worker.ServeOneTick(50, TickLabel(50))

	assert.True(t, rec.CheckedIn())
	assert.False(t, rec.Missed())
	assert.Zero(t, rec.ExcessFee())
	assert.Equal(t, 1, f.ledger.CheckedInCount())
	assert.Equal(t, 0, f.queue.Len())
	assert.Same(t, rec, f.worker.CurrentBooking())
}

func TestCheckInWorker_ScenarioA_OverweightPaysFeeAndBoards(t *testing.T) {
	// GIVEN a 25kg bag against a 20kg allowance, volume under limit
	f := newWorkerFixture(t)
	rec := NewBooking("R1", "Ann", "Archer", "BA123", 25, 50, 50, 50)
	f.queue.EnqueueDirect(rec)

	// WHEN served at tick 50 while the gate is open
	f.worker.ServeOneTick(50, TickLabel(50))

	// THEN the flat fee is charged and the passenger still boards
	assert.Equal(t, 50.0, rec.ExcessFee())
	assert.True(t, rec.CheckedIn())
	assert.Equal(t, 1, f.ledger.CheckedInCount())
	assert.Equal(t, 50.0, f.ledger.TotalFees())
}

func TestCheckInWorker_ScenarioB_GateClosedMarksMissed(t *testing.T) {
	// GIVEN a passenger served at tick 125, past the departure tick 120
	f := newWorkerFixture(t)
	rec := NewBooking("R1", "Ann", "Archer", "BA123", 10, 50, 50, 50)
	f.queue.EnqueueDirect(rec)

	// WHEN served (this is the gate's first check)
	f.worker.ServeOneTick(125, TickLabel(125))

	// THEN the gate transitioned closed and the passenger rejoined the tail
	assert.False(t, f.ledger.GateOpen())
	assert.True(t, rec.Missed())
	assert.False(t, rec.CheckedIn())
	assert.Equal(t, 0, f.ledger.CheckedInCount())
	assert.Equal(t, 1, f.queue.Len())
	assert.Same(t, rec, f.queue.PeekHead())

	joined := strings.Join(f.journal.Lines(), "\n")
	assert.Contains(t, joined, "has missed their flight")
}

func TestCheckInWorker_UnknownFlightDegradesToMissedPath(t *testing.T) {
	f := newWorkerFixture(t)
	rec := NewBooking("R1", "Ann", "Archer", "ZZ999", 10, 50, 50, 50)
	f.queue.EnqueueDirect(rec)

	f.worker.ServeOneTick(10, TickLabel(10))

	assert.True(t, rec.Missed())
	assert.Equal(t, 1, f.queue.Len())
	joined := strings.Join(f.journal.Lines(), "\n")
	assert.Contains(t, joined, "Unknown Flight")
}

func TestCheckInWorker_RecyclesMissedHead(t *testing.T) {
	// GIVEN a line whose head is already marked missed
	f := newWorkerFixture(t)
	missed := NewBooking("R1", "Ann", "Archer", "BA123", 10, 50, 50, 50)
	missed.MarkMissed()
	waiting := NewBooking("R2", "Ben", "Baker", "BA123", 10, 50, 50, 50)
	f.queue.EnqueueDirect(missed)
	f.queue.EnqueueDirect(waiting)

	// WHEN the worker takes its tick
	f.worker.ServeOneTick(10, TickLabel(10))

	// THEN the head was recycled, not removed, and the worker serves no one
	assert.Equal(t, 2, f.queue.Len())
	assert.Same(t, waiting, f.queue.PeekHead())
	assert.Nil(t, f.worker.CurrentBooking())
	assert.Equal(t, 0, f.ledger.CheckedInCount())
}

func TestCheckInWorker_ClosedWorkerIsNoop(t *testing.T) {
	f := newWorkerFixture(t)
	rec := NewBooking("R1", "Ann", "Archer", "BA123", 10, 50, 50, 50)
	f.queue.EnqueueDirect(rec)

	f.worker.ToggleOpen() // administratively close
	require.False(t, f.worker.Open())

	f.worker.ServeOneTick(10, TickLabel(10))

	assert.Equal(t, 1, f.queue.Len())
	assert.False(t, rec.CheckedIn())
}

func TestCheckInWorker_EmptyQueueIsNoop(t *testing.T) {
	f := newWorkerFixture(t)
	listener := &recordingListener{}
	f.worker.Subscribe(listener)

	f.worker.ServeOneTick(10, TickLabel(10))

	// No serving branch ran, so no worker notification fired.
	assert.Zero(t, listener.Count())
}

func TestCheckInWorker_ToggleOpen_JournalsAndNotifies(t *testing.T) {
	f := newWorkerFixture(t)
	listener := &recordingListener{}
	f.worker.Subscribe(listener)

	f.worker.ToggleOpen()
	f.worker.ToggleOpen()

	assert.True(t, f.worker.Open())
	assert.Equal(t, 2, listener.Count())
	joined := strings.Join(f.journal.Lines(), "\n")
	assert.Contains(t, joined, "Checkin counter 1 closed.")
	assert.Contains(t, joined, "Checkin counter 1 opened.")
}

func TestCheckInWorker_NotifiesAfterServing(t *testing.T) {
	f := newWorkerFixture(t)
	listener := &recordingListener{}
	f.worker.Subscribe(listener)
	f.queue.EnqueueDirect(NewBooking("R1", "Ann", "Archer", "BA123", 10, 50, 50, 50))

	f.worker.ServeOneTick(10, TickLabel(10))

	require.Equal(t, 1, listener.Count())
	e := listener.Events()[0]
	assert.Same(t, f.worker, e.Source)
	assert.Same(t, f.worker, e.Payload)
}
