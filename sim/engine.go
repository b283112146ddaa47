// The Engine assembles and runs the simulation: one clock loop, one release
// loop and one loop per worker, all goroutines coordinated through the
// clock's tick broadcast. The loader builds the stores before the first
// tick; the engine never parses input itself.

package sim

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// drainQuietTicks is how many consecutive tick boundaries the queue must be
// observed drained before the engine declares the run finished. Two
// boundaries give in-flight workers a full tick to re-enqueue a missed
// passenger.
const drainQuietTicks = 2

// Engine owns the simulation's moving parts and their lifecycle.
type Engine struct {
	cfg EngineConfig

	clock    *Clock
	queue    *ArrivalQueue
	workers  []*CheckInWorker
	flights  *FlightStore
	bookings *BookingStore
	journal  *Journal

	wg sync.WaitGroup
}

// NewEngine wires the clock, queue and worker pool from the given stores.
// The queue is seeded with every booking as the unreleased pool.
func NewEngine(cfg EngineConfig, flights *FlightStore, bookings *BookingStore, journal *Journal) (*Engine, error) {
	cfg.ApplyDefaults()

	clock := NewClock(cfg.BaseTickInterval)
	if err := clock.SetSpeed(cfg.Speed); err != nil {
		return nil, err
	}

	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed)).ForSubsystem(SubsystemArrivals)
	queue := NewArrivalQueue(clock, journal, bookings.All(), rng, cfg.ReleasesPerTick)

	workers := make([]*CheckInWorker, 0, cfg.Workers)
	for i := 1; i <= cfg.Workers; i++ {
		workers = append(workers, NewCheckInWorker(i, flights, clock, queue, journal))
	}

	return &Engine{
		cfg:      cfg,
		clock:    clock,
		queue:    queue,
		workers:  workers,
		flights:  flights,
		bookings: bookings,
		journal:  journal,
	}, nil
}

// Subscribe attaches a listener to every emitting component: the clock, the
// queue, each flight ledger and each worker.
func (e *Engine) Subscribe(l Listener) {
	e.clock.Subscribe(l)
	e.queue.Subscribe(l)
	for _, fl := range e.flights.All() {
		fl.Subscribe(l)
	}
	for _, w := range e.workers {
		w.Subscribe(l)
	}
}

// Unsubscribe detaches a listener from every emitting component.
func (e *Engine) Unsubscribe(l Listener) {
	e.clock.Unsubscribe(l)
	e.queue.Unsubscribe(l)
	for _, fl := range e.flights.All() {
		fl.Unsubscribe(l)
	}
	for _, w := range e.workers {
		w.Unsubscribe(l)
	}
}

// Run starts every loop and blocks until the context is cancelled, the
// configured horizon is reached, or the simulation drains (pool exhausted,
// line empty across consecutive tick boundaries). On return all loops have
// exited. The journal is left to the caller to flush.
func (e *Engine) Run(ctx context.Context) {
	logrus.Infof("starting engine: %d workers, %d releases/tick, speed %dx, seed %d",
		e.cfg.Workers, e.cfg.ReleasesPerTick, e.cfg.Speed, e.cfg.Seed)

	e.wg.Add(2 + len(e.workers))
	go func() {
		defer e.wg.Done()
		e.clock.Run()
	}()
	go func() {
		defer e.wg.Done()
		e.queue.RunReleases()
	}()
	for _, w := range e.workers {
		go func(w *CheckInWorker) {
			defer e.wg.Done()
			w.Run()
		}(w)
	}

	finished := make(chan struct{})
	go e.monitor(finished)

	select {
	case <-ctx.Done():
		logrus.Info("engine: shutdown requested")
	case <-finished:
	}

	e.clock.Stop()
	e.wg.Wait()
	logrus.Infof("engine stopped at tick %d", e.clock.CurrentTick())
}

// monitor watches tick boundaries for the horizon or drain condition.
func (e *Engine) monitor(finished chan<- struct{}) {
	defer close(finished)
	quiet := 0
	last := e.clock.CurrentTick()
	for {
		tick, ok := e.clock.WaitNextTick(last)
		if !ok {
			return
		}
		last = tick
		if e.cfg.Horizon > 0 && tick >= e.cfg.Horizon {
			logrus.Infof("engine: horizon %d reached", e.cfg.Horizon)
			return
		}
		if e.queue.Drained() {
			quiet++
		} else {
			quiet = 0
		}
		if quiet >= drainQuietTicks {
			logrus.Info("engine: queue drained")
			return
		}
	}
}

// Clock returns the engine's clock.
func (e *Engine) Clock() *Clock { return e.clock }

// Queue returns the shared arrival queue.
func (e *Engine) Queue() *ArrivalQueue { return e.queue }

// Workers returns the worker pool.
func (e *Engine) Workers() []*CheckInWorker { return e.workers }

// Flights returns the flight store.
func (e *Engine) Flights() *FlightStore { return e.flights }

// Bookings returns the booking store.
func (e *Engine) Bookings() *BookingStore { return e.bookings }
