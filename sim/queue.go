// Implements the ArrivalQueue, which holds all passengers waiting to be
// served. An unreleased pool feeds a FIFO line through randomized, tick-gated
// release draws; workers drain the line head. One mutex guards pool and line
// together so no two operations can interleave partially.

package sim

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// ArrivalQueue is the single shared line of waiting passenger records.
// Every record is in exactly one of: the unreleased pool, the line, the
// hands of one worker, or terminally boarded.
type ArrivalQueue struct {
	Notifier

	clock           *Clock
	journal         *Journal
	rng             *rand.Rand
	releasesPerTick int

	mu          sync.Mutex
	pool        []*Booking
	line        []*Booking
	allReleased bool
}

// NewArrivalQueue seeds the queue with the full unreleased pool. The rng
// drives the uniform random release draws; releasesPerTick bounds how many
// records surface per tick (six in the standard configuration).
func NewArrivalQueue(clock *Clock, journal *Journal, pool []*Booking, rng *rand.Rand, releasesPerTick int) *ArrivalQueue {
	q := &ArrivalQueue{
		clock:           clock,
		journal:         journal,
		rng:             rng,
		releasesPerTick: releasesPerTick,
		pool:            append([]*Booking(nil), pool...),
	}
	return q
}

// ReleaseNextRandom moves one uniformly random record from the unreleased
// pool to the line tail and notifies with that record. Once the pool is
// empty it emits a payload-free "all released" notification exactly once;
// further calls are no-ops.
func (q *ArrivalQueue) ReleaseNextRandom() {
	q.mu.Lock()
	if len(q.pool) > 0 {
		i := q.rng.Intn(len(q.pool))
		rec := q.pool[i]
		q.pool = append(q.pool[:i], q.pool[i+1:]...)
		q.line = append(q.line, rec)
		q.journal.Append(q.clock.CurrentTickLabel() + " " + rec.FullName() + " joined the queue.")
		q.mu.Unlock()
		q.Publish(q, rec)
		return
	}
	first := !q.allReleased
	q.allReleased = true
	if first {
		q.journal.Append(q.clock.CurrentTickLabel() + " All passengers have joined the queue")
	}
	q.mu.Unlock()
	if first {
		q.Publish(q, nil)
	}
}

// EnqueueDirect appends a record to the line tail, bypassing the pool. Used
// for missed-flight recycling and any direct re-join determined by a worker.
func (q *ArrivalQueue) EnqueueDirect(rec *Booking) {
	q.mu.Lock()
	q.line = append(q.line, rec)
	q.journal.Append(q.clock.CurrentTickLabel() + " " + rec.FullName() + " joined the queue.")
	q.mu.Unlock()

	q.Publish(q, rec)
}

// DequeueHead removes and returns the head of the line, or nil if the line
// is empty. Subscribers are notified with no payload on success.
func (q *ArrivalQueue) DequeueHead() *Booking {
	q.mu.Lock()
	if len(q.line) == 0 {
		q.mu.Unlock()
		return nil
	}
	rec := q.line[0]
	q.line = q.line[1:]
	q.journal.Append(q.clock.CurrentTickLabel() + " " + rec.FullName() + " left the queue.")
	q.mu.Unlock()

	q.Publish(q, nil)
	return rec
}

// RecycleHeadToTail moves the current head behind every record in the line,
// leaving the record in the simulation. No-op on an empty line.
func (q *ArrivalQueue) RecycleHeadToTail() {
	q.mu.Lock()
	if len(q.line) == 0 {
		q.mu.Unlock()
		return
	}
	rec := q.line[0]
	q.line = append(q.line[1:], rec)
	q.journal.Append(q.clock.CurrentTickLabel() + " Recycled to the end: " + rec.FullName())
	q.mu.Unlock()

	q.Publish(q, rec)
}

// Len returns the number of records currently in the line.
func (q *ArrivalQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.line)
}

// PeekHead returns the head of the line without removing it, or nil.
func (q *ArrivalQueue) PeekHead() *Booking {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.line) == 0 {
		return nil
	}
	return q.line[0]
}

// PoolSize returns the number of records still unreleased.
func (q *ArrivalQueue) PoolSize() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pool)
}

// AllReleased reports whether the unreleased pool has been exhausted.
func (q *ArrivalQueue) AllReleased() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.allReleased
}

// Drained reports whether the pool is exhausted and the line is empty.
func (q *ArrivalQueue) Drained() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.allReleased && len(q.line) == 0
}

// releaseBatch performs up to releasesPerTick release draws.
func (q *ArrivalQueue) releaseBatch() {
	for i := 0; i < q.releasesPerTick; i++ {
		q.ReleaseNextRandom()
	}
}

// RunReleases is the producer loop: an initial batch before the first tick,
// then one batch per tick-advanced broadcast. The loop keeps waking after
// the pool is exhausted (no-op batches) and exits once the pool is exhausted
// and the line is empty, or the clock is stopped. Runs as its own goroutine.
func (q *ArrivalQueue) RunReleases() {
	logrus.Debug("release loop started")
	q.releaseBatch()
	last := q.clock.CurrentTick()
	for {
		tick, ok := q.clock.WaitNextTick(last)
		if !ok {
			logrus.Debug("release loop: clock stopped")
			return
		}
		last = tick
		q.releaseBatch()
		if q.Drained() {
			logrus.Debug("release loop: queue drained")
			return
		}
	}
}

func (q *ArrivalQueue) String() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	var sb strings.Builder
	sb.WriteString("[")
	for i, rec := range q.line {
		sb.WriteString(fmt.Sprint(rec.Reference))
		if i < len(q.line)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
