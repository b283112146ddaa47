// Package sim provides the tick-synchronized airport check-in engine.
//
// # Reading Guide
//
// Start with these three files to understand the engine kernel:
//   - clock.go: the logical tick counter and the broadcast every unit waits on
//   - queue.go: the shared arrival queue (unreleased pool + FIFO line)
//   - worker.go: the per-tick check-in step each worker performs
//
// # Architecture
//
// One Clock goroutine advances simulated time; the queue's release loop and
// every CheckInWorker block on Clock.WaitNextTick and wake together on each
// advance. Workers drain the queue head against the per-flight FlightLedger,
// which owns gate state, baggage allowances and running totals.
//
// Supporting pieces:
//   - notify.go: the Notifier composed into each emitting component; the
//     front-end and Metrics subscribe through it
//   - store.go: flight/booking lookup with blank/duplicate rejection
//   - journal.go: the append-only activity log flushed at shutdown
//   - scenario.go: YAML scenario input (alternative to the CSV loader in
//     sim/loader)
//   - engine.go: construction, goroutine lifecycle and the drain condition
//
// Business rules are modeled as data, not errors: an over-limit bag yields a
// BaggageOutcome and a fee, a missing flight lookup degrades to the
// missed-flight recycling path.
package sim
