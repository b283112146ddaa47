package cmd

import (
	"github.com/fatih/color"

	sim "github.com/checkin-sim/checkin-sim/sim"
)

// consoleObserver is the in-process stand-in for a visual front-end: a
// Listener that renders the notification feed as colored terminal lines.
// It produces no engine side effects.
type consoleObserver struct {
	tick    *color.Color
	queue   *color.Color
	ledger  *color.Color
	counter *color.Color
}

func newConsoleObserver() *consoleObserver {
	return &consoleObserver{
		tick:    color.New(color.FgCyan),
		queue:   color.New(color.FgGreen),
		ledger:  color.New(color.FgYellow),
		counter: color.New(color.FgMagenta),
	}
}

// HandleEvent implements sim.Listener.
func (o *consoleObserver) HandleEvent(e sim.Event) {
	switch src := e.Source.(type) {
	case *sim.Clock:
		if tick, ok := e.Payload.(int64); ok && tick%60 == 0 {
			o.tick.Printf("%s --- the hour turns ---\n", sim.TickLabel(tick))
		}
	case *sim.ArrivalQueue:
		if rec, ok := e.Payload.(*sim.Booking); ok {
			o.queue.Printf("queue: %s (%s) now waiting, %d in line\n", rec.FullName(), rec.FlightCode, src.Len())
		} else if src.AllReleased() && src.Len() == 0 {
			o.queue.Println("queue: everyone has arrived")
		}
	case *sim.FlightLedger:
		if !src.GateOpen() {
			o.ledger.Printf("flight %s: gate closed, %d/%d aboard, hold %.1f%% full\n",
				src.FlightCode(), src.CheckedInCount(), src.MaxPassengers(), src.BaggagePercent())
		} else {
			o.ledger.Printf("flight %s: %d/%d aboard, £%.2f fees\n",
				src.FlightCode(), src.CheckedInCount(), src.MaxPassengers(), src.TotalFees())
		}
	case *sim.CheckInWorker:
		if rec := src.CurrentBooking(); rec != nil {
			o.counter.Printf("counter %d: serving %s\n", src.ID(), rec.FullName())
		} else {
			o.counter.Printf("counter %d: idle\n", src.ID())
		}
	}
}
