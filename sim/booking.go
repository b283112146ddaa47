// Defines the Booking struct that models an individual passenger record in
// the simulation. Identity and baggage dimensions are fixed at creation;
// check-in status, missed-flight status and the charged excess fee mutate as
// the record moves through the engine.

package sim

import (
	"fmt"
	"sync"
)

// Booking models a single passenger's journey through the check-in engine.
// A record is always in exactly one place: the unreleased pool, the queue
// line, in the hands of one worker, or terminally checked in.
type Booking struct {
	Reference  string // Unique booking reference
	FirstName  string
	LastName   string
	FlightCode string // Associated flight reference

	// Baggage dimensions, fixed at creation.
	BaggageWeight float64 // kg
	BaggageLength float64 // cm
	BaggageHeight float64 // cm
	BaggageWidth  float64 // cm

	mu        sync.Mutex
	checkedIn bool
	missed    bool
	excessFee float64
}

// NewBooking creates a passenger record with the given identity and baggage.
func NewBooking(reference, firstName, lastName, flightCode string, weight, length, height, width float64) *Booking {
	return &Booking{
		Reference:     reference,
		FirstName:     firstName,
		LastName:      lastName,
		FlightCode:    flightCode,
		BaggageWeight: weight,
		BaggageLength: length,
		BaggageHeight: height,
		BaggageWidth:  width,
	}
}

// FullName returns the passenger's display name.
func (b *Booking) FullName() string {
	return b.FirstName + " " + b.LastName
}

// CheckedIn reports whether the passenger has boarded.
func (b *Booking) CheckedIn() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.checkedIn
}

// MarkCheckedIn records that the passenger has boarded. Terminal.
func (b *Booking) MarkCheckedIn() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.checkedIn = true
}

// Missed reports whether the passenger has missed their flight.
func (b *Booking) Missed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.missed
}

// MarkMissed flags the passenger as having missed their flight.
func (b *Booking) MarkMissed() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.missed = true
}

// ExcessFee returns the excess baggage fee charged to this passenger,
// zero if none.
func (b *Booking) ExcessFee() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.excessFee
}

// SetExcessFee records the excess baggage fee charged at check-in.
func (b *Booking) SetExcessFee(fee float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.excessFee = fee
}

func (b *Booking) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return fmt.Sprintf("Booking: (Ref: %s, Name: %s %s, Flight: %s, CheckedIn: %v, Missed: %v)",
		b.Reference, b.FirstName, b.LastName, b.FlightCode, b.checkedIn, b.missed)
}
