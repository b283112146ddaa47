// Lookup stores for flights and bookings, keyed by trimmed code. Both reject
// blank and duplicate references at add-time; a failed add is fatal to
// startup and never an engine runtime concern.

package sim

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrBlankReference is returned when an entity is added with an empty code.
var ErrBlankReference = errors.New("blank reference")

// ErrDuplicateReference is returned when an entity's code is already present.
var ErrDuplicateReference = errors.New("duplicate reference")

// FlightStore holds every FlightLedger, keyed by flight code.
type FlightStore struct {
	mu      sync.RWMutex
	flights map[string]*FlightLedger
}

// NewFlightStore creates an empty flight store.
func NewFlightStore() *FlightStore {
	return &FlightStore{flights: make(map[string]*FlightLedger)}
}

// Add registers a ledger under its flight code.
func (s *FlightStore) Add(ledger *FlightLedger) error {
	code := strings.TrimSpace(ledger.FlightCode())
	if code == "" {
		return fmt.Errorf("flight: %w", ErrBlankReference)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.flights[code]; exists {
		return fmt.Errorf("flight %s: %w", code, ErrDuplicateReference)
	}
	s.flights[code] = ledger
	return nil
}

// Get returns the ledger for the trimmed code, or nil if absent.
func (s *FlightStore) Get(code string) *FlightLedger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flights[strings.TrimSpace(code)]
}

// Len returns the number of stored flights.
func (s *FlightStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.flights)
}

// All returns every ledger ordered by flight code.
func (s *FlightStore) All() []*FlightLedger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*FlightLedger, 0, len(s.flights))
	for _, l := range s.flights {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FlightCode() < out[j].FlightCode() })
	return out
}

// BookingStore holds every passenger record, keyed by booking reference.
type BookingStore struct {
	mu       sync.RWMutex
	bookings map[string]*Booking
}

// NewBookingStore creates an empty booking store.
func NewBookingStore() *BookingStore {
	return &BookingStore{bookings: make(map[string]*Booking)}
}

// Add registers a booking under its reference code.
func (s *BookingStore) Add(b *Booking) error {
	ref := strings.TrimSpace(b.Reference)
	if ref == "" {
		return fmt.Errorf("booking: %w", ErrBlankReference)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.bookings[ref]; exists {
		return fmt.Errorf("booking %s: %w", ref, ErrDuplicateReference)
	}
	s.bookings[ref] = b
	return nil
}

// Get returns the booking for the trimmed reference, or nil if absent.
func (s *BookingStore) Get(reference string) *Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bookings[strings.TrimSpace(reference)]
}

// Len returns the number of stored bookings.
func (s *BookingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bookings)
}

// All returns every booking ordered by reference.
func (s *BookingStore) All() []*Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reference < out[j].Reference })
	return out
}
