package sim

import (
	"errors"
	"testing"
)

func TestFlightStore_AddAndGetTrimmed(t *testing.T) {
	s := NewFlightStore()
	ledger := NewFlightLedger(testFlightConfig(), NewJournal(""))
	if err := s.Add(ledger); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if got := s.Get("  BA123 "); got != ledger {
		t.Fatal("Get with surrounding whitespace did not match")
	}
	if got := s.Get("ZZ999"); got != nil {
		t.Fatalf("Get unknown: got %v, want nil", got)
	}
	if s.Len() != 1 {
		t.Fatalf("Len: got %d, want 1", s.Len())
	}
}

func TestFlightStore_RejectsBlankAndDuplicate(t *testing.T) {
	s := NewFlightStore()

	blank := testFlightConfig()
	blank.Code = "   "
	if err := s.Add(NewFlightLedger(blank, NewJournal(""))); !errors.Is(err, ErrBlankReference) {
		t.Fatalf("blank code: got %v, want ErrBlankReference", err)
	}

	if err := s.Add(NewFlightLedger(testFlightConfig(), NewJournal(""))); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := s.Add(NewFlightLedger(testFlightConfig(), NewJournal(""))); !errors.Is(err, ErrDuplicateReference) {
		t.Fatalf("duplicate code: got %v, want ErrDuplicateReference", err)
	}
}

func TestBookingStore_AddAndGet(t *testing.T) {
	s := NewBookingStore()
	b := NewBooking("R1", "Ann", "Archer", "BA123", 10, 50, 50, 50)
	if err := s.Add(b); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := s.Get(" R1 "); got != b {
		t.Fatal("Get with surrounding whitespace did not match")
	}
}

func TestBookingStore_RejectsBlankAndDuplicate(t *testing.T) {
	s := NewBookingStore()

	if err := s.Add(NewBooking("", "Ann", "Archer", "BA123", 10, 50, 50, 50)); !errors.Is(err, ErrBlankReference) {
		t.Fatalf("blank reference: got %v, want ErrBlankReference", err)
	}

	b := NewBooking("R1", "Ann", "Archer", "BA123", 10, 50, 50, 50)
	if err := s.Add(b); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := s.Add(NewBooking("R1", "Ben", "Baker", "BA123", 10, 50, 50, 50)); !errors.Is(err, ErrDuplicateReference) {
		t.Fatalf("duplicate reference: got %v, want ErrDuplicateReference", err)
	}
}

func TestStores_AllIsSorted(t *testing.T) {
	s := NewBookingStore()
	for _, ref := range []string{"C3", "A1", "B2"} {
		if err := s.Add(NewBooking(ref, "F", "L", "BA123", 10, 50, 50, 50)); err != nil {
			t.Fatalf("Add %s: %v", ref, err)
		}
	}
	all := s.All()
	want := []string{"A1", "B2", "C3"}
	for i, b := range all {
		if b.Reference != want[i] {
			t.Fatalf("All order: got %s at %d, want %s", b.Reference, i, want[i])
		}
	}
}
