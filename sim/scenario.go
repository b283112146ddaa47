// YAML scenario loading: a single file describing the flights, the
// passengers and the engine knobs for a run, as an alternative to the two
// CSV inputs.

package sim

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Scenario is the top-level scenario configuration, loaded from YAML via
// LoadScenario(path).
type Scenario struct {
	Seed            int64  `yaml:"seed"`
	Workers         int    `yaml:"workers,omitempty"`           // 0 = default (6)
	ReleasesPerTick int    `yaml:"releases_per_tick,omitempty"` // 0 = default (6)
	Speed           int    `yaml:"speed,omitempty"`             // 0 = default (1)
	Horizon         int64  `yaml:"horizon,omitempty"`           // 0 = run until drained

	Flights    []FlightSpec    `yaml:"flights"`
	Passengers []PassengerSpec `yaml:"passengers"`
}

// FlightSpec defines one flight. Departure is wall-clock style "HH:MM" and
// is converted to a tick value when the ledger is built.
type FlightSpec struct {
	Code          string  `yaml:"code"`
	Destination   string  `yaml:"destination"`
	Carrier       string  `yaml:"carrier"`
	MaxPassengers int     `yaml:"max_passengers"`
	AllowedWeight float64 `yaml:"allowed_weight"`
	AllowedLength float64 `yaml:"allowed_length"`
	AllowedHeight float64 `yaml:"allowed_height"`
	AllowedWidth  float64 `yaml:"allowed_width"`
	ExcessFee     float64 `yaml:"excess_fee"`
	Departure     string  `yaml:"departure"`
}

// PassengerSpec defines one passenger record including baggage dimensions.
type PassengerSpec struct {
	Reference string  `yaml:"reference"`
	FirstName string  `yaml:"first_name"`
	LastName  string  `yaml:"last_name"`
	Flight    string  `yaml:"flight"`
	Weight    float64 `yaml:"weight"`
	Length    float64 `yaml:"length"`
	Height    float64 `yaml:"height"`
	Width     float64 `yaml:"width"`
}

// LoadScenario reads and validates a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	logrus.Infof("loaded scenario: %d flights, %d passengers", len(sc.Flights), len(sc.Passengers))
	return &sc, nil
}

// Validate checks field ranges; duplicate and blank codes are caught later
// by the stores.
func (s *Scenario) Validate() error {
	if len(s.Flights) == 0 {
		return fmt.Errorf("scenario has no flights")
	}
	for _, f := range s.Flights {
		if f.MaxPassengers <= 0 {
			return fmt.Errorf("flight %s: max_passengers must be positive", f.Code)
		}
		if f.AllowedWeight < 0 || f.AllowedLength < 0 || f.AllowedHeight < 0 || f.AllowedWidth < 0 || f.ExcessFee < 0 {
			return fmt.Errorf("flight %s: negative allowance or fee", f.Code)
		}
		if _, err := ParseClockTime(f.Departure); err != nil {
			return fmt.Errorf("flight %s: %w", f.Code, err)
		}
	}
	for _, p := range s.Passengers {
		if p.Weight < 0 || p.Length < 0 || p.Height < 0 || p.Width < 0 {
			return fmt.Errorf("passenger %s: negative baggage dimension", p.Reference)
		}
	}
	return nil
}

// Build constructs the flight and booking stores described by the scenario.
func (s *Scenario) Build(journal *Journal) (*FlightStore, *BookingStore, error) {
	flights := NewFlightStore()
	for _, f := range s.Flights {
		departure, err := ParseClockTime(f.Departure)
		if err != nil {
			return nil, nil, fmt.Errorf("flight %s: %w", f.Code, err)
		}
		ledger := NewFlightLedger(FlightConfig{
			Code:          f.Code,
			Destination:   f.Destination,
			Carrier:       f.Carrier,
			MaxPassengers: f.MaxPassengers,
			AllowedWeight: f.AllowedWeight,
			AllowedLength: f.AllowedLength,
			AllowedHeight: f.AllowedHeight,
			AllowedWidth:  f.AllowedWidth,
			ExcessFee:     f.ExcessFee,
			DepartureTick: departure,
		}, journal)
		if err := flights.Add(ledger); err != nil {
			return nil, nil, err
		}
	}

	bookings := NewBookingStore()
	for _, p := range s.Passengers {
		b := NewBooking(p.Reference, p.FirstName, p.LastName, p.Flight, p.Weight, p.Length, p.Height, p.Width)
		if err := bookings.Add(b); err != nil {
			return nil, nil, err
		}
	}
	return flights, bookings, nil
}

// EngineConfig returns the engine knobs carried by the scenario; zero values
// fall through to the engine defaults.
func (s *Scenario) EngineConfig() EngineConfig {
	return EngineConfig{
		Workers:         s.Workers,
		ReleasesPerTick: s.ReleasesPerTick,
		Speed:           s.Speed,
		Horizon:         s.Horizon,
		Seed:            s.Seed,
	}
}
