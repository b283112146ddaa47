// Package loader reads the two flat-file inputs (bookings and flights),
// validates them, and builds the stores the engine bootstraps from. Baggage
// dimensions are not present in the booking file; they are drawn at load
// time from the baggage RNG subsystem.
package loader

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/checkin-sim/checkin-sim/sim"
)

// Randomized baggage ranges, in kg and cm.
const (
	baggageMin       = 1.0
	baggageMaxWeight = 60.0
	baggageMaxLH     = 150.0
	baggageMaxWidth  = 100.0
)

// roundTenth rounds to one decimal place.
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// randomInRange draws a value in [lo, hi) rounded to one decimal.
func randomInRange(rng *rand.Rand, lo, hi float64) float64 {
	return roundTenth(rng.Float64()*(hi-lo) + lo)
}

// LoadBookings reads the booking CSV (reference, first name, last name,
// flight code) and returns a populated store. Each record gets randomized
// baggage: weight 1-60 kg, length and height 1-150 cm, width 1-100 cm, all
// rounded to a tenth.
func LoadBookings(path string, rng *rand.Rand) (*sim.BookingStore, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	store := sim.NewBookingStore()
	for i, row := range rows {
		if len(row) < 4 {
			return nil, fmt.Errorf("%s line %d: want 4 columns, got %d", path, i+1, len(row))
		}
		weight := randomInRange(rng, baggageMin, baggageMaxWeight)
		length := randomInRange(rng, baggageMin, baggageMaxLH)
		height := randomInRange(rng, baggageMin, baggageMaxLH)
		width := randomInRange(rng, baggageMin, baggageMaxWidth)

		b := sim.NewBooking(row[0], row[1], row[2], row[3], weight, length, height, width)
		if err := store.Add(b); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, i+1, err)
		}
	}
	logrus.Infof("loaded %d bookings from %s", store.Len(), path)
	return store, nil
}

// LoadFlights reads the flight CSV and returns a populated store. Columns:
// code, carrier, (unused), destination, (unused), max passengers, allowed
// weight, length, height, width, excess fee, departure "HH:MM". Numeric
// columns must be non-negative; the departure converts to ticks (h*60+m).
func LoadFlights(path string, journal *sim.Journal) (*sim.FlightStore, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	store := sim.NewFlightStore()
	for i, row := range rows {
		if len(row) < 12 {
			return nil, fmt.Errorf("%s line %d: want 12 columns, got %d", path, i+1, len(row))
		}

		maxPassengers, err := strconv.Atoi(row[5])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: max passengers: %w", path, i+1, err)
		}
		numeric := make([]float64, 5)
		for n, col := range row[6:11] {
			v, err := strconv.ParseFloat(col, 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d column %d: %w", path, i+1, n+7, err)
			}
			numeric[n] = v
		}
		if maxPassengers < 0 {
			return nil, fmt.Errorf("%s line %d: negative value in column 6", path, i+1)
		}
		for n, v := range numeric {
			if v < 0 {
				return nil, fmt.Errorf("%s line %d: negative value in column %d", path, i+1, n+7)
			}
		}
		departure, err := sim.ParseClockTime(row[11])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: departure: %w", path, i+1, err)
		}

		ledger := sim.NewFlightLedger(sim.FlightConfig{
			Code:          row[0],
			Destination:   row[3],
			Carrier:       row[1],
			MaxPassengers: maxPassengers,
			AllowedWeight: numeric[0],
			AllowedLength: numeric[1],
			AllowedHeight: numeric[2],
			AllowedWidth:  numeric[3],
			ExcessFee:     numeric[4],
			DepartureTick: departure,
		}, journal)
		if err := store.Add(ledger); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, i+1, err)
		}
	}
	logrus.Infof("loaded %d flights from %s", store.Len(), path)
	return store, nil
}

// readCSV reads all rows of a comma-separated file, allowing ragged rows so
// the per-line column checks can produce better messages.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}
