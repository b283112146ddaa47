package sim

import "time"

// Default engine parameters matching the standard six-counter airport setup.
const (
	DefaultWorkers          = 6
	DefaultReleasesPerTick  = 6
	DefaultBaseTickInterval = time.Second
	DefaultSpeed            = 1
)

// EngineConfig groups the knobs for NewEngine.
type EngineConfig struct {
	Workers          int           // number of check-in workers (default 6)
	ReleasesPerTick  int           // pool draws per tick (default 6)
	BaseTickInterval time.Duration // delay per tick at speed 1 (default 1s)
	Speed            int           // speed multiplier, one of 1/2/4/8
	Horizon          int64         // stop after this many ticks; 0 = run until drained
	Seed             int64         // master seed for the partitioned RNG
}

// ApplyDefaults fills zero-valued fields with the standard setup.
func (c *EngineConfig) ApplyDefaults() {
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.ReleasesPerTick <= 0 {
		c.ReleasesPerTick = DefaultReleasesPerTick
	}
	if c.BaseTickInterval <= 0 {
		c.BaseTickInterval = DefaultBaseTickInterval
	}
	if c.Speed <= 0 {
		c.Speed = DefaultSpeed
	}
}

// FlightConfig groups the identity and policy parameters for one
// FlightLedger.
type FlightConfig struct {
	Code          string
	Destination   string
	Carrier       string
	MaxPassengers int
	AllowedWeight float64 // per-passenger allowance, kg
	AllowedLength float64 // allowance dimensions, cm
	AllowedHeight float64
	AllowedWidth  float64
	ExcessFee     float64 // flat fee per over-limit passenger
	DepartureTick int64
}
