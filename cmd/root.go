package cmd

import (
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/checkin-sim/checkin-sim/sim"
	"github.com/checkin-sim/checkin-sim/sim/loader"
)

var (
	// CLI flags for input data
	bookingsPath string // Booking CSV path
	flightsPath  string // Flight CSV path
	scenarioPath string // YAML scenario path (alternative to the two CSVs)

	// CLI flags for engine configs
	seed            int64         // Seed for the partitioned RNG
	workers         int           // Number of check-in counters
	releasesPerTick int           // Queue release draws per tick
	speed           int           // Speed multiplier (1, 2, 4, 8)
	tickInterval    time.Duration // Delay per tick at speed 1
	horizon         int64         // Stop after this many ticks (0 = run until drained)

	// CLI flags for output
	logLevel    string // Log verbosity level
	journalPath string // Where the activity journal is flushed at shutdown
	quiet       bool   // Suppress the colored console feed
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "checkin-sim",
	Short: "Tick-driven airport check-in simulator",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the check-in simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Optional .env file can supply defaults for flags left unset.
		_ = godotenv.Load()
		applyEnvDefaults(cmd)

		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		journal := sim.NewJournal(journalPath)
		cfg := sim.EngineConfig{
			Workers:          workers,
			ReleasesPerTick:  releasesPerTick,
			BaseTickInterval: tickInterval,
			Speed:            speed,
			Horizon:          horizon,
			Seed:             seed,
		}

		var flights *sim.FlightStore
		var bookings *sim.BookingStore
		if scenarioPath != "" {
			scenario, err := sim.LoadScenario(scenarioPath)
			if err != nil {
				logrus.Fatalf("unable to load scenario: %v", err)
			}
			flights, bookings, err = scenario.Build(journal)
			if err != nil {
				logrus.Fatalf("unable to build scenario: %v", err)
			}
			cfg = mergeScenarioConfig(cmd, cfg, scenario)
		} else {
			if bookingsPath == "" || flightsPath == "" {
				logrus.Fatalf("either --scenario or both --bookings and --flights must be provided")
			}
			rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed)).ForSubsystem(sim.SubsystemBaggage)
			bookings, err = loader.LoadBookings(bookingsPath, rng)
			if err != nil {
				logrus.Fatalf("unable to load bookings: %v", err)
			}
			flights, err = loader.LoadFlights(flightsPath, journal)
			if err != nil {
				logrus.Fatalf("unable to load flights: %v", err)
			}
		}

		engine, err := sim.NewEngine(cfg, flights, bookings, journal)
		if err != nil {
			logrus.Fatalf("unable to build engine: %v", err)
		}

		metrics := sim.NewMetrics()
		engine.Subscribe(metrics)
		if !quiet {
			engine.Subscribe(newConsoleObserver())
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		startTime := time.Now()
		engine.Run(ctx)

		if err := journal.Flush(); err != nil {
			logrus.Errorf("unable to flush journal: %v", err)
		}
		metrics.Print(engine.Clock().CurrentTick(), flights, bookings, engine.Queue())
		logrus.Infof("Simulation complete in %s.", time.Since(startTime).Round(time.Millisecond))
	},
}

// applyEnvDefaults lets SIM_* environment variables stand in for flags the
// user did not set on the command line. Flags always win.
func applyEnvDefaults(cmd *cobra.Command) {
	if v := os.Getenv("SIM_LOG_LEVEL"); v != "" && !cmd.Flags().Changed("log") {
		logLevel = v
	}
	if v := os.Getenv("SIM_JOURNAL"); v != "" && !cmd.Flags().Changed("journal") {
		journalPath = v
	}
	if v := os.Getenv("SIM_SEED"); v != "" && !cmd.Flags().Changed("seed") {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			seed = parsed
		}
	}
}

// mergeScenarioConfig overlays scenario-carried engine knobs onto the flag
// config, for flags the user left at their defaults.
func mergeScenarioConfig(cmd *cobra.Command, cfg sim.EngineConfig, sc *sim.Scenario) sim.EngineConfig {
	out := sc.EngineConfig()
	out.BaseTickInterval = cfg.BaseTickInterval
	if cmd.Flags().Changed("seed") {
		out.Seed = cfg.Seed
	}
	if cmd.Flags().Changed("workers") {
		out.Workers = cfg.Workers
	}
	if cmd.Flags().Changed("releases-per-tick") {
		out.ReleasesPerTick = cfg.ReleasesPerTick
	}
	if cmd.Flags().Changed("speed") {
		out.Speed = cfg.Speed
	}
	if cmd.Flags().Changed("horizon") {
		out.Horizon = cfg.Horizon
	}
	return out
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&bookingsPath, "bookings", "", "Booking CSV path (reference,first,last,flight)")
	runCmd.Flags().StringVar(&flightsPath, "flights", "", "Flight CSV path")
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario path (alternative to the CSV pair)")

	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for arrival order and baggage randomization")
	runCmd.Flags().IntVar(&workers, "workers", sim.DefaultWorkers, "Number of check-in counters")
	runCmd.Flags().IntVar(&releasesPerTick, "releases-per-tick", sim.DefaultReleasesPerTick, "Queue release draws per tick")
	runCmd.Flags().IntVar(&speed, "speed", sim.DefaultSpeed, "Speed multiplier (1, 2, 4, 8)")
	runCmd.Flags().DurationVar(&tickInterval, "tick-interval", sim.DefaultBaseTickInterval, "Delay per tick at speed 1")
	runCmd.Flags().Int64Var(&horizon, "horizon", 0, "Stop after this many ticks (0 = run until the queue drains)")

	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&journalPath, "journal", "simulation_log.txt", "Activity journal output path")
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress the colored console event feed")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
