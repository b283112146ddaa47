// Implements the simulation Clock: a logical tick counter advanced by a
// single looping goroutine and broadcast to every waiting unit. The clock is
// the only synchronization source in the engine; the release loop and all
// workers wake in lock-step on each advance.

package sim

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// pausePollInterval is how often the run loop re-checks the pause flag.
const pausePollInterval = 10 * time.Millisecond

// validSpeeds are the accepted speed multipliers.
var validSpeeds = map[int]bool{1: true, 2: true, 4: true, 8: true}

// TickLabel renders a tick value as a wall-clock style label, e.g. "[02:05]".
// One tick is one simulated minute; the label wraps at 24 hours.
func TickLabel(tick int64) string {
	return fmt.Sprintf("[%02d:%02d]", (tick/60)%24, tick%60)
}

// ParseClockTime converts an "HH:MM" string into a tick value (h*60 + m).
func ParseClockTime(s string) (int64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if h < 0 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return int64(h)*60 + int64(m), nil
}

// Clock owns the logical tick counter. Advance is called only from the
// clock's own run loop; readers and waiters synchronize on the internal
// mutex, so a read never observes a tick value mid-update.
type Clock struct {
	Notifier

	mu      sync.Mutex
	cond    *sync.Cond
	tick    int64
	paused  bool
	stopped bool

	baseInterval time.Duration
	interval     time.Duration

	done chan struct{}
}

// NewClock creates a stopped clock at tick 0 with the given base per-tick
// delay at speed 1.
func NewClock(baseInterval time.Duration) *Clock {
	c := &Clock{
		baseInterval: baseInterval,
		interval:     baseInterval,
		done:         make(chan struct{}),
	}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Advance increments the tick counter by one, wakes every waiter, and
// publishes the new tick. It must not be called concurrently with itself;
// the run loop is the sole caller in production.
func (c *Clock) Advance() {
	c.mu.Lock()
	c.tick++
	t := c.tick
	c.cond.Broadcast()
	c.mu.Unlock()

	c.Publish(c, t)
}

// CurrentTick returns the last fully committed tick value.
func (c *Clock) CurrentTick() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tick
}

// CurrentTickLabel returns the committed tick rendered as "[HH:MM]".
func (c *Clock) CurrentTickLabel() string {
	return TickLabel(c.CurrentTick())
}

// WaitNextTick blocks until the tick advances past lastSeen, returning the
// new value. The predicate makes a lost wake-up impossible: a waiter that
// arrives after the broadcast returns immediately. Returns ok=false once the
// clock has been stopped, which waiters treat as a shutdown signal.
func (c *Clock) WaitNextTick(lastSeen int64) (tick int64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.tick <= lastSeen && !c.stopped {
		c.cond.Wait()
	}
	return c.tick, !c.stopped
}

// Pause stops the run loop from emitting ticks. Committed reads are
// unaffected.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = true
}

// Resume lets the run loop emit ticks again.
func (c *Clock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = false
}

// Paused reports whether tick emission is currently suspended.
func (c *Clock) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// SetSpeed changes the delay between ticks to baseInterval/multiplier.
// Only multipliers 1, 2, 4 and 8 are accepted. The tick value itself is
// never affected, only the cadence.
func (c *Clock) SetSpeed(multiplier int) error {
	if !validSpeeds[multiplier] {
		return fmt.Errorf("invalid speed multiplier %d: want one of 1, 2, 4, 8", multiplier)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interval = c.baseInterval / time.Duration(multiplier)
	return nil
}

func (c *Clock) currentInterval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

// Run drives the clock until Stop is called: sleep one interval, hold while
// paused, then advance. Runs as its own goroutine.
func (c *Clock) Run() {
	logrus.Debug("clock loop started")
	for {
		select {
		case <-time.After(c.currentInterval()):
		case <-c.done:
			return
		}
		for c.Paused() {
			select {
			case <-time.After(pausePollInterval):
			case <-c.done:
				return
			}
		}
		c.Advance()
	}
}

// Stop terminates the run loop and releases every blocked waiter.
// Safe to call once; the engine is the sole caller.
func (c *Clock) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	c.cond.Broadcast()
	c.mu.Unlock()
	close(c.done)
	logrus.Debug("clock stopped")
}
