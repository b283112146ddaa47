// The Journal accumulates the human-readable activity log produced by the
// engine and persists it in one write at shutdown. It is constructed
// explicitly at startup and passed by reference to every producer; there is
// no ambient global instance.

package sim

import (
	"os"
	"strings"
	"sync"
)

// Journal is an append-only buffer of log lines.
type Journal struct {
	mu    sync.Mutex
	path  string
	lines []string
}

// NewJournal creates a journal that Flush will write to path.
func NewJournal(path string) *Journal {
	return &Journal{path: path}
}

// Append adds one line to the buffer.
func (j *Journal) Append(line string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.lines = append(j.lines, line)
}

// Len returns the number of buffered lines.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.lines)
}

// Lines returns a copy of the buffered lines.
func (j *Journal) Lines() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, len(j.lines))
	copy(out, j.lines)
	return out
}

// Flush writes the buffered lines to the journal's file and clears the
// buffer. Called once at process shutdown.
func (j *Journal) Flush() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	var sb strings.Builder
	for _, line := range j.lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if err := os.WriteFile(j.path, []byte(sb.String()), 0o644); err != nil {
		return err
	}
	j.lines = j.lines[:0]
	return nil
}
