package sim

import (
	"os"
	"path/filepath"
	"testing"
)

func TestJournal_AppendAndLines(t *testing.T) {
	j := NewJournal(filepath.Join(t.TempDir(), "log.txt"))
	j.Append("[00:01] first")
	j.Append("[00:02] second")

	if j.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", j.Len())
	}
	lines := j.Lines()
	if lines[0] != "[00:01] first" || lines[1] != "[00:02] second" {
		t.Fatalf("Lines: got %v", lines)
	}

	// The returned slice is a copy.
	lines[0] = "mutated"
	if j.Lines()[0] != "[00:01] first" {
		t.Fatal("Lines returned the internal buffer")
	}
}

func TestJournal_FlushWritesAndClears(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	j := NewJournal(path)
	j.Append("[00:01] first")
	j.Append("[00:02] second")

	if err := j.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read flushed file: %v", err)
	}
	want := "[00:01] first\n[00:02] second\n"
	if string(raw) != want {
		t.Fatalf("file content: got %q, want %q", raw, want)
	}
	if j.Len() != 0 {
		t.Fatalf("buffer after flush: got %d lines, want 0", j.Len())
	}
}

func TestJournal_FlushFailsOnBadPath(t *testing.T) {
	j := NewJournal(filepath.Join(t.TempDir(), "missing", "dir", "log.txt"))
	j.Append("line")
	if err := j.Flush(); err == nil {
		t.Fatal("Flush to nonexistent directory: expected error")
	}
}
