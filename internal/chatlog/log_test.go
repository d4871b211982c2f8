package chatlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func frozenLog(ts time.Time) *Log {
	l := NewLog()
	l.now = func() time.Time { return ts }
	l.Notify = func(string, ...any) {}
	return l
}

func TestAppendOrder(t *testing.T) {
	l := frozenLog(time.Now())

	for i := 0; i < 5; i++ {
		l.Append("in", "out")
	}
	if l.Len() != 5 {
		t.Fatalf("expected 5 records, got %d", l.Len())
	}

	l2 := frozenLog(time.Now())
	l2.Append("first", "1")
	l2.Append("second", "2")

	recs := l2.Records()
	if recs[0].Input != "first" || recs[1].Input != "second" {
		t.Errorf("records out of append order: %v", recs)
	}
}

func TestRecordsReturnsCopy(t *testing.T) {
	l := frozenLog(time.Now())
	l.Append("a", "b")

	recs := l.Records()
	recs[0].Input = "mutated"

	if l.Records()[0].Input != "a" {
		t.Error("mutating the returned slice must not affect the log")
	}
}

func TestLineFormat(t *testing.T) {
	ts := time.Date(2024, 3, 1, 14, 5, 9, 0, time.UTC)
	r := Record{Timestamp: ts, Input: "hello", Output: "hi there"}

	want := "[2024-03-01 14:05:09] User: hello | Bot: hi there"
	if got := r.Line(); got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}

func TestSave(t *testing.T) {
	ts := time.Date(2024, 3, 1, 14, 5, 9, 0, time.UTC)
	l := frozenLog(ts)
	l.Append("hello", "hi there")
	l.Append("bye", "see you")

	path := filepath.Join(t.TempDir(), "logs.txt")
	if err := l.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "[2024-03-01 14:05:09] User: hello | Bot: hi there\n" +
		"[2024-03-01 14:05:09] User: bye | Bot: see you\n"
	if string(data) != want {
		t.Errorf("saved file mismatch:\n got %q\nwant %q", string(data), want)
	}
}

func TestSaveFailureKeepsRecords(t *testing.T) {
	l := frozenLog(time.Now())
	l.Append("a", "b")

	if err := l.Save(t.TempDir()); err == nil {
		t.Fatal("saving to a directory should fail")
	}
	if l.Len() != 1 {
		t.Error("failed save must not drop in-memory records")
	}
}

func TestDisplay(t *testing.T) {
	l := frozenLog(time.Date(2024, 3, 1, 14, 5, 9, 0, time.UTC))

	var empty strings.Builder
	l.Display(&empty)
	if !strings.Contains(empty.String(), "No logs available.") {
		t.Errorf("empty log should report no logs, got %q", empty.String())
	}

	l.Append("hello", "hi there")
	var full strings.Builder
	l.Display(&full)
	if !strings.Contains(full.String(), "[2024-03-01 14:05:09] User: hello | Bot: hi there") {
		t.Errorf("display missing record line, got %q", full.String())
	}
}

func TestSessionID(t *testing.T) {
	a, b := NewLog(), NewLog()
	if a.SessionID() == "" || a.SessionID() == b.SessionID() {
		t.Error("each log should get its own session ID")
	}
}
