// Package chatlog keeps the append-only record of one session's exchanges.
// Records live in memory for the lifetime of a run and are written to disk
// only on explicit request.
package chatlog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

const timeLayout = "2006-01-02 15:04:05"

// Record is one exchange: the normalized input, the bot's response, and the
// wall-clock instant it happened. Immutable once appended.
type Record struct {
	Timestamp time.Time
	Input     string
	Output    string
}

// Line renders the record in the fixed log-file form.
func (r Record) Line() string {
	return fmt.Sprintf("[%s] User: %s | Bot: %s", r.Timestamp.Format(timeLayout), r.Input, r.Output)
}

// Log is an append-only, ordered sequence of records for one session.
type Log struct {
	sessionID string
	records   []Record
	now       func() time.Time

	// Notify receives human-readable status notices, like knowledge.Store.
	Notify func(format string, args ...any)
}

// NewLog creates an empty conversation log with a fresh session ID.
func NewLog() *Log {
	return &Log{
		sessionID: uuid.New().String(),
		now:       time.Now,
		Notify: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
	}
}

// SessionID identifies this run's log.
func (l *Log) SessionID() string {
	return l.sessionID
}

// Append records an exchange with the current wall-clock timestamp.
func (l *Log) Append(input, output string) {
	l.records = append(l.records, Record{
		Timestamp: l.now(),
		Input:     input,
		Output:    output,
	})
}

// Records returns a copy of the log in append order.
func (l *Log) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of recorded exchanges.
func (l *Log) Len() int {
	return len(l.records)
}

// Save writes one line per record, newline-terminated, in append order.
// An I/O failure emits a notice and leaves the in-memory records untouched.
func (l *Log) Save(path string) error {
	var sb strings.Builder
	for _, r := range l.records {
		sb.WriteString(r.Line())
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		l.notifyf("Error saving logs to %q: %v", path, err)
		return err
	}
	l.notifyf("Logs saved to %q.", path)
	return nil
}

// Display writes every record to w in order, or a "no logs" notice when the
// session has no exchanges yet. Pure read.
func (l *Log) Display(w io.Writer) {
	if len(l.records) == 0 {
		fmt.Fprintln(w, "No logs available.")
		return
	}
	fmt.Fprintln(w, "Conversation Logs:")
	for _, r := range l.records {
		fmt.Fprintln(w, r.Line())
	}
}

func (l *Log) notifyf(format string, args ...any) {
	if l.Notify != nil {
		l.Notify(format, args...)
	}
}
