// Package progress maintains the append-only audit trail of per-article
// outcomes. The log is best effort: it never rewrites or truncates existing
// lines, is not consulted for resume decisions, and write failures are
// swallowed so they cannot affect the run.
package progress

import (
	"fmt"
	"os"
	"time"
)

// Outcome values recorded per article.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeSkip  = "skip"
)

// ErrorOutcome formats the outcome for an article that failed.
func ErrorOutcome(detail string) string {
	return "error: " + detail
}

// Log appends per-article outcome lines to a progress file.
type Log struct {
	path string
}

// New creates a progress log writing to path. The file is created on first
// append.
func New(path string) *Log {
	return &Log{path: path}
}

// Path returns the log file path.
func (l *Log) Path() string {
	return l.path
}

// Append writes one `<timestamp> ID=<id> <outcome>` line. Errors are
// deliberately dropped: a broken audit trail must not stop translation.
func (l *Log) Append(id, outcome string) {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	fmt.Fprintf(f, "%s ID=%s %s\n", time.Now().Format("2006-01-02 15:04:05"), id, outcome)
}
