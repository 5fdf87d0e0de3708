// Package testutil provides shared test fixtures for the risk engine.
package testutil

import (
	"sync"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/monitoring/logging"
)

// RecordingLogger implements logging.Logger and records every entry. Loggers
// derived through With and Named share the parent's record.
type RecordingLogger struct {
	store *logStore
	name  string
}

// LogMessage is one entry captured by RecordingLogger.
type LogMessage struct {
	Level   string
	Logger  string
	Message string
	Fields  []logging.Field
}

type logStore struct {
	mu       sync.Mutex
	messages []LogMessage
}

// NewRecordingLogger creates an empty RecordingLogger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{store: &logStore{}}
}

func (l *RecordingLogger) log(level, msg string, fields []logging.Field) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	l.store.messages = append(l.store.messages, LogMessage{
		Level:   level,
		Logger:  l.name,
		Message: msg,
		Fields:  fields,
	})
}

func (l *RecordingLogger) Debug(msg string, fields ...logging.Field) { l.log("debug", msg, fields) }
func (l *RecordingLogger) Info(msg string, fields ...logging.Field)  { l.log("info", msg, fields) }
func (l *RecordingLogger) Warn(msg string, fields ...logging.Field)  { l.log("warn", msg, fields) }
func (l *RecordingLogger) Error(msg string, fields ...logging.Field) { l.log("error", msg, fields) }

// Fatal records at level fatal and does not exit.
func (l *RecordingLogger) Fatal(msg string, fields ...logging.Field) { l.log("fatal", msg, fields) }

func (l *RecordingLogger) With(fields ...logging.Field) logging.Logger { return l }

func (l *RecordingLogger) Named(name string) logging.Logger {
	child := &RecordingLogger{store: l.store, name: name}
	if l.name != "" {
		child.name = l.name + "." + name
	}
	return child
}

// Messages returns a copy of all recorded entries.
func (l *RecordingLogger) Messages() []LogMessage {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	out := make([]LogMessage, len(l.store.messages))
	copy(out, l.store.messages)
	return out
}

// HasMessage reports whether an entry with level and msg was recorded.
func (l *RecordingLogger) HasMessage(level, msg string) bool {
	for _, m := range l.Messages() {
		if m.Level == level && m.Message == msg {
			return true
		}
	}
	return false
}

// Count returns the number of entries recorded at level.
func (l *RecordingLogger) Count(level string) int {
	n := 0
	for _, m := range l.Messages() {
		if m.Level == level {
			n++
		}
	}
	return n
}

var _ logging.Logger = (*RecordingLogger)(nil)

//Personal.AI order the ending
