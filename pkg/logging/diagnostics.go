package logging

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Level classifies a diagnostic message.
type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Sink receives the human-readable diagnostics produced by an operation.
type Sink interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Diagnostic is a single recorded message.
type Diagnostic struct {
	Level   Level
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Level, d.Message)
}

// Diagnostics records every message it receives and mirrors it to a zerolog
// logger. The zero value is usable and discards log output.
type Diagnostics struct {
	logger  zerolog.Logger
	entries []Diagnostic
}

// NewDiagnostics returns a sink that mirrors entries to logger.
func NewDiagnostics(logger zerolog.Logger) *Diagnostics {
	return &Diagnostics{logger: logger}
}

// Discard returns a sink that records entries without logging them.
func Discard() *Diagnostics {
	return &Diagnostics{logger: zerolog.Nop()}
}

func (d *Diagnostics) Infof(format string, args ...interface{}) {
	d.add(LevelInfo, d.logger.Info(), format, args...)
}

func (d *Diagnostics) Warnf(format string, args ...interface{}) {
	d.add(LevelWarn, d.logger.Warn(), format, args...)
}

func (d *Diagnostics) Errorf(format string, args ...interface{}) {
	d.add(LevelError, d.logger.Error(), format, args...)
}

func (d *Diagnostics) add(level Level, event *zerolog.Event, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	d.entries = append(d.entries, Diagnostic{Level: level, Message: msg})
	event.Msg(msg)
}

// Entries returns all recorded diagnostics in the order they were produced.
func (d *Diagnostics) Entries() []Diagnostic {
	out := make([]Diagnostic, len(d.entries))
	copy(out, d.entries)
	return out
}

// Filter returns the recorded diagnostics at the given level.
func (d *Diagnostics) Filter(level Level) []Diagnostic {
	var out []Diagnostic
	for _, e := range d.entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// HasErrors reports whether any error-level diagnostic was recorded.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Filter(LevelError)) > 0
}
