package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/crules/pkg/paths"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// verbosityLevels maps the number of -v flags to a log level. Counts past
// the end of the table use the last level.
var verbosityLevels = []zerolog.Level{
	zerolog.WarnLevel,
	zerolog.InfoLevel,
	zerolog.DebugLevel,
	zerolog.TraceLevel,
}

// LevelFor returns the log level for a -v count
func LevelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity < 0:
		return verbosityLevels[0]
	case verbosity >= len(verbosityLevels):
		return verbosityLevels[len(verbosityLevels)-1]
	}
	return verbosityLevels[verbosity]
}

// Options controls the process logger
type Options struct {
	Verbosity int
	// Console receives human-readable lines; nil means stderr
	Console io.Writer
	NoColor bool
	// LogFile receives JSON lines; empty means paths.LogFilePath()
	LogFile string
}

// SetupLogger installs the process logger for a CLI run: console output on
// stderr plus the crules log file
func SetupLogger(verbosity int) {
	if err := Configure(Options{
		Verbosity: verbosity,
		NoColor:   os.Getenv("NO_COLOR") != "",
	}); err != nil {
		log.Warn().Err(err).Msg("Logging to console only")
	}
}

// Configure replaces the global logger. A log file that cannot be opened is
// reported in the returned error; console logging is installed regardless.
func Configure(opts Options) error {
	level := LevelFor(opts.Verbosity)
	zerolog.SetGlobalLevel(level)

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    opts.NoColor,
	}}

	logPath := opts.LogFile
	if logPath == "" {
		logPath = paths.LogFilePath()
	}
	file, fileErr := openLogFile(logPath)
	if fileErr == nil {
		writers = append(writers, file)
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if level <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	log.Debug().Str("level", level.String()).Str("log_file", logPath).Msg("Logger initialized")
	return fileErr
}

// GetLogger returns the global logger tagged with component
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// LogOperationStart logs the start of operation at debug level and returns
// a function that logs its completion with the elapsed time
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
