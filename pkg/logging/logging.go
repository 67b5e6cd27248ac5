// Package logging sets up the zerolog logger shared by every package.
// Console output goes to stderr; a copy of each run is appended to a log
// file under the XDG state directory.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogFileEnv overrides the log file location. "off" disables the file.
const LogFileEnv = "SFDELTA_LOG_FILE"

const logFileName = "sfdelta/sfdelta.log"

// levels indexed by -v count
var levels = []zerolog.Level{zerolog.WarnLevel, zerolog.InfoLevel, zerolog.DebugLevel, zerolog.TraceLevel}

// current log file, closed when the logger is set up again
var logFile *os.File

// LevelForVerbosity maps a -v count to a level
func LevelForVerbosity(verbosity int) zerolog.Level {
	if verbosity < 0 {
		verbosity = 0
	}
	if verbosity >= len(levels) {
		return levels[len(levels)-1]
	}
	return levels[verbosity]
}

// SetupLogger configures the global logger for the given -v count
func SetupLogger(verbosity int) {
	zerolog.SetGlobalLevel(LevelForVerbosity(verbosity))

	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}}

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	path, fileErr := openLogFile()
	if logFile != nil {
		writers = append(writers, logFile)
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", path).Msg("Failed to open log file, logging to console only")
	}
	log.Debug().Int("verbosity", verbosity).Str("logFile", path).Msg("Logger initialized")
}

// logFilePath returns where the run log goes, or "" when disabled
func logFilePath() (string, error) {
	if p, ok := os.LookupEnv(LogFileEnv); ok {
		if p == "off" {
			return "", nil
		}
		return p, nil
	}
	// XDG_STATE_HOME may have changed since package init
	xdg.Reload()
	return xdg.StateFile(logFileName)
}

func openLogFile() (string, error) {
	path, err := logFilePath()
	if err != nil || path == "" {
		return path, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return path, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return path, err
	}
	logFile = f
	return path, nil
}

// GetLogger returns the global logger tagged with a component name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// LogCommand logs an external command before it runs
func LogCommand(cmd string, args []string) {
	log.Debug().Str("command", cmd).Strs("args", args).Msg("Executing command")
}

// LogOperationStart logs the start of an operation. The returned func logs
// its completion with the elapsed time.
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
