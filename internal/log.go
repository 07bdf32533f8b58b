package internal

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LogLevel represents different logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

// ParseLogLevel maps a LOG_LEVEL value onto a LogLevel; unknown values yield Info
func ParseLogLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return LogLevelError
	case "WARN", "WARNING":
		return LogLevelWarn
	case "DEBUG":
		return LogLevelDebug
	case "TRACE":
		return LogLevelTrace
	default:
		return LogLevelInfo
	}
}

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case LogLevelError:
		return zerolog.ErrorLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelDebug:
		return zerolog.DebugLevel
	case LogLevelTrace:
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}

// Logger provides leveled logging on top of zerolog.
// Reports go to stdout, so log output stays on stderr.
type Logger struct {
	level LogLevel
	zl    zerolog.Logger
}

// NewLogger creates a console logger on stderr with the specified level
func NewLogger(level LogLevel) *Logger {
	return NewLoggerTo(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}, level)
}

// NewLoggerTo creates a logger writing to w
func NewLoggerTo(w io.Writer, level LogLevel) *Logger {
	zl := zerolog.New(w).Level(level.zerolog()).With().Timestamp().Logger()
	return &Logger{level: level, zl: zl}
}

// NewEnvLogger creates a logger on w for the given level name and environment.
// env "production" switches to JSON lines with unix timestamps; anything else
// gets the human-readable console format.
func NewEnvLogger(w io.Writer, level, env string) *Logger {
	lvl := ParseLogLevel(level)
	if env == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		return NewLoggerTo(w, lvl)
	}
	return NewLoggerTo(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}, lvl)
}

// NewDefaultLogger creates a stderr logger based on LOG_LEVEL and ENV environment variables
func NewDefaultLogger() *Logger {
	return NewEnvLogger(os.Stderr, os.Getenv("LOG_LEVEL"), os.Getenv("ENV"))
}

// With returns a child logger tagged with component
func (l *Logger) With(component string) *Logger {
	return &Logger{level: l.level, zl: l.zl.With().Str("component", component).Logger()}
}

// WithField returns a child logger that adds key=value to every entry
func (l *Logger) WithField(key, value string) *Logger {
	return &Logger{level: l.level, zl: l.zl.With().Str(key, value).Logger()}
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	l.zl.Warn().Msgf(format, args...)
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.zl.Debug().Msgf(format, args...)
}

// Trace logs trace messages
func (l *Logger) Trace(format string, args ...interface{}) {
	l.zl.Trace().Msgf(format, args...)
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() LogLevel {
	return l.level
}

// Global logger instance
var DefaultLogger = NewDefaultLogger()
