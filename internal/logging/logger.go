// Package logging provides the leveled logger used by the sigma and
// libertas packages, adapted from the teacher's internal/server/logger.go:
// same log.Logger wrapper, sync.Once-guarded global instance and level
// parsing, with the audit-log half dropped — there is no network-facing
// security perimeter in a single-process library to audit.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/LibertasConstruction/Libertas/internal/config"
)

// Level represents a logging severity.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

// Logger is a leveled wrapper around the standard library's log.Logger.
type Logger struct {
	level  Level
	out    *log.Logger
	mu     sync.RWMutex
}

var (
	global     *Logger
	globalOnce sync.Once
)

// Init initializes the package-level global logger from cfg. Safe to call
// more than once; only the first call takes effect.
func Init(cfg *config.Config) error {
	var err error
	globalOnce.Do(func() {
		global, err = New(cfg)
	})
	return err
}

// Get returns the global logger, falling back to an INFO-level stdout
// logger if Init was never called.
func Get() *Logger {
	if global == nil {
		return &Logger{level: Info, out: log.New(os.Stdout, "[libertas] ", log.LstdFlags)}
	}
	return global
}

// New constructs a Logger from cfg without touching the package-level
// global.
func New(cfg *config.Config) (*Logger, error) {
	var w io.Writer = os.Stdout
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		w = f
	}

	return &Logger{
		level: parseLevel(cfg.Logging.Level),
		out:   log.New(w, "[libertas] ", log.LstdFlags),
	}, nil
}

func parseLevel(s string) Level {
	switch s {
	case "debug":
		return Debug
	case "warn":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func (l *Logger) log(level Level, prefix, format string, args ...interface{}) {
	if level < l.level {
		return
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.out.Printf("[%s] %s", prefix, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level.
func (l *Logger) Debug(format string, args ...interface{}) { l.log(Debug, "DEBUG", format, args...) }

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) { l.log(Info, "INFO", format, args...) }

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) { l.log(Warn, "WARN", format, args...) }

// Error logs at ERROR level.
func (l *Logger) Error(format string, args ...interface{}) { l.log(Error, "ERROR", format, args...) }
