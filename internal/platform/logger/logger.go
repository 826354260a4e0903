// Package logger wraps a process-wide zerolog logger.
//
// Init is called once from main with the configured level and format. Until
// then a JSON logger at info level writes to stderr, so packages may log
// during startup.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

func init() {
	initLogger("info", "json", os.Stderr)
}

// Init configures the global logger. format is "json" or "console".
func Init(level, format string) {
	mu.Lock()
	defer mu.Unlock()
	initLogger(level, format, os.Stderr)
}

// SetOutput redirects the global logger, keeping the current level.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log = log.Output(w)
}

func initLogger(level, format string, out io.Writer) {
	zerolog.SetGlobalLevel(parseLevel(level))
	zerolog.TimeFieldFormat = time.RFC3339

	if format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}
	log = zerolog.New(out).With().Timestamp().Str("service", "devpair").Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func get() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

func Debug() *zerolog.Event { return get().Debug() }
func Info() *zerolog.Event  { return get().Info() }
func Warn() *zerolog.Event  { return get().Warn() }
func Error() *zerolog.Event { return get().Error() }
func Fatal() *zerolog.Event { return get().Fatal() }

// Ctx returns the global logger annotated with the chi request id, if any.
func Ctx(ctx context.Context) *zerolog.Logger {
	l := get()
	if reqID := chiMiddleware.GetReqID(ctx); reqID != "" {
		withID := l.With().Str("request_id", reqID).Logger()
		return &withID
	}
	return l
}
