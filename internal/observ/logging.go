package observ

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// SetOutput redirects structured log output (tests, CLI pretty mode).
func SetOutput(w *os.File) {
	logger = zerolog.New(w).With().Timestamp().Logger()
}

// Log emits one structured event line. Business code calls this at decision
// points (directive composed, idea rejected, position opened) with a flat
// key/value map.
func Log(event string, kv map[string]any) {
	e := logger.Info()
	for k, v := range kv {
		e = e.Interface(k, v)
	}
	e.Str("event", event).Msg("")
}

// Warn is Log at warning level.
func Warn(event string, kv map[string]any) {
	e := logger.Warn()
	for k, v := range kv {
		e = e.Interface(k, v)
	}
	e.Str("event", event).Msg("")
}

// Timed logs an event with its elapsed duration.
func Timed(event string, start time.Time, kv map[string]any) {
	if kv == nil {
		kv = map[string]any{}
	}
	kv["elapsed_ms"] = time.Since(start).Milliseconds()
	Log(event, kv)
}
