// Package logging wraps arbor's structured logger with the two output
// formats and level filtering the engine's operators expect: a
// human-readable console format for interactive runs and a JSON format
// for piping into log aggregation.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/phuslu/log"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
	"github.com/ternarybob/arbor/writers"
)

// Format selects how log events are rendered.
type Format string

const (
	FormatPretty Format = "pretty"
	FormatJSON   Format = "json"
)

// Logger is the handle every component that needs to log holds. It
// satisfies engine.Logger (Warnf) so the core engine package can
// receive diagnostics without importing arbor directly.
type Logger struct {
	arbor.ILogger
}

// prettyWriter reformats arbor's JSON-encoded log events into a single
// human-readable line. The console writer always emits structured JSON
// regardless of format, so "pretty" output is produced by decoding and
// re-rendering it rather than by asking arbor for a different encoding.
type prettyWriter struct {
	out   io.Writer
	level log.Level
}

func (w *prettyWriter) Write(p []byte) (int, error) {
	var evt models.LogEvent
	if err := json.Unmarshal(p, &evt); err != nil {
		return w.out.Write(p)
	}
	if evt.Level < w.level {
		return len(p), nil
	}
	msg := fmt.Sprintf("%s [%s] %s", evt.Timestamp, evt.Level, evt.Message)
	for k, v := range evt.Fields {
		msg += fmt.Sprintf(" %s=%v", k, v)
	}
	if evt.Error != "" {
		msg += fmt.Sprintf(" error=%s", evt.Error)
	}
	msg += "\n"
	return w.out.Write([]byte(msg))
}

func (w *prettyWriter) WithLevel(level log.Level) writers.IWriter {
	w.level = level
	return w
}

func (w *prettyWriter) GetFilePath() string { return "" }
func (w *prettyWriter) Close() error        { return nil }

// New builds a Logger writing to stderr in the given format, filtered
// to the given level ("trace", "debug", "info", "warn", "error").
func New(level string, format Format) *Logger {
	if format == FormatPretty {
		adapter := &prettyWriter{out: os.Stderr, level: log.TraceLevel}
		arbor.RegisterWriter(arbor.WRITER_CONSOLE, adapter)
	}

	arborLogger := arbor.NewLogger().
		WithConsoleWriter(models.WriterConfiguration{
			Type:       models.LogWriterTypeConsole,
			Writer:     os.Stderr,
			TimeFormat: "2006-01-02T15:04:05Z07:00",
		}).
		WithLevelFromString(level)

	return &Logger{ILogger: arborLogger}
}

// Warnf implements engine.Logger so the parallel orchestrator can warn
// about degraded configuration (e.g. a coerced worker count) without
// depending on arbor's own call-chaining API.
func (l *Logger) Warnf(format string, args ...any) {
	l.Warn().Msgf(format, args...)
}
