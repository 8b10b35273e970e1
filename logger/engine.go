package logger

import (
	"io"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/gaborage/logbricks/record"
)

// ZeroEngine writes records as newline-delimited JSON through zerolog.
// Levels are numeric, time is epoch milliseconds and the message lives under "msg",
// which is what devprint expects on its input.
type ZeroEngine struct {
	zlog     zerolog.Logger
	level    record.Level
	hostname string
	now      func() time.Time
}

// Ensure ZeroEngine implements the interface
var _ Engine = (*ZeroEngine)(nil)

// EngineOption configures a ZeroEngine.
type EngineOption func(*ZeroEngine)

// WithMinLevel drops records below level.
func WithMinLevel(level record.Level) EngineOption {
	return func(e *ZeroEngine) {
		e.level = level
	}
}

// WithHostname overrides the hostname stamped on every record.
func WithHostname(hostname string) EngineOption {
	return func(e *ZeroEngine) {
		e.hostname = hostname
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *ZeroEngine) {
		e.now = now
	}
}

// NewZeroEngine creates a root engine writing to w. Without options every level is
// written and the hostname comes from os.Hostname.
func NewZeroEngine(w io.Writer, opts ...EngineOption) *ZeroEngine {
	e := &ZeroEngine{
		level: record.TraceLevel,
		now:   time.Now,
	}
	if host, err := os.Hostname(); err == nil {
		e.hostname = host
	}
	for _, opt := range opts {
		opt(e)
	}

	e.zlog = zerolog.New(w).With().
		Int(record.PIDField, os.Getpid()).
		Str(record.HostnameField, e.hostname).
		Logger()

	return e
}

// With returns a child engine. Bindings are encoded immediately, so later changes
// to the passed mapping do not reach the child. Nil values are skipped.
func (e *ZeroEngine) With(bindings record.Fields) Engine {
	zctx := e.zlog.With()
	for _, key := range slices.Sorted(maps.Keys(bindings)) {
		value := bindings[key]
		if isNilFields(value) {
			continue
		}
		zctx = zctx.Interface(key, value)
	}

	child := *e
	child.zlog = zctx.Logger()
	return &child
}

// Log writes one record. Fatal is written like any other level; the process keeps running.
func (e *ZeroEngine) Log(level record.Level, data any, hasData bool, format string, args ...any) {
	if level < e.level {
		return
	}

	// NoLevel events keep zerolog from writing its own string level and from exiting on fatal.
	event := e.zlog.Log().
		Int(record.LevelField, int(level)).
		Int64(record.TimeField, e.now().UnixMilli())
	if hasData {
		event = event.Interface(record.DataField, data)
	}

	msg := format
	if len(args) > 0 {
		msg = formatMessage(format, args)
	}
	event.Str(record.MessageField, msg).Send()
}

func isNilFields(v any) bool {
	if v == nil {
		return true
	}
	if f, ok := v.(record.Fields); ok {
		return f == nil
	}
	return false
}
