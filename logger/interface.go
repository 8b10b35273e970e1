// Package logger provides the structured-logging façade used by applications.
// A Log layers "src" (where a record comes from) and "ctx" (the request or job it
// belongs to) metadata onto a leveled Engine, and derives child façades that inherit
// both.
package logger

import "github.com/gaborage/logbricks/record"

// Engine is the leveled logging backend a Log writes through.
// Implementations must not mutate the bindings they receive.
type Engine interface {
	// With returns a child engine whose records carry bindings.
	With(bindings record.Fields) Engine
	// Log emits one record. When args is non-empty the engine resolves placeholders
	// (%s %d %i %f %j %o %O %%) in format; otherwise format is the message as-is. data is attached
	// under the data field only when hasData is true.
	Log(level record.Level, data any, hasData bool, format string, args ...any)
}

// Logger is the emit surface of a Log. Accept it where code only writes records.
type Logger interface {
	Trace(message string, data ...any)
	Tracef(args ...any) error
	Debug(message string, data ...any)
	Debugf(args ...any) error
	Info(message string, data ...any)
	Infof(args ...any) error
	Warn(message string, data ...any)
	Warnf(args ...any) error
	Error(message string, data ...any)
	Errorf(args ...any) error
	Fatal(message string, data ...any)
	Fatalf(args ...any) error
}
