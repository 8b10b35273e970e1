// Package record defines the newline-delimited JSON log record written by the
// logger package and read back by devprint. The wire format is the only thing
// the two share.
package record

import (
	"errors"
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// Wire field names
const (
	LevelField    = "level"
	TimeField     = "time"
	PIDField      = "pid"
	HostnameField = "hostname"
	MessageField  = "msg"
	SourceField   = "src"
	ContextField  = "ctx"
	DataField     = "data"

	// ModuleKey is the src key devprint shows as a [mod] tag.
	ModuleKey = "mod"
)

// ErrUnknownLevel is returned by ParseLevel for names and numbers outside the six tiers.
var ErrUnknownLevel = errors.New("unknown level")

// Level is the integer severity carried in the level field.
type Level int

// Recognized severities, lowest to highest.
const (
	TraceLevel Level = 10
	DebugLevel Level = 20
	InfoLevel  Level = 30
	WarnLevel  Level = 40
	ErrorLevel Level = 50
	FatalLevel Level = 60
)

var levelNames = map[Level]string{
	TraceLevel: "trace",
	DebugLevel: "debug",
	InfoLevel:  "info",
	WarnLevel:  "warn",
	ErrorLevel: "error",
	FatalLevel: "fatal",
}

// Levels returns the recognized levels in ascending order.
func Levels() []Level {
	return []Level{TraceLevel, DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel}
}

// Valid reports whether l is one of the six recognized levels.
func (l Level) Valid() bool {
	_, ok := levelNames[l]
	return ok
}

// Name returns the canonical lowercase name, or "" for unrecognized values.
func (l Level) Name() string {
	return levelNames[l]
}

// String returns the name, falling back to the number for unrecognized values.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return strconv.Itoa(int(l))
}

// Display returns the level used for rendering. Unrecognized values show as info;
// the record itself keeps its original value.
func (l Level) Display() Level {
	if l.Valid() {
		return l
	}
	return InfoLevel
}

// ParseLevel accepts a level name ("warn", case-insensitive) or its number ("40").
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for level, name := range levelNames {
		if name == s {
			return level, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Level(n).Valid() {
		return Level(n), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// Fields is a flat metadata mapping used for src and ctx.
type Fields map[string]any

// Clone returns a shallow copy. Nested values stay shared. A nil receiver stays nil.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	return maps.Clone(f)
}

// Merge returns a new mapping holding base's keys overwritten by overlay's.
// Neither argument is modified.
func Merge(base, overlay Fields) Fields {
	merged := make(Fields, len(base)+len(overlay))
	maps.Copy(merged, base)
	maps.Copy(merged, overlay)
	return merged
}

// Record mirrors one JSON log line.
type Record struct {
	Level    Level  `json:"level"`
	Time     int64  `json:"time"`
	PID      int    `json:"pid"`
	Hostname string `json:"hostname"`
	Msg      string `json:"msg,omitempty"`
	Src      Fields `json:"src,omitempty"`
	Ctx      Fields `json:"ctx,omitempty"`
	Data     any    `json:"data,omitempty"`
}
