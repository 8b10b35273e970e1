package logger

import (
	"os"

	"github.com/gaborage/logbricks/record"
)

// Log is a logging façade holding optional src and ctx metadata over a shared root engine.
//
// Every metadata change rebuilds the bound instance from root with the complete
// current (src, ctx) pair; nothing is merged incrementally inside the engine.
// A Log is not safe for concurrent metadata mutation; give each goroutine its own Child.
type Log struct {
	root     Engine
	instance Engine
	src      record.Fields
	ctx      record.Fields
	filter   *SensitiveDataFilter
}

// Ensure Log implements the interface
var _ Logger = (*Log)(nil)

// Option configures a Log at construction.
type Option func(*Log)

// WithEngine uses an existing root engine instead of the default stdout engine.
func WithEngine(engine Engine) Option {
	return func(l *Log) {
		l.root = engine
	}
}

// WithSource sets the initial src metadata.
func WithSource(src record.Fields) Option {
	return func(l *Log) {
		l.src = src.Clone()
	}
}

// WithContext sets the initial ctx metadata.
func WithContext(ctx record.Fields) Option {
	return func(l *Log) {
		l.ctx = ctx.Clone()
	}
}

// WithFilter masks sensitive keys in src, ctx and data before they reach the engine.
// A nil config selects DefaultFilterConfig.
func WithFilter(cfg *FilterConfig) Option {
	return func(l *Log) {
		l.filter = NewSensitiveDataFilter(cfg)
	}
}

// New creates a façade. Without WithEngine, records go to stdout at every level.
func New(opts ...Option) *Log {
	l := &Log{}
	for _, opt := range opts {
		opt(l)
	}
	if l.root == nil {
		l.root = NewZeroEngine(os.Stdout)
	}
	l.rebind()
	return l
}

// Root returns the shared root engine.
func (l *Log) Root() Engine {
	return l.root
}

// Source returns a shallow copy of the current src metadata, or nil when absent.
func (l *Log) Source() record.Fields {
	return l.src.Clone()
}

// SetSource replaces src wholesale and rebinds.
func (l *Log) SetSource(src record.Fields) *Log {
	l.src = src.Clone()
	l.rebind()
	return l
}

// ApplySource shallow-merges src over the current src and rebinds.
// Keys absent from src keep their current values.
func (l *Log) ApplySource(src record.Fields) *Log {
	return l.SetSource(record.Merge(l.src, src))
}

// ClearSource removes src and rebinds.
func (l *Log) ClearSource() *Log {
	l.src = nil
	l.rebind()
	return l
}

// Context returns a shallow copy of the current ctx metadata, or nil when absent.
func (l *Log) Context() record.Fields {
	return l.ctx.Clone()
}

// SetContext replaces ctx wholesale and rebinds.
func (l *Log) SetContext(ctx record.Fields) *Log {
	l.ctx = ctx.Clone()
	l.rebind()
	return l
}

// ApplyContext shallow-merges ctx over the current ctx and rebinds.
func (l *Log) ApplyContext(ctx record.Fields) *Log {
	return l.SetContext(record.Merge(l.ctx, ctx))
}

// ClearContext removes ctx and rebinds.
func (l *Log) ClearContext() *Log {
	l.ctx = nil
	l.rebind()
	return l
}

// Child returns a façade over the same root holding shallow copies of src and ctx.
// Top-level changes on either side stay local; nested values remain shared.
func (l *Log) Child() *Log {
	child := &Log{
		root:   l.root,
		src:    l.src.Clone(),
		ctx:    l.ctx.Clone(),
		filter: l.filter,
	}
	child.rebind()
	return child
}

func (l *Log) rebind() {
	bindings := make(record.Fields, 2)
	if l.src != nil {
		bindings[record.SourceField] = l.src
	}
	if l.ctx != nil {
		bindings[record.ContextField] = l.ctx
	}
	if l.filter != nil {
		bindings = l.filter.FilterFields(bindings)
	}
	l.instance = l.root.With(bindings)
}
