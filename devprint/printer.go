// Package devprint renders newline-delimited JSON log records as colorized,
// human-readable lines for development. Lines that are not records pass through
// unchanged, so nothing written upstream is hidden.
package devprint

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fastjson"

	"github.com/gaborage/logbricks/record"
)

// Line terminators
const (
	CRLF = "\r\n"
	LF   = "\n"
)

const (
	timestampLayout = "15:04:05.000"
	blankLabel      = "     "
)

// Printer turns one input line into at most one rendered block.
// Render is safe for concurrent use; Run processes a single stream.
type Printer struct {
	styles  Styles
	eol     string
	loc     *time.Location
	diag    zerolog.Logger
	maxLine int
	parsers fastjson.ParserPool
}

// Option configures a Printer.
type Option func(*Printer)

// WithStyles sets the style set. The default is PlainStyles.
func WithStyles(styles Styles) Option {
	return func(p *Printer) {
		p.styles = styles
	}
}

// WithEOL sets the terminator appended to every output line. The default is CRLF.
func WithEOL(eol string) Option {
	return func(p *Printer) {
		p.eol = eol
	}
}

// WithLocation sets the zone timestamps are shown in. The default is time.Local.
func WithLocation(loc *time.Location) Option {
	return func(p *Printer) {
		p.loc = loc
	}
}

// WithDiagnostics sets where rendering and transport failures are reported.
func WithDiagnostics(logger zerolog.Logger) Option {
	return func(p *Printer) {
		p.diag = logger
	}
}

// WithMaxLineSize sets the longest line Run renders. The default is MaxLineSize.
func WithMaxLineSize(n int) Option {
	return func(p *Printer) {
		if n > 0 {
			p.maxLine = n
		}
	}
}

// New creates a Printer.
func New(opts ...Option) *Printer {
	p := &Printer{
		styles:  PlainStyles(),
		eol:     CRLF,
		loc:     time.Local,
		diag:    zerolog.Nop(),
		maxLine: MaxLineSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Render returns the display text for line. ok is false when the line produces no
// output, which only happens for falsy JSON such as null.
//
// Text that is not strict JSON, or JSON that is not a record, comes back verbatim
// plus the terminator.
func (p *Printer) Render(line []byte) (string, bool) {
	// the parser alone accepts leading zeros, inf and raw control characters
	if err := fastjson.ValidateBytes(line); err != nil {
		return p.passThrough(line), true
	}

	parser := p.parsers.Get()
	defer p.parsers.Put(parser)

	v, err := parser.ParseBytes(line)
	if err != nil {
		return p.passThrough(line), true
	}
	if isFalsy(v) {
		return "", false
	}
	if !validShape(v) {
		return p.passThrough(line), true
	}
	return p.format(v), true
}

func (p *Printer) passThrough(line []byte) string {
	return string(line) + p.eol
}

func (p *Printer) format(v *fastjson.Value) string {
	level := displayLevel(get(v, record.LevelField))
	millis, _ := get(v, record.TimeField).Float64()

	var b strings.Builder
	b.WriteString(apply(p.styles.Dim, p.timestamp(millis)))
	b.WriteByte(' ')
	b.WriteString(p.label(level))
	if tag := p.moduleTag(get(v, record.SourceField)); tag != "" {
		b.WriteByte(' ')
		b.WriteString(tag)
	}
	b.WriteByte(' ')
	b.WriteString(p.message(level, get(v, record.MessageField)))
	b.WriteString(p.eol)

	if ctx := get(v, record.ContextField); ctx != nil {
		b.WriteString(apply(p.styles.Dim, "ctx: "+Inspect(ctx, InspectOptions{Depth: 2, Compact: true})))
		b.WriteString(p.eol)
	}

	if data := get(v, record.DataField); data != nil {
		styles := p.styles
		b.WriteString(apply(p.styles.Accent, "data"))
		b.WriteString(": ")
		b.WriteString(Inspect(data, InspectOptions{Depth: -1, Styles: &styles}))
		b.WriteString(p.eol)
	}

	return b.String()
}

func (p *Printer) timestamp(millis float64) string {
	return time.UnixMilli(int64(millis)).In(p.loc).Format(timestampLayout)
}

func (p *Printer) label(level record.Level) string {
	style := p.styles.Label[level]
	name := level.Name()
	if style == nil || name == "" {
		return blankLabel
	}
	return style(fmt.Sprintf("%-5s", name))
}

// moduleTag returns "[mod]" when src.mod is truthy.
func (p *Printer) moduleTag(src *fastjson.Value) string {
	if src == nil || src.Type() != fastjson.TypeObject {
		return ""
	}
	mod := get(src, record.ModuleKey)
	if mod == nil || isFalsy(mod) {
		return ""
	}

	var text string
	if mod.Type() == fastjson.TypeString {
		text = string(mod.GetStringBytes())
	} else {
		text = string(mod.MarshalTo(nil))
	}
	return "[" + apply(p.styles.Accent, text) + "]"
}

func (p *Printer) message(level record.Level, msg *fastjson.Value) string {
	if msg == nil {
		return ""
	}
	text := string(msg.GetStringBytes())
	if text == "" {
		return text
	}
	return apply(p.styles.Message[level], text)
}

// displayLevel maps the level field to a recognized level, using info for
// anything else.
func displayLevel(v *fastjson.Value) record.Level {
	f, err := v.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return record.InfoLevel
	}
	return record.Level(int(f)).Display()
}

// isFalsy reports JSON values a JavaScript consumer would treat as false.
func isFalsy(v *fastjson.Value) bool {
	switch v.Type() {
	case fastjson.TypeNull, fastjson.TypeFalse:
		return true
	case fastjson.TypeNumber:
		f, err := v.Float64()
		return err == nil && (f == 0 || math.IsNaN(f))
	case fastjson.TypeString:
		return len(v.GetStringBytes()) == 0
	default:
		return false
	}
}

// validShape checks the fields the renderer relies on. src, ctx and data accept
// any JSON object, array or null.
func validShape(v *fastjson.Value) bool {
	if v.Type() != fastjson.TypeObject {
		return false
	}
	for _, key := range []string{record.LevelField, record.TimeField, record.PIDField} {
		field := get(v, key)
		if field == nil || field.Type() != fastjson.TypeNumber {
			return false
		}
	}
	if msg := get(v, record.MessageField); msg != nil && msg.Type() != fastjson.TypeString {
		return false
	}
	for _, key := range []string{record.SourceField, record.ContextField, record.DataField} {
		if field := get(v, key); field != nil && !isObjectLike(field) {
			return false
		}
	}
	return true
}

func isObjectLike(v *fastjson.Value) bool {
	switch v.Type() {
	case fastjson.TypeObject, fastjson.TypeArray, fastjson.TypeNull:
		return true
	default:
		return false
	}
}

// get returns the last value stored under key in object v, or nil. A repeated key
// resolves to its last occurrence, like JSON.parse.
func get(v *fastjson.Value, key string) *fastjson.Value {
	obj, err := v.Object()
	if err != nil {
		return nil
	}
	var found *fastjson.Value
	obj.Visit(func(k []byte, child *fastjson.Value) {
		if string(k) == key {
			found = child
		}
	})
	return found
}
