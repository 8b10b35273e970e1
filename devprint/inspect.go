package devprint

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/valyala/fastjson"
)

const defaultBreakLength = 80

var (
	identifierKey = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z_0-9]*$`)
	ansiSequence  = regexp.MustCompile("\x1b\\[[0-9;]*m")
)

// InspectOptions controls how Inspect renders a value.
type InspectOptions struct {
	// Depth is the deepest nesting level expanded; deeper containers collapse to
	// [Object] or [Array]. Negative means unlimited.
	Depth int
	// Compact keeps entries on as few lines as possible, continuing wrapped
	// entries on indented lines instead of one entry per line.
	Compact bool
	// BreakLength is the column width at which a container is split; 0 means 80.
	BreakLength int
	// Styles colors primitive values when set.
	Styles *Styles
}

// Inspect renders a JSON value as a structural, human-readable description:
//
//	{ reqId: 'r1', tags: [ 'a', 'b' ] }
//
// Keys that are identifiers stay unquoted and strings use single quotes.
func Inspect(v *fastjson.Value, opts InspectOptions) string {
	if opts.BreakLength <= 0 {
		opts.BreakLength = defaultBreakLength
	}
	in := &inspector{opts: opts}
	return in.value(v, 0, 0)
}

type inspector struct {
	opts  InspectOptions
	stack []*fastjson.Value
}

func (in *inspector) value(v *fastjson.Value, level, indent int) string {
	switch v.Type() {
	case fastjson.TypeObject:
		return in.object(v, level, indent)
	case fastjson.TypeArray:
		return in.array(v, level, indent)
	case fastjson.TypeString:
		return in.paint(in.style(func(s *Styles) Style { return s.String }), quote(string(v.GetStringBytes())))
	case fastjson.TypeNumber:
		return in.paint(in.style(func(s *Styles) Style { return s.Number }), formatNumber(v))
	case fastjson.TypeTrue:
		return in.paint(in.style(func(s *Styles) Style { return s.Boolean }), "true")
	case fastjson.TypeFalse:
		return in.paint(in.style(func(s *Styles) Style { return s.Boolean }), "false")
	default:
		return in.paint(in.style(func(s *Styles) Style { return s.Null }), "null")
	}
}

func (in *inspector) style(pick func(*Styles) Style) Style {
	if in.opts.Styles == nil {
		return nil
	}
	return pick(in.opts.Styles)
}

func (in *inspector) paint(style Style, s string) string {
	return apply(style, s)
}

func (in *inspector) object(v *fastjson.Value, level, indent int) string {
	if in.onStack(v) {
		return "[Circular *1]"
	}
	obj, _ := v.Object()
	if obj.Len() == 0 {
		return "{}"
	}
	if in.tooDeep(level) {
		return "[Object]"
	}

	in.stack = append(in.stack, v)
	defer in.pop()

	// a repeated key keeps its first position and its last value
	keys := make([]string, 0, obj.Len())
	values := make(map[string]*fastjson.Value, obj.Len())
	obj.Visit(func(k []byte, child *fastjson.Value) {
		key := string(k)
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = child
	})

	entries := make([]string, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, formatKey(key)+": "+in.value(values[key], level+1, indent+2))
	}
	return in.join(entries, "{", "}", indent)
}

func (in *inspector) array(v *fastjson.Value, level, indent int) string {
	if in.onStack(v) {
		return "[Circular *1]"
	}
	items, _ := v.Array()
	if len(items) == 0 {
		return "[]"
	}
	if in.tooDeep(level) {
		return "[Array]"
	}

	in.stack = append(in.stack, v)
	defer in.pop()

	entries := make([]string, 0, len(items))
	for _, item := range items {
		entries = append(entries, in.value(item, level+1, indent+2))
	}
	return in.join(entries, "[", "]", indent)
}

func (in *inspector) tooDeep(level int) bool {
	return in.opts.Depth >= 0 && level > in.opts.Depth
}

func (in *inspector) onStack(v *fastjson.Value) bool {
	for _, seen := range in.stack {
		if seen == v {
			return true
		}
	}
	return false
}

func (in *inspector) pop() {
	in.stack = in.stack[:len(in.stack)-1]
}

// join lays entries out on one line when they fit within the break length and
// none spans several lines; otherwise it splits them.
func (in *inspector) join(entries []string, open, closing string, indent int) string {
	single := open + " " + strings.Join(entries, ", ") + " " + closing
	if indent+visibleLen(single) <= in.opts.BreakLength && !multiline(entries) {
		return single
	}

	pad := strings.Repeat(" ", indent+2)
	if in.opts.Compact {
		return open + " " + strings.Join(entries, ",\n"+pad) + " " + closing
	}
	return open + "\n" + pad + strings.Join(entries, ",\n"+pad) + "\n" + strings.Repeat(" ", indent) + closing
}

func multiline(entries []string) bool {
	for _, e := range entries {
		if strings.Contains(e, "\n") {
			return true
		}
	}
	return false
}

// visibleLen counts runes, ignoring color escape sequences.
func visibleLen(s string) int {
	return utf8.RuneCountInString(ansiSequence.ReplaceAllString(s, ""))
}

func formatKey(key string) string {
	if identifierKey.MatchString(key) {
		return key
	}
	return quote(key)
}

// formatNumber prints integers without a fraction and uses exponent notation
// only for very large or very small magnitudes.
func formatNumber(v *fastjson.Value) string {
	f, err := v.Float64()
	if err != nil {
		return string(v.MarshalTo(nil))
	}
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// 1e-7, not 1e-07
		return strings.Replace(strings.Replace(s, "e+0", "e+", 1), "e-0", "e-", 1)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// quote wraps s in single quotes, switching to double quotes or backticks when
// that avoids escaping.
func quote(s string) string {
	q := '\''
	if strings.ContainsRune(s, '\'') {
		switch {
		case !strings.ContainsRune(s, '"'):
			q = '"'
		case !strings.ContainsRune(s, '`'):
			q = '`'
		}
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteRune(q)
	for _, r := range s {
		switch {
		case r == q || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\b':
			b.WriteString(`\b`)
		case r == '\f':
			b.WriteString(`\f`)
		case r == '\v':
			b.WriteString(`\v`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02X`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune(q)
	return b.String()
}
