package logger

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// formatMessage resolves placeholders in format from args:
//
//	%s      value as text
//	%d, %f  value as a number
//	%i      value as an integer, truncated toward negative infinity
//	%j, %o, %O  value as JSON; strings are single-quoted
//	%%      a literal percent sign
//
// Each placeholder consumes one argument. Placeholders without an argument, and
// unknown verbs, stay in the message as written; surplus arguments are dropped.
func formatMessage(format string, args []any) string {
	var b strings.Builder
	b.Grow(len(format))

	next := 0
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 == len(format) {
			b.WriteByte(c)
			continue
		}

		verb := format[i+1]
		if verb == '%' {
			b.WriteByte('%')
			i++
			continue
		}

		text, ok := "", false
		if next < len(args) {
			text, ok = formatArg(verb, args[next])
		}
		if !ok {
			b.WriteByte(c)
			continue
		}
		b.WriteString(text)
		next++
		i++
	}
	return b.String()
}

func formatArg(verb byte, arg any) (string, bool) {
	switch verb {
	case 's':
		if arg == nil {
			return "null", true
		}
		return fmt.Sprint(arg), true
	case 'd', 'f':
		if arg == nil {
			return "", false
		}
		return formatNumber(toNumber(arg)), true
	case 'i':
		if arg == nil {
			return "", false
		}
		return formatNumber(math.Floor(toNumber(arg))), true
	case 'j', 'o', 'O':
		if s, isString := arg.(string); isString {
			return "'" + s + "'", true
		}
		encoded, err := json.Marshal(arg)
		if err != nil {
			return `"[unserializable]"`, true
		}
		return string(encoded), true
	default:
		return "", false
	}
}

func toNumber(arg any) float64 {
	rv := reflect.ValueOf(arg)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Bool:
		if rv.Bool() {
			return 1
		}
		return 0
	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(rv.String()), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}
