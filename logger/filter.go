package logger

import (
	"net/url"
	"reflect"
	"strings"

	"github.com/gaborage/logbricks/record"
)

const (
	// DefaultMaxDepth bounds how deep FilterValue descends into nested values
	DefaultMaxDepth = 8
	// DefaultMaskValue replaces sensitive values
	DefaultMaskValue = "***"
)

// FilterConfig lists the keys whose values are masked.
type FilterConfig struct {
	// SensitiveFields are matched case-insensitively as substrings of a key
	SensitiveFields []string
	// MaskValue replaces sensitive values (default: "***")
	MaskValue string
}

// DefaultFilterConfig returns common credential-like key names.
func DefaultFilterConfig() *FilterConfig {
	return &FilterConfig{
		SensitiveFields: []string{
			"password", "passwd", "pwd",
			"secret", "api_key", "apikey",
			"token", "access_token", "refresh_token",
			"authorization", "credential",
			"database_url", "db_url",
		},
		MaskValue: DefaultMaskValue,
	}
}

// SensitiveDataFilter masks sensitive values in src, ctx and data before they are logged.
// Inputs are never modified; maps, slices and structs are copied when walked.
type SensitiveDataFilter struct {
	config *FilterConfig
}

// NewSensitiveDataFilter creates a filter. A nil config selects DefaultFilterConfig.
func NewSensitiveDataFilter(config *FilterConfig) *SensitiveDataFilter {
	if config == nil {
		config = DefaultFilterConfig()
	}
	if config.MaskValue == "" {
		config.MaskValue = DefaultMaskValue
	}
	return &SensitiveDataFilter{config: config}
}

// FilterFields returns a filtered copy of fields.
func (f *SensitiveDataFilter) FilterFields(fields record.Fields) record.Fields {
	if fields == nil {
		return nil
	}
	w := newFilterWalk(f)
	filtered := make(record.Fields, len(fields))
	for key, value := range fields {
		filtered[key] = w.value(key, value, DefaultMaxDepth)
	}
	return filtered
}

// FilterValue masks value when key is sensitive, otherwise walks it looking for
// sensitive keys below.
func (f *SensitiveDataFilter) FilterValue(key string, value any) any {
	return newFilterWalk(f).value(key, value, DefaultMaxDepth)
}

// FilterString masks value when key is sensitive. URLs keep everything but the password.
func (f *SensitiveDataFilter) FilterString(key, value string) string {
	if !f.isSensitive(key) {
		return value
	}
	return f.maskString(value)
}

func (f *SensitiveDataFilter) isSensitive(key string) bool {
	lower := strings.ToLower(key)
	for _, field := range f.config.SensitiveFields {
		if strings.Contains(lower, strings.ToLower(field)) {
			return true
		}
	}
	return false
}

func (f *SensitiveDataFilter) maskString(value string) string {
	if value == "" {
		return value
	}
	if strings.Contains(value, "://") {
		if masked, ok := f.maskURL(value); ok {
			return masked
		}
	}
	return f.config.MaskValue
}

// maskURL swaps the password of a URL for the mask. URLs without a password are
// returned unchanged; ok is false when value does not parse.
func (f *SensitiveDataFilter) maskURL(value string) (string, bool) {
	parsed, err := url.Parse(value)
	if err != nil {
		return "", false
	}
	if parsed.User == nil {
		return value, true
	}
	if _, hasPassword := parsed.User.Password(); !hasPassword {
		return value, true
	}

	var b strings.Builder
	b.WriteString(parsed.Scheme)
	b.WriteString("://")
	b.WriteString(parsed.User.Username())
	b.WriteByte(':')
	b.WriteString(f.config.MaskValue)
	b.WriteByte('@')
	b.WriteString(parsed.Host)
	b.WriteString(parsed.EscapedPath())
	if parsed.RawQuery != "" {
		b.WriteByte('?')
		b.WriteString(parsed.RawQuery)
	}
	if parsed.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(parsed.Fragment)
	}
	return b.String(), true
}

// filterWalk carries the set of pointers on the current path so cyclic values stop.
type filterWalk struct {
	f       *SensitiveDataFilter
	visited map[uintptr]struct{}
}

func newFilterWalk(f *SensitiveDataFilter) *filterWalk {
	return &filterWalk{f: f, visited: make(map[uintptr]struct{})}
}

func (w *filterWalk) value(key string, value any, depth int) any {
	if w.f.isSensitive(key) {
		if s, ok := value.(string); ok {
			return w.f.maskString(s)
		}
		return w.f.config.MaskValue
	}
	if value == nil || depth <= 0 {
		return value
	}

	switch v := value.(type) {
	case string, bool, int, int64, float64:
		return value
	case record.Fields:
		return record.Fields(w.stringMap(v, depth))
	case map[string]any:
		return w.stringMap(v, depth)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map:
		return w.reflectMap(rv, value, depth)
	case reflect.Slice, reflect.Array:
		return w.list(key, rv, value, depth)
	case reflect.Struct:
		return w.structFields(rv, depth)
	case reflect.Pointer:
		if rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return value
		}
		if !w.enter(rv.Pointer()) {
			return value
		}
		defer w.leave(rv.Pointer())
		return w.structFields(rv.Elem(), depth)
	default:
		return value
	}
}

func (w *filterWalk) enter(ptr uintptr) bool {
	if _, seen := w.visited[ptr]; seen {
		return false
	}
	w.visited[ptr] = struct{}{}
	return true
}

func (w *filterWalk) leave(ptr uintptr) {
	delete(w.visited, ptr)
}

func (w *filterWalk) stringMap(m map[string]any, depth int) map[string]any {
	ptr := reflect.ValueOf(m).Pointer()
	if !w.enter(ptr) {
		return m
	}
	defer w.leave(ptr)

	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = w.value(k, v, depth-1)
	}
	return out
}

// reflectMap handles maps with string keys other than map[string]any.
func (w *filterWalk) reflectMap(rv reflect.Value, original any, depth int) any {
	if rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
		return original
	}
	if !w.enter(rv.Pointer()) {
		return original
	}
	defer w.leave(rv.Pointer())

	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().String()
		out[k] = w.value(k, iter.Value().Interface(), depth-1)
	}
	return out
}

// list filters elements under the parent key and returns the original value when
// nothing changed, preserving its type.
func (w *filterWalk) list(key string, rv reflect.Value, original any, depth int) any {
	if rv.Kind() == reflect.Slice {
		if rv.IsNil() || rv.Len() == 0 {
			return original
		}
		if !w.enter(rv.Pointer()) {
			return original
		}
		defer w.leave(rv.Pointer())
	}

	out := make([]any, rv.Len())
	changed := false
	for i := range rv.Len() {
		elem := rv.Index(i).Interface()
		filtered := w.value(key, elem, depth-1)
		if !reflect.DeepEqual(filtered, elem) {
			changed = true
		}
		out[i] = filtered
	}
	if !changed {
		return original
	}
	return out
}

// structFields renders exported fields into a map keyed by their JSON names.
func (w *filterWalk) structFields(rv reflect.Value, depth int) map[string]any {
	rt := rv.Type()
	out := make(map[string]any, rt.NumField())
	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name := jsonFieldName(&field)
		if name == "" {
			continue
		}
		out[name] = w.value(name, rv.Field(i).Interface(), depth-1)
	}
	return out
}

// jsonFieldName returns the JSON key for field, or "" when the field is skipped.
func jsonFieldName(field *reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name
	}
	return name
}
