package devprint

import (
	"github.com/fatih/color"

	"github.com/gaborage/logbricks/record"
)

// Style transforms text for display, usually by wrapping it in terminal escape codes.
type Style func(string) string

// Styles maps every semantic style the printer uses to a transform. A nil Style
// leaves text unchanged; a level missing from Label renders a blank label.
type Styles struct {
	Dim    Style
	Accent Style

	// Label styles the padded level name
	Label map[record.Level]Style
	// Message styles the message text; info has no entry by default
	Message map[record.Level]Style

	// Value styles used when rendering data
	String  Style
	Number  Style
	Boolean Style
	Null    Style
}

func plain(s string) string { return s }

// PlainStyles returns styles that leave all text untouched.
func PlainStyles() Styles {
	labels := make(map[record.Level]Style, len(record.Levels()))
	for _, level := range record.Levels() {
		labels[level] = plain
	}
	return Styles{
		Dim:     plain,
		Accent:  plain,
		Label:   labels,
		Message: map[record.Level]Style{},
		String:  plain,
		Number:  plain,
		Boolean: plain,
		Null:    plain,
	}
}

// ColorStyles returns the terminal palette. When enabled is false every style
// still exists but emits no escape codes, regardless of color.NoColor.
func ColorStyles(enabled bool) Styles {
	style := func(attrs ...color.Attribute) Style {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return func(s string) string {
			return c.Sprint(s)
		}
	}

	return Styles{
		Dim:    style(color.FgHiBlack),
		Accent: style(color.FgCyan),
		Label: map[record.Level]Style{
			record.FatalLevel: style(color.BgWhite, color.FgBlack),
			record.ErrorLevel: style(color.FgRed),
			record.WarnLevel:  style(color.FgYellow),
			record.InfoLevel:  style(color.FgGreen),
			record.DebugLevel: style(color.FgMagenta),
			record.TraceLevel: style(color.FgBlue),
		},
		Message: map[record.Level]Style{
			record.FatalLevel: style(color.BgWhite, color.FgBlack),
			record.ErrorLevel: style(color.BgRed, color.FgWhite),
			record.WarnLevel:  style(color.BgYellow, color.FgBlack),
			record.DebugLevel: style(color.FgMagenta),
			record.TraceLevel: style(color.Underline),
		},
		String:  style(color.FgGreen),
		Number:  style(color.FgYellow),
		Boolean: style(color.FgYellow),
		Null:    style(color.Bold),
	}
}

func apply(style Style, s string) string {
	if style == nil {
		return s
	}
	return style(s)
}
