package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter renders a semantic category of output: colored on capable
// terminals, decorated plain text everywhere else so messages stay
// readable when piped.
type Formatter struct {
	paint  *color.Color
	prefix string
	suffix string
}

func newFormatter(attr color.Attribute, prefix, suffix string) Formatter {
	return Formatter{paint: color.New(attr), prefix: prefix, suffix: suffix}
}

// Sprint formats the arguments and returns the decorated string.
func (f Formatter) Sprint(a ...any) string {
	return f.render(fmt.Sprint(a...))
}

// Sprintf formats according to a format specifier and returns the
// decorated string.
func (f Formatter) Sprintf(format string, a ...any) string {
	return f.render(fmt.Sprintf(format, a...))
}

func (f Formatter) render(text string) string {
	if colorDisabled() {
		return f.prefix + text + f.suffix
	}
	return f.paint.Sprint(text)
}

// EnsureNewline appends a trailing newline when the string lacks one.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

func colorDisabled() bool {
	// https://no-color.org/ plus fatih/color's own terminal detection.
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return true
	}
	return color.NoColor
}

var (
	// Code marks runnable commands; backticks when color is unavailable.
	Code = newFormatter(color.FgYellow, "`", "`")

	// Path marks file and directory paths; undecorated without color.
	Path = newFormatter(color.FgYellow, "", "")

	// Success, Error, and Warning mark outcome indicators.
	Success = newFormatter(color.FgGreen, "", "")
	Error   = newFormatter(color.FgRed, "", "")
	Warning = newFormatter(color.FgYellow, "", "")

	// Info marks hints and directional follow-ups.
	Info = newFormatter(color.FgCyan, "", "")

	// Highlight marks user-supplied values like project names; quoted
	// without color.
	Highlight = newFormatter(color.FgCyan, "'", "'")

	// Muted marks secondary detail; parenthesized without color.
	Muted = newFormatter(color.FgHiBlack, "(", ")")
)
