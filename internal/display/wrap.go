package display

import (
	"strconv"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

const DefaultWidth = 80

// Wrap word-wraps text to width, preserving ANSI escape sequences.
// A width of zero or less uses DefaultWidth.
func Wrap(text string, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	return wordwrap.String(text, width)
}

// Hang wraps text to width and indents every line after the first by n
// spaces, keeping the total width.
func Hang(text string, width int, n uint) string {
	if width <= 0 {
		width = DefaultWidth
	}
	wrapped := Wrap(text, width)
	first, rest, ok := strings.Cut(wrapped, "\n")
	if !ok || n == 0 || int(n) >= width {
		return wrapped
	}
	rest = Wrap(strings.ReplaceAll(rest, "\n", " "), width-int(n))
	return first + "\n" + indent.String(rest, n)
}

// Capitalize returns s with its first character uppercased.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Amount formats an item count without trailing zeros: 2, 0.5, 12.25.
func Amount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
