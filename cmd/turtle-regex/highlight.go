package main

import (
	"io"
	"os"
	"strings"

	"github.com/magnetde/starlark-turtle/regex"
)

// ANSI escape sequences
const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiBlue  = "\x1b[34m"
)

// style is the decoration of the output.
type style struct {
	open, close string // around each match
	found       string // heading, if there are matches
	missing     string // heading, if there are no matches
}

var (
	colorStyle = style{
		open:    ansiBlue,
		close:   ansiReset,
		found:   ansiGreen + "Matches are:" + ansiReset,
		missing: ansiRed + "No matches:" + ansiReset,
	}

	plainStyle = style{
		open:    "[",
		close:   "]",
		found:   "Matches are:",
		missing: "No matches:",
	}
)

func (s style) heading(found bool) string {
	if found {
		return s.found
	}
	return s.missing
}

// highlight returns the text with each match wrapped in the decoration of the style.
// The spans are byte offsets, ordered ascending and not overlapping.
func highlight(text string, spans []regex.Span, st style) string {
	var b strings.Builder
	b.Grow(len(text) + len(spans)*(len(st.open)+len(st.close)))

	last := 0
	for _, s := range spans {
		b.WriteString(text[last:s.Start])
		b.WriteString(st.open)
		b.WriteString(text[s.Start:s.End])
		b.WriteString(st.close)

		last = s.End
	}

	b.WriteString(text[last:])

	return b.String()
}

func formatSpans(spans []regex.Span) string {
	if len(spans) == 0 {
		return "-"
	}

	parts := make([]string, len(spans))
	for i, s := range spans {
		parts[i] = s.String()
	}

	return strings.Join(parts, ", ")
}

// isTerminal reports whether w is a character device, like a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	fi, err := f.Stat()
	if err != nil {
		return false
	}

	return fi.Mode()&os.ModeCharDevice != 0
}
