package diag

import (
	"fmt"
	"strings"
)

// SourceLocation pins a diagnostic to a span in source text.
type SourceLocation struct {
	Filename string
	Line     int
	Column   int
	Length   int // length of the offending syntax node; zero means "point"
}

// SourceError pairs an underlying diagnostic with the source text needed to
// render it with a highlighted context snippet.
type SourceError struct {
	Inner    error
	Location *SourceLocation
	Source   string
}

func NewSourceError(inner error, loc *SourceLocation, source string) *SourceError {
	return &SourceError{Inner: inner, Location: loc, Source: source}
}

func (e *SourceError) Unwrap() error { return e.Inner }

func (e *SourceError) Error() string {
	if e.Location == nil || e.Source == "" {
		return e.Inner.Error()
	}
	return e.FormatWithHighlighting()
}

// FormatWithHighlighting renders a few lines of context around the error
// location with the offending span underlined.
func (e *SourceError) FormatWithHighlighting() string {
	if e.Location == nil || e.Source == "" {
		return e.Inner.Error()
	}

	lines := strings.Split(e.Source, "\n")
	if e.Location.Line < 1 || e.Location.Line > len(lines) {
		return e.Inner.Error()
	}

	const (
		red   = "\033[31m"
		blue  = "\033[34m"
		bold  = "\033[1m"
		reset = "\033[0m"
		dim   = "\033[2m"
	)

	var b strings.Builder
	fmt.Fprintf(&b, "%s%sError:%s %s\n", bold, red, reset, e.Inner)
	fmt.Fprintf(&b, "  %s%s--> %s:%d:%d%s\n", dim, blue, e.Location.Filename, e.Location.Line, e.Location.Column, reset)
	fmt.Fprintf(&b, " %s%s |%s\n", dim, padLeft("", 3), reset)

	start := max(1, e.Location.Line-2)
	end := min(len(lines), e.Location.Line+2)
	for i := start; i <= end; i++ {
		padded := padLeft(fmt.Sprintf("%d", i), 3)
		if i == e.Location.Line {
			fmt.Fprintf(&b, " %s%s%s%s | %s%s\n", dim, blue, bold, padded, reset, lines[i-1])
			padding := strings.Repeat(" ", 1+3+3+e.Location.Column-1)
			underline := strings.Repeat("^", max(1, e.Location.Length))
			fmt.Fprintf(&b, "%s%s%s%s%s\n", dim, padding, red, underline, reset)
		} else {
			fmt.Fprintf(&b, " %s%s | %s%s\n", dim, padded, lines[i-1], reset)
		}
	}
	fmt.Fprintf(&b, " %s%s |%s\n", dim, padLeft("", 3), reset)
	return b.String()
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
