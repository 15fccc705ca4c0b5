// Package diagnostics defines Luna's error categories and the reporter that
// renders them with source context.
package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Category classifies a diagnostic. Every reported error belongs to exactly
// one category.
type Category int

const (
	Syntax Category = iota
	Runtime
	Type
	Name
	Index
	Argument
	Assertion
)

// String returns the display name used in rendered output.
func (c Category) String() string {
	switch c {
	case Syntax:
		return "Syntax Error (Skill issue)"
	case Runtime:
		return "Runtime Error"
	case Type:
		return "Type Error"
	case Name:
		return "Name Error"
	case Index:
		return "Index Error"
	case Argument:
		return "Argument Error"
	case Assertion:
		return "Assertion Error"
	}
	return "Error"
}

// Diagnostic is one reported error. Line and Col are 1-based; Line 0 means
// no source position is attached.
type Diagnostic struct {
	Category   Category
	Message    string
	Suggestion string
	Line       int
	Col        int
}

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

// Reporter owns the source text being processed and renders diagnostics
// against it. It also retains everything reported so callers can inspect
// diagnostics without scraping the output writer.
type Reporter struct {
	source   string
	filename string
	out      io.Writer
	color    bool
	reported []Diagnostic
}

// NewReporter creates a reporter writing to stderr with color enabled when
// stderr is a terminal.
func NewReporter(source, filename string) *Reporter {
	return &Reporter{
		source:   source,
		filename: filename,
		out:      os.Stderr,
		color:    isTerminal(os.Stderr),
	}
}

// SetOutput redirects rendered diagnostics. Color is disabled because the
// writer is assumed to be a buffer or pipe.
func (r *Reporter) SetOutput(w io.Writer) {
	r.out = w
	r.color = false
}

// SetSource replaces the source text, for REPL sessions that reuse one
// reporter across inputs.
func (r *Reporter) SetSource(source string) {
	r.source = source
}

// Reported returns every diagnostic seen so far.
func (r *Reporter) Reported() []Diagnostic {
	return r.reported
}

// Reset clears the retained diagnostics.
func (r *Reporter) Reset() {
	r.reported = nil
}

// Report renders a diagnostic without source position.
func (r *Reporter) Report(cat Category, message, suggestion string) {
	r.emit(Diagnostic{Category: cat, Message: message, Suggestion: suggestion})
}

// ReportAt renders a diagnostic with the offending source line echoed and a
// caret under the column.
func (r *Reporter) ReportAt(cat Category, message, suggestion string, line, col int) {
	r.emit(Diagnostic{Category: cat, Message: message, Suggestion: suggestion, Line: line, Col: col})
}

func (r *Reporter) emit(d Diagnostic) {
	r.reported = append(r.reported, d)
	fmt.Fprint(r.out, r.render(d))
}

func (r *Reporter) render(d Diagnostic) string {
	var b strings.Builder
	head := d.Category.String()
	if r.color {
		head = ansiBold + ansiRed + head + ansiReset
	}
	if d.Line > 0 && r.filename != "" {
		fmt.Fprintf(&b, "%s in %s at line %d, column %d:\n", head, r.filename, d.Line, d.Col)
	} else if d.Line > 0 {
		fmt.Fprintf(&b, "%s at line %d, column %d:\n", head, d.Line, d.Col)
	} else {
		fmt.Fprintf(&b, "%s:\n", head)
	}
	fmt.Fprintf(&b, "  %s\n", d.Message)
	if src := r.sourceLine(d.Line); src != "" {
		fmt.Fprintf(&b, "\n  %4d | %s\n", d.Line, src)
		caret := "^"
		if r.color {
			caret = ansiBold + ansiRed + caret + ansiReset
		}
		fmt.Fprintf(&b, "       | %s%s\n", strings.Repeat(" ", max(d.Col-1, 0)), caret)
	}
	if d.Suggestion != "" {
		hint := "hint:"
		if r.color {
			hint = ansiBold + ansiCyan + hint + ansiReset
		}
		fmt.Fprintf(&b, "  %s %s\n", hint, d.Suggestion)
	}
	return b.String()
}

func (r *Reporter) sourceLine(line int) string {
	if line <= 0 || r.source == "" {
		return ""
	}
	lines := strings.Split(r.source, "\n")
	if line > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[line-1], "\r")
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
