// Package diagfmt renders diagnostics for humans and for tooling.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"relviz/internal/diag"
	"relviz/internal/source"
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	ShowNotes bool
}

// Pretty writes diagnostics in a human-readable form. Call
// bag.Sort() first for deterministic output. Each diagnostic prints
// as
//
//	<path>:<line>:<col>: <severity> <CODE>: <message>
//
// followed by the source line with a caret marking the span.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, fs, &d, opts)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				writeLocation(w, fs, n.Span)
				fmt.Fprintf(w, "note: %s\n", n.Msg)
			}
		}
	}
}

func writeDiagnostic(w io.Writer, fs *source.FileSet, d *diag.Diagnostic, opts PrettyOpts) {
	writeLocation(w, fs, d.Primary)
	sev := d.Severity.String()
	code := d.Code.ID()
	if opts.Color {
		sev = sevColor(d.Severity).Sprint(sev)
		code = color.New(color.Bold).Sprint(code)
	}
	fmt.Fprintf(w, "%s %s: %s\n", sev, code, d.Message)
	writeContext(w, fs, d.Primary, d.Severity, opts)
}

func writeLocation(w io.Writer, fs *source.FileSet, span source.Span) {
	if int(span.File) >= fs.Len() {
		return
	}
	start, _ := fs.Resolve(span)
	fmt.Fprintf(w, "%s:%d:%d: ", fs.Get(span.File).Path, start.Line, start.Col)
}

func writeContext(w io.Writer, fs *source.FileSet, span source.Span, sev diag.Severity, opts PrettyOpts) {
	if int(span.File) >= fs.Len() {
		return
	}
	start, end := fs.Resolve(span)
	line := fs.Get(span.File).GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	}
	marker := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		marker = sevColor(sev).Sprint(marker)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", int(start.Col)-1), marker)
}

func sevColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}
