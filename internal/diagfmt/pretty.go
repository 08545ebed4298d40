package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"mica/internal/diag"
	"mica/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	noteColor    = color.New(color.FgCyan)
	gutterColor  = color.New(color.FgBlue)
)

// Pretty renders the bag in source order as
//
//	<path>:<line>:<col>: <severity> <CODE>: <message>
//	  <line> | <source line>
//	         |     ^~~~
//
// followed by the notes when opts.ShowNotes is set. Call bag.Sort()
// beforehand when stable file ordering matters.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeHeading(w, fs, d, opts)
		writeContext(w, fs, d.Primary, opts)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			start, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
				displayPath(fs, n.Span.File, opts.PathMode),
				start.Line, start.Col,
				paint(noteColor, "note", opts.Color), n.Msg)
			writeContext(w, fs, n.Span, opts)
		}
	}
}

func writeHeading(w io.Writer, fs *source.FileSet, d diag.Diagnostic, opts PrettyOpts) {
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		displayPath(fs, d.Primary.File, opts.PathMode),
		start.Line, start.Col,
		paint(severityColor(d.Severity), strings.ToLower(d.Severity.String()), opts.Color),
		d.Code.ID(), d.Message)
}

// writeContext prints the first source line the span touches, with a
// caret run underneath. Multi-line spans underline just to the end of the
// first line.
func writeContext(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts) {
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, _ := fs.Resolve(sp)
	line := f.GetLine(start.Line)
	if line == "" && sp.Empty() {
		return
	}

	gutter := fmt.Sprintf("%4d | ", start.Line)
	fmt.Fprintf(w, "%s%s\n", paint(gutterColor, gutter, opts.Color), line)

	underline := sp.Len()
	if rest := len(line) - int(start.Col) + 1; rest > 0 && underline > uint32(rest) {
		underline = uint32(rest)
	} else if rest <= 0 {
		underline = 0
	}
	marks := "^"
	if underline > 1 {
		marks += strings.Repeat("~", int(underline)-1)
	}
	pad := strings.Repeat(" ", int(start.Col)-1)
	fmt.Fprintf(w, "%s%s%s\n",
		paint(gutterColor, "     | ", opts.Color),
		pad, paint(errorColor, marks, opts.Color))
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func paint(c *color.Color, s string, enabled bool) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}

func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	if f == nil {
		return "<unknown>"
	}
	if mode == PathModeBasename {
		return filepath.Base(f.Path)
	}
	return f.Path
}
