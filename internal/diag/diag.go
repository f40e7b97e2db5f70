/*
File    : molcore/internal/diag/diag.go
Package : diag
*/

// Package diag renders lex/parse errors with source context — a line of
// the offending source plus a `^` column marker — colorized when the
// destination is a terminal. It follows the teacher's
// formatWithContext-style diagnostic helper, generalized into a
// standalone Renderer instead of being baked into a REPL: this is a
// formatting convenience on demand, not an interactive loop.
package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/akashmaji946/molcore/lexer"
	"github.com/akashmaji946/molcore/parser"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Renderer formats errors for display on a destination writer, enabling
// ANSI color only when that destination is detected as a terminal.
type Renderer struct {
	w       io.Writer
	label   *color.Color
	marker  *color.Color
	message *color.Color
}

// New builds a Renderer targeting w. If w is an *os.File connected to a
// terminal, output is wrapped through go-colorable (needed for ANSI
// sequences to render on Windows consoles) and color.Color instances are
// left enabled; otherwise colors are disabled so piped/file output stays
// plain text.
func New(w io.Writer) *Renderer {
	enabled := isTerminal(w)
	out := w
	if enabled {
		if f, ok := w.(*os.File); ok {
			out = colorable.NewColorable(f)
		}
	}
	r := &Renderer{
		w:       out,
		label:   color.New(color.FgRed, color.Bold),
		marker:  color.New(color.FgYellow, color.Bold),
		message: color.New(color.FgWhite),
	}
	for _, c := range []*color.Color{r.label, r.marker, r.message} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Format renders err against source, returning the formatted text. When
// err carries a line/column (lex or parse errors), the offending source
// line is shown with a caret under the column; other errors render as a
// bare message.
func (r *Renderer) Format(err error, source string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", r.label.Sprint("error:"), r.message.Sprint(err.Error()))

	line, col, ok := locate(err)
	if !ok {
		return b.String()
	}
	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return b.String()
	}
	fmt.Fprintf(&b, "  %s\n", lines[line-1])
	if col >= 1 {
		fmt.Fprintf(&b, "  %s%s\n", strings.Repeat(" ", col-1), r.marker.Sprint("^"))
	}
	return b.String()
}

// Write formats err against source and writes it to the Renderer's
// destination.
func (r *Renderer) Write(err error, source string) error {
	_, writeErr := io.WriteString(r.w, r.Format(err, source))
	return writeErr
}

// locate extracts a 1-based (line, column) from the lex/parse error
// taxons that carry source spans (SPEC_FULL.md §A.2).
func locate(err error) (line, col int, ok bool) {
	switch e := err.(type) {
	case *lexer.Error:
		return e.Line, e.Column, true
	case *parser.Error:
		return e.Line, e.Column, true
	default:
		return 0, 0, false
	}
}
