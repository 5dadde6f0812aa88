package diag

import (
	"fmt"
	"io"
	"os"
)

// Formatter renders Diagnostics in a Rust-style compiler-error format:
// a plain-text header with the severity, code, and message, a line naming
// the stage, then any notes and a trailing help line.
type Formatter struct {
	w io.Writer
}

// NewFormatter builds a Formatter writing to stderr.
func NewFormatter() *Formatter {
	return &Formatter{w: os.Stderr}
}

// NewFormatterTo builds a Formatter writing to an arbitrary writer, mainly
// for tests that want to capture output.
func NewFormatterTo(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

// Format prints one diagnostic.
func (f *Formatter) Format(d Diagnostic) {
	fmt.Fprintf(f.w, "%s[%s]: %s\n", d.Severity, d.Code, d.Message)
	fmt.Fprintf(f.w, "  --> stage: %s\n", d.Stage)
	for _, n := range d.Notes {
		fmt.Fprintf(f.w, "  = note: %s\n", n)
	}
	if d.Help != "" {
		fmt.Fprintf(f.w, "  = help: %s\n", d.Help)
	}
}
