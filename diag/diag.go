// Package diag implements the shared diagnostic sink used by every compiler
// phase (argument processing, preprocessing, lexing, parsing, scope
// resolution, semantic analysis). Each phase accumulates its own errors and
// flushes them together instead of aborting on the first one.
package diag

import (
	"fmt"
	"io"
)

// Kind categorizes a diagnostic. The zero value is never used directly; each
// error is recorded with one of the named kinds below.
type Kind string

// The fixed set of diagnostic kinds a phase can report.
const (
	Syntax                Kind = "Syntax Error"
	UnknownOption         Kind = "Unknown Option Error"
	InvalidValue          Kind = "Invalid Value Error"
	MinimumValue          Kind = "Minimum Value Error"
	InvalidLabel          Kind = "Invalid Label Error"
	BranchLabel           Kind = "Branch Label Error"
	VariableLabel         Kind = "Variable Label Error"
	InvalidOperands       Kind = "Invalid Operands Error"
	InvalidAddressingMode Kind = "Invalid Addressing Mode Error"
	InvalidRegister       Kind = "Invalid Register Error"
)

// Error is a single diagnostic, anchored to a row/column in the source.
type Error struct {
	Row     int
	Column  int
	Kind    Kind
	Message string
}

func (e Error) String() string {
	return fmt.Sprintf("%s %d:%d -> %s", e.Kind, e.Row, e.Column, e.Message)
}

// Sink accumulates diagnostics for a single compiler phase.
type Sink struct {
	header string
	errors []Error
}

// NewSink creates a sink that prints header before any accumulated errors.
func NewSink(header string) *Sink {
	return &Sink{header: header}
}

// Record appends a diagnostic to the sink.
func (s *Sink) Record(row, column int, kind Kind, message string) {
	s.errors = append(s.errors, Error{Row: row, Column: column, Kind: kind, Message: message})
}

// HasErrors reports whether any diagnostic has been recorded.
func (s *Sink) HasErrors() bool {
	return len(s.errors) > 0
}

// Errors returns the accumulated diagnostics.
func (s *Sink) Errors() []Error {
	return s.errors
}

// Flush writes the header and every accumulated diagnostic to w, one per
// line. It is a no-op if the sink holds no errors.
func (s *Sink) Flush(w io.Writer) {
	if !s.HasErrors() {
		return
	}

	fmt.Fprintln(w, s.header)
	for _, e := range s.errors {
		fmt.Fprintln(w, e.String())
	}
}

// Fatal is returned by a phase's Run function when its sink holds one or
// more diagnostics; the caller prints them and aborts before the next phase.
type Fatal struct {
	Sink *Sink
}

func (f *Fatal) Error() string {
	return fmt.Sprintf("%s: %d error(s)", f.Sink.header, len(f.Sink.errors))
}

// AsFatal returns a *Fatal wrapping the sink if it holds errors, else nil.
// Phases call this at the end of their Run function:
//
//	if err := sink.AsFatal(); err != nil { return nil, err }
func (s *Sink) AsFatal() error {
	if !s.HasErrors() {
		return nil
	}
	return &Fatal{Sink: s}
}
