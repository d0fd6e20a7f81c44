package config

import (
	"github.com/chadsembler/chadsembler/diag"
)

const (
	directivePrefix = '!'
	commentPrefix   = ';'
)

// Preprocessor scans source text for `!KEY=VALUE` directives, ignoring
// comments, and merges accepted directives into a configuration table. It
// never modifies the source text itself; directive lines are later treated
// as comments by the lexer.
type Preprocessor struct {
	sink *diag.Sink
}

// NewPreprocessor creates a Preprocessor with its own error sink.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{sink: diag.NewSink("Preprocessor Errors:")}
}

// Run scans source for directives and merges them into table.
func (pp *Preprocessor) Run(source string, table Table) error {
	row, column := 1, 1
	i := 0

	for i < len(source) {
		switch source[i] {
		case commentPrefix:
			i = skipToLineEnd(source, i)

		case directivePrefix:
			directive, next := readDirective(source, i)
			pp.handle(directive, row, column, table)
			i = next
			column += len(directive)
			continue
		}

		if i < len(source) && source[i] == '\n' {
			row++
			column = 0
		}

		i++
		column++
	}

	return pp.sink.AsFatal()
}

func (pp *Preprocessor) handle(directive string, row, column int, table Table) {
	body := directive[1:] // drop the '!' prefix

	p, ok := splitPair(body, row, column)
	if !ok {
		pp.sink.Record(row, column, diag.Syntax, "Should contain a single key : value pair")
		return
	}

	validate(p, table, pp.sink)
}

// skipToLineEnd advances i to the next line break (or to the last character
// of the source).
func skipToLineEnd(source string, i int) int {
	for i+1 < len(source) && source[i] != '\n' {
		i++
	}
	return i
}

// readDirective reads the `!KEY=VALUE` token starting at i, stopping at
// whitespace, a line break, or the start of a comment/another directive.
func readDirective(source string, i int) (string, int) {
	lower := i
	i++ // skip the leading '!'

	for i < len(source) &&
		source[i] != ' ' && source[i] != '\t' && source[i] != '\n' &&
		source[i] != commentPrefix && source[i] != directivePrefix {
		i++
	}

	return source[lower:i], i
}
