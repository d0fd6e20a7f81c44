package config

import (
	"github.com/chadsembler/chadsembler/diag"
)

// ArgumentProcessor validates and applies `KEY=VALUE` command-line arguments
// into a configuration table.
type ArgumentProcessor struct {
	sink *diag.Sink
}

// NewArgumentProcessor creates an ArgumentProcessor with its own error sink.
func NewArgumentProcessor() *ArgumentProcessor {
	return &ArgumentProcessor{sink: diag.NewSink("Argument Processor Errors:")}
}

// Run validates every argument and merges accepted ones into table. Each
// argument occupies its own synthetic row so diagnostics can point at "the
// n-th argument" the same way source diagnostics point at a line.
func (a *ArgumentProcessor) Run(args []string, table Table) error {
	for i, arg := range args {
		row := i + 1

		p, ok := splitPair(arg, row, 1)
		if !ok {
			a.sink.Record(row, 1, diag.Syntax, "Should contain a single key : value pair")
			continue
		}

		validate(p, table, a.sink)
	}

	return a.sink.AsFatal()
}
