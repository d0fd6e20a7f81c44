package config

import (
	"strings"

	"github.com/chadsembler/chadsembler/diag"
)

// pair is a raw, upper-cased "KEY=VALUE" split, still unvalidated.
type pair struct {
	Option string
	Value  string
	Row    int
	Column int
}

// splitPair splits raw on '=' and upper-cases both sides. ok is false if raw
// does not contain exactly one '='.
func splitPair(raw string, row, column int) (pair, bool) {
	parts := strings.Split(raw, "=")
	if len(parts) != 2 {
		return pair{}, false
	}

	return pair{
		Option: strings.ToUpper(parts[0]),
		Value:  strings.ToUpper(parts[1]),
		Row:    row,
		Column: column,
	}, true
}

// validate applies the directive validation order: the option must be known,
// the value must carry no sign, must be all digits, and must meet the
// option's minimum. On success it writes into table and returns true.
func validate(p pair, table Table, sink *diag.Sink) bool {
	minimum, known := Minimums[p.Option]
	if !known {
		sink.Record(p.Row, p.Column, diag.UnknownOption, "Unknown configuration option")
		return false
	}

	if len(p.Value) == 0 {
		sink.Record(p.Row, p.Column, diag.InvalidValue, "Configuration value must contain digits only")
		return false
	}

	if p.Value[0] == '+' || p.Value[0] == '-' {
		sink.Record(p.Row, p.Column, diag.InvalidValue, "Don't specify the sign of a configuration value")
		return false
	}

	for _, c := range p.Value {
		if c < '0' || c > '9' {
			sink.Record(p.Row, p.Column, diag.InvalidValue, "Configuration value must contain digits only")
			return false
		}
	}

	value := 0
	for _, c := range p.Value {
		value = value*10 + int(c-'0')
	}

	if value < minimum {
		sink.Record(p.Row, p.Column, diag.MinimumValue, "Value is below its minimum")
		return false
	}

	table[p.Option] = value
	return true
}
