// Package semantics validates and normalises the operands of every
// instruction in a resolved set of scopes: operand counts, addressing-mode
// vs. register-vs-label/value mismatches, label declarations, and the
// register-only rules that individual instructions impose. Missing operands
// are filled in with their documented defaults rather than rejected.
package semantics

import (
	"github.com/chadsembler/chadsembler/arch"
	"github.com/chadsembler/chadsembler/diag"
	"github.com/chadsembler/chadsembler/parser"
	"github.com/chadsembler/chadsembler/pools"
)

// defaults are the synthetic tokens spliced in for an omitted operand. An
// operand defaults to "%ACC" (accumulator, register mode) when entirely
// absent, or to "@" (direct mode) / "%" (register mode) when only the value
// half was given.
type defaults struct {
	accumulator parser.Token
	register    parser.Token
	direct      parser.Token
	separator   parser.Token
}

func defaultOperands() defaults {
	return defaults{
		accumulator: parser.Token{Type: parser.Register, Value: arch.Accumulator.Name},
		register:    parser.Token{Type: parser.AddressingMode, Value: arch.Register.Symbol},
		direct:      parser.Token{Type: parser.AddressingMode, Value: arch.Direct.Symbol},
		separator:   parser.Token{Type: parser.Separator, Value: ","},
	}
}

// Operand is a fully-resolved addressing-mode/value pair.
type Operand struct {
	Mode  parser.Token
	Value parser.Token
}

// Run validates every instruction in pools' global scope and each procedure
// scope, inserting default operands for any that were omitted.
func Run(p *pools.Pools) error {
	sink := diag.NewSink("Semantic Analyser Errors:")
	def := defaultOperands()

	analyseScope(p.Global, p.Global.Symbols, p.Global.Symbols, def, sink)
	for _, name := range p.ProcedureOrder {
		scope := p.Procedures[name]
		analyseScope(scope, scope.Symbols, p.Global.Symbols, def, sink)
	}

	return sink.AsFatal()
}

func analyseScope(scope *pools.Scope, localSymbols, globalSymbols map[string]*pools.Symbol, def defaults, sink *diag.Sink) {
	index := 0
	for index < len(scope.Tokens) {
		if scope.Tokens[index].Type == parser.Instruction {
			analyseInstruction(scope, index, localSymbols, globalSymbols, def, sink)
		}
		index++
	}
}

func countOperands(tokens []parser.Token, index int) int {
	count := 0
	for tokens[index].Type != parser.End {
		switch tokens[index].Type {
		case parser.Value, parser.Label, parser.Register:
			count++
		}
		index++
	}
	return count
}

func analyseInstruction(scope *pools.Scope, index int, localSymbols, globalSymbols map[string]*pools.Symbol, def defaults, sink *diag.Sink) {
	token := scope.Tokens[index]
	inst, _ := arch.LookupInstruction(token.Value)

	operandCount := countOperands(scope.Tokens, index)

	if operandCount > inst.Operands {
		sink.Record(token.Row, token.Column, diag.InvalidOperands, "Too many operands supplied for the given instruction")
		return
	}

	if inst.Operands > 1 && scope.Tokens[index+1].Type == parser.End {
		sink.Record(token.Row, token.Column, diag.InvalidOperands, "The source operand for a double operand instruction must be specified")
		return
	}

	if inst.Operands == 0 {
		return
	}

	source := getOperand(&scope.Tokens, index+1, def)
	analyseOperand(source, localSymbols, globalSymbols, sink)

	if inst.Mnemonic == "INP" && source.Mode.Value != arch.Register.Symbol {
		sink.Record(token.Row, token.Column, diag.InvalidOperands, "INP instruction operand must be a register")
	}

	if arch.NonImmediateModeInstructions[inst.Mnemonic] && source.Mode.Value == arch.Immediate.Symbol {
		sink.Record(token.Row, token.Column, diag.InvalidOperands, "Source operand of target instruction cannot be addressed in immediate mode")
	}

	if inst.Operands > 1 {
		destination := getOperand(&scope.Tokens, index+3, def)
		analyseOperand(destination, localSymbols, globalSymbols, sink)

		if destination.Mode.Value != arch.Register.Symbol {
			sink.Record(token.Row, token.Column, diag.InvalidOperands, "Destination operand must be a register")
		}
	}
}

// getOperand resolves the operand beginning at index, inserting default
// tokens into *tokens when the operand (or part of it) was omitted.
func getOperand(tokens *[]parser.Token, index int, def defaults) Operand {
	token := (*tokens)[index]

	switch token.Type {
	case parser.Separator:
		return getOperand(tokens, index+1, def)

	case parser.End:
		insertToken(tokens, index, def.accumulator)
		insertToken(tokens, index, def.register)

		if index > 0 {
			prev := (*tokens)[index-1]
			if prev.Type == parser.Register || prev.Type == parser.Label || prev.Type == parser.Value {
				insertToken(tokens, index, def.separator)
				index++
			}
		}

	case parser.Register:
		insertToken(tokens, index, def.register)

	case parser.Label, parser.Value:
		insertToken(tokens, index, def.direct)
	}

	return Operand{Mode: (*tokens)[index], Value: (*tokens)[index+1]}
}

func insertToken(tokens *[]parser.Token, index int, tok parser.Token) {
	s := *tokens
	s = append(s, parser.Token{})
	copy(s[index+1:], s[index:])
	s[index] = tok
	*tokens = s
}

func analyseOperand(op Operand, localSymbols, globalSymbols map[string]*pools.Symbol, sink *diag.Sink) {
	analyseAddressingMode(op, sink)
	analyseOperandValue(op, localSymbols, globalSymbols, sink)
}

func analyseAddressingMode(op Operand, sink *diag.Sink) {
	if op.Mode.Value == arch.Register.Symbol && op.Value.Type != parser.Register {
		sink.Record(op.Value.Row, op.Value.Column, diag.InvalidAddressingMode, "Non-register paired with register addressing mode")
	} else if op.Mode.Value != arch.Register.Symbol && op.Value.Type == parser.Register {
		sink.Record(op.Value.Row, op.Value.Column, diag.InvalidAddressingMode, "register paired with non-register addressing mode")
	}
}

func analyseOperandValue(op Operand, localSymbols, globalSymbols map[string]*pools.Symbol, sink *diag.Sink) {
	if op.Value.Type == parser.Label {
		_, inLocal := localSymbols[op.Value.Value]
		_, inGlobal := globalSymbols[op.Value.Value]
		if !inLocal && !inGlobal {
			sink.Record(op.Value.Row, op.Value.Column, diag.InvalidLabel, "Attempting to use an undeclared label")
		}
		return
	}

	if op.Value.Type == parser.Register && op.Value.Value == "0" {
		sink.Record(op.Value.Row, op.Value.Column, diag.InvalidRegister, "Cannot access GPR 0")
	}
}
