// Package codegen lays out a resolved program into a flat memory image:
// it assigns final addresses to every branch target, procedure, and
// variable, then encodes each instruction into a bit-packed machine word.
package codegen

import (
	"strconv"

	"github.com/chadsembler/chadsembler/arch"
	"github.com/chadsembler/chadsembler/bitstring"
	"github.com/chadsembler/chadsembler/config"
	"github.com/chadsembler/chadsembler/parser"
	"github.com/chadsembler/chadsembler/pools"
	"github.com/chadsembler/chadsembler/vm"
)

// Result is the output of code generation: the populated memory image and
// the bit widths used to encode it, which the virtual machine needs in
// order to decode the same image back into instructions.
type Result struct {
	Memory               *vm.Memory
	MachineOperationBits int
	AddressingModeBits   int
	OperandBits          int
}

// TotalBits is the full width of one encoded instruction word.
func (r *Result) TotalBits() int {
	return r.MachineOperationBits + r.AddressingModeBits + 2*r.OperandBits
}

// defaultOperand stands in for the absent operand of a zero-operand
// instruction (e.g. HLT); it always resolves to register value 0.
var defaultOperand = operand{
	mode:  parser.Token{Type: parser.AddressingMode, Value: arch.Register.Symbol},
	value: parser.Token{Type: parser.Value, Value: "0"},
}

type operand struct {
	mode  parser.Token
	value parser.Token
}

// Run assigns addresses to every scope and encodes the full program into a
// memory image sized by table's MEMORY and REGISTERS settings.
func Run(p *pools.Pools, table config.Table) (*Result, error) {
	machineOperationBits := bitstring.NumberBits(uint64(arch.NumberInstructions - 1))
	addressingModeBits := bitstring.NumberBits(uint64(arch.NumberModes - 1))

	numberGPRs := table[config.Registers]
	numberRegisters := numberGPRs + arch.NumberSpecialRegisters
	numberMemoryAddresses := table[config.Memory]

	operandBits := bitstring.NumberBits(uint64(maxInt(numberRegisters, numberMemoryAddresses))) + 1
	totalBits := machineOperationBits + addressingModeBits + 2*operandBits

	memory := vm.NewMemory(numberRegisters, totalBits, operandBits)

	updateProcedureAddresses(p)

	index, offset := 0, 0

	index, offset = updateLocalSymbols(index, offset, p.Global, memory, totalBits)
	generateCode(index, p.Global.Tokens, p.Global.Symbols, p.Global.Symbols, memory, numberGPRs, machineOperationBits, addressingModeBits, operandBits)
	index = offset

	for _, name := range p.ProcedureOrder {
		scope := p.Procedures[name]
		index, offset = updateLocalSymbols(index, offset, scope, memory, totalBits)
		generateCode(index, scope.Tokens, scope.Symbols, p.Global.Symbols, memory, numberGPRs, machineOperationBits, addressingModeBits, operandBits)
		index = offset
	}

	return &Result{
		Memory:               memory,
		MachineOperationBits: machineOperationBits,
		AddressingModeBits:   addressingModeBits,
		OperandBits:          operandBits,
	}, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// updateProcedureAddresses assigns each procedure its entry address: the
// running total of instructions and variables in every scope that precedes
// it in ProcedureOrder, starting after the global scope's own words. This
// must walk scopes in the same order generateCode later lays them out in,
// or addresses and encoded words would disagree.
func updateProcedureAddresses(p *pools.Pools) {
	offset := p.Global.NumInstructions + p.Global.NumVariables

	for _, name := range p.ProcedureOrder {
		scope := p.Procedures[name]
		symbol := p.Global.Symbols[name]
		symbol.Value = int64(offset)
		offset += scope.NumInstructions + scope.NumVariables
	}
}

// updateLocalSymbols rewrites a scope's branch symbols from statement-
// relative indices to absolute memory addresses, and places its variables
// into memory immediately after its instructions. It returns the updated
// (index, offset) pair for the next scope.
func updateLocalSymbols(index, offset int, scope *pools.Scope, memory *vm.Memory, totalBits int) (int, int) {
	offset += scope.NumInstructions

	for _, symbol := range scope.Symbols {
		switch symbol.Kind {
		case pools.Branch:
			symbol.Value += int64(index)

		case pools.Variable:
			memory.InsertBinary(int64(offset), bitstring.SignedInt(symbol.Value, totalBits))
			symbol.Value = int64(offset)
			offset++
		}
	}

	return index, offset
}

// generateCode walks a scope's (already variable-stripped) token stream and
// writes one encoded machine word per instruction, starting at index.
func generateCode(index int, tokens []parser.Token, scopeSymbols, globalSymbols map[string]*pools.Symbol, memory *vm.Memory, numberGPRs, machineOperationBits, addressingModeBits, operandBits int) {
	for i, token := range tokens {
		if token.Type != parser.Instruction {
			continue
		}

		inst, _ := arch.LookupInstruction(token.Value)

		source := defaultOperand
		if inst.Operands > 0 {
			source = operand{mode: tokens[i+1], value: tokens[i+2]}
		}

		destination := defaultOperand
		if inst.Operands > 1 {
			destination = operand{mode: tokens[i+4], value: tokens[i+5]}
		}

		word := generateMachineOperation(inst, source, destination, scopeSymbols, globalSymbols, numberGPRs, machineOperationBits, addressingModeBits, operandBits)
		memory.InsertBinary(int64(index), word)
		index++
	}
}

func generateMachineOperation(inst *arch.Instruction, source, destination operand, scopeSymbols, globalSymbols map[string]*pools.Symbol, numberGPRs, machineOperationBits, addressingModeBits, operandBits int) string {
	instructionBits := bitstring.UnsignedInt(int64(inst.Opcode), machineOperationBits)

	mode := arch.AddressingModes[source.mode.Value]
	modeBits := bitstring.UnsignedInt(int64(mode.Opcode), addressingModeBits)

	sourceBits := bitstring.SignedInt(resolveOperand(source, scopeSymbols, globalSymbols, numberGPRs), operandBits)
	destinationBits := bitstring.SignedInt(resolveOperand(destination, scopeSymbols, globalSymbols, numberGPRs), operandBits)

	return instructionBits + modeBits + sourceBits + destinationBits
}

// resolveOperand turns an operand's value token into the signed integer the
// machine word encodes: a resolved label address, a literal value, or a
// register's memory-relative offset (always negative).
func resolveOperand(op operand, scopeSymbols, globalSymbols map[string]*pools.Symbol, numberGPRs int) int64 {
	switch op.value.Type {
	case parser.Label:
		if symbol, ok := scopeSymbols[op.value.Value]; ok {
			return symbol.Value
		}
		return globalSymbols[op.value.Value].Value

	case parser.Value:
		v, _ := strconv.ParseInt(op.value.Value, 10, 64)
		return v

	case parser.Register:
		if reg, ok := arch.SpecialRegisters[op.value.Value]; ok {
			return -int64(numberGPRs + reg.Offset)
		}
		n, _ := strconv.ParseInt(op.value.Value, 10, 64)
		return -bitstring.WrapBound(1, int64(numberGPRs), n)

	default:
		return 0
	}
}
