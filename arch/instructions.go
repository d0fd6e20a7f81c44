// Package arch holds the static, read-only tables that describe Chadsembly's
// instruction set, register file, and addressing modes. These are
// process-wide singletons initialized once at start-up.
package arch

// Instruction describes one machine operation: its mnemonic, its opcode, and
// how many operands it accepts (0, 1 or 2).
type Instruction struct {
	Mnemonic string
	Opcode   int
	Operands int
}

// Opcodes, in encoding order.
const (
	OpHLT = iota
	OpADD
	OpSUB
	OpSTA
	OpNOP
	OpLDA
	OpBRA
	OpBRZ
	OpBRP
	OpINP
	OpOUT
	OpOUTC
	OpOUTB
	OpAND
	OpOR
	OpNOT
	OpXOR
	OpLSL
	OpLSR
	OpASL
	OpASR
	OpCSL
	OpCSR
	OpCSLC
	OpCSRC
	OpCALL
	OpRET
)

// InstructionSet is the complete, ordered set of machine operations. The
// slice index always equals the opcode, so the virtual machine can dispatch
// by indexing directly into it.
var InstructionSet = []Instruction{
	OpHLT:  {"HLT", OpHLT, 0},
	OpADD:  {"ADD", OpADD, 2},
	OpSUB:  {"SUB", OpSUB, 2},
	OpSTA:  {"STA", OpSTA, 2},
	OpNOP:  {"NOP", OpNOP, 0},
	OpLDA:  {"LDA", OpLDA, 2},
	OpBRA:  {"BRA", OpBRA, 2},
	OpBRZ:  {"BRZ", OpBRZ, 2},
	OpBRP:  {"BRP", OpBRP, 2},
	OpINP:  {"INP", OpINP, 1},
	OpOUT:  {"OUT", OpOUT, 1},
	OpOUTC: {"OUTC", OpOUTC, 1},
	OpOUTB: {"OUTB", OpOUTB, 1},
	OpAND:  {"AND", OpAND, 2},
	OpOR:   {"OR", OpOR, 2},
	OpNOT:  {"NOT", OpNOT, 2},
	OpXOR:  {"XOR", OpXOR, 2},
	OpLSL:  {"LSL", OpLSL, 2},
	OpLSR:  {"LSR", OpLSR, 2},
	OpASL:  {"ASL", OpASL, 2},
	OpASR:  {"ASR", OpASR, 2},
	OpCSL:  {"CSL", OpCSL, 2},
	OpCSR:  {"CSR", OpCSR, 2},
	OpCSLC: {"CSLC", OpCSLC, 2},
	OpCSRC: {"CSRC", OpCSRC, 2},
	OpCALL: {"CALL", OpCALL, 1},
	OpRET:  {"RET", OpRET, 0},
}

// NumberInstructions is the size of the machine operation set.
var NumberInstructions = len(InstructionSet)

// instructionByMnemonic indexes InstructionSet by mnemonic for lexer/parser lookups.
var instructionByMnemonic = func() map[string]*Instruction {
	m := make(map[string]*Instruction, len(InstructionSet))
	for i := range InstructionSet {
		m[InstructionSet[i].Mnemonic] = &InstructionSet[i]
	}
	return m
}()

// LookupInstruction returns the instruction descriptor for a mnemonic.
func LookupInstruction(mnemonic string) (*Instruction, bool) {
	inst, ok := instructionByMnemonic[mnemonic]
	return inst, ok
}

// NonImmediateModeInstructions cannot take an immediate-mode source operand:
// it would make no sense to branch to, call, or store into a literal value.
var NonImmediateModeInstructions = map[string]bool{
	"STA": true, "BRA": true, "BRZ": true, "BRP": true, "CALL": true,
}

// DAT is the pseudo-instruction that declares a variable.
const DAT = "DAT"
