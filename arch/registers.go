package arch

// SpecialRegister describes a named special register: its canonical symbol
// and its 1-based offset from the top of the general-purpose register block.
type SpecialRegister struct {
	Name   string
	Offset int
}

// Special register descriptors, indexed by their offset from the GPR block.
var (
	Accumulator    = SpecialRegister{"ACC", 1}
	ProgramCounter = SpecialRegister{"PC", 2}
	ReturnRegister = SpecialRegister{"RR", 3}
	FlagsRegister  = SpecialRegister{"FR", 4}
)

// NumberSpecialRegisters is the fixed count of named special registers.
const NumberSpecialRegisters = 4

// GPRVariants are the keyword prefixes that, followed by digits, name a
// general-purpose register (e.g. "REG5", "R5", "REGISTER5").
var GPRVariants = map[string]bool{"REG": true, "R": true, "REGISTER": true}

// SpecialRegisters maps every accepted spelling (short and long form) to its
// canonical descriptor.
var SpecialRegisters = map[string]*SpecialRegister{
	"ACC":            &Accumulator,
	"ACCUMULATOR":    &Accumulator,
	"PC":             &ProgramCounter,
	"PROGRAMCOUNTER": &ProgramCounter,
	"RR":             &ReturnRegister,
	"RETURNREGISTER": &ReturnRegister,
	"FR":             &FlagsRegister,
	"FLAGSREGISTER":  &FlagsRegister,
}
