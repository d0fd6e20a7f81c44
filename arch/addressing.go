package arch

// AddressingMode describes how an operand's value should be dereferenced:
// its canonical single-character symbol and its encoded opcode.
type AddressingMode struct {
	Symbol string
	Opcode int
}

// The four addressing modes.
var (
	Register  = AddressingMode{"%", 0}
	Direct    = AddressingMode{"@", 1}
	Indirect  = AddressingMode{">", 2}
	Immediate = AddressingMode{"#", 3}
)

// NumberModes is the fixed count of addressing modes.
const NumberModes = 4

// AddressingModes maps every accepted spelling (symbol and word form) to its
// canonical descriptor.
var AddressingModes = map[string]*AddressingMode{
	"%":         &Register,
	"REGISTER":  &Register,
	"@":         &Direct,
	"DIRECT":    &Direct,
	">":         &Indirect,
	"INDIRECT":  &Indirect,
	"#":         &Immediate,
	"IMMEDIATE": &Immediate,
}
