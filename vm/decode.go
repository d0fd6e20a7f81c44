package vm

import (
	"github.com/chadsembler/chadsembler/arch"
	"github.com/chadsembler/chadsembler/bitstring"
)

// decoded is one fetched instruction word split into its fixed-width fields.
type decoded struct {
	opcode    int64
	mode      int64
	srcField  int64
	dstField  int64
}

func (vm *VirtualMachine) decode(word string) decoded {
	m := vm.machineOperationBits
	a := vm.addressingModeBits
	o := vm.operandBits

	return decoded{
		opcode:   bitstring.ReadUnsignedInt(word[0:m]),
		mode:     bitstring.ReadUnsignedInt(word[m : m+a]),
		srcField: bitstring.ReadSignedInt(word[m+a : m+a+o]),
		dstField: bitstring.ReadSignedInt(word[m+a+o : m+a+2*o]),
	}
}

// MemoryValue is the resolved effective address of an operand together with
// the raw word stored there and its signed integer interpretation.
type MemoryValue struct {
	Address int64
	Bits    string
	Value   int64
}

// resolveSource dereferences the source field according to its addressing
// mode: register/direct read the cell at a directly, indirect follows one
// more pointer hop, and immediate treats a itself as the value.
func (vm *VirtualMachine) resolveSource(mode int64, a int64) MemoryValue {
	switch mode {
	case int64(arch.Indirect.Opcode):
		pointer := bitstring.ReadSignedInt(vm.Memory.Get(a))
		bits := vm.Memory.Get(pointer)
		return MemoryValue{Address: pointer, Bits: bits, Value: bitstring.ReadSignedInt(bits)}

	case int64(arch.Immediate.Opcode):
		bits := bitstring.SignedInt(a, vm.architectureBits)
		return MemoryValue{Address: a, Bits: bits, Value: a}

	default: // Register or Direct
		bits := vm.Memory.Get(a)
		return MemoryValue{Address: a, Bits: bits, Value: bitstring.ReadSignedInt(bits)}
	}
}

// resolveDestination is always treated as direct/register addressing,
// regardless of the encoded mode field (which is always % for destinations).
func (vm *VirtualMachine) resolveDestination(a int64) MemoryValue {
	bits := vm.Memory.Get(a)
	return MemoryValue{Address: a, Bits: bits, Value: bitstring.ReadSignedInt(bits)}
}
