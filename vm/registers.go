package vm

import (
	"github.com/chadsembler/chadsembler/arch"
	"github.com/chadsembler/chadsembler/bitstring"
)

// registerAddress returns the memory address of a named special register.
func registerAddress(numberGPRs int, reg arch.SpecialRegister) int64 {
	return -int64(numberGPRs + reg.Offset)
}

func (vm *VirtualMachine) pcAddress() int64 {
	return registerAddress(vm.numberGPRs, arch.ProgramCounter)
}

// ProgramCounter returns the current value of the PC register.
func (vm *VirtualMachine) ProgramCounter() int64 {
	return bitstring.ReadSignedInt(vm.Memory.Get(vm.pcAddress()))
}

func (vm *VirtualMachine) setProgramCounter(value int64) {
	vm.Memory.InsertValue(vm.pcAddress(), value)
}

func (vm *VirtualMachine) programCounterWord() string {
	return vm.Memory.Get(vm.pcAddress())
}

func (vm *VirtualMachine) setProgramCounterWord(word string) {
	vm.Memory.InsertBinary(vm.pcAddress(), word)
}

func (vm *VirtualMachine) flagsWord() string {
	addr := registerAddress(vm.numberGPRs, arch.FlagsRegister)
	return vm.Memory.Get(addr)
}

func (vm *VirtualMachine) setFlags(carry int64) {
	vm.Memory.InsertValue(registerAddress(vm.numberGPRs, arch.FlagsRegister), carry)
}

func (vm *VirtualMachine) returnRegisterWord() string {
	addr := registerAddress(vm.numberGPRs, arch.ReturnRegister)
	return vm.Memory.Get(addr)
}

func (vm *VirtualMachine) setReturnRegister(word string) {
	vm.Memory.InsertBinary(registerAddress(vm.numberGPRs, arch.ReturnRegister), word)
}
