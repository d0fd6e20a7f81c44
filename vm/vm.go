package vm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chadsembler/chadsembler/arch"
	"github.com/chadsembler/chadsembler/bitstring"
)

// VirtualMachine fetches, decodes and executes a machine image laid out by
// the code generator. Execution is single-threaded and synchronous: the
// fetch/decode/execute loop paces itself with a blocking sleep, and INP
// blocks on standard input.
type VirtualMachine struct {
	Memory *Memory

	numberGPRs           int
	architectureBits     int
	machineOperationBits int
	addressingModeBits   int
	operandBits          int
	clock                time.Duration

	input  *bufio.Reader
	output io.Writer
}

// Config bundles the encoding widths and register count a VirtualMachine
// needs to decode a memory image it did not itself generate.
type Config struct {
	NumberGPRs           int
	MachineOperationBits int
	AddressingModeBits   int
	OperandBits          int
	Clock                time.Duration
}

// New constructs a VirtualMachine over an already-populated memory image.
// Input defaults to stdin and output to stdout when nil.
func New(memory *Memory, cfg Config, input io.Reader, output io.Writer) *VirtualMachine {
	if input == nil {
		input = os.Stdin
	}
	if output == nil {
		output = os.Stdout
	}

	reader, ok := input.(*bufio.Reader)
	if !ok {
		reader = bufio.NewReader(input)
	}

	return &VirtualMachine{
		Memory:               memory,
		numberGPRs:           cfg.NumberGPRs,
		architectureBits:     cfg.MachineOperationBits + cfg.AddressingModeBits + 2*cfg.OperandBits,
		machineOperationBits: cfg.MachineOperationBits,
		addressingModeBits:   cfg.AddressingModeBits,
		operandBits:          cfg.OperandBits,
		clock:                cfg.Clock,
		input:                reader,
		output:               output,
	}
}

// haltError signals a clean HLT termination up through Run; it is not a
// failure, just a non-local exit from the fetch/decode/execute loop.
type haltError struct{}

func (haltError) Error() string { return "halt" }

// Run drives the fetch/decode/execute loop until HLT or a fatal runtime
// error (a malformed INP read). A Segmentation Fault terminates the process
// directly from Memory and never returns here.
func (vm *VirtualMachine) Run() error {
	vm.setProgramCounter(0)

	for {
		pc := vm.ProgramCounter()
		word := vm.Memory.Get(pc)
		vm.setProgramCounter(pc + 1)

		if vm.clock > 0 {
			time.Sleep(vm.clock)
		}

		d := vm.decode(word)

		src := vm.resolveSource(d.mode, d.srcField)
		dst := vm.resolveDestination(d.dstField)

		if err := vm.execute(d.opcode, src, dst); err != nil {
			if _, ok := err.(haltError); ok {
				return nil
			}
			return err
		}
	}
}

func (vm *VirtualMachine) execute(opcode int64, src, dst MemoryValue) error {
	switch int(opcode) {
	case arch.OpHLT:
		return haltError{}

	case arch.OpNOP:
		return nil

	case arch.OpADD:
		vm.Memory.InsertValue(dst.Address, dst.Value+src.Value)
		return nil

	case arch.OpSUB:
		vm.Memory.InsertValue(dst.Address, dst.Value-src.Value)
		return nil

	case arch.OpSTA:
		vm.Memory.InsertBinary(src.Address, dst.Bits)
		return nil

	case arch.OpLDA:
		vm.Memory.InsertBinary(dst.Address, src.Bits)
		return nil

	case arch.OpBRA:
		vm.setProgramCounter(src.Address)
		return nil

	case arch.OpBRZ:
		if dst.Value == 0 {
			vm.setProgramCounter(src.Address)
		}
		return nil

	case arch.OpBRP:
		if dst.Value >= 0 {
			vm.setProgramCounter(src.Address)
		}
		return nil

	case arch.OpINP:
		return vm.execINP(src)

	case arch.OpOUT:
		fmt.Fprintf(vm.output, "%d\n", src.Value)
		return nil

	case arch.OpOUTC:
		fmt.Fprintf(vm.output, "%c", byte(((src.Value%256)+256)%256))
		return nil

	case arch.OpOUTB:
		fmt.Fprintf(vm.output, "%s\n", src.Bits)
		return nil

	case arch.OpAND:
		vm.Memory.InsertBinary(dst.Address, bitstring.And(src.Bits, dst.Bits))
		return nil

	case arch.OpOR:
		vm.Memory.InsertBinary(dst.Address, bitstring.Or(src.Bits, dst.Bits))
		return nil

	case arch.OpXOR:
		vm.Memory.InsertBinary(dst.Address, bitstring.Xor(src.Bits, dst.Bits))
		return nil

	case arch.OpNOT:
		vm.Memory.InsertBinary(dst.Address, bitstring.Not(src.Bits))
		return nil

	case arch.OpLSL:
		vm.shift(src, dst, bitstring.LogicalShiftLeft, true)
		return nil

	case arch.OpLSR:
		vm.shift(src, dst, bitstring.LogicalShiftRight, true)
		return nil

	case arch.OpASL:
		vm.shift(src, dst, bitstring.ArithmeticShiftLeft, true)
		return nil

	case arch.OpASR:
		vm.shift(src, dst, bitstring.ArithmeticShiftRight, true)
		return nil

	case arch.OpCSL:
		vm.circularShift(src, dst, bitstring.CircularShiftLeft)
		return nil

	case arch.OpCSR:
		vm.circularShift(src, dst, bitstring.CircularShiftRight)
		return nil

	case arch.OpCSLC:
		vm.circularShiftCarry(src, dst, bitstring.CircularShiftLeftCarry)
		return nil

	case arch.OpCSRC:
		vm.circularShiftCarry(src, dst, bitstring.CircularShiftRightCarry)
		return nil

	case arch.OpCALL:
		vm.setReturnRegister(vm.programCounterWord())
		vm.setProgramCounter(src.Address)
		return nil

	case arch.OpRET:
		vm.setProgramCounterWord(vm.returnRegisterWord())
		return nil
	}

	return nil
}

func (vm *VirtualMachine) execINP(src MemoryValue) error {
	fmt.Fprint(vm.output, ">>>")

	line, err := vm.input.ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("failed to read input: %w", err)
	}

	value, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return fmt.Errorf("failed to parse input %q as an integer: %w", strings.TrimSpace(line), err)
	}

	vm.Memory.InsertValue(src.Address, value)
	return nil
}

type shiftFunc func(bits string, n int64) (bitstring.Shifted, bool)

// shift applies a non-circular shift of dst.Bits by src.Value and, when it
// actually shifted (n >= 1), writes the carry bit to FR and the shifted bits
// to dst.Address.
func (vm *VirtualMachine) shift(src, dst MemoryValue, fn shiftFunc, writeFlags bool) {
	result, ok := fn(dst.Bits, src.Value)
	if !ok {
		return
	}

	vm.Memory.InsertBinary(dst.Address, result.Bits)
	if writeFlags {
		vm.setFlags(int64(result.Carry - '0'))
	}
}

type circularShiftFunc func(bits string, n int64) (string, bool)

// circularShift rotates dst.Bits by src.Value; FR is left untouched, per the
// distinction between CSL/CSR and their carry-aware counterparts.
func (vm *VirtualMachine) circularShift(src, dst MemoryValue, fn circularShiftFunc) {
	rotated, ok := fn(dst.Bits, src.Value)
	if !ok {
		return
	}

	vm.Memory.InsertBinary(dst.Address, rotated)
}

type circularShiftCarryFunc func(bits, carryBit string, n int64) (bitstring.Shifted, bool)

// circularShiftCarry rotates dst.Bits by src.Value, folding in FR's last
// character as the incoming carry bit and writing the bit ejected on the
// opposite end back to FR.
func (vm *VirtualMachine) circularShiftCarry(src, dst MemoryValue, fn circularShiftCarryFunc) {
	flags := vm.flagsWord()
	carryIn := string(flags[len(flags)-1])

	result, ok := fn(dst.Bits, carryIn, src.Value)
	if !ok {
		return
	}

	vm.Memory.InsertBinary(dst.Address, result.Bits)
	vm.setFlags(int64(result.Carry - '0'))
}
