// Package vm implements Chadsembly's memory model and the fetch/decode/
// execute loop that runs a generated machine image.
package vm

import (
	"fmt"
	"os"

	"github.com/chadsembler/chadsembler/bitstring"
)

// Memory is a flat pool of fixed-width binary-string words. Addresses are
// signed: non-negative addresses index ordinary program memory, while
// negative addresses fold into the register block immediately below it.
// Register offsets and general-purpose register indices are both expressed
// this way, so a single addressing scheme covers every operand.
type Memory struct {
	numberRegisters  int
	architectureBits int
	pool             []string
}

// NewMemory allocates a pool sized for number_registers registers plus
// 2^(operandBits-1) addressable program words, every word architectureBits
// wide.
func NewMemory(numberRegisters, architectureBits, operandBits int) *Memory {
	length := (1 << uint(operandBits-1)) + numberRegisters
	pool := make([]string, length)
	zero := bitstring.UnsignedInt(0, architectureBits)
	for i := range pool {
		pool[i] = zero
	}

	return &Memory{
		numberRegisters:  numberRegisters,
		architectureBits: architectureBits,
		pool:             pool,
	}
}

// calculateAddress maps a signed abstract address onto a physical pool
// index, terminating the process on an out-of-range access the same way a
// native segmentation fault would.
func (m *Memory) calculateAddress(address int64) int {
	pointer := int64(m.numberRegisters) + address

	if pointer > -1 && pointer < int64(len(m.pool)) {
		return int(pointer)
	}

	fmt.Fprintf(os.Stderr, "Segmentation Fault: Attempted to access memory address %d\n", address)
	os.Exit(0)
	return 0
}

// Get returns the raw binary string word stored at address.
func (m *Memory) Get(address int64) string {
	return m.pool[m.calculateAddress(address)]
}

// InsertBinary stores a pre-encoded binary string word at address.
func (m *Memory) InsertBinary(address int64, value string) {
	m.pool[m.calculateAddress(address)] = value
}

// InsertValue encodes value as a sign-magnitude word and stores it at
// address.
func (m *Memory) InsertValue(address int64, value int64) {
	m.pool[m.calculateAddress(address)] = bitstring.SignedInt(value, m.architectureBits)
}
