package bitstring

// Shifted is the result of a shift that actually took place: the bit carried
// out and the resulting binary string.
type Shifted struct {
	Carry byte
	Bits  string
}

// LogicalShiftLeft discards the leftmost n bits and appends n zeros. Returns
// false if n < 1, signalling the caller should leave the target unchanged.
func LogicalShiftLeft(bits string, n int64) (Shifted, bool) {
	if n < 1 {
		return Shifted{}, false
	}

	length := len(bits)
	if n > int64(length) {
		return Shifted{Carry: '0', Bits: zeros(length)}, true
	}

	shift := int(n)
	return Shifted{Carry: bits[shift-1], Bits: bits[shift:] + zeros(shift)}, true
}

// LogicalShiftRight prepends n zeros and drops the rightmost n bits.
func LogicalShiftRight(bits string, n int64) (Shifted, bool) {
	if n < 1 {
		return Shifted{}, false
	}

	length := len(bits)
	if n > int64(length) {
		return Shifted{Carry: '0', Bits: zeros(length)}, true
	}

	shift := int(n)
	return Shifted{Carry: bits[length-shift], Bits: zeros(shift) + bits[:length-shift]}, true
}

// ArithmeticShiftLeft is identical to a logical left shift.
func ArithmeticShiftLeft(bits string, n int64) (Shifted, bool) {
	return LogicalShiftLeft(bits, n)
}

// ArithmeticShiftRight prepends n copies of the sign bit and drops the
// rightmost n bits, preserving the sign of the value.
func ArithmeticShiftRight(bits string, n int64) (Shifted, bool) {
	if n < 1 {
		return Shifted{}, false
	}

	length := len(bits)
	sign := bits[0]

	if n > int64(length) {
		return Shifted{Carry: sign, Bits: repeatByte(sign, length)}, true
	}

	shift := int(n)
	return Shifted{Carry: bits[length-shift], Bits: repeatByte(sign, shift) + bits[:length-shift]}, true
}

// CircularShiftLeft rotates bits left by n, reduced modulo the string length.
// Returns false if n < 1 or the reduced shift count is 0 (no-op).
func CircularShiftLeft(bits string, n int64) (string, bool) {
	if n < 1 {
		return "", false
	}

	shift := int(n) % len(bits)
	if shift == 0 {
		return "", false
	}

	return bits[shift:] + bits[:shift], true
}

// CircularShiftRight rotates bits right by n, reduced modulo the string length.
func CircularShiftRight(bits string, n int64) (string, bool) {
	if n < 1 {
		return "", false
	}

	shift := int(n) % len(bits)
	if shift == 0 {
		return "", false
	}

	split := len(bits) - shift
	return bits[split:] + bits[:split], true
}

// CircularShiftLeftCarry rotates bits left by n with carryBit (a single
// character, '0' or '1') folded in as the bit that enters from the right.
// The bit ejected on the left becomes the new carry.
func CircularShiftLeftCarry(bits, carryBit string, n int64) (Shifted, bool) {
	rotated, ok := CircularShiftLeft(carryBit+bits, n)
	if !ok {
		return Shifted{}, false
	}

	return Shifted{Carry: rotated[0], Bits: rotated[1:]}, true
}

// CircularShiftRightCarry rotates bits right by n with carryBit folded in as
// the bit that enters from the left. The bit ejected on the right becomes the
// new carry.
func CircularShiftRightCarry(bits, carryBit string, n int64) (Shifted, bool) {
	rotated, ok := CircularShiftRight(bits+carryBit, n)
	if !ok {
		return Shifted{}, false
	}

	last := len(rotated) - 1
	return Shifted{Carry: rotated[last], Bits: rotated[:last]}, true
}

func zeros(n int) string {
	return repeatByte('0', n)
}

func repeatByte(b byte, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = b
	}
	return string(buf)
}
