package chip8

// Opcode is one 16-bit CHIP-8 instruction with all bit-fields extracted.
// Not every field is meaningful for every instruction; the executor picks
// the ones its group uses.
type Opcode struct {
	Raw uint16 // full big-endian instruction word
	U   byte   // group selector, top nibble
	X   byte   // register index, bits 8-11
	Y   byte   // register index, bits 4-7
	N   byte   // immediate nibble, bits 0-3
	KK  byte   // immediate byte, bits 0-7
	NNN uint16 // address, bits 0-11
}

// Decode extracts the bit-fields from the two instruction bytes at the
// program counter. It is a pure function: no VM state is read or written.
func Decode(hi, lo byte) Opcode {
	raw := uint16(hi)<<8 | uint16(lo)
	return Opcode{
		Raw: raw,
		U:   hi >> 4,
		X:   hi & 0x0F,
		Y:   lo >> 4,
		N:   lo & 0x0F,
		KK:  lo,
		NNN: raw & 0x0FFF,
	}
}
