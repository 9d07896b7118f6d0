package chip8

import "testing"

func TestDecodeFields(t *testing.T) {
	tests := []struct {
		hi, lo byte
		want   Opcode
	}{
		{0x00, 0xE0, Opcode{Raw: 0x00E0, U: 0x0, X: 0x0, Y: 0xE, N: 0x0, KK: 0xE0, NNN: 0x0E0}},
		{0x12, 0x28, Opcode{Raw: 0x1228, U: 0x1, X: 0x2, Y: 0x2, N: 0x8, KK: 0x28, NNN: 0x228}},
		{0x6A, 0xFF, Opcode{Raw: 0x6AFF, U: 0x6, X: 0xA, Y: 0xF, N: 0xF, KK: 0xFF, NNN: 0xAFF}},
		{0x8D, 0xE4, Opcode{Raw: 0x8DE4, U: 0x8, X: 0xD, Y: 0xE, N: 0x4, KK: 0xE4, NNN: 0xDE4}},
		{0xD1, 0x25, Opcode{Raw: 0xD125, U: 0xD, X: 0x1, Y: 0x2, N: 0x5, KK: 0x25, NNN: 0x125}},
		{0xFF, 0xFF, Opcode{Raw: 0xFFFF, U: 0xF, X: 0xF, Y: 0xF, N: 0xF, KK: 0xFF, NNN: 0xFFF}},
		{0x00, 0x00, Opcode{Raw: 0x0000, U: 0x0, X: 0x0, Y: 0x0, N: 0x0, KK: 0x00, NNN: 0x000}},
	}
	for _, tt := range tests {
		got := Decode(tt.hi, tt.lo)
		if got != tt.want {
			t.Fatalf("Decode(%02X, %02X) got %+v want %+v", tt.hi, tt.lo, got, tt.want)
		}
	}
}

func TestDecodeIsIdempotent(t *testing.T) {
	a := Decode(0xD1, 0x25)
	b := Decode(0xD1, 0x25)
	if a != b {
		t.Fatalf("Decode not stable for the same input: %+v vs %+v", a, b)
	}
}
