package disasm

import (
	"testing"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		opcode uint16
		want   string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x1228, "JP $228"},
		{0x2345, "CALL $345"},
		{0x3A0F, "SE VA, $0F"},
		{0x4A0F, "SNE VA, $0F"},
		{0x5120, "SE V1, V2"},
		{0x6005, "LD V0, $05"},
		{0x7003, "ADD V0, $03"},
		{0x8120, "LD V1, V2"},
		{0x8121, "OR V1, V2"},
		{0x8122, "AND V1, V2"},
		{0x8123, "XOR V1, V2"},
		{0x8124, "ADD V1, V2"},
		{0x8125, "SUB V1, V2"},
		{0x8126, "SHR V1"},
		{0x8127, "SUBN V1, V2"},
		{0x812E, "SHL V1"},
		{0x9120, "SNE V1, V2"},
		{0xA2F0, "LD I, $2F0"},
		{0xB208, "JP V0, $208"},
		{0xC07F, "RND V0, $7F"},
		{0xD125, "DRW V1, V2, $5"},
		{0xE09E, "SKP V0"},
		{0xE0A1, "SKNP V0"},
		{0xF107, "LD V1, DT"},
		{0xF30A, "LD V3, K"},
		{0xF115, "LD DT, V1"},
		{0xF118, "LD ST, V1"},
		{0xF11E, "ADD I, V1"},
		{0xF129, "LD F, V1"},
		{0xF133, "LD B, V1"},
		{0xF155, "LD [I], V1"},
		{0xF165, "LD V1, [I]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.opcode))
	}
}

func TestFormatUnknownEmitsPlaceholder(t *testing.T) {
	for _, opcode := range []uint16{0x0000, 0x0123, 0x5121, 0x8128, 0x9005, 0xE000, 0xF0FF} {
		assert.Contains(t, Format(opcode), ".dw")
	}
}

func TestProgramAddressesAndOddTail(t *testing.T) {
	lines := Program([]byte{0x60, 0x05, 0x70, 0x03, 0xAB}, chip8.ProgramStart)
	assert.Len(t, lines, 3)
	assert.Equal(t, uint16(0x200), lines[0].Addr)
	assert.Equal(t, "LD V0, $05", lines[0].Text)
	assert.Equal(t, uint16(0x202), lines[1].Addr)
	assert.Equal(t, "ADD V0, $03", lines[1].Text)
	assert.Equal(t, ".db $AB", lines[2].Text)
}

// Loading a program and formatting the VM's memory range must resynthesize
// the identical opcode stream the formatter emits for the raw bytes.
func TestListingRoundTripThroughVM(t *testing.T) {
	rom := []byte{
		0x00, 0xE0, // CLS
		0xA2, 0x0A, // LD I, $20A
		0x60, 0x0C, // LD V0, $0C
		0xD0, 0x15, // DRW V0, V0, $5
		0x12, 0x08, // JP $208
		0xF0, 0x90, 0xF0, 0x90, 0x90, // sprite data, decoded as placeholder lines
	}
	vm := chip8.New()
	assert.NoError(t, vm.Load(rom))

	fromVM := Listing(vm.ReadRange(chip8.ProgramStart, vm.ProgramSize()), chip8.ProgramStart)
	fromRaw := Listing(rom, chip8.ProgramStart)
	assert.Equal(t, fromRaw, fromVM)
	assert.NotEmpty(t, fromVM)
}
