// Package disasm formats CHIP-8 instruction words as assembly text. It is
// purely diagnostic: it never mutates VM state and tolerates byte pairs that
// match no instruction by emitting a data placeholder instead of failing.
package disasm

import (
	"fmt"
	"strings"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/chip8"
)

// Line is one formatted instruction within a memory range.
type Line struct {
	Addr   uint16
	Opcode uint16
	Text   string
}

// Format returns the mnemonic and operands for one instruction word, or a
// ".dw" placeholder when the word matches no row of the opcode table.
func Format(opcode uint16) string {
	op := chip8.Decode(byte(opcode>>8), byte(opcode))

	switch op.U {
	case 0x0:
		switch opcode {
		case 0x00E0:
			return "CLS"
		case 0x00EE:
			return "RET"
		}
	case 0x1:
		return fmt.Sprintf("JP $%03X", op.NNN)
	case 0x2:
		return fmt.Sprintf("CALL $%03X", op.NNN)
	case 0x3:
		return fmt.Sprintf("SE V%X, $%02X", op.X, op.KK)
	case 0x4:
		return fmt.Sprintf("SNE V%X, $%02X", op.X, op.KK)
	case 0x5:
		if op.N == 0 {
			return fmt.Sprintf("SE V%X, V%X", op.X, op.Y)
		}
	case 0x6:
		return fmt.Sprintf("LD V%X, $%02X", op.X, op.KK)
	case 0x7:
		return fmt.Sprintf("ADD V%X, $%02X", op.X, op.KK)
	case 0x8:
		if name, ok := aluName(op.N); ok {
			if op.N == 0x6 || op.N == 0xE {
				return fmt.Sprintf("%s V%X", name, op.X)
			}
			return fmt.Sprintf("%s V%X, V%X", name, op.X, op.Y)
		}
	case 0x9:
		if op.N == 0 {
			return fmt.Sprintf("SNE V%X, V%X", op.X, op.Y)
		}
	case 0xA:
		return fmt.Sprintf("LD I, $%03X", op.NNN)
	case 0xB:
		return fmt.Sprintf("JP V0, $%03X", op.NNN)
	case 0xC:
		return fmt.Sprintf("RND V%X, $%02X", op.X, op.KK)
	case 0xD:
		return fmt.Sprintf("DRW V%X, V%X, $%X", op.X, op.Y, op.N)
	case 0xE:
		switch op.KK {
		case 0x9E:
			return fmt.Sprintf("SKP V%X", op.X)
		case 0xA1:
			return fmt.Sprintf("SKNP V%X", op.X)
		}
	case 0xF:
		if text, ok := miscText(op); ok {
			return text
		}
	}
	return fmt.Sprintf(".dw $%04X", opcode)
}

func aluName(n byte) (string, bool) {
	switch n {
	case 0x0:
		return "LD", true
	case 0x1:
		return "OR", true
	case 0x2:
		return "AND", true
	case 0x3:
		return "XOR", true
	case 0x4:
		return "ADD", true
	case 0x5:
		return "SUB", true
	case 0x6:
		return "SHR", true
	case 0x7:
		return "SUBN", true
	case 0xE:
		return "SHL", true
	}
	return "", false
}

func miscText(op chip8.Opcode) (string, bool) {
	switch op.KK {
	case 0x07:
		return fmt.Sprintf("LD V%X, DT", op.X), true
	case 0x0A:
		return fmt.Sprintf("LD V%X, K", op.X), true
	case 0x15:
		return fmt.Sprintf("LD DT, V%X", op.X), true
	case 0x18:
		return fmt.Sprintf("LD ST, V%X", op.X), true
	case 0x1E:
		return fmt.Sprintf("ADD I, V%X", op.X), true
	case 0x29:
		return fmt.Sprintf("LD F, V%X", op.X), true
	case 0x33:
		return fmt.Sprintf("LD B, V%X", op.X), true
	case 0x55:
		return fmt.Sprintf("LD [I], V%X", op.X), true
	case 0x65:
		return fmt.Sprintf("LD V%X, [I]", op.X), true
	}
	return "", false
}

// Program decodes a memory range pair by pair, starting at base. A trailing
// odd byte is emitted as a ".db" line so no input byte is dropped.
func Program(data []byte, base uint16) []Line {
	lines := make([]Line, 0, (len(data)+1)/2)
	for i := 0; i+1 < len(data); i += 2 {
		opcode := uint16(data[i])<<8 | uint16(data[i+1])
		lines = append(lines, Line{
			Addr:   base + uint16(i),
			Opcode: opcode,
			Text:   Format(opcode),
		})
	}
	if len(data)%2 == 1 {
		last := data[len(data)-1]
		lines = append(lines, Line{
			Addr:   base + uint16(len(data)-1),
			Opcode: uint16(last),
			Text:   fmt.Sprintf(".db $%02X", last),
		})
	}
	return lines
}

// Listing renders a full listing with addresses and raw words, one
// instruction per line.
func Listing(data []byte, base uint16) string {
	var sb strings.Builder
	for _, line := range Program(data, base) {
		fmt.Fprintf(&sb, "%03X: %04X  %s\n", line.Addr, line.Opcode, line.Text)
	}
	return sb.String()
}
