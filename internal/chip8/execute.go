package chip8

// execute applies one decoded instruction to the VM state. Source operands
// are read into locals before any destination is written, so instructions
// where x == y or x == 0xF behave the same as on separate registers; for the
// arithmetic and shift group the flag write to V[0xF] happens last and wins.
func (v *VM) execute(op Opcode) error {
	switch op.U {
	case 0x0:
		switch op.Raw {
		case 0x00E0: // CLS
			v.screen = [ScreenWidth * ScreenHeight]byte{}
			v.redraw = true
			v.PC += 2
		case 0x00EE: // RET
			if v.sp == 0 {
				return &StackError{Addr: v.PC, Underflow: true}
			}
			v.sp--
			v.PC = v.stack[v.sp] + 2
		default:
			return &DecodeError{Addr: v.PC, Opcode: op.Raw}
		}

	case 0x1: // JP nnn
		v.PC = op.NNN

	case 0x2: // CALL nnn
		if v.sp == StackDepth {
			return &StackError{Addr: v.PC}
		}
		v.stack[v.sp] = v.PC
		v.sp++
		v.PC = op.NNN

	case 0x3: // SE Vx, kk
		v.PC += 2
		if v.V[op.X] == op.KK {
			v.PC += 2
		}

	case 0x4: // SNE Vx, kk
		v.PC += 2
		if v.V[op.X] != op.KK {
			v.PC += 2
		}

	case 0x5: // SE Vx, Vy
		if op.N != 0 {
			return &DecodeError{Addr: v.PC, Opcode: op.Raw}
		}
		v.PC += 2
		if v.V[op.X] == v.V[op.Y] {
			v.PC += 2
		}

	case 0x6: // LD Vx, kk
		v.V[op.X] = op.KK
		v.PC += 2

	case 0x7: // ADD Vx, kk (8-bit wraparound, VF untouched)
		v.V[op.X] += op.KK
		v.PC += 2

	case 0x8:
		if err := v.executeALU(op); err != nil {
			return err
		}
		v.PC += 2

	case 0x9: // SNE Vx, Vy
		if op.N != 0 {
			return &DecodeError{Addr: v.PC, Opcode: op.Raw}
		}
		v.PC += 2
		if v.V[op.X] != v.V[op.Y] {
			v.PC += 2
		}

	case 0xA: // LD I, nnn
		v.I = op.NNN
		v.PC += 2

	case 0xB: // JP V0, nnn
		v.PC = uint16(v.V[0]) + op.NNN

	case 0xC: // RND Vx, kk
		v.V[op.X] = byte(v.rnd.Intn(256)) & op.KK
		v.PC += 2

	case 0xD: // DRW Vx, Vy, n
		v.draw(op)
		v.PC += 2

	case 0xE:
		switch op.KK {
		case 0x9E: // SKP Vx
			v.PC += 2
			if v.keys[v.V[op.X]&0x0F] {
				v.PC += 2
			}
		case 0xA1: // SKNP Vx
			v.PC += 2
			if !v.keys[v.V[op.X]&0x0F] {
				v.PC += 2
			}
		default:
			return &DecodeError{Addr: v.PC, Opcode: op.Raw}
		}

	case 0xF:
		return v.executeMisc(op)

	default:
		return &DecodeError{Addr: v.PC, Opcode: op.Raw}
	}
	return nil
}

// executeALU handles the 8xy0..8xyE register-register group. The program
// counter is advanced by the caller.
func (v *VM) executeALU(op Opcode) error {
	vx, vy := v.V[op.X], v.V[op.Y]

	switch op.N {
	case 0x0: // LD Vx, Vy
		v.V[op.X] = vy
	case 0x1: // OR Vx, Vy
		v.V[op.X] = vx | vy
	case 0x2: // AND Vx, Vy
		v.V[op.X] = vx & vy
	case 0x3: // XOR Vx, Vy
		v.V[op.X] = vx ^ vy
	case 0x4: // ADD Vx, Vy; VF = carry
		sum := uint16(vx) + uint16(vy)
		v.V[op.X] = byte(sum)
		v.V[0xF] = boolToByte(sum > 0xFF)
	case 0x5: // SUB Vx, Vy; VF = NOT borrow
		v.V[op.X] = vx - vy
		v.V[0xF] = boolToByte(vx > vy)
	case 0x6: // SHR Vx; VF = shifted-out bit
		v.V[op.X] = vx >> 1
		v.V[0xF] = vx & 1
	case 0x7: // SUBN Vx, Vy; VF = NOT borrow
		v.V[op.X] = vy - vx
		v.V[0xF] = boolToByte(vy > vx)
	case 0xE: // SHL Vx; VF = shifted-out bit
		v.V[op.X] = vx << 1
		v.V[0xF] = vx >> 7
	default:
		return &DecodeError{Addr: v.PC, Opcode: op.Raw}
	}
	return nil
}

// executeMisc handles the Fx-- group.
func (v *VM) executeMisc(op Opcode) error {
	switch op.KK {
	case 0x07: // LD Vx, DT
		v.V[op.X] = v.DT
	case 0x0A: // LD Vx, K: latch the wait, cycles stop until ResolveKey
		v.waiting = true
		v.waitReg = op.X
	case 0x15: // LD DT, Vx
		v.DT = v.V[op.X]
	case 0x18: // LD ST, Vx
		v.ST = v.V[op.X]
	case 0x1E: // ADD I, Vx; VF = sum past 0xFF
		sum := v.I + uint16(v.V[op.X])
		v.I = sum
		v.V[0xF] = boolToByte(sum > 0xFF)
	case 0x29: // LD F, Vx: address of the hexadecimal glyph for Vx
		v.I = glyphSize * uint16(v.V[op.X]&0x0F)
	case 0x33: // LD B, Vx: BCD digits at I..I+2
		n := v.V[op.X]
		v.memory[v.I&addrMask] = n / 100
		v.memory[(v.I+1)&addrMask] = (n / 10) % 10
		v.memory[(v.I+2)&addrMask] = n % 10
	case 0x55: // LD [I], Vx
		for r := byte(0); r <= op.X; r++ {
			v.memory[(v.I+uint16(r))&addrMask] = v.V[r]
		}
		v.I += uint16(op.X) + 1
	case 0x65: // LD Vx, [I]
		for r := byte(0); r <= op.X; r++ {
			v.V[r] = v.memory[(v.I+uint16(r))&addrMask]
		}
		v.I += uint16(op.X) + 1
	default:
		return &DecodeError{Addr: v.PC, Opcode: op.Raw}
	}
	v.PC += 2
	return nil
}

// draw XORs an 8-wide, n-high sprite read from memory[I] onto the screen at
// (Vx, Vy). Both coordinates wrap per pixel, so sprites straddling an edge
// continue on the opposite side. VF is set to 1 iff any pixel flipped 1 -> 0.
func (v *VM) draw(op Opcode) {
	vx, vy := int(v.V[op.X]), int(v.V[op.Y])
	v.V[0xF] = 0
	for row := 0; row < int(op.N); row++ {
		bits := v.memory[(v.I+uint16(row))&addrMask]
		py := (vy + row) % ScreenHeight
		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := (vx + col) % ScreenWidth
			idx := py*ScreenWidth + px
			if v.screen[idx] == 1 {
				v.V[0xF] = 1
			}
			v.screen[idx] ^= 1
		}
	}
	v.redraw = true
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
