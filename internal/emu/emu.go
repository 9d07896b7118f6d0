// Package emu glues the CHIP-8 core to a presenter: it paces instruction
// cycles against the 60 Hz timer clock, renders the monochrome framebuffer
// to RGBA, routes keypad state and resolves key waits.
package emu

import (
	"log"
	"os"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/chip8"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/disasm"
)

// Screen pixel colors, ARGB 0x0033FF66*px | 0xFF111111 split into channels.
var (
	pixelOn  = [3]byte{0x33, 0xFF, 0x77}
	pixelOff = [3]byte{0x11, 0x11, 0x11}
)

// Machine owns one VM instance plus everything a frontend needs per frame.
// All methods must be called from a single goroutine.
type Machine struct {
	cfg     Config
	vm      *chip8.VM
	fb      []byte // RGBA 64x32*4
	rom     []byte
	romPath string
	seed    *int64
}

func New(cfg Config) *Machine {
	cfg.Defaults()
	m := &Machine{
		cfg: cfg,
		vm:  chip8.New(),
		fb:  make([]byte, chip8.ScreenWidth*chip8.ScreenHeight*4),
	}
	m.render()
	return m
}

// VM exposes the underlying core for tests/tools.
func (m *Machine) VM() *chip8.VM { return m.vm }

// SeedRandom pins the core's random source, now and across resets.
func (m *Machine) SeedRandom(seed int64) {
	m.seed = &seed
	m.vm.SeedRandom(seed)
}

// LoadROM replaces the current program with the given byte-code image,
// starting from a fresh VM.
func (m *Machine) LoadROM(rom []byte) error {
	v := chip8.New()
	if err := v.Load(rom); err != nil {
		return err
	}
	if m.seed != nil {
		v.SeedRandom(*m.seed)
	}
	m.vm = v
	m.rom = append([]byte(nil), rom...)
	m.render()
	return nil
}

// LoadROMFromFile loads a raw binary ROM from disk.
func (m *Machine) LoadROMFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := m.LoadROM(data); err != nil {
		return err
	}
	m.romPath = path
	return nil
}

// ROMPath returns the currently loaded ROM file path, if any.
func (m *Machine) ROMPath() string { return m.romPath }

// Reset restarts the loaded program from a fresh VM.
func (m *Machine) Reset() error {
	if len(m.rom) == 0 {
		return chip8.ErrEmptyProgram
	}
	return m.LoadROM(m.rom)
}

// StepFrame advances the machine by one 60 Hz frame: it interprets up to
// CyclesPerFrame instructions (stopping early at an awaiting-key latch),
// ticks both timers once and re-renders the framebuffer if needed.
// Decode and stack errors surface to the caller, which decides whether
// to halt.
func (m *Machine) StepFrame() error {
	for i := 0; i < m.cfg.CyclesPerFrame; i++ {
		if m.vm.AwaitingKey() {
			break
		}
		if m.cfg.Trace {
			word := m.vm.ReadRange(m.vm.PC, 2)
			opcode := uint16(word[0])<<8 | uint16(word[1])
			log.Printf("trace: %03X: %04X  %s", m.vm.PC, opcode, disasm.Format(opcode))
		}
		if _, err := m.vm.Step(); err != nil {
			return err
		}
	}
	m.vm.TickTimers(1)
	if m.vm.ShouldRedraw() {
		m.render()
		m.vm.ClearRedraw()
	}
	return nil
}

// SetKey records keypad state. A key press while the core is waiting on an
// Fx0A instruction also resolves the wait with that key.
func (m *Machine) SetKey(key int, pressed bool) {
	if pressed && m.vm.AwaitingKey() && key >= 0 && key < chip8.NumKeys {
		m.vm.ResolveKey(byte(key))
	}
	m.vm.SetKey(key, pressed)
}

// AwaitingKey reports whether execution is blocked on a key press.
func (m *Machine) AwaitingKey() bool { return m.vm.AwaitingKey() }

// Beeping reports whether the sound timer is running; the frontend keeps
// the beep audible while this is true.
func (m *Machine) Beeping() bool { return m.vm.ST > 0 }

// Framebuffer returns the 64x32 RGBA pixel buffer, updated on redraw.
func (m *Machine) Framebuffer() []byte { return m.fb }

// Disassembly returns an assembly listing of the loaded program.
func (m *Machine) Disassembly() string {
	data := m.vm.ReadRange(chip8.ProgramStart, m.vm.ProgramSize())
	return disasm.Listing(data, chip8.ProgramStart)
}

func (m *Machine) render() {
	for i, px := range m.vm.Screen() {
		c := pixelOff
		if px != 0 {
			c = pixelOn
		}
		m.fb[i*4+0] = c[0]
		m.fb[i*4+1] = c[1]
		m.fb[i*4+2] = c[2]
		m.fb[i*4+3] = 0xFF
	}
}
