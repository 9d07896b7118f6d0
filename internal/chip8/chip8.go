// Package chip8 implements the CHIP-8 virtual machine core: memory,
// registers, call stack, timers, framebuffer, keypad and the full 35-opcode
// interpreter. The package is presenter-agnostic; a frontend drives Step at
// its own cadence and pulls the framebuffer when the redraw flag is set.
package chip8

import (
	"math/rand"
	"time"
)

const (
	// MemorySize is the total addressable memory in bytes.
	MemorySize = 4096
	// ProgramStart is the load address; everything below it is reserved
	// for the font table.
	ProgramStart = 0x200
	// ScreenWidth and ScreenHeight are the framebuffer dimensions in pixels.
	ScreenWidth  = 64
	ScreenHeight = 32
	// StackDepth is the maximum call nesting.
	StackDepth = 16
	// NumKeys is the number of keypad symbols (0-F).
	NumKeys = 16

	// addrMask keeps every memory access inside the 12-bit address space.
	addrMask = MemorySize - 1
)

// VM is a CHIP-8 virtual machine. All state is owned by one instance and
// mutated only through the executor or the presenter-facing mutators; callers
// splitting presenter and core across goroutines must serialize all calls.
type VM struct {
	// V are the 16 general-purpose registers. V[0xF] doubles as the
	// flags/carry register for arithmetic, shift and draw instructions.
	V [16]byte
	// I is the index register.
	I uint16
	// PC is the program counter.
	PC uint16
	// DT and ST are the delay and sound timers, decremented by the
	// presenter at 60 Hz via TickTimers.
	DT, ST byte

	memory [MemorySize]byte
	stack  [StackDepth]uint16
	sp     int

	screen [ScreenWidth * ScreenHeight]byte
	redraw bool

	keys [NumKeys]bool

	// awaiting-key latch: while waiting is set, Step performs no cycle
	// until the presenter calls ResolveKey with the pressed key value.
	waiting bool
	waitReg byte

	programSize int

	rnd *rand.Rand
}

// New creates a VM with zeroed state, the font table at address 0 and the
// program counter at the load address.
func New() *VM {
	v := &VM{
		PC:  ProgramStart,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	copy(v.memory[:], fontSprites[:])
	return v
}

// SeedRandom reseeds the VM's pseudo-random source so that Cxkk sequences
// are reproducible in tests.
func (v *VM) SeedRandom(seed int64) {
	v.rnd = rand.New(rand.NewSource(seed))
}

// Load copies a program image to the load address. The byte-code itself is
// not validated; malformed instructions surface later as decode errors.
func (v *VM) Load(program []byte) error {
	if len(program) == 0 {
		return ErrEmptyProgram
	}
	if len(program) > MemorySize-ProgramStart {
		return ErrProgramTooLarge
	}
	copy(v.memory[ProgramStart:], program)
	v.programSize = len(program)
	return nil
}

// ProgramSize returns the length in bytes of the loaded program.
func (v *VM) ProgramSize() int { return v.programSize }

// Step runs one fetch/decode/execute cycle and reports whether the
// framebuffer has been marked for redraw. While the VM is awaiting a key
// press the step is a no-op.
func (v *VM) Step() (redraw bool, err error) {
	if v.waiting {
		return v.redraw, nil
	}
	pc := v.PC & addrMask
	op := Decode(v.memory[pc], v.memory[(pc+1)&addrMask])
	if err := v.execute(op); err != nil {
		return v.redraw, err
	}
	return v.redraw, nil
}

// SetKey records the pressed state of one keypad symbol. Indexes outside
// 0..15 are ignored.
func (v *VM) SetKey(key int, pressed bool) {
	if key < 0 || key >= NumKeys {
		return
	}
	v.keys[key] = pressed
}

// AwaitingKey reports whether an Fx0A instruction is blocking execution.
func (v *VM) AwaitingKey() bool { return v.waiting }

// ResolveKey completes a pending Fx0A wait: the key value is written into
// the latched target register and execution resumes on the next Step.
// Calling it while not waiting does nothing.
func (v *VM) ResolveKey(key byte) {
	if !v.waiting {
		return
	}
	v.V[v.waitReg] = key & 0x0F
	v.waiting = false
}

// TickTimers decrements both timers by the given number of 60 Hz frames,
// clamping at zero. Timer cadence is owned by the presenter and is
// independent of instruction throughput.
func (v *VM) TickTimers(frames int) {
	if frames <= 0 {
		return
	}
	if int(v.DT) <= frames {
		v.DT = 0
	} else {
		v.DT -= byte(frames)
	}
	if int(v.ST) <= frames {
		v.ST = 0
	} else {
		v.ST -= byte(frames)
	}
}

// Screen exposes the 64x32 framebuffer, row-major, one byte per pixel with
// values restricted to 0 and 1. Callers must treat it as read-only.
func (v *VM) Screen() []byte { return v.screen[:] }

// ShouldRedraw reports whether a drawing instruction mutated the framebuffer
// since the last ClearRedraw.
func (v *VM) ShouldRedraw() bool { return v.redraw }

// ClearRedraw is called by the presenter after consuming a frame.
func (v *VM) ClearRedraw() { v.redraw = false }

// ReadRange returns a copy of n bytes of memory starting at addr, with
// addresses wrapped into the 12-bit space. Used by diagnostic tooling such
// as the disassembler; it never mutates state.
func (v *VM) ReadRange(addr uint16, n int) []byte {
	if n <= 0 {
		return nil
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = v.memory[(addr+uint16(i))&addrMask]
	}
	return out
}
