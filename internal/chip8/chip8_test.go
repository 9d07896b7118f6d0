package chip8

import (
	"bytes"
	"errors"
	"testing"
)

func newVM(t *testing.T, program ...byte) *VM {
	t.Helper()
	v := New()
	if err := v.Load(program); err != nil {
		t.Fatalf("load program: %v", err)
	}
	return v
}

func step(t *testing.T, v *VM) {
	t.Helper()
	if _, err := v.Step(); err != nil {
		t.Fatalf("step at PC=%03X: %v", v.PC, err)
	}
}

func TestNewInitialState(t *testing.T) {
	v := New()
	if v.PC != ProgramStart {
		t.Fatalf("PC got %03X want %03X", v.PC, ProgramStart)
	}
	if !bytes.Equal(v.ReadRange(0, len(fontSprites)), fontSprites[:]) {
		t.Fatalf("font table not loaded at address 0")
	}
	for i, px := range v.Screen() {
		if px != 0 {
			t.Fatalf("screen not blank at pixel %d", i)
		}
	}
	if v.ShouldRedraw() {
		t.Fatalf("redraw flag set on fresh VM")
	}
}

func TestLoadRejectsEmptyProgram(t *testing.T) {
	if err := New().Load(nil); !errors.Is(err, ErrEmptyProgram) {
		t.Fatalf("got %v want ErrEmptyProgram", err)
	}
}

func TestLoadRejectsOversizedProgram(t *testing.T) {
	v := New()
	if err := v.Load(make([]byte, MemorySize-ProgramStart+1)); !errors.Is(err, ErrProgramTooLarge) {
		t.Fatalf("got %v want ErrProgramTooLarge", err)
	}
	// Exactly filling memory is fine.
	if err := v.Load(make([]byte, MemorySize-ProgramStart)); err != nil {
		t.Fatalf("maximum-size program rejected: %v", err)
	}
	if v.ProgramSize() != MemorySize-ProgramStart {
		t.Fatalf("program size got %d want %d", v.ProgramSize(), MemorySize-ProgramStart)
	}
}

// The two-step scenario from the instruction contract: LD V0,$05 then
// ADD V0,$03 leaves V0=8 and PC=0x204.
func TestLoadAddScenario(t *testing.T) {
	v := newVM(t, 0x60, 0x05, 0x70, 0x03, 0x00, 0x00)
	step(t, v)
	step(t, v)
	if v.V[0] != 8 {
		t.Fatalf("V0 got %d want 8", v.V[0])
	}
	if v.PC != 0x204 {
		t.Fatalf("PC got %03X want 204", v.PC)
	}
}

func TestAwaitingKeyBlocksUntilResolved(t *testing.T) {
	// LD V3,K then LD V1,$42 as the resume point.
	v := newVM(t, 0xF3, 0x0A, 0x61, 0x42)
	step(t, v)
	if !v.AwaitingKey() {
		t.Fatalf("Fx0A did not enter awaiting-key state")
	}
	if v.PC != 0x202 {
		t.Fatalf("PC after Fx0A got %03X want 202", v.PC)
	}

	// Steps are no-ops while waiting.
	for i := 0; i < 3; i++ {
		step(t, v)
	}
	if v.PC != 0x202 || v.V[1] != 0 {
		t.Fatalf("step not a no-op while awaiting key: PC=%03X V1=%02X", v.PC, v.V[1])
	}

	v.ResolveKey(0xA)
	if v.AwaitingKey() {
		t.Fatalf("latch not cleared by ResolveKey")
	}
	if v.V[3] != 10 {
		t.Fatalf("V3 got %d want 10", v.V[3])
	}
	step(t, v) // resumes at the instruction after Fx0A
	if v.V[1] != 0x42 {
		t.Fatalf("execution did not resume after resolve, V1=%02X", v.V[1])
	}
}

func TestResolveKeyWithoutWaitIsIgnored(t *testing.T) {
	v := newVM(t, 0x60, 0x05)
	v.ResolveKey(0x7)
	for i, r := range v.V {
		if r != 0 {
			t.Fatalf("V%X mutated by spurious ResolveKey", i)
		}
	}
}

func TestTickTimersClampsAtZero(t *testing.T) {
	v := newVM(t, 0x60, 0x05)
	v.DT, v.ST = 3, 7
	v.TickTimers(5)
	if v.DT != 0 {
		t.Fatalf("DT got %d want 0", v.DT)
	}
	if v.ST != 2 {
		t.Fatalf("ST got %d want 2", v.ST)
	}
	v.TickTimers(0)
	v.TickTimers(-4)
	if v.ST != 2 {
		t.Fatalf("non-positive tick mutated ST: %d", v.ST)
	}
}

func TestSetKeyBounds(t *testing.T) {
	v := newVM(t, 0x60, 0x05)
	v.SetKey(-1, true)
	v.SetKey(16, true)
	v.SetKey(0xB, true)
	for i, pressed := range v.keys {
		if pressed != (i == 0xB) {
			t.Fatalf("unexpected key state at %X", i)
		}
	}
}

func TestReadRangeWrapsAddresses(t *testing.T) {
	v := newVM(t, 0xAA, 0xBB)
	got := v.ReadRange(MemorySize-1, 2)
	if got[1] != fontSprites[0] {
		t.Fatalf("ReadRange did not wrap into font area: %02X", got[1])
	}
}
