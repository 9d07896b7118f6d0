package chip8

import (
	"errors"
	"fmt"
)

// Load errors, surfaced before any execution begins.
var (
	ErrEmptyProgram    = errors.New("program is empty")
	ErrProgramTooLarge = errors.New("program does not fit into memory")
)

// DecodeError reports an instruction word that matches no row of the
// CHIP-8 opcode table. It is returned by Step and fatal to that step only;
// the caller decides whether to halt.
type DecodeError struct {
	Addr   uint16 // program counter the word was fetched from
	Opcode uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unrecognized instruction %04X at %03X", e.Opcode, e.Addr)
}

// StackError reports call/return nesting misuse: more than 16 nested calls,
// or a return with an empty stack. Silently wrapping the stack pointer would
// corrupt unrelated state, so both cases are fatal.
type StackError struct {
	Addr      uint16 // program counter of the offending instruction
	Underflow bool   // true for return-with-empty-stack, false for overflow
}

func (e *StackError) Error() string {
	if e.Underflow {
		return fmt.Sprintf("return with empty call stack at %03X", e.Addr)
	}
	return fmt.Sprintf("call stack overflow at %03X", e.Addr)
}
