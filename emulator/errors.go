package emulator

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOpcode is returned when the fetched word matches none of the CHIP-8 instructions.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrStackOverflow is returned when a CALL is made with 16 return addresses already stored.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when a RET is made with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrOutOfBounds is returned for fetches and I-relative accesses outside of the 4K address space.
	ErrOutOfBounds = errors.New("memory access out of bounds")
	// ErrInvalidDigit is returned by Fx29 when Vx does not hold a hexadecimal digit.
	ErrInvalidDigit = errors.New("invalid font digit")
	// ErrInvalidKey is returned when a key outside of 0x0-0xF is pressed, released or tested.
	ErrInvalidKey = errors.New("invalid key")
	// ErrROMTooLarge is returned when a ROM does not fit between the origin and the end of memory.
	ErrROMTooLarge = errors.New("rom too large")
	// ErrClockTooFast is returned by Run when one instruction would take less than a nanosecond.
	ErrClockTooFast = errors.New("clock rate too high")
)

// A Fault stops the machine. It records where execution was when the error happened.
type Fault struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fault at %#04x (opcode %04X): %v", f.PC, f.Opcode, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
