package chip8

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownInstruction = errors.New("unknown instruction")
	ErrStackUnderflow     = errors.New("stack underflow")
	ErrStackOverflow      = errors.New("stack overflow")
	ErrOutOfBounds        = errors.New("out of bounds")

	ErrROMTooLarge = errors.New("rom too large")
)

// HaltError is returned by Step when the machine hits a fault. Reason wraps
// one of the Err sentinels and State is the machine as it was when the
// faulting instruction was fetched. When the fetch itself faults, State.Opcode
// is 0.
type HaltError struct {
	Reason error
	State  State
}

func (e *HaltError) Error() string {
	return fmt.Sprintf("halted @ 0x%03x: %v", e.State.PC, e.Reason)
}

func (e *HaltError) Unwrap() error {
	return e.Reason
}
