package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfMemory is returned by Init when a ROM does not fit between ProgramStart and the end of memory.
	ErrOutOfMemory = errors.New("out of memory")
	// ErrUnknownOpcode reports an instruction that matches no known pattern. It is executed as no-op.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrStackOverflow reports a call with a full stack. The top stack entry gets overwritten.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow reports a return with an empty stack. The return is ignored.
	ErrStackUnderflow = errors.New("stack underflow")
)

// Diagnostic is a non-fatal condition that occurred while executing an instruction.
type Diagnostic struct {
	Err    error  // one of the ErrUnknownOpcode, ErrStackOverflow or ErrStackUnderflow sentinels
	PC     uint16 // address of the instruction
	Opcode uint16 // raw instruction word
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: opcode %04X at %03X", d.Err, d.Opcode, d.PC)
}

// Unwrap returns the sentinel error of the diagnostic.
func (d Diagnostic) Unwrap() error {
	return d.Err
}
