package pipeline

import (
	"cmp"
	"errors"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/trace"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Diagnostics aggregates the non-fatal conditions of a run. Unknown opcodes
// are deduplicated as they usually repeat inside loops.
type Diagnostics struct {
	unknownOpcodes set.Set[chip8.Diagnostic]
	overflows      int
	underflows     int
}

// NewDiagnostics returns an empty diagnostics aggregator.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{
		unknownOpcodes: set.New[chip8.Diagnostic](),
	}
}

// Handle records a diagnostic, it is passed to the machine as handler.
func (d *Diagnostics) Handle(diagnostic chip8.Diagnostic) {
	switch {
	case errors.Is(diagnostic, chip8.ErrUnknownOpcode):
		d.unknownOpcodes.Add(diagnostic)
	case errors.Is(diagnostic, chip8.ErrStackOverflow):
		d.overflows++
	case errors.Is(diagnostic, chip8.ErrStackUnderflow):
		d.underflows++
	}
}

// UnknownOpcodes returns the unknown opcode diagnostics sorted by address.
func (d *Diagnostics) UnknownOpcodes() []chip8.Diagnostic {
	return set.SortedFunc(d.unknownOpcodes, func(a, b chip8.Diagnostic) int {
		return cmp.Or(cmp.Compare(a.PC, b.PC), cmp.Compare(a.Opcode, b.Opcode))
	})
}

// UnknownOpcodeAddresses returns the sorted addresses of all unknown opcodes.
func (d *Diagnostics) UnknownOpcodeAddresses() []uint16 {
	addresses := set.New[uint16]()
	for diagnostic := range d.unknownOpcodes {
		addresses.Add(diagnostic.PC)
	}
	return set.Sorted(addresses)
}

// StackOverflows returns the number of calls that were executed with a full stack.
func (d *Diagnostics) StackOverflows() int {
	return d.overflows
}

// StackUnderflows returns the number of returns that were executed with an empty stack.
func (d *Diagnostics) StackUnderflows() int {
	return d.underflows
}

// Log writes a summary of all recorded diagnostics as warnings.
func (d *Diagnostics) Log(logger *log.Logger) {
	for _, diagnostic := range d.UnknownOpcodes() {
		logger.Warn("Unknown opcode executed as no-op",
			log.Hex("address", diagnostic.PC),
			log.String("data", trace.Format(diagnostic.Opcode)))
	}
	if d.overflows > 0 {
		logger.Warn("Call stack overflowed", log.Int("count", d.overflows))
	}
	if d.underflows > 0 {
		logger.Warn("Return with empty call stack", log.Int("count", d.underflows))
	}
}
