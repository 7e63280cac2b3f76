package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// Clock is the stepping interface a host uses to drive a machine. Instructions
// and timers are clocked independently of each other.
type Clock interface {
	// Step executes one instruction.
	Step()
	// TickTimers decrements the delay and sound timers, it is expected at 60 Hz.
	TickTimers()
}

// Compile-time check to ensure Machine implements Clock.
var _ Clock = (*Machine)(nil)

// Option configures a machine.
type Option func(*Machine)

// WithRandom sets the random source used by the RND instruction.
func WithRandom(source RandomSource) Option {
	return func(m *Machine) {
		m.random = source
	}
}

// WithLogger sets a logger that receives diagnostics at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithDiagnostics sets a handler that gets called for every non-fatal
// condition that occurs during execution.
func WithDiagnostics(handler func(Diagnostic)) Option {
	return func(m *Machine) {
		m.diagnostics = handler
	}
}

// Machine is a single CHIP-8 virtual machine. It is not safe for concurrent
// use, except for Frame and Pixel which may be called while another goroutine
// is stepping the machine.
type Machine struct {
	state   State
	display Display
	rom     []byte
	cycles  uint64

	random      RandomSource
	logger      *log.Logger
	diagnostics func(Diagnostic)
}

// New returns a new machine with the font loaded and an empty program.
func New(options ...Option) *Machine {
	m := &Machine{}
	for _, option := range options {
		option(m)
	}
	if m.random == nil {
		m.random = NewRandomSource(0)
	}
	m.state.reset(nil)
	return m
}

// Init resets the machine and loads the ROM at the program start address.
// A ROM that does not fit into memory is rejected with ErrOutOfMemory and
// the machine state stays unchanged.
func (m *Machine) Init(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("ROM size %d exceeds available %d bytes: %w", len(rom), MaxROMSize, ErrOutOfMemory)
	}

	m.rom = append(m.rom[:0], rom...)
	m.Reset()
	return nil
}

// Reset restores the machine to the state right after the last successful Init.
func (m *Machine) Reset() {
	m.state.reset(m.rom)
	m.display.Clear()
	m.cycles = 0
}

// Step executes one instruction. While the machine waits for a key press it
// re-executes the captured key wait instruction instead of fetching.
func (m *Machine) Step() {
	pc := m.state.PC
	word := m.state.PausedOn
	if !m.state.Paused {
		word = m.state.readWord(pc)
	}

	ins := Decode(word)
	switch handlers[ins.Kind](m, ins) {
	case flowNext:
		m.state.PC += 2
	case flowSkip:
		m.state.PC += 4
	case flowJump, flowHold:
	}
	m.cycles++
}

// TickTimers decrements the delay and sound timers by one if they are not 0.
func (m *Machine) TickTimers() {
	if m.state.Delay > 0 {
		m.state.Delay--
	}
	if m.state.Sound > 0 {
		m.state.Sound--
	}
}

// SetKeys replaces the keypad state, a true value marks a key as held down.
func (m *Machine) SetKeys(keys [KeyCount]bool) {
	m.state.Keys = keys
}

// report forwards a non-fatal condition to the diagnostics handler and logger.
func (m *Machine) report(err error, ins Instruction) {
	d := Diagnostic{
		Err:    err,
		PC:     m.state.PC,
		Opcode: ins.Word,
	}
	if m.logger != nil {
		m.logger.Debug("Execution diagnostic",
			log.String("condition", err.Error()),
			log.Hex("pc", d.PC),
			log.Hex("opcode", d.Opcode))
	}
	if m.diagnostics != nil {
		m.diagnostics(d)
	}
}

// V returns the value of register x, only the low nibble of x is used.
func (m *Machine) V(x uint8) uint8 { return m.state.V[x&0x0F] }

// Registers returns a copy of all general-purpose registers.
func (m *Machine) Registers() [RegisterCount]uint8 { return m.state.V }

// I returns the address register.
func (m *Machine) I() uint16 { return m.state.I }

// PC returns the program counter.
func (m *Machine) PC() uint16 { return m.state.PC }

// SP returns the stack pointer.
func (m *Machine) SP() uint8 { return m.state.SP }

// Stack returns a copy of the call stack.
func (m *Machine) Stack() [StackSize]uint16 { return m.state.Stack }

// DelayTimer returns the delay timer value.
func (m *Machine) DelayTimer() uint8 { return m.state.Delay }

// SoundTimer returns the sound timer value.
func (m *Machine) SoundTimer() uint8 { return m.state.Sound }

// SoundActive returns whether the host should currently play a tone.
func (m *Machine) SoundActive() bool { return m.state.Sound > 0 }

// ReadMemory returns the memory byte at the 12 bit masked address.
func (m *Machine) ReadMemory(address uint16) uint8 {
	return m.state.Memory[address&addressMask]
}

// Memory returns a copy of the whole memory.
func (m *Machine) Memory() [MemorySize]uint8 { return m.state.Memory }

// Paused returns whether the machine is waiting for a key press.
func (m *Machine) Paused() bool { return m.state.Paused }

// Cycles returns the number of steps executed since the last reset.
func (m *Machine) Cycles() uint64 { return m.cycles }

// State returns a copy of the architectural state.
func (m *Machine) State() State { return m.state }

// Frame returns a copy of the framebuffer.
func (m *Machine) Frame() Frame { return m.display.Snapshot() }

// Pixel returns whether the framebuffer pixel at the given position is on.
func (m *Machine) Pixel(x, y int) bool { return m.display.Pixel(x, y) }
