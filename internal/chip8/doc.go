// Package chip8 implements a CHIP-8 interpreter core.
//
// # Machine Overview
//
// A Machine holds the complete architectural state of one CHIP-8 virtual machine:
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubling as carry, borrow and collision flag
//   - the 16-bit address register I, of which 12 bits are significant
//   - a 4KB memory with the hexadecimal font at 0x000 and the program at ProgramStart
//   - a 16 entry call stack with its stack pointer
//   - the delay and sound timers
//   - a 16 key input latch
//   - a 64x32 monochrome framebuffer
//
// # Clocking
//
// The host drives two independent clocks. Step executes exactly one instruction and is
// called at a host chosen rate, usually several times per video frame. TickTimers decrements
// the timers and is expected to be called at 60 Hz regardless of the instruction rate.
//
// # Usage Example
//
//	m := chip8.New(chip8.WithLogger(logger))
//	if err := m.Init(rom); err != nil {
//		return fmt.Errorf("loading ROM: %w", err)
//	}
//
//	for frame := 0; frame < frames; frame++ {
//		m.SetKeys(keys)
//		for i := 0; i < instructionsPerFrame; i++ {
//			m.Step()
//		}
//		m.TickTimers()
//		render(m.Frame())
//	}
//
// # Error Handling
//
// Only Init returns an error, when a ROM does not fit into memory. Runtime conditions like
// unknown opcodes or stack overflows never stop the machine. They are corrected by a
// saturating or masking policy and reported as Diagnostic values to an optional handler.
package chip8
