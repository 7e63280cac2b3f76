// Package options contains the program options.
package options

import "time"

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"input ROM file"`
}

// Flags contains behavior options.
type Flags struct {
	System   string `flag:"s" usage:"target system: chip8 (default: auto-detect)"`
	Keys     string `flag:"keys" usage:"scripted key presses, e.g. 5@10,A@20-30"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
	Trace    bool   `flag:"trace" usage:"log every executed instruction (requires -debug)"`
	Dump     bool   `flag:"dump" usage:"print the machine state and screen after the run"`
	List     bool   `flag:"list" usage:"print a disassembly listing of the ROM before running it"`
	Realtime bool   `flag:"realtime" usage:"pace frames at the 60 Hz timer rate"`
}

// Clock contains the clock options.
type Clock struct {
	Frames               int    `flag:"frames" usage:"number of 60 Hz frames to run" default:"600"`
	InstructionsPerFrame int    `flag:"ipf" usage:"instructions executed per frame" default:"10"`
	Seed                 uint64 `flag:"seed" usage:"random seed, 0 for a random seed"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	Clock
}

const (
	// DefaultFrames is the default run length, 10 seconds at FrameRate.
	DefaultFrames = 600
	// DefaultInstructionsPerFrame results in 600 instructions per second.
	DefaultInstructionsPerFrame = 10
	// FrameRate is the fixed rate of the timer clock.
	FrameRate = 60
	// FrameDuration is the duration of a single frame at FrameRate.
	FrameDuration = time.Second / FrameRate
)

// Emulator defines options to control an emulation run.
type Emulator struct {
	Frames               int        // number of frames to run
	InstructionsPerFrame int        // instructions per frame
	Seed                 uint64     // random seed, 0 selects a random seed
	KeyPresses           []KeyPress // scripted input

	Realtime bool // pace frames at FrameRate
	Trace    bool // log every executed instruction
	Dump     bool // print state after the run
	List     bool // print a disassembly listing before the run
}

// NewEmulator returns emulator options for the given program options.
func NewEmulator(opts Program) Emulator {
	return Emulator{
		Frames:               opts.Frames,
		InstructionsPerFrame: opts.InstructionsPerFrame,
		Seed:                 opts.Seed,
		Realtime:             opts.Realtime,
		Trace:                opts.Trace,
		Dump:                 opts.Dump,
		List:                 opts.List,
	}
}

// KeyPress holds a key down for an inclusive range of frames.
type KeyPress struct {
	Key   uint8
	First int
	Last  int
}

// Active returns whether the key is held down in the given frame.
func (k KeyPress) Active(frame int) bool {
	return frame >= k.First && frame <= k.Last
}
