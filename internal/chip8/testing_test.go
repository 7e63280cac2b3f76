package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// newTestMachine returns a machine with the given program loaded and a random
// source that always returns 0xFF.
func newTestMachine(t *testing.T, program ...byte) *Machine {
	t.Helper()

	m := New(WithRandom(RandomFunc(func() uint8 { return 0xFF })))
	assert.NoError(t, m.Init(program))
	return m
}

// run executes the given number of steps.
func run(m *Machine, steps int) {
	for range steps {
		m.Step()
	}
}

// collectDiagnostics returns a machine option that appends all diagnostics to the given slice.
func collectDiagnostics(diagnostics *[]Diagnostic) Option {
	return WithDiagnostics(func(d Diagnostic) {
		*diagnostics = append(*diagnostics, d)
	})
}

// program encodes instruction words as big-endian ROM bytes.
func program(words ...uint16) []byte {
	rom := make([]byte, 0, 2*len(words))
	for _, w := range words {
		rom = append(rom, byte(w>>8), byte(w))
	}
	return rom
}
