package options

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeyPressActive(t *testing.T) {
	press := KeyPress{Key: 0xA, First: 20, Last: 30}

	assert.False(t, press.Active(19))
	assert.True(t, press.Active(20))
	assert.True(t, press.Active(30))
	assert.False(t, press.Active(31))
}

func TestNewEmulator(t *testing.T) {
	var opts Program
	opts.Frames = 120
	opts.InstructionsPerFrame = 12
	opts.Seed = 7
	opts.Trace = true

	emu := NewEmulator(opts)
	assert.Equal(t, 120, emu.Frames)
	assert.Equal(t, 12, emu.InstructionsPerFrame)
	assert.Equal(t, uint64(7), emu.Seed)
	assert.True(t, emu.Trace)
	assert.False(t, emu.Dump)
	assert.Len(t, emu.KeyPresses, 0)
}
