package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestRun(t *testing.T) {
	machine := &mockMachine{}
	opts := options.Emulator{
		Frames:               5,
		InstructionsPerFrame: 7,
	}

	stats, err := New(log.NewTestLogger(t), machine, opts).Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 5, stats.Frames)
	assert.Equal(t, 35, stats.Instructions)
	assert.Equal(t, 35, machine.steps)
	assert.Equal(t, 5, machine.ticks)
	assert.Len(t, machine.stepsPerFrame, 5)
	for _, steps := range machine.stepsPerFrame {
		assert.Equal(t, 7, steps)
	}
}

func TestRunKeyScript(t *testing.T) {
	machine := &mockMachine{}
	opts := options.Emulator{
		Frames:               6,
		InstructionsPerFrame: 1,
		KeyPresses: []options.KeyPress{
			{Key: 0x5, First: 1, Last: 1},
			{Key: 0xA, First: 2, Last: 4},
		},
	}

	_, err := New(log.NewTestLogger(t), machine, opts).Run(context.Background())
	assert.NoError(t, err)
	assert.Len(t, machine.keys, 6)

	assert.Equal(t, [chip8.KeyCount]bool{}, machine.keys[0])
	assert.True(t, machine.keys[1][0x5])
	assert.False(t, machine.keys[1][0xA])
	for frame := 2; frame <= 4; frame++ {
		assert.True(t, machine.keys[frame][0xA])
		assert.False(t, machine.keys[frame][0x5])
	}
	assert.Equal(t, [chip8.KeyCount]bool{}, machine.keys[5])
}

func TestRunCanceled(t *testing.T) {
	machine := &mockMachine{}
	opts := options.Emulator{
		Frames:               100,
		InstructionsPerFrame: 1,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := New(log.NewTestLogger(t), machine, opts).Run(ctx)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, stats.Frames)
	assert.Equal(t, 0, machine.steps)
}

func TestRunRealtime(t *testing.T) {
	machine := &mockMachine{}
	opts := options.Emulator{
		Frames:               3,
		InstructionsPerFrame: 1,
		Realtime:             true,
	}

	stats, err := New(log.NewTestLogger(t), machine, opts).Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 3, stats.Frames)
	assert.True(t, stats.Duration >= 3*options.FrameDuration-time.Millisecond)
}

func TestRunTrace(t *testing.T) {
	machine := &mockMachine{}
	machine.memory[chip8.ProgramStart] = 0x60
	machine.memory[chip8.ProgramStart+1] = 0x05
	opts := options.Emulator{
		Frames:               2,
		InstructionsPerFrame: 2,
		Trace:                true,
	}

	_, err := New(log.NewTestLogger(t), machine, opts).Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 4, machine.steps)

	machine.paused = true
	_, err = New(log.NewTestLogger(t), machine, opts).Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 8, machine.steps)
}

func TestRunWithMachine(t *testing.T) {
	m := chip8.New()
	// wait for a key, then store it in V1 and loop forever
	assert.NoError(t, m.Init([]byte{0xF1, 0x0A, 0x12, 0x02}))

	opts := options.Emulator{
		Frames:               10,
		InstructionsPerFrame: 5,
		KeyPresses:           []options.KeyPress{{Key: 0xB, First: 4, Last: 4}},
	}
	_, err := New(log.NewTestLogger(t), m, opts).Run(context.Background())
	assert.NoError(t, err)

	assert.False(t, m.Paused())
	assert.Equal(t, uint8(0xB), m.V(1))
	assert.Equal(t, uint16(0x202), m.PC())
	assert.Equal(t, uint64(50), m.Cycles())
}
