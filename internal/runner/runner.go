// Package runner implements the host clock loop that drives a machine frame by frame.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/trace"
	"github.com/retroenv/retrogolib/log"
)

// Machine is the part of the machine interface that the runner drives.
type Machine interface {
	chip8.Clock

	SetKeys(keys [chip8.KeyCount]bool)
	PC() uint16
	ReadMemory(address uint16) uint8
	Paused() bool
}

// Stats contains the result of a run.
type Stats struct {
	Frames       int
	Instructions int
	Duration     time.Duration
}

// Runner executes a fixed number of frames. Every frame sets the scripted key
// state, executes the configured number of instructions and ticks the timers once.
type Runner struct {
	logger  *log.Logger
	machine Machine
	opts    options.Emulator
}

// New creates a new runner for the given machine.
func New(logger *log.Logger, machine Machine, opts options.Emulator) *Runner {
	return &Runner{
		logger:  logger,
		machine: machine,
		opts:    opts,
	}
}

// Run executes all frames or until the context gets canceled.
func (r *Runner) Run(ctx context.Context) (stats Stats, err error) {
	start := time.Now()
	defer func() {
		stats.Duration = time.Since(start)
	}()

	var ticks <-chan time.Time
	if r.opts.Realtime {
		ticker := time.NewTicker(options.FrameDuration)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for frame := range r.opts.Frames {
		if ctx.Err() != nil {
			return stats, fmt.Errorf("running frame %d: %w", frame, ctx.Err())
		}

		r.machine.SetKeys(r.keys(frame))
		for range r.opts.InstructionsPerFrame {
			if r.opts.Trace {
				r.trace()
			}
			r.machine.Step()
			stats.Instructions++
		}
		r.machine.TickTimers()
		stats.Frames++

		if ticks == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return stats, fmt.Errorf("waiting for frame %d: %w", frame+1, ctx.Err())
		case <-ticks:
		}
	}
	return stats, nil
}

// keys returns the key state for a frame from the key script.
func (r *Runner) keys(frame int) [chip8.KeyCount]bool {
	var keys [chip8.KeyCount]bool
	for _, press := range r.opts.KeyPresses {
		if press.Active(frame) && int(press.Key) < chip8.KeyCount {
			keys[press.Key] = true
		}
	}
	return keys
}

// trace logs the instruction that the next step is going to execute.
func (r *Runner) trace() {
	pc := r.machine.PC()
	if r.machine.Paused() {
		r.logger.Debug("Waiting for key", log.Hex("pc", pc))
		return
	}

	word := uint16(r.machine.ReadMemory(pc))<<8 | uint16(r.machine.ReadMemory(pc+1))
	r.logger.Debug("Step", log.String("instruction", trace.Line(pc, word)))
}
