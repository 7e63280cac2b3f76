// Package pipeline orchestrates the emulation workflow stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/trace"
	"github.com/retroenv/retrogolib/log"
)

// Result contains the outcome of an emulation run.
type Result struct {
	Stats       runner.Stats
	Diagnostics *Diagnostics
	Machine     *chip8.Machine
}

// Pipeline orchestrates the complete emulation workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new emulation pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute runs the complete emulation pipeline for the input file of the options.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, emuOpts options.Emulator, writer io.Writer) (*Result, error) {
	if err := p.detector.Validate(opts); err != nil {
		return nil, fmt.Errorf("detecting system: %w", err)
	}

	rom, err := p.loader.Load(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading ROM: %w", err)
	}

	p.logger.Debug("Loaded ROM",
		log.String("file", opts.Input),
		log.Int("size", len(rom)))

	return p.ExecuteWithROM(ctx, rom, emuOpts, writer)
}

// ExecuteWithROM runs the emulation pipeline with a pre-loaded ROM.
// This is useful for testing and programmatic usage where the ROM is already in memory.
func (p *Pipeline) ExecuteWithROM(ctx context.Context, rom []byte, emuOpts options.Emulator, writer io.Writer) (*Result, error) {
	diagnostics := NewDiagnostics()
	machine := config.CreateMachine(p.logger, emuOpts, diagnostics.Handle)
	if err := machine.Init(rom); err != nil {
		return nil, fmt.Errorf("initializing machine: %w", err)
	}

	if emuOpts.List {
		if _, err := trace.NewListing(rom).WriteTo(writer); err != nil {
			return nil, fmt.Errorf("writing listing: %w", err)
		}
	}

	result := &Result{
		Diagnostics: diagnostics,
		Machine:     machine,
	}

	stats, err := runner.New(p.logger, machine, emuOpts).Run(ctx)
	result.Stats = stats
	if err != nil && !errors.Is(err, context.Canceled) {
		return result, fmt.Errorf("running machine: %w", err)
	}

	p.logger.Info("Emulation finished",
		log.Int("frames", stats.Frames),
		log.Int("instructions", stats.Instructions),
		log.Duration("duration", stats.Duration),
		log.Hex("pc", machine.PC()))
	diagnostics.Log(p.logger)

	if emuOpts.Dump {
		if err := Dump(writer, machine); err != nil {
			return result, fmt.Errorf("dumping machine state: %w", err)
		}
	}

	// a canceled run still reports the partial result
	if err != nil {
		return result, fmt.Errorf("running machine: %w", err)
	}
	return result, nil
}
