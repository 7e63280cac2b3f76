// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateMachine creates a machine configured by the emulator options. Diagnostics
// are logged and forwarded to the optional handler.
func CreateMachine(logger *log.Logger, opts options.Emulator, diagnostics func(chip8.Diagnostic)) *chip8.Machine {
	machineOptions := []chip8.Option{
		chip8.WithLogger(logger),
		chip8.WithRandom(chip8.NewRandomSource(opts.Seed)),
	}
	if diagnostics != nil {
		machineOptions = append(machineOptions, chip8.WithDiagnostics(diagnostics))
	}
	return chip8.New(machineOptions...)
}
