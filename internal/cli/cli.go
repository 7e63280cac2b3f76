// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
)

var errInvalidKeyScript = errors.New("invalid key script")

// ParseFlags parses command line flags and returns program and emulator options
func ParseFlags() (options.Program, options.Emulator, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, options.Emulator{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args, flags); err != nil {
		return opts, options.Emulator{}, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, options.Emulator{}, err
	}

	if len(args) > 0 {
		opts.Input = args[0]
	}

	emulatorOptions := options.NewEmulator(opts)
	emulatorOptions.KeyPresses, err = ParseKeyScript(opts.Keys)
	if err != nil {
		return opts, options.Emulator{}, err
	}

	return opts, emulatorOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the error message, if any, followed by the flag usage.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: retrochip8 [options] <ROM file to run>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string, flags *flag.FlagSet) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.System = strings.ToLower(opts.System)

	if opts.Frames < 0 {
		return fmt.Errorf("invalid frame count %d", opts.Frames)
	}
	if opts.InstructionsPerFrame <= 0 {
		return fmt.Errorf("invalid instructions per frame %d, must be positive", opts.InstructionsPerFrame)
	}
	if opts.Trace && !opts.Debug {
		// trace lines are logged at debug level
		opts.Debug = true
	}
	return nil
}

// ParseKeyScript parses a comma separated list of key presses. Every entry has
// the form key@frame or key@first-last with a hexadecimal key and decimal frames.
func ParseKeyScript(script string) ([]options.KeyPress, error) {
	script = strings.TrimSpace(script)
	if script == "" {
		return nil, nil
	}

	var presses []options.KeyPress
	for entry := range strings.SplitSeq(script, ",") {
		press, err := parseKeyPress(strings.TrimSpace(entry))
		if err != nil {
			return nil, err
		}
		presses = append(presses, press)
	}
	return presses, nil
}

func parseKeyPress(entry string) (options.KeyPress, error) {
	keyText, frames, ok := strings.Cut(entry, "@")
	if !ok {
		return options.KeyPress{}, fmt.Errorf("%w: entry '%s' is missing a frame", errInvalidKeyScript, entry)
	}

	key, err := strconv.ParseUint(keyText, 16, 4)
	if err != nil {
		return options.KeyPress{}, fmt.Errorf("%w: invalid key '%s'", errInvalidKeyScript, keyText)
	}

	firstText, lastText, isRange := strings.Cut(frames, "-")
	first, err := strconv.Atoi(firstText)
	if err != nil || first < 0 {
		return options.KeyPress{}, fmt.Errorf("%w: invalid frame '%s'", errInvalidKeyScript, firstText)
	}
	last := first
	if isRange {
		last, err = strconv.Atoi(lastText)
		if err != nil || last < first {
			return options.KeyPress{}, fmt.Errorf("%w: invalid frame range '%s'", errInvalidKeyScript, frames)
		}
	}

	return options.KeyPress{
		Key:   uint8(key),
		First: first,
		Last:  last,
	}, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.System, "s", "", "system of the ROM (chip8) - if not auto-detected from file extension")
	flags.StringVar(&opts.Keys, "keys", "", "scripted key presses as hexadecimal key and frame (range), for example 5@10,A@20-30")
	flags.IntVar(&opts.Frames, "frames", options.DefaultFrames, "number of 60 Hz frames to run")
	flags.IntVar(&opts.InstructionsPerFrame, "ipf", options.DefaultInstructionsPerFrame, "instructions executed per frame")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed for the random number generator, 0 uses a random seed")
	flags.BoolVar(&opts.Realtime, "realtime", false, "pace frames at 60 Hz instead of running as fast as possible")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Dump, "dump", false, "print the machine state and screen after the run")
	flags.BoolVar(&opts.List, "list", false, "print a disassembly listing of the ROM before running it")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
