package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/retroenv/retrochip8/internal/chip8"
)

// machineDump is the human readable representation of the machine state.
type machineDump struct {
	PC        string
	I         string
	SP        uint8
	Stack     []string
	Registers []string
	Delay     uint8
	Sound     uint8
	Paused    bool
	Cycles    uint64
}

// Dump writes the register state and the screen content of the machine.
func Dump(writer io.Writer, machine *chip8.Machine) error {
	state := machine.State()
	dump := machineDump{
		PC:     fmt.Sprintf("$%03X", state.PC),
		I:      fmt.Sprintf("$%03X", state.I),
		SP:     state.SP,
		Delay:  state.Delay,
		Sound:  state.Sound,
		Paused: state.Paused,
		Cycles: machine.Cycles(),
	}
	for _, address := range state.Stack[:state.SP] {
		dump.Stack = append(dump.Stack, fmt.Sprintf("$%03X", address))
	}
	for i, value := range state.V {
		dump.Registers = append(dump.Registers, fmt.Sprintf("V%X=$%02X", i, value))
	}

	printer := pp.New()
	printer.SetColoringEnabled(false)
	if _, err := printer.Fprintln(writer, dump); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}

	frame := machine.Frame()
	if _, err := io.WriteString(writer, RenderFrame(&frame)); err != nil {
		return fmt.Errorf("writing screen: %w", err)
	}
	return nil
}

// RenderFrame returns the framebuffer as text with one line per pixel row.
func RenderFrame(frame *chip8.Frame) string {
	var sb strings.Builder
	sb.Grow(chip8.ScreenHeight * (chip8.ScreenWidth + 1))
	for _, row := range frame {
		for _, lit := range row {
			if lit {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
