// Package trace formats CHIP-8 instruction words as assembly text for execution traces.
package trace

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Lookup identifies the instruction of a word using the first nibble and the
// mask and value of every opcode variant that shares it.
func Lookup(word uint16) (chip8.Opcode, bool) {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value && op.Instruction != nil {
			return op, true
		}
	}
	return chip8.Opcode{}, false
}

// sysName is the mnemonic of the ignored 0nnn machine code call, which has no
// entry in the opcode table.
const sysName = "SYS"

// Format returns the upper case assembly representation of an instruction word.
// Words that do not decode to a known instruction are returned as data.
func Format(word uint16) string {
	op, ok := Lookup(word)
	if !ok {
		if word&0xF000 == 0x0000 {
			return fmt.Sprintf("%s $%03X", sysName, word&0x0FFF)
		}
		return fmt.Sprintf(".word $%04X", word)
	}

	name := op.Instruction.Name
	mnemonic := strings.ToUpper(name)
	if params := formatParams(name, word); params != "" {
		return fmt.Sprintf("%s %s", mnemonic, params)
	}
	return mnemonic
}

// Line returns a trace line containing address, raw word and assembly text.
func Line(address, word uint16) string {
	return fmt.Sprintf("%03X: %04X  %s", address, word, Format(word))
}

// formatParams formats the parameters of an instruction by its lower case table name.
func formatParams(name string, word uint16) string {
	switch name {
	case chip8.ClsName, chip8.RetName:
		return ""
	case chip8.JpName:
		return formatJump(word)
	case chip8.CallName:
		return fmt.Sprintf("$%03X", word&0x0FFF)
	case chip8.SeName, chip8.SneName:
		return formatCompare(word)
	case chip8.LdName:
		return formatLoad(word)
	case chip8.AddName:
		return formatAdd(word)
	case chip8.OrName, chip8.AndName, chip8.XorName, chip8.SubName, chip8.SubnName:
		return fmt.Sprintf("V%X, V%X", registerX(word), registerY(word))
	case chip8.ShrName, chip8.ShlName, chip8.SkpName, chip8.SknpName:
		return fmt.Sprintf("V%X", registerX(word))
	case chip8.RndName:
		return fmt.Sprintf("V%X, $%02X", registerX(word), word&0x00FF)
	case chip8.DrwName:
		return fmt.Sprintf("V%X, V%X, $%X", registerX(word), registerY(word), word&0x000F)
	}
	return ""
}

// formatJump formats JP addr and JP V0, addr.
func formatJump(word uint16) string {
	switch word & 0xF000 {
	case 0x1000:
		return fmt.Sprintf("$%03X", word&0x0FFF)
	case 0xB000:
		return fmt.Sprintf("V0, $%03X", word&0x0FFF)
	}
	return ""
}

// formatCompare formats SE and SNE with a byte or register operand.
func formatCompare(word uint16) string {
	x := registerX(word)
	switch word & 0xF000 {
	case 0x3000, 0x4000:
		return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, registerY(word))
	}
	return ""
}

// loadTargets maps the low byte of Fx load instructions to their operand layout.
var loadTargets = map[uint16]string{
	0x07: "V%X, DT",
	0x0A: "V%X, K",
	0x15: "DT, V%X",
	0x18: "ST, V%X",
	0x29: "F, V%X",
	0x33: "B, V%X",
	0x55: "[I], V%X",
	0x65: "V%X, [I]",
}

// formatLoad formats all LD variants.
func formatLoad(word uint16) string {
	x := registerX(word)
	switch word & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(word))
	case 0xA000:
		return fmt.Sprintf("I, $%03X", word&0x0FFF)
	case 0xF000:
		if layout, ok := loadTargets[word&0x00FF]; ok {
			return fmt.Sprintf(layout, x)
		}
	}
	return ""
}

// formatAdd formats ADD Vx, byte, ADD Vx, Vy and ADD I, Vx.
func formatAdd(word uint16) string {
	x := registerX(word)
	switch word & 0xF000 {
	case 0x7000:
		return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(word))
	case 0xF000:
		return fmt.Sprintf("I, V%X", x)
	}
	return ""
}

// registerX extracts the X register nibble.
func registerX(word uint16) uint16 {
	return (word & 0x0F00) >> 8
}

// registerY extracts the Y register nibble.
func registerY(word uint16) uint16 {
	return (word & 0x00F0) >> 4
}
