package trace

import (
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name        string
		word        uint16
		instruction *chip8.Instruction
	}{
		{"clear screen", 0x00E0, chip8.ClsInst},
		{"return", 0x00EE, chip8.RetInst},
		{"jump", 0x1234, chip8.JpInst},
		{"call", 0x2345, chip8.CallInst},
		{"load byte", 0x6A42, chip8.LdInst},
		{"load index", 0xA123, chip8.LdInst},
		{"draw", 0xD125, chip8.DrwInst},
		{"random", 0xC10F, chip8.RndInst},
		{"add index", 0xF31E, chip8.AddInst},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, ok := Lookup(tt.word)
			assert.True(t, ok)
			assert.Equal(t, tt.instruction.Name, op.Instruction.Name)
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	for _, word := range []uint16{0x0123, 0x5AB1, 0x800F, 0xE000, 0xF0FF} {
		_, ok := Lookup(word)
		assert.False(t, ok)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		expected string
	}{
		{"clear screen", 0x00E0, "CLS"},
		{"return", 0x00EE, "RET"},
		{"system call", 0x0123, "SYS $123"},
		{"jump", 0x1234, "JP $234"},
		{"jump offset", 0xB123, "JP V0, $123"},
		{"call", 0x2345, "CALL $345"},
		{"skip equal byte", 0x3A42, "SE VA, $42"},
		{"skip not equal register", 0x9AB0, "SNE VA, VB"},
		{"load byte", 0x6A42, "LD VA, $42"},
		{"load index", 0xA123, "LD I, $123"},
		{"load delay timer", 0xF307, "LD V3, DT"},
		{"load key", 0xF40A, "LD V4, K"},
		{"store registers", 0xF255, "LD [I], V2"},
		{"add byte", 0x7105, "ADD V1, $05"},
		{"add index", 0xF31E, "ADD I, V3"},
		{"xor", 0x8123, "XOR V1, V2"},
		{"shift left", 0x812E, "SHL V1"},
		{"skip key", 0xE59E, "SKP V5"},
		{"draw", 0xD125, "DRW V1, V2, $5"},
		{"random", 0xC10F, "RND V1, $0F"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.word))
		})
	}
}

func TestFormatUnknown(t *testing.T) {
	assert.Equal(t, ".word $FFFF", Format(0xFFFF))
	assert.Equal(t, ".word $5AB1", Format(0x5AB1))
}

func TestLine(t *testing.T) {
	assert.Equal(t, "200: 6A42  LD VA, $42", Line(0x200, 0x6A42))
}
