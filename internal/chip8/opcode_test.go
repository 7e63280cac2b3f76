package chip8

import (
	"strings"
	"testing"

	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		kind Kind
	}{
		{"clear screen", 0x00E0, KindCls},
		{"return", 0x00EE, KindRet},
		{"system call", 0x0123, KindSys},
		{"jump", 0x1234, KindJp},
		{"call", 0x2345, KindCall},
		{"skip equal byte", 0x3A42, KindSeByte},
		{"skip not equal byte", 0x4A42, KindSneByte},
		{"skip equal register", 0x5AB0, KindSeReg},
		{"invalid skip equal register", 0x5AB1, KindUnknown},
		{"load byte", 0x6A42, KindLdByte},
		{"add byte", 0x7A42, KindAddByte},
		{"load register", 0x8AB0, KindLdReg},
		{"or", 0x8AB1, KindOr},
		{"and", 0x8AB2, KindAnd},
		{"xor", 0x8AB3, KindXor},
		{"add register", 0x8AB4, KindAddReg},
		{"subtract", 0x8AB5, KindSub},
		{"shift right", 0x8AB6, KindShr},
		{"subtract reverse", 0x8AB7, KindSubn},
		{"invalid alu", 0x8AB8, KindUnknown},
		{"shift left", 0x8ABE, KindShl},
		{"skip not equal register", 0x9AB0, KindSneReg},
		{"invalid skip not equal register", 0x9AB4, KindUnknown},
		{"load index", 0xA123, KindLdI},
		{"jump offset", 0xB123, KindJpV0},
		{"random", 0xCA0F, KindRnd},
		{"draw", 0xDAB5, KindDrw},
		{"skip key", 0xEA9E, KindSkp},
		{"skip not key", 0xEAA1, KindSknp},
		{"invalid key", 0xEA00, KindUnknown},
		{"load delay", 0xFA07, KindLdVxDT},
		{"wait key", 0xFA0A, KindLdKey},
		{"set delay", 0xFA15, KindLdDTVx},
		{"set sound", 0xFA18, KindLdSTVx},
		{"add index", 0xFA1E, KindAddI},
		{"font", 0xFA29, KindLdFont},
		{"bcd", 0xFA33, KindLdBCD},
		{"store", 0xFA55, KindStore},
		{"load", 0xFA65, KindLoad},
		{"invalid misc", 0xFAFF, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins := Decode(tt.word)
			assert.Equal(t, tt.kind, ins.Kind)
			assert.Equal(t, tt.word, ins.Word)
		})
	}
}

func TestDecodeOperands(t *testing.T) {
	ins := Decode(0xD3A7)
	assert.Equal(t, KindDrw, ins.Kind)
	assert.Equal(t, uint8(0x3), ins.X)
	assert.Equal(t, uint8(0xA), ins.Y)
	assert.Equal(t, uint8(0x7), ins.N)
	assert.Equal(t, uint8(0xA7), ins.KK)
	assert.Equal(t, uint16(0x3A7), ins.Addr)
}

func TestHandlersComplete(t *testing.T) {
	for kind := range kindCount {
		assert.True(t, handlers[kind] != nil)
		assert.NotEmpty(t, kind.String())
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "DRW", KindDrw.String())
	assert.Equal(t, "SUBN", KindSubn.String())
	assert.Equal(t, "Kind(200)", Kind(200).String())
	assert.Equal(t, "00E0 CLS", Decode(0x00E0).String())
}

// tableInstruction returns the instruction of the retrogolib opcode table that
// matches the word.
func tableInstruction(word uint16) (*cpu.Instruction, bool) {
	for _, op := range cpu.Opcodes[word>>12] {
		if op.Info.Mask&word == op.Info.Value {
			return op.Instruction, true
		}
	}
	return nil, false
}

func TestDecodeMatchesOpcodeTable(t *testing.T) {
	for word := range 0x10000 {
		w := uint16(word)
		ins := Decode(w)
		expected, ok := tableInstruction(w)

		if ins.Kind == KindSys {
			// 0nnn machine code calls are not part of the table
			assert.False(t, ok)
			continue
		}
		if !ok {
			assert.Equal(t, KindUnknown, ins.Kind, "word %04X", w)
			continue
		}
		assert.Equal(t, expected.Name, strings.ToLower(ins.Kind.String()), "word %04X", w)
	}
}
