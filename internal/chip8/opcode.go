package chip8

import "fmt"

// Kind identifies the operation of a decoded instruction.
type Kind uint8

// Instruction kinds of the base CHIP-8 instruction set.
const (
	KindUnknown Kind = iota
	KindSys          // 0nnn
	KindCls          // 00E0
	KindRet          // 00EE
	KindJp           // 1nnn
	KindCall         // 2nnn
	KindSeByte       // 3xkk
	KindSneByte      // 4xkk
	KindSeReg        // 5xy0
	KindLdByte       // 6xkk
	KindAddByte      // 7xkk
	KindLdReg        // 8xy0
	KindOr           // 8xy1
	KindAnd          // 8xy2
	KindXor          // 8xy3
	KindAddReg       // 8xy4
	KindSub          // 8xy5
	KindShr          // 8xy6
	KindSubn         // 8xy7
	KindShl          // 8xyE
	KindSneReg       // 9xy0
	KindLdI          // Annn
	KindJpV0         // Bnnn
	KindRnd          // Cxkk
	KindDrw          // Dxyn
	KindSkp          // Ex9E
	KindSknp         // ExA1
	KindLdVxDT       // Fx07
	KindLdKey        // Fx0A
	KindLdDTVx       // Fx15
	KindLdSTVx       // Fx18
	KindAddI         // Fx1E
	KindLdFont       // Fx29
	KindLdBCD        // Fx33
	KindStore        // Fx55
	KindLoad         // Fx65

	kindCount
)

var kindNames = [kindCount]string{
	KindUnknown: "???",
	KindSys:     "SYS",
	KindCls:     "CLS",
	KindRet:     "RET",
	KindJp:      "JP",
	KindCall:    "CALL",
	KindSeByte:  "SE",
	KindSneByte: "SNE",
	KindSeReg:   "SE",
	KindLdByte:  "LD",
	KindAddByte: "ADD",
	KindLdReg:   "LD",
	KindOr:      "OR",
	KindAnd:     "AND",
	KindXor:     "XOR",
	KindAddReg:  "ADD",
	KindSub:     "SUB",
	KindShr:     "SHR",
	KindSubn:    "SUBN",
	KindShl:     "SHL",
	KindSneReg:  "SNE",
	KindLdI:     "LD",
	KindJpV0:    "JP",
	KindRnd:     "RND",
	KindDrw:     "DRW",
	KindSkp:     "SKP",
	KindSknp:    "SKNP",
	KindLdVxDT:  "LD",
	KindLdKey:   "LD",
	KindLdDTVx:  "LD",
	KindLdSTVx:  "LD",
	KindAddI:    "ADD",
	KindLdFont:  "LD",
	KindLdBCD:   "LD",
	KindStore:   "LD",
	KindLoad:    "LD",
}

// String returns the assembler mnemonic of the kind.
func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindNames[k]
}

// Instruction is a decoded instruction word. Only the operand fields that
// are meaningful for the kind are used by the handlers.
type Instruction struct {
	Kind Kind
	Word uint16 // raw instruction word
	X    uint8  // register index in bits 8-11
	Y    uint8  // register index in bits 4-7
	N    uint8  // lowest nibble
	KK   uint8  // lowest byte
	Addr uint16 // lowest 12 bits
}

// secondary decoding tables for the families that share a first nibble.
var (
	aluKinds = map[uint8]Kind{
		0x0: KindLdReg,
		0x1: KindOr,
		0x2: KindAnd,
		0x3: KindXor,
		0x4: KindAddReg,
		0x5: KindSub,
		0x6: KindShr,
		0x7: KindSubn,
		0xE: KindShl,
	}
	keyKinds = map[uint8]Kind{
		0x9E: KindSkp,
		0xA1: KindSknp,
	}
	miscKinds = map[uint8]Kind{
		0x07: KindLdVxDT,
		0x0A: KindLdKey,
		0x15: KindLdDTVx,
		0x18: KindLdSTVx,
		0x1E: KindAddI,
		0x29: KindLdFont,
		0x33: KindLdBCD,
		0x55: KindStore,
		0x65: KindLoad,
	}
)

// Decode splits an instruction word into its operand fields and identifies its kind.
// Words that match no known pattern decode to KindUnknown.
func Decode(word uint16) Instruction {
	ins := Instruction{
		Word: word,
		X:    uint8(word>>8) & 0x0F,
		Y:    uint8(word>>4) & 0x0F,
		N:    uint8(word) & 0x0F,
		KK:   uint8(word),
		Addr: word & addressMask,
	}

	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00E0:
			ins.Kind = KindCls
		case 0x00EE:
			ins.Kind = KindRet
		default:
			ins.Kind = KindSys
		}
	case 0x1:
		ins.Kind = KindJp
	case 0x2:
		ins.Kind = KindCall
	case 0x3:
		ins.Kind = KindSeByte
	case 0x4:
		ins.Kind = KindSneByte
	case 0x5:
		if ins.N == 0 {
			ins.Kind = KindSeReg
		}
	case 0x6:
		ins.Kind = KindLdByte
	case 0x7:
		ins.Kind = KindAddByte
	case 0x8:
		ins.Kind = aluKinds[ins.N]
	case 0x9:
		if ins.N == 0 {
			ins.Kind = KindSneReg
		}
	case 0xA:
		ins.Kind = KindLdI
	case 0xB:
		ins.Kind = KindJpV0
	case 0xC:
		ins.Kind = KindRnd
	case 0xD:
		ins.Kind = KindDrw
	case 0xE:
		ins.Kind = keyKinds[ins.KK]
	case 0xF:
		ins.Kind = miscKinds[ins.KK]
	}
	return ins
}

// String returns the instruction in its canonical hexadecimal notation.
func (i Instruction) String() string {
	return fmt.Sprintf("%04X %s", i.Word, i.Kind)
}
