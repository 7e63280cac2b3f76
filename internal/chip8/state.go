package chip8

// CHIP-8 memory layout constants.
//
//	0x000-0x1FF: interpreter area, holds the font
//	0x200-0xFFF: program space
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000
	// ProgramStart is the address programs are loaded to and start execution at.
	ProgramStart = 0x200
	// MaxROMSize is the largest ROM that fits into the program space.
	MaxROMSize = MemorySize - ProgramStart

	// RegisterCount is the number of general-purpose registers.
	RegisterCount = 16
	// StackSize is the number of call stack entries.
	StackSize = 16
	// KeyCount is the number of keys on the hexadecimal keypad.
	KeyCount = 16

	// addressMask limits addresses to the 12 significant bits.
	addressMask = MemorySize - 1
	// flagRegister is the index of VF.
	flagRegister = 0xF
)

// State contains all architectural state of a machine except the framebuffer.
// It is plain data, all behavior is implemented by Machine.
type State struct {
	V      [RegisterCount]uint8
	I      uint16
	PC     uint16
	SP     uint8
	Stack  [StackSize]uint16
	Delay  uint8
	Sound  uint8
	Keys   [KeyCount]bool
	Memory [MemorySize]uint8

	// Paused is set while a key wait instruction is pending, PausedOn holds
	// the captured instruction that gets re-executed on every step.
	Paused   bool
	PausedOn uint16
}

// reset sets the state to the power on baseline with the font loaded and
// the given ROM copied to the program start.
func (s *State) reset(rom []byte) {
	*s = State{
		PC: ProgramStart,
	}
	copy(s.Memory[FontStart:], font[:])
	copy(s.Memory[ProgramStart:], rom)
}

// readWord returns the big-endian instruction word at the given address.
func (s *State) readWord(address uint16) uint16 {
	hi := s.Memory[address&addressMask]
	lo := s.Memory[(address+1)&addressMask]
	return uint16(hi)<<8 | uint16(lo)
}

// push stores a return address on the stack. The stack pointer saturates at
// the last entry, a call on a full stack overwrites the top entry and returns false.
func (s *State) push(address uint16) bool {
	s.Stack[s.SP] = address
	if s.SP == StackSize-1 {
		return false
	}
	s.SP++
	return true
}

// pop returns the most recent return address. On an empty stack it returns false
// and leaves the stack pointer at 0.
func (s *State) pop() (uint16, bool) {
	if s.SP == 0 {
		return 0, false
	}
	s.SP--
	return s.Stack[s.SP], true
}
