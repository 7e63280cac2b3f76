package runner

import "github.com/retroenv/retrochip8/internal/chip8"

// mockMachine records how the runner drives it.
type mockMachine struct {
	steps  int
	ticks  int
	paused bool
	keys   [][chip8.KeyCount]bool
	memory [chip8.MemorySize]uint8

	// stepsPerFrame is the number of steps between key updates
	stepsPerFrame []int
}

func (m *mockMachine) Step() {
	m.steps++
	m.stepsPerFrame[len(m.stepsPerFrame)-1]++
}

func (m *mockMachine) TickTimers() {
	m.ticks++
}

func (m *mockMachine) SetKeys(keys [chip8.KeyCount]bool) {
	m.keys = append(m.keys, keys)
	m.stepsPerFrame = append(m.stepsPerFrame, 0)
}

func (m *mockMachine) PC() uint16 {
	return chip8.ProgramStart
}

func (m *mockMachine) ReadMemory(address uint16) uint8 {
	return m.memory[address&(chip8.MemorySize-1)]
}

func (m *mockMachine) Paused() bool {
	return m.paused
}
