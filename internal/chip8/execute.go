package chip8

// flow tells the dispatcher how to update the program counter after a handler ran.
type flow uint8

const (
	flowNext flow = iota // advance to the next instruction
	flowSkip             // skip the next instruction
	flowJump             // the handler set the program counter
	flowHold             // keep the program counter unchanged
)

type handler func(m *Machine, ins Instruction) flow

// handlers maps every instruction kind to its implementation.
var handlers = [kindCount]handler{
	KindUnknown: execUnknown,
	KindSys:     execSys,
	KindCls:     execCls,
	KindRet:     execRet,
	KindJp:      execJp,
	KindCall:    execCall,
	KindSeByte:  execSeByte,
	KindSneByte: execSneByte,
	KindSeReg:   execSeReg,
	KindLdByte:  execLdByte,
	KindAddByte: execAddByte,
	KindLdReg:   execLdReg,
	KindOr:      execOr,
	KindAnd:     execAnd,
	KindXor:     execXor,
	KindAddReg:  execAddReg,
	KindSub:     execSub,
	KindShr:     execShr,
	KindSubn:    execSubn,
	KindShl:     execShl,
	KindSneReg:  execSneReg,
	KindLdI:     execLdI,
	KindJpV0:    execJpV0,
	KindRnd:     execRnd,
	KindDrw:     execDrw,
	KindSkp:     execSkp,
	KindSknp:    execSknp,
	KindLdVxDT:  execLdVxDT,
	KindLdKey:   execLdKey,
	KindLdDTVx:  execLdDTVx,
	KindLdSTVx:  execLdSTVx,
	KindAddI:    execAddI,
	KindLdFont:  execLdFont,
	KindLdBCD:   execLdBCD,
	KindStore:   execStore,
	KindLoad:    execLoad,
}

// skipIf returns flowSkip if the condition holds.
func skipIf(condition bool) flow {
	if condition {
		return flowSkip
	}
	return flowNext
}

// bit converts a condition to a flag register value.
func bit(condition bool) uint8 {
	if condition {
		return 1
	}
	return 0
}

// setWithFlag writes the result before the flag so that the flag wins if x is VF.
func (m *Machine) setWithFlag(x, result, flag uint8) {
	m.state.V[x] = result
	m.state.V[flagRegister] = flag
}

// execUnknown reports the opcode and continues with the next instruction.
func execUnknown(m *Machine, ins Instruction) flow {
	m.report(ErrUnknownOpcode, ins)
	return flowNext
}

// execSys ignores calls of native machine code routines.
func execSys(*Machine, Instruction) flow {
	return flowNext
}

// execCls clears the display.
func execCls(m *Machine, _ Instruction) flow {
	m.display.Clear()
	return flowNext
}

// execRet returns from a subroutine. An empty stack holds the program counter.
func execRet(m *Machine, ins Instruction) flow {
	address, ok := m.state.pop()
	if !ok {
		m.report(ErrStackUnderflow, ins)
		return flowHold
	}
	m.state.PC = address
	return flowJump
}

// execJp jumps to nnn.
func execJp(m *Machine, ins Instruction) flow {
	m.state.PC = ins.Addr
	return flowJump
}

// execCall calls the subroutine at nnn. On a full stack the return address
// is dropped but the jump is still taken.
func execCall(m *Machine, ins Instruction) flow {
	if !m.state.push(m.state.PC + 2) {
		m.report(ErrStackOverflow, ins)
	}
	m.state.PC = ins.Addr
	return flowJump
}

// execSeByte skips the next instruction if Vx equals kk.
func execSeByte(m *Machine, ins Instruction) flow {
	return skipIf(m.state.V[ins.X] == ins.KK)
}

// execSneByte skips the next instruction if Vx does not equal kk.
func execSneByte(m *Machine, ins Instruction) flow {
	return skipIf(m.state.V[ins.X] != ins.KK)
}

// execSeReg skips the next instruction if Vx equals Vy.
func execSeReg(m *Machine, ins Instruction) flow {
	return skipIf(m.state.V[ins.X] == m.state.V[ins.Y])
}

// execSneReg skips the next instruction if Vx does not equal Vy.
func execSneReg(m *Machine, ins Instruction) flow {
	return skipIf(m.state.V[ins.X] != m.state.V[ins.Y])
}

// execLdByte sets Vx to kk.
func execLdByte(m *Machine, ins Instruction) flow {
	m.state.V[ins.X] = ins.KK
	return flowNext
}

// execAddByte adds without touching the carry flag.
func execAddByte(m *Machine, ins Instruction) flow {
	m.state.V[ins.X] += ins.KK
	return flowNext
}

// execLdReg copies Vy into Vx.
func execLdReg(m *Machine, ins Instruction) flow {
	m.state.V[ins.X] = m.state.V[ins.Y]
	return flowNext
}

// execOr sets Vx to Vx OR Vy.
func execOr(m *Machine, ins Instruction) flow {
	m.state.V[ins.X] |= m.state.V[ins.Y]
	return flowNext
}

// execAnd sets Vx to Vx AND Vy.
func execAnd(m *Machine, ins Instruction) flow {
	m.state.V[ins.X] &= m.state.V[ins.Y]
	return flowNext
}

// execXor sets Vx to Vx XOR Vy.
func execXor(m *Machine, ins Instruction) flow {
	m.state.V[ins.X] ^= m.state.V[ins.Y]
	return flowNext
}

// execAddReg adds Vy to Vx, VF is set on carry.
func execAddReg(m *Machine, ins Instruction) flow {
	sum := uint16(m.state.V[ins.X]) + uint16(m.state.V[ins.Y])
	m.setWithFlag(ins.X, uint8(sum), bit(sum > 0xFF))
	return flowNext
}

// execSub sets VF to 1 if no borrow occurs.
func execSub(m *Machine, ins Instruction) flow {
	vx, vy := m.state.V[ins.X], m.state.V[ins.Y]
	m.setWithFlag(ins.X, vx-vy, bit(vx >= vy))
	return flowNext
}

// execSubn sets VF to 1 if no borrow occurs.
func execSubn(m *Machine, ins Instruction) flow {
	vx, vy := m.state.V[ins.X], m.state.V[ins.Y]
	m.setWithFlag(ins.X, vy-vx, bit(vy >= vx))
	return flowNext
}

// execShr shifts Vx right, VF receives the bit shifted out.
func execShr(m *Machine, ins Instruction) flow {
	vx := m.state.V[ins.X]
	m.setWithFlag(ins.X, vx>>1, vx&0x01)
	return flowNext
}

// execShl shifts Vx left, VF receives the bit shifted out.
func execShl(m *Machine, ins Instruction) flow {
	vx := m.state.V[ins.X]
	m.setWithFlag(ins.X, vx<<1, vx>>7)
	return flowNext
}

// execLdI sets I to nnn.
func execLdI(m *Machine, ins Instruction) flow {
	m.state.I = ins.Addr
	return flowNext
}

// execJpV0 jumps to nnn plus V0, wrapped to the address space.
func execJpV0(m *Machine, ins Instruction) flow {
	m.state.PC = (ins.Addr + uint16(m.state.V[0])) & addressMask
	return flowJump
}

// execRnd sets Vx to a random byte masked with kk.
func execRnd(m *Machine, ins Instruction) flow {
	m.state.V[ins.X] = m.random.RandomByte() & ins.KK
	return flowNext
}

// execDrw draws an n byte sprite read from I at (Vx, Vy). VF is set on collision.
func execDrw(m *Machine, ins Instruction) flow {
	sprite := make([]byte, ins.N)
	for row := range sprite {
		sprite[row] = m.state.Memory[(m.state.I+uint16(row))&addressMask]
	}

	x, y := m.state.V[ins.X], m.state.V[ins.Y]
	collision := m.display.Draw(x, y, sprite)
	m.state.V[flagRegister] = bit(collision)
	return flowNext
}

// keyDown returns whether the key with the index stored in Vx is held down.
// Values above 0xF do not address a key and never count as pressed.
func (m *Machine) keyDown(x uint8) bool {
	key := m.state.V[x]
	return key < KeyCount && m.state.Keys[key]
}

// execSkp skips the next instruction if the key in Vx is pressed.
func execSkp(m *Machine, ins Instruction) flow {
	return skipIf(m.keyDown(ins.X))
}

// execSknp skips the next instruction if the key in Vx is not pressed.
// Key values above 0xF never skip.
func execSknp(m *Machine, ins Instruction) flow {
	key := m.state.V[ins.X]
	if key >= KeyCount {
		return flowNext
	}
	return skipIf(!m.state.Keys[key])
}

// execLdVxDT reads the delay timer.
func execLdVxDT(m *Machine, ins Instruction) flow {
	m.state.V[ins.X] = m.state.Delay
	return flowNext
}

// execLdKey waits for a key press. Without a pressed key the machine enters the
// paused state and this instruction is re-executed on every step.
func execLdKey(m *Machine, ins Instruction) flow {
	for key, down := range m.state.Keys {
		if down {
			m.state.V[ins.X] = uint8(key)
			m.state.Paused = false
			m.state.PausedOn = 0
			return flowNext
		}
	}

	m.state.Paused = true
	m.state.PausedOn = ins.Word
	return flowHold
}

// execLdDTVx sets the delay timer.
func execLdDTVx(m *Machine, ins Instruction) flow {
	m.state.Delay = m.state.V[ins.X]
	return flowNext
}

// execLdSTVx sets the sound timer.
func execLdSTVx(m *Machine, ins Instruction) flow {
	m.state.Sound = m.state.V[ins.X]
	return flowNext
}

// execAddI adds Vx to I without affecting VF.
func execAddI(m *Machine, ins Instruction) flow {
	m.state.I = (m.state.I + uint16(m.state.V[ins.X])) & addressMask
	return flowNext
}

// execLdFont points I at the font glyph for the low nibble of Vx.
func execLdFont(m *Machine, ins Instruction) flow {
	m.state.I = GlyphAddress(m.state.V[ins.X])
	return flowNext
}

// execLdBCD stores the decimal digits of Vx at I, I+1 and I+2.
func execLdBCD(m *Machine, ins Instruction) flow {
	vx := m.state.V[ins.X]
	digits := [3]uint8{vx / 100, vx / 10 % 10, vx % 10}
	for i, digit := range digits {
		m.state.Memory[(m.state.I+uint16(i))&addressMask] = digit
	}
	return flowNext
}

// execStore writes V0 through Vx to memory starting at I. I is not changed.
func execStore(m *Machine, ins Instruction) flow {
	for i := uint16(0); i <= uint16(ins.X); i++ {
		m.state.Memory[(m.state.I+i)&addressMask] = m.state.V[i]
	}
	return flowNext
}

// execLoad reads V0 through Vx from memory starting at I. I is not changed.
func execLoad(m *Machine, ins Instruction) flow {
	for i := uint16(0); i <= uint16(ins.X); i++ {
		m.state.V[i] = m.state.Memory[(m.state.I+i)&addressMask]
	}
	return flowNext
}
