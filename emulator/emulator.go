package emulator

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

const REGISTER_COUNT = 16

// Actions tells the host what to do after a step.
type Actions struct {
	// The screen changed since the last step that reported a redraw.
	Redraw bool
	// The sound timer decremented during this step.
	Beep bool
}

// Machine is a CHIP-8 virtual machine. It owns every component and is driven one
// instruction at a time by Step. A Machine is not safe for concurrent use.
type Machine struct {
	// Chip8 has 16 8-bit registers. VF doubles as the carry, borrow and collision flag.
	registers [REGISTER_COUNT]byte

	memory   *Memory
	stack    Stack
	screen   *screen
	keyboard Keyboard

	// The delay timer is used by programs for timing, the sound timer beeps while it is non-zero.
	delayTimer Timer
	soundTimer SoundTimer

	origin uint16
	random func() byte
	quirks Quirks
	logger *log.Logger

	// Set by the handlers that move PC themselves.
	jumped bool
	fault  *Fault
}

// New creates a machine from the given settings.
func New(settings Settings) (*Machine, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	logger := settings.Logger
	if logger == nil {
		logger = newDefaultLogger()
	}

	return &Machine{
		memory:     newMemory(settings.ROMOrigin),
		screen:     newScreen(),
		delayTimer: newTimer(settings.Clock),
		soundTimer: newSoundTimer(settings.Clock),
		origin:     settings.ROMOrigin,
		random:     settings.Random,
		quirks:     settings.Quirks,
		logger:     logger,
	}, nil
}

/*
When we talk about one cycle of this primitive CPU that we're emulating, we're talking about it doing three things:
- Fetch the next instruction in the form of an opcode
- Decode the instruction to determine what operation needs to occur
- Execute the instruction

PC moves to the next instruction afterwards, unless the instruction jumped or the keyboard is
waiting for a key. In the latter case the same Fx0A runs again on the next step.
Both timers are ticked on every step.

Any error is a *Fault. Once a fault happened the machine is halted and Step keeps returning it.
*/
func (m *Machine) Step() (Actions, error) {
	if m.fault != nil {
		return Actions{}, m.fault
	}

	pc := m.memory.PC
	in, err := m.memory.Fetch()
	if err == nil {
		err = m.execute(in)
	}
	if err != nil {
		m.fault = &Fault{PC: pc, Opcode: in.Opcode, Err: err}
		m.logger.Error("Machine halted",
			log.Hex("pc", pc),
			log.Hex("opcode", in.Opcode),
			log.Err(err))
		return Actions{}, m.fault
	}

	if !m.jumped && !m.keyboard.IsWaiting() {
		m.memory.Advance()
	}

	m.delayTimer.Countdown()
	m.soundTimer.Countdown()

	return Actions{
		Redraw: m.screen.mustRedraw(),
		Beep:   m.soundTimer.MustBeep(),
	}, nil
}

// execute dispatches a decoded instruction to its handler on the class nibble, then on
// the opcode, n or kk where the class holds several instructions.
func (m *Machine) execute(in Instruction) error {
	m.jumped = false

	switch in.S {
	case 0x0:
		switch in.Opcode {
		case 0x00E0:
			m.op00E0()
		case 0x00EE:
			return m.op00EE()
		default:
			// 0nnn - SYS addr, only meaningful on the original hardware
		}
	case 0x1:
		m.op1nnn(in)
	case 0x2:
		return m.op2nnn(in)
	case 0x3:
		m.op3xkk(in)
	case 0x4:
		m.op4xkk(in)
	case 0x5:
		if in.N != 0x0 {
			return ErrUnknownOpcode
		}
		m.op5xy0(in)
	case 0x6:
		m.op6xkk(in)
	case 0x7:
		m.op7xkk(in)
	case 0x8:
		switch in.N {
		case 0x0:
			m.op8xy0(in)
		case 0x1:
			m.op8xy1(in)
		case 0x2:
			m.op8xy2(in)
		case 0x3:
			m.op8xy3(in)
		case 0x4:
			m.op8xy4(in)
		case 0x5:
			m.op8xy5(in)
		case 0x6:
			m.op8xy6(in)
		case 0x7:
			m.op8xy7(in)
		case 0xE:
			m.op8xyE(in)
		default:
			return ErrUnknownOpcode
		}
	case 0x9:
		if in.N != 0x0 {
			return ErrUnknownOpcode
		}
		m.op9xy0(in)
	case 0xA:
		m.opAnnn(in)
	case 0xB:
		m.opBnnn(in)
	case 0xC:
		m.opCxkk(in)
	case 0xD:
		return m.opDxyn(in)
	case 0xE:
		switch in.KK {
		case 0x9E:
			return m.opEx9E(in)
		case 0xA1:
			return m.opExA1(in)
		default:
			return ErrUnknownOpcode
		}
	case 0xF:
		switch in.KK {
		case 0x07:
			m.opFx07(in)
		case 0x0A:
			m.opFx0A(in)
		case 0x15:
			m.opFx15(in)
		case 0x18:
			m.opFx18(in)
		case 0x1E:
			m.opFx1E(in)
		case 0x29:
			return m.opFx29(in)
		case 0x33:
			return m.opFx33(in)
		case 0x55:
			return m.opFx55(in)
		case 0x65:
			return m.opFx65(in)
		default:
			return ErrUnknownOpcode
		}
	}

	return nil
}

// Halted reports whether the machine stopped on a fault.
func (m *Machine) Halted() bool {
	return m.fault != nil
}

// PressKey marks a key as held, feeding a pending Fx0A if there is one.
func (m *Machine) PressKey(k Key) error {
	if !k.Valid() {
		return fmt.Errorf("press %s: %w", k, ErrInvalidKey)
	}
	m.keyboard.Press(k)
	return nil
}

// UnpressKey marks a key as released.
func (m *Machine) UnpressKey(k Key) error {
	if !k.Valid() {
		return fmt.Errorf("release %s: %w", k, ErrInvalidKey)
	}
	m.keyboard.Unpress(k)
	return nil
}

// Framebuffer returns a copy of the screen.
func (m *Machine) Framebuffer() Framebuffer {
	return m.screen.pixels
}

// Registers returns a copy of V0 through VF.
func (m *Machine) Registers() [REGISTER_COUNT]byte {
	return m.registers
}

// PC returns the address of the next instruction.
func (m *Machine) PC() uint16 {
	return m.memory.PC
}

// I returns the index register.
func (m *Machine) I() uint16 {
	return m.memory.I
}

// DelayTimer returns the remaining value of the delay timer.
func (m *Machine) DelayTimer() byte {
	return m.delayTimer.Remaining()
}

// SoundTimer returns the remaining value of the sound timer.
func (m *Machine) SoundTimer() byte {
	return m.soundTimer.Remaining()
}

func (m *Machine) setFlag(condition bool) {
	if condition {
		m.registers[0xF] = 1
	} else {
		m.registers[0xF] = 0
	}
}

func (m *Machine) skipIf(condition bool) {
	if condition {
		m.memory.Advance()
	}
}

/*
INSTRUCTIONS IMPLEMENTATION

The following section is a set of all instruction operations allowed to us in Chip8.
See this documentation for more details:
https://github.com/mattmikolay/chip-8/wiki/Mastering-CHIP%E2%80%908
https://github.com/mattmikolay/chip-8/wiki/CHIP%E2%80%908-Instruction-Set

Skips only advance PC once, the regular advance in Step moves past the current instruction.
Handlers that write VF store the result first and the flag last, so VF used as Vx ends up holding the flag.
*/

/*
00E0: CLS
Clear the display
*/
func (m *Machine) op00E0() {
	m.screen.clear()
}

/*
00EE: RET
Return from a subroutine.
The stack holds the address of the CALL, so the regular advance moves past it.
*/
func (m *Machine) op00EE() error {
	address, err := m.stack.Pop()
	if err != nil {
		return err
	}
	m.memory.PC = address
	return nil
}

/*
1nnn: JP addr
Jump to location nnn.
A jump doesn't remember its origin, so no stack interaction required.
*/
func (m *Machine) op1nnn(in Instruction) {
	m.memory.PC = in.NNN
	m.jumped = true
}

/*
2nnn - CALL addr
Call subroutine at nnn.
*/
func (m *Machine) op2nnn(in Instruction) error {
	if err := m.stack.Push(m.memory.PC); err != nil {
		return err
	}
	m.memory.PC = in.NNN
	m.jumped = true
	return nil
}

/*
3xkk - SE Vx, byte
Skip next instruction if Vx = kk.
*/
func (m *Machine) op3xkk(in Instruction) {
	m.skipIf(m.registers[in.X] == in.KK)
}

/*
4xkk - SNE Vx, byte
Skip next instruction if Vx != kk.
*/
func (m *Machine) op4xkk(in Instruction) {
	m.skipIf(m.registers[in.X] != in.KK)
}

/*
5xy0 - SE Vx, Vy
Skip next instruction if Vx = Vy.
*/
func (m *Machine) op5xy0(in Instruction) {
	m.skipIf(m.registers[in.X] == m.registers[in.Y])
}

/*
6xkk - LD Vx, byte
Set Vx = kk.
*/
func (m *Machine) op6xkk(in Instruction) {
	m.registers[in.X] = in.KK
}

/*
7xkk - ADD Vx, byte
Set Vx = Vx + kk. Wraps around without touching VF.
*/
func (m *Machine) op7xkk(in Instruction) {
	m.registers[in.X] += in.KK
}

/*
8xy0 - LD Vx, Vy
Set Vx = Vy.
*/
func (m *Machine) op8xy0(in Instruction) {
	m.registers[in.X] = m.registers[in.Y]
}

/*
8xy1 - OR Vx, Vy
Set Vx = Vx OR Vy.
*/
func (m *Machine) op8xy1(in Instruction) {
	m.registers[in.X] |= m.registers[in.Y]
}

/*
8xy2 - AND Vx, Vy
Set Vx = Vx AND Vy.
*/
func (m *Machine) op8xy2(in Instruction) {
	m.registers[in.X] &= m.registers[in.Y]
}

/*
8xy3 - XOR Vx, Vy
Set Vx = Vx XOR Vy.
*/
func (m *Machine) op8xy3(in Instruction) {
	m.registers[in.X] ^= m.registers[in.Y]
}

/*
8xy4 - ADD Vx, Vy
Set Vx = Vx + Vy, set VF = carry.
If the result is greater than 8 bits (i.e., > 255,) VF is set to 1, otherwise 0. Only the lowest 8 bits of the result are kept.
*/
func (m *Machine) op8xy4(in Instruction) {
	vx, vy := m.registers[in.X], m.registers[in.Y]
	m.registers[in.X] = vx + vy
	m.setFlag(uint16(vx)+uint16(vy) > 0xFF)
}

/*
8xy5 - SUB Vx, Vy
Set Vx = Vx - Vy, set VF = NOT borrow.
If Vx > Vy, then VF is set to 1, otherwise 0.
*/
func (m *Machine) op8xy5(in Instruction) {
	vx, vy := m.registers[in.X], m.registers[in.Y]
	m.registers[in.X] = vx - vy
	m.setFlag(vx > vy)
}

/*
8xy6 - SHR Vx {, Vy}
Set Vx = Vx SHR 1.
The least significant bit is saved in VF. With Quirks.ShiftUsesVY, Vy is the shifted value.
*/
func (m *Machine) op8xy6(in Instruction) {
	v := m.registers[in.X]
	if m.quirks.ShiftUsesVY {
		v = m.registers[in.Y]
	}
	m.registers[in.X] = v >> 1
	m.setFlag(v&0x01 == 1)
}

/*
8xy7 - SUBN Vx, Vy
Set Vx = Vy - Vx, set VF = NOT borrow.
If Vy > Vx, then VF is set to 1, otherwise 0.
*/
func (m *Machine) op8xy7(in Instruction) {
	vx, vy := m.registers[in.X], m.registers[in.Y]
	m.registers[in.X] = vy - vx
	m.setFlag(vy > vx)
}

/*
8xyE - SHL Vx {, Vy}
Set Vx = Vx SHL 1.
The most significant bit is saved in VF. With Quirks.ShiftUsesVY, Vy is the shifted value.
*/
func (m *Machine) op8xyE(in Instruction) {
	v := m.registers[in.X]
	if m.quirks.ShiftUsesVY {
		v = m.registers[in.Y]
	}
	m.registers[in.X] = v << 1
	m.setFlag(v>>7 == 1)
}

/*
9xy0 - SNE Vx, Vy
Skip next instruction if Vx != Vy.
*/
func (m *Machine) op9xy0(in Instruction) {
	m.skipIf(m.registers[in.X] != m.registers[in.Y])
}

/*
Annn - LD I, addr
Set I = nnn.
*/
func (m *Machine) opAnnn(in Instruction) {
	m.memory.I = in.NNN
}

/*
Bnnn - JP V0, addr
Jump to location nnn + V0.
*/
func (m *Machine) opBnnn(in Instruction) {
	m.memory.PC = in.NNN + uint16(m.registers[0x0])
	m.jumped = true
}

/*
Cxkk - RND Vx, byte
Set Vx = random byte AND kk.
*/
func (m *Machine) opCxkk(in Instruction) {
	m.registers[in.X] = m.random() & in.KK
}

/*
Dxyn - DRW Vx, Vy, nibble
Display n-byte sprite starting at memory location I at (Vx, Vy), set VF = collision.
*/
func (m *Machine) opDxyn(in Instruction) error {
	sprite, err := m.memory.ReadBlock(m.memory.I, int(in.N))
	if err != nil {
		return err
	}
	m.setFlag(m.screen.drawSprite(sprite, m.registers[in.X], m.registers[in.Y]))
	return nil
}

/*
Ex9E - SKP Vx
Skip next instruction if key with the value of Vx is pressed.
*/
func (m *Machine) opEx9E(in Instruction) error {
	key := Key(m.registers[in.X])
	if !key.Valid() {
		return fmt.Errorf("V%X holds %s: %w", in.X, key, ErrInvalidKey)
	}
	m.skipIf(m.keyboard.IsPressed(key))
	return nil
}

/*
ExA1 - SKNP Vx
Skip next instruction if key with the value of Vx is not pressed.
*/
func (m *Machine) opExA1(in Instruction) error {
	key := Key(m.registers[in.X])
	if !key.Valid() {
		return fmt.Errorf("V%X holds %s: %w", in.X, key, ErrInvalidKey)
	}
	m.skipIf(!m.keyboard.IsPressed(key))
	return nil
}

/*
Fx07 - LD Vx, DT
Set Vx = delay timer value.
*/
func (m *Machine) opFx07(in Instruction) {
	m.registers[in.X] = m.delayTimer.Remaining()
}

/*
Fx0A - LD Vx, K
Wait for a key press, store the value of the key in Vx.
While no key is available the keyboard stays in the waiting state and Step does not advance PC,
which has the effect of running the same instruction repeatedly.
*/
func (m *Machine) opFx0A(in Instruction) {
	if key, ok := m.keyboard.GetKey(); ok {
		m.registers[in.X] = byte(key)
	}
}

/*
Fx15 - LD DT, Vx
Set delay timer = Vx.
*/
func (m *Machine) opFx15(in Instruction) {
	m.delayTimer.SetTime(m.registers[in.X])
}

/*
Fx18 - LD ST, Vx
Set sound timer = Vx.
*/
func (m *Machine) opFx18(in Instruction) {
	m.soundTimer.SetTime(m.registers[in.X])
}

/*
Fx1E - ADD I, Vx
Set I = I + Vx. VF is not affected.
*/
func (m *Machine) opFx1E(in Instruction) {
	m.memory.I += uint16(m.registers[in.X])
}

/*
Fx29 - LD F, Vx
Set I = location of sprite for digit Vx.
*/
func (m *Machine) opFx29(in Instruction) error {
	digit := m.registers[in.X]
	if digit > 0xF {
		return fmt.Errorf("V%X holds %#02x: %w", in.X, digit, ErrInvalidDigit)
	}
	m.memory.LoadFontGlyphAddress(digit)
	return nil
}

/*
Fx33 - LD B, Vx
Store BCD representation of Vx in memory locations I, I+1, and I+2.
*/
func (m *Machine) opFx33(in Instruction) error {
	return m.memory.StoreBCD(m.registers[in.X])
}

/*
Fx55 - LD [I], Vx
Store registers V0 through Vx in memory starting at location I. Vx itself is included.
*/
func (m *Machine) opFx55(in Instruction) error {
	if err := m.memory.WriteBlock(m.memory.I, m.registers[:in.X+1]); err != nil {
		return err
	}
	if m.quirks.LoadStoreIncrementsI {
		m.memory.I += uint16(in.X) + 1
	}
	return nil
}

/*
Fx65 - LD Vx, [I]
Read registers V0 through Vx from memory starting at location I. Vx itself is included.
*/
func (m *Machine) opFx65(in Instruction) error {
	block, err := m.memory.ReadBlock(m.memory.I, int(in.X)+1)
	if err != nil {
		return err
	}
	copy(m.registers[:], block)
	if m.quirks.LoadStoreIncrementsI {
		m.memory.I += uint16(in.X) + 1
	}
	return nil
}
