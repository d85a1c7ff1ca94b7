package emulator

import "fmt"

/*
The CHIP-8 has 4096 bytes of memory, meaning the address space is from 0x000 to 0xFFF.
The address space is segmented into three sections:

	0x000-0x1FF: Originally reserved for the CHIP-8 interpreter. We keep the built-in font there.
	0x000-0x04F: Storage space for the 16 built-in characters (0 through F) which ROMs look up with Fx29.
	0x200-0xFFF: Instructions from the ROM are stored starting at 0x200, anything left after the ROM's space is free to use.
*/
const MEMORY_SIZE = 4096
const START_ADDRESS uint16 = 0x200
const FONTSET_START_ADDRESS uint16 = 0x000

// Each font character is a sprite of five rows, four pixels wide.
const FONT_GLYPH_SIZE = 5

var fontset = [16 * FONT_GLYPH_SIZE]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory owns the address space together with the two registers that point into it.
type Memory struct {
	bytes [MEMORY_SIZE]byte

	// The Program Counter (PC) holds the address of the next instruction to execute.
	// It's 16 bits because it has to be able to hold the maximum memory address (0xFFF)
	PC uint16

	// The Index Register is used to store memory addresses for sprite and block operations.
	I uint16
}

func newMemory(origin uint16) *Memory {
	m := &Memory{PC: origin}
	copy(m.bytes[FONTSET_START_ADDRESS:], fontset[:])
	return m
}

// Fetch reads the big-endian word at PC and decodes it. PC is not moved.
func (m *Memory) Fetch() (Instruction, error) {
	if int(m.PC)+1 >= MEMORY_SIZE {
		return Instruction{}, fmt.Errorf("fetch at %#04x: %w", m.PC, ErrOutOfBounds)
	}
	opcode := uint16(m.bytes[m.PC])<<8 | uint16(m.bytes[m.PC+1])
	return Decode(opcode), nil
}

// Advance steps PC to the next instruction.
func (m *Memory) Advance() {
	m.PC += 2
}

// ReadBlock returns a copy of the count bytes starting at addr.
func (m *Memory) ReadBlock(addr uint16, count int) ([]byte, error) {
	if int(addr)+count > MEMORY_SIZE {
		return nil, fmt.Errorf("read of %d bytes at %#04x: %w", count, addr, ErrOutOfBounds)
	}
	block := make([]byte, count)
	copy(block, m.bytes[addr:])
	return block, nil
}

// WriteBlock copies data into memory starting at addr. Nothing is written when the
// block would run past the end of memory.
func (m *Memory) WriteBlock(addr uint16, data []byte) error {
	if int(addr)+len(data) > MEMORY_SIZE {
		return fmt.Errorf("write of %d bytes at %#04x: %w", len(data), addr, ErrOutOfBounds)
	}
	copy(m.bytes[addr:], data)
	return nil
}

// LoadFontGlyphAddress points I at the built-in sprite of a hexadecimal digit.
// The caller must make sure digit is in 0x0-0xF.
func (m *Memory) LoadFontGlyphAddress(digit byte) {
	if digit > 0xF {
		panic(fmt.Sprintf("font digit out of range: %#x", digit))
	}
	m.I = FONTSET_START_ADDRESS + uint16(digit)*FONT_GLYPH_SIZE
}

/*
StoreBCD stores the decimal representation of value at I, I+1 and I+2.
The hundreds digit goes at I, the tens digit at I+1 and the ones digit at I+2.
*/
func (m *Memory) StoreBCD(value byte) error {
	return m.WriteBlock(m.I, []byte{value / 100, value / 10 % 10, value % 10})
}
