package emulator

/*
Every CHIP-8 instruction is two bytes long and stored big-endian. The fields used by the
instruction set are fixed slices of the 16-bit word:

	s   - the highest 4 bits, selects the instruction class
	x   - the lower 4 bits of the high byte, a register index
	y   - the upper 4 bits of the low byte, a register index
	n   - the lowest 4 bits
	kk  - the lowest 8 bits
	nnn - the lowest 12 bits, usually an address
*/
type Instruction struct {
	Opcode uint16
	S      byte
	X      byte
	Y      byte
	N      byte
	KK     byte
	NNN    uint16
}

// Decode splits a raw opcode into its fields.
func Decode(opcode uint16) Instruction {
	return Instruction{
		Opcode: opcode,
		S:      byte(opcode >> 12),
		X:      byte((opcode >> 8) & 0x0F),
		Y:      byte((opcode >> 4) & 0x0F),
		N:      byte(opcode & 0x000F),
		KK:     byte(opcode & 0x00FF),
		NNN:    opcode & 0x0FFF,
	}
}
