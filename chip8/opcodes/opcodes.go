package opcodes

import "fmt"

type Instruction int

const (
	InstructionUnknown Instruction = iota
	Instruction00E0
	Instruction00EE
	Instruction1NNN
	Instruction2NNN
	Instruction3XKK
	Instruction4XKK
	Instruction5XY0
	Instruction6XKK
	Instruction7XKK
	Instruction8XY0
	Instruction8XY1
	Instruction8XY2
	Instruction8XY3
	Instruction8XY4
	Instruction8XY5
	Instruction8XY6
	Instruction8XY7
	Instruction8XYE
	Instruction9XY0
	InstructionANNN
	InstructionBNNN
	InstructionCXKK
	InstructionDXYN
	InstructionEX9E
	InstructionEXA1
	InstructionFX07
	InstructionFX0A
	InstructionFX15
	InstructionFX18
	InstructionFX1E
	InstructionFX29
	InstructionFX33
	InstructionFX55
	InstructionFX65

	// InstructionCount is the number of entries in the instruction table,
	// including InstructionUnknown.
	InstructionCount
)

var mnemonics = [InstructionCount]string{
	InstructionUnknown: "???",
	Instruction00E0:    "CLS",
	Instruction00EE:    "RET",
	Instruction1NNN:    "JP",
	Instruction2NNN:    "CALL",
	Instruction3XKK:    "SE",
	Instruction4XKK:    "SNE",
	Instruction5XY0:    "SE",
	Instruction6XKK:    "LD",
	Instruction7XKK:    "ADD",
	Instruction8XY0:    "LD",
	Instruction8XY1:    "OR",
	Instruction8XY2:    "AND",
	Instruction8XY3:    "XOR",
	Instruction8XY4:    "ADD",
	Instruction8XY5:    "SUB",
	Instruction8XY6:    "SHR",
	Instruction8XY7:    "SUBN",
	Instruction8XYE:    "SHL",
	Instruction9XY0:    "SNE",
	InstructionANNN:    "LD",
	InstructionBNNN:    "JP",
	InstructionCXKK:    "RND",
	InstructionDXYN:    "DRW",
	InstructionEX9E:    "SKP",
	InstructionEXA1:    "SKNP",
	InstructionFX07:    "LD",
	InstructionFX0A:    "LD",
	InstructionFX15:    "LD",
	InstructionFX18:    "LD",
	InstructionFX1E:    "ADD",
	InstructionFX29:    "LD",
	InstructionFX33:    "LD",
	InstructionFX55:    "LD",
	InstructionFX65:    "LD",
}

// String returns the assembler mnemonic of the instruction.
func (i Instruction) String() string {
	if i < 0 || i >= InstructionCount {
		return mnemonics[InstructionUnknown]
	}
	return mnemonics[i]
}

type Opcode uint16

// aluInstructions maps the low nibble of an 8xyN opcode.
var aluInstructions = [16]Instruction{
	0x0: Instruction8XY0,
	0x1: Instruction8XY1,
	0x2: Instruction8XY2,
	0x3: Instruction8XY3,
	0x4: Instruction8XY4,
	0x5: Instruction8XY5,
	0x6: Instruction8XY6,
	0x7: Instruction8XY7,
	0xE: Instruction8XYE,
}

// miscInstructions maps the low byte of an FxKK opcode.
var miscInstructions = map[uint8]Instruction{
	0x07: InstructionFX07,
	0x0A: InstructionFX0A,
	0x15: InstructionFX15,
	0x18: InstructionFX18,
	0x1E: InstructionFX1E,
	0x29: InstructionFX29,
	0x33: InstructionFX33,
	0x55: InstructionFX55,
	0x65: InstructionFX65,
}

// Instruction classifies the opcode. Families 0, E and F are keyed on the
// low byte only, so the x nibble of 0x0xE0 and 0x0xEE is ignored.
// 5xyN and 9xyN need N == 0. Anything else is InstructionUnknown.
func (o Opcode) Instruction() Instruction {
	switch o >> 12 {
	case 0x0:
		switch o.KK() {
		case 0xE0:
			return Instruction00E0
		case 0xEE:
			return Instruction00EE
		}
	case 0x1:
		return Instruction1NNN
	case 0x2:
		return Instruction2NNN
	case 0x3:
		return Instruction3XKK
	case 0x4:
		return Instruction4XKK
	case 0x5:
		if o.N() == 0 {
			return Instruction5XY0
		}
	case 0x6:
		return Instruction6XKK
	case 0x7:
		return Instruction7XKK
	case 0x8:
		return aluInstructions[o.N()]
	case 0x9:
		if o.N() == 0 {
			return Instruction9XY0
		}
	case 0xA:
		return InstructionANNN
	case 0xB:
		return InstructionBNNN
	case 0xC:
		return InstructionCXKK
	case 0xD:
		return InstructionDXYN
	case 0xE:
		switch o.KK() {
		case 0x9E:
			return InstructionEX9E
		case 0xA1:
			return InstructionEXA1
		}
	case 0xF:
		return miscInstructions[o.KK()]
	}

	return InstructionUnknown
}

func (o Opcode) X() uint8 {
	return uint8((o & 0x0F00) >> 8)
}

func (o Opcode) Y() uint8 {
	return uint8((o & 0x00F0) >> 4)
}

func (o Opcode) N() uint8 {
	return uint8(o & 0x000F)
}

func (o Opcode) KK() uint8 {
	return uint8(o & 0x00FF)
}

func (o Opcode) NNN() uint16 {
	return uint16(o) & 0x0FFF
}

func (o Opcode) String() string {
	return fmt.Sprintf("opcode: 0x%04x, x: 0x%01x, y: 0x%01x, n: 0x%01x, kk: 0x%02x, nnn: 0x%03x", uint16(o), o.X(), o.Y(), o.N(), o.KK(), o.NNN())
}
