package opcodes

import "fmt"

// Disassemble returns the assembly text for the opcode, e.g. "LD V0, #0A".
// Opcodes that match no instruction are rendered as a data word.
func (o Opcode) Disassemble() string {
	ins := o.Instruction()
	x, y := o.X(), o.Y()

	switch ins {
	case Instruction00E0, Instruction00EE:
		return ins.String()
	case Instruction1NNN, Instruction2NNN:
		return fmt.Sprintf("%s #%03X", ins, o.NNN())
	case InstructionBNNN:
		return fmt.Sprintf("%s V0, #%03X", ins, o.NNN())
	case Instruction3XKK, Instruction4XKK, Instruction6XKK, Instruction7XKK, InstructionCXKK:
		return fmt.Sprintf("%s V%X, #%02X", ins, x, o.KK())
	case Instruction5XY0, Instruction8XY0, Instruction8XY1, Instruction8XY2, Instruction8XY3,
		Instruction8XY4, Instruction8XY5, Instruction8XY7, Instruction9XY0:
		return fmt.Sprintf("%s V%X, V%X", ins, x, y)
	case Instruction8XY6, Instruction8XYE, InstructionEX9E, InstructionEXA1:
		return fmt.Sprintf("%s V%X", ins, x)
	case InstructionANNN:
		return fmt.Sprintf("%s I, #%03X", ins, o.NNN())
	case InstructionDXYN:
		return fmt.Sprintf("%s V%X, V%X, %d", ins, x, y, o.N())
	case InstructionFX07:
		return fmt.Sprintf("%s V%X, DT", ins, x)
	case InstructionFX0A:
		return fmt.Sprintf("%s V%X, K", ins, x)
	case InstructionFX15:
		return fmt.Sprintf("%s DT, V%X", ins, x)
	case InstructionFX18:
		return fmt.Sprintf("%s ST, V%X", ins, x)
	case InstructionFX1E:
		return fmt.Sprintf("%s I, V%X", ins, x)
	case InstructionFX29:
		return fmt.Sprintf("%s F, V%X", ins, x)
	case InstructionFX33:
		return fmt.Sprintf("%s B, V%X", ins, x)
	case InstructionFX55:
		return fmt.Sprintf("%s [I], V%X", ins, x)
	case InstructionFX65:
		return fmt.Sprintf("%s V%X, [I]", ins, x)
	}

	return fmt.Sprintf("DW #%04X", uint16(o))
}
