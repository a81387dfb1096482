package opcodes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeFields(t *testing.T) {
	o := Opcode(0xD12F)

	assert.Equal(t, uint8(0x1), o.X())
	assert.Equal(t, uint8(0x2), o.Y())
	assert.Equal(t, uint8(0xF), o.N())
	assert.Equal(t, uint8(0x2F), o.KK())
	assert.Equal(t, uint16(0x12F), o.NNN())
}

func TestOpcodeInstruction(t *testing.T) {
	tests := []struct {
		opcode Opcode
		want   Instruction
	}{
		{0x00E0, Instruction00E0},
		{0x00EE, Instruction00EE},
		{0x01E0, Instruction00E0}, // x nibble ignored
		{0x0FEE, Instruction00EE},
		{0x1234, Instruction1NNN},
		{0x2345, Instruction2NNN},
		{0x3A12, Instruction3XKK},
		{0x4B34, Instruction4XKK},
		{0x5120, Instruction5XY0},
		{0x6C56, Instruction6XKK},
		{0x7D78, Instruction7XKK},
		{0x8120, Instruction8XY0},
		{0x8121, Instruction8XY1},
		{0x8122, Instruction8XY2},
		{0x8123, Instruction8XY3},
		{0x8124, Instruction8XY4},
		{0x8125, Instruction8XY5},
		{0x8126, Instruction8XY6},
		{0x8127, Instruction8XY7},
		{0x812E, Instruction8XYE},
		{0x9120, Instruction9XY0},
		{0xA123, InstructionANNN},
		{0xB123, InstructionBNNN},
		{0xC1FF, InstructionCXKK},
		{0xD125, InstructionDXYN},
		{0xE19E, InstructionEX9E},
		{0xE1A1, InstructionEXA1},
		{0xF107, InstructionFX07},
		{0xF10A, InstructionFX0A},
		{0xF115, InstructionFX15},
		{0xF118, InstructionFX18},
		{0xF11E, InstructionFX1E},
		{0xF129, InstructionFX29},
		{0xF133, InstructionFX33},
		{0xF155, InstructionFX55},
		{0xF165, InstructionFX65},

		{0x0000, InstructionUnknown},
		{0x0123, InstructionUnknown},
		{0x00E1, InstructionUnknown},
		{0x10E0, Instruction1NNN},
		{0x5121, InstructionUnknown},
		{0x8128, InstructionUnknown},
		{0x812F, InstructionUnknown},
		{0x9121, InstructionUnknown},
		{0xE1A2, InstructionUnknown},
		{0xF1FF, InstructionUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.opcode.Instruction(), "opcode 0x%04x", uint16(tt.opcode))
	}
}

func TestEveryInstructionIsReachable(t *testing.T) {
	seen := map[Instruction]bool{}
	for o := 0; o <= 0xFFFF; o++ {
		seen[Opcode(o).Instruction()] = true
	}

	assert.Len(t, seen, int(InstructionCount))
}

func TestInstructionString(t *testing.T) {
	assert.Equal(t, "CLS", Instruction00E0.String())
	assert.Equal(t, "SUBN", Instruction8XY7.String())
	assert.Equal(t, "???", InstructionUnknown.String())
	assert.Equal(t, "???", Instruction(-1).String())
	assert.Equal(t, "???", InstructionCount.String())
}

func TestDisassemble(t *testing.T) {
	tests := []struct {
		opcode Opcode
		want   string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x1228, "JP #228"},
		{0x2300, "CALL #300"},
		{0x600A, "LD V0, #0A"},
		{0x7F01, "ADD VF, #01"},
		{0x8014, "ADD V0, V1"},
		{0x8AB7, "SUBN VA, VB"},
		{0x8306, "SHR V3"},
		{0xA050, "LD I, #050"},
		{0xB210, "JP V0, #210"},
		{0xC30F, "RND V3, #0F"},
		{0xD125, "DRW V1, V2, 5"},
		{0xE49E, "SKP V4"},
		{0xF40A, "LD V4, K"},
		{0xF433, "LD B, V4"},
		{0xF355, "LD [I], V3"},
		{0xF365, "LD V3, [I]"},
		{0x0123, "DW #0123"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.opcode.Disassemble())
	}
}

func TestOpcodeString(t *testing.T) {
	assert.Equal(t, "opcode: 0xd125, x: 0x1, y: 0x2, n: 0x5, kk: 0x25, nnn: 0x125", Opcode(0xD125).String())
}
