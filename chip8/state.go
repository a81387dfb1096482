package chip8

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"golang.org/x/exp/slog"

	"chip8vm/chip8/opcodes"
)

// State is a diagnostic snapshot of the machine registers.
type State struct {
	V  [RegisterCount]uint8
	I  uint16
	PC uint16
	SP uint8

	Stack [StackSize]uint16

	DelayTimer uint8
	SoundTimer uint8

	Opcode opcodes.Opcode
}

func (c *Chip8) State() State {
	return State{
		V:          c.v,
		I:          c.i,
		PC:         c.pc,
		SP:         c.sp,
		Stack:      c.stack,
		DelayTimer: c.delayTimer,
		SoundTimer: c.soundTimer,
		Opcode:     c.opcode,
	}
}

// Frames returns the active return addresses, oldest first.
func (s State) Frames() []uint16 {
	return append([]uint16(nil), s.Stack[:s.SP]...)
}

func (s State) String() string {
	var b strings.Builder

	for i, v := range s.V {
		fmt.Fprintf(&b, "V%X=0x%02x\n", i, v)
	}

	fmt.Fprintf(&b, "PC=0x%03x\n", s.PC)
	fmt.Fprintf(&b, "I=0x%03x\n", s.I)
	fmt.Fprintf(&b, "SP=0x%x\n", s.SP)
	fmt.Fprintf(&b, "DT=0x%02x\n", s.DelayTimer)
	fmt.Fprintf(&b, "ST=0x%02x\n", s.SoundTimer)
	fmt.Fprintf(&b, "OP=0x%04x (%s)", uint16(s.Opcode), s.Opcode.Disassemble())

	return b.String()
}

// LogValue renders the snapshot as a log group.
func (s State) LogValue() slog.Value {
	regs := make([]string, len(s.V))
	for i, v := range s.V {
		regs[i] = fmt.Sprintf("%02x", v)
	}

	frames := s.Frames()
	stack := make([]string, len(frames))
	for i, f := range frames {
		stack[i] = fmt.Sprintf("%03x", f)
	}

	return slog.GroupValue(
		log.String("pc", fmt.Sprintf("0x%03x", s.PC)),
		log.String("i", fmt.Sprintf("0x%03x", s.I)),
		log.Uint8("sp", s.SP),
		log.String("v", strings.Join(regs, " ")),
		log.String("stack", strings.Join(stack, " ")),
		log.Uint8("dt", s.DelayTimer),
		log.Uint8("st", s.SoundTimer),
		log.String("opcode", fmt.Sprintf("0x%04x", uint16(s.Opcode))),
		log.String("asm", s.Opcode.Disassemble()),
	)
}
