package chip8

import (
	"fmt"

	"chip8vm/chip8/display"
	"chip8vm/chip8/opcodes"
)

type handler func(c *Chip8, o opcodes.Opcode) error

var handlers = [opcodes.InstructionCount]handler{
	opcodes.Instruction00E0: (*Chip8).clearScreen,
	opcodes.Instruction00EE: (*Chip8).ret,
	opcodes.Instruction1NNN: (*Chip8).jump,
	opcodes.Instruction2NNN: (*Chip8).call,
	opcodes.Instruction3XKK: (*Chip8).skipIfEqualByte,
	opcodes.Instruction4XKK: (*Chip8).skipIfNotEqualByte,
	opcodes.Instruction5XY0: (*Chip8).skipIfEqual,
	opcodes.Instruction6XKK: (*Chip8).loadByte,
	opcodes.Instruction7XKK: (*Chip8).addByte,
	opcodes.Instruction8XY0: (*Chip8).load,
	opcodes.Instruction8XY1: (*Chip8).or,
	opcodes.Instruction8XY2: (*Chip8).and,
	opcodes.Instruction8XY3: (*Chip8).xor,
	opcodes.Instruction8XY4: (*Chip8).add,
	opcodes.Instruction8XY5: (*Chip8).sub,
	opcodes.Instruction8XY6: (*Chip8).shiftRight,
	opcodes.Instruction8XY7: (*Chip8).subN,
	opcodes.Instruction8XYE: (*Chip8).shiftLeft,
	opcodes.Instruction9XY0: (*Chip8).skipIfNotEqual,
	opcodes.InstructionANNN: (*Chip8).loadIndex,
	opcodes.InstructionBNNN: (*Chip8).jumpOffset,
	opcodes.InstructionCXKK: (*Chip8).rnd,
	opcodes.InstructionDXYN: (*Chip8).draw,
	opcodes.InstructionEX9E: (*Chip8).skipIfKey,
	opcodes.InstructionEXA1: (*Chip8).skipIfNotKey,
	opcodes.InstructionFX07: (*Chip8).loadDelayTimer,
	opcodes.InstructionFX0A: (*Chip8).waitKey,
	opcodes.InstructionFX15: (*Chip8).setDelayTimer,
	opcodes.InstructionFX18: (*Chip8).setSoundTimer,
	opcodes.InstructionFX1E: (*Chip8).addIndex,
	opcodes.InstructionFX29: (*Chip8).loadFont,
	opcodes.InstructionFX33: (*Chip8).storeBCD,
	opcodes.InstructionFX55: (*Chip8).storeRegisters,
	opcodes.InstructionFX65: (*Chip8).loadRegisters,
}

// checkRange fails unless the n bytes starting at address are all inside
// memory.
func checkRange(address uint16, n int, what string) error {
	if int(address)+n > MemorySize {
		return fmt.Errorf("%w: %s at 0x%04x+%d", ErrOutOfBounds, what, address, n)
	}
	return nil
}

func (c *Chip8) skipIf(cond bool) {
	if cond {
		c.pc += 2
	}
}

func bit(cond bool) uint8 {
	if cond {
		return 1
	}
	return 0
}

// 00E0
func (c *Chip8) clearScreen(_ opcodes.Opcode) error {
	c.display.Clear()
	return nil
}

// 00EE
func (c *Chip8) ret(_ opcodes.Opcode) error {
	if c.sp == 0 {
		return fmt.Errorf("%w: return with no active call", ErrStackUnderflow)
	}

	c.sp--
	c.pc = c.stack[c.sp]
	return nil
}

// 1nnn
func (c *Chip8) jump(o opcodes.Opcode) error {
	c.pc = o.NNN()
	return nil
}

// 2nnn
func (c *Chip8) call(o opcodes.Opcode) error {
	if int(c.sp) >= StackSize {
		return fmt.Errorf("%w: call to 0x%03x nested beyond %d levels", ErrStackOverflow, o.NNN(), StackSize)
	}

	c.stack[c.sp] = c.pc
	c.sp++
	c.pc = o.NNN()
	return nil
}

// 3xkk
func (c *Chip8) skipIfEqualByte(o opcodes.Opcode) error {
	c.skipIf(c.v[o.X()] == o.KK())
	return nil
}

// 4xkk
func (c *Chip8) skipIfNotEqualByte(o opcodes.Opcode) error {
	c.skipIf(c.v[o.X()] != o.KK())
	return nil
}

// 5xy0
func (c *Chip8) skipIfEqual(o opcodes.Opcode) error {
	c.skipIf(c.v[o.X()] == c.v[o.Y()])
	return nil
}

// 6xkk
func (c *Chip8) loadByte(o opcodes.Opcode) error {
	c.v[o.X()] = o.KK()
	return nil
}

// 7xkk, no carry
func (c *Chip8) addByte(o opcodes.Opcode) error {
	c.v[o.X()] += o.KK()
	return nil
}

// 8xy0
func (c *Chip8) load(o opcodes.Opcode) error {
	c.v[o.X()] = c.v[o.Y()]
	return nil
}

// 8xy1
func (c *Chip8) or(o opcodes.Opcode) error {
	c.v[o.X()] |= c.v[o.Y()]
	return nil
}

// 8xy2
func (c *Chip8) and(o opcodes.Opcode) error {
	c.v[o.X()] &= c.v[o.Y()]
	return nil
}

// 8xy3
func (c *Chip8) xor(o opcodes.Opcode) error {
	c.v[o.X()] ^= c.v[o.Y()]
	return nil
}

// The flag writing instructions below compute both the result and the flag
// from the operands first, then write VF, then the destination. With x == F
// the destination write is the one that sticks.

// 8xy4
func (c *Chip8) add(o opcodes.Opcode) error {
	vx, vy := c.v[o.X()], c.v[o.Y()]
	result := uint16(vx) + uint16(vy)

	c.v[0xF] = bit(result > 0xFF)
	c.v[o.X()] = uint8(result & 0xFF)
	return nil
}

// 8xy5
func (c *Chip8) sub(o opcodes.Opcode) error {
	vx, vy := c.v[o.X()], c.v[o.Y()]
	result := vx - vy

	c.v[0xF] = bit(vx > vy)
	c.v[o.X()] = result
	return nil
}

// 8xy6, vy is ignored
func (c *Chip8) shiftRight(o opcodes.Opcode) error {
	vx := c.v[o.X()]

	c.v[0xF] = vx & 0x1
	c.v[o.X()] = vx >> 1
	return nil
}

// 8xy7
func (c *Chip8) subN(o opcodes.Opcode) error {
	vx, vy := c.v[o.X()], c.v[o.Y()]
	result := vy - vx

	c.v[0xF] = bit(vy > vx)
	c.v[o.X()] = result
	return nil
}

// 8xyE, vy is ignored
func (c *Chip8) shiftLeft(o opcodes.Opcode) error {
	vx := c.v[o.X()]

	c.v[0xF] = (vx >> 7) & 0x1
	c.v[o.X()] = vx << 1
	return nil
}

// 9xy0
func (c *Chip8) skipIfNotEqual(o opcodes.Opcode) error {
	c.skipIf(c.v[o.X()] != c.v[o.Y()])
	return nil
}

// Annn
func (c *Chip8) loadIndex(o opcodes.Opcode) error {
	c.i = o.NNN()
	return nil
}

// Bnnn adds nnn to the program counter rather than jumping to nnn + V0.
func (c *Chip8) jumpOffset(o opcodes.Opcode) error {
	c.pc += o.NNN()
	return nil
}

// Cxkk
func (c *Chip8) rnd(o opcodes.Opcode) error {
	c.v[o.X()] = uint8(c.random.Uint32()) & o.KK()
	return nil
}

// Dxyn
func (c *Chip8) draw(o opcodes.Opcode) error {
	n := int(o.N())
	if err := checkRange(c.i, n, "sprite"); err != nil {
		return err
	}

	x := c.v[o.X()] % uint8(display.Width)
	y := c.v[o.Y()] % uint8(display.Height)
	sprite := c.memory[int(c.i) : int(c.i)+n]

	c.v[0xF] = bit(c.display.DrawSprite(x, y, sprite))
	return nil
}

func (c *Chip8) keyOf(x uint8) (uint8, error) {
	key := c.v[x]
	if int(key) >= KeyCount {
		return 0, fmt.Errorf("%w: key 0x%02x in V%X", ErrOutOfBounds, key, x)
	}
	return key, nil
}

// Ex9E
func (c *Chip8) skipIfKey(o opcodes.Opcode) error {
	key, err := c.keyOf(o.X())
	if err != nil {
		return err
	}

	c.skipIf(c.keys[key])
	return nil
}

// ExA1
func (c *Chip8) skipIfNotKey(o opcodes.Opcode) error {
	key, err := c.keyOf(o.X())
	if err != nil {
		return err
	}

	c.skipIf(!c.keys[key])
	return nil
}

// Fx07
func (c *Chip8) loadDelayTimer(o opcodes.Opcode) error {
	c.v[o.X()] = c.delayTimer
	return nil
}

// Fx0A blocks by rewinding the program counter until a key is down. The
// lowest pressed key wins.
func (c *Chip8) waitKey(o opcodes.Opcode) error {
	for key := 0; key < KeyCount; key++ {
		if c.keys[key] {
			c.v[o.X()] = uint8(key)
			return nil
		}
	}

	c.pc -= 2
	return nil
}

// Fx15
func (c *Chip8) setDelayTimer(o opcodes.Opcode) error {
	c.delayTimer = c.v[o.X()]
	return nil
}

// Fx18
func (c *Chip8) setSoundTimer(o opcodes.Opcode) error {
	c.soundTimer = c.v[o.X()]
	return nil
}

// Fx1E, wraps at 16 bits and leaves VF alone
func (c *Chip8) addIndex(o opcodes.Opcode) error {
	c.i += uint16(c.v[o.X()])
	return nil
}

// Fx29
func (c *Chip8) loadFont(o opcodes.Opcode) error {
	c.i = FontOffset + 5*uint16(c.v[o.X()])
	return nil
}

// Fx33
func (c *Chip8) storeBCD(o opcodes.Opcode) error {
	if err := checkRange(c.i, 3, "bcd"); err != nil {
		return err
	}

	value := c.v[o.X()]
	c.memory[c.i] = value / 100
	c.memory[c.i+1] = (value / 10) % 10
	c.memory[c.i+2] = value % 10
	return nil
}

// Fx55
func (c *Chip8) storeRegisters(o opcodes.Opcode) error {
	n := int(o.X()) + 1
	if err := checkRange(c.i, n, "register store"); err != nil {
		return err
	}

	copy(c.memory[int(c.i):int(c.i)+n], c.v[:n])
	return nil
}

// Fx65
func (c *Chip8) loadRegisters(o opcodes.Opcode) error {
	n := int(o.X()) + 1
	if err := checkRange(c.i, n, "register load"); err != nil {
		return err
	}

	copy(c.v[:n], c.memory[int(c.i):int(c.i)+n])
	return nil
}
