package chip8

import (
	"encoding/binary"
	"fmt"
	"math/rand"
	"time"

	"chip8vm/chip8/display"
	"chip8vm/chip8/opcodes"
)

const (
	MemorySize    int = 4096
	RegisterCount int = 16
	StackSize     int = 16
	KeyCount      int = 16

	ROMOffset  uint16 = 0x200
	FontOffset uint16 = 0x50

	MaxROMSize int = MemorySize - int(ROMOffset)
)

// Random is the byte source used by the RND instruction. *rand.Rand
// satisfies it.
type Random interface {
	Uint32() uint32
}

type Option func(*Chip8)

// WithRandom replaces the default time seeded random source.
func WithRandom(r Random) Option {
	return func(c *Chip8) {
		c.random = r
	}
}

type Chip8 struct {
	v  [RegisterCount]uint8
	i  uint16
	pc uint16

	stack [StackSize]uint16
	sp    uint8

	memory [MemorySize]uint8

	display *display.Display
	keys    [KeyCount]bool

	delayTimer uint8
	soundTimer uint8

	opcode opcodes.Opcode

	rom    []byte
	random Random
	halt   *HaltError
}

// New creates a machine with the font table and rom loaded and the program
// counter at ROMOffset. Roms larger than MaxROMSize are rejected.
func New(rom []byte, opts ...Option) (*Chip8, error) {
	if len(rom) > MaxROMSize {
		return nil, fmt.Errorf("%w: %d bytes, at most %d fit", ErrROMTooLarge, len(rom), MaxROMSize)
	}

	c := &Chip8{
		display: display.NewDisplay(),
		rom:     append([]byte(nil), rom...),
		random:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.Reset()

	return c, nil
}

// Reset restores the power-on state and reloads the rom. It also clears a
// halt.
func (c *Chip8) Reset() {
	c.v = [RegisterCount]uint8{}
	c.i = 0
	c.pc = ROMOffset
	c.stack = [StackSize]uint16{}
	c.sp = 0
	c.memory = [MemorySize]uint8{}
	c.keys = [KeyCount]bool{}
	c.delayTimer = 0
	c.soundTimer = 0
	c.opcode = 0
	c.halt = nil
	c.display.Clear()

	copy(c.memory[FontOffset:], fontSet[:])
	copy(c.memory[ROMOffset:], c.rom)
}

// Halted returns the fault that stopped the machine, or nil while it runs.
func (c *Chip8) Halted() *HaltError {
	return c.halt
}

// Resume clears the halt so the next Step executes the faulting instruction
// again.
func (c *Chip8) Resume() {
	c.halt = nil
}

func (c *Chip8) fetch() (opcodes.Opcode, error) {
	if int(c.pc) > MemorySize-2 {
		c.opcode = 0
		return 0, fmt.Errorf("%w: fetch at 0x%04x", ErrOutOfBounds, c.pc)
	}

	c.opcode = opcodes.Opcode(binary.BigEndian.Uint16(c.memory[c.pc : c.pc+2]))
	c.pc += 2

	return c.opcode, nil
}

func (c *Chip8) execute(opcode opcodes.Opcode) error {
	handler := handlers[opcode.Instruction()]
	if handler == nil {
		return fmt.Errorf("%w @ 0x%03x: %v", ErrUnknownInstruction, c.pc-2, opcode)
	}

	return handler(c, opcode)
}

// Step runs one fetch, decode, execute cycle and then ticks both timers.
// A fault halts the machine and is returned as a *HaltError; the faulting
// cycle leaves the state as it was before the fetch.
func (c *Chip8) Step() error {
	if c.halt != nil {
		return c.halt
	}

	pc := c.pc

	opcode, err := c.fetch()
	if err == nil {
		err = c.execute(opcode)
	}
	if err != nil {
		c.pc = pc
		c.halt = &HaltError{
			Reason: err,
			State:  c.State(),
		}
		return c.halt
	}

	if c.delayTimer > 0 {
		c.delayTimer--
	}

	if c.soundTimer > 0 {
		c.soundTimer--
	}

	return nil
}

// SetKey updates the pressed state of one keypad key. Keys outside the
// keypad are ignored.
func (c *Chip8) SetKey(key uint8, pressed bool) {
	if int(key) < KeyCount {
		c.keys[key] = pressed
	}
}

// SetKeys replaces the whole keypad snapshot.
func (c *Chip8) SetKeys(keys [KeyCount]bool) {
	c.keys = keys
}

func (c *Chip8) Keys() [KeyCount]bool {
	return c.keys
}

func (c *Chip8) IsKeyDown(key uint8) bool {
	return int(key) < KeyCount && c.keys[key]
}

// Framebuffer returns a copy of the 64x32 pixels in row-major order.
func (c *Chip8) Framebuffer() []uint32 {
	return c.display.Pixels()
}

// Pitch returns the length in bytes of one framebuffer row.
func (c *Chip8) Pitch() int {
	return display.Pitch
}

// Pixel reports whether the pixel at x, y is set, false outside the display.
func (c *Chip8) Pixel(x, y int) bool {
	return c.display.Pixel(x, y)
}

func (c *Chip8) DelayTimer() uint8 {
	return c.delayTimer
}

func (c *Chip8) SoundTimer() uint8 {
	return c.soundTimer
}

func (c *Chip8) ReadMemory(address uint16) (uint8, error) {
	if int(address) >= MemorySize {
		return 0, fmt.Errorf("%w: read at 0x%04x", ErrOutOfBounds, address)
	}

	return c.memory[address], nil
}
