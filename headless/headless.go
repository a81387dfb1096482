// Package headless runs a CHIP-8 machine without a window.
package headless

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/log"

	"chip8vm/chip8"
	"chip8vm/chip8/display"
)

// Result describes a finished headless run.
type Result struct {
	Cycles int
	Halt   *chip8.HaltError
}

// Run steps the machine cycles times, or until it halts when cycles is 0.
// The context is checked between steps. A halt is reported in the result
// and not as an error; the returned error is only set on cancellation.
// With trace set every step is logged at debug level.
func Run(ctx context.Context, machine *chip8.Chip8, cycles int, trace bool, logger *log.Logger) (Result, error) {
	var result Result

	trace = trace && logger.Level() <= log.DebugLevel

	for cycles == 0 || result.Cycles < cycles {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("stopped after %d cycles: %w", result.Cycles, err)
		}

		if trace {
			logger.Debug("step", log.Int("cycle", result.Cycles), log.Object("state", machine.State()))
		}

		if err := machine.Step(); err != nil {
			var halt *chip8.HaltError
			if !errors.As(err, &halt) {
				return result, err
			}
			result.Halt = halt
			return result, nil
		}
		result.Cycles++
	}

	return result, nil
}

// Render writes the framebuffer as text, one line per row, '#' for a set
// pixel and '.' for a clear one.
func Render(pixels []uint32, w io.Writer) error {
	if len(pixels) != display.Width*display.Height {
		return fmt.Errorf("framebuffer has %d pixels, want %d", len(pixels), display.Width*display.Height)
	}

	bw := bufio.NewWriter(w)
	for y := 0; y < display.Height; y++ {
		for x := 0; x < display.Width; x++ {
			c := byte('.')
			if pixels[y*display.Width+x] == display.PixelOn {
				c = '#'
			}
			if err := bw.WriteByte(c); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}
