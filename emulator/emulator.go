package emulator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/retroenv/retrogolib/log"
	sdl "github.com/veandco/go-sdl2/sdl"

	"chip8vm/chip8"
	"chip8vm/chip8/display"
	"chip8vm/config"
)

var keyMap = map[sdl.Scancode]uint8{
	sdl.SCANCODE_1: 0x1,
	sdl.SCANCODE_2: 0x2,
	sdl.SCANCODE_3: 0x3,
	sdl.SCANCODE_4: 0xC,
	sdl.SCANCODE_Q: 0x4,
	sdl.SCANCODE_W: 0x5,
	sdl.SCANCODE_E: 0x6,
	sdl.SCANCODE_R: 0xD,
	sdl.SCANCODE_A: 0x7,
	sdl.SCANCODE_S: 0x8,
	sdl.SCANCODE_D: 0x9,
	sdl.SCANCODE_F: 0xE,
	sdl.SCANCODE_Z: 0xA,
	sdl.SCANCODE_X: 0x0,
	sdl.SCANCODE_C: 0xB,
	sdl.SCANCODE_V: 0xF,
}

// errQuit is returned by the event loop when the user closes the window.
var errQuit = errors.New("quit")

// handleEvent forwards keyboard state to the machine keypad.
func handleEvent(machine *chip8.Chip8, e *sdl.KeyboardEvent) error {
	if e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
		return errQuit
	}

	key, ok := keyMap[e.Keysym.Scancode]
	if !ok {
		return nil
	}

	switch e.Type {
	case sdl.KEYUP:
		machine.SetKey(key, false)
	case sdl.KEYDOWN:
		machine.SetKey(key, true)
	}

	return nil
}

func pollEvents(machine *chip8.Chip8) error {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return errQuit
		case *sdl.KeyboardEvent:
			if err := handleEvent(machine, e); err != nil {
				return err
			}
		}
	}

	return nil
}

type window struct {
	window     *sdl.Window
	renderer   *sdl.Renderer
	backbuffer *sdl.Texture
}

func newWindow(filename string, scale int) (*window, error) {
	w, err := sdl.CreateWindow(fmt.Sprintf("CHIP-8 - %s", filepath.Base(filename)), sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, int32(display.Width*scale), int32(display.Height*scale), sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(w, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		_ = w.Destroy()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	backbuffer, err := renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_TARGET, int32(display.Width), int32(display.Height))
	if err != nil {
		_ = renderer.Destroy()
		_ = w.Destroy()
		return nil, fmt.Errorf("failed to create backbuffer: %w", err)
	}

	return &window{
		window:     w,
		renderer:   renderer,
		backbuffer: backbuffer,
	}, nil
}

func (d *window) destroy() {
	_ = d.backbuffer.Destroy()
	_ = d.renderer.Destroy()
	_ = d.window.Destroy()
}

func (d *window) present() error {
	if err := d.renderer.Clear(); err != nil {
		return fmt.Errorf("failed to clear: %w", err)
	}

	if err := d.renderer.Copy(d.backbuffer, nil, nil); err != nil {
		return fmt.Errorf("failed to copy backbuffer: %w", err)
	}

	d.renderer.Present()

	return nil
}

// draw renders the framebuffer into the backbuffer, one point per pixel.
func (d *window) draw(pixels []uint32) error {
	target := d.renderer.GetRenderTarget()

	if err := d.renderer.SetRenderTarget(d.backbuffer); err != nil {
		return fmt.Errorf("failed to set render target: %w", err)
	}

	for i, p := range pixels {
		if p == display.PixelOn {
			if err := d.renderer.SetDrawColor(255, 255, 255, 255); err != nil {
				return fmt.Errorf("failed to set draw color: %w", err)
			}
		} else {
			if err := d.renderer.SetDrawColor(0, 0, 0, 255); err != nil {
				return fmt.Errorf("failed to set draw color: %w", err)
			}
		}

		if err := d.renderer.DrawPoint(int32(i%display.Width), int32(i/display.Width)); err != nil {
			return fmt.Errorf("failed to draw point: %w", err)
		}
	}

	if err := d.renderer.SetRenderTarget(target); err != nil {
		return fmt.Errorf("failed to restore render target: %w", err)
	}

	return nil
}

// Run opens a window and runs the machine at cfg.ClockHz until the window is
// closed, ctx is cancelled or the machine halts.
func Run(ctx context.Context, cfg config.Config, machine *chip8.Chip8, logger *log.Logger) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("failed to init SDL: %w", err)
	}
	defer sdl.Quit()

	window, err := newWindow(cfg.ROM, cfg.Scale)
	if err != nil {
		return fmt.Errorf("failed to init window: %w", err)
	}
	defer window.destroy()

	trace := cfg.Trace && logger.Level() <= log.DebugLevel

	currentTime := time.Now()
	accumulator := time.Duration(0)

	dt := time.Second / time.Duration(cfg.ClockHz)

	for {
		if ctx.Err() != nil {
			return nil
		}

		now := time.Now()

		frameTime := now.Sub(currentTime)
		currentTime = now

		accumulator += frameTime

		for accumulator > dt {
			if err := pollEvents(machine); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				return err
			}

			if trace {
				logger.Debug("step", log.Object("state", machine.State()))
			}

			if err := machine.Step(); err != nil {
				var halt *chip8.HaltError
				if errors.As(err, &halt) {
					logger.LogDepth(0, log.ErrorLevel, "Machine halted",
						log.Err(halt.Reason),
						log.Object("state", halt.State),
					)
				}
				return fmt.Errorf("failed to cycle: %w", err)
			}

			accumulator -= dt
		}

		if err := window.draw(machine.Framebuffer()); err != nil {
			return fmt.Errorf("failed to draw: %w", err)
		}

		if err := window.present(); err != nil {
			return fmt.Errorf("failed to present: %w", err)
		}

		sdl.Delay(1)
	}
}
