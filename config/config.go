// Package config handles the emulator configuration and setup.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/log"

	"chip8vm/chip8"
)

// Config holds everything the host needs to run a rom.
type Config struct {
	ROM string

	Scale   int // window pixels per CHIP-8 pixel
	ClockHz int // Step calls per second

	Headless bool
	Cycles   int // headless only, 0 runs until halt

	Trace bool
	Debug bool
	Quiet bool

	Seed int64 // 0 seeds from the clock
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		Scale:   10,
		ClockHz: 500,
	}
}

func (c Config) Validate() error {
	if c.ROM == "" {
		return errors.New("no rom file given")
	}
	if c.Scale <= 0 {
		return fmt.Errorf("invalid scale %d", c.Scale)
	}
	if c.ClockHz <= 0 {
		return fmt.Errorf("invalid clock rate %d", c.ClockHz)
	}
	if c.Cycles < 0 {
		return fmt.Errorf("invalid cycle count %d", c.Cycles)
	}
	return nil
}

// UsageError represents an error that should show usage information.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	out := e.flags.Output()
	fmt.Fprintf(out, "usage: %s [options] <rom file>\n\n", e.flags.Name())
	e.flags.PrintDefaults()
	fmt.Fprintln(out)
}

// ParseFlags parses the command line arguments, without the program name.
func ParseFlags(name string, args []string, output io.Writer) (Config, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(output)

	cfg := Default()
	flags.IntVar(&cfg.Scale, "scale", cfg.Scale, "window pixels per CHIP-8 pixel")
	flags.IntVar(&cfg.ClockHz, "clock", cfg.ClockHz, "instructions executed per second, timers tick once per instruction")
	flags.BoolVar(&cfg.Headless, "headless", false, "run without a window and print the screen on exit")
	flags.IntVar(&cfg.Cycles, "cycles", 0, "headless mode: number of instructions to execute, 0 runs until halt")
	flags.BoolVar(&cfg.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&cfg.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&cfg.Quiet, "q", false, "only log errors")
	flags.Int64Var(&cfg.Seed, "seed", 0, "random seed for the RND instruction, 0 seeds from the clock")

	if err := flags.Parse(args); err != nil {
		return cfg, &UsageError{flags: flags, msg: err.Error()}
	}

	rest := flags.Args()
	if len(rest) != 1 {
		return cfg, &UsageError{flags: flags, msg: "expected exactly one rom file"}
	}
	cfg.ROM = rest[0]

	if cfg.Trace {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return cfg, &UsageError{flags: flags, msg: err.Error()}
	}

	return cfg, nil
}

// CreateLogger creates a logger writing to output, with the level picked by
// the debug and quiet switches.
func CreateLogger(output io.Writer, debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Output = output
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// ReadROM loads a rom file, refusing files that do not fit in memory.
func ReadROM(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening rom '%s': %w", path, err)
	}
	if info.Size() > int64(chip8.MaxROMSize) {
		return nil, fmt.Errorf("rom '%s' is %d bytes: %w", path, info.Size(), chip8.ErrROMTooLarge)
	}

	rom, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rom '%s': %w", path, err)
	}

	return rom, nil
}
