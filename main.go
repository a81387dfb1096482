// Package main implements a CHIP-8 emulator.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"

	"chip8vm/chip8"
	"chip8vm/config"
	"chip8vm/emulator"
	"chip8vm/headless"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	cfg, err := config.ParseFlags(os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "chip8vm version: %s\n\n", buildinfo.Version(version, commit, date))
			usageErr.ShowUsage()
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(os.Stderr, cfg.Debug, cfg.Quiet)
	logger.Debug("Starting", log.String("version", buildinfo.Version(version, commit, date)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		stop()
		logger.Fatal("Emulation failed", log.Err(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	rom, err := config.ReadROM(cfg.ROM)
	if err != nil {
		return err
	}

	var opts []chip8.Option
	if cfg.Seed != 0 {
		opts = append(opts, chip8.WithRandom(rand.New(rand.NewSource(cfg.Seed))))
	}

	machine, err := chip8.New(rom, opts...)
	if err != nil {
		return fmt.Errorf("failed to init chip8: %w", err)
	}

	logger.Info("Loaded rom", log.String("file", cfg.ROM), log.Int("size", len(rom)))

	if !cfg.Headless {
		return emulator.Run(ctx, cfg, machine, logger)
	}

	result, err := headless.Run(ctx, machine, cfg.Cycles, cfg.Trace, logger)
	if err != nil {
		return err
	}

	if err := headless.Render(machine.Framebuffer(), os.Stdout); err != nil {
		return fmt.Errorf("failed to render screen: %w", err)
	}

	if result.Halt != nil {
		fmt.Fprintln(os.Stderr, result.Halt.State)
		return result.Halt
	}

	logger.Info("Finished", log.Int("cycles", result.Cycles))
	return nil
}
