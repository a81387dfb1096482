package headless

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chip8vm/chip8"
	"chip8vm/chip8/display"
)

func TestRunCycles(t *testing.T) {
	machine, err := chip8.New([]byte{0x60, 0x0A, 0x61, 0x05, 0x80, 0x14, 0x12, 0x06})
	require.NoError(t, err)

	result, err := Run(context.Background(), machine, 10, false, log.NewTestLogger(t))
	require.NoError(t, err)

	assert.Equal(t, 10, result.Cycles)
	assert.Nil(t, result.Halt)
	assert.Equal(t, uint8(15), machine.State().V[0])
}

func TestRunUntilHalt(t *testing.T) {
	machine, err := chip8.New([]byte{0x60, 0x01, 0x00, 0xEE})
	require.NoError(t, err)

	result, err := Run(context.Background(), machine, 0, false, log.NewTestLogger(t))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Cycles)
	require.NotNil(t, result.Halt)
	assert.True(t, errors.Is(result.Halt, chip8.ErrStackUnderflow))
	assert.Equal(t, uint16(0x202), result.Halt.State.PC)
}

func TestRunCancelled(t *testing.T) {
	machine, err := chip8.New([]byte{0x12, 0x00})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Run(ctx, machine, 0, false, log.NewTestLogger(t))

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, result.Cycles)
}

func TestRunTrace(t *testing.T) {
	machine, err := chip8.New([]byte{0x60, 0x0A})
	require.NoError(t, err)

	var out bytes.Buffer
	logger := log.NewWithConfig(log.Config{Level: log.DebugLevel, Output: &out})

	_, err = Run(context.Background(), machine, 1, true, logger)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "step")
	assert.Contains(t, out.String(), `"pc":"0x200"`)
	assert.Contains(t, out.String(), `"opcode":"0x0000"`)
}

func TestRunDebugWithoutTrace(t *testing.T) {
	machine, err := chip8.New([]byte{0x60, 0x0A})
	require.NoError(t, err)

	var out bytes.Buffer
	logger := log.NewWithConfig(log.Config{Level: log.DebugLevel, Output: &out})

	_, err = Run(context.Background(), machine, 1, false, logger)
	require.NoError(t, err)

	assert.Empty(t, out.String())
}

func TestRunTraceNeedsDebugLevel(t *testing.T) {
	machine, err := chip8.New([]byte{0x60, 0x0A})
	require.NoError(t, err)

	var out bytes.Buffer
	logger := log.NewWithConfig(log.Config{Level: log.InfoLevel, Output: &out})

	_, err = Run(context.Background(), machine, 1, true, logger)
	require.NoError(t, err)

	assert.Empty(t, out.String())
}

func TestRender(t *testing.T) {
	machine, err := chip8.New([]byte{0xA0, 0x50, 0xD0, 0x05}) // draw font digit 0
	require.NoError(t, err)

	_, err = Run(context.Background(), machine, 2, false, log.NewTestLogger(t))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Render(machine.Framebuffer(), &out))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, display.Height)
	assert.Len(t, lines[0], display.Width)
	assert.True(t, strings.HasPrefix(lines[0], "####."))
	assert.True(t, strings.HasPrefix(lines[1], "#..#."))
	assert.True(t, strings.HasPrefix(lines[4], "####."))
	assert.Equal(t, strings.Repeat(".", display.Width), lines[5])
}

func TestRenderRejectsShortBuffer(t *testing.T) {
	assert.Error(t, Render(make([]uint32, 10), io.Discard))
}
