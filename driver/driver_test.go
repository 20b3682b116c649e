package driver_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mipsemu/cpu"
	"mipsemu/driver"
	"mipsemu/mem"
)

type captureSink struct {
	mu    sync.Mutex
	lines []string
}

func (c *captureSink) Log(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, line)
}

func (c *captureSink) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

func encodeR(opcode, rs, rt, rd, shamt, funct uint32) uint32 {
	return opcode<<26 | rs<<21 | rt<<16 | rd<<11 | shamt<<6 | funct
}

func TestRunnerStopsOnHalt(t *testing.T) {
	m := mem.New()
	c := cpu.New(m)
	m.SetWord(c.PC, encodeR(0x00, 0, 0, 0, 0, 0x0C)) // syscall

	sink := &captureSink{}
	r := driver.NewRunner(c, sink)
	r.SetRateHz(1000)

	r.Start()
	require.Eventually(t, func() bool { return !r.Running() }, time.Second, time.Millisecond)

	assert.True(t, c.Halted)
	lines := sink.snapshot()
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[len(lines)-1], "halted")
}

func TestRunnerStopsOnException(t *testing.T) {
	m := mem.New()
	c := cpu.New(m)
	m.SetWord(c.PC, uint32(0x3F)<<26) // invalid opcode

	sink := &captureSink{}
	r := driver.NewRunner(c, sink)
	r.SetRateHz(1000)

	r.Start()
	require.Eventually(t, func() bool { return !r.Running() }, time.Second, time.Millisecond)

	lines := sink.snapshot()
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "exception=")
}

func TestExternalStopHalfwayThroughALongProgram(t *testing.T) {
	m := mem.New()
	c := cpu.New(m)
	// an infinite loop: j to self, never halts or excepts on its own.
	addr := c.PC
	m.SetWord(addr, uint32(0x02)<<26|(addr>>2)&0x03FFFFFF)

	sink := &captureSink{}
	r := driver.NewRunner(c, sink)
	r.SetRateHz(1000)

	r.Start()
	time.Sleep(20 * time.Millisecond)
	assert.True(t, r.Running())

	r.Stop()
	assert.False(t, r.Running())
	lines := sink.snapshot()
	require.NotEmpty(t, lines)
	assert.Equal(t, "stopped", lines[len(lines)-1])
}

func TestStopOnAlreadyStoppedRunnerIsANoOp(t *testing.T) {
	m := mem.New()
	c := cpu.New(m)
	sink := &captureSink{}
	r := driver.NewRunner(c, sink)
	r.Stop() // never started
	assert.False(t, r.Running())
}
