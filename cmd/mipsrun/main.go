// Command mipsrun assembles a source file, loads it into memory, and
// executes it: either continuously through a driver.Runner, or one
// instruction at a time in an interactive raw-terminal step mode.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"mipsemu/asm"
	"mipsemu/cpu"
	"mipsemu/driver"
	"mipsemu/mem"
)

var (
	interactive = flag.Bool("step", false, "single-step interactively, one key press per instruction")
	rateHz      = flag.Int("rate", driver.DefaultRateHz, "steps-per-second target in continuous mode")
	pcLimit     = flag.Uint("pc-limit", 0, "raise PC_LIMIT once PC reaches this address (0 = unlimited)")
)

const usage = "mipsrun [-step] [-rate hz] [-pc-limit addr] file.s"

func init() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, usage)
		flag.PrintDefaults()
	}
}

func run() int {
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		flag.Usage()
		return 1
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	img, err := asm.Assemble(string(source), nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	m := mem.New()
	m.LoadImage(img)
	c := cpu.New(m)
	c.PCLimit = uint32(*pcLimit)

	if *interactive {
		return runInteractive(c)
	}
	return runContinuous(c)
}

// traceWriter wraps stderr in go-colorable only when it's a real
// terminal, per go-isatty, so piping mipsrun's trace into a file or CI
// log doesn't embed raw ANSI escapes.
func traceWriter() io.Writer {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return colorable.NewColorableStderr()
	}
	return os.Stderr
}

func runContinuous(c *cpu.CPU) int {
	sink := driver.NewStdLogSink(os.Stderr)
	r := driver.NewRunner(c, sink)
	r.SetRateHz(*rateHz)
	r.Start()
	r.Wait()
	printRegisters(os.Stdout, c)
	return 0
}

// runInteractive puts stdin in raw mode and advances the CPU one
// instruction per key press, pretty-printing the resulting register
// frame after each step. q or Ctrl-C exits the loop.
func runInteractive(c *cpu.CPU) int {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer term.Restore(fd, oldState)

	c.Hook = driver.PrettyTraceHook(traceWriter(), isatty.IsTerminal(os.Stderr.Fd()))

	buf := make([]byte, 1)
	for !c.Halted {
		n, err := unix.Read(fd, buf)
		if err != nil || n == 0 {
			continue
		}
		switch buf[0] {
		case 'q', 3: // q or Ctrl-C
			return 0
		}
		c.Step()
	}
	return 0
}

func printRegisters(out io.Writer, c *cpu.CPU) {
	fmt.Fprintf(out, "pc=%#08x cycle=%d halted=%v\n", c.PC, c.Cycle, c.Halted)
	for i := 0; i < 32; i += 4 {
		fmt.Fprintf(out, "$%-2d=%#08x $%-2d=%#08x $%-2d=%#08x $%-2d=%#08x\n",
			i, c.Registers[i], i+1, c.Registers[i+1], i+2, c.Registers[i+2], i+3, c.Registers[i+3])
	}
}

func main() {
	os.Exit(run())
}
