package driver

import (
	"io"
	"log"

	"github.com/k0kubun/pp/v3"

	"mipsemu/cpu"
)

// StdLogSink routes Runner output through the standard log package,
// matching the teacher's own habit of using log.Printf for assembler
// and linker diagnostics instead of a bespoke logging type.
type StdLogSink struct {
	*log.Logger
}

// NewStdLogSink wraps w in a *log.Logger with no extra prefix or flags,
// since Runner's lines are already self-describing.
func NewStdLogSink(w io.Writer) StdLogSink {
	return StdLogSink{Logger: log.New(w, "", 0)}
}

func (s StdLogSink) Log(line string) { s.Logger.Println(line) }

// PrettyTraceHook returns a cpu.StepHook that pretty-prints the PC and
// register file after every step using pp, the same structured-dump
// library the teacher's debug/objdump.go and linker use for symbol
// tables and object records. It is meant for interactive debugging
// (cmd/mipsrun's step mode), not for Runner's batched ticking, which
// would flood the sink with one dump per instruction.
func PrettyTraceHook(w io.Writer, colorize bool) cpu.StepHook {
	printer := pp.New()
	printer.SetOutput(w)
	printer.SetColoringEnabled(colorize)

	return func(c *cpu.CPU, mask cpu.ExceptionMask) {
		printer.Println(traceFrame{
			PC:        c.PC,
			Cycle:     c.Cycle,
			Exception: mask,
			Halted:    c.Halted,
			Registers: c.Registers,
		})
	}
}

type traceFrame struct {
	PC        uint32
	Cycle     uint64
	Exception cpu.ExceptionMask
	Halted    bool
	Registers [32]uint32
}
