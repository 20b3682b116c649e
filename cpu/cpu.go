// Package cpu implements the single-cycle MIPS32 processor: decode,
// the 32-register file, arithmetic with trap-on-overflow semantics,
// branch/jump handling, and the exception taxonomy (§4.3).
package cpu

import "mipsemu/mem"

// ExceptionMask is an OR-able bitset of the exceptions a single Step
// may raise (§4.3).
type ExceptionMask uint32

const (
	None               ExceptionMask = 0
	InvalidInst        ExceptionMask = 1 << 0
	IntOverflow        ExceptionMask = 1 << 1
	PCAlign            ExceptionMask = 1 << 2
	DataAlign          ExceptionMask = 1 << 3
	BranchInDelaySlot  ExceptionMask = 1 << 4
	Break              ExceptionMask = 1 << 5
	PCLimit            ExceptionMask = 1 << 6
	Syscall            ExceptionMask = 1 << 7
)

const (
	resetPC = 0x00040000
	resetGP = 0x10008000
	resetSP = 0x7FFFFFFC
)

// StepHook is invoked exactly once per Step call, after the
// instruction has executed, with the exception mask it raised. It
// exists so a driver can observe exceptions and halts without the CPU
// depending on any particular event-bus implementation (§9).
type StepHook func(c *CPU, mask ExceptionMask)

// CPU holds the architectural state described in §3: PC, the 32
// general-purpose registers, the cycle counter, and the halted flag.
type CPU struct {
	Mem *mem.Memory

	PC        uint32
	Registers [32]uint32
	Cycle     uint64
	Halted    bool

	// BranchTarget is declared, per the data model in §3, but never
	// written: delay-slot accounting is intentionally incomplete,
	// matching the observable behaviour of the system this emulator
	// reproduces (see §9's open question on BRANCH_IN_DELAY_SLOT).
	BranchTarget *uint32

	// PCLimit, if nonzero, is the address at or beyond which Step
	// refuses to fetch and instead raises PCLimit — a backstop against
	// runaway programs for a driver that doesn't want to poll PC
	// itself. Zero means unlimited.
	PCLimit uint32

	Hook StepHook
}

// New constructs a CPU bound to mem and resets it to its initial
// architectural state.
func New(m *mem.Memory) *CPU {
	c := &CPU{Mem: m}
	c.Reset()
	return c
}

// Reset restores registers, PC, the cycle counter, and the halted
// flag to their initial values (§4.3, "Reset"). It does not recreate
// or clear the backing Memory's pages.
func (c *CPU) Reset() {
	for i := range c.Registers {
		c.Registers[i] = 0
	}
	c.Registers[28] = resetGP
	c.Registers[29] = resetSP
	c.PC = resetPC
	c.Cycle = 0
	c.Halted = false
}
