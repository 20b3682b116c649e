// End-to-end test chaining the three packages together: assemble,
// load, run. This is the one place that exercises pass 2's branch-
// offset computation (relative to this_pc+4) and Step's runtime branch
// computation (relative to pc, the documented quirk in §9) together,
// where a mismatch between the two conventions would otherwise go
// undetected by either package's own tests in isolation.
package mipsemu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mipsemu/asm"
	"mipsemu/cpu"
	"mipsemu/mem"
)

func TestSumOneToTenEndToEnd(t *testing.T) {
	src := `
.text
	lui $t0, 0
	ori $t0, $t0, 0
	lui $t1, 0
	ori $t1, $t1, 1
	lui $t2, 0
	ori $t2, $t2, 10
L:
	add $t0, $t0, $t1
	addi $t1, $t1, 1
	bne $t1, $t2, L
	syscall
`
	img, err := asm.Assemble(src, nil)
	require.NoError(t, err)

	m := mem.New()
	m.LoadImage(img)
	c := cpu.New(m)

	var mask cpu.ExceptionMask
	for i := 0; i < 1000 && !c.Halted; i++ {
		mask = c.Step()
	}

	require.True(t, c.Halted, "program did not halt within the step budget")
	assert.EqualValues(t, 45, c.Registers[8])
	assert.NotZero(t, mask&cpu.Syscall)
}
