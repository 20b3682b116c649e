package asm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mipsemu/asm"
)

func TestAssembleSumOneToTenLayout(t *testing.T) {
	src := `
.text
start:
	addiu $t0, $zero, 0
	addiu $t1, $zero, 1
	addiu $t2, $zero, 11
loop:
	addu  $t0, $t0, $t1
	addiu $t1, $t1, 1
	bne   $t1, $t2, loop
	syscall
`
	img, err := asm.Assemble(src, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 0x00040000, img.TextStart)
	assert.Len(t, img.TextWords, 7)
	assert.Equal(t, img.TextStart, img.Symbols["start"])
	assert.Equal(t, img.TextStart+12, img.Symbols["loop"])
}

func TestWordDirectiveIsBigEndian(t *testing.T) {
	src := `
.data
value: .word 0x11223344
`
	img, err := asm.Assemble(src, nil)
	require.NoError(t, err)
	require.Len(t, img.DataBytes, 4)
	assert.Equal(t, []byte{0x11, 0x22, 0x33, 0x44}, img.DataBytes)
}

func TestJumpEncodingShiftsTargetRightByTwo(t *testing.T) {
	src := `
.text
	j target
target:
	syscall
`
	img, err := asm.Assemble(src, nil)
	require.NoError(t, err)
	require.Len(t, img.TextWords, 2)
	target := img.Symbols["target"]
	want := uint32(0x02)<<26 | (target >> 2)
	assert.Equal(t, want, img.TextWords[0])
}

func TestLuiLabelFixupRoundsUpOnNegativeLowHalf(t *testing.T) {
	// choose a data label address whose low 16 bits have the high bit
	// set (.space reserves in the data segment), forcing the +1 carry
	// into the upper half (§4.2 pass 2).
	src := `
.data
	.space 0x8000
far:	.word 0
.text
	lui $t0, far
`
	img, err := asm.Assemble(src, nil)
	require.NoError(t, err)
	target := img.Symbols["far"]
	require.NotZero(t, target&0x8000)
	upper := (target >> 16) + 1
	want := uint32(0x0F)<<26 | 8<<16 | upper
	assert.Equal(t, want, img.TextWords[0])
}

func TestDuplicateLabelIsAFatalError(t *testing.T) {
	src := `
.text
again:
	syscall
again:
	syscall
`
	_, err := asm.Assemble(src, nil)
	require.Error(t, err)
}

func TestBranchOutOfRangeIsAFatalError(t *testing.T) {
	var src string
	src += ".text\n"
	src += "near:\n"
	src += "\tbeq $zero, $zero, far\n"
	for i := 0; i < 40000; i++ {
		src += "\tnop\n"
	}
	src += "far:\n\tsyscall\n"

	_, err := asm.Assemble(src, nil)
	require.Error(t, err)
}

func TestUndefinedSymbolIsAFatalError(t *testing.T) {
	src := `
.text
	j nowhere
`
	_, err := asm.Assemble(src, nil)
	require.Error(t, err)
}

func TestLiAndLaAreRejected(t *testing.T) {
	_, err := asm.Assemble(".text\n\tli $t0, 5\n", nil)
	require.Error(t, err)
	_, err = asm.Assemble(".text\n\tla $t0, label\n", nil)
	require.Error(t, err)
}

func TestAssembleDisassembleRoundTrip(t *testing.T) {
	src := `
.text
start:
	addu  $t0, $t1, $t2
	addiu $t0, $t1, -5
	lui   $t0, 0x1234
	sw    $t0, 8($t1)
	beq   $t0, $t1, start
	j     start
`
	img, err := asm.Assemble(src, nil)
	require.NoError(t, err)

	want := []string{
		"addu $t0,$t1,$t2",
		"addiu $t0,$t1,-5",
		"lui $t0,0x1234",
		"sw $t0,8($t1)",
		"beq $t0,$t1,-5",
		"j 0x40000",
	}
	for i, w := range img.TextWords {
		got, err := asm.Disassemble(w)
		require.NoError(t, err)
		assert.Equal(t, want[i], got)
	}
}

func TestMoveIsAddUWithZero(t *testing.T) {
	img, err := asm.Assemble(".text\n\tmove $t0, $t1\n", nil)
	require.NoError(t, err)
	got, err := asm.Disassemble(img.TextWords[0])
	require.NoError(t, err)
	assert.Equal(t, "addu $t0,$t1,$zero", got)
}

func TestAsciizNulTerminates(t *testing.T) {
	img, err := asm.Assemble(".data\n\tmsg: .asciiz \"hi\"\n", nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{'h', 'i', 0}, img.DataBytes)
}

func TestAlignPadsTextToWordBoundary(t *testing.T) {
	// a text-segment .align only ever pads to a multiple of 4 in this
	// instruction set, so this mostly checks the directive doesn't
	// corrupt the following instruction's encoding.
	src := `
.text
	nop
	.align 2
after:
	syscall
`
	img, err := asm.Assemble(src, nil)
	require.NoError(t, err)
	assert.Equal(t, img.TextStart+4, img.Symbols["after"])
}

func TestCustomConfigOverridesSegmentBases(t *testing.T) {
	cfg := &asm.Config{TextStartAddr: 0x1000, DataStartAddr: 0x2000}
	img, err := asm.Assemble(".text\n\tsyscall\n.data\n\t.word 1\n", cfg)
	require.NoError(t, err)
	assert.EqualValues(t, 0x1000, img.TextStart)
	assert.EqualValues(t, 0x2000, img.DataStart)
}
