package asm

import "fmt"

var regNames = [32]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

func regName(n uint32) string {
	if n < 32 {
		return "$" + regNames[n]
	}
	return fmt.Sprintf("$%d", n)
}

// Disassemble decodes a single instruction word back into mnemonic
// text. It is the inverse of the encoding table in §4.2.1 and is used
// both by cmd/mipsdump and by the round-trip test in asm_test.go that
// exercises invariant #5 from §8.
func Disassemble(word uint32) (string, error) {
	opcode := word >> 26
	rs := (word >> 21) & 0x1F
	rt := (word >> 16) & 0x1F
	rd := (word >> 11) & 0x1F
	shamt := (word >> 6) & 0x1F
	funct := word & 0x3F
	imm := word & 0xFFFF
	target := word & 0x03FFFFFF

	name, def, ok := decodeInstrFromTable(word)
	if !ok {
		return "", fmt.Errorf("unknown encoding %#08x (opcode=%#x funct=%#x)", word, opcode, funct)
	}

	switch def.Format {
	case fmtR3:
		return fmt.Sprintf("%s %s,%s,%s", name, regName(rd), regName(rs), regName(rt)), nil
	case fmtRShift:
		return fmt.Sprintf("%s %s,%s,%d", name, regName(rd), regName(rt), shamt), nil
	case fmtRShiftV:
		return fmt.Sprintf("%s %s,%s,%s", name, regName(rd), regName(rt), regName(rs)), nil
	case fmtRJr:
		return fmt.Sprintf("%s %s", name, regName(rs)), nil
	case fmtRNoArgs:
		return name, nil
	case fmtIArith, fmtIArithU:
		return fmt.Sprintf("%s %s,%s,%d", name, regName(rt), regName(rs), int16(imm)), nil
	case fmtLui:
		return fmt.Sprintf("%s %s,%#x", name, regName(rt), imm), nil
	case fmtLoadStore:
		return fmt.Sprintf("%s %s,%d(%s)", name, regName(rt), int16(imm), regName(rs)), nil
	case fmtBranch:
		return fmt.Sprintf("%s %s,%s,%d", name, regName(rs), regName(rt), int16(imm)), nil
	case fmtJump:
		return fmt.Sprintf("%s %#x", name, target<<2), nil
	}
	return "", fmt.Errorf("internal: unhandled format for %q", name)
}
