package asm

import (
	"fmt"
	"strconv"
	"strings"
)

// registerNumbers maps every symbolic MIPS register name to its
// number. Numeric names ($0..$31) are handled separately in
// resolveRegister.
var registerNumbers = map[string]uint32{
	"zero": 0, "$zero": 0, "$at": 1,
	"$v0": 2, "$v1": 3,
	"$a0": 4, "$a1": 5, "$a2": 6, "$a3": 7,
	"$t0": 8, "$t1": 9, "$t2": 10, "$t3": 11,
	"$t4": 12, "$t5": 13, "$t6": 14, "$t7": 15,
	"$s0": 16, "$s1": 17, "$s2": 18, "$s3": 19,
	"$s4": 20, "$s5": 21, "$s6": 22, "$s7": 23,
	"$t8": 24, "$t9": 25,
	"$k0": 26, "$k1": 27,
	"$gp": 28, "$sp": 29, "$fp": 30, "$ra": 31,
}

// resolveRegister turns a lowercased register token (as produced by
// the tokeniser) into its register number 0..31.
func resolveRegister(name string) (uint32, error) {
	if n, ok := registerNumbers[name]; ok {
		return n, nil
	}
	if strings.HasPrefix(name, "$") {
		if v, err := strconv.ParseUint(name[1:], 10, 8); err == nil && v < 32 {
			return uint32(v), nil
		}
	}
	return 0, fmt.Errorf("invalid register name %q", name)
}
