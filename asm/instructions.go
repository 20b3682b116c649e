package asm

// encodeInstruction turns one instruction line's mnemonic and operand
// tokens into either a fully-encoded word or an UnresolvedInstruction
// stub left for pass 2 (§4.2 pass 1 step 3, §4.2.1).
func (a *assembler) encodeInstruction(mnemonic string, args []Token, addr uint32, lineNo int) (*uint32, *UnresolvedInstruction, error) {
	switch mnemonic {
	case "nop":
		w := uint32(0)
		return &w, nil, nil

	case "move":
		if len(args) != 2 || args[0].Kind != TokRegOpr || args[1].Kind != TokRegOpr {
			return nil, nil, lineErr(lineNo, "move expects $rt,$rs")
		}
		rt, err := resolveRegister(args[0].Text)
		if err != nil {
			return nil, nil, lineErr(lineNo, "%v", err)
		}
		rs, err := resolveRegister(args[1].Text)
		if err != nil {
			return nil, nil, lineErr(lineNo, "%v", err)
		}
		w := encodeR3(0x00, rs, 0, rt, 0x21) // addu $rt,$rs,$zero
		return &w, nil, nil

	case "li", "la":
		return nil, nil, lineErr(lineNo, "%q is not supported; use explicit lui/ori", mnemonic)
	}

	def, found := instrTable[mnemonic]
	if !found {
		return nil, nil, lineErr(lineNo, "unknown instruction %q", mnemonic)
	}

	switch def.Format {
	case fmtR3:
		return a.encodeFmtR3(def, args, lineNo)
	case fmtRShift:
		return a.encodeFmtRShift(def, args, lineNo)
	case fmtRShiftV:
		return a.encodeFmtRShiftV(def, args, lineNo)
	case fmtRJr:
		return a.encodeFmtRJr(def, args, lineNo)
	case fmtRNoArgs:
		return a.encodeFmtRNoArgs(def, args, lineNo)
	case fmtIArith:
		return a.encodeFmtIArith(def, args, lineNo, true)
	case fmtIArithU:
		return a.encodeFmtIArith(def, args, lineNo, false)
	case fmtLui:
		return a.encodeFmtLui(def, args, addr, lineNo)
	case fmtLoadStore:
		return a.encodeFmtLoadStore(def, args, lineNo)
	case fmtBranch:
		return a.encodeFmtBranch(def, args, addr, lineNo)
	case fmtJump:
		return a.encodeFmtJump(def, args, addr, lineNo)
	}
	return nil, nil, lineErr(lineNo, "internal: unhandled format for %q", mnemonic)
}

func expectRegs(args []Token, n int, lineNo int) ([]uint32, error) {
	if len(args) != n {
		return nil, lineErr(lineNo, "expected %d register operand(s), got %d", n, len(args))
	}
	out := make([]uint32, n)
	for i, t := range args {
		if t.Kind != TokRegOpr {
			return nil, lineErr(lineNo, "expected a register operand")
		}
		r, err := resolveRegister(t.Text)
		if err != nil {
			return nil, lineErr(lineNo, "%v", err)
		}
		out[i] = r
	}
	return out, nil
}

func (a *assembler) encodeFmtR3(def instrDef, args []Token, lineNo int) (*uint32, *UnresolvedInstruction, error) {
	regs, err := expectRegs(args, 3, lineNo)
	if err != nil {
		return nil, nil, err
	}
	rd, rs, rt := regs[0], regs[1], regs[2]
	w := encodeR3(def.Opcode, rs, rt, rd, def.Funct)
	return &w, nil, nil
}

func (a *assembler) encodeFmtRShift(def instrDef, args []Token, lineNo int) (*uint32, *UnresolvedInstruction, error) {
	if len(args) != 3 || args[0].Kind != TokRegOpr || args[1].Kind != TokRegOpr || args[2].Kind != TokInteger {
		return nil, nil, lineErr(lineNo, "expected $rd,$rt,shamt")
	}
	rd, err := resolveRegister(args[0].Text)
	if err != nil {
		return nil, nil, lineErr(lineNo, "%v", err)
	}
	rt, err := resolveRegister(args[1].Text)
	if err != nil {
		return nil, nil, lineErr(lineNo, "%v", err)
	}
	shamt, err := parseIntegerToken(args[2].Text)
	if err != nil {
		return nil, nil, lineErr(lineNo, "%v", err)
	}
	if shamt > 31 {
		return nil, nil, lineErr(lineNo, "shift amount %d out of range [0,31]", shamt)
	}
	w := encodeRShift(def.Opcode, rt, rd, shamt, def.Funct)
	return &w, nil, nil
}

func (a *assembler) encodeFmtRShiftV(def instrDef, args []Token, lineNo int) (*uint32, *UnresolvedInstruction, error) {
	regs, err := expectRegs(args, 3, lineNo)
	if err != nil {
		return nil, nil, err
	}
	rd, rt, rs := regs[0], regs[1], regs[2]
	w := encodeR3(def.Opcode, rs, rt, rd, def.Funct)
	return &w, nil, nil
}

func (a *assembler) encodeFmtRJr(def instrDef, args []Token, lineNo int) (*uint32, *UnresolvedInstruction, error) {
	regs, err := expectRegs(args, 1, lineNo)
	if err != nil {
		return nil, nil, err
	}
	w := encodeR3(def.Opcode, regs[0], 0, 0, def.Funct)
	return &w, nil, nil
}

func (a *assembler) encodeFmtRNoArgs(def instrDef, args []Token, lineNo int) (*uint32, *UnresolvedInstruction, error) {
	if len(args) != 0 {
		return nil, nil, lineErr(lineNo, "expected no operands")
	}
	w := encodeR3(def.Opcode, 0, 0, 0, def.Funct)
	return &w, nil, nil
}

func (a *assembler) encodeFmtIArith(def instrDef, args []Token, lineNo int, signed bool) (*uint32, *UnresolvedInstruction, error) {
	if len(args) != 3 || args[0].Kind != TokRegOpr || args[1].Kind != TokRegOpr || args[2].Kind != TokInteger {
		return nil, nil, lineErr(lineNo, "expected $rt,$rs,imm")
	}
	rt, err := resolveRegister(args[0].Text)
	if err != nil {
		return nil, nil, lineErr(lineNo, "%v", err)
	}
	rs, err := resolveRegister(args[1].Text)
	if err != nil {
		return nil, nil, lineErr(lineNo, "%v", err)
	}
	imm, err := parseIntegerToken(args[2].Text)
	if err != nil {
		return nil, nil, lineErr(lineNo, "%v", err)
	}
	if signed {
		if !fitsSigned16(int64(int32(imm))) {
			return nil, nil, lineErr(lineNo, "immediate %d out of signed 16-bit range", int32(imm))
		}
	} else if imm > 0xFFFF {
		return nil, nil, lineErr(lineNo, "immediate %d out of range 0..65535", imm)
	}
	w := encodeI(def.Opcode, rs, rt, imm)
	return &w, nil, nil
}

func (a *assembler) encodeFmtLui(def instrDef, args []Token, addr uint32, lineNo int) (*uint32, *UnresolvedInstruction, error) {
	if len(args) != 2 || args[0].Kind != TokRegOpr {
		return nil, nil, lineErr(lineNo, "expected $rt,imm-or-label")
	}
	rt, err := resolveRegister(args[0].Text)
	if err != nil {
		return nil, nil, lineErr(lineNo, "%v", err)
	}
	switch args[1].Kind {
	case TokInteger:
		imm, err := parseIntegerToken(args[1].Text)
		if err != nil {
			return nil, nil, lineErr(lineNo, "%v", err)
		}
		w := encodeI(def.Opcode, 0, rt, imm)
		return &w, nil, nil
	case TokWord:
		return nil, &UnresolvedInstruction{
			Kind: UnresolvedLuiLabel, Opcode: def.Opcode, Rt: rt,
			Label: args[1].Text, ThisPC: addr,
		}, nil
	default:
		return nil, nil, lineErr(lineNo, "expected an immediate or a label")
	}
}

func (a *assembler) encodeFmtLoadStore(def instrDef, args []Token, lineNo int) (*uint32, *UnresolvedInstruction, error) {
	if len(args) != 2 || args[0].Kind != TokRegOpr || args[1].Kind != TokComOpr {
		return nil, nil, lineErr(lineNo, "expected $rt,offset($rs)")
	}
	rt, err := resolveRegister(args[0].Text)
	if err != nil {
		return nil, nil, lineErr(lineNo, "%v", err)
	}
	rs, err := resolveRegister(args[1].Reg)
	if err != nil {
		return nil, nil, lineErr(lineNo, "%v", err)
	}
	off := args[1].Offset
	if !fitsSigned16(int64(off)) {
		return nil, nil, lineErr(lineNo, "offset %d out of signed 16-bit range", off)
	}
	w := encodeI(def.Opcode, rs, rt, uint32(int32(off)))
	return &w, nil, nil
}

func (a *assembler) encodeFmtBranch(def instrDef, args []Token, addr uint32, lineNo int) (*uint32, *UnresolvedInstruction, error) {
	if len(args) != 3 || args[0].Kind != TokRegOpr || args[1].Kind != TokRegOpr {
		return nil, nil, lineErr(lineNo, "expected $rs,$rt,label")
	}
	rs, err := resolveRegister(args[0].Text)
	if err != nil {
		return nil, nil, lineErr(lineNo, "%v", err)
	}
	rt, err := resolveRegister(args[1].Text)
	if err != nil {
		return nil, nil, lineErr(lineNo, "%v", err)
	}
	if args[2].Kind != TokWord {
		return nil, nil, lineErr(lineNo, "expected a branch target label")
	}
	return nil, &UnresolvedInstruction{
		Kind: UnresolvedBranch, Opcode: def.Opcode, Rs: rs, Rt: rt,
		Label: args[2].Text, ThisPC: addr,
	}, nil
}

func (a *assembler) encodeFmtJump(def instrDef, args []Token, addr uint32, lineNo int) (*uint32, *UnresolvedInstruction, error) {
	if len(args) != 1 {
		return nil, nil, lineErr(lineNo, "expected a jump target")
	}
	if args[0].Kind == TokWord {
		return nil, &UnresolvedInstruction{
			Kind: UnresolvedJump, Opcode: def.Opcode, Label: args[0].Text, ThisPC: addr,
		}, nil
	}
	if args[0].Kind == TokInteger {
		target, err := parseIntegerToken(args[0].Text)
		if err != nil {
			return nil, nil, lineErr(lineNo, "%v", err)
		}
		if target%4 != 0 {
			return nil, nil, lineErr(lineNo, "jump target not word-aligned")
		}
		w := encodeJ(def.Opcode, target>>2)
		return &w, nil, nil
	}
	return nil, nil, lineErr(lineNo, "expected a jump target")
}
