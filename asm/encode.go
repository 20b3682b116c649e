package asm

// instrFormat tags how a mnemonic's operands map onto a 32-bit word
// (§4.2.1).
type instrFormat uint8

const (
	fmtR3         instrFormat = iota // $rd,$rs,$rt               (add, sub, and, ...)
	fmtRShift                        // $rd,$rt,shamt             (sll, srl, sra)
	fmtRShiftV                       // $rd,$rt,$rs               (sllv, srlv, srav)
	fmtRJr                           // $rs                       (jr)
	fmtRNoArgs                       // (syscall, break)
	fmtIArith                        // $rt,$rs,imm (signed)      (addi, slti, ...)
	fmtIArithU                       // $rt,$rs,imm (zero-ext)    (andi, ori, xori)
	fmtLui                           // $rt,imm-or-label
	fmtLoadStore                     // $rt,offset($rs)
	fmtBranch                        // $rs,$rt,label
	fmtJump                          // target/label
)

// instrDef is one row of the encoding table in §4.2.1.
type instrDef struct {
	Format instrFormat
	Opcode uint32
	Funct  uint32
}

// instrTable is the mnemonic -> encoding rule lookup. subu (funct
// 0x23) is included per the REDESIGN FLAG in §9 — execution already
// handles it correctly, only the table was missing it.
var instrTable = map[string]instrDef{
	"add":  {fmtR3, 0x00, 0x20},
	"addu": {fmtR3, 0x00, 0x21},
	"sub":  {fmtR3, 0x00, 0x22},
	"subu": {fmtR3, 0x00, 0x23},
	"and":  {fmtR3, 0x00, 0x24},
	"or":   {fmtR3, 0x00, 0x25},
	"xor":  {fmtR3, 0x00, 0x26},
	"nor":  {fmtR3, 0x00, 0x27},
	"slt":  {fmtR3, 0x00, 0x2A},
	"sltu": {fmtR3, 0x00, 0x2B},

	"sll": {fmtRShift, 0x00, 0x00},
	"srl": {fmtRShift, 0x00, 0x02},
	"sra": {fmtRShift, 0x00, 0x03},

	"sllv": {fmtRShiftV, 0x00, 0x04},
	"srlv": {fmtRShiftV, 0x00, 0x06},
	"srav": {fmtRShiftV, 0x00, 0x07},

	"jr": {fmtRJr, 0x00, 0x08},

	"syscall": {fmtRNoArgs, 0x00, 0x0C},
	"break":   {fmtRNoArgs, 0x00, 0x0D},

	"addi":  {fmtIArith, 0x08, 0},
	"addiu": {fmtIArith, 0x09, 0},
	"slti":  {fmtIArith, 0x0A, 0},
	"sltiu": {fmtIArith, 0x0B, 0},

	"andi": {fmtIArithU, 0x0C, 0},
	"ori":  {fmtIArithU, 0x0D, 0},
	"xori": {fmtIArithU, 0x0E, 0},

	"lui": {fmtLui, 0x0F, 0},

	"lb":  {fmtLoadStore, 0x20, 0},
	"lh":  {fmtLoadStore, 0x21, 0},
	"lw":  {fmtLoadStore, 0x23, 0},
	"lbu": {fmtLoadStore, 0x24, 0},
	"lhu": {fmtLoadStore, 0x25, 0},
	"sb":  {fmtLoadStore, 0x28, 0},
	"sh":  {fmtLoadStore, 0x29, 0},
	"sw":  {fmtLoadStore, 0x2B, 0},

	"beq": {fmtBranch, 0x04, 0},
	"bne": {fmtBranch, 0x05, 0},

	"j":   {fmtJump, 0x02, 0},
	"jal": {fmtJump, 0x03, 0},
}

func encodeR3(opcode, rs, rt, rd, funct uint32) uint32 {
	return opcode<<26 | rs<<21 | rt<<16 | rd<<11 | funct
}

func encodeRShift(opcode, rt, rd, shamt, funct uint32) uint32 {
	return opcode<<26 | rt<<16 | rd<<11 | (shamt&0x1F)<<6 | funct
}

func encodeI(opcode, rs, rt, imm uint32) uint32 {
	return opcode<<26 | rs<<21 | rt<<16 | (imm & 0xFFFF)
}

func encodeJ(opcode, target uint32) uint32 {
	return opcode<<26 | (target & 0x03FFFFFF)
}

func fitsSigned16(v int64) bool {
	return v >= -32768 && v <= 32767
}

func decodeInstrFromTable(word uint32) (mnemonic string, def instrDef, ok bool) {
	opcode := word >> 26
	funct := word & 0x3F
	for name, d := range instrTable {
		if d.Opcode != opcode {
			continue
		}
		switch d.Format {
		case fmtR3, fmtRShift, fmtRShiftV, fmtRJr, fmtRNoArgs:
			if d.Funct == funct {
				return name, d, true
			}
		default:
			return name, d, true
		}
	}
	return "", instrDef{}, false
}
