package asm

import (
	"strings"
)

type assembler struct {
	cfg       Config
	segment   SegmentKind
	textAddr  uint32
	dataAddr  uint32
	symbols   SymbolTable
	lines     []*ParsedLine
}

// Assemble runs the full two-pass assembly of source and returns the
// resulting image, or the first fatal error encountered (§6, §7).
func Assemble(source string, cfg *Config) (*AssemblyImage, error) {
	c := DefaultConfig()
	if cfg != nil {
		if cfg.TextStartAddr != 0 {
			c.TextStartAddr = cfg.TextStartAddr
		}
		if cfg.DataStartAddr != 0 {
			c.DataStartAddr = cfg.DataStartAddr
		}
	}

	a := &assembler{
		cfg:      c,
		segment:  SegText,
		textAddr: c.TextStartAddr,
		dataAddr: c.DataStartAddr,
		symbols:  make(SymbolTable),
	}

	rawLines := strings.Split(source, "\n")
	for i, raw := range rawLines {
		lineNo := i + 1
		toks, err := tokenizeLine(raw, lineNo)
		if err != nil {
			return nil, err
		}
		if len(toks) == 0 {
			continue
		}
		if err := a.processLine(toks, lineNo); err != nil {
			return nil, err
		}
	}

	return a.buildImage()
}

func (a *assembler) processLine(toks []Token, lineNo int) error {
	idx := 0

	if idx < len(toks) && toks[idx].Kind == TokLabel {
		name := toks[idx].Text
		addr := a.currentAddr()
		if _, dup := a.symbols[name]; dup {
			return lineErr(lineNo, "duplicate label definition %q", name)
		}
		a.symbols[name] = addr
		idx++
	}

	if idx >= len(toks) {
		return nil // label-only line: no bytes
	}

	switch toks[idx].Kind {
	case TokSpecial:
		return a.processDirective(toks[idx].Text, toks[idx+1:], lineNo)

	case TokWord:
		return a.processInstruction(toks[idx].Text, toks[idx+1:], lineNo)

	default:
		return lineErr(lineNo, "unexpected token at start of line")
	}
}

func (a *assembler) currentAddr() uint32 {
	if a.segment == SegText {
		return a.textAddr
	}
	return a.dataAddr
}

func (a *assembler) processInstruction(mnemonic string, args []Token, lineNo int) error {
	if a.segment != SegText {
		return lineErr(lineNo, "instruction %q outside .text segment", mnemonic)
	}

	// align, then reserve 4 bytes, per §4.2 pass 1 step 3.
	a.textAddr = alignUp(a.textAddr, 4)
	addr := a.textAddr
	a.textAddr += 4

	pl := &ParsedLine{SourceLine: lineNo, Address: addr, Size: 4}

	word, unresolved, err := a.encodeInstruction(mnemonic, args, addr, lineNo)
	if err != nil {
		return err
	}
	pl.Encoded = word
	pl.Unresolved = unresolved

	a.lines = append(a.lines, pl)
	return nil
}

func alignUp(addr uint32, n uint32) uint32 {
	if rem := addr % n; rem != 0 {
		return addr + (n - rem)
	}
	return addr
}

