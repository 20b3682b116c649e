package asm

import (
	"fmt"
	"log"
)

func (a *assembler) buildImage() (*AssemblyImage, error) {
	img := &AssemblyImage{
		TextStart: a.cfg.TextStartAddr,
		TextSize:  int(a.textAddr - a.cfg.TextStartAddr),
		DataStart: a.cfg.DataStartAddr,
		DataSize:  int(a.dataAddr - a.cfg.DataStartAddr),
		Symbols:   a.symbols,
		SourceMap: make(map[MachineAddress]int),
	}
	img.TextWords = make([]uint32, img.TextSize/4)
	img.DataBytes = make([]byte, img.DataSize)

	for _, pl := range a.lines {
		if pl.Size > 0 {
			img.SourceMap[pl.Address] = pl.SourceLine
		}

		switch {
		case pl.Data != nil:
			if err := a.emitData(img, pl); err != nil {
				return nil, err
			}

		case pl.Encoded != nil:
			img.TextWords[(pl.Address-img.TextStart)/4] = *pl.Encoded

		case pl.Unresolved != nil:
			word, err := a.resolveInstruction(pl.Unresolved, pl.SourceLine)
			if err != nil {
				return nil, err
			}
			img.TextWords[(pl.Address-img.TextStart)/4] = word
		}
	}

	return img, nil
}

func (a *assembler) emitData(img *AssemblyImage, pl *ParsedLine) error {
	off := pl.Address - img.DataStart
	for _, v := range pl.Data {
		val := v.Literal
		if v.Symbol != "" {
			resolved, found := a.symbols[v.Symbol]
			if !found {
				return lineErr(pl.SourceLine, "undefined symbol %q", v.Symbol)
			}
			val = resolved
		}
		switch v.WidthBytes {
		case 1:
			img.DataBytes[off] = byte(val)
			off++
		case 2:
			img.DataBytes[off] = byte(val >> 8)
			img.DataBytes[off+1] = byte(val)
			off += 2
		case 4:
			img.DataBytes[off] = byte(val >> 24)
			img.DataBytes[off+1] = byte(val >> 16)
			img.DataBytes[off+2] = byte(val >> 8)
			img.DataBytes[off+3] = byte(val)
			off += 4
		default:
			return lineErr(pl.SourceLine, "internal: bad data width %d", v.WidthBytes)
		}
	}
	return nil
}

func (a *assembler) resolveInstruction(u *UnresolvedInstruction, lineNo int) (uint32, error) {
	switch u.Kind {
	case UnresolvedJump:
		target, found := a.symbols[u.Label]
		if !found {
			return 0, lineErr(lineNo, "undefined symbol %q", u.Label)
		}
		if target%4 != 0 {
			return 0, lineErr(lineNo, "jump target %q is not word-aligned", u.Label)
		}
		if (target^u.ThisPC)&0xF0000000 != 0 {
			log.Printf("line %d: warning: jump to %q crosses a 256MiB region", lineNo, u.Label)
		}
		return encodeJ(u.Opcode, target>>2), nil

	case UnresolvedBranch:
		target, found := a.symbols[u.Label]
		if !found {
			return 0, lineErr(lineNo, "undefined symbol %q", u.Label)
		}
		offset := (int64(target) - int64(u.ThisPC+4)) >> 2
		if !fitsSigned16(offset) {
			return 0, lineErr(lineNo, "branch offset to %q out of signed 16-bit range", u.Label)
		}
		return encodeI(u.Opcode, u.Rs, u.Rt, uint32(offset)), nil

	case UnresolvedLuiLabel:
		target, found := a.symbols[u.Label]
		if !found {
			return 0, lineErr(lineNo, "undefined symbol %q", u.Label)
		}
		upper := target >> 16
		if target&0x8000 != 0 {
			upper++
		}
		return encodeI(u.Opcode, 0, u.Rt, upper), nil
	}
	return 0, fmt.Errorf("internal: unknown unresolved kind %d", u.Kind)
}
