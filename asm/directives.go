package asm

import "log"

// processDirective implements the directive handling of §4.2 pass 1
// step 2. Most directives only reserve space and record raw
// (possibly symbolic) values; resolution against the symbol table
// happens in pass 2 (pass2.go), since forward references are legal.
func (a *assembler) processDirective(name string, args []Token, lineNo int) error {
	switch name {
	case ".text":
		a.segment = SegText
		return nil

	case ".data":
		a.segment = SegData
		return nil

	case ".word":
		return a.reserveData(args, 4, lineNo)

	case ".half":
		return a.reserveData(args, 2, lineNo)

	case ".byte":
		return a.reserveData(args, 1, lineNo)

	case ".ascii":
		return a.reserveAscii(args, lineNo, false)

	case ".asciiz":
		return a.reserveAscii(args, lineNo, true)

	case ".space":
		return a.reserveSpace(args, lineNo)

	case ".align":
		return a.align(args, lineNo)

	default:
		log.Printf("line %d: warning: unknown directive %q ignored", lineNo, name)
		return nil
	}
}

func (a *assembler) reserveData(args []Token, width int, lineNo int) error {
	if len(args) == 0 {
		return lineErr(lineNo, "directive expects at least one value")
	}
	if width > 1 {
		a.dataAddr = alignUp(a.dataAddr, uint32(width))
	}
	addr := a.dataAddr

	values := make([]DataValue, 0, len(args))
	for _, tok := range args {
		dv, err := a.dataValueFromToken(tok, width, lineNo)
		if err != nil {
			return err
		}
		values = append(values, dv)
		a.dataAddr += uint32(width)
	}

	a.lines = append(a.lines, &ParsedLine{
		SourceLine: lineNo,
		Address:    addr,
		Size:       len(args) * width,
		Data:       values,
	})
	return nil
}

func (a *assembler) dataValueFromToken(tok Token, width int, lineNo int) (DataValue, error) {
	switch tok.Kind {
	case TokInteger:
		v, err := parseIntegerToken(tok.Text)
		if err != nil {
			return DataValue{}, lineErr(lineNo, "%v", err)
		}
		return DataValue{Literal: v, WidthBytes: width}, nil
	case TokWord:
		return DataValue{Symbol: tok.Text, WidthBytes: width}, nil
	default:
		return DataValue{}, lineErr(lineNo, "expected a value, got unexpected operand")
	}
}

func (a *assembler) reserveAscii(args []Token, lineNo int, nulTerminated bool) error {
	if len(args) != 1 || args[0].Kind != TokString {
		return lineErr(lineNo, "expected a single string literal")
	}
	s := args[0].Text
	addr := a.dataAddr

	values := make([]DataValue, 0, len(s)+1)
	for i := 0; i < len(s); i++ {
		values = append(values, DataValue{Literal: uint32(s[i]), WidthBytes: 1})
	}
	if nulTerminated {
		values = append(values, DataValue{Literal: 0, WidthBytes: 1})
	}
	a.dataAddr += uint32(len(values))

	a.lines = append(a.lines, &ParsedLine{
		SourceLine: lineNo,
		Address:    addr,
		Size:       len(values),
		Data:       values,
	})
	return nil
}

func (a *assembler) reserveSpace(args []Token, lineNo int) error {
	if len(args) != 1 || args[0].Kind != TokInteger {
		return lineErr(lineNo, ".space expects one integer argument")
	}
	k, err := parseIntegerToken(args[0].Text)
	if err != nil {
		return lineErr(lineNo, "%v", err)
	}
	addr := a.dataAddr
	values := make([]DataValue, k)
	for i := range values {
		values[i] = DataValue{WidthBytes: 1}
	}
	a.dataAddr += k

	a.lines = append(a.lines, &ParsedLine{
		SourceLine: lineNo,
		Address:    addr,
		Size:       int(k),
		Data:       values,
	})
	return nil
}

func (a *assembler) align(args []Token, lineNo int) error {
	if len(args) != 1 || args[0].Kind != TokInteger {
		return lineErr(lineNo, ".align expects one integer argument")
	}
	k, err := parseIntegerToken(args[0].Text)
	if err != nil {
		return lineErr(lineNo, "%v", err)
	}
	boundary := uint32(1) << k

	var addrField *uint32
	if a.segment == SegText {
		if boundary%4 != 0 {
			return lineErr(lineNo, ".align %d is finer than word alignment in .text", k)
		}
		addrField = &a.textAddr
	} else {
		addrField = &a.dataAddr
	}
	start := *addrField
	*addrField = alignUp(start, boundary)
	padding := int(*addrField - start)

	if padding == 0 {
		return nil
	}

	pl := &ParsedLine{SourceLine: lineNo, Address: start, Size: padding}
	if a.segment == SegData {
		// data-segment padding reads back as zero bytes, recorded
		// explicitly so pass 2 writes zeros at the right offset.
		pl.Data = make([]DataValue, padding)
		for i := range pl.Data {
			pl.Data[i].WidthBytes = 1
		}
	}
	// text-segment padding needs no explicit write: TextWords is
	// zero-initialised and text addresses stay a multiple of 4
	// (boundary is always a power of two >= 1 and the text cursor is
	// only ever advanced by 4-byte instructions or by .align itself).
	a.lines = append(a.lines, pl)
	return nil
}
