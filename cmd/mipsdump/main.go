// Command mipsdump assembles a source file and pretty-prints its
// image: the symbol table, and the text segment disassembled back
// into mnemonic form.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/k0kubun/pp/v3"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"mipsemu/asm"
)

type dumpLine struct {
	Addr uint32
	Word uint32
	Text string
}

func dump(w io.Writer, img *asm.AssemblyImage) {
	printer := pp.New()
	printer.SetOutput(w)
	printer.SetColoringEnabled(isatty.IsTerminal(os.Stdout.Fd()))

	printer.Println(img.Symbols)

	lines := make([]dumpLine, len(img.TextWords))
	for i, word := range img.TextWords {
		addr := img.TextStart + uint32(i*4)
		text, err := asm.Disassemble(word)
		if err != nil {
			text = fmt.Sprintf("<%v>", err)
		}
		lines[i] = dumpLine{Addr: addr, Word: word, Text: text}
	}
	printer.Println(lines)
}

func run() int {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "mipsdump file.s")
		return 1
	}

	source, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	img, err := asm.Assemble(string(source), nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	out := io.Writer(os.Stdout)
	if isatty.IsTerminal(os.Stdout.Fd()) {
		out = colorable.NewColorableStdout()
	}
	dump(out, img)
	return 0
}

func main() {
	os.Exit(run())
}
