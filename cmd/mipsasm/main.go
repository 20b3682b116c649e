// Command mipsasm assembles a MIPS32 source file and prints the
// resulting image to stdout: the text segment one hex word per line and
// the data segment up to four hex bytes per line, each line prefixed by
// its address.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"mipsemu/asm"
)

var (
	textStart = flag.Uint("text-start", 0, "override the text segment base address (0 = default)")
	dataStart = flag.Uint("data-start", 0, "override the data segment base address (0 = default)")
)

const usage = "mipsasm [-text-start addr] [-data-start addr] [file.s]"

func init() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, usage)
		flag.PrintDefaults()
	}
}

func run() int {
	flag.Parse()

	var r io.Reader = os.Stdin
	if args := flag.Args(); len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer f.Close()
		r = f
	} else if len(args) > 1 {
		fmt.Fprintln(os.Stderr, usage)
		return 1
	}

	source, err := io.ReadAll(r)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	cfg := &asm.Config{
		TextStartAddr: uint32(*textStart),
		DataStartAddr: uint32(*dataStart),
	}
	img, err := asm.Assemble(string(source), cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("# text: %#08x (%d bytes)\n", img.TextStart, img.TextSize)
	for i, w := range img.TextWords {
		fmt.Printf("%#08x: %#08x\n", img.TextStart+uint32(i*4), w)
	}
	fmt.Printf("# data: %#08x (%d bytes)\n", img.DataStart, img.DataSize)
	for i := 0; i < len(img.DataBytes); i += 4 {
		end := i + 4
		if end > len(img.DataBytes) {
			end = len(img.DataBytes)
		}
		fmt.Printf("%#08x: % x\n", img.DataStart+uint32(i), img.DataBytes[i:end])
	}

	return 0
}

func main() {
	os.Exit(run())
}
