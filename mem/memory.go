// Package mem implements the sparse, big-endian, byte-addressable
// memory shared by the assembler's loader and the CPU (§3, §4.1).
package mem

import "mipsemu/asm"

const (
	pageSize = 1 << 16
	pageMask = pageSize - 1
)

// Memory is a 32-bit byte-addressable address space backed by
// 64KiB pages allocated lazily on first access. Unmapped reads
// always return 0 and never allocate a page.
type Memory struct {
	pages map[uint32][]byte
}

// New returns an empty Memory with no pages mapped.
func New() *Memory {
	return &Memory{pages: make(map[uint32][]byte)}
}

func (m *Memory) page(addr uint32, create bool) []byte {
	idx := addr >> 16
	p, ok := m.pages[idx]
	if !ok {
		if !create {
			return nil
		}
		p = make([]byte, pageSize)
		m.pages[idx] = p
	}
	return p
}

// GetByte reads one byte; unmapped addresses read as 0.
func (m *Memory) GetByte(addr uint32) byte {
	p := m.page(addr, false)
	if p == nil {
		return 0
	}
	return p[addr&pageMask]
}

// SetByte writes one byte, allocating its page if needed.
func (m *Memory) SetByte(addr uint32, v byte) {
	p := m.page(addr, true)
	p[addr&pageMask] = v
}

// GetHalf reads a big-endian 16-bit halfword starting at addr.
func (m *Memory) GetHalf(addr uint32) uint16 {
	return uint16(m.GetByte(addr))<<8 | uint16(m.GetByte(addr+1))
}

// SetHalf writes a big-endian 16-bit halfword starting at addr.
func (m *Memory) SetHalf(addr uint32, v uint16) {
	m.SetByte(addr, byte(v>>8))
	m.SetByte(addr+1, byte(v))
}

// GetWord reads a big-endian 32-bit word starting at addr.
func (m *Memory) GetWord(addr uint32) uint32 {
	return uint32(m.GetByte(addr))<<24 |
		uint32(m.GetByte(addr+1))<<16 |
		uint32(m.GetByte(addr+2))<<8 |
		uint32(m.GetByte(addr+3))
}

// SetWord writes a big-endian 32-bit word starting at addr.
func (m *Memory) SetWord(addr uint32, v uint32) {
	m.SetByte(addr, byte(v>>24))
	m.SetByte(addr+1, byte(v>>16))
	m.SetByte(addr+2, byte(v>>8))
	m.SetByte(addr+3, byte(v))
}

// Dump returns a copy of length bytes starting at start, reading
// unmapped regions as zero without allocating them.
func (m *Memory) Dump(start uint32, length int) []byte {
	out := make([]byte, length)
	for i := 0; i < length; i++ {
		out[i] = m.GetByte(start + uint32(i))
	}
	return out
}

// LoadImage copies an assembled image's text and data segments into
// memory at their respective base addresses (§4.1, "Image loading").
func (m *Memory) LoadImage(img *asm.AssemblyImage) {
	for i, b := range img.DataBytes {
		m.SetByte(img.DataStart+uint32(i), b)
	}
	for i, w := range img.TextWords {
		m.SetWord(img.TextStart+uint32(i*4), w)
	}
}
