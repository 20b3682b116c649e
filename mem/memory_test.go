package mem_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mipsemu/asm"
	"mipsemu/mem"
)

func TestSetGetWordRoundTrip(t *testing.T) {
	m := mem.New()
	m.SetWord(0x1000, 0xDEADBEEF)
	assert.Equal(t, uint32(0xDEADBEEF), m.GetWord(0x1000))
}

func TestBigEndianByteOrder(t *testing.T) {
	m := mem.New()
	m.SetWord(0x2000, 0x11223344)
	assert.Equal(t, byte(0x11), m.GetByte(0x2000))
	assert.Equal(t, byte(0x22), m.GetByte(0x2001))
	assert.Equal(t, byte(0x33), m.GetByte(0x2002))
	assert.Equal(t, byte(0x44), m.GetByte(0x2003))
}

func TestHalfwordRoundTrip(t *testing.T) {
	m := mem.New()
	m.SetHalf(0x40, 0xABCD)
	assert.Equal(t, uint16(0xABCD), m.GetHalf(0x40))
	assert.Equal(t, byte(0xAB), m.GetByte(0x40))
	assert.Equal(t, byte(0xCD), m.GetByte(0x41))
}

func TestUnmappedReadsAreZero(t *testing.T) {
	m := mem.New()
	assert.Equal(t, byte(0), m.GetByte(0xFFFF0000))
	assert.Equal(t, uint32(0), m.GetWord(0x77770000))
}

func TestCrossPageAccess(t *testing.T) {
	m := mem.New()
	// 0x0000FFFE..0x00010001 straddles the page boundary at 0x10000.
	m.SetWord(0x0000FFFE, 0x12345678)
	assert.Equal(t, uint32(0x12345678), m.GetWord(0x0000FFFE))
	assert.Equal(t, byte(0x12), m.GetByte(0x0000FFFE))
	assert.Equal(t, byte(0x78), m.GetByte(0x00010001))
}

func TestDumpReadsThroughUnmappedRegions(t *testing.T) {
	m := mem.New()
	m.SetByte(0x10, 0x42)
	out := m.Dump(0x00, 0x20)
	assert.Len(t, out, 0x20)
	assert.Equal(t, byte(0x42), out[0x10])
	assert.Equal(t, byte(0), out[0x00])
}

func TestLoadImageCopiesTextAndData(t *testing.T) {
	img := &asm.AssemblyImage{
		TextStart: 0x00040000,
		TextWords: []uint32{0x11223344, 0xAABBCCDD},
		DataStart: 0x10000000,
		DataBytes: []byte{0x01, 0x02, 0x03, 0x04},
	}
	m := mem.New()
	m.LoadImage(img)

	assert.Equal(t, uint32(0x11223344), m.GetWord(0x00040000))
	assert.Equal(t, uint32(0xAABBCCDD), m.GetWord(0x00040004))
	assert.Equal(t, byte(0x01), m.GetByte(0x10000000))
	assert.Equal(t, byte(0x04), m.GetByte(0x10000003))
}
