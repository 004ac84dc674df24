package evmi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryExpandsOnAccess(t *testing.T) {
	m := NewMemory(1)
	assert.Equal(t, uint64(0), m.Len())

	m.Store8(5, 0xff)
	assert.Equal(t, uint64(32), m.Len()) // expansion rounds up to a full word

	got := m.GetCopy(0, 32)
	want := make([]byte, 32)
	want[5] = 0xff
	assert.Equal(t, want, got)
}

func TestMemoryStoreLoad32(t *testing.T) {
	m := NewMemory(1)
	w := WordFromUint64(0x1122334455)
	m.Store32(0, &w)
	assert.Equal(t, w, m.Load32(0))
}

func TestMemoryZeroLengthAccessDoesNotExpand(t *testing.T) {
	m := NewMemory(1)
	m.Set(100, 0, []byte{1, 2, 3})
	assert.Equal(t, uint64(0), m.Len())
	assert.Nil(t, m.GetCopy(0, 0))
}

func TestMemoryCopyInZeroFillsPastSource(t *testing.T) {
	m := NewMemory(1)
	src := []byte{0xaa, 0xbb}
	m.CopyIn(0, src, 0, 4)
	assert.Equal(t, []byte{0xaa, 0xbb, 0, 0}, m.GetCopy(0, 4))
}

func TestMemoryGetCopyPastEndReadsZero(t *testing.T) {
	m := NewMemory(1)
	m.Store8(0, 1)
	got := m.GetCopy(0, 64) // only 32 bytes were ever written
	assert.Len(t, got, 64)
	assert.Equal(t, byte(1), got[0])
	assert.Equal(t, byte(0), got[40])
}
