package evmi

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/evmcore/evmi/util"
)

// Memory is a flat, zero-initialised, byte-addressable scratch buffer.
// Its logical size is always a multiple of 32. Every access except GetCopy
// expands it to cover the accessed range before reading or writing, so
// bytes never observed after allocation read back as zero. GetCopy (used
// for the RETURN/REVERT payload) reads bytes past the logical size as zero
// and leaves the size unchanged.
type Memory struct {
	store []byte
}

// NewMemory allocates a Memory pre-sized to wordHint words (0 bytes
// logically, but with that much backing capacity reserved up front).
func NewMemory(wordHint int) *Memory {
	if wordHint <= 0 {
		wordHint = 32
	}
	return &Memory{store: make([]byte, 0, wordHint*WordSize)}
}

// MarshalJSON renders memory as a sequence of 32-byte hex chunks, for the
// CLI fixture format.
func (m *Memory) MarshalJSON() ([]byte, error) {
	ss := []string{}
	p := 0
	for p < len(m.store) {
		chunkLen := util.Min(WordSize, len(m.store)-p)
		ss = append(ss, util.HexEnc(m.store[p:p+chunkLen]))
		p += chunkLen
	}
	return json.MarshalIndent(ss, "", "  ")
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (m *Memory) UnmarshalJSON(bs []byte) error {
	var ss []string
	if e := json.Unmarshal(bs, &ss); e != nil {
		return e
	}
	store, e := hex.DecodeString(strings.Join(ss, ""))
	if e != nil {
		return e
	}
	m.store = store
	return nil
}

// expand grows the logical size to ceil32(offset+size) if it isn't
// already at least that large. size == 0 is a no-op (matches the EVM
// convention that a zero-length access never expands memory).
func (m *Memory) expand(offset, size uint64) {
	if size == 0 {
		return
	}
	need := ceil32(offset + size)
	if need > uint64(len(m.store)) {
		m.store = append(m.store, make([]byte, need-uint64(len(m.store)))...)
	}
}

// Len returns the current logical size in bytes (always a multiple of 32).
func (m *Memory) Len() uint64 {
	return uint64(len(m.store))
}

// Set writes value into [offset, offset+size), expanding memory first.
func (m *Memory) Set(offset, size uint64, value []byte) {
	if size == 0 {
		return
	}
	m.expand(offset, size)
	copy(m.store[offset:offset+size], value)
}

// Store32 writes the 32-byte big-endian encoding of val at offset.
func (m *Memory) Store32(offset uint64, val *Word) {
	m.expand(offset, WordSize)
	var buf [WordSize]byte
	val.WriteToSlice(buf[:])
	copy(m.store[offset:offset+WordSize], buf[:])
}

// Store8 writes the single low byte of val at offset.
func (m *Memory) Store8(offset uint64, val byte) {
	m.expand(offset, 1)
	m.store[offset] = val
}

// Load32 reads the 32 bytes at offset, expanding memory (with zeroes) if
// the range has not been written yet.
func (m *Memory) Load32(offset uint64) Word {
	m.expand(offset, WordSize)
	return WordFromBytes(m.store[offset : offset+WordSize])
}

// GetCopy returns an independent copy of [offset, offset+size). It does
// not expand memory; bytes past the current logical size read as zero.
func (m *Memory) GetCopy(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	cpy := make([]byte, size)
	if uint64(len(m.store)) > offset {
		copy(cpy, m.store[offset:])
	}
	return cpy
}

// GetPtr returns a slice aliasing [offset, offset+size) after expanding
// memory to cover it. Callers must not retain the slice across a
// subsequent write that could reallocate the backing array.
func (m *Memory) GetPtr(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	m.expand(offset, size)
	return m.store[offset : offset+size]
}

// CopyIn copies size bytes from src[srcOff:] into memory at destOff,
// zero-filling any portion that runs past the end of src. It expands
// memory to cover the destination range. This is the shared primitive
// behind CALLDATACOPY and CODECOPY.
func (m *Memory) CopyIn(destOff uint64, src []byte, srcOff, size uint64) {
	m.Set(destOff, size, rightPadSlice(src, srcOff, size))
}

// Keccak returns the KECCAK-256 digest of [offset, offset+size), expanding
// memory first.
func (m *Memory) Keccak(offset, size uint64) Word {
	data := m.GetPtr(offset, size)
	return WordFromBytes(util.Keccak256(data))
}

// Data exposes the backing slice, primarily for CLI inspection.
func (m *Memory) Data() []byte {
	return m.store
}

// rightPadSlice returns src[srcOff:srcOff+size], zero-filled past the end
// of src, and clamped against overflow in srcOff (mirrors go-ethereum's
// getData helper used throughout CALLDATACOPY/CODECOPY/EXTCODECOPY).
func rightPadSlice(src []byte, srcOff, size uint64) []byte {
	length := uint64(len(src))
	if srcOff > length {
		srcOff = length
	}
	end := srcOff + size
	if end > length {
		end = length
	}
	out := make([]byte, size)
	copy(out, src[srcOff:end])
	return out
}
