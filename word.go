// Package evmi implements the interpreter core for a substantial subset of
// the Ethereum Virtual Machine bytecode language: the operand stack, flat
// byte-addressed memory, persistent storage, control-flow (jumps and
// jumpdest validation), and the 256-bit arithmetic opcodes. Gas metering,
// the CALL family, CREATE*, LOG*, and on-chain state sync are out of
// scope; see Evaluate for the single entry point.
package evmi

import (
	"github.com/holiman/uint256"
)

// Word is a 256-bit unsigned integer. All arithmetic is modulo 2**256;
// signed opcodes reinterpret the bit pattern as two's complement.
type Word = uint256.Int

// WordSize is the width in bytes of a Word and of one memory/stack slot.
const WordSize = 32

// ZeroWord is the zero value of Word, suitable for Clear-style resets.
func ZeroWord() Word {
	return *uint256.NewInt(0)
}

// WordFromUint64 builds a Word from a uint64.
func WordFromUint64(v uint64) Word {
	return *uint256.NewInt(v)
}

// WordFromBytes builds a Word from a big-endian byte slice, left-padding
// with zero bytes and truncating extra leading bytes beyond 32, matching
// uint256.Int.SetBytes.
func WordFromBytes(b []byte) Word {
	var w Word
	w.SetBytes(b)
	return w
}

// ceil32 rounds n up to the nearest multiple of 32.
func ceil32(n uint64) uint64 {
	return (n + 31) / 32 * 32
}
