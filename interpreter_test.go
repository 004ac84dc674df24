package evmi

import (
	"testing"

	"github.com/evmcore/evmi/util"
	"github.com/stretchr/testify/assert"
)

func TestExecPushZeroExtendsPastEndOfCode(t *testing.T) {
	// PUSH4 with only one immediate byte supplied; the remaining bytes
	// are taken as zero rather than erroring.
	code := []byte{0x63, 0xab}
	ok, ret := Evaluate(nil, code)
	assert.True(t, ok) // falls off the end after the push, same as a STOP
	assert.Nil(t, ret)
}

func TestReturnOverflowingBoundsFails(t *testing.T) {
	// PUSH32 <all 0xff> (size, overflow-prone); PUSH1 1 (offset); RETURN.
	allFF := "ff"
	for i := 0; i < 31; i++ {
		allFF += "ff"
	}
	code := util.HexDec("7f" + allFF + "6001f3")
	ok, ret := Evaluate(nil, code)
	assert.False(t, ok)
	assert.Contains(t, string(ret), ErrBadReturnBounds.Error())
}

func TestJumpToOverflowingDestinationFails(t *testing.T) {
	// PUSH32 <all 0xff> (dest, overflows uint64); JUMP.
	allFF := "ff"
	for i := 0; i < 31; i++ {
		allFF += "ff"
	}
	code := util.HexDec("7f" + allFF + "56")
	ok, ret := Evaluate(nil, code)
	assert.False(t, ok)
	assert.Contains(t, string(ret), ErrInvalidJump.Error())
}

func TestJumpiFallsThroughWhenConditionIsZero(t *testing.T) {
	// PUSH1 0 (cond); PUSH1 99 (dest, never reached); JUMPI; PUSH1 7; tail.
	code := util.HexDec("6000606357" + "6007" + tailMstoreReturn)
	ok, ret := Evaluate(nil, code)
	assert.True(t, ok)
	assert.Equal(t, wantWord(7), ret)
}

func TestJumpiTakesJumpWhenConditionIsNonZero(t *testing.T) {
	// PUSH1 1 (cond); PUSH1 9 (dest); JUMPI; four dead STOPs (pc 5..8);
	// JUMPDEST at pc 9; PUSH1 9; tail.
	code := util.HexDec("6001600957" + "00000000" + "5b" + "6009" + tailMstoreReturn)
	ok, ret := Evaluate(nil, code)
	assert.True(t, ok)
	assert.Equal(t, wantWord(9), ret)
}
