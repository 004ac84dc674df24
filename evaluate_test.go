package evmi

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/evmcore/evmi/util"
	"github.com/stretchr/testify/assert"
)

func TestEvaluatePushFallsOffEndOfCode(t *testing.T) {
	// "6001" -> PUSH1 1, then code ends: success, stack top = 1, no return data.
	code := util.HexDec("6001")
	ok, ret := Evaluate(nil, code)
	assert.True(t, ok)
	assert.Empty(t, ret)
}

func TestEvaluateMulStoreReturn(t *testing.T) {
	// 1 * 3 = 3, stored at mem[0], returned as 32 bytes.
	code := util.HexDec("600160030260005260206000f3")
	ok, ret := Evaluate(nil, code)
	assert.True(t, ok)
	want := make([]byte, 32)
	want[31] = 3
	assert.Equal(t, want, ret)
}

func TestEvaluateAddChainStoreReturn(t *testing.T) {
	// 1 + 1 + 1 = 3, stored and returned the same way.
	code := util.HexDec("6001600160010160005260206000f3")
	ok, ret := Evaluate(nil, code)
	assert.True(t, ok)
	want := make([]byte, 32)
	want[31] = 3
	assert.Equal(t, want, ret)
}

func TestEvaluateReturnPartialMemory(t *testing.T) {
	// PUSH1 3, PUSH1 0, MSTORE, then PUSH1 3 (size), PUSH1 0 (offset),
	// RETURN: the first 3 bytes of the 32-byte word just stored (all zero,
	// since 3 occupies only the word's last byte).
	code := util.HexDec("600360005260036000f3")
	ok, ret := Evaluate(nil, code)
	assert.True(t, ok)
	assert.Equal(t, []byte{0, 0, 0}, ret)
}

func TestEvaluateContextProbe(t *testing.T) {
	origin := common.HexToAddress("0x1111111111111111111111111111111111111111")
	caller := common.HexToAddress("0x2222222222222222222222222222222222222222")
	self := common.HexToAddress("0x3333333333333333333333333333333333333333")
	coinbase := common.HexToAddress("0x4444444444444444444444444444444444444444")

	ctx := &ExecutionContext{
		Origin:     origin,
		Caller:     caller,
		Address:    self,
		CallValue:  WordFromUint64(7),
		Coinbase:   coinbase,
		Timestamp:  WordFromUint64(1111),
		Number:     WordFromUint64(22),
		GasLimit:   WordFromUint64(33),
		Difficulty: WordFromUint64(44),
		ChainID:    WordFromUint64(55),
		BaseFee:    WordFromUint64(66),
		Balances:   map[common.Address]Word{},
	}

	code := util.HexDec(
		"32600052336020523060405234606052416080524260a0524360c052" +
			"4560e0524461010052466101205248610140526101606000f3",
	)
	ok, ret := Evaluate(ctx, code)
	assert.True(t, ok)
	require := []struct {
		label string
		want  Word
	}{
		{"origin", addressToWord(origin)},
		{"caller", addressToWord(caller)},
		{"address", addressToWord(self)},
		{"callvalue", WordFromUint64(7)},
		{"coinbase", addressToWord(coinbase)},
		{"timestamp", WordFromUint64(1111)},
		{"number", WordFromUint64(22)},
		{"gaslimit", WordFromUint64(33)},
		{"difficulty", WordFromUint64(44)},
		{"chainid", WordFromUint64(55)},
		{"basefee", WordFromUint64(66)},
	}
	assert.Len(t, ret, 11*32)
	for i, r := range require {
		got := WordFromBytes(ret[i*32 : (i+1)*32])
		assert.Equal(t, r.want, got, r.label)
	}
}

func TestEvaluateInvalidJump(t *testing.T) {
	// PUSH1 1; PUSH1 0; JUMP; JUMPDEST; PUSH1 2 -- jump target 0 is not JUMPDEST.
	code := util.HexDec("60016000565b6002")
	ok, ret := Evaluate(nil, code)
	assert.False(t, ok)
	assert.Equal(t, []byte(ErrInvalidJump.Error()), ret)
}

func TestEvaluateValidJump(t *testing.T) {
	// Same sequence, with the jump target shifted onto the JUMPDEST byte.
	// PUSH1 1; PUSH1 5; JUMP; JUMPDEST; PUSH1 2 -> ends with stack = [1, 2].
	code := util.HexDec("60016005565b6002")
	ok, ret := Evaluate(nil, code)
	assert.True(t, ok)
	assert.Empty(t, ret)
}

func TestEvaluatePushPopIsNoOp(t *testing.T) {
	// Round-trip law: PUSH_n v; POP leaves the stack exactly as it was.
	code := util.HexDec("60056001600250") // PUSH1 5; PUSH1 1; PUSH1 2; POP -> stack=[5,1]
	ok, ret := Evaluate(nil, code)
	assert.True(t, ok)
	assert.Empty(t, ret)
}

func TestEvaluateDoubleSwapIsNoOp(t *testing.T) {
	// Round-trip law: PUSH_n v; PUSH_n w; SWAP1; SWAP1 yields the same top
	// two. PUSH1 1; PUSH1 2; SWAP1; SWAP1 leaves stack=[1,2]; store both
	// words to memory (top first) and return them to observe the order.
	code := util.HexDec("60016002909060005260205260406000f3")
	ok, ret := Evaluate(nil, code)
	assert.True(t, ok)

	top := make([]byte, 32)
	top[31] = 2
	below := make([]byte, 32)
	below[31] = 1
	assert.Equal(t, append(append([]byte{}, top...), below...), ret)
}

func TestEvaluateUnknownOpcode(t *testing.T) {
	code := []byte{0x0c} // unassigned
	ok, ret := Evaluate(nil, code)
	assert.False(t, ok)
	assert.Equal(t, []byte(ErrInvalidOpcode.Error()), ret)
}

func TestEvaluateRevert(t *testing.T) {
	// PUSH1 0x2a, PUSH1 0, MSTORE, PUSH1 0x20, PUSH1 0, REVERT.
	code := util.HexDec("602a60005260206000fd")
	ok, ret := Evaluate(nil, code)
	assert.False(t, ok)
	want := make([]byte, 32)
	want[31] = 0x2a
	assert.Equal(t, want, ret)
}

func TestEvaluateFortyAddPairs(t *testing.T) {
	// PUSH1 1, then forty PUSH1 1 / ADD pairs, store at mem[0] and return;
	// running total is 1 + 40*1 = 41.
	code := []byte{0x60, 0x01}
	for i := 0; i < 40; i++ {
		code = append(code, 0x60, 0x01, 0x01)
	}
	code = append(code, 0x60, 0x00, 0x52, 0x60, 0x20, 0x60, 0x00, 0xf3)
	ok, ret := Evaluate(nil, code)
	assert.True(t, ok)
	want := make([]byte, 32)
	want[31] = 41
	assert.Equal(t, want, ret)
}
