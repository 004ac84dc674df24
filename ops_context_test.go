package evmi

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/evmcore/evmi/util"
	"github.com/stretchr/testify/assert"
)

func TestOpCallDataLoadZeroPadsPastEnd(t *testing.T) {
	ctx := NewExecutionContext()
	ctx.Calldata = []byte{0x11, 0x22}

	// PUSH1 0 (offset); CALLDATALOAD; tail.
	code := util.HexDec("600035" + tailMstoreReturn)
	ok, ret := Evaluate(ctx, code)
	assert.True(t, ok)
	want := make([]byte, 32)
	want[0], want[1] = 0x11, 0x22
	assert.Equal(t, want, ret)
}

func TestOpCallDataCopyZeroFillsPastEnd(t *testing.T) {
	ctx := NewExecutionContext()
	ctx.Calldata = []byte{0xaa, 0xbb}

	// CALLDATACOPY(destOff=0, srcOff=0, size=4); RETURN(0,4).
	code := util.HexDec("6004600060003760046000f3")
	ok, ret := Evaluate(ctx, code)
	assert.True(t, ok)
	assert.Equal(t, []byte{0xaa, 0xbb, 0, 0}, ret)
}

func TestOpBalanceOfKnownAndUnknownAddress(t *testing.T) {
	known := common.HexToAddress("0x00000000000000000000000000000000000001")
	ctx := NewExecutionContext()
	ctx.Balances[known] = WordFromUint64(500)

	// PUSH20 <addr>; BALANCE; tail.
	code := append([]byte{0x73}, known.Bytes()...)
	code = append(code, 0x31) // BALANCE
	code = append(code, util.HexDec(tailMstoreReturn)...)
	ok, ret := Evaluate(ctx, code)
	assert.True(t, ok)
	assert.Equal(t, wantWord(500), ret)
}

func TestOpSelfBalanceReadsOwnAddress(t *testing.T) {
	self := common.HexToAddress("0x00000000000000000000000000000000000002")
	ctx := NewExecutionContext()
	ctx.Address = self
	ctx.Balances[self] = WordFromUint64(77)

	code := util.HexDec("47" + tailMstoreReturn) // SELFBALANCE; tail
	ok, ret := Evaluate(ctx, code)
	assert.True(t, ok)
	assert.Equal(t, wantWord(77), ret)
}

func TestOpCodesizePushesProgramLength(t *testing.T) {
	// CODESIZE; tail (pushes the length of the whole running program).
	code := util.HexDec("38" + tailMstoreReturn)
	ok, ret := Evaluate(nil, code)
	assert.True(t, ok)
	assert.Equal(t, wantWord(uint64(len(code))), ret)
}

func TestOpCodecopyZeroFillsPastEnd(t *testing.T) {
	// CODECOPY(destOff=0, srcOff=0, size=16) then RETURN(0,16): the
	// program's own 12 bytes of bytecode, zero-padded past its end.
	code := util.HexDec("6010600060003960106000f3")
	ok, ret := Evaluate(nil, code)
	assert.True(t, ok)
	assert.Len(t, ret, 16)
	assert.Equal(t, append(code[:len(code):len(code)], 0, 0, 0, 0), ret)
}
