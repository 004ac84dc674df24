package hooks

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/evmcore/evmi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBpPcHaltsEvaluateAtTarget(t *testing.T) {
	code := []byte{0x60, 0x01, 0x60, 0x02, 0x01, 0x00} // PUSH1 1; PUSH1 2; ADD; STOP
	h := &evmi.Hooks{}
	h.Attach(&BpPc{Pc: 4})

	ok, ret := evmi.Evaluate(nil, code, evmi.WithHooks(h))
	assert.False(t, ok) // Evaluate is one-shot: a hook pause halts the call
	assert.Equal(t, []byte("@ pc 4: "+ErrBreakpoint.Error()), ret)
}

func TestBpOpCodeHaltsEvaluateOnMatch(t *testing.T) {
	code := []byte{0x60, 0x01, 0x60, 0x02, 0x01, 0x00}
	h := &evmi.Hooks{}
	h.Attach(&BpOpCode{OpCode: vm.ADD})

	ok, _ := evmi.Evaluate(nil, code, evmi.WithHooks(h))
	assert.False(t, ok)
}

func TestBpPcResumableViaSession(t *testing.T) {
	code := []byte{0x60, 0x01, 0x60, 0x02, 0x01, 0x00}
	sess := evmi.NewSession(nil, code)
	h := &evmi.Hooks{}
	h.Attach(&BpPc{Pc: 4})
	sess.SetHooks(h)

	done, e := sess.Run(-1)
	assert.False(t, done)
	require.Error(t, e)
	assert.True(t, errors.Is(e, ErrBreakpoint))
	assert.Equal(t, uint64(4), sess.Pc())

	sess.Hooks().Detach(0)
	done, e = sess.Run(-1)
	require.NoError(t, e)
	assert.True(t, done)
	ok, _ := sess.Result()
	assert.True(t, ok)
}

func TestParamTracerSnapshotsStackAroundAdd(t *testing.T) {
	code := []byte{0x60, 0x01, 0x60, 0x02, 0x01, 0x00}
	sess := evmi.NewSession(nil, code)
	tracer := &ParamTracer{}
	h := &evmi.Hooks{}
	h.Attach(tracer)
	sess.SetHooks(h)

	for i := 0; i < 2; i++ { // two PUSH1s
		_, e := sess.Step()
		require.NoError(t, e)
	}
	_, e := sess.Step() // ADD
	require.NoError(t, e)

	require.Len(t, tracer.StackPre, 2) // oldest (bottom) first: [1, 2]
	assert.Equal(t, evmi.WordFromUint64(1), tracer.StackPre[0])
	assert.Equal(t, evmi.WordFromUint64(2), tracer.StackPre[1])
	require.Len(t, tracer.StackPost, 1)
	assert.Equal(t, evmi.WordFromUint64(3), tracer.StackPost[0])
}

func TestEvmLogWritesOneLinePerInstruction(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "trace.log")
	fd, e := os.OpenFile(fn, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	require.NoError(t, e)
	defer fd.Close()

	code := []byte{0x60, 0x01, 0x00} // PUSH1 1; STOP
	h := &evmi.Hooks{}
	h.Attach(&EvmLog{Fd: fd})

	evmi.Evaluate(nil, code, evmi.WithHooks(h))
	fd.Sync()

	data, e := os.ReadFile(fn)
	require.NoError(t, e)
	assert.Contains(t, string(data), "PUSH1")
	assert.Contains(t, string(data), "STOP")
}

func TestHooksAttachDetach(t *testing.T) {
	h := &evmi.Hooks{}
	h.Attach(&BpPc{Pc: 1})
	h.Attach(&BpPc{Pc: 2})
	require.Len(t, h.List(), 2)

	h.Detach(0)
	require.Len(t, h.List(), 1)
	bp, ok := h.List()[0].(*BpPc)
	require.True(t, ok)
	assert.Equal(t, uint64(2), bp.Pc)
}
