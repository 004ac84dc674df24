package hooks

import (
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/evmcore/evmi"
)

func init() {
	evmi.RegisterHook((*ParamTracer)(nil))
}

// stackArity reports how many words an opcode pops (in) and pushes (out),
// used only to decide how much of the stack to snapshot for tracing.
// PUSH/DUP/SWAP/JUMP*/STOP/RETURN/REVERT are handled inline by the
// interpreter and aren't listed; a tracer sees them via Step.Op but with
// arity 0,0 (no snapshot beyond what PreRun/PostRun already captured).
func stackArity(op vm.OpCode) (in, out int) {
	switch op {
	case vm.ADD, vm.MUL, vm.SUB, vm.DIV, vm.SDIV, vm.MOD, vm.SMOD, vm.EXP,
		vm.SIGNEXTEND, vm.LT, vm.GT, vm.SLT, vm.SGT, vm.EQ, vm.AND, vm.OR,
		vm.XOR, vm.BYTE, vm.SHL, vm.SHR, vm.SAR:
		return 2, 1
	case vm.ADDMOD, vm.MULMOD:
		return 3, 1
	case vm.ISZERO, vm.NOT, vm.BALANCE, vm.CALLDATALOAD, vm.MLOAD, vm.SLOAD:
		return 1, 1
	case vm.SHA3:
		return 2, 1
	case vm.ADDRESS, vm.ORIGIN, vm.CALLER, vm.CALLVALUE, vm.CALLDATASIZE,
		vm.COINBASE, vm.TIMESTAMP, vm.NUMBER, vm.DIFFICULTY, vm.GASLIMIT,
		vm.CHAINID, vm.SELFBALANCE, vm.BASEFEE, vm.PC, vm.MSIZE, vm.GAS,
		vm.CODESIZE:
		return 0, 1
	case vm.CALLDATACOPY, vm.CODECOPY:
		return 3, 0
	case vm.MSTORE, vm.SSTORE:
		return 2, 0
	case vm.MSTORE8:
		return 2, 0
	case vm.POP:
		return 1, 0
	default:
		return 0, 0
	}
}

// ParamTracer records a shallow snapshot of the stack around one
// instruction: the words it consumed (StackPre) and produced (StackPost).
// Memory is snapshotted only for the opcodes that touch it, to keep
// tracing cheap on long runs.
type ParamTracer struct {
	StackPre  []evmi.Word
	StackPost []evmi.Word

	PcPre  uint64
	PcPost uint64

	MemPre  []byte
	MemPost []byte
}

func touchesMemory(op vm.OpCode) bool {
	switch op {
	case vm.SHA3, vm.MLOAD, vm.MSTORE, vm.MSTORE8, vm.CALLDATACOPY, vm.CODECOPY:
		return true
	default:
		return false
	}
}

// snapshot copies the top n words of the stack, oldest first, without
// removing anything.
func snapshot(s *evmi.Stack, n int) []evmi.Word {
	if n <= 0 {
		return nil
	}
	out := make([]evmi.Word, n)
	for i := 0; i < n; i++ {
		w, err := s.PeekN(n - 1 - i)
		if err != nil {
			return out[:i]
		}
		out[i] = *w
	}
	return out
}

func (t *ParamTracer) PreRun(step *evmi.Step) error {
	t.PcPre = step.Pc
	nIn, _ := stackArity(step.Op)
	t.StackPre = snapshot(step.Stack, nIn)
	if touchesMemory(step.Op) {
		d := step.Mem.Data()
		t.MemPre = append(d[:0:0], d...)
	}
	return nil
}

func (t *ParamTracer) PostRun(step *evmi.Step) error {
	t.PcPost = step.Pc
	_, nOut := stackArity(step.Op)
	t.StackPost = snapshot(step.Stack, nOut)
	if touchesMemory(step.Op) {
		d := step.Mem.Data()
		t.MemPost = append(d[:0:0], d...)
	}
	return nil
}
