package hooks

import (
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/evmcore/evmi"
	"github.com/fatih/color"
)

// LowLevelTracer prints a human-readable line for every instruction,
// showing the operands it consumed and the value it produced. It rides
// on ParamTracer for the stack/memory snapshots.
type LowLevelTracer struct {
	*ParamTracer
}

func NewLowLevelTracer() *LowLevelTracer {
	return &LowLevelTracer{ParamTracer: &ParamTracer{}}
}

func (t *LowLevelTracer) PreRun(step *evmi.Step) error {
	return t.ParamTracer.PreRun(step)
}

// peek renders the i'th word of a ParamTracer snapshot counting from the
// top of the stack (0 = top); snapshots themselves are stored oldest first.
func peek(ws []evmi.Word, i int) string {
	if i < 0 || i >= len(ws) {
		return "?"
	}
	return ws[len(ws)-1-i].String()
}

func (t *LowLevelTracer) PostRun(step *evmi.Step) error {
	if e := t.ParamTracer.PostRun(step); e != nil {
		return e
	}

	op := step.Op
	pre, post := t.StackPre, t.StackPost

	switch op {
	case vm.SHA3:
		color.Magenta("SHA3 memory (")
		switch len(t.MemPre) {
		case 0x20, 0x40:
			fmt.Println("    " + hex.EncodeToString(t.MemPre))
		default:
			fmt.Print(hex.Dump(t.MemPre))
		}
		color.Magenta(")  ->  %s", peek(post, 0))

	case vm.MLOAD:
		color.White("  %s = mem[%s]", peek(post, 0), peek(pre, 0))
	case vm.MSTORE, vm.MSTORE8:
		color.White("  mem[%s] = %s", peek(pre, 0), peek(pre, 1))
	case vm.SLOAD:
		color.White("  %s = storage[%s]", peek(post, 0), peek(pre, 0))
	case vm.SSTORE:
		color.White("  storage[%s] = %s", peek(pre, 0), peek(pre, 1))

	case vm.TIMESTAMP, vm.NUMBER, vm.ADDRESS, vm.ORIGIN, vm.CALLER, vm.CALLVALUE,
		vm.COINBASE, vm.DIFFICULTY, vm.GASLIMIT, vm.CHAINID,
		vm.SELFBALANCE, vm.BASEFEE, vm.PC, vm.MSIZE, vm.GAS, vm.CODESIZE:
		color.White("  %s = %s", peek(post, 0), op.String())

	case vm.ISZERO, vm.NOT, vm.BALANCE, vm.CALLDATALOAD:
		color.White("%s (%s) -> %s", op.String(), peek(pre, 0), peek(post, 0))

	case vm.ADD, vm.MUL, vm.SUB, vm.DIV, vm.SDIV, vm.MOD, vm.SMOD, vm.EXP,
		vm.SHL, vm.SHR, vm.SAR, vm.LT, vm.GT, vm.SLT, vm.SGT, vm.EQ,
		vm.SIGNEXTEND, vm.AND, vm.OR, vm.XOR, vm.BYTE:
		color.White("%s (%s, %s) -> %s", op.String(), peek(pre, 0), peek(pre, 1), peek(post, 0))

	case vm.ADDMOD, vm.MULMOD:
		color.White("%s (%s, %s, %s) -> %s", op.String(), peek(pre, 0), peek(pre, 1), peek(pre, 2), peek(post, 0))
	}
	return nil
}
