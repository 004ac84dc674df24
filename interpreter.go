package evmi

import (
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
)

// interpreter holds the per-invocation mutable working set: program
// counter, Stack, Memory, Storage, and the precomputed jumpdest bitmap
// for the code being run. One interpreter is created, run to completion,
// and discarded by each Evaluate call; it is never shared or reused
// across invocations.
type interpreter struct {
	pc    uint64
	code  []byte
	jd    jumpdests
	stack *Stack
	mem   *Memory
	store Storage
	ctx   *ExecutionContext
	log   log.Logger
	hooks *Hooks
}

// run drives the fetch/dispatch loop until a terminating opcode, the end
// of the bytecode, or a fatal error is reached. It returns the success
// flag and return/revert payload the public API promises; a non-nil
// error from runStep is either one of the sentinels in errors.go
// (wrapped with dynamic context via github.com/pkg/errors) or an error
// returned by an attached hook's PreRun, and always maps to
// success=false with reasonBytes(err) as the payload.
func (in *interpreter) run() (success bool, ret []byte) {
	for {
		if in.pc >= uint64(len(in.code)) {
			return true, nil
		}
		done, ok, r, err := in.runStep()
		if err != nil {
			return in.fail(err)
		}
		if done {
			return ok, r
		}
	}
}

// runStep executes exactly one instruction. done is true when the
// instruction terminates the run (STOP/RETURN/REVERT or a fatal error);
// ok/r are only meaningful when done is true and err is nil. Attached
// hooks observe exactly one PreRun/PostRun pair per call, via a defer
// scoped to this method rather than to the outer loop in run.
func (in *interpreter) runStep() (done bool, ok bool, ret []byte, err error) {
	op := vm.OpCode(in.code[in.pc])

	if in.hooks != nil {
		step := &Step{Pc: in.pc, Op: op, Stack: in.stack, Mem: in.mem, Store: in.store, Ctx: in.ctx}
		if e := in.hooks.PreRunAll(step); e != nil {
			// done=false: a hook pause (e.g. a breakpoint) is not a fatal
			// interpreter condition. Evaluate's run() halts on it anyway
			// (it checks err before done), but Session uses done to tell
			// a resumable pause apart from a real fault and leaves pc
			// exactly where it is so a later Step/Run can continue.
			return false, false, nil, e
		}
		defer in.hooks.PostRunAll(step)
	}

	switch {
	case op == vm.STOP:
		return true, true, nil, nil

	case op == vm.RETURN:
		offset, size, e := in.popReturnBounds()
		if e != nil {
			return true, false, nil, e
		}
		return true, true, in.mem.GetCopy(offset, size), nil

	case op == vm.REVERT:
		offset, size, e := in.popReturnBounds()
		if e != nil {
			return true, false, nil, e
		}
		return true, false, in.mem.GetCopy(offset, size), nil

	case op >= vm.PUSH1 && op <= vm.PUSH32:
		if e := in.execPush(int(op - vm.PUSH1 + 1)); e != nil {
			return true, false, nil, e
		}
		return false, false, nil, nil

	case op >= vm.DUP1 && op <= vm.DUP16:
		n := int(op) - 0x7F // canonical mapping: DUP1 (0x80) -> n=1
		if e := in.stack.Dup(n); e != nil {
			return true, false, nil, e
		}
		in.pc++
		return false, false, nil, nil

	case op >= vm.SWAP1 && op <= vm.SWAP16:
		n := int(op) - 0x8F // SWAP1 (0x90) -> n=1
		if e := in.stack.Swap(n); e != nil {
			return true, false, nil, e
		}
		in.pc++
		return false, false, nil, nil

	case op == vm.JUMP:
		dest, e := in.stack.Pop()
		if e != nil {
			return true, false, nil, e
		}
		if e := in.doJump(dest); e != nil {
			return true, false, nil, e
		}
		return false, false, nil, nil

	case op == vm.JUMPI:
		dest, e := in.stack.Pop()
		if e != nil {
			return true, false, nil, e
		}
		cond, e := in.stack.Pop()
		if e != nil {
			return true, false, nil, e
		}
		if !cond.IsZero() {
			if e := in.doJump(dest); e != nil {
				return true, false, nil, e
			}
		} else {
			in.pc++
		}
		return false, false, nil, nil

	case op == vm.JUMPDEST:
		in.pc++
		return false, false, nil, nil

	case op == vm.PC:
		if e := in.stack.Push(WordFromUint64(in.pc)); e != nil {
			return true, false, nil, e
		}
		in.pc++
		return false, false, nil, nil

	case op == vm.CODESIZE:
		if e := in.stack.Push(WordFromUint64(uint64(len(in.code)))); e != nil {
			return true, false, nil, e
		}
		in.pc++
		return false, false, nil, nil

	case op == vm.CODECOPY:
		if e := in.execCodeCopy(); e != nil {
			return true, false, nil, e
		}
		in.pc++
		return false, false, nil, nil

	default:
		handler := lookup(op)
		if handler == nil {
			return true, false, nil, errors.Wrapf(ErrInvalidOpcode, "opcode 0x%02x at pc %d", byte(op), in.pc)
		}
		if e := handler(in.stack, in.mem, in.store, in.ctx); e != nil {
			return true, false, nil, e
		}
		in.pc++
		return false, false, nil, nil
	}
}

// doJump validates dest against the jumpdest bitmap and, if valid, sets
// pc to it without further advancing; JUMPDEST at the destination is a
// no-op executed on the next iteration.
func (in *interpreter) doJump(dest Word) error {
	destPc, overflow := dest.Uint64WithOverflow()
	if overflow || !in.jd.valid(in.code, destPc) {
		return errors.Wrapf(ErrInvalidJump, "target %s", dest.String())
	}
	in.pc = destPc
	return nil
}

// execPush reads the next n bytes as a big-endian word (zero-extended if
// the bytecode runs out before n bytes) and pushes it, then advances pc
// by n+1.
func (in *interpreter) execPush(n int) error {
	start := in.pc + 1
	end := start + uint64(n)
	var raw []byte
	if start < uint64(len(in.code)) {
		stop := end
		if stop > uint64(len(in.code)) {
			stop = uint64(len(in.code))
		}
		raw = in.code[start:stop]
	}
	buf := make([]byte, n)
	copy(buf, raw) // zero-extend if bytecode truncated
	if e := in.stack.Push(WordFromBytes(buf)); e != nil {
		return e
	}
	in.pc = end
	return nil
}

// execCodeCopy implements CODECOPY: pop destOff, srcOff, size; copy
// bytecode bytes (zero-fill past end) into memory with expansion.
func (in *interpreter) execCodeCopy() error {
	destOff, e := in.stack.Pop()
	if e != nil {
		return e
	}
	srcOff, e := in.stack.Pop()
	if e != nil {
		return e
	}
	size, e := in.stack.Pop()
	if e != nil {
		return e
	}
	srcOff64, overflow := srcOff.Uint64WithOverflow()
	if overflow {
		srcOff64 = ^uint64(0)
	}
	in.mem.CopyIn(destOff.Uint64(), in.code, srcOff64, size.Uint64())
	return nil
}

// popReturnBounds pops offset, size for RETURN/REVERT and rejects
// combinations that would overflow uint64 arithmetic.
func (in *interpreter) popReturnBounds() (offset, size uint64, err error) {
	o, e := in.stack.Pop()
	if e != nil {
		return 0, 0, e
	}
	sz, e := in.stack.Pop()
	if e != nil {
		return 0, 0, e
	}
	offset, overflowO := o.Uint64WithOverflow()
	size, overflowS := sz.Uint64WithOverflow()
	if overflowO || overflowS || offset+size < offset {
		return 0, 0, errors.Wrap(ErrBadReturnBounds, "RETURN/REVERT offset+size overflow")
	}
	return offset, size, nil
}

// fail logs and converts a fatal error into the (false, reason) pair
// every halting condition produces.
func (in *interpreter) fail(err error) (bool, []byte) {
	if in.log != nil {
		in.log.Debug("evmi: invocation halted", "pc", in.pc, "err", err)
	}
	return false, reasonBytes(err)
}
