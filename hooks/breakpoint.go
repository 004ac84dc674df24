package hooks

import (
	"fmt"

	"github.com/evmcore/evmi"
	"github.com/pkg/errors"
)

// ErrBreakpoint is the sentinel a breakpoint hook wraps when it fires;
// the CLI debugger checks for it with errors.Is to distinguish "paused at
// a breakpoint" from a genuine interpreter fault.
var ErrBreakpoint = errors.New("breakpoint")

func init() {
	evmi.RegisterHook((*BpPc)(nil))
	evmi.RegisterHook((*BpOpCode)(nil))
}

// BpPc pauses the run just before the instruction at Pc executes.
type BpPc struct {
	evmi.EmptyHook
	Pc uint64
}

func (bp *BpPc) String() string {
	return fmt.Sprintf("@ pc %d", bp.Pc)
}

func (bp *BpPc) PreRun(step *evmi.Step) error {
	if step.Pc != bp.Pc {
		return nil
	}
	return errors.Wrap(ErrBreakpoint, bp.String())
}

// BpOpCode pauses the run just before any instance of OpCode executes.
type BpOpCode struct {
	evmi.EmptyHook
	OpCode evmi.Opcode
}

func (bp *BpOpCode) String() string {
	return fmt.Sprintf("@ opcode %s", bp.OpCode.String())
}

func (bp *BpOpCode) PreRun(step *evmi.Step) error {
	if step.Op != bp.OpCode {
		return nil
	}
	return errors.Wrap(ErrBreakpoint, bp.String())
}
