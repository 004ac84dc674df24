package hooks

import (
	"fmt"
	"os"

	"github.com/evmcore/evmi"
)

// EvmLog writes one "<pc>\t<opcode>" line per instruction to Fd, for a
// full execution trace saved alongside a fixture run.
type EvmLog struct {
	evmi.EmptyHook
	Fd *os.File
}

func (t *EvmLog) PreRun(step *evmi.Step) error {
	_, err := fmt.Fprintf(t.Fd, "%d\t%s\n", step.Pc, step.Op.String())
	return err
}
