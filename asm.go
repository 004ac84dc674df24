package evmi

import (
	"fmt"

	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/evmcore/evmi/util"
)

// ShowHexPC switches Line.String between decimal (the default, false) and
// hex program counters.
var ShowHexPC = false

// Line is one disassembled instruction: its program counter, opcode, and
// any immediate operand bytes (non-empty only for PUSH1..PUSH32).
type Line struct {
	Pc   uint64
	Op   vm.OpCode
	Data []byte
}

func (l *Line) String() string {
	if ShowHexPC {
		return fmt.Sprintf("%8x %12s  %s", l.Pc, l.Op.String(), util.HexEnc(l.Data))
	}
	return fmt.Sprintf("%8d %12s  %s", l.Pc, l.Op.String(), util.HexEnc(l.Data))
}

// Asm is a linear disassembly of one bytecode blob, indexed both by
// sequence position and by program counter, for use by the CLI debugger's
// line listing and breakpoint-by-pc lookups.
type Asm struct {
	sequence []*Line
	byPc     map[uint64]*Line
}

// Disassemble walks code and returns its Asm. It never fails: an
// unrecognised opcode is listed like any other byte, and a PUSH running
// past the end of code (typically trailing CBOR metadata emitted by the
// Solidity compiler) ends the listing early rather than erroring, since
// disassembly is a display aid and not used by Evaluate itself.
func Disassemble(code []byte) *Asm {
	a := &Asm{byPc: map[uint64]*Line{}}

	var pc uint64
	for pc < uint64(len(code)) {
		op := vm.OpCode(code[pc])
		size := uint64(0)
		if op >= vm.PUSH1 && op <= vm.PUSH32 {
			size = uint64(op - vm.PUSH1 + 1)
		}
		if pc+1+size > uint64(len(code)) {
			break
		}
		line := &Line{Pc: pc, Op: op, Data: code[pc+1 : pc+1+size]}
		a.sequence = append(a.sequence, line)
		a.byPc[pc] = line
		pc += 1 + size
	}
	return a
}

// LineCount returns the number of disassembled instructions.
func (a *Asm) LineCount() int {
	return len(a.sequence)
}

// LineAtPc looks up the instruction starting at the given program counter.
func (a *Asm) LineAtPc(pc uint64) (*Line, error) {
	line, ok := a.byPc[pc]
	if !ok {
		return nil, fmt.Errorf("no instruction at pc %d", pc)
	}
	return line, nil
}

// AtRow returns the row'th instruction in sequence order.
func (a *Asm) AtRow(row int) *Line {
	return a.sequence[row]
}
