package evmi

import "github.com/ethereum/go-ethereum/core/vm"

// jumpdests is a bitset over bytecode positions marking which bytes are
// *code* (as opposed to PUSH immediate data). A JUMP/JUMPI target is
// valid iff the bit is set at that position AND the byte there is
// vm.JUMPDEST, computed once per Evaluate call, grounded in
// go-ethereum's contract code-bitmap / validJumpdest approach referenced
// throughout the example pack's core/vm forks.
type jumpdests []bool

// analyzeJumpdests walks code left to right, marking every byte as code
// unless it falls inside a PUSHn's immediate data, in which case those n
// bytes are marked as data and skipped.
func analyzeJumpdests(code []byte) jumpdests {
	bits := make(jumpdests, len(code))
	for pc := 0; pc < len(code); {
		op := vm.OpCode(code[pc])
		bits[pc] = true
		if op >= vm.PUSH1 && op <= vm.PUSH32 {
			n := int(op - vm.PUSH1 + 1)
			pc += n + 1
			continue
		}
		pc++
	}
	return bits
}

// valid reports whether pos is a legal jump target: in bounds, landing on
// a code (not PUSH-data) position, and holding JUMPDEST there.
func (b jumpdests) valid(code []byte, pos uint64) bool {
	if pos >= uint64(len(code)) {
		return false
	}
	if !b[pos] {
		return false
	}
	return vm.OpCode(code[pos]) == vm.JUMPDEST
}
