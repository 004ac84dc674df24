package evmi

import (
	"testing"

	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/stretchr/testify/assert"
)

func TestLookupFindsRegisteredArithmeticOpcode(t *testing.T) {
	assert.NotNil(t, lookup(vm.ADD))
	assert.NotNil(t, lookup(vm.SSTORE))
	assert.NotNil(t, lookup(vm.SHA3))
}

func TestLookupIsNilForInlineHandledOpcodes(t *testing.T) {
	// PUSH/DUP/SWAP/JUMP family and a handful of control-flow opcodes are
	// handled directly in the interpreter loop and never registered.
	inline := []vm.OpCode{
		vm.PUSH1, vm.PUSH32,
		vm.DUP1, vm.DUP16,
		vm.SWAP1, vm.SWAP16,
		vm.JUMP, vm.JUMPI, vm.JUMPDEST, vm.PC,
		vm.STOP, vm.RETURN, vm.REVERT,
		vm.CODESIZE, vm.CODECOPY,
	}
	for _, op := range inline {
		assert.Nil(t, lookup(op), "expected %s to be inline-handled, not table-dispatched", op)
	}
}

func TestLookupIsNilForUnassignedOpcode(t *testing.T) {
	assert.Nil(t, lookup(vm.OpCode(0x0c))) // unassigned byte in the Yellow Paper table
}

func TestRegisterOverwritesExistingSlot(t *testing.T) {
	// register() is a plain map-like assignment: registering the same
	// opcode twice keeps only the most recent handler. Exercised here via
	// a throwaway opcode byte outside the standard table so it doesn't
	// disturb other tests' behavior.
	const scratch = vm.OpCode(0xb0)
	first := func(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error { return nil }
	second := func(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error { return ErrInvalidOpcode }

	register(scratch, first)
	register(scratch, second)
	assert.NotNil(t, lookup(scratch))
	assert.ErrorIs(t, lookup(scratch)(nil, nil, nil, nil), ErrInvalidOpcode)

	dispatchTable[scratch] = nil // restore, since the table is package-global
}
