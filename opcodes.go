package evmi

import (
	"github.com/ethereum/go-ethereum/core/vm"
)

// Opcode reuses go-ethereum's byte-to-mnemonic mapping (vm.OpCode and its
// String method) instead of redeclaring opcode names and values; the
// numeric values are part of the Ethereum Yellow Paper and this avoids a
// second, potentially drifting, source of truth for them.
type Opcode = vm.OpCode

// execFunc is the signature every table-handled opcode implements. It
// takes borrowed mutable references to the pieces of state it may touch
// and the read-only execution context; it mutates in place and returns an
// error only for fatal conditions such as stack underflow (arithmetic
// opcodes never fail on their own). Each piece of state is passed as its
// own typed parameter rather than bundled into one catch-all context
// struct, so a handler's signature documents exactly what it can touch.
type execFunc func(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error

// dispatchTable is a fixed array indexed by opcode byte. A nil slot means
// the byte is unassigned and must halt the loop with ErrInvalidOpcode.
// PUSH1..PUSH32, DUP1..DUP16, SWAP1..SWAP16, JUMP, JUMPI, JUMPDEST, PC,
// STOP, RETURN, REVERT, CODESIZE, and CODECOPY are handled inline by the
// interpreter loop (interpreter.go) instead, since each needs direct
// access to pc or code rather than just the stack/memory/storage trio,
// and are intentionally absent here.
var dispatchTable [256]execFunc

func register(op vm.OpCode, fn execFunc) {
	dispatchTable[op] = fn
}

func init() {
	// Arithmetic / bitwise, 0x01..0x1d.
	register(vm.ADD, opAdd)
	register(vm.MUL, opMul)
	register(vm.SUB, opSub)
	register(vm.DIV, opDiv)
	register(vm.SDIV, opSdiv)
	register(vm.MOD, opMod)
	register(vm.SMOD, opSmod)
	register(vm.ADDMOD, opAddmod)
	register(vm.MULMOD, opMulmod)
	register(vm.EXP, opExp)
	register(vm.SIGNEXTEND, opSignExtend)
	register(vm.LT, opLt)
	register(vm.GT, opGt)
	register(vm.SLT, opSlt)
	register(vm.SGT, opSgt)
	register(vm.EQ, opEq)
	register(vm.ISZERO, opIszero)
	register(vm.AND, opAnd)
	register(vm.OR, opOr)
	register(vm.XOR, opXor)
	register(vm.NOT, opNot)
	register(vm.BYTE, opByte)
	register(vm.SHL, opSHL)
	register(vm.SHR, opSHR)
	register(vm.SAR, opSAR)

	// KECCAK-256.
	register(vm.SHA3, opSha3)

	// Execution context, 0x30..0x48 (CODESIZE/CODECOPY excluded: inline).
	register(vm.ADDRESS, opAddress)
	register(vm.BALANCE, opBalance)
	register(vm.ORIGIN, opOrigin)
	register(vm.CALLER, opCaller)
	register(vm.CALLVALUE, opCallValue)
	register(vm.CALLDATALOAD, opCallDataLoad)
	register(vm.CALLDATASIZE, opCallDataSize)
	register(vm.CALLDATACOPY, opCallDataCopy)
	register(vm.COINBASE, opCoinbase)
	register(vm.TIMESTAMP, opTimestamp)
	register(vm.NUMBER, opNumber)
	register(vm.DIFFICULTY, opDifficulty)
	register(vm.GASLIMIT, opGasLimit)
	register(vm.CHAINID, opChainID)
	register(vm.SELFBALANCE, opSelfBalance)
	register(vm.BASEFEE, opBaseFee)

	// Stack / memory / storage / misc.
	register(vm.POP, opPop)
	register(vm.MLOAD, opMload)
	register(vm.MSTORE, opMstore)
	register(vm.MSTORE8, opMstore8)
	register(vm.SLOAD, opSload)
	register(vm.SSTORE, opSstore)
	register(vm.MSIZE, opMsize)
	register(vm.GAS, opGas)
}

// lookup returns the table handler for op, or nil if op is unassigned or
// is one of the classes the interpreter loop handles inline.
func lookup(op vm.OpCode) execFunc {
	return dispatchTable[op]
}
