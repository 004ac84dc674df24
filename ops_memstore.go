package evmi

import "math"

// placeholderGas is the deterministic value the GAS opcode pushes. This
// core performs no gas metering, so there is no real "remaining gas" to
// report; math.MaxInt64 (2**63 - 1) stands in as a documented, fixed
// placeholder rather than a guess at what an upstream gas schedule would say.
const placeholderGas = uint64(math.MaxInt64)

func opPop(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	_, e := s.Pop()
	return e
}

// MLOAD(off): returns the 32 bytes at off, expanding memory.
func opMload(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	v, e := s.Peek()
	if e != nil {
		return e
	}
	*v = m.Load32(v.Uint64())
	return nil
}

// MSTORE(off, w): writes 32 bytes at off, expanding memory.
func opMstore(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	ptr, e := s.Pop()
	if e != nil {
		return e
	}
	val, e := s.Pop()
	if e != nil {
		return e
	}
	m.Store32(ptr.Uint64(), &val)
	return nil
}

// MSTORE8(off, w): writes the low byte of w at off.
func opMstore8(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	ptr, e := s.Pop()
	if e != nil {
		return e
	}
	val, e := s.Pop()
	if e != nil {
		return e
	}
	m.Store8(ptr.Uint64(), byte(val.Uint64()))
	return nil
}

// SLOAD(k): returns 0 for missing keys.
func opSload(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	slot, e := s.Peek()
	if e != nil {
		return e
	}
	*slot = store.Load(*slot)
	return nil
}

// SSTORE(k, v): writing 0 removes the mapping (equivalent to default).
func opSstore(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	slot, e := s.Pop()
	if e != nil {
		return e
	}
	val, e := s.Pop()
	if e != nil {
		return e
	}
	store.Store(slot, val)
	return nil
}

func opMsize(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	return s.Push(WordFromUint64(m.Len()))
}

func opGas(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	return s.Push(WordFromUint64(placeholderGas))
}
