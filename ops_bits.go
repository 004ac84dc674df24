package evmi

// Shift opcodes (EIP-145): pop shift then value and push value << / >>
// shift, zero for shift >= 256 (SAR sign-fills instead). Not to be
// confused with NOT, a distinct bitwise-complement opcode.

func opSHL(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	shift, e := s.Pop()
	if e != nil {
		return e
	}
	value, e := s.Peek()
	if e != nil {
		return e
	}
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil
}

func opSHR(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	shift, e := s.Pop()
	if e != nil {
		return e
	}
	value, e := s.Peek()
	if e != nil {
		return e
	}
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil
}

// SAR: arithmetic shift right. For shift >= 256 the result is all-zero if
// value's sign bit is clear, all-one if set.
func opSAR(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	shift, e := s.Pop()
	if e != nil {
		return e
	}
	value, e := s.Peek()
	if e != nil {
		return e
	}
	if !shift.LtUint64(256) {
		if value.Sign() >= 0 {
			value.Clear()
		} else {
			value.SetAllOne()
		}
		return nil
	}
	value.SRsh(value, uint(shift.Uint64()))
	return nil
}
