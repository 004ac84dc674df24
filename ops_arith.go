package evmi

// Arithmetic and bitwise opcode handlers, opcode range 0x01..0x1d. Every
// binary op pops the top two words a (top), b (next), and pushes op(a,b);
// results wrap modulo 2**256. Division/modulo by zero yield 0 rather than
// trapping, per the EVM convention: arithmetic never fails.

func opAdd(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	x, e := s.Pop()
	if e != nil {
		return e
	}
	y, e := s.Peek()
	if e != nil {
		return e
	}
	y.Add(&x, y)
	return nil
}

func opSub(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	x, e := s.Pop()
	if e != nil {
		return e
	}
	y, e := s.Peek()
	if e != nil {
		return e
	}
	y.Sub(&x, y)
	return nil
}

func opMul(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	x, e := s.Pop()
	if e != nil {
		return e
	}
	y, e := s.Peek()
	if e != nil {
		return e
	}
	y.Mul(&x, y)
	return nil
}

func opDiv(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	x, e := s.Pop()
	if e != nil {
		return e
	}
	y, e := s.Peek()
	if e != nil {
		return e
	}
	y.Div(&x, y)
	return nil
}

func opSdiv(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	x, e := s.Pop()
	if e != nil {
		return e
	}
	y, e := s.Peek()
	if e != nil {
		return e
	}
	y.SDiv(&x, y)
	return nil
}

func opMod(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	x, e := s.Pop()
	if e != nil {
		return e
	}
	y, e := s.Peek()
	if e != nil {
		return e
	}
	y.Mod(&x, y)
	return nil
}

func opSmod(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	x, e := s.Pop()
	if e != nil {
		return e
	}
	y, e := s.Peek()
	if e != nil {
		return e
	}
	y.SMod(&x, y)
	return nil
}

func opAddmod(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	x, e := s.Pop()
	if e != nil {
		return e
	}
	y, e := s.Pop()
	if e != nil {
		return e
	}
	z, e := s.Peek()
	if e != nil {
		return e
	}
	if z.IsZero() {
		z.Clear()
	} else {
		z.AddMod(&x, &y, z)
	}
	return nil
}

func opMulmod(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	x, e := s.Pop()
	if e != nil {
		return e
	}
	y, e := s.Pop()
	if e != nil {
		return e
	}
	z, e := s.Peek()
	if e != nil {
		return e
	}
	if z.IsZero() {
		z.Clear()
	} else {
		z.MulMod(&x, &y, z)
	}
	return nil
}

// EXP(base, exponent): right-to-left square-and-multiply, mod 2**256.
func opExp(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	base, e := s.Pop()
	if e != nil {
		return e
	}
	exponent, e := s.Peek()
	if e != nil {
		return e
	}
	exponent.Exp(&base, exponent)
	return nil
}

// SIGNEXTEND(b, x): sign-extends x from byte position b (0 = low byte);
// for b >= 31 the result is x unchanged.
func opSignExtend(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	back, e := s.Pop()
	if e != nil {
		return e
	}
	num, e := s.Peek()
	if e != nil {
		return e
	}
	num.ExtendSign(num, &back)
	return nil
}

func opLt(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	x, e := s.Pop()
	if e != nil {
		return e
	}
	y, e := s.Peek()
	if e != nil {
		return e
	}
	setBool(y, x.Lt(y))
	return nil
}

func opGt(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	x, e := s.Pop()
	if e != nil {
		return e
	}
	y, e := s.Peek()
	if e != nil {
		return e
	}
	setBool(y, x.Gt(y))
	return nil
}

func opSlt(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	x, e := s.Pop()
	if e != nil {
		return e
	}
	y, e := s.Peek()
	if e != nil {
		return e
	}
	setBool(y, x.Slt(y))
	return nil
}

func opSgt(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	x, e := s.Pop()
	if e != nil {
		return e
	}
	y, e := s.Peek()
	if e != nil {
		return e
	}
	setBool(y, x.Sgt(y))
	return nil
}

func opEq(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	x, e := s.Pop()
	if e != nil {
		return e
	}
	y, e := s.Peek()
	if e != nil {
		return e
	}
	setBool(y, x.Eq(y))
	return nil
}

func opIszero(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	x, e := s.Peek()
	if e != nil {
		return e
	}
	setBool(x, x.IsZero())
	return nil
}

func opAnd(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	x, e := s.Pop()
	if e != nil {
		return e
	}
	y, e := s.Peek()
	if e != nil {
		return e
	}
	y.And(&x, y)
	return nil
}

func opOr(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	x, e := s.Pop()
	if e != nil {
		return e
	}
	y, e := s.Peek()
	if e != nil {
		return e
	}
	y.Or(&x, y)
	return nil
}

func opXor(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	x, e := s.Pop()
	if e != nil {
		return e
	}
	y, e := s.Peek()
	if e != nil {
		return e
	}
	y.Xor(&x, y)
	return nil
}

func opNot(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	x, e := s.Peek()
	if e != nil {
		return e
	}
	x.Not(x)
	return nil
}

// BYTE(i, x): byte i of x counting from the most significant byte; i>=32
// yields 0.
func opByte(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	th, e := s.Pop()
	if e != nil {
		return e
	}
	val, e := s.Peek()
	if e != nil {
		return e
	}
	val.Byte(&th)
	return nil
}

func opSha3(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	offset, e := s.Pop()
	if e != nil {
		return e
	}
	size, e := s.Peek()
	if e != nil {
		return e
	}
	digest := m.Keccak(offset.Uint64(), size.Uint64())
	*size = digest
	return nil
}

// setBool writes 1 or 0 into w, the shared tail of every comparison op.
func setBool(w *Word, v bool) {
	if v {
		w.SetOne()
	} else {
		w.Clear()
	}
}
