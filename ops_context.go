package evmi

// Execution-context accessor opcodes. All read from the immutable
// ExecutionContext; they fail only on stack underflow or overflow.
// Address words are the 20-byte value
// zero-padded on the left to 32 bytes, matching go-ethereum's own
// ADDRESS/ORIGIN/CALLER convention.

func opAddress(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	return s.Push(addressToWord(ctx.Address))
}

func opBalance(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	addrWord, e := s.Peek()
	if e != nil {
		return e
	}
	addr := addrWord.Bytes20()
	bal := ctx.Balance(addr)
	*addrWord = bal
	return nil
}

func opOrigin(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	return s.Push(addressToWord(ctx.Origin))
}

func opCaller(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	return s.Push(addressToWord(ctx.Caller))
}

func opCallValue(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	return s.Push(ctx.CallValue)
}

// getData returns src[start:start+size], zero-padded past the end of
// src, overflow-safe in start; used by CALLDATALOAD (CALLDATACOPY and
// CODECOPY go through Memory.CopyIn instead).
func getData(src []byte, start, size uint64) []byte {
	return rightPadSlice(src, start, size)
}

// CALLDATALOAD(off): reads 32 bytes from calldata at off, zero past end.
func opCallDataLoad(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	off, e := s.Peek()
	if e != nil {
		return e
	}
	offset, overflow := off.Uint64WithOverflow()
	if overflow {
		off.Clear()
		return nil
	}
	off.SetBytes(getData(ctx.Calldata, offset, WordSize))
	return nil
}

func opCallDataSize(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	return s.Push(WordFromUint64(uint64(len(ctx.Calldata))))
}

// CALLDATACOPY(destOff, srcOff, size): copies calldata into memory with
// zero-fill past end and memory expansion.
func opCallDataCopy(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	memOffset, e := s.Pop()
	if e != nil {
		return e
	}
	dataOffset, e := s.Pop()
	if e != nil {
		return e
	}
	length, e := s.Pop()
	if e != nil {
		return e
	}
	dataOffset64, overflow := dataOffset.Uint64WithOverflow()
	if overflow {
		dataOffset64 = ^uint64(0)
	}
	m.CopyIn(memOffset.Uint64(), ctx.Calldata, dataOffset64, length.Uint64())
	return nil
}

func opCoinbase(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	return s.Push(addressToWord(ctx.Coinbase))
}

func opTimestamp(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	return s.Push(ctx.Timestamp)
}

func opNumber(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	return s.Push(ctx.Number)
}

func opDifficulty(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	return s.Push(ctx.Difficulty)
}

func opGasLimit(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	return s.Push(ctx.GasLimit)
}

func opChainID(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	return s.Push(ctx.ChainID)
}

func opSelfBalance(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	return s.Push(ctx.SelfBalance())
}

func opBaseFee(s *Stack, m *Memory, store Storage, ctx *ExecutionContext) error {
	return s.Push(ctx.BaseFee)
}
