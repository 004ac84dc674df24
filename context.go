package evmi

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ExecutionContext is the immutable snapshot an Evaluate invocation is
// handed: origin, caller, self-address, callvalue, block fields, chain
// id, basefee, balances, and calldata. It is borrowed read-only by every
// opcode handler, no handler ever mutates it, and is safe to share
// across concurrent Evaluate calls (the host may construct one
// ExecutionContext and fan it out to many goroutines, each running its
// own Stack/Memory/Storage).
type ExecutionContext struct {
	Origin  common.Address
	Caller  common.Address
	Address common.Address

	CallValue Word

	Coinbase   common.Address
	Timestamp  Word
	Number     Word
	GasLimit   Word
	Difficulty Word
	ChainID    Word
	BaseFee    Word

	// Balances maps an address to its token balance, defaulting to 0 for
	// any address not present. Populated by the host from on-chain state;
	// this core never fetches it over the network.
	Balances map[common.Address]Word

	// Calldata is the read-only input byte string supplied by the caller.
	Calldata []byte
}

// Balance returns the balance of addr, defaulting to 0 when absent.
func (c *ExecutionContext) Balance(addr common.Address) Word {
	if c.Balances == nil {
		return ZeroWord()
	}
	return c.Balances[addr]
}

// SelfBalance returns the balance of the executing account (c.Address).
func (c *ExecutionContext) SelfBalance() Word {
	return c.Balance(c.Address)
}

// NewExecutionContext returns a context with a zero CallValue and an
// empty, non-nil Balances map, ready for the caller to fill in.
func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{
		CallValue: ZeroWord(),
		Balances:  map[common.Address]Word{},
	}
}

// addressToWord zero-pads a 20-byte address on the left to a 32-byte Word,
// the representation ADDRESS/ORIGIN/CALLER/COINBASE push to the stack.
func addressToWord(addr common.Address) Word {
	return WordFromBytes(addr.Bytes())
}

// wordFromUint64Big is a convenience used by CLI fixture decoding where
// block fields arrive as plain Go integers rather than hex words.
func wordFromUint64Big(v uint64) Word {
	var w Word
	w.SetFromBig(new(big.Int).SetUint64(v))
	return w
}
