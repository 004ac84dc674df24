package evmi

import (
	"encoding/json"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/evmcore/evmi/util"
)

// Fixture is the on-disk JSON shape the CLI debugger loads and saves: an
// ExecutionContext plus the bytecode and calldata to run it against.
// Scoped to this core's single-invocation model: no Tx/Block/Chain tree
// and no network fetch, just the fields Evaluate actually consumes.
type Fixture struct {
	Origin  common.Address
	Caller  common.Address
	Address common.Address

	CallValue util.ByteSlice

	Coinbase   common.Address
	Timestamp  uint64
	Number     uint64
	GasLimit   uint64
	Difficulty uint64
	ChainID    uint64
	BaseFee    uint64

	Balances map[common.Address]util.ByteSlice
	Calldata util.ByteSlice
	Bytecode util.ByteSlice
}

// ToContext builds an ExecutionContext from the fixture, decoding each
// ByteSlice field into a Word.
func (f *Fixture) ToContext() *ExecutionContext {
	ctx := &ExecutionContext{
		Origin:     f.Origin,
		Caller:     f.Caller,
		Address:    f.Address,
		CallValue:  WordFromBytes(f.CallValue),
		Coinbase:   f.Coinbase,
		Timestamp:  wordFromUint64Big(f.Timestamp),
		Number:     wordFromUint64Big(f.Number),
		GasLimit:   wordFromUint64Big(f.GasLimit),
		Difficulty: wordFromUint64Big(f.Difficulty),
		ChainID:    wordFromUint64Big(f.ChainID),
		BaseFee:    wordFromUint64Big(f.BaseFee),
		Balances:   map[common.Address]Word{},
		Calldata:   f.Calldata,
	}
	for addr, bal := range f.Balances {
		ctx.Balances[addr] = WordFromBytes(bal)
	}
	return ctx
}

// Save writes the fixture to fn as indented JSON.
func (f *Fixture) Save(fn string) error {
	bs, e := json.MarshalIndent(f, "", "  ")
	if e != nil {
		return e
	}
	return os.WriteFile(fn, bs, 0644)
}

// LoadFixture reads and decodes a Fixture from fn.
func LoadFixture(fn string) (*Fixture, error) {
	bs, e := os.ReadFile(fn)
	if e != nil {
		return nil, e
	}
	var f Fixture
	if e := json.Unmarshal(bs, &f); e != nil {
		return nil, e
	}
	return &f, nil
}

// NewSampleFixture returns a small fixture exercising SLOAD/ADD/SSTORE/
// RETURN: it increments storage slot 0 (empty at the start, since a
// Fixture carries no storage) and returns the new value. It is written to
// disk on the CLI debugger's first run so there is always something to load.
func NewSampleFixture() *Fixture {
	addr := common.HexToAddress("0x1111111111111111111111111111111111111111")
	return &Fixture{
		Origin:    addr,
		Caller:    addr,
		Address:   addr,
		CallValue: util.ByteSlice{},
		Balances: map[common.Address]util.ByteSlice{
			addr: util.HexDec("056bc75e2d63100000"), // 100 ether, informational only
		},
		Calldata: util.ByteSlice{},
		Bytecode: util.HexDec(
			"60005460010160005560005460005260206000f3",
		),
	}
}
