// Package util collects the small cross-cutting helpers shared by the
// interpreter core, the hooks package, and the CLI: hex-friendly byte
// slices for JSON fixtures, generic min/max, and the KECCAK-256 helper
// used by the SHA3 opcode.
package util

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// ZeroAddress is the all-zero 20-byte address, used as a default/sentinel.
var ZeroAddress common.Address

// ByteSlice marshals as a hex string in JSON instead of base64, matching
// how the CLI fixture format represents bytecode and calldata.
type ByteSlice []byte

func (s ByteSlice) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(s))
}
func (s *ByteSlice) UnmarshalJSON(data []byte) error {
	var str string
	if e := json.Unmarshal(data, &str); e != nil {
		return e
	}
	bs, e := hex.DecodeString(str)
	if e != nil {
		return e
	}
	*s = bs
	return nil
}

// MapToStruct round-trips in through JSON into out, used by the hooks
// package to rehydrate a polymorphic hook from its serialized fixture form.
func MapToStruct(in, out interface{}) error {
	buf := new(bytes.Buffer)
	if e := json.NewEncoder(buf).Encode(in); e != nil {
		return e
	}
	return json.NewDecoder(buf).Decode(out)
}

type ordered interface {
	int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

func Max[T ordered](x, y T) T {
	if x > y {
		return x
	}
	return y
}

func Min[T ordered](x, y T) T {
	if x < y {
		return x
	}
	return y
}

func HexEnc(data []byte) string {
	return fmt.Sprintf("%x", data)
}
func HexDec(data string) []byte {
	decoded, e := hex.DecodeString(data)
	if e != nil {
		return nil
	}
	return decoded
}

func FileWrite(fn string, data []byte) error {
	return os.WriteFile(fn, data, 0666)
}
func FileWriteStr(fn string, data string) error {
	return FileWrite(fn, []byte(data))
}
func FileExist(fn string) bool {
	_, err := os.Stat(fn)
	return err == nil || os.IsExist(err)
}

// Keccak256 returns the KECCAK-256 (pre-NIST padding) digest of bs, the
// hash function used by the SHA3 opcode.
func Keccak256(bs []byte) []byte {
	hash := sha3.NewLegacyKeccak256()
	hash.Write(bs)
	return hash.Sum(nil)
}
