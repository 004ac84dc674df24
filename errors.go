package evmi

import "errors"

// Sentinel errors for the interpreter's fatal conditions. Every one of
// these halts the running Evaluate invocation; none are retried. They are
// declared with plain errors.New, the same way upstream go-ethereum
// declares vm.ErrInvalidJump and friends; callers compare with
// errors.Is, and call sites that need to attach dynamic context (the
// offending opcode, the pc, the requested bounds) wrap these with
// github.com/pkg/errors rather than declaring new error types.
var (
	ErrInvalidOpcode   = errors.New("invalid op")
	ErrInvalidJump     = errors.New("invalid jump")
	ErrStackUnderflow  = errors.New("stack underflow")
	ErrStackOverflow   = errors.New("stack overflow")
	ErrBadReturnBounds = errors.New("bad return")
)

// reasonBytes maps a halting error to the short ASCII message the public
// API returns as ret when success is false. Errors not originating from
// this package (defensive fallback) surface their Error() text verbatim.
func reasonBytes(err error) []byte {
	switch {
	case errors.Is(err, ErrInvalidOpcode):
		return []byte(ErrInvalidOpcode.Error())
	case errors.Is(err, ErrInvalidJump):
		return []byte(ErrInvalidJump.Error())
	case errors.Is(err, ErrStackUnderflow):
		return []byte(ErrStackUnderflow.Error())
	case errors.Is(err, ErrStackOverflow):
		return []byte(ErrStackOverflow.Error())
	case errors.Is(err, ErrBadReturnBounds):
		return []byte(ErrBadReturnBounds.Error())
	default:
		return []byte(err.Error())
	}
}
