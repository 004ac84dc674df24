package evmi

import "github.com/ethereum/go-ethereum/log"

// Default capacity hints; tunable per call via WithStackHint/WithStorageHint/
// WithMemoryHint so a caller running many small invocations in a tight loop
// can avoid repeated slice growth without forcing every invocation to pay
// for worst-case capacity up front.
const (
	defaultStackHint   = 32
	defaultStorageHint = 10
	defaultMemoryHint  = 32
)

// options collects the optional knobs Evaluate accepts.
type options struct {
	stackHint   int
	storageHint int
	memoryHint  int
	initStorage Storage
	logger      log.Logger
	hooks       *Hooks
}

// EvalOption configures a single Evaluate call. The zero value of every
// option is "use the default", so callers only need to pass the options
// that matter to them.
type EvalOption func(*options)

// WithStackHint presizes the operand stack's backing array to n words.
func WithStackHint(n int) EvalOption {
	return func(o *options) { o.stackHint = n }
}

// WithStorageHint presizes the storage map's bucket count to n entries.
func WithStorageHint(n int) EvalOption {
	return func(o *options) { o.storageHint = n }
}

// WithMemoryHint presizes memory's backing array to n words of capacity.
func WithMemoryHint(n int) EvalOption {
	return func(o *options) { o.memoryHint = n }
}

// WithStorage seeds the invocation's persistent storage instead of
// starting from empty. The map is used directly (not copied), so the
// caller observes every SSTORE the run performs once Evaluate returns.
func WithStorage(s Storage) EvalOption {
	return func(o *options) { o.initStorage = s }
}

// WithLogger attaches a structured logger; handler-level diagnostics
// (halts, invalid opcodes, invalid jumps) are emitted at Debug level.
// Without this option, Evaluate runs silently.
func WithLogger(l log.Logger) EvalOption {
	return func(o *options) { o.logger = l }
}

// WithHooks attaches a set of step hooks (breakpoints, tracers) that
// observe every instruction as it runs. A hook whose PreRun returns an
// error pauses the run exactly like a fatal condition: success is false
// and ret is that error's text. Intended for the CLI debugger; plain
// Evaluate callers normally omit this option.
func WithHooks(h *Hooks) EvalOption {
	return func(o *options) { o.hooks = h }
}

// Evaluate runs bytecode to completion against ctx and returns whether the
// run ended in success (STOP, falling off the end of the code, or RETURN)
// or failure (REVERT, or any of the halting conditions in the package's
// sentinel errors). On failure, ret holds the REVERT payload if the run
// reverted deliberately, or the short ASCII reason string from
// reasonBytes if it halted on a fatal condition. Evaluate never panics on
// malformed bytecode or ctx; every failure mode it recognises is
// reported through the (bool, []byte) return, not an error or panic.
func Evaluate(ctx *ExecutionContext, bytecode []byte, opts ...EvalOption) (success bool, ret []byte) {
	o := options{
		stackHint:   defaultStackHint,
		storageHint: defaultStorageHint,
		memoryHint:  defaultMemoryHint,
	}
	for _, apply := range opts {
		apply(&o)
	}

	store := o.initStorage
	if store == nil {
		store = NewStorage(o.storageHint)
	}

	logger := o.logger
	if logger == nil {
		logger = discardLogger
	}

	if ctx == nil {
		ctx = NewExecutionContext()
	}

	in := &interpreter{
		code:  bytecode,
		jd:    analyzeJumpdests(bytecode),
		stack: NewStack(o.stackHint),
		mem:   NewMemory(o.memoryHint),
		store: store,
		ctx:   ctx,
		log:   logger,
		hooks: o.hooks,
	}
	return in.run()
}
