package evmi

// Session is a resumable wrapper around the interpreter, for callers
// that need to stop after each instruction (the CLI debugger's
// single-step and breakpoint-driven continue commands) rather than
// running a whole invocation to completion in one Evaluate call.
// Evaluate itself does not use Session; it drives interpreter.run
// directly.
type Session struct {
	in   *interpreter
	done bool
	ok   bool
	ret  []byte
}

// NewSession prepares a Session for bytecode against ctx, applying the
// same EvalOptions Evaluate accepts (stack/storage/memory hints, initial
// storage, logger, hooks).
func NewSession(ctx *ExecutionContext, bytecode []byte, opts ...EvalOption) *Session {
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

	return &Session{
		in: &interpreter{
			code:  bytecode,
			jd:    analyzeJumpdests(bytecode),
			stack: NewStack(o.stackHint),
			mem:   NewMemory(o.memoryHint),
			store: store,
			ctx:   ctx,
			log:   logger,
			hooks: o.hooks,
		},
	}
}

// Done reports whether the session has already terminated (normally or
// on a fatal condition). A hook pause such as a breakpoint does not end
// the session, so Done stays false.
func (s *Session) Done() bool { return s.done }

// Result returns the terminal (success, ret) pair once Done is true; it
// is meaningless before that.
func (s *Session) Result() (bool, []byte) { return s.ok, s.ret }

// Pc returns the current program counter.
func (s *Session) Pc() uint64 { return s.in.pc }

// Code returns the bytecode being run.
func (s *Session) Code() []byte { return s.in.code }

// Stack, Memory, Storage, and Ctx expose the live working set for
// inspection by CLI commands like "stack"/"mem"/"storage".
func (s *Session) Stack() *Stack             { return s.in.stack }
func (s *Session) Memory() *Memory           { return s.in.mem }
func (s *Session) Storage() Storage          { return s.in.store }
func (s *Session) Ctx() *ExecutionContext    { return s.in.ctx }
func (s *Session) Hooks() *Hooks             { return s.in.hooks }
func (s *Session) SetHooks(h *Hooks)         { s.in.hooks = h }

// Step executes exactly one instruction. It is a no-op returning the
// already-recorded result once the session is Done. A hook's PreRun
// error (e.g. a breakpoint) surfaces through err but leaves the session
// resumable; runStep reports it with done=false precisely so a paused
// session can be Step/Run-ed again later (detaching the offending hook
// first, typically). A fatal interpreter condition (bad opcode, stack
// under/overflow, invalid jump, ...) always comes back with done=true
// and ends the session for good, matching Evaluate's one-shot semantics.
func (s *Session) Step() (done bool, err error) {
	if s.done {
		return true, nil
	}
	if s.in.pc >= uint64(len(s.in.code)) {
		s.done, s.ok, s.ret = true, true, nil
		return true, nil
	}
	stepDone, ok, ret, e := s.in.runStep()
	if e != nil {
		if !stepDone {
			return false, e
		}
		_, reason := s.in.fail(e)
		s.done, s.ok, s.ret = true, false, reason
		return true, e
	}
	if stepDone {
		s.done, s.ok, s.ret = true, ok, ret
	}
	return s.done, nil
}

// Run steps until the session finishes, a hook pauses it, or maxSteps
// instructions have executed (maxSteps <= 0 means unlimited). It returns
// the same (done, err) pair as the Step call that stopped it; a hook
// pause reports done=false with a non-nil err, so Run must check err as
// well as done or it would spin forever retrying the same breakpoint.
func (s *Session) Run(maxSteps int) (done bool, err error) {
	for i := 0; maxSteps <= 0 || i < maxSteps; i++ {
		done, err = s.Step()
		if done || err != nil {
			return done, err
		}
	}
	return false, nil
}
