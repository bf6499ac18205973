package zforth

// Host supplies the I/O and host-callback boundary the engine itself never
// implements: syscalls (EMIT/PRINT/TELL and application-defined ids),
// number parsing for tokens that aren't words, and trace output.
//
// Sys is invoked by the SYS primitive. lastWord is nil unless a previous
// call to Sys for the same id returned a state other than StateInterpret,
// in which case it carries the word or single character the outer
// interpreter collected to resume the call (mirroring KEY/TICK/COL/COMMENT
// suspension).
//
// ParseNum parses buf (a token that wasn't found in the dictionary) as a
// number in the host's preferred format. ok is false if buf isn't a valid
// number, in which case the outer interpreter aborts with AbortNotAWord.
//
// Trace receives formatted trace text whenever the TRACE user variable is
// non-zero; implementations typically no-op when tracing is disabled.
type Host interface {
	Sys(e *Engine, id Cell, lastWord []byte) InputState
	ParseNum(e *Engine, buf string) (Cell, bool)
	Trace(format string, args ...interface{})
}

// NopHost implements Host with no-ops everywhere except ParseNum, which
// parses signed integer tokens (decimal, or 0x/0o/0b/0-prefixed). It is useful for tests and
// as an embeddable default before a real Host is wired up.
type NopHost struct{}

func (NopHost) Sys(e *Engine, id Cell, lastWord []byte) InputState { return StateInterpret }
func (NopHost) ParseNum(e *Engine, buf string) (Cell, bool)        { return parseNumDefault(buf) }
func (NopHost) Trace(format string, args ...interface{})          {}

// Engine is the owned aggregate of all mutable interpreter state: the
// dictionary, both stacks, the instruction pointer, the suspension state
// and the word-accumulator buffer. The zero value is not ready to use; call
// New.
type Engine struct {
	dict [DictSize]byte

	dstack [DStackSize]Cell
	rstack [RStackSize]Cell

	ip         Addr
	inputState InputState

	readBuf [ReadBufSize]byte
	readLen int

	host Host

	// initTrace holds the trace flag requested via WithTrace until New
	// reaches Init, since the TRACE user variable doesn't exist yet while
	// options are being applied.
	initTrace bool
}

// New creates an Engine, applies opts, resets it via Init, and bootstraps
// the primitive/user-variable dictionary entries. The returned Engine is
// immediately ready for Eval.
func New(opts ...Option) *Engine {
	e := &Engine{host: NopHost{}}
	for _, opt := range opts {
		opt.apply(e)
	}
	e.Init(e.initTrace)
	Bootstrap(e)
	return e
}

// Init resets the user variables and both stacks to their pre-bootstrap
// state (empty word list), per spec.md §6.1. It does not clear the dictionary bytes
// themselves (LATEST=0 makes any prior words unreachable from a fresh
// Init, which is what restoring a Load'ed image followed by Init would NOT
// want -- callers that Load an image should not call Init again).
func (e *Engine) Init(trace bool) {
	e.setUservar(UserVarHere, Addr(int(UserVarCount)*2))
	e.setUservar(UserVarLatest, 0)
	e.setUservar(UserVarTrace, boolAddr(trace))
	e.setUservar(UserVarCompiling, 0)
	e.setUservar(UserVarPostpone, 0)
	e.setUservar(UserVarDSP, 0)
	e.setUservar(UserVarRSP, 0)
	e.ip = 0
	e.inputState = StateInterpret
	e.readLen = 0
}

func boolAddr(b bool) Addr {
	if b {
		return 1
	}
	return 0
}

// SetHost swaps the host implementation in place.
func (e *Engine) SetHost(h Host) {
	if h == nil {
		h = NopHost{}
	}
	e.host = h
}

// --- user variables -------------------------------------------------------

func (e *Engine) getUservar(id UserVar) Addr {
	off := int(id) * 2
	return Addr(e.dict[off]) | Addr(e.dict[off+1])<<8
}

func (e *Engine) setUservar(id UserVar, v Addr) {
	off := int(id) * 2
	e.dict[off] = byte(v)
	e.dict[off+1] = byte(v >> 8)
}

// UservarGet returns the current value of a user variable.
func (e *Engine) UservarGet(id UserVar) (Cell, Result) {
	if id < 0 || id >= UserVarCount {
		return 0, AbortInvalidUserVar
	}
	return Cell(e.getUservar(id)), OK
}

// UservarSet overwrites a user variable.
func (e *Engine) UservarSet(id UserVar, v Cell) Result {
	if id < 0 || id >= UserVarCount {
		return AbortInvalidUserVar
	}
	e.setUservar(id, Addr(v))
	return OK
}

// --- data stack -------------------------------------------------------

// Push pushes a value onto the data stack, aborting AbortDStackOverrun if
// full.
func (e *Engine) Push(v Cell) {
	dsp := e.getUservar(UserVarDSP)
	if int(dsp) >= DStackSize {
		e.Abort(AbortDStackOverrun)
	}
	e.dstack[dsp] = v
	e.setUservar(UserVarDSP, dsp+1)
}

// Pop pops the top of the data stack, aborting AbortDStackUnderrun if
// empty.
func (e *Engine) Pop() Cell {
	dsp := e.getUservar(UserVarDSP)
	if dsp == 0 {
		e.Abort(AbortDStackUnderrun)
	}
	dsp--
	e.setUservar(UserVarDSP, dsp)
	return e.dstack[dsp]
}

// Pick returns the n-th element from the top of the data stack (0 is the
// top) without popping it.
func (e *Engine) Pick(n Addr) Cell {
	dsp := e.getUservar(UserVarDSP)
	if Addr(n) >= dsp {
		e.Abort(AbortDStackUnderrun)
	}
	return e.dstack[dsp-n-1]
}

// --- return stack -----------------------------------------------------

func (e *Engine) pushr(v Cell) {
	rsp := e.getUservar(UserVarRSP)
	if int(rsp) >= RStackSize {
		e.Abort(AbortRStackOverrun)
	}
	e.rstack[rsp] = v
	e.setUservar(UserVarRSP, rsp+1)
}

func (e *Engine) popr() Cell {
	rsp := e.getUservar(UserVarRSP)
	if rsp == 0 {
		e.Abort(AbortRStackUnderrun)
	}
	rsp--
	e.setUservar(UserVarRSP, rsp)
	return e.rstack[rsp]
}

func (e *Engine) pickr(n Addr) Cell {
	rsp := e.getUservar(UserVarRSP)
	if Addr(n) >= rsp {
		e.Abort(AbortRStackUnderrun)
	}
	return e.rstack[rsp-n-1]
}

// DSP and RSP expose the current stack depths, mostly useful for tests and
// for the dump/trace tooling.
func (e *Engine) DSP() int { return int(e.getUservar(UserVarDSP)) }
func (e *Engine) RSP() int { return int(e.getUservar(UserVarRSP)) }

func (e *Engine) trace(format string, args ...interface{}) {
	if e.getUservar(UserVarTrace) != 0 {
		e.host.Trace(format, args...)
	}
}
