package zforth

// Prim enumerates the engine's built-in opcodes. The ordering matches
// zforth.c's zf_prim enum exactly: a dumped dictionary image compiled by
// one build is only meaningful to a build with this same numbering, since
// compiled word bodies store raw opcode values, not symbolic names.
type Prim int

const (
	PrimExit Prim = iota
	PrimLit
	PrimLtz
	PrimCol
	PrimSemicol
	PrimAdd
	PrimSub
	PrimMul
	PrimDiv
	PrimMod
	PrimDrop
	PrimDup
	PrimPickr
	PrimImmediate
	PrimPeek
	PrimPoke
	PrimSwap
	PrimRot
	PrimJmp
	PrimJmp0
	PrimTick
	PrimComment
	PrimPushr
	PrimPopr
	PrimEqual
	PrimSys
	PrimPick
	PrimComma
	PrimKey
	PrimLits
	PrimLen
	PrimAnd
	PrimOr
	PrimXor
	PrimShl
	PrimShr
	PrimLiteral

	PrimCount
)

// primNames pairs each primitive with its dictionary name. A leading
// underscore marks the word immediate; bootstrap strips it before
// creating the dictionary entry.
var primNames = [PrimCount]string{
	PrimExit:      "exit",
	PrimLit:       "lit",
	PrimLtz:       "<0",
	PrimCol:       ":",
	PrimSemicol:   "_;",
	PrimAdd:       "+",
	PrimSub:       "-",
	PrimMul:       "*",
	PrimDiv:       "/",
	PrimMod:       "%",
	PrimDrop:      "drop",
	PrimDup:       "dup",
	PrimPickr:     "pickr",
	PrimImmediate: "_immediate",
	PrimPeek:      "@@",
	PrimPoke:      "!!",
	PrimSwap:      "swap",
	PrimRot:       "rot",
	PrimJmp:       "jmp",
	PrimJmp0:      "jmp0",
	PrimTick:      "'",
	PrimComment:   "_(",
	PrimPushr:     ">r",
	PrimPopr:      "r>",
	PrimEqual:     "=",
	PrimSys:       "sys",
	PrimPick:      "pick",
	PrimComma:     ",,",
	PrimKey:       "key",
	PrimLits:      "lits",
	PrimLen:       "##",
	PrimAnd:       "&",
	PrimOr:        "|",
	PrimXor:       "^",
	PrimShl:       "<<",
	PrimShr:       ">>",
	PrimLiteral:   "_literal",
}

// peek reads the value at addr, special-casing the low ZF_USERVAR_COUNT
// addresses as direct user-variable access regardless of size, matching
// zforth.c's peek(). It returns the value and the number of bytes the
// access consumed (always 1 for a user variable).
func (e *Engine) peek(addr Addr, size MemSize) (Cell, Addr) {
	if int(addr) < int(UserVarCount) {
		return Cell(e.getUservar(UserVar(addr))), 1
	}
	return e.dictGetCellTyped(addr, size)
}

func (e *Engine) poke(addr Addr, v Cell, size MemSize) {
	if int(addr) < int(UserVarCount) {
		e.setUservar(UserVar(addr), Addr(v))
		return
	}
	e.dictPutCellTyped(addr, v, size)
}

// doPrim executes one primitive through primTable, mirroring zforth.c's
// do_prim switch translated into the teacher's own vmCodeTable
// function-table idiom (first.go): one handler method per opcode, dispatched
// by index rather than a big switch. input carries the resumed char/word
// when a previously suspended primitive is being re-entered (nil otherwise);
// see run() in inner.go for how it's threaded through.
func (e *Engine) doPrim(op Prim, input []byte) {
	if op < 0 || op >= PrimCount {
		e.Abort(AbortInternalError)
	}
	primTable[op](e, input)
}

var primTable [PrimCount]func(e *Engine, input []byte)

func init() {
	primTable = [PrimCount]func(e *Engine, input []byte){
		PrimExit:      (*Engine).primExit,
		PrimLit:       (*Engine).primLit,
		PrimLtz:       (*Engine).primLtz,
		PrimCol:       (*Engine).primCol,
		PrimSemicol:   (*Engine).primSemicol,
		PrimAdd:       (*Engine).primAdd,
		PrimSub:       (*Engine).primSub,
		PrimMul:       (*Engine).primMul,
		PrimDiv:       (*Engine).primDiv,
		PrimMod:       (*Engine).primMod,
		PrimDrop:      (*Engine).primDrop,
		PrimDup:       (*Engine).primDup,
		PrimPickr:     (*Engine).primPickr,
		PrimImmediate: (*Engine).primImmediate,
		PrimPeek:      (*Engine).primPeek,
		PrimPoke:      (*Engine).primPoke,
		PrimSwap:      (*Engine).primSwap,
		PrimRot:       (*Engine).primRot,
		PrimJmp:       (*Engine).primJmp,
		PrimJmp0:      (*Engine).primJmp0,
		PrimTick:      (*Engine).primTick,
		PrimComment:   (*Engine).primComment,
		PrimPushr:     (*Engine).primPushr,
		PrimPopr:      (*Engine).primPopr,
		PrimEqual:     (*Engine).primEqual,
		PrimSys:       (*Engine).primSys,
		PrimPick:      (*Engine).primPick,
		PrimComma:     (*Engine).primComma,
		PrimKey:       (*Engine).primKey,
		PrimLits:      (*Engine).primLits,
		PrimLen:       (*Engine).primLen,
		PrimAnd:       (*Engine).primAnd,
		PrimOr:        (*Engine).primOr,
		PrimXor:       (*Engine).primXor,
		PrimShl:       (*Engine).primShl,
		PrimShr:       (*Engine).primShr,
		PrimLiteral:   (*Engine).primLiteral,
	}
}

// --- control/compile -----------------------------------------------------

func (e *Engine) primCol(input []byte) {
	// Start of word definition; needs the following word from input.
	if input == nil {
		e.inputState = StatePassWord
	} else {
		e.create(input, false)
		e.setUservar(UserVarCompiling, 1)
	}
}

func (e *Engine) primSemicol([]byte) {
	e.dictAddOp(Cell(PrimExit))
	e.setUservar(UserVarCompiling, 0)
}

func (e *Engine) primImmediate([]byte) {
	e.makeImmediate()
}

func (e *Engine) primLiteral([]byte) {
	// Compile-time: fold the top of stack into the definition as a
	// literal. No-op when not compiling.
	if e.getUservar(UserVarCompiling) != 0 {
		e.dictAddLit(e.Pop())
	}
}

func (e *Engine) primJmp([]byte) {
	v, n := e.dictGetCellVar(e.ip)
	e.ip += n
	e.ip = Addr(v)
}

func (e *Engine) primJmp0([]byte) {
	v, n := e.dictGetCellVar(e.ip)
	e.ip += n
	if e.Pop() == 0 {
		e.ip = Addr(v)
	}
}

func (e *Engine) primTick(input []byte) {
	if e.getUservar(UserVarCompiling) != 0 {
		v, n := e.dictGetCellVar(e.ip)
		e.ip += n
		e.Push(v)
	} else if input != nil {
		_, body, _, ok := e.find(input)
		if !ok {
			e.Abort(AbortNotAWord)
		}
		e.Push(Cell(body))
	} else {
		e.inputState = StatePassWord
	}
}

func (e *Engine) primComment(input []byte) {
	if input == nil || input[0] != ')' {
		e.inputState = StatePassChar
	}
}

func (e *Engine) primComma([]byte) {
	size := MemSize(e.Pop())
	v := e.Pop()
	e.dictAddCellTyped(v, size)
}

func (e *Engine) primLits([]byte) {
	v, n := e.dictGetCellVar(e.ip)
	e.ip += n
	e.Push(Cell(e.ip))
	e.Push(v)
	e.ip += Addr(v)
}

func (e *Engine) primLit([]byte) {
	v, n := e.dictGetCellVar(e.ip)
	e.ip += n
	e.Push(v)
}

func (e *Engine) primExit([]byte) {
	e.ip = Addr(e.popr())
}

// --- stack -----------------------------------------------------------------

func (e *Engine) primDup([]byte) {
	d1 := e.Pop()
	e.Push(d1)
	e.Push(d1)
}

func (e *Engine) primDrop([]byte) {
	e.Pop()
}

func (e *Engine) primSwap([]byte) {
	d1, d2 := e.Pop(), e.Pop()
	e.Push(d1)
	e.Push(d2)
}

func (e *Engine) primRot([]byte) {
	d1, d2, d3 := e.Pop(), e.Pop(), e.Pop()
	e.Push(d2)
	e.Push(d1)
	e.Push(d3)
}

func (e *Engine) primPick([]byte) {
	n := Addr(e.Pop())
	e.Push(e.Pick(n))
}

func (e *Engine) primPushr([]byte) {
	e.pushr(e.Pop())
}

func (e *Engine) primPopr([]byte) {
	e.Push(e.popr())
}

func (e *Engine) primPickr([]byte) {
	n := Addr(e.Pop())
	e.Push(e.pickr(n))
}

// --- memory ------------------------------------------------------------

func (e *Engine) primPeek([]byte) {
	size := MemSize(e.Pop())
	addr := Addr(e.Pop())
	v, _ := e.peek(addr, size)
	e.Push(v)
}

func (e *Engine) primPoke([]byte) {
	size := MemSize(e.Pop())
	addr := Addr(e.Pop())
	v := e.Pop()
	e.poke(addr, v, size)
}

func (e *Engine) primLen([]byte) {
	size := MemSize(e.Pop())
	addr := Addr(e.Pop())
	_, n := e.peek(addr, size)
	e.Push(Cell(n))
}

// --- arithmetic/logic ----------------------------------------------------

func (e *Engine) primAdd([]byte) {
	d1, d2 := e.Pop(), e.Pop()
	e.Push(d1 + d2)
}

func (e *Engine) primSub([]byte) {
	d1, d2 := e.Pop(), e.Pop()
	e.Push(d2 - d1)
}

func (e *Engine) primMul([]byte) {
	e.Push(e.Pop() * e.Pop())
}

func (e *Engine) primDiv([]byte) {
	d2 := e.Pop()
	if d2 == 0 {
		e.Abort(AbortDivisionByZero)
	}
	d1 := e.Pop()
	e.Push(d1 / d2)
}

func (e *Engine) primMod([]byte) {
	d2 := e.Pop()
	if d2 == 0 {
		e.Abort(AbortDivisionByZero)
	}
	d1 := e.Pop()
	e.Push(d1 % d2)
}

func (e *Engine) primLtz([]byte) {
	if e.Pop() < 0 {
		e.Push(True)
	} else {
		e.Push(False)
	}
}

func (e *Engine) primEqual([]byte) {
	if e.Pop() == e.Pop() {
		e.Push(True)
	} else {
		e.Push(False)
	}
}

func (e *Engine) primAnd([]byte) {
	e.Push(Cell(Int(e.Pop()) & Int(e.Pop())))
}

func (e *Engine) primOr([]byte) {
	e.Push(Cell(Int(e.Pop()) | Int(e.Pop())))
}

func (e *Engine) primXor([]byte) {
	e.Push(Cell(Int(e.Pop()) ^ Int(e.Pop())))
}

func (e *Engine) primShl([]byte) {
	d1 := e.Pop()
	e.Push(Cell(Int(e.Pop()) << Int(d1)))
}

func (e *Engine) primShr([]byte) {
	d1 := e.Pop()
	e.Push(Cell(Int(e.Pop()) >> Int(d1)))
}

// --- I/O -------------------------------------------------------------------

func (e *Engine) primSys(input []byte) {
	id := e.Pop()
	e.inputState = e.host.Sys(e, id, input)
	if e.inputState != StateInterpret {
		e.Push(id) // re-push id so the resumed call sees it again
	}
}

func (e *Engine) primKey(input []byte) {
	if input == nil {
		e.inputState = StatePassChar
	} else {
		e.Push(Cell(input[0]))
	}
}
