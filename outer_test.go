package zforth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHost captures PRINT/EMIT output so the end-to-end scenarios in
// spec.md §8 can be asserted against, without pulling in cmd/zforth's
// terminal-oriented Host.
type recordingHost struct {
	NopHost
	printed []Cell
	emitted []byte
}

func (h *recordingHost) Sys(e *Engine, id Cell, lastWord []byte) InputState {
	switch id {
	case 0: // emit
		h.emitted = append(h.emitted, byte(e.Pop()))
	case 1: // print
		h.printed = append(h.printed, e.Pop())
	case 2: // type
		n := e.Pop()
		addr := e.Pop()
		h.emitted = append(h.emitted, e.DictBytes(Addr(addr), int(n))...)
	}
	return StateInterpret
}

func newTestEngine(t *testing.T) (*Engine, *recordingHost) {
	t.Helper()
	host := &recordingHost{}
	e := New(WithHost(host))
	require.Equal(t, OK, LoadPrelude(e))
	return e, host
}

func TestEvalAdditionAndPrint(t *testing.T) {
	e, host := newTestEngine(t)
	r := e.Eval("1 2 + . ")
	require.Equal(t, OK, r)
	assert.Equal(t, []Cell{3}, host.printed)
	assert.Equal(t, 0, e.DSP())
}

func TestEvalColonDefinitionAndCall(t *testing.T) {
	e, host := newTestEngine(t)
	r := e.Eval(": sq dup * ; 5 sq . ")
	require.Equal(t, OK, r)
	assert.Equal(t, []Cell{25}, host.printed)
	assert.Equal(t, 0, e.DSP())

	_, _, _, ok := e.find([]byte("sq"))
	assert.True(t, ok)
}

func TestEvalRecursiveFactorial(t *testing.T) {
	e, host := newTestEngine(t)
	src := ": fact dup if dup 1 - fact * else drop 1 then ; 5 fact . "
	r := e.Eval(src)
	require.Equal(t, OK, r)
	assert.Equal(t, []Cell{120}, host.printed)
}

func TestEvalDivisionByZeroRecovers(t *testing.T) {
	e, host := newTestEngine(t)
	r := e.Eval("1 0 / ")
	assert.Equal(t, AbortDivisionByZero, r)

	r2 := e.Eval("7 . ")
	require.Equal(t, OK, r2)
	assert.Equal(t, []Cell{7}, host.printed)
}

func TestEvalMultipleValuesLeftOnStack(t *testing.T) {
	e, _ := newTestEngine(t)
	r := e.Eval(": x 1 2 3 ; x ")
	require.Equal(t, OK, r)
	require.Equal(t, 3, e.DSP())
	assert.Equal(t, Cell(3), e.Pick(0))
	assert.Equal(t, Cell(2), e.Pick(1))
	assert.Equal(t, Cell(1), e.Pick(2))
}

func TestEvalReturnStackRoundTrip(t *testing.T) {
	e, _ := newTestEngine(t)
	r := e.Eval("10 >r 20 r> ")
	require.Equal(t, OK, r)
	assert.Equal(t, 2, e.DSP())
	assert.Equal(t, Cell(20), e.Pick(0))
	assert.Equal(t, Cell(10), e.Pick(1))
	assert.Equal(t, 0, e.RSP())
}

func TestEvalUnknownWordAborts(t *testing.T) {
	e, _ := newTestEngine(t)
	r := e.Eval("bogusword ")
	assert.Equal(t, AbortNotAWord, r)
	assert.Equal(t, 0, e.DSP())
	v, _ := e.UservarGet(UserVarCompiling)
	assert.Equal(t, Cell(0), v)
}

func TestEvalAbortResetsCompilingAndStacksButKeepsDictionary(t *testing.T) {
	e, _ := newTestEngine(t)
	r := e.Eval(": half dup 2 / ; : boom immediate 1 0 / ; ")
	require.Equal(t, OK, r)

	hereBefore, _ := e.UservarGet(UserVarHere)

	// boom is immediate, so it runs (and divides by zero) while broken is
	// still being compiled.
	r2 := e.Eval(": broken boom ")
	assert.Equal(t, AbortDivisionByZero, r2)

	v, _ := e.UservarGet(UserVarCompiling)
	assert.Equal(t, Cell(0), v, "COMPILING must be cleared after abort")
	assert.Equal(t, 0, e.DSP())
	assert.Equal(t, 0, e.RSP())

	hereAfter, _ := e.UservarGet(UserVarHere)
	assert.GreaterOrEqual(t, hereAfter, hereBefore, "HERE is not rewound by abort")

	_, _, _, ok := e.find([]byte("half"))
	assert.True(t, ok, "previously completed definitions remain intact")

	r3 := e.Eval("4 half . ")
	require.Equal(t, OK, r3)
}

func TestEvalStringLiteralAndType(t *testing.T) {
	e, host := newTestEngine(t)
	r := e.Eval(`: greet " hi" type ; greet `)
	require.Equal(t, OK, r)
	assert.Equal(t, "hi", string(host.emitted))
}

func TestEvalControlFlowWhileLoop(t *testing.T) {
	e, host := newTestEngine(t)
	src := `: count3 0 begin dup 3 < while dup . 1 + repeat drop ; count3 `
	r := e.Eval(src)
	require.Equal(t, OK, r)
	assert.Equal(t, []Cell{0, 1, 2}, host.printed)
}

func TestEvalUntilLoop(t *testing.T) {
	e, host := newTestEngine(t)
	src := `: down 3 begin dup . 1 - dup 0 = until drop ; down `
	r := e.Eval(src)
	require.Equal(t, OK, r)
	assert.Equal(t, []Cell{3, 2, 1}, host.printed)
}

func TestPickBeyondDepthAborts(t *testing.T) {
	e, _ := newTestEngine(t)
	r := e.Eval("1 2 3 pick ")
	assert.Equal(t, AbortDStackUnderrun, r)
}
