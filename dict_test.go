package zforth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndFind(t *testing.T) {
	e := New()
	header := e.create([]byte("foo"), false)
	e.dictAddOp(Cell(PrimExit))

	h, body, immediate, ok := e.find([]byte("foo"))
	require.True(t, ok)
	assert.Equal(t, header, h)
	assert.False(t, immediate)
	assert.Equal(t, e.wordBody(header), body)
}

func TestFindMissingWord(t *testing.T) {
	e := New()
	_, _, _, ok := e.find([]byte("nope"))
	assert.False(t, ok)
}

func TestFindPrefersMostRecentDefinition(t *testing.T) {
	e := New()
	e.create([]byte("dup2"), false)
	e.dictAddLit(1)
	e.dictAddOp(Cell(PrimExit))
	e.create([]byte("dup2"), false)
	e.dictAddLit(2)
	e.dictAddOp(Cell(PrimExit))

	_, body, _, ok := e.find([]byte("dup2"))
	require.True(t, ok)
	v, _ := e.dictGetCellVar(body + 1) // past the LIT opcode cell
	assert.Equal(t, Cell(2), v)
}

func TestMakeImmediateSetsFlagOnLatest(t *testing.T) {
	e := New()
	header := e.create([]byte("now"), false)
	e.dictAddOp(Cell(PrimExit))
	e.makeImmediate()

	_, _, immediate := e.wordFlags(header)
	assert.True(t, immediate)
}

func TestWordNameRoundTrip(t *testing.T) {
	e := New()
	header := e.create([]byte("spam"), false)
	e.dictAddOp(Cell(PrimExit))
	assert.Equal(t, []byte("spam"), e.wordName(header))
}

func TestCreateNameTooLongAborts(t *testing.T) {
	e := New()
	longName := make([]byte, nameLenMask+1)
	for i := range longName {
		longName[i] = 'a'
	}
	assert.PanicsWithValue(t, abortSignal{AbortInvalidSize}, func() {
		e.create(longName, false)
	})
}

func TestWordLinkChainsToPreviousHeader(t *testing.T) {
	e := New()
	before := e.getUservar(UserVarLatest)
	header := e.create([]byte("link"), false)
	e.dictAddOp(Cell(PrimExit))
	assert.Equal(t, before, e.wordLink(header))
}
