package zforth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictCellVarRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name    string
		v       Cell
		wantLen Addr
	}{
		{"zero", 0, 1},
		{"small positive", 42, 1},
		{"boundary of 1-byte form", 127, 1},
		{"smallest 2-byte form", 128, 2},
		{"mid 2-byte form", 1000, 2},
		{"largest 2-byte form", 16383, 2},
		{"smallest raw form", 16384, 5},
		{"negative always raw", -1, 5},
		{"large negative", -1000, 5},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e := New()
			n := e.dictPutCellVar(200, tc.v)
			require.Equal(t, tc.wantLen, n)
			got, n2 := e.dictGetCellVar(200)
			assert.Equal(t, n, n2)
			assert.Equal(t, tc.v, got)
		})
	}
}

func TestDictCellVarMaxAlwaysFiveBytes(t *testing.T) {
	e := New()
	n := e.dictPutCellTyped(200, 5, SizeVarMax)
	require.Equal(t, Addr(5), n)
	got, n2 := e.dictGetCellVar(200)
	assert.Equal(t, Addr(5), n2)
	assert.Equal(t, Cell(5), got)
}

func TestDictCellTypedWidths(t *testing.T) {
	for _, tc := range []struct {
		size  MemSize
		width int
	}{
		{SizeU8, 1}, {SizeS8, 1},
		{SizeU16, 2}, {SizeS16, 2},
		{SizeU32, 4}, {SizeS32, 4}, {SizeCell, 4},
	} {
		e := New()
		n := e.dictPutCellTyped(300, -1, tc.size)
		assert.Equal(t, Addr(tc.width), n, "size %v", tc.size)
		got, n2 := e.dictGetCellTyped(300, tc.size)
		assert.Equal(t, Addr(tc.width), n2)
		switch tc.size {
		case SizeU8, SizeU16, SizeU32, SizeCell:
			// -1 zero/sign extended differently per signedness; just check
			// the round trip is stable through a second put/get.
			e.dictPutCellTyped(300, got, tc.size)
			got2, _ := e.dictGetCellTyped(300, tc.size)
			assert.Equal(t, got, got2)
		default:
			assert.Equal(t, Cell(-1), got)
		}
	}
}

func TestDictBytesRoundTrip(t *testing.T) {
	e := New()
	at := e.getUservar(UserVarHere)
	want := []byte("hello")
	e.dictPutBytes(at, want)
	got := e.DictBytes(at, len(want))
	assert.Equal(t, want, got)
}

func TestDictBytesOutsideMemAborts(t *testing.T) {
	e := New()
	assert.PanicsWithValue(t, abortSignal{AbortOutsideMem}, func() {
		e.DictBytes(Addr(DictSize-2), 10)
	})
}

func TestDictAddLitCompilesLitThenValue(t *testing.T) {
	e := New()
	at := e.getUservar(UserVarHere)
	e.dictAddLit(99)
	code, n := e.dictGetCellVar(at)
	require.Equal(t, Cell(PrimLit), code)
	v, _ := e.dictGetCellVar(at + n)
	assert.Equal(t, Cell(99), v)
}
