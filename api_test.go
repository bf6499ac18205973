package zforth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDumpLoadRoundTrip exercises spec.md §8's persistence round-trip:
// dump, save the bytes, re-init a fresh engine, restore the bytes, and
// check that HERE matches and every word defined before the save is still
// findable by name.
func TestDumpLoadRoundTrip(t *testing.T) {
	e := New()
	require.Equal(t, OK, LoadPrelude(e))
	require.Equal(t, OK, e.Eval(": greet 42 ; "))

	hereBefore, _ := e.UservarGet(UserVarHere)
	saved := e.Dump()

	other := New()
	other.Init(false) // fresh state, as spec.md §8's round-trip prescribes
	require.Equal(t, OK, other.Load(saved))

	hereAfter, _ := other.UservarGet(UserVarHere)
	assert.Equal(t, hereBefore, hereAfter)

	_, _, _, ok := other.find([]byte("greet"))
	assert.True(t, ok)

	require.Equal(t, OK, other.Eval("greet "))
	assert.Equal(t, Cell(42), other.Pop())
}

func TestLoadRejectsWrongSizedImage(t *testing.T) {
	e := New()
	assert.Equal(t, AbortInvalidSize, e.Load([]byte{1, 2, 3}))
}

func TestUservarGetSetOutOfRange(t *testing.T) {
	e := New()
	_, r := e.UservarGet(UserVarCount)
	assert.Equal(t, AbortInvalidUserVar, r)
	assert.Equal(t, AbortInvalidUserVar, e.UservarSet(UserVarCount, 1))
	assert.Equal(t, AbortInvalidUserVar, e.UservarSet(-1, 1))
}

func TestUservarRoundTrip(t *testing.T) {
	e := New()
	require.Equal(t, OK, e.UservarSet(UserVarTrace, 1))
	v, r := e.UservarGet(UserVarTrace)
	require.Equal(t, OK, r)
	assert.Equal(t, Cell(1), v)
}

func TestNewBootstrapsAllPrimitivesFindable(t *testing.T) {
	e := New()
	for i := Prim(0); i < PrimCount; i++ {
		name := primNames[i]
		if name[0] == '_' {
			name = name[1:]
		}
		_, _, _, ok := e.find([]byte(name))
		assert.True(t, ok, "primitive %q not found in dictionary", name)
	}
}

func TestNewBootstrapsAllUservarsFindable(t *testing.T) {
	e := New()
	for i := UserVar(0); i < UserVarCount; i++ {
		_, body, _, ok := e.find([]byte(userVarNames[i]))
		require.True(t, ok, "uservar %q not found", userVarNames[i])

		v, n := e.dictGetCellVar(body + 1) // past the LIT opcode cell
		assert.Equal(t, Cell(i), v)
		_ = n
	}
}
