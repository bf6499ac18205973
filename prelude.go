package zforth

import (
	"bytes"
	"io"
)

// preludeKernel is the Forth-language vocabulary layered on top of the
// primitive opcodes: control flow, comparisons, stack shuffling, variables,
// constants and simple I/O words. None of this has a Go implementation; it
// is itself zForth source text, evaluated once by LoadPrelude the same way
// any user script would be.
//
// There is no surviving prelude.fs to transcribe: every word below is
// derived directly from the primitive contracts in primitives.go (the
// JMP/JMP0 operand format, the SizeVarMax forward-reference trick documented
// on MemSize, the uservar layout in config.go) the way the zevv/zForth
// project's own prelude is built from its C primitives.
var preludeKernel = preludeSource{}

type preludeSource struct{}

func (preludeSource) Name() string { return "prelude.fs" }

func (preludeSource) WriteTo(w io.Writer) (n int64, err error) {
	flush := func(wto io.WriterTo) {
		if err != nil {
			return
		}
		var m int64
		m, err = wto.WriteTo(w)
		n += m
	}

	var buf bytes.Buffer
	line := func(parts ...string) {
		if err == nil {
			for _, s := range parts {
				buf.WriteString(s)
				buf.WriteByte(' ')
			}
			buf.WriteByte('\n')
			flush(&buf)
		}
	}

	// Named cell widths, readable aliases for the MemSize constants that
	// ,, / @@ / !! take as their size argument.
	line(`: /var    0 ;`)
	line(`: /cell   1 ;`)
	line(`: /u8     2 ;`)
	line(`: /u16    3 ;`)
	line(`: /u32    4 ;`)
	line(`: /s8     5 ;`)
	line(`: /s16    6 ;`)
	line(`: /s32    7 ;`)
	line(`: /varmax 64 ;`)

	// here/,/@/! give the raw ,,/@@/!! primitives their usual Forth names,
	// defaulting to variable-length encoding.
	line(`: ,    ( v -- )     /var ,, ;`)
	line(`: @    ( addr -- v ) /var @@ ;`)
	line(`: !    ( v addr -- ) /var !! ;`)
	line(`: here ( -- addr ) h @ ;`)

	// patch overwrites a cell reserved with /varmax once its value is
	// known, used to back-patch the branch targets control words compile.
	line(`: patch ( addr value -- ) swap /varmax !! ;`)

	// postpone forces the very next word to be compiled into the
	// definition currently open, even if that word is itself immediate.
	line(`: postpone immediate 1 _postpone ! ;`)

	// Control flow. Each of these is immediate: it runs while the
	// enclosing definition is being compiled, emitting JMP/JMP0 opcodes
	// and reserving or patching their operand cells. ' word, used here
	// with word a plain (non-immediate) primitive, compiles to the raw
	// opcode value of word rather than a call to it; ' then reads that
	// value back off its own body at run time (see PrimTick).
	line(`: if immediate`,
		`  ' jmp0 ,`,
		`  here 0 /varmax ,,`,
		`;`)
	line(`: then immediate`,
		`  here patch`,
		`;`)
	line(`: else immediate`,
		`  ' jmp , here 0 /varmax ,,`,
		`  swap here patch`,
		`;`)
	line(`: begin immediate here ;`)
	line(`: until immediate`,
		`  ' jmp0 , ,`,
		`;`)
	line(`: while immediate`,
		`  ' jmp0 , here 0 /varmax ,,`,
		`;`)
	line(`: repeat immediate`,
		`  ' jmp , swap , here patch`,
		`;`)

	// Comparisons built from - and <0.
	line(`: negate ( n -- n )   0 swap - ;`)
	line(`: not    ( f -- f )   0 = ;`)
	line(`: <      ( a b -- f ) - <0 ;`)
	line(`: >      ( a b -- f ) swap < ;`)
	line(`: <=     ( a b -- f ) > not ;`)
	line(`: >=     ( a b -- f ) < not ;`)
	line(`: <>     ( a b -- f ) = not ;`)

	// Stack shuffling built from pick/swap/drop.
	line(`: over  ( a b -- a b a )     1 pick ;`)
	line(`: 2dup  ( a b -- a b a b )   over over ;`)
	line(`: 2drop ( a b -- )           drop drop ;`)
	line(`: nip   ( a b -- b )         swap drop ;`)
	line(`: tuck  ( a b -- b a b )     swap over ;`)
	line(`: ?dup  ( n -- n n | 0 )     dup if dup then ;`)

	// Named recursion needs no dedicated word: create links a word's
	// header into the dictionary before its body is compiled, so a
	// definition can already find and call itself by name (see
	// fact in the factorial scenario).

	// variable and constant both build a two-cell body (LIT <addr-or-
	// value>, EXIT) by hand, the same shape bootstrap gives the user
	// variables. literal/; are skipped on purpose: both are immediate, so
	// writing them directly here would run them now, while variable or
	// constant is itself being defined, instead of compiling them into
	// the word being created for the caller.
	line(`: variable ( "name" -- )`,
		`  here 0 /varmax ,,`,
		`  :`,
		`  ' lit , ,`,
		`  ' exit ,`,
		`  0 compiling !`,
		`;`)
	line(`: constant ( n "name" -- )`,
		`  :`,
		`  ' lit , ,`,
		`  ' exit ,`,
		`  0 compiling !`,
		`;`)

	// Host I/O. sys ids 0/1/2 are ZF_SYSCALL_EMIT/PRINT/TELL.
	line(`: emit ( c -- )       0 sys ;`)
	line(`: .    ( n -- )       1 sys ;`)
	line(`: type ( addr len -- ) 2 sys ;`)

	// String literals: " reads characters up to the closing quote and
	// compiles them as a lits-prefixed run of bytes, patching the length
	// cell in afterwards since it isn't known until the closing quote is
	// seen. It is only usable inside a colon definition: at interpret time
	// ' takes the next input word instead of the lits opcode.
	line(`variable strlen`)
	line(`: " immediate`,
		`  0 strlen !`,
		`  ' lits , here 0 /varmax ,,`,
		`  begin`,
		`    key dup 34 <>`,
		`  while`,
		`    /u8 ,,`,
		`    strlen @ 1 + strlen !`,
		`  repeat`,
		`  drop`,
		`  strlen @ patch`,
		`;`)

	// Return-stack backed stack introspection: r@ peeks its caller's top
	// return-stack cell without popping it (index 1, since index 0 is r@'s
	// own return address), and .s uses it to keep a single loop counter
	// above the data being printed so pick's index always lines up with
	// the caller's original stack.
	line(`: r@    ( -- n ) 1 pickr ;`)
	line(`: depth ( -- n ) dsp @ ;`)
	line(`: .s ( -- )`,
		`  depth >r`,
		`  0`,
		`  begin`,
		`    dup r@ <`,
		`  while`,
		`    dup 1 + pick .`,
		`    1 +`,
		`  repeat`,
		`  drop r> drop`,
		`;`)

	return n, err
}

// LoadPrelude evaluates the Forth-language vocabulary into e. It is meant
// to run once, immediately after New, before any user source is fed in.
func LoadPrelude(e *Engine) Result {
	var buf bytes.Buffer
	if _, err := preludeKernel.WriteTo(&buf); err != nil {
		return AbortInternalError
	}
	return e.Eval(buf.String())
}
