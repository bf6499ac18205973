package zforth

import "fmt"

// Result is both the success value and the abort-reason taxonomy returned
// by Eval: OK on success, one of the Abort* values when Eval unwound via the
// abort/recovery protocol (spec.md §7).
type Result int

const (
	OK Result = iota
	AbortInternalError
	AbortOutsideMem
	AbortDStackUnderrun
	AbortDStackOverrun
	AbortRStackUnderrun
	AbortRStackOverrun
	AbortNotAWord
	AbortCompileOnlyWord
	AbortInvalidSize
	AbortDivisionByZero
	AbortInvalidUserVar
	AbortExternal
)

var resultNames = [...]string{
	OK:                   "ok",
	AbortInternalError:   "internal error",
	AbortOutsideMem:      "outside memory",
	AbortDStackUnderrun:  "data stack underrun",
	AbortDStackOverrun:   "data stack overrun",
	AbortRStackUnderrun:  "return stack underrun",
	AbortRStackOverrun:   "return stack overrun",
	AbortNotAWord:        "not a word",
	AbortCompileOnlyWord: "compile-only word",
	AbortInvalidSize:     "invalid size",
	AbortDivisionByZero:  "division by zero",
	AbortInvalidUserVar:  "invalid user variable",
	AbortExternal:        "external",
}

// String returns the short mnemonic a host would typically print.
func (r Result) String() string {
	if int(r) >= 0 && int(r) < len(resultNames) {
		return resultNames[r]
	}
	return fmt.Sprintf("result(%d)", int(r))
}

// Error implements the error interface so a non-OK Result can be returned
// and tested with errors.Is directly.
func (r Result) Error() string {
	if r == OK {
		return "ok"
	}
	return r.String()
}
