package zforth

// This file implements the outer interpreter: tokenising incoming text
// into words, looking each one up, and deciding whether to compile or
// execute it, or fall back to host number parsing. Grounded on zforth.c's
// handle_char/handle_word/zf_eval.

func isSpaceByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// handleWord looks up buf and compiles, executes, or (if a primitive
// previously requested a word) resumes it directly.
func (e *Engine) handleWord(buf []byte) {
	if e.inputState == StatePassWord {
		e.inputState = StateInterpret
		e.run(buf)
		return
	}

	header, body, immediate, found := e.find(buf)
	if found {
		_, prim, _ := e.wordFlags(header)
		compiling := e.getUservar(UserVarCompiling) != 0
		postpone := e.getUservar(UserVarPostpone) != 0

		if compiling && (postpone || !immediate) {
			if prim {
				d, _ := e.dictGetCellVar(body)
				e.dictAddOp(d)
			} else {
				e.dictAddOp(Cell(body))
			}
			e.setUservar(UserVarPostpone, 0)
		} else {
			e.execute(body)
		}
		return
	}

	v, ok := e.host.ParseNum(e, string(buf))
	if !ok {
		e.Abort(AbortNotAWord)
	}
	if e.getUservar(UserVarCompiling) != 0 {
		e.dictAddLit(v)
	} else {
		e.Push(v)
	}
}

// handleChar accumulates non-space bytes into the word buffer, dispatches
// a completed word at a space/NUL, or resumes a primitive that previously
// requested a single character.
func (e *Engine) handleChar(c byte) {
	if e.inputState == StatePassChar {
		e.inputState = StateInterpret
		e.run([]byte{c})
		return
	}

	if c != 0 && !isSpaceByte(c) {
		if e.readLen < ReadBufSize-1 {
			e.readBuf[e.readLen] = c
			e.readLen++
		}
		return
	}

	if e.readLen > 0 {
		word := append([]byte(nil), e.readBuf[:e.readLen]...)
		e.readLen = 0
		e.handleWord(word)
	}
}

// Eval feeds buf through the outer interpreter one byte at a time,
// followed by an implicit NUL terminator (which also flushes any
// in-progress word and terminates evaluation), recovering from any abort
// raised along the way and returning it as a Result instead of a panic.
func (e *Engine) Eval(buf string) (result Result) {
	defer e.recoverAbort(&result)

	for i := 0; i <= len(buf); i++ {
		var c byte
		if i < len(buf) {
			c = buf[i]
		}
		e.handleChar(c)
		if c == 0 {
			break
		}
	}
	return OK
}
