package zforth

// run is the threaded-code inner interpreter: it executes compiled cells
// starting at e.ip until ip returns to the sentinel 0 return address left
// by execute(). A cell value below PrimCount is a primitive opcode,
// executed in place; anything else is the body address of a colon
// definition, entered by pushing a return address and jumping.
//
// input is passed through to the very first primitive dispatched (used to
// resume one that previously suspended itself by changing inputState);
// every later iteration within the same call passes nil, matching
// zforth.c's run().
func (e *Engine) run(input []byte) {
	for e.ip != 0 {
		ipOrg := e.ip
		code, n := e.dictGetCellVar(e.ip)
		e.ip += n

		if int(code) >= 0 && Prim(code) < PrimCount {
			e.trace("%04x %s", ipOrg, primNames[Prim(code)])
			e.doPrim(Prim(code), input)
			if e.inputState != StateInterpret {
				// The primitive wants more input; restore ip so the next
				// resume re-enters the same cell.
				e.ip = ipOrg
				break
			}
		} else {
			e.trace("%04x call %04x", ipOrg, Addr(code))
			e.pushr(Cell(e.ip))
			e.ip = Addr(code)
		}

		input = nil
	}
}

// execute runs the word whose body starts at addr from a clean return
// stack, used for interpreted (non-compiling) word invocation.
func (e *Engine) execute(addr Addr) {
	e.ip = addr
	e.setUservar(UserVarRSP, 0)
	e.pushr(0)
	e.run(nil)
}
