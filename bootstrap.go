package zforth

// Bootstrap populates a fresh Engine's dictionary with the primitive
// words and user variables, grounded on zforth.c's zf_bootstrap/add_prim/
// add_uservar. It must run before any Eval call; New does this
// automatically.
func Bootstrap(e *Engine) {
	for i := Prim(0); i < PrimCount; i++ {
		addPrim(e, primNames[i], i)
	}
	for i := UserVar(0); i < UserVarCount; i++ {
		addUservar(e, userVarNames[i], Addr(i))
	}
}

// addPrim creates a dictionary entry whose body is just the opcode itself
// followed by EXIT; a leading underscore in name marks the word
// immediate and is stripped before the word is created.
func addPrim(e *Engine, name string, op Prim) {
	imm := false
	if len(name) > 0 && name[0] == '_' {
		name = name[1:]
		imm = true
	}
	e.create([]byte(name), true)
	e.dictAddOp(Cell(op))
	e.dictAddOp(Cell(PrimExit))
	if imm {
		e.makeImmediate()
	}
}

// addUservar creates a word whose body pushes the user variable's index
// as a literal address (so "h @" / "h !" read and write it through the
// normal PEEK/POKE path, which special-cases addresses below
// UserVarCount).
func addUservar(e *Engine, name string, addr Addr) {
	e.create([]byte(name), false)
	e.dictAddLit(Cell(addr))
	e.dictAddOp(Cell(PrimExit))
}
