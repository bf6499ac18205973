package zforth

import "bytes"

// Word header layout, grounded on zforth.c's create()/find_word() (every
// field uses the same variable-length cell encoding as everything else in
// the dictionary, so a header's on-disk size varies with its link address
// and name length):
//
//	var-cell  length+flags: bits 0-4 name length, bit 5 PRIM, bit 6 IMMEDIATE
//	var-cell  link: address of the previous header, or 0 for the first word
//	raw bytes name, length taken from the length+flags cell
//	body: for a primitive, the opcode cell followed by EXIT; for a colon
//	      definition, compiled op/operand cells ending in EXIT; for a user
//	      variable, LIT <addr> EXIT.
//
// Names live inline in the dictionary; there is no separate symbol table,
// so looking a word up is a linked-list walk comparing raw bytes.

const (
	nameLenMask   = 0x1F
	flagPrim      = 0x20
	flagImmediate = 0x40
)

// wordFlags unpacks the length+flags cell at a header address.
func (e *Engine) wordFlags(header Addr) (nameLen int, prim, immediate bool) {
	d, _ := e.dictGetCellVar(header)
	return int(d) & nameLenMask, d&flagPrim != 0, d&flagImmediate != 0
}

// wordLink returns the address of the previous header, walking past the
// length+flags cell first.
func (e *Engine) wordLink(header Addr) Addr {
	_, n := e.dictGetCellVar(header)
	link, _ := e.dictGetCellVar(header + n)
	return Addr(link)
}

// wordNameAndBody returns the raw name bytes and the body address (the address
// immediately following the name), computed together since both need the
// same two-cell walk.
func (e *Engine) wordNameAndBody(header Addr) ([]byte, Addr) {
	d, n1 := e.dictGetCellVar(header)
	_, n2 := e.dictGetCellVar(header + n1)
	nameAt := header + n1 + n2
	nameLen := int(d) & nameLenMask
	buf := make([]byte, nameLen)
	e.dictGetBytes(nameAt, buf)
	return buf, nameAt + Addr(nameLen)
}

func (e *Engine) wordName(header Addr) []byte {
	name, _ := e.wordNameAndBody(header)
	return name
}

// wordBody returns the address where a header's body (opcode/compiled
// cells) starts.
func (e *Engine) wordBody(header Addr) Addr {
	_, body := e.wordNameAndBody(header)
	return body
}

// create starts a new dictionary entry for name, linking it onto LATEST
// and leaving HERE positioned for the caller to append the body (a
// primitive opcode, a LIT/EXIT pair for a user variable, or a run of
// op/operand cells for a colon definition).
func (e *Engine) create(name []byte, prim bool) Addr {
	if len(name) > nameLenMask {
		e.Abort(AbortInvalidSize)
	}
	header := e.getUservar(UserVarHere)
	flags := Cell(len(name))
	if prim {
		flags |= flagPrim
	}
	e.dictAddCell(flags)
	e.dictAddCell(Cell(e.getUservar(UserVarLatest)))
	e.dictAddStr(name)
	e.setUservar(UserVarLatest, header)
	return header
}

// find looks up name in the dictionary, walking LATEST backward. It
// returns the header address, the word's body address (its execution
// token) and whether it is immediate; ok is false if no such word exists.
func (e *Engine) find(name []byte) (header, body Addr, immediate bool, ok bool) {
	for h := e.getUservar(UserVarLatest); h != 0; h = e.wordLink(h) {
		n, _, imm := e.wordFlags(h)
		if n != len(name) {
			continue
		}
		nm, b := e.wordNameAndBody(h)
		if bytes.Equal(nm, name) {
			return h, b, imm, true
		}
	}
	return 0, 0, false, false
}

// makeImmediate sets the IMMEDIATE bit on the most recently created word,
// the compiled form of the "immediate" builtin.
func (e *Engine) makeImmediate() {
	header := e.getUservar(UserVarLatest)
	if header == 0 {
		e.Abort(AbortInternalError)
	}
	d, _ := e.dictGetCellVar(header)
	e.dictPutCellVar(header, d|flagImmediate)
}
