package zforth

import (
	"fmt"
	"sort"
	"strings"
)

// This file implements a dictionary disassembler for debugging, grounded
// on the teacher's vmDumper (dumper.go): walk the word list, then format
// each word's compiled body op by op, resolving call targets back to word
// names instead of printing raw addresses. Adapted to zForth's header
// layout (an inline length+flags cell and name bytes, not a symbol table)
// and its variable-length cell codec (so each op's width has to be decoded
// rather than assumed fixed).

type wordEntry struct {
	header, body Addr
	name         string
	prim         bool
	immediate    bool
}

// words walks the dictionary from LATEST back to the first word defined,
// returning entries sorted by body address ascending (oldest first), the
// order Disassemble prints them in.
func (e *Engine) words() []wordEntry {
	var out []wordEntry
	for h := e.getUservar(UserVarLatest); h != 0; h = e.wordLink(h) {
		_, prim, imm := e.wordFlags(h)
		name, body := e.wordNameAndBody(h)
		out = append(out, wordEntry{header: h, body: body, name: string(name), prim: prim, immediate: imm})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].body < out[j].body })
	return out
}

// callTarget resolves a compiled call operand (a body address, not an
// opcode) to the name of the word whose body starts there, the way a
// colon definition's calls always point exactly at some word's body per
// dictAddOp/wordNameAndBody.
func callTarget(entries []wordEntry, addr Addr) string {
	for _, w := range entries {
		if w.body == addr {
			return w.name
		}
	}
	return fmt.Sprintf("0x%x", addr)
}

// Disassemble renders the current dictionary as human-readable text: the
// user variables, then every word in definition order with its compiled
// body expanded op by op. It never mutates the engine.
func Disassemble(e *Engine) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# zforth dump\n")
	for i := UserVar(0); i < UserVarCount; i++ {
		fmt.Fprintf(&b, "  %-10s = %d\n", userVarNames[i], e.getUservar(i))
	}
	fmt.Fprintf(&b, "  dstack = %v\n", e.dstack[:e.DSP()])
	fmt.Fprintf(&b, "  rstack = %v\n", e.rstack[:e.RSP()])

	entries := e.words()
	here := e.getUservar(UserVarHere)
	for i, w := range entries {
		end := here
		if i+1 < len(entries) {
			end = entries[i+1].header
		}
		fmt.Fprintf(&b, "\n: %s", w.name)
		if w.immediate {
			b.WriteString(" immediate")
		}
		if w.prim {
			op, _ := e.dictGetCellVar(w.body)
			name := "?"
			if op >= 0 && Prim(op) < PrimCount {
				name = primNames[op]
			}
			fmt.Fprintf(&b, " (prim %s)", name)
			continue
		}
		for addr := w.body; addr < end; {
			code, n := e.dictGetCellVar(addr)
			addr += n
			if code >= 0 && Prim(code) < PrimCount {
				op := Prim(code)
				b.WriteByte(' ')
				b.WriteString(primNames[op])
				switch op {
				case PrimLit:
					v, n2 := e.dictGetCellVar(addr)
					fmt.Fprintf(&b, "(%d)", v)
					addr += n2
				case PrimJmp, PrimJmp0:
					v, n2 := e.dictGetCellVar(addr)
					fmt.Fprintf(&b, "(->0x%x)", Addr(v))
					addr += n2
				case PrimLits:
					v, n2 := e.dictGetCellVar(addr)
					addr += n2
					str := make([]byte, v)
					e.dictGetBytes(addr, str)
					fmt.Fprintf(&b, "(%q)", str)
					addr += Addr(v)
				}
				continue
			}
			b.WriteByte(' ')
			b.WriteString(callTarget(entries, Addr(code)))
		}
	}
	b.WriteByte('\n')
	return b.String()
}
