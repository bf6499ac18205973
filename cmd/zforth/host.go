package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/zevv/zForth/internal/flushio"
	"github.com/zevv/zForth/internal/logio"
	"github.com/zevv/zForth/internal/runeio"

	zforth "github.com/zevv/zForth"
)

// Syscall ids. 0-2 match zforth.h's ZF_SYSCALL_EMIT/PRINT/TELL exactly (see
// prelude.go's emit/./type); everything from 128 up is this host's own
// application-specific extension, grounded on src/linux/main.c's
// ZF_SYSCALL_USER range (bye/include/save there, at the same base).
const (
	syscallEmit  = 0
	syscallPrint = 1
	syscallTell  = 2

	syscallUser    = 128
	syscallBye     = syscallUser + 0
	syscallInclude = syscallUser + 1
	syscallSave    = syscallUser + 2
	syscallLoad    = syscallUser + 3
)

const saveFileName = "zforth.save"

// cliHost implements zforth.Host for the terminal frontend: it owns the
// buffered stdout EMIT/PRINT/TELL go through, and the logger TRACE output
// and file-operation errors are reported on.
type cliHost struct {
	out flushio.WriteFlusher
	log *logio.Logger
	tr  func(string, ...interface{})
}

func newCLIHost(out flushio.WriteFlusher, log *logio.Logger) *cliHost {
	return &cliHost{out: out, log: log, tr: log.Leveledf("TRACE")}
}

func (h *cliHost) Trace(format string, args ...interface{}) { h.tr(format, args...) }

func (h *cliHost) ParseNum(e *zforth.Engine, buf string) (zforth.Cell, bool) {
	v, err := strconv.ParseInt(buf, 0, 32)
	if err != nil {
		return 0, false
	}
	return zforth.Cell(v), true
}

// Sys implements the core EMIT/PRINT/TELL callbacks plus the bye/include/
// save/load extensions, grounded on src/linux/main.c's zf_host_sys.
func (h *cliHost) Sys(e *zforth.Engine, id zforth.Cell, lastWord []byte) zforth.InputState {
	switch id {

	case syscallEmit:
		c := e.Pop()
		runeio.WriteANSIRune(h.out, rune(c))
		h.out.Flush()

	case syscallPrint:
		fmt.Fprintf(h.out, "%d ", e.Pop())
		h.out.Flush()

	case syscallTell:
		n := e.Pop()
		addr := e.Pop()
		h.out.Write(e.DictBytes(zforth.Addr(addr), int(n)))
		h.out.Flush()

	case syscallBye:
		fmt.Fprintln(h.out)
		h.out.Flush()
		os.Exit(h.log.ExitCode())

	case syscallInclude:
		if lastWord == nil {
			return zforth.StatePassWord
		}
		h.include(e, string(lastWord))

	case syscallSave:
		if err := os.WriteFile(saveFileName, e.Dump(), 0o644); err != nil {
			h.log.ErrorIf(err)
		}

	case syscallLoad:
		data, err := os.ReadFile(saveFileName)
		if err != nil {
			h.log.ErrorIf(err)
			break
		}
		if r := e.Load(data); r != zforth.OK {
			h.log.ErrorIf(r)
		}

	default:
		h.log.Printf("TRACE", "unhandled syscall %d", id)
	}

	return zforth.StateInterpret
}

// include evaluates fname line by line, reporting each line's abort (if
// any) against the file name and line number, exactly as do_eval/include do
// in src/linux/main.c.
func (h *cliHost) include(e *zforth.Engine, fname string) {
	f, err := os.Open(fname)
	if err != nil {
		h.log.ErrorIf(err)
		return
	}
	defer f.Close()

	reportEval(h.log, e, newLineSource(f, fname), false)
}
