// Command zforth is a terminal frontend for the zforth engine: it loads the
// built-in prelude (or a previously saved dictionary image), evaluates any
// source files given on the command line, then drops into an interactive
// stdin loop. Grounded on the teacher's main.go (flag parsing, logio.Logger
// wiring) and on src/linux/main.c's main() (load-or-bootstrap, include file
// args, banner, line-at-a-time REPL).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zevv/zForth/internal/flushio"
	"github.com/zevv/zForth/internal/logio"

	zforth "github.com/zevv/zForth"
)

func main() {
	var (
		trace      bool
		dump       bool
		loadFile   string
		saveOnExit string
		selftest   bool
		quiet      bool
	)
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.BoolVar(&dump, "dump", false, "print a dictionary disassembly after execution")
	flag.StringVar(&loadFile, "load", "", "load a dictionary image from FILE instead of bootstrapping")
	flag.StringVar(&saveOnExit, "save-on-exit", "", "save the dictionary image to FILE on exit")
	flag.BoolVar(&selftest, "selftest", false, "run the concurrent self-test battery and exit")
	flag.BoolVar(&quiet, "q", false, "suppress the startup banner")
	flag.Parse()

	log := &logio.Logger{}
	log.SetOutput(os.Stderr)
	defer os.Exit(log.ExitCode())

	if selftest {
		log.ErrorIf(runSelftest(log))
		return
	}

	out := flushio.NewWriteFlusher(os.Stdout)
	defer out.Flush()
	host := newCLIHost(out, log)

	e := zforth.New(zforth.WithHost(host), zforth.WithTrace(trace))

	if loadFile != "" {
		data, err := os.ReadFile(loadFile)
		if err != nil {
			log.Errorf("%v", err)
			return
		}
		if r := e.Load(data); r != zforth.OK {
			log.Errorf("loading %s: %v", loadFile, r)
			return
		}
	} else if r := zforth.LoadPrelude(e); r != zforth.OK {
		log.Errorf("prelude: %v", r)
		return
	}

	if dump {
		defer func() { log.Printf("DUMP", "%s", zforth.Disassemble(e)) }()
	}
	if saveOnExit != "" {
		defer func() {
			if err := os.WriteFile(saveOnExit, e.Dump(), 0o644); err != nil {
				log.ErrorIf(err)
			}
		}()
	}

	for _, fname := range flag.Args() {
		f, err := os.Open(fname)
		if err != nil {
			log.ErrorIf(err)
			continue
		}
		reportEval(log, e, newLineSource(f, fname), false)
		f.Close()
	}

	if !quiet {
		here, _ := e.UservarGet(zforth.UserVarHere)
		fmt.Printf("Welcome to zforth, %d bytes used\n", here)
	}

	reportEval(log, e, newLineSource(os.Stdin, "stdin"), true)
}
