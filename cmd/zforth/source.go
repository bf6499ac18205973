package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/zevv/zForth/internal/fileinput"
	"github.com/zevv/zForth/internal/logio"

	zforth "github.com/zevv/zForth"
)

// namedReader pairs a reader with the name fileinput.Input reports in
// error locations (a file path, or "stdin").
type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

func newLineSource(r io.Reader, name string) *fileinput.Input {
	return &fileinput.Input{Queue: []io.Reader{namedReader{r, name}}}
}

// reportEval drives in one line at a time through e.Eval, logging
// "name:line: message" for any non-OK result, the way do_eval/include do in
// src/linux/main.c. When echo is true (the interactive stdin loop) a blank
// line is printed after each evaluated line, matching main()'s readline/
// fgets loop.
func reportEval(log *logio.Logger, e *zforth.Engine, in *fileinput.Input, echo bool) {
	lastLine := 0
	for {
		_, _, err := in.ReadRune()
		if in.Last.Line != lastLine {
			lastLine = in.Last.Line
			evalLine(log, e, in.Last.Location, in.Last.Buffer.String())
			if echo {
				fmt.Println()
			}
		}
		if err != nil {
			return
		}
	}
}

func evalLine(log *logio.Logger, e *zforth.Engine, loc fileinput.Location, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	if r := e.Eval(text); r != zforth.OK {
		log.Errorf("%s: %v", loc, r)
	}
}
