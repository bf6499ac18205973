package main

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/zevv/zForth/internal/logio"
	"github.com/zevv/zForth/internal/panicerr"

	zforth "github.com/zevv/zForth"
)

// selftestCase is one bundled scenario, each run against its own freshly
// bootstrapped Engine with no shared state, demonstrating the engine's
// per-context isolation claim directly rather than just asserting it.
type selftestCase struct {
	name   string
	source string
	check  func(e *zforth.Engine, r zforth.Result) error
}

var selftestCases = []selftestCase{
	{"arithmetic", "1 2 + ", expectTop(3)},
	{"square", ": sq dup * ; 5 sq ", expectTop(25)},
	{"factorial", ": fact dup if dup 1 - fact * else drop 1 then ; 5 fact ", expectTop(120)},
	{"division by zero recovers", "1 0 / ", expectAbort(zforth.AbortDivisionByZero)},
	{"multiple values", ": x 1 2 3 ; x ", expectStack(1, 2, 3)},
	{"return stack round trip", "10 >r 20 r> ", expectStack(20, 10)},
}

// runSelftest runs every case concurrently, each in its own goroutine (via
// errgroup for fan-out) and its own panic-isolated sub-goroutine (via
// panicerr.Recover, the teacher's own isolation idiom), so a runaway
// primitive in one case is reported as that case's failure instead of
// aborting the whole battery.
func runSelftest(log *logio.Logger) error {
	var g errgroup.Group
	for _, tc := range selftestCases {
		tc := tc
		g.Go(func() error {
			err := panicerr.Recover(tc.name, func() error {
				e := zforth.New(zforth.WithHost(zforth.NopHost{}))
				if r := zforth.LoadPrelude(e); r != zforth.OK {
					return fmt.Errorf("prelude: %v", r)
				}
				r := e.Eval(tc.source)
				return tc.check(e, r)
			})
			if err != nil {
				return fmt.Errorf("%s: %w", tc.name, err)
			}
			log.Printf("SELFTEST", "%s: ok", tc.name)
			return nil
		})
	}
	return g.Wait()
}

func expectOK(body func(e *zforth.Engine) error) func(*zforth.Engine, zforth.Result) error {
	return func(e *zforth.Engine, r zforth.Result) error {
		if r != zforth.OK {
			return fmt.Errorf("eval: %v", r)
		}
		return body(e)
	}
}

func expectTop(want zforth.Cell) func(*zforth.Engine, zforth.Result) error {
	return expectOK(func(e *zforth.Engine) error {
		if got := e.Pick(0); got != want {
			return fmt.Errorf("top of stack = %d, want %d", got, want)
		}
		return nil
	})
}

// expectStack checks the whole data stack against want given bottom-to-top
// (the order values were pushed in), converting to Pick's top-relative
// indexing internally.
func expectStack(want ...zforth.Cell) func(*zforth.Engine, zforth.Result) error {
	return expectOK(func(e *zforth.Engine) error {
		if e.DSP() != len(want) {
			return fmt.Errorf("stack depth = %d, want %d", e.DSP(), len(want))
		}
		for i, w := range want {
			n := zforth.Addr(len(want) - 1 - i)
			if got := e.Pick(n); got != w {
				return fmt.Errorf("stack[%d] (bottom-up) = %d, want %d", i, got, w)
			}
		}
		return nil
	})
}

func expectAbort(want zforth.Result) func(*zforth.Engine, zforth.Result) error {
	return func(e *zforth.Engine, r zforth.Result) error {
		if r != want {
			return fmt.Errorf("result = %v, want %v", r, want)
		}
		// The engine must stay usable after recovering from an abort.
		if r2 := e.Eval("42 "); r2 != zforth.OK {
			return fmt.Errorf("engine unusable after abort: %v", r2)
		}
		if got := e.Pick(0); got != 42 {
			return fmt.Errorf("post-abort stack = %d, want 42", got)
		}
		return nil
	}
}
