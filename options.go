package zforth

// Option configures a new Engine. The combinator shape (flattening
// options, a singleton noption default) is carried over verbatim from the
// teacher's VMOption/options/noption idiom, retargeted at the engine's
// actual I/O-free surface: a Host implementation and the initial trace
// flag, since the engine itself owns no readers/writers.
type Option interface{ apply(e *Engine) }

// Options flattens a list of Options into one, dropping nils and merging
// nested Options values so callers can build option sets programmatically.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(e *Engine) {}

type options []Option

func (opts options) apply(e *Engine) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(e)
		}
	}
}

type hostOption struct{ h Host }

func (o hostOption) apply(e *Engine) { e.SetHost(o.h) }

// WithHost sets the Host callback implementation to use.
func WithHost(h Host) Option { return hostOption{h} }

type traceOption bool

func (o traceOption) apply(e *Engine) { e.initTrace = bool(o) }

// WithTrace enables or disables tracing from the start.
func WithTrace(on bool) Option { return traceOption(on) }
