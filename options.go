package rowmapper

type (
	options struct {
		observe func(Diagnostic)
	}

	// Option represents mapping option
	Option func(o *options)
)

// WithDiagnostics sets observer notified about every field conversion failure
func WithDiagnostics(observe func(Diagnostic)) Option {
	return func(o *options) {
		o.observe = observe
	}
}

// WithLogf reports conversion failures with printf style logger, i.e. log.Printf
func WithLogf(logf func(format string, args ...interface{})) Option {
	return WithDiagnostics(func(d Diagnostic) {
		logf("rowmapper: %v", d)
	})
}

func newOptions(opts []Option) *options {
	ret := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(ret)
		}
	}
	return ret
}
