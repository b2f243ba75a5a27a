package jsontab

// MalformedPolicy controls handling of records that are not arrays
type MalformedPolicy int

const (
	TolerantMalformed MalformedPolicy = iota
	ErrorOnMalformed
)

// ArityPolicy controls handling of records wider than the header
type ArityPolicy int

const (
	AllowArityMismatch ArityPolicy = iota
	ErrorOnArityMismatch
)

type (
	// Options define decoding behavior
	Options struct {
		MalformedPolicy MalformedPolicy
		ArityPolicy     ArityPolicy
	}

	// Option mutates decoding options
	Option func(o *Options)
)

// WithMalformedPolicy sets malformed record policy
func WithMalformedPolicy(policy MalformedPolicy) Option {
	return func(o *Options) {
		o.MalformedPolicy = policy
	}
}

// WithArityPolicy sets arity policy
func WithArityPolicy(policy ArityPolicy) Option {
	return func(o *Options) {
		o.ArityPolicy = policy
	}
}

// WithStrict enables all strict policies
func WithStrict() Option {
	return func(o *Options) {
		o.MalformedPolicy = ErrorOnMalformed
		o.ArityPolicy = ErrorOnArityMismatch
	}
}

func newOptions(opts []Option) *Options {
	ret := &Options{}
	for _, opt := range opts {
		if opt != nil {
			opt(ret)
		}
	}
	return ret
}
