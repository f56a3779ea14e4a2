package ingest

import "github.com/rs/zerolog"

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRegistry routes documents through the given registry instead of
// the built-in one.
func WithRegistry(reg *Registry) Option {
	return func(p *Pipeline) {
		p.router = NewRouter(reg)
	}
}

// WithNormalizer sets the normalizer applied to extracted records
// (default: GenericNormalizer).
func WithNormalizer(n Normalizer) Option {
	return func(p *Pipeline) {
		p.normalizer = n
	}
}

// WithOutput sets the sink items are emitted to (default: JSON on
// stdout).
func WithOutput(o OutputPort) Option {
	return func(p *Pipeline) {
		p.output = o
	}
}

// WithLogger enables pipeline logging (default: disabled).
func WithLogger(log zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.log = log
	}
}
