package runner

import "context"

// Option customizes a Queue or a Cargo.
type Option func(*options)

type options struct {
	name        string
	concurrency int
	ctx         context.Context
	onDefect    func(error)
}

func defaultOptions() options {
	return options{
		concurrency: 1,
		ctx:         context.Background(),
	}
}

// WithName sets the runner name used in logs and errors.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithConcurrency sets how many sub-batches a Cargo runs at once. Defaults to 1.
// Queue takes its concurrency as a constructor argument and ignores this option.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithContext sets the parent context of every worker call.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithDefectHandler registers fn to be called if the runner stops on an
// unrecoverable defect. See Runner.Err.
func WithDefectHandler(fn func(error)) Option {
	return func(o *options) {
		o.onDefect = fn
	}
}
