package scheduler

import "context"

type Option func(*options)

type options struct {
	name     string
	ctx      context.Context
	onDefect func(error)
}

func defaultOptions() options {
	return options{
		ctx: context.Background(),
	}
}

// WithName sets the name used in logs and errors.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithContext sets the parent of the context handed to group handlers.
// A nil context is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithDefectHandler registers fn to be called once if a group handler
// panics. The scheduler is already stopped when fn runs.
func WithDefectHandler(fn func(error)) Option {
	return func(o *options) {
		o.onDefect = fn
	}
}
