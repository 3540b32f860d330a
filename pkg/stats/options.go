package stats

// Option adjusts report construction.
type Option func(*options)

type options struct {
	consistencyDays int
}

// WithConsistencyDays overrides the minimum number of days played for the
// consistency ranking. Values below 1 are ignored.
func WithConsistencyDays(days int) Option {
	return func(o *options) {
		if days > 0 {
			o.consistencyDays = days
		}
	}
}

func newOptions(defaultDays int, opts []Option) options {
	o := options{consistencyDays: defaultDays}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
