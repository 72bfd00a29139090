package service

import "time"

type options struct {
	now func() time.Time
}

// Option configures a manager.
type Option func(*options)

// WithClock replaces time.Now as the source of created_at, updated_at and
// delete_at.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
