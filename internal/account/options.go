package account

type options struct {
	strictSavings bool
}

// Option configures accounts and registries
type Option func(*options)

// WithStrictSavings makes savings accounts refuse every withdrawal,
// including the debit side of ConvertBalance.
func WithStrictSavings(strict bool) Option {
	return func(o *options) {
		o.strictSavings = strict
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
