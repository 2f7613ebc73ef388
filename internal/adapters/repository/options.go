package repository

// Option applies a configuration option to the TreapRegister.
type Option func(*TreapRegister)

// WithMaxLimit caps the number of entries TopN returns.
func WithMaxLimit(n int) Option {
	return func(r *TreapRegister) {
		if n > 0 {
			r.maxLimit = n
		}
	}
}
