package features

import (
	"time"

	"github.com/okian/ignite/pkg/logger"
)

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the builder's logger.
func WithLogger(l logger.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

// WithClock sets the time tenure is measured against.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithUnknownPolicy sets how unseen categories are handled after fitting.
func WithUnknownPolicy(p UnknownPolicy) Option {
	return func(b *Builder) {
		b.policy = p
	}
}
