package bollywood

import (
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

const (
	defaultPoolSize  = 8
	defaultQueueSize = 256
	defaultCastLimit = 1 << 16
)

type systemConfig struct {
	poolSize   int
	queueLimit int
	castLimit  int
	logger     *zap.Logger
	tracer     trace.Tracer
}

func defaultSystemConfig() systemConfig {
	return systemConfig{
		poolSize:   defaultPoolSize,
		queueLimit: defaultQueueSize,
		castLimit:  defaultCastLimit,
	}
}

// Option configures a System at construction, the teacher's functional-
// options idiom (bollywood.Props' WithX chain) generalized from actor
// construction to system construction.
type Option func(*systemConfig)

// WithPoolSize overrides the fixed number of workers (spec.md's
// POOL_SIZE). The pool never resizes once started.
func WithPoolSize(n int) Option {
	return func(c *systemConfig) {
		if n > 0 {
			c.poolSize = n
		}
	}
}

// WithQueueLimit overrides the per-actor mailbox capacity
// (ACTOR_QUEUE_LIMIT).
func WithQueueLimit(n int) Option {
	return func(c *systemConfig) {
		if n > 0 {
			c.queueLimit = n
		}
	}
}

// WithCastLimit overrides the registry's maximum actor count (CAST_LIMIT).
func WithCastLimit(n int) Option {
	return func(c *systemConfig) {
		if n > 0 {
			c.castLimit = n
		}
	}
}

// WithLogger injects a *zap.Logger. Defaults to zap.NewNop() so the core
// never requires configuring logging to run.
func WithLogger(l *zap.Logger) Option {
	return func(c *systemConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTracerProvider injects an OpenTelemetry TracerProvider. Defaults to
// the otel noop provider so the core never requires a collector.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *systemConfig) {
		if tp != nil {
			c.tracer = tp.Tracer("bollywood")
		}
	}
}

func (c *systemConfig) applyDefaults() {
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.tracer == nil {
		c.tracer = noop.NewTracerProvider().Tracer("bollywood")
	}
}
