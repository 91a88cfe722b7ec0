package server

import (
	"log/slog"

	"github.com/Keksclan/goRawrShield/ping"
	"github.com/Keksclan/goRawrShield/ratelimit"
	"google.golang.org/grpc"
)

// config holds the internal configuration assembled via functional options.
type config struct {
	logger            *slog.Logger
	handler           ping.Handler
	limiter           *ratelimit.Limiter
	unaryInterceptors []grpc.UnaryServerInterceptor
}

// Option configures a Server.
type Option func(*config)

// WithLogger sets the logger used for lifecycle and panic records.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithHandler replaces the default echoing Ping handler.
func WithHandler(h ping.Handler) Option {
	return func(c *config) { c.handler = h }
}

// WithRateLimit sheds Ping requests beyond l with ResourceExhausted.
func WithRateLimit(l *ratelimit.Limiter) Option {
	return func(c *config) { c.limiter = l }
}

// WithUnaryInterceptor appends a unary server interceptor after the built-in
// ones.
func WithUnaryInterceptor(i grpc.UnaryServerInterceptor) Option {
	return func(c *config) {
		c.unaryInterceptors = append(c.unaryInterceptors, i)
	}
}
