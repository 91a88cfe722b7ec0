package interceptors

import (
	"context"

	"github.com/Keksclan/goRawrShield/ratelimit"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// errRateLimited is allocated once to avoid per-request allocations on the hot path.
var errRateLimited = status.Error(codes.ResourceExhausted, "rate limit exceeded")

// RateLimitUnary returns a unary client interceptor that waits for l before
// every outgoing call. If ctx ends first the call is not made and the
// context error is returned as a gRPC status.
func RateLimitUnary(l *ratelimit.Limiter) grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		if err := l.Wait(ctx); err != nil {
			return status.FromContextError(err).Err()
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// RateLimitServerUnary returns a unary server interceptor that rejects
// requests with ResourceExhausted once l has been exhausted.
func RateLimitServerUnary(l *ratelimit.Limiter) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if !l.Allow() {
			return nil, errRateLimited
		}
		return handler(ctx, req)
	}
}
