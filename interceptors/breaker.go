package interceptors

import (
	"context"

	"github.com/Keksclan/goRawrShield/breaker"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errCircuitOpen = status.Error(codes.Unavailable, "circuit breaker open")

// BreakerUnary returns a unary client interceptor that refuses calls with
// Unavailable while b is open. Only [Retryable] failures count against the
// breaker; application errors such as NotFound leave it untouched.
func BreakerUnary(b *breaker.Breaker) grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		if !b.Allow() {
			return errCircuitOpen
		}
		err := invoker(ctx, method, req, reply, cc, opts...)
		if Retryable(err) {
			b.OnFailure()
		} else {
			b.OnSuccess()
		}
		return err
	}
}
