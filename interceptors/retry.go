package interceptors

import (
	"context"

	"github.com/Keksclan/goRawrShield/retry"
	"google.golang.org/grpc"
)

// RetryUnary returns a unary client interceptor that re-invokes calls failing
// with a [Retryable] code according to plan. Other failures are returned
// after the first attempt. The operation name defaults to the full method.
func RetryUnary(plan retry.Plan, opts ...retry.Option) grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		callOpts ...grpc.CallOption,
	) error {
		ropts := append([]retry.Option{retry.WithName(method)}, opts...)
		_, err := retry.Do(ctx, plan, func(ctx context.Context) (struct{}, error) {
			err := invoker(ctx, method, req, reply, cc, callOpts...)
			if err != nil && !Retryable(err) {
				return struct{}{}, retry.Permanent(err)
			}
			return struct{}{}, err
		}, ropts...)
		return err
	}
}
