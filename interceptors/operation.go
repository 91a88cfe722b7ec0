package interceptors

import (
	"context"

	"github.com/Keksclan/goRawrShield/contextx"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// OperationIDHeader is the metadata key carrying the operation ID.
const OperationIDHeader = "x-operation-id"

// OperationIDUnary returns a unary client interceptor that makes sure the
// call has an operation ID and sends it as [OperationIDHeader].
func OperationIDUnary() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		ctx = contextx.EnsureOperationID(ctx)
		ctx = metadata.AppendToOutgoingContext(ctx, OperationIDHeader, contextx.OperationIDFromContext(ctx))
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// OperationIDServerUnary returns a unary server interceptor that copies the
// caller's operation ID into the handler context, generating one when the
// caller sent none.
func OperationIDServerUnary() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if ids := md.Get(OperationIDHeader); len(ids) > 0 && ids[0] != "" {
				ctx = contextx.WithOperationID(ctx, ids[0])
			}
		}
		return handler(contextx.EnsureOperationID(ctx), req)
	}
}
