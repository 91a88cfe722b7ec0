// Package interceptors adapts the resilience components to gRPC. Client
// interceptors retry, rate-limit and circuit-break outgoing unary calls and
// propagate the operation ID; server interceptors recover panics, shed load
// and pick the operation ID back up.
//
// Client interceptors are meant to be installed with
// grpc.WithChainUnaryInterceptor in the order operation ID, breaker, retry,
// rate limit, so that one logical call counts once against the breaker while
// each attempt is paced individually.
package interceptors
