package interceptors

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestRecoveryUnary_Panic_ReturnsInternal(t *testing.T) {
	var buf bytes.Buffer
	ic := RecoveryUnary(slog.New(slog.NewTextHandler(&buf, nil)))
	handler := func(_ context.Context, _ any) (any, error) {
		panic("boom")
	}

	resp, err := ic(t.Context(), "req", &grpc.UnaryServerInfo{FullMethod: "/svc/Method"}, handler)
	if resp != nil {
		t.Fatalf("expected nil response, got %v", resp)
	}
	if codeOf(err) != codes.Internal {
		t.Fatalf("expected codes.Internal, got %v", codeOf(err))
	}
	if !strings.Contains(buf.String(), "/svc/Method") {
		t.Fatalf("expected panic to be logged with method, got %q", buf.String())
	}
}

func TestRecoveryUnary_NoPanic_Passthrough(t *testing.T) {
	ic := RecoveryUnary(nil)
	handler := func(_ context.Context, req any) (any, error) {
		return req, nil
	}

	resp, err := ic(t.Context(), "hello", &grpc.UnaryServerInfo{}, handler)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "hello" {
		t.Fatalf("expected %q, got %v", "hello", resp)
	}
}

func TestRecoveryUnary_HandlerErrorUntouched(t *testing.T) {
	ic := RecoveryUnary(nil)
	want := status.Error(codes.NotFound, "missing")
	handler := func(_ context.Context, _ any) (any, error) { return nil, want }

	_, err := ic(t.Context(), "req", &grpc.UnaryServerInfo{}, handler)
	if err != want {
		t.Fatalf("expected %v, got %v", want, err)
	}
}
