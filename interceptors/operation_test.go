package interceptors

import (
	"context"
	"testing"

	"github.com/Keksclan/goRawrShield/contextx"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

func TestOperationIDUnary_SendsExistingID(t *testing.T) {
	ctx := contextx.WithOperationID(t.Context(), "op-42")

	var sent []string
	inv := func(ctx context.Context, _ string, _, _ any, _ *grpc.ClientConn, _ ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		sent = md.Get(OperationIDHeader)
		return nil
	}

	if err := OperationIDUnary()(ctx, "/svc/Method", nil, nil, nil, inv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sent) != 1 || sent[0] != "op-42" {
		t.Fatalf("expected [op-42], got %v", sent)
	}
}

func TestOperationIDUnary_GeneratesID(t *testing.T) {
	var sent []string
	inv := func(ctx context.Context, _ string, _, _ any, _ *grpc.ClientConn, _ ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		sent = md.Get(OperationIDHeader)
		return nil
	}

	if err := OperationIDUnary()(t.Context(), "/svc/Method", nil, nil, nil, inv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sent) != 1 || sent[0] == "" {
		t.Fatalf("expected a generated ID, got %v", sent)
	}
}

func TestOperationIDServerUnary_AdoptsIncomingID(t *testing.T) {
	ctx := metadata.NewIncomingContext(t.Context(), metadata.Pairs(OperationIDHeader, "op-7"))

	var got string
	handler := func(ctx context.Context, _ any) (any, error) {
		got = contextx.OperationIDFromContext(ctx)
		return nil, nil
	}
	if _, err := OperationIDServerUnary()(ctx, nil, &grpc.UnaryServerInfo{}, handler); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "op-7" {
		t.Fatalf("expected %q, got %q", "op-7", got)
	}
}

func TestOperationIDServerUnary_GeneratesWhenMissing(t *testing.T) {
	var got string
	handler := func(ctx context.Context, _ any) (any, error) {
		got = contextx.OperationIDFromContext(ctx)
		return nil, nil
	}
	if _, err := OperationIDServerUnary()(t.Context(), nil, &grpc.UnaryServerInfo{}, handler); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == "" {
		t.Fatal("expected a generated operation ID")
	}
}
