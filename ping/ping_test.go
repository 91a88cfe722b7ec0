package ping_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/Keksclan/goRawrShield/netmon"
	"github.com/Keksclan/goRawrShield/ping"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

const bufSize = 1024 * 1024

func startServer(t *testing.T, h ping.Handler) *bufconn.Listener {
	t.Helper()
	lis := bufconn.Listen(bufSize)
	s := grpc.NewServer()
	ping.Register(s, h)
	t.Cleanup(func() { s.Stop() })
	go func() { _ = s.Serve(lis) }()
	return lis
}

func dial(t *testing.T, lis *bufconn.Listener) *grpc.ClientConn {
	t.Helper()
	conn, err := grpc.NewClient("passthrough:///bufconn",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestRegisterService(t *testing.T) {
	s := grpc.NewServer()
	ping.Register(s, ping.DefaultHandler())
	si, ok := s.GetServiceInfo()["rawrshield.Ping"]
	if !ok {
		t.Fatal("rawrshield.Ping service not registered")
	}
	if len(si.Methods) != 1 || si.Methods[0].Name != "Ping" {
		t.Fatalf("unexpected methods: %+v", si.Methods)
	}
}

func TestPingViaBufconn(t *testing.T) {
	conn := dial(t, startServer(t, ping.DefaultHandler()))

	req := &ping.Request{Nonce: "abc"}
	resp := new(ping.Response)
	if err := conn.Invoke(t.Context(), ping.FullMethod, req, resp); err != nil {
		t.Fatalf("Ping RPC failed: %v", err)
	}
	if resp.Nonce != "abc" {
		t.Fatalf("expected nonce %q, got %q", "abc", resp.Nonce)
	}
	if diff := time.Now().Unix() - resp.ServerTimeUnix; diff < 0 || diff > 5 {
		t.Fatalf("ServerTimeUnix is not recent: %d (diff %d)", resp.ServerTimeUnix, diff)
	}
}

func TestProber_Reachable(t *testing.T) {
	conn := dial(t, startServer(t, ping.DefaultHandler()))

	p := ping.NewProber(conn, time.Second)
	if err := p.Probe(t.Context()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !netmon.New(p).Probe(t.Context()) {
		t.Fatal("monitor should report reachable")
	}
}

func TestProber_ServerError(t *testing.T) {
	h := ping.HandlerFunc(func(context.Context, *ping.Request) (*ping.Response, error) {
		return nil, status.Error(codes.Unavailable, "warming up")
	})
	conn := dial(t, startServer(t, h))

	if netmon.New(ping.NewProber(conn, time.Second)).Probe(t.Context()) {
		t.Fatal("monitor should report unreachable")
	}
}

func TestProber_NonceMismatch(t *testing.T) {
	h := ping.HandlerFunc(func(context.Context, *ping.Request) (*ping.Response, error) {
		return &ping.Response{Nonce: "stale"}, nil
	})
	conn := dial(t, startServer(t, h))

	if err := ping.NewProber(conn, time.Second).Probe(t.Context()); err == nil {
		t.Fatal("expected nonce mismatch error")
	}
}
