package ping

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"google.golang.org/grpc"
)

// DefaultTimeout bounds a single Ping probe.
const DefaultTimeout = 3 * time.Second

// Prober checks reachability by calling Ping over an existing client
// connection. It satisfies netmon.Prober.
type Prober struct {
	conn    grpc.ClientConnInterface
	timeout time.Duration
}

// NewProber returns a Prober that calls Ping on conn, giving up after
// timeout. A non-positive timeout means [DefaultTimeout].
func NewProber(conn grpc.ClientConnInterface, timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Prober{conn: conn, timeout: timeout}
}

// Probe issues one Ping and checks that the server echoed the nonce.
func (p *Prober) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req := &Request{Nonce: newNonce()}
	resp := new(Response)
	if err := p.conn.Invoke(ctx, FullMethod, req, resp); err != nil {
		return err
	}
	if resp.Nonce != req.Nonce {
		return fmt.Errorf("ping: nonce mismatch: sent %q, got %q", req.Nonce, resp.Nonce)
	}
	return nil
}

// newNonce generates a random hex-encoded nonce.
func newNonce() string {
	var buf [8]byte
	_, _ = rand.Read(buf[:])
	return hex.EncodeToString(buf[:])
}
