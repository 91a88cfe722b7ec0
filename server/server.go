// Package server runs a gRPC server exposing the Ping service, giving
// clients a probe target they control.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/Keksclan/goRawrShield/interceptors"
	"github.com/Keksclan/goRawrShield/metrics"
	"github.com/Keksclan/goRawrShield/ping"
	"google.golang.org/grpc"
)

// Server is a minimal wrapper around a gRPC server with the Ping service
// registered and a fixed interceptor chain: recovery, operation ID, then the
// optional rate limit and any caller-supplied interceptors.
type Server struct {
	grpcServer *grpc.Server
	logger     *slog.Logger
}

// New creates a Server by applying functional options.
func New(opts ...Option) *Server {
	cfg := config{
		logger:  slog.Default(),
		handler: ping.DefaultHandler(),
	}
	for _, o := range opts {
		o(&cfg)
	}

	chain := []grpc.UnaryServerInterceptor{
		interceptors.RecoveryUnary(cfg.logger),
		interceptors.OperationIDServerUnary(),
	}
	if cfg.limiter != nil {
		chain = append(chain, interceptors.RateLimitServerUnary(cfg.limiter))
	}
	chain = append(chain, cfg.unaryInterceptors...)

	s := grpc.NewServer(grpc.ChainUnaryInterceptor(chain...))
	ping.Register(s, cfg.handler)

	return &Server{grpcServer: s, logger: cfg.logger}
}

// GRPC returns the underlying *grpc.Server so callers can register services.
func (s *Server) GRPC() *grpc.Server {
	return s.grpcServer
}

// MetricsHandler returns an http.Handler that serves Prometheus metrics.
func (s *Server) MetricsHandler() http.Handler {
	return metrics.Handler()
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.grpcServer.Serve(lis) }()

	s.logger.Info("ping server listening", slog.String("addr", lis.Addr().String()))

	select {
	case <-ctx.Done():
		s.grpcServer.GracefulStop()
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	}
}
