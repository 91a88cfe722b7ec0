package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Keksclan/goRawrShield/ratelimit"
	"github.com/Keksclan/goRawrShield/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr        string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "ping-server",
		Short: "Serve the Ping RPC as a probe target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := []server.Option{server.WithLogger(a.logger)}
			if a.cfg.RateLimitRPS > 0 {
				opts = append(opts, server.WithRateLimit(ratelimit.NewLimiter(a.cfg.RateLimitRPS, a.cfg.RateLimitBurst)))
			}
			srv := server.New(opts...)

			lis, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", addr, err)
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error { return srv.Serve(ctx, lis) })

			if metricsAddr != "" {
				hs := &http.Server{
					Addr:              metricsAddr,
					Handler:           srv.MetricsHandler(),
					ReadHeaderTimeout: 5 * time.Second,
				}
				g.Go(func() error {
					a.logger.Info("metrics listening", slog.String("addr", metricsAddr))
					if err := hs.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
						return err
					}
					return nil
				})
				g.Go(func() error {
					<-ctx.Done()
					shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
					defer cancel()
					return hs.Shutdown(shutdownCtx)
				})
			}

			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":50051", "gRPC listen address")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}
