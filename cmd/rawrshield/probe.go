package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/Keksclan/goRawrShield/netmon"
	"github.com/Keksclan/goRawrShield/ping"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

var errUnreachable = errors.New("network unreachable")

func newProbeCmd(a *app) *cobra.Command {
	var (
		url      string
		grpcAddr string
		maxWait  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Check network reachability",
		Long:  "probe runs one reachability check, or with --max-wait keeps polling until the network answers or the wait runs out. It exits non-zero when unreachable.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var prober netmon.Prober
			if grpcAddr != "" {
				conn, err := grpc.NewClient(grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
				if err != nil {
					return fmt.Errorf("dial %s: %w", grpcAddr, err)
				}
				defer conn.Close()
				prober = ping.NewProber(conn, a.cfg.ProbeTimeout)
			} else {
				if url == "" {
					url = a.cfg.ProbeURL
				}
				prober = &netmon.HTTPProber{URL: url, Timeout: a.cfg.ProbeTimeout}
			}

			m := netmon.New(prober,
				netmon.WithPollInterval(a.cfg.PollInterval),
				netmon.WithLogger(a.logger),
			)

			var ok bool
			if maxWait > 0 {
				ok = m.WaitForNetwork(cmd.Context(), maxWait)
			} else {
				ok = m.Probe(cmd.Context())
			}

			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "unreachable")
				return errUnreachable
			}
			fmt.Fprintln(cmd.OutOrStdout(), "reachable")
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "HTTP endpoint to probe (default RAWR_PROBE_URL)")
	cmd.Flags().StringVar(&grpcAddr, "grpc", "", "probe a rawrshield Ping server at this address instead of HTTP")
	cmd.Flags().DurationVar(&maxWait, "max-wait", 0, "keep polling for up to this long")

	return cmd
}
