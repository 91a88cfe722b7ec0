package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	gs "github.com/Keksclan/goRawrShield"
	"github.com/Keksclan/goRawrShield/degrade"
	"github.com/spf13/cobra"
)

// maxBody caps how much of a response body fetch reads.
const maxBody = 1 << 20

func newFetchCmd(a *app) *cobra.Command {
	var repeat int

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "GET a URL through the cache with retries and fallback",
		Long:  "fetch GETs url through a TTL cache. Failures are retried with linear backoff; when every attempt fails the last successful body saved in storage is printed instead.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := args[0]

			opts, err := gs.FromConfig(a.cfg)
			if err != nil {
				return err
			}
			opts = append(opts, gs.WithLogger(a.logger))
			if tc := a.tracing(); tc != nil {
				opts = append(opts, gs.WithTracing(*tc))
			}

			kit := gs.NewKit(opts...)
			defer func() {
				if err := kit.Close(); err != nil {
					a.logger.Warn("close kit", slog.Any("error", err))
				}
			}()
			kit.Start()

			f := gs.NewFetcher[string](kit, nil, "http")
			ctx := cmd.Context()

			// The last good body doubles as the fallback; storage failures
			// only mean there is nothing to fall back to.
			fallback, _ := degrade.SafeGet(ctx, kit.Store(), url)

			for range max(repeat, 1) {
				res := f.Fetch(ctx, url, func(ctx context.Context) (string, error) {
					return get(ctx, url)
				}, fallback)

				if res.Degraded {
					a.logger.Warn("serving fallback", slog.String("url", url), slog.Any("error", res.Err))
				} else if !degrade.SafeSet(ctx, kit.Store(), url, res.Value) {
					a.logger.Debug("could not persist body", slog.String("url", url))
				}
				fmt.Fprintln(cmd.OutOrStdout(), res.Value)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&repeat, "repeat", 1, "fetch this many times; repeats within the TTL are served from cache")

	return cmd
}

// get performs one GET and returns the body. Server errors are reported as
// failures so they get retried.
func get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}
