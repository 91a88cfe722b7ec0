package netmon

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// DefaultProbeURL is a lightweight public endpoint that answers 204.
const DefaultProbeURL = "https://www.gstatic.com/generate_204"

// DefaultProbeTimeout bounds a single HTTP probe.
const DefaultProbeTimeout = 5 * time.Second

// HTTPProber checks reachability by issuing a HEAD request to a known-good
// endpoint. The response body is ignored; only transport success and a
// non-error status code matter.
type HTTPProber struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration
}

// NewHTTPProber returns a prober for url using http.DefaultClient and
// [DefaultProbeTimeout]. An empty url means [DefaultProbeURL].
func NewHTTPProber(url string) *HTTPProber {
	if url == "" {
		url = DefaultProbeURL
	}
	return &HTTPProber{URL: url, Timeout: DefaultProbeTimeout}
}

// Probe issues the HEAD request.
func (p *HTTPProber) Probe(ctx context.Context) error {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.URL, nil)
	if err != nil {
		return err
	}

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("probe %s: unexpected status %d", p.URL, resp.StatusCode)
	}
	return nil
}
