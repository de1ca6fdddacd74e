// Package geo adapts the public geocoding and postal pincode services.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/logisco/courierfront/internal/api/metrics"
)

const maxResponseBytes = 1 << 20

// getJSON fetches rawURL and decodes a 2xx JSON answer into out.
func getJSON(ctx context.Context, hc *http.Client, upstream, rawURL string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", upstream, err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		metrics.UpstreamRequestDuration.WithLabelValues(upstream, "error").Observe(time.Since(start).Seconds())
		return fmt.Errorf("%s: %w", upstream, err)
	}
	defer resp.Body.Close()
	metrics.UpstreamRequestDuration.WithLabelValues(upstream, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: unexpected status %d", upstream, resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", upstream, err)
	}
	return nil
}
