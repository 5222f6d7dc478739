// Package rates fetches live market rates for catalog instruments.
package rates

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rustyeddy/tradelog/market"
)

const (
	// FrankfurterURL serves ECB reference rates for currency pairs.
	FrankfurterURL = "https://api.frankfurter.app"
	// CoinGeckoURL serves crypto spot prices; gold is priced via PAX Gold.
	CoinGeckoURL = "https://api.coingecko.com/api/v3"

	defaultTimeout = 10 * time.Second
)

// Provider quotes one family of instruments.
type Provider interface {
	Name() string
	Rate(ctx context.Context, inst market.Instrument) (float64, error)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// get issues a GET and returns the body of a 200 response.
func get(ctx context.Context, c *http.Client, apiURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}
	return resp.Body, nil
}
