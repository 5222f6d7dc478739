package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rustyeddy/tradelog/market"
)

// Frankfurter quotes forex pairs.
type Frankfurter struct {
	baseURL    string
	httpClient *http.Client
}

func NewFrankfurter(baseURL string, timeout time.Duration) *Frankfurter {
	if baseURL == "" {
		baseURL = FrankfurterURL
	}
	return &Frankfurter{baseURL: baseURL, httpClient: newHTTPClient(timeout)}
}

func (f *Frankfurter) Name() string { return "frankfurter" }

type frankfurterResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// Rate returns the price of the base currency in the quote currency, taken
// from the first and last three letters of the API symbol.
func (f *Frankfurter) Rate(ctx context.Context, inst market.Instrument) (float64, error) {
	sym := inst.APISymbol
	if len(sym) != 6 {
		return 0, fmt.Errorf("frankfurter: %s: symbol %q is not a currency pair", inst.ID, sym)
	}
	base, quote := sym[:3], sym[3:]

	params := url.Values{}
	params.Set("from", base)
	params.Set("to", quote)

	body, err := get(ctx, f.httpClient, fmt.Sprintf("%s/latest?%s", f.baseURL, params.Encode()))
	if err != nil {
		return 0, fmt.Errorf("frankfurter: %w", err)
	}
	defer body.Close()

	var resp frankfurterResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return 0, fmt.Errorf("frankfurter: decode response: %w", err)
	}
	rate, ok := resp.Rates[quote]
	if !ok {
		return 0, fmt.Errorf("frankfurter: no %s rate in response", quote)
	}
	return rate, nil
}
