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

// goldCoinID tracks one troy ounce of gold.
const goldCoinID = "pax-gold"

// CoinGecko quotes crypto in USD, and gold through the PAX Gold token.
type CoinGecko struct {
	baseURL    string
	httpClient *http.Client
}

func NewCoinGecko(baseURL string, timeout time.Duration) *CoinGecko {
	if baseURL == "" {
		baseURL = CoinGeckoURL
	}
	return &CoinGecko{baseURL: baseURL, httpClient: newHTTPClient(timeout)}
}

func (c *CoinGecko) Name() string { return "coingecko" }

func coinID(inst market.Instrument) (string, error) {
	switch inst.Type {
	case market.Crypto:
		return inst.APISymbol, nil
	case market.Commodity:
		if inst.Category == market.CategoryGold {
			return goldCoinID, nil
		}
	}
	return "", fmt.Errorf("coingecko: %s is not quoted", inst.ID)
}

func (c *CoinGecko) Rate(ctx context.Context, inst market.Instrument) (float64, error) {
	id, err := coinID(inst)
	if err != nil {
		return 0, err
	}

	params := url.Values{}
	params.Set("ids", id)
	params.Set("vs_currencies", "usd")

	body, err := get(ctx, c.httpClient, fmt.Sprintf("%s/simple/price?%s", c.baseURL, params.Encode()))
	if err != nil {
		return 0, fmt.Errorf("coingecko: %w", err)
	}
	defer body.Close()

	var resp map[string]map[string]float64
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return 0, fmt.Errorf("coingecko: decode response: %w", err)
	}
	price, ok := resp[id]["usd"]
	if !ok {
		return 0, fmt.Errorf("coingecko: no usd price for %s", id)
	}
	return price, nil
}
