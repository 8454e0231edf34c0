package markets

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"cryptochat/config"
)

// CMCClient fetches project statistics from the CoinMarketCap detail
// endpoint. Unlike the price client, an unknown slug (any non-2xx status)
// is a soft failure: CoinDetail returns ErrCoinNotFound and the caller is
// expected to render a graceful "not found" card rather than abort the turn.
type CMCClient struct {
	client *resty.Client
	apiKey string
	cache  *quoteCache[*CoinStats]
}

func NewCMCClient(cfg *config.Config) *CMCClient {
	client := resty.New()
	client.SetBaseURL(cfg.CMCBaseURL)
	client.SetTimeout(30 * time.Second)
	client.SetHeaders(map[string]string{
		"Accept":       "application/json",
		"Content-Type": "application/json",
	})

	return &CMCClient{
		client: client,
		apiKey: cfg.CMCAPIKey,
		cache:  newQuoteCache[*CoinStats](time.Duration(cfg.QuoteCacheTTLMs) * time.Millisecond),
	}
}

type cmcDetailResponse struct {
	Data struct {
		ID                        int64   `json:"id"`
		Name                      string  `json:"name"`
		Symbol                    string  `json:"symbol"`
		Volume                    float64 `json:"volume"`
		VolumeChangePercentage24h float64 `json:"volumeChangePercentage24h"`
		Statistics                struct {
			Rank               int     `json:"rank"`
			TotalSupply        float64 `json:"totalSupply"`
			MarketCap          float64 `json:"marketCap"`
			MarketCapDominance float64 `json:"marketCapDominance"`
		} `json:"statistics"`
	} `json:"data"`
}

// CoinDetail looks up one project by its lowercase slug ("bitcoin").
func (cc *CMCClient) CoinDetail(ctx context.Context, slug string) (*CoinStats, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))

	if stats, ok := cc.cache.get(slug); ok {
		return stats, nil
	}

	resp, err := cc.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"slug":   slug,
			"limit":  "1",
			"sortBy": "market_cap",
		}).
		SetHeader("X-CMC_PRO_API_KEY", cc.apiKey).
		Get("/data-api/v3/cryptocurrency/detail")
	if err != nil {
		return nil, &ProviderError{Provider: "coinmarketcap", Op: "detail " + slug, Err: err}
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, ErrCoinNotFound
	}

	var detail cmcDetailResponse
	if err := json.Unmarshal(resp.Body(), &detail); err != nil {
		return nil, &ProviderError{Provider: "coinmarketcap", Op: "parse detail " + slug, Err: err}
	}

	data := detail.Data
	stats := data.Statistics

	coin := &CoinStats{
		ID:                        data.ID,
		Name:                      data.Name,
		Symbol:                    data.Symbol,
		Volume:                    data.Volume,
		VolumeChangePercentage24h: data.VolumeChangePercentage24h,
		Rank:                      stats.Rank,
		TotalSupply:               stats.TotalSupply,
		MarketCap:                 stats.MarketCap,
		MarketCapDominance:        stats.MarketCapDominance,
	}
	cc.cache.set(slug, coin)
	return coin, nil
}
