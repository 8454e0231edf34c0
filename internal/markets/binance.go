package markets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"cryptochat/config"
)

// BinanceClient fetches 24h ticker data for spot trading pairs. Every
// failure mode is hard: callers get a *ProviderError, never a sentinel.
type BinanceClient struct {
	client *resty.Client
	quote  string
	cache  *quoteCache[*PriceQuote]
}

func NewBinanceClient(cfg *config.Config) *BinanceClient {
	client := resty.New()
	client.SetBaseURL(cfg.BinanceBaseURL)
	client.SetTimeout(30 * time.Second)

	return &BinanceClient{
		client: client,
		quote:  cfg.QuoteCurrency,
		cache:  newQuoteCache[*PriceQuote](time.Duration(cfg.QuoteCacheTTLMs) * time.Millisecond),
	}
}

type binanceTicker struct {
	Symbol      string `json:"symbol"`
	LastPrice   string `json:"lastPrice"`
	PriceChange string `json:"priceChange"`
}

// Pair builds the trading-pair identifier for a base symbol against the
// configured quote currency, e.g. "BTC" -> "BTCUSDT".
func (bc *BinanceClient) Pair(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol)) + bc.quote
}

// TickerDay returns the last price and signed 24h change for the pair built
// from symbol.
func (bc *BinanceClient) TickerDay(ctx context.Context, symbol string) (*PriceQuote, error) {
	pair := bc.Pair(symbol)

	if quote, ok := bc.cache.get(pair); ok {
		return quote, nil
	}

	resp, err := bc.client.R().
		SetContext(ctx).
		SetQueryParam("symbol", pair).
		Get("/api/v3/ticker/24hr")
	if err != nil {
		return nil, &ProviderError{Provider: "binance", Op: "ticker " + pair, Err: err}
	}
	if resp.StatusCode() != 200 {
		return nil, &ProviderError{
			Provider: "binance",
			Op:       "ticker " + pair,
			Err:      fmt.Errorf("API error %d: %s", resp.StatusCode(), resp.String()),
		}
	}

	var ticker binanceTicker
	if err := json.Unmarshal(resp.Body(), &ticker); err != nil {
		return nil, &ProviderError{Provider: "binance", Op: "parse ticker " + pair, Err: err}
	}

	lastPrice, err := decimal.NewFromString(ticker.LastPrice)
	if err != nil {
		return nil, &ProviderError{Provider: "binance", Op: "parse lastPrice", Err: err}
	}
	priceChange, err := decimal.NewFromString(ticker.PriceChange)
	if err != nil {
		return nil, &ProviderError{Provider: "binance", Op: "parse priceChange", Err: err}
	}

	quote := &PriceQuote{
		Symbol:      strings.ToUpper(strings.TrimSpace(symbol)),
		Pair:        pair,
		LastPrice:   lastPrice,
		PriceChange: priceChange,
	}
	bc.cache.set(pair, quote)
	return quote, nil
}
