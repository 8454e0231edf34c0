// Package markets holds the clients for the two crypto data providers:
// Binance for trading-pair prices and CoinMarketCap for project statistics.
package markets

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrCoinNotFound is the soft-failure sentinel for stats lookups. A slug the
// provider does not know resolves to this value instead of an error chain;
// the price client never returns it.
var ErrCoinNotFound = errors.New("crypto not found")

// ProviderError is a hard lookup failure: bad symbol, transport error, or a
// malformed payload. It propagates to the turn's caller.
type ProviderError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// PriceQuote is the normalized 24h ticker for one trading pair.
type PriceQuote struct {
	Symbol    string          `json:"symbol"`
	Pair      string          `json:"pair"`
	LastPrice decimal.Decimal `json:"last_price"`
	// PriceChange is the absolute 24h delta, signed.
	PriceChange decimal.Decimal `json:"price_change"`
}

// CoinStats is the normalized statistics record for one project.
type CoinStats struct {
	ID                        int64   `json:"id"`
	Name                      string  `json:"name"`
	Symbol                    string  `json:"symbol"`
	Volume                    float64 `json:"volume"`
	VolumeChangePercentage24h float64 `json:"volume_change_percentage_24h"`
	Rank                      int     `json:"rank"`
	TotalSupply               float64 `json:"total_supply"`
	MarketCap                 float64 `json:"market_cap"`
	MarketCapDominance        float64 `json:"market_cap_dominance"`
}
