package markets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cryptochat/config"
)

func newBinanceTestClient(t *testing.T, handler http.HandlerFunc) *BinanceClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{BinanceBaseURL: srv.URL, QuoteCurrency: "USDT"}
	return NewBinanceClient(cfg)
}

func TestTickerDayBuildsPairAndParsesDecimals(t *testing.T) {
	var gotSymbol string
	bc := newBinanceTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/ticker/24hr" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotSymbol = r.URL.Query().Get("symbol")
		w.Write([]byte(`{"symbol":"BTCUSDT","lastPrice":"69000.50","priceChange":"-1200.25"}`))
	})

	quote, err := bc.TickerDay(context.Background(), "btc")
	if err != nil {
		t.Fatalf("TickerDay: %v", err)
	}

	if gotSymbol != "BTCUSDT" {
		t.Fatalf("expected pair BTCUSDT, got %s", gotSymbol)
	}
	if quote.Symbol != "BTC" || quote.Pair != "BTCUSDT" {
		t.Fatalf("unexpected quote identifiers: %+v", quote)
	}
	if quote.LastPrice.String() != "69000.5" {
		t.Fatalf("expected last price 69000.5, got %s", quote.LastPrice)
	}
	if !quote.PriceChange.IsNegative() {
		t.Fatalf("expected negative delta, got %s", quote.PriceChange)
	}
}

func TestTickerDayUnknownPairIsHardFailure(t *testing.T) {
	bc := newBinanceTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":-1121,"msg":"Invalid symbol."}`))
	})

	_, err := bc.TickerDay(context.Background(), "NOPE")
	if err == nil {
		t.Fatalf("expected error for unknown pair")
	}
	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected *ProviderError, got %T: %v", err, err)
	}
	if errors.Is(err, ErrCoinNotFound) {
		t.Fatalf("price lookups must never soft-fail")
	}
}

func TestTickerDayMalformedPayloadIsHardFailure(t *testing.T) {
	bc := newBinanceTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"lastPrice":"not a number","priceChange":"0"}`))
	})

	_, err := bc.TickerDay(context.Background(), "BTC")
	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected *ProviderError for malformed price, got %v", err)
	}
}
