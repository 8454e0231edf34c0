package markets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cryptochat/config"
)

const dogeDetail = `{"data":{"id":74,"name":"Dogecoin","symbol":"DOGE",
"volume":1234567.8,"volumeChangePercentage24h":-3.1,
"statistics":{"rank":9,"totalSupply":140000000000,"marketCap":11000000000,"marketCapDominance":0.9}}}`

func newCMCTestClient(t *testing.T, handler http.HandlerFunc) *CMCClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{CMCBaseURL: srv.URL, CMCAPIKey: "test-key"}
	return NewCMCClient(cfg)
}

func TestCoinDetailSendsRequiredParamsAndKey(t *testing.T) {
	var gotQuery map[string]string
	var gotKey string
	cc := newCMCTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"slug":   q.Get("slug"),
			"limit":  q.Get("limit"),
			"sortBy": q.Get("sortBy"),
		}
		gotKey = r.Header.Get("X-CMC_PRO_API_KEY")
		w.Write([]byte(dogeDetail))
	})

	stats, err := cc.CoinDetail(context.Background(), " Dogecoin ")
	if err != nil {
		t.Fatalf("CoinDetail: %v", err)
	}

	if gotQuery["slug"] != "dogecoin" || gotQuery["limit"] != "1" || gotQuery["sortBy"] != "market_cap" {
		t.Fatalf("missing required query params: %+v", gotQuery)
	}
	if gotKey != "test-key" {
		t.Fatalf("API key header not sent, got %q", gotKey)
	}
	if stats.Name != "Dogecoin" || stats.Symbol != "DOGE" || stats.Rank != 9 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.MarketCap != 11000000000 {
		t.Fatalf("market cap not decoded: %+v", stats)
	}
}

func TestCoinDetailNonSuccessIsSoftNotFound(t *testing.T) {
	cc := newCMCTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := cc.CoinDetail(context.Background(), "definitely-not-a-coin")
	if !errors.Is(err, ErrCoinNotFound) {
		t.Fatalf("expected ErrCoinNotFound sentinel, got %v", err)
	}
}

func TestCoinDetailNotFoundIsIdempotent(t *testing.T) {
	calls := 0
	cc := newCMCTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	first, err1 := cc.CoinDetail(context.Background(), "ghostcoin")
	second, err2 := cc.CoinDetail(context.Background(), "ghostcoin")

	if calls != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", calls)
	}
	if first != nil || second != nil {
		t.Fatalf("expected nil stats on both calls")
	}
	if !errors.Is(err1, ErrCoinNotFound) || !errors.Is(err2, ErrCoinNotFound) {
		t.Fatalf("expected identical sentinel on repeat lookups, got %v / %v", err1, err2)
	}
}
