// Package ui defines the presentation-facing values the orchestrator emits:
// renderables (text bubbles, loading skeletons, price and stats cards) and
// the per-session display feed. These values are never replayed into the
// model; the model-facing history lives in internal/chat.
package ui

import (
	"github.com/shopspring/decimal"

	"cryptochat/internal/markets"
)

// Renderable is an opaque presentation value. The consumer renders it by
// kind; the orchestration core only moves it around.
type Renderable interface {
	Kind() string
}

// TextMessage is a plain text bubble for either side of the conversation.
// While a text turn streams, successive TextMessages carry the accumulated
// content so far.
type TextMessage struct {
	Text string `json:"text"`
}

func (TextMessage) Kind() string { return "text" }

// Spinner is the initial "thinking" placeholder shown before the model has
// decided between text and a tool call.
type Spinner struct{}

func (Spinner) Kind() string { return "spinner" }

// PriceSkeleton is the loading placeholder for a price card.
type PriceSkeleton struct {
	Symbol string `json:"symbol"`
}

func (PriceSkeleton) Kind() string { return "price_skeleton" }

// StatsSkeleton is the loading placeholder for a stats card.
type StatsSkeleton struct {
	Slug string `json:"slug"`
}

func (StatsSkeleton) Kind() string { return "stats_skeleton" }

// PriceCard is the final rendering of a price lookup.
type PriceCard struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
	Delta  decimal.Decimal `json:"delta"`
}

func (PriceCard) Kind() string { return "price_card" }

// StatsCard is the final rendering of a stats lookup.
type StatsCard struct {
	Stats markets.CoinStats `json:"stats"`
}

func (StatsCard) Kind() string { return "stats_card" }

// NotFoundCard is the graceful terminal value for a stats lookup the
// provider could not resolve.
type NotFoundCard struct {
	Slug string `json:"slug"`
}

func (NotFoundCard) Kind() string { return "not_found_card" }
