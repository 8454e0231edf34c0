package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino/schema"

	"cryptochat/config"
	"cryptochat/internal/chat"
	"cryptochat/internal/markets"
	"cryptochat/internal/ui"
)

type priceArgs struct {
	Symbol string `json:"symbol"`
}

type statsArgs struct {
	Slug string `json:"slug"`
}

// NewPriceTool builds the get_crypto_price tool. Provider failures are
// hard: the error propagates and no history message is committed.
func NewPriceTool(cfg *config.Config, binance *markets.BinanceClient, history *chat.History) *Tool {
	floor := time.Duration(cfg.ToolLatencyFloorMs) * time.Millisecond

	return &Tool{
		Info: &schema.ToolInfo{
			Name: string(chat.ToolPrice),
			Desc: "Get the current price of a given cryptocurrency. Use this to show the price to the user.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"symbol": {
					Type:     "string",
					Desc:     "The name or symbol of the cryptocurrency. e.g. BTC/ETH/SOL.",
					Required: true,
				},
			}),
		},
		Generate: func(ctx context.Context, rawArgs string, yield func(ui.Renderable)) (ui.Renderable, error) {
			var args priceArgs
			if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
				return nil, fmt.Errorf("parse price args: %w", err)
			}
			if args.Symbol == "" {
				return nil, fmt.Errorf("symbol parameter is required")
			}

			yield(ui.PriceSkeleton{Symbol: args.Symbol})

			quote, err := binance.TickerDay(ctx, args.Symbol)
			if err != nil {
				return nil, err
			}

			if err := latencyFloor(ctx, floor); err != nil {
				return nil, err
			}

			history.Append(chat.Message{
				Role:    chat.RoleAssistant,
				Tool:    chat.ToolPrice,
				Content: fmt.Sprintf("[Price of %s = %s]", quote.Symbol, quote.LastPrice),
			})

			return ui.PriceCard{
				Symbol: quote.Symbol,
				Price:  quote.LastPrice,
				Delta:  quote.PriceChange,
			}, nil
		},
	}
}

// NewStatsTool builds the get_crypto_stats tool. An unknown slug is a soft
// failure: the turn still finalizes with a not-found card and a history
// message recording the attempted lookup.
func NewStatsTool(cfg *config.Config, cmc *markets.CMCClient, history *chat.History) *Tool {
	floor := time.Duration(cfg.ToolLatencyFloorMs) * time.Millisecond

	return &Tool{
		Info: &schema.ToolInfo{
			Name: string(chat.ToolStats),
			Desc: "Get the current stats of a given cryptocurrency. Use this to show the stats to the user.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"slug": {
					Type:     "string",
					Desc:     "The full name of the cryptocurrency in lowercase. e.g. bitcoin/ethereum/solana.",
					Required: true,
				},
			}),
		},
		Generate: func(ctx context.Context, rawArgs string, yield func(ui.Renderable)) (ui.Renderable, error) {
			var args statsArgs
			if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
				return nil, fmt.Errorf("parse stats args: %w", err)
			}
			if args.Slug == "" {
				return nil, fmt.Errorf("slug parameter is required")
			}

			yield(ui.StatsSkeleton{Slug: args.Slug})

			stats, err := cmc.CoinDetail(ctx, args.Slug)
			if errors.Is(err, markets.ErrCoinNotFound) {
				history.Append(chat.Message{
					Role:    chat.RoleAssistant,
					Tool:    chat.ToolStats,
					Content: fmt.Sprintf("[Stats of %s not found]", args.Slug),
				})
				return ui.NotFoundCard{Slug: args.Slug}, nil
			}
			if err != nil {
				return nil, err
			}

			if err := latencyFloor(ctx, floor); err != nil {
				return nil, err
			}

			history.Append(chat.Message{
				Role:    chat.RoleAssistant,
				Tool:    chat.ToolStats,
				Content: fmt.Sprintf("[Stats of %s]", stats.Symbol),
			})

			return ui.StatsCard{Stats: *stats}, nil
		},
	}
}

// NewMarketRegistry wires the fixed tool set for one session.
func NewMarketRegistry(cfg *config.Config, binance *markets.BinanceClient, cmc *markets.CMCClient, history *chat.History) *Registry {
	return NewRegistry(
		NewPriceTool(cfg, binance, history),
		NewStatsTool(cfg, cmc, history),
	)
}

// latencyFloor pads a fast provider round trip so the loading card is
// visible long enough not to flicker.
func latencyFloor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
