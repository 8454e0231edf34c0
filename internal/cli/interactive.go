package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/cloudwego/eino/components/model"

	"cryptochat/config"
	"cryptochat/internal/agents"
	"cryptochat/internal/chat"
	"cryptochat/internal/markets"
	"cryptochat/internal/tools"
	"cryptochat/internal/ui"
)

// runInteractiveChat runs the terminal chat loop. Each run is one session:
// history and display feed live for the duration of the loop and are
// discarded on exit.
func runInteractiveChat(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	DisplayWelcomeBanner()

	chatModel, err := agents.NewChatModel(ctx, cfg)
	if err != nil {
		return err
	}

	for {
		orch, err := newTerminalSession(cfg, chatModel)
		if err != nil {
			return err
		}

		if err := chatLoop(ctx, orch); err != nil {
			return err
		}

		restart, err := PromptForRestartOrExit()
		if err != nil || !restart {
			return err
		}
	}
}

func newTerminalSession(cfg *config.Config, chatModel model.ToolCallingChatModel) (*agents.Orchestrator, error) {
	history := chat.NewHistory()
	registry := tools.NewMarketRegistry(
		cfg,
		markets.NewBinanceClient(cfg),
		markets.NewCMCClient(cfg),
		history,
	)
	return agents.NewOrchestrator(cfg, chatModel, registry, history, ui.NewFeed())
}

func chatLoop(ctx context.Context, orch *agents.Orchestrator) error {
	for {
		message, err := PromptForMessage()
		if err != nil {
			// survey returns an error on Ctrl-C / EOF
			return nil
		}
		if message == "/quit" || message == "/exit" {
			return nil
		}

		// Placeholders print as they arrive; the resolved turn prints once
		// at the end so growing text deltas don't repeat on screen.
		rec, err := orch.SubmitUserMessage(ctx, message, func(rend ui.Renderable) {
			switch rend.(type) {
			case ui.Spinner, ui.PriceSkeleton, ui.StatsSkeleton:
				RenderDisplay(rend)
			}
		})
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			DisplayError(err)
			continue
		}

		RenderDisplay(rec.Renderable)
	}
}
