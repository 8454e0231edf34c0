package agents

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"cryptochat/config"
)

// NewChatModel constructs the tool-calling chat model for the configured
// provider. Temperature is pinned to zero so tool selection stays
// reproducible across identical conversations.
func NewChatModel(ctx context.Context, cfg *config.Config) (model.ToolCallingChatModel, error) {
	switch cfg.LLMProvider {
	case "deepseek":
		return deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			BaseURL:     cfg.BackendURL,
			APIKey:      cfg.DeepSeekAPIKey,
			Model:       cfg.ChatLLM,
			Temperature: 0,
		})
	case "openai":
		temperature := float32(0)
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL:     cfg.BackendURL,
			APIKey:      cfg.OpenAIAPIKey,
			Model:       cfg.ChatLLM,
			Temperature: &temperature,
		})
	default:
		return nil, fmt.Errorf("unsupported llm_provider %q", cfg.LLMProvider)
	}
}
