package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	LLMProvider string `json:"llm_provider"`
	ChatLLM     string `json:"chat_llm"`
	BackendURL  string `json:"backend_url"`

	OpenAIAPIKey   string `json:"openai_api_key"`
	DeepSeekAPIKey string `json:"deepseek_api_key"`

	BinanceBaseURL string `json:"binance_base_url"`
	CMCBaseURL     string `json:"cmc_base_url"`
	CMCAPIKey      string `json:"cmc_api_key"`
	QuoteCurrency  string `json:"quote_currency"`

	ListenAddr string `json:"listen_addr"`

	// ToolLatencyFloorMs pads tool execution so the loading card does not
	// flicker when the provider answers quickly.
	ToolLatencyFloorMs int `json:"tool_latency_floor_ms"`

	// MaxHistoryMessages windows the model-facing history when > 0.
	// 0 replays the full conversation on every call.
	MaxHistoryMessages int `json:"max_history_messages"`

	// QuoteCacheTTLMs keeps successful provider lookups warm so repeated
	// questions about the same coin don't refetch. 0 disables caching.
	QuoteCacheTTLMs int `json:"quote_cache_ttl_ms"`

	Debug            bool `json:"debug"`
	EinoDebugEnabled bool `json:"eino_debug_enabled"`
	EinoDebugPort    int  `json:"eino_debug_port"`
}

func DefaultConfig() *Config {
	cfg := &Config{
		LLMProvider: "openai",
		ChatLLM:     "gpt-4o",
		BackendURL:  "",

		BinanceBaseURL: "https://api.binance.com",
		CMCBaseURL:     "https://api.coinmarketcap.com",
		QuoteCurrency:  "USDT",

		ListenAddr: ":8787",

		ToolLatencyFloorMs: 1000,
		MaxHistoryMessages: 0,
		QuoteCacheTTLMs:    5000,

		Debug:            false,
		EinoDebugEnabled: false,
		EinoDebugPort:    52538,
	}

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg.LoadFromEnv()

	return cfg
}

// LoadFromEnv overlays environment variables on top of c. The environment
// always wins over file-sourced values.
func (c *Config) LoadFromEnv() {
	if val := os.Getenv("LLM_PROVIDER"); val != "" {
		c.LLMProvider = val
	}
	if val := os.Getenv("CHAT_LLM"); val != "" {
		c.ChatLLM = val
	}
	if val := os.Getenv("BACKEND_URL"); val != "" {
		c.BackendURL = val
	}

	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		c.OpenAIAPIKey = val
	}
	if val := os.Getenv("DEEPSEEK_API_KEY"); val != "" {
		c.DeepSeekAPIKey = val
	}

	if val := os.Getenv("BINANCE_BASE_URL"); val != "" {
		c.BinanceBaseURL = val
	}
	if val := os.Getenv("CMC_BASE_URL"); val != "" {
		c.CMCBaseURL = val
	}
	if val := os.Getenv("CMC_API_KEY"); val != "" {
		c.CMCAPIKey = val
	}
	if val := os.Getenv("QUOTE_CURRENCY"); val != "" {
		c.QuoteCurrency = strings.ToUpper(val)
	}

	if val := os.Getenv("LISTEN_ADDR"); val != "" {
		c.ListenAddr = val
	}

	if val := os.Getenv("TOOL_LATENCY_FLOOR_MS"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.ToolLatencyFloorMs = v
		}
	}
	if val := os.Getenv("MAX_HISTORY_MESSAGES"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.MaxHistoryMessages = v
		}
	}
	if val := os.Getenv("QUOTE_CACHE_TTL_MS"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.QuoteCacheTTLMs = v
		}
	}

	if val := os.Getenv("CRYPTOCHAT_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}
	if val := os.Getenv("EINO_DEBUG_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.EinoDebugEnabled = enabled
		}
	}
	if val := os.Getenv("EINO_DEBUG_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.EinoDebugPort = port
		}
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.BinanceBaseURL) == "" {
		return fmt.Errorf("binance_base_url is required")
	}
	if strings.TrimSpace(c.CMCBaseURL) == "" {
		return fmt.Errorf("cmc_base_url is required")
	}
	if strings.TrimSpace(c.QuoteCurrency) == "" {
		return fmt.Errorf("quote_currency is required")
	}
	if c.ToolLatencyFloorMs < 0 {
		return fmt.Errorf("tool_latency_floor_ms must not be negative")
	}
	if c.MaxHistoryMessages < 0 {
		return fmt.Errorf("max_history_messages must not be negative")
	}
	if c.QuoteCacheTTLMs < 0 {
		return fmt.Errorf("quote_cache_ttl_ms must not be negative")
	}
	switch c.LLMProvider {
	case "openai", "deepseek":
	default:
		return fmt.Errorf("unsupported llm_provider %q", c.LLMProvider)
	}
	return nil
}

// APIKey returns the key for the selected LLM provider.
func (c *Config) APIKey() string {
	if c.LLMProvider == "deepseek" {
		return c.DeepSeekAPIKey
	}
	return c.OpenAIAPIKey
}
