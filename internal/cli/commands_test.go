package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"cryptochat/config"
)

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestRootCommandCreatesConfigFile(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	path := filepath.Join(t.TempDir(), "config.json")

	if err := runCommand(t, "config", "validate", "--config", path); err != nil {
		t.Fatalf("config validate: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	var cfg config.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("decode config file: %v", err)
	}
	if cfg.QuoteCurrency != "USDT" {
		t.Fatalf("seeded config missing defaults: %+v", cfg)
	}
}

func TestConfigSetPersistsToFile(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	path := filepath.Join(t.TempDir(), "config.json")

	next := config.Config{
		LLMProvider:    "deepseek",
		ChatLLM:        "deepseek-chat",
		BinanceBaseURL: "https://api.binance.com",
		CMCBaseURL:     "https://api.coinmarketcap.com",
		QuoteCurrency:  "USDT",
		ListenAddr:     ":9999",
	}
	payload, _ := json.Marshal(next)

	if err := runCommand(t, "config", "set", string(payload), "--config", path); err != nil {
		t.Fatalf("config set: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config file: %v", err)
	}
	var stored config.Config
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatalf("decode config file: %v", err)
	}
	if stored.LLMProvider != "deepseek" || stored.ListenAddr != ":9999" {
		t.Fatalf("update not persisted: %+v", stored)
	}
}

func TestConfigSetRejectsInvalidPayload(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	path := filepath.Join(t.TempDir(), "config.json")

	if err := runCommand(t, "config", "set", `{"llm_provider":"nope"}`, "--config", path); err == nil {
		t.Fatal("expected invalid provider to be rejected")
	}
}
