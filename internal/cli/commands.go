package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cryptochat/config"
	"cryptochat/internal/agents"
	"cryptochat/internal/debug"
	"cryptochat/internal/server"
)

// cliApp carries the effective config and its on-disk manager across the
// command tree. The manager is built in PersistentPreRunE, so every RunE
// sees it populated.
type cliApp struct {
	cfg *config.Config
	mgr *config.Manager
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	app := &cliApp{cfg: config.DefaultConfig()}

	rootCmd := &cobra.Command{
		Use:   "cryptochat",
		Short: "cryptochat - crypto price chat assistant",
		Long: `cryptochat is a conversational assistant that answers crypto price and
market stats questions through live Binance and CoinMarketCap lookups,
streaming its replies (including loading cards) as they are produced.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			mgr, err := config.NewManager(
				config.WithConfigPath(path),
				config.WithInitialConfig(app.cfg),
			)
			if err != nil {
				return err
			}
			app.mgr = mgr

			// File values load first, the environment overlays them, and
			// flags win last.
			*app.cfg = mgr.Get()
			app.cfg.LoadFromEnv()
			if debugFlag, _ := cmd.Flags().GetBool("debug"); debugFlag {
				app.cfg.Debug = true
			}
			return app.cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveChat(app.cfg)
		},
	}

	rootCmd.AddCommand(newServeCmd(app))
	rootCmd.AddCommand(newChatCmd(app))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().String("config", "", "Path to the JSON config file")

	return rootCmd
}

// newServeCmd creates the serve command
func newServeCmd(app *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chat web server",
		Long: `Start the HTTP server exposing the chat API and the websocket
streaming endpoint. Example: cryptochat serve --addr=:8787`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				app.cfg.ListenAddr = addr
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := debug.Init(ctx, app.cfg); err != nil {
				return err
			}

			if err := app.mgr.Watch(ctx, func(newCfg config.Config) {
				log.Printf("config reloaded from %s", app.mgr.Path())
				*app.cfg = newCfg
			}); err != nil {
				return fmt.Errorf("watch config: %w", err)
			}

			chatModel, err := agents.NewChatModel(ctx, app.cfg)
			if err != nil {
				return fmt.Errorf("init chat model: %w", err)
			}

			return server.New(app.cfg, chatModel).Run(ctx)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (host:port)")

	return cmd
}

// newChatCmd creates the interactive chat command
func newChatCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveChat(app.cfg)
		},
	}
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("cryptochat v1.0.0")
			fmt.Println("Crypto price chat assistant")
		},
	}
}

// newConfigCmd creates the config command
func newConfigCmd(app *cliApp) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			shown := *app.cfg
			if shown.OpenAIAPIKey != "" {
				shown.OpenAIAPIKey = "***"
			}
			if shown.DeepSeekAPIKey != "" {
				shown.DeepSeekAPIKey = "***"
			}
			if shown.CMCAPIKey != "" {
				shown.CMCAPIKey = "***"
			}
			data, err := json.MarshalIndent(shown, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println("config file:", app.mgr.Path())
			fmt.Println(string(data))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(app.mgr.Path())
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "set <json>",
		Short: "Replace the stored configuration with the given JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.mgr.UpdateFromJSON(args[0]); err != nil {
				return err
			}
			*app.cfg = app.mgr.Get()
			fmt.Println("Configuration updated")
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.cfg.Validate(); err != nil {
				return err
			}
			if app.cfg.APIKey() == "" {
				return fmt.Errorf("no API key configured for provider %q", app.cfg.LLMProvider)
			}
			fmt.Println("Configuration OK")
			return nil
		},
	})

	return configCmd
}
