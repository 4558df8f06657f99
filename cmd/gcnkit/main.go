package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gcnml/gcnkit"
)

var (
	flagConfig   string
	flagLogLevel string
	flagProvider string
	flagModel    string
	flagBaseURL  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gcnkit",
		Short: "Extract, catalog, and question GCN circulars",
		Long: `gcnkit turns raw GCN circular text into structured records, grafts them
onto a graph of circulars, authors and collaborations, and answers
natural-language questions against that graph.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(flagLogLevel)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVarP(&flagLogLevel, "log-level", "v", "error", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVarP(&flagProvider, "provider", "p", "", "chat provider override (deepseek, ollama, openai, custom)")
	rootCmd.PersistentFlags().StringVarP(&flagModel, "model", "m", "", "chat model override")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "chat base URL override")

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(ingestCmd())
	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(purgeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging installs the default logger. Everything below the chosen
// level is suppressed, so the default of "error" keeps normal runs quiet.
func setupLogging(level string) error {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error", "":
		lvl = slog.LevelError
	default:
		return fmt.Errorf("unknown log level: %s", level)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	})))
	return nil
}

// loadConfig builds the effective configuration: defaults, then the YAML
// config file, then GCNKIT_* environment variables, then flags.
func loadConfig() (gcnkit.Config, error) {
	cfg := gcnkit.DefaultConfig()

	if flagConfig != "" {
		data, err := os.ReadFile(flagConfig)
		if err != nil {
			return cfg, fmt.Errorf("opening config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if v := os.Getenv("GCNKIT_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("GCNKIT_CHAT_PROVIDER"); v != "" {
		cfg.Chat.Provider = v
	}
	if v := os.Getenv("GCNKIT_CHAT_MODEL"); v != "" {
		cfg.Chat.Model = v
	}
	if v := os.Getenv("GCNKIT_CHAT_BASE_URL"); v != "" {
		cfg.Chat.BaseURL = v
	}
	if v := os.Getenv("GCNKIT_CHAT_API_KEY"); v != "" {
		cfg.Chat.APIKey = v
	}

	if flagProvider != "" {
		cfg.Chat.Provider = flagProvider
	}
	if flagModel != "" {
		cfg.Chat.Model = flagModel
	}
	if flagBaseURL != "" {
		cfg.Chat.BaseURL = flagBaseURL
	}

	// Fallback: well-known provider env vars for API keys.
	if cfg.Chat.APIKey == "" {
		switch cfg.Chat.Provider {
		case "deepseek":
			cfg.Chat.APIKey = os.Getenv("DEEPSEEK_API_KEY")
		case "openai":
			cfg.Chat.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}
	return cfg, nil
}

func newEngine() (gcnkit.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return gcnkit.New(cfg)
}

func newEngineFrom(cfg gcnkit.Config) (gcnkit.Engine, error) {
	return gcnkit.New(cfg)
}
