package cli

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/vietddude/stylelog"

	"github.com/dfstats/deltaquery/internal/core/config"
)

var (
	cfgPath string
	isDebug bool
)

var rootCmd = &cobra.Command{
	Use:   "deltaquery",
	Short: "Delta Force statistics query tool",
	Long:  `deltaquery queries the game-statistics IDE endpoint with retry, backoff and response caching.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (optional; env credentials otherwise)")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(endpointsCmd)
}

// loadConfig loads .env, the YAML config if given, and initializes logging.
func loadConfig() (*config.AppConfig, error) {
	_ = godotenv.Load()

	var cfg *config.AppConfig
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			stylelog.InitDefault()
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	slogLevel := slog.LevelInfo
	if isDebug || cfg.Logging.Level == "debug" {
		slogLevel = slog.LevelDebug
	}

	stylelog.InitDefault(&tint.Options{
		Level:      slogLevel,
		TimeFormat: time.RFC3339,
	})

	return cfg, nil
}
