package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/MEKXH/passgauge/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	logLevelOverride string
	configFile       string
	// configCreated is set when loadConfig had to write a default config file.
	configCreated bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passgauge",
		Short: "passgauge - live password strength feedback",
		Long: `passgauge checks passwords against a configurable policy and reports
per-rule results, a 0-8 strength score and a Weak/Fair/Good/Strong tier.

Feedback is advisory. It is not a substitute for server-side enforcement.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configCreated = false
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				slog.Warn("failed to load .env", "error", err)
			}
			if cmd.Name() == "init" || cmd.Name() == "version" {
				return configureLogger(config.DefaultConfig(), logLevelOverride, false)
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return configureLogger(cfg, logLevelOverride, cmd.Name() == "watch")
		},
	}

	cmd.PersistentFlags().StringVar(&logLevelOverride, "log-level", "", "Override log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default ~/.passgauge/config.json)")

	cmd.AddCommand(
		NewInitCmd(),
		NewCheckCmd(),
		NewWatchCmd(),
		NewPolicyCmd(),
		NewServeCmd(),
		NewStatusCmd(),
		NewVersionCmd(),
	)

	return cmd
}

func configPath() string {
	if p := strings.TrimSpace(configFile); p != "" {
		return p
	}
	return config.ConfigPath()
}

func loadConfig() (*config.Config, error) {
	path := configPath()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		configCreated = true
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
