package cmd

import (
	"fmt"
	"os"

	"matchup-model/core/config"
	"matchup-model/core/diag"
	"matchup-model/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "matchup-model",
	Short: "Debate matchup data pipeline",
	Long: `matchup-model turns cumulative tournament result sheets into two-sided
round records, links the teams to the season registries and serves the stored
records over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var configDir string

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory holding matchup.yaml and .env")
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with the development config gives readable CLI errors.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger shared by the commands.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

const maxDiagnosticSamples = 5

// logDiagnostics logs the failure counts and a few sample entries per kind.
func logDiagnostics(l *zap.Logger, diags *diag.Diagnostics) {
	counts := diags.Counts()
	fields := make([]zap.Field, 0, len(diag.Kinds)+1)
	for _, k := range diag.Kinds {
		fields = append(fields, zap.Int(string(k), counts[k]))
	}
	fields = append(fields, zap.Int("total", diags.Total()))
	l.Info("Diagnostics report", fields...)

	for _, k := range diags.SortedKinds() {
		entries := diags.Entries(k)
		shown := min(len(entries), maxDiagnosticSamples)
		for _, e := range entries[:shown] {
			l.Debug("Sample diagnostic", zap.String("kind", string(k)), zap.String("entry", e.String()))
		}
		if len(entries) > shown {
			l.Debug("Additional diagnostics not shown", zap.String("kind", string(k)), zap.Int("count", len(entries)-shown))
		}
	}
}
