package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"matchup-model/core/config"
	"matchup-model/core/database"
	"matchup-model/core/loader"
	"matchup-model/core/middleware/auth"
	"matchup-model/core/middleware/rayid"
	"matchup-model/core/middleware/requestlog"
	"matchup-model/feature/matches"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// startCmd serves the stored match records over HTTP.
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the match record server",
	Long: `Serve the stored match records, their summary and the table schema check.
The database is optional; without it the matches feature reports itself disabled.`,
	RunE: runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()
	zap.ReplaceGlobals(l)

	db := connectOptional(cfg, l)
	if db != nil {
		l = l.With(zap.String("database", cfg.Database.Driver))
	}

	mgr := loader.NewManager()
	if cfg.Server.FeatureEnabled("matches") {
		feature := matches.NewFeature(db, l)
		if db != nil && cfg.Database.AutoMigrate {
			if err := feature.Service().Migrate(); err != nil {
				return err
			}
		}
		mgr.Register(feature)
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(rayid.New())
	app.Use(requestlog.New(l))
	app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

	loaded, err := mgr.LoadAll(app)
	if err != nil {
		return fmt.Errorf("failed to load features: %w", err)
	}
	l.Info("Loaded features", zap.Strings("features", loaded))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		l.Info("Starting server", zap.String("addr", cfg.Server.Addr()))
		errc <- app.Listen(cfg.Server.Addr())
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}
	l.Info("Shutting down server")
	return app.Shutdown()
}

// connectOptional opens the match record database, or returns nil and logs a
// warning when it is unreachable.
func connectOptional(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		l.Warn("Match record database unavailable", zap.Error(err))
		return nil
	}
	l.Info("Connected to match record database", zap.String("driver", cfg.Database.Driver))
	return db
}
