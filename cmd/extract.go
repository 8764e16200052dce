package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"matchup-model/core/database"
	"matchup-model/core/diag"
	"matchup-model/core/logger"
	"matchup-model/core/model"
	"matchup-model/core/reconcile"
	"matchup-model/core/storage"
	"matchup-model/feature/cumulative"
	"matchup-model/feature/matches"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	extractFromStorage bool
	extractInput       string
	extractOutput      string
	extractSave        bool
	extractUpload      bool
)

// extractCmd parses cumulative sheets into reconciled match records.
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract round records from cumulative sheets",
	Long: `Segment and parse every cumulative text dump, reconcile the per-team
observations into two-sided round records and write them as CSV.

Examples:
  # Read dumps from the configured input directory
  extract

  # Read dumps from object storage and store the records in the database
  extract --from-storage --save`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().BoolVar(&extractFromStorage, "from-storage", false, "Read dumps from object storage instead of the input directory")
	extractCmd.Flags().StringVar(&extractInput, "input", "", "Input directory (overrides pipeline.input_dir)")
	extractCmd.Flags().StringVar(&extractOutput, "output", "", "Output CSV (overrides pipeline.output)")
	extractCmd.Flags().BoolVar(&extractSave, "save", false, "Upsert the records into the database")
	extractCmd.Flags().BoolVar(&extractUpload, "upload", false, "Upload the CSV under storage.export_prefix")

	RootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()

	opts, err := cfg.Pipeline.Options()
	if err != nil {
		return err
	}

	var docs []cumulative.Document
	if extractFromStorage {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		docs, err = cumulative.LoadFromStorage(ctx, client, cfg.Storage.Bucket, cfg.Pipeline.Prefix, cfg.Pipeline.Extension)
		if err != nil {
			return fmt.Errorf("failed to load documents from storage: %w", err)
		}
	} else {
		dir := extractInput
		if dir == "" {
			dir = cfg.Pipeline.InputDir
		}
		if docs, err = cumulative.LoadDir(dir, cfg.Pipeline.Extension); err != nil {
			return err
		}
	}
	l.Info("Loaded documents", zap.Int("count", len(docs)), zap.String("year_strategy", opts.YearStrategy.String()))

	diags := diag.New()
	results, err := cumulative.ExtractAll(ctx, docs, opts, diags)
	if err != nil {
		return fmt.Errorf("failed to extract observations: %w", err)
	}
	for _, r := range results {
		logger.WithSource(l, r.Context.Source).Debug("Extracted document",
			zap.String("tournament", r.Context.Tournament),
			zap.String("year", r.Context.Year),
			zap.Int("blocks", r.Blocks),
			zap.Int("observations", len(r.Observations)),
		)
	}

	records, strategies := reconcile.ReconcileWithStrategies(cumulative.Observations(results), diags)
	logReconcileReport(l, records, strategies)
	logDiagnostics(l, diags)

	output := extractOutput
	if output == "" {
		output = cfg.Pipeline.Output
	}
	if err := writeRecords(output, records, false); err != nil {
		return err
	}
	l.Info("Wrote match records", zap.String("file", output), zap.Int("count", len(records)))

	if extractUpload {
		if err := uploadExport(ctx, cfg.Storage, l, output); err != nil {
			return err
		}
	}
	if !extractSave {
		return nil
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	svc := matches.NewService(db, l)
	if cfg.Database.AutoMigrate {
		if err := svc.Migrate(); err != nil {
			return err
		}
	}
	_, err = svc.Import(ctx, records)
	return err
}

// logReconcileReport logs the record summary and the strategy tally.
func logReconcileReport(l *zap.Logger, records []model.MatchRecord, strategies []reconcile.Strategy) {
	s := reconcile.Summarize(records)
	l.Info("Reconciliation report",
		zap.Int("total_records", s.TotalRecords),
		zap.Int("regular_rounds", s.RegularRounds),
		zap.Int("bye_rounds", s.ByeRounds),
		zap.Int("forfeit_rounds", s.ForfeitRounds),
		zap.Int("unresolved_rounds", s.UnresolvedRounds),
		zap.Int("unique_teams", s.UniqueTeams),
		zap.Float64("aff_win_rate", s.AffWinRate),
	)

	tally := reconcile.CountStrategies(strategies)
	fields := make([]zap.Field, 0, len(reconcile.Strategies))
	for _, st := range reconcile.Strategies {
		fields = append(fields, zap.Int(string(st), tally[st]))
	}
	l.Info("Records per strategy", fields...)

	if s.Points.Count > 0 {
		l.Info("Speaker points",
			zap.Int("count", s.Points.Count),
			zap.Float64("min", s.Points.Min),
			zap.Float64("max", s.Points.Max),
			zap.Float64("avg", s.Points.Avg),
			zap.Float64("aff_avg", s.Points.AffAvg),
			zap.Float64("neg_avg", s.Points.NegAvg),
		)
	}
}

func writeRecords(path string, records []model.MatchRecord, withStats bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := matches.WriteCSV(f, records, withStats); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// uploadExport copies a written CSV to the export prefix of the bucket.
func uploadExport(ctx context.Context, cfg storage.Config, l *zap.Logger, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	client, err := storage.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}
	if err := storage.EnsureBucket(ctx, client, cfg.Bucket, cfg.Region); err != nil {
		return err
	}
	key := cfg.ExportKey(filepath.Base(path))
	if err := storage.WriteObject(ctx, client, cfg.Bucket, key, data, "text/csv"); err != nil {
		return err
	}
	l.Info("Uploaded export", zap.String("bucket", cfg.Bucket), zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}
