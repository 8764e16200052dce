package cmd

import (
	"context"
	"fmt"
	"os"

	"matchup-model/core/diag"
	"matchup-model/core/storage"
	"matchup-model/feature/identity"
	"matchup-model/feature/matches"
	"matchup-model/feature/registry"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	linkFromStorage bool
	linkInput       string
	linkOutput      string
	linkUpload      bool
)

// linkCmd joins extracted records with registry statistics.
var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Attach registry statistics to extracted round records",
	Long: `Read an extracted rounds CSV, identify every team in the season registries
by its two debaters and write the records with both teams' statistics.`,
	RunE: runLink,
}

func init() {
	linkCmd.Flags().BoolVar(&linkFromStorage, "from-storage", false, "Read registries from object storage instead of the registry directory")
	linkCmd.Flags().StringVar(&linkInput, "input", "", "Rounds CSV (defaults to pipeline.output)")
	linkCmd.Flags().StringVar(&linkOutput, "output", "", "Joined CSV (overrides identity.output)")
	linkCmd.Flags().BoolVar(&linkUpload, "upload", false, "Upload the CSV under storage.export_prefix")

	RootCmd.AddCommand(linkCmd)
}

func runLink(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()

	input := linkInput
	if input == "" {
		input = cfg.Pipeline.Output
	}
	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", input, err)
	}
	records, err := matches.ReadCSV(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}
	l.Info("Loaded rounds", zap.String("file", input), zap.Int("count", len(records)))

	var source registry.Source = registry.DirSource{Dir: cfg.Identity.RegistryDir}
	if linkFromStorage {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		source = registry.StorageSource{Client: client, Bucket: cfg.Storage.Bucket, Prefix: cfg.Identity.RegistryPrefix}
	}

	rules, err := identity.LoadNormalizationConfig(cfg.Identity.RulesPath)
	if err != nil {
		return err
	}
	norm, err := identity.NewNormalizer(rules)
	if err != nil {
		return err
	}

	resolver := identity.NewResolver(registry.NewCache(source), norm, cfg.Identity.Options())
	diags := diag.New()
	enriched, err := resolver.EnrichAll(ctx, records, diags)
	if err != nil {
		return fmt.Errorf("failed to link records: %w", err)
	}

	matched := 0
	for _, r := range enriched {
		if r.Team1Stats != nil {
			matched++
		}
		if r.Team2Stats != nil {
			matched++
		}
	}
	l.Info("Linked team sides", zap.Int("matched", matched), zap.Int("sides", 2*len(enriched)))
	logDiagnostics(l, diags)

	output := linkOutput
	if output == "" {
		output = cfg.Identity.Output
	}
	if err := writeRecords(output, enriched, true); err != nil {
		return err
	}
	l.Info("Wrote joined records", zap.String("file", output), zap.Int("count", len(enriched)))

	if linkUpload {
		return uploadExport(ctx, cfg.Storage, l, output)
	}
	return nil
}
