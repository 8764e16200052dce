package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"matchup-model/core/storage"
	"matchup-model/core/utils"
	"matchup-model/feature/registry"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importYear        string
	importTeamsDir    string
	importListFile    string
	importEventsDir   string
	importToStorage   bool
	importPageExt     string
	importTeamBaseURL string
)

// registryCmd is the parent command for registry maintenance.
var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Maintain the per-season team and tournament registries",
}

// registryImportCmd converts saved registry pages into registry JSON.
var registryImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Build registry files from saved HTML pages",
	Long: `Parse saved team profile pages and tournament pages into
debate_teams_<year>.json and tournaments_<year>.json.

Team pages are named <team id>.html. Tournament detail pages are named after
the last path segment of the tournament link in the season list.

Examples:
  registry import --year 2024 --teams pages/teams --tournaments pages/list.html --events pages/events
  registry import --year 2024 --teams pages/teams --to-storage`,
	RunE: runRegistryImport,
}

func init() {
	registryImportCmd.Flags().StringVar(&importYear, "year", "", "Season year (required)")
	registryImportCmd.Flags().StringVar(&importTeamsDir, "teams", "", "Directory of saved team profile pages")
	registryImportCmd.Flags().StringVar(&importListFile, "tournaments", "", "Saved tournament list page")
	registryImportCmd.Flags().StringVar(&importEventsDir, "events", "", "Directory of saved tournament detail pages")
	registryImportCmd.Flags().BoolVar(&importToStorage, "to-storage", false, "Write the registry files to object storage")
	registryImportCmd.Flags().StringVar(&importPageExt, "ext", ".html", "Extension of saved pages")
	registryImportCmd.Flags().StringVar(&importTeamBaseURL, "team-url", "", "Base URL recorded for team profiles")
	_ = registryImportCmd.MarkFlagRequired("year")

	registryCmd.AddCommand(registryImportCmd)
	RootCmd.AddCommand(registryCmd)
}

func runRegistryImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()

	if importTeamsDir == "" && importListFile == "" {
		return errors.New("nothing to import: pass --teams and/or --tournaments")
	}

	var teams []registry.TeamRecord
	if importTeamsDir != "" {
		if teams, err = importTeams(l, importTeamsDir); err != nil {
			return err
		}
		l.Info("Parsed team pages", zap.Int("teams", len(teams)))
	}

	var events []registry.EventRecord
	if importListFile != "" {
		if events, err = importEvents(l, importListFile, importEventsDir); err != nil {
			return err
		}
		l.Info("Parsed tournaments", zap.Int("events", len(events)))
	}

	if importToStorage {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			return err
		}
		src := registry.StorageSource{Client: client, Bucket: cfg.Storage.Bucket, Prefix: cfg.Identity.RegistryPrefix}
		if teams != nil {
			if err := src.SaveTeams(ctx, importYear, teams); err != nil {
				return err
			}
		}
		if events != nil {
			if err := src.SaveEvents(ctx, importYear, events); err != nil {
				return err
			}
		}
		l.Info("Uploaded registry", zap.String("bucket", cfg.Storage.Bucket), zap.String("prefix", cfg.Identity.RegistryPrefix))
		return nil
	}

	src := registry.DirSource{Dir: cfg.Identity.RegistryDir}
	if teams != nil {
		if err := src.SaveTeams(importYear, teams); err != nil {
			return err
		}
	}
	if events != nil {
		if err := src.SaveEvents(importYear, events); err != nil {
			return err
		}
	}
	l.Info("Wrote registry", zap.String("dir", cfg.Identity.RegistryDir), zap.String("year", importYear))
	return nil
}

func pageNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), importPageExt) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func importTeams(l *zap.Logger, dir string) ([]registry.TeamRecord, error) {
	names, err := pageNames(dir)
	if err != nil {
		return nil, err
	}

	teams := []registry.TeamRecord{}
	for _, name := range names {
		id, _ := utils.ToIntOK(strings.TrimSuffix(name, importPageExt))
		url := ""
		if importTeamBaseURL != "" {
			url = strings.TrimRight(importTeamBaseURL, "/") + "/" + utils.ToString(id)
		}

		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", name, err)
		}
		team, err := registry.ParseTeamPage(f, id, url)
		f.Close()
		if errors.Is(err, registry.ErrNotTeamPolicy) {
			l.Debug("Skipping page", zap.String("file", name), zap.Error(err))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if team.Year != "" && team.Year != importYear {
			l.Warn("Team page belongs to another season", zap.String("file", name), zap.String("year", team.Year))
			continue
		}
		teams = append(teams, team)
	}
	return teams, nil
}

func importEvents(l *zap.Logger, listFile, detailDir string) ([]registry.EventRecord, error) {
	f, err := os.Open(listFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", listFile, err)
	}
	events, err := registry.ParseTournamentList(f)
	f.Close()
	if err != nil {
		return nil, err
	}
	if detailDir == "" {
		return events, nil
	}

	for i, ev := range events {
		name := path.Base(strings.TrimRight(ev.URL, "/")) + importPageExt
		page, err := os.Open(filepath.Join(detailDir, name))
		if errors.Is(err, os.ErrNotExist) {
			l.Debug("No detail page for tournament", zap.String("tournament", ev.Name), zap.String("file", name))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", name, err)
		}
		details, err := registry.ParseTournamentPage(page)
		page.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		events[i] = ev.WithDetails(details)
	}
	return events, nil
}
