package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"matchup-model/core/storage"

	"github.com/minio/minio-go/v7"
)

// ErrNotFound is returned when a registry file for a year does not exist.
var ErrNotFound = errors.New("registry not found")

// TeamsFile is the name of the team registry for a year.
func TeamsFile(year string) string {
	return "debate_teams_" + year + ".json"
}

// EventsFile is the name of the event registry for a year.
func EventsFile(year string) string {
	return "tournaments_" + year + ".json"
}

// Source supplies per-year registries.
type Source interface {
	Teams(ctx context.Context, year string) ([]TeamRecord, error)
	Events(ctx context.Context, year string) ([]EventRecord, error)
}

// DirSource reads registries from JSON files in a local directory.
type DirSource struct {
	Dir string
}

func (s DirSource) Teams(ctx context.Context, year string) ([]TeamRecord, error) {
	var teams []TeamRecord
	if err := s.read(ctx, TeamsFile(year), &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (s DirSource) Events(ctx context.Context, year string) ([]EventRecord, error) {
	var events []EventRecord
	if err := s.read(ctx, EventsFile(year), &events); err != nil {
		return nil, err
	}
	return events, nil
}

// SaveTeams writes the team registry of year.
func (s DirSource) SaveTeams(year string, teams []TeamRecord) error {
	return s.write(TeamsFile(year), teams)
}

// SaveEvents writes the event registry of year.
func (s DirSource) SaveEvents(year string, events []EventRecord) error {
	return s.write(EventsFile(year), events)
}

func (s DirSource) read(ctx context.Context, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

func (s DirSource) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", s.Dir, err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// StorageSource reads registries from objects under Prefix.
type StorageSource struct {
	Client storage.Client
	Bucket string
	Prefix string
}

func (s StorageSource) Teams(ctx context.Context, year string) ([]TeamRecord, error) {
	var teams []TeamRecord
	if err := s.read(ctx, TeamsFile(year), &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (s StorageSource) Events(ctx context.Context, year string) ([]EventRecord, error) {
	var events []EventRecord
	if err := s.read(ctx, EventsFile(year), &events); err != nil {
		return nil, err
	}
	return events, nil
}

// SaveTeams uploads the team registry of year.
func (s StorageSource) SaveTeams(ctx context.Context, year string, teams []TeamRecord) error {
	return s.write(ctx, TeamsFile(year), teams)
}

// SaveEvents uploads the event registry of year.
func (s StorageSource) SaveEvents(ctx context.Context, year string, events []EventRecord) error {
	return s.write(ctx, EventsFile(year), events)
}

func (s StorageSource) key(name string) string {
	return path.Join(s.Prefix, name)
}

func (s StorageSource) read(ctx context.Context, name string, v any) error {
	data, err := storage.ReadObject(ctx, s.Client, s.Bucket, s.key(name))
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

func (s StorageSource) write(ctx context.Context, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return storage.WriteObject(ctx, s.Client, s.Bucket, s.key(name), data, "application/json")
}
