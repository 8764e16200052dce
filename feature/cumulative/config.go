package cumulative

import (
	"fmt"
	"strings"
)

// Config holds the extraction settings.
type Config struct {
	// InputDir is the local directory holding the cumulative text dumps.
	InputDir string `mapstructure:"input_dir" default:"cumulatives"`
	// Prefix is the object prefix used when reading dumps from storage.
	Prefix string `mapstructure:"prefix" default:"cumulatives/"`
	// Extension filters input files and objects.
	Extension string `mapstructure:"extension" default:".txt"`
	// YearStrategy is filename_then_content or content_only.
	YearStrategy string `mapstructure:"year_strategy" default:"filename_then_content"`
	// Workers bounds how many documents are parsed concurrently.
	Workers int `mapstructure:"workers" default:"4"`
	// ExtraNoise is a comma separated list of additional boilerplate markers.
	ExtraNoise string `mapstructure:"extra_noise" default:""`
	// Output is the CSV file the extract command writes.
	Output string `mapstructure:"output" default:"rounds_extracted.csv"`
}

// Options converts the configuration into extraction options.
func (c Config) Options() (Options, error) {
	strategy, err := ParseYearStrategy(c.YearStrategy)
	if err != nil {
		return Options{}, err
	}
	var extra []string
	for _, marker := range strings.Split(c.ExtraNoise, ",") {
		if m := strings.TrimSpace(marker); m != "" {
			extra = append(extra, m)
		}
	}
	return Options{
		YearStrategy: strategy,
		Noise:        NewNoiseFilter(extra...),
		Workers:      c.Workers,
	}, nil
}

// ParseYearStrategy maps a configuration value to a YearStrategy.
func ParseYearStrategy(s string) (YearStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "filename_then_content", "filename":
		return FilenameThenContent, nil
	case "content_only", "content":
		return ContentOnly, nil
	default:
		return 0, fmt.Errorf("unknown year strategy %q", s)
	}
}
