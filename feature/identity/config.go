package identity

// Config holds the registry linking settings.
type Config struct {
	// RulesPath is an optional YAML normalization document.
	RulesPath string `mapstructure:"rules_path" default:""`
	// KeySeparator joins the two member names of a team key.
	KeySeparator string `mapstructure:"key_separator" default:"|"`
	// Threshold is the minimum Jaccard score for a fuzzy tournament match.
	Threshold float64 `mapstructure:"threshold" default:"0.3"`
	// FieldSizeEvent selects the sub-event whose population is the field size.
	FieldSizeEvent string `mapstructure:"field_size_event" default:"Team Policy Debate"`
	// RegistryDir is the local directory holding registry JSON files.
	RegistryDir string `mapstructure:"registry_dir" default:"registry"`
	// RegistryPrefix is the object prefix used when registries live in storage.
	RegistryPrefix string `mapstructure:"registry_prefix" default:"registry/"`
	// Workers bounds how many years are resolved concurrently.
	Workers int `mapstructure:"workers" default:"4"`
	// Output is the joined CSV the link command writes.
	Output string `mapstructure:"output" default:"rounds_joined.csv"`
}

// Options converts the configuration into resolver options.
func (c Config) Options() Options {
	return Options{
		KeySeparator:   c.KeySeparator,
		Threshold:      c.Threshold,
		FieldSizeEvent: c.FieldSizeEvent,
		Workers:        c.Workers,
	}
}
