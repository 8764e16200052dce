package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"strings"

	"matchup-model/core/database"
	"matchup-model/core/logger"
	"matchup-model/core/server"
	"matchup-model/core/storage"
	"matchup-model/feature/cumulative"
	"matchup-model/feature/identity"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileName is the optional YAML file read from the config directory.
const FileName = "matchup.yaml"

// Config is the full application configuration, one section per component.
type Config struct {
	Server   server.Config   `mapstructure:"server"`
	Storage  storage.Config  `mapstructure:"storage"`
	Log      logger.Config   `mapstructure:"log"`
	Database database.Config `mapstructure:"database"`
	// Pipeline configures cumulative sheet extraction.
	Pipeline cumulative.Config `mapstructure:"pipeline"`
	// Identity configures registry linking.
	Identity identity.Config `mapstructure:"identity"`
}

// LoadConfig resolves the configuration from, in increasing precedence, the
// struct tag defaults, dir/matchup.yaml, dir/.env and the process environment.
func LoadConfig(dir string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Overload(filepath.Join(dir, ".env"))

	v := viper.New()
	bindValues(v, Config{}, "")

	v.SetConfigFile(filepath.Join(dir, FileName))
	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	// PIPELINE_WORKERS -> pipeline.workers
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// Validate rejects settings the pipeline cannot run with.
func (c Config) Validate() error {
	if _, err := c.Pipeline.Options(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if c.Identity.Threshold <= 0 || c.Identity.Threshold > 1 {
		return fmt.Errorf("identity: threshold %v outside (0, 1]", c.Identity.Threshold)
	}
	if c.Identity.KeySeparator == "" {
		return errors.New("identity: key_separator must not be empty")
	}
	switch c.Database.Driver {
	case database.DriverMySQL, database.DriverSQLite, "":
	default:
		return fmt.Errorf("database: unsupported driver %q", c.Database.Driver)
	}
	return nil
}

// bindValues registers every mapstructure key with its `default` tag so that
// AutomaticEnv can resolve it. Nested structs become dotted keys.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
