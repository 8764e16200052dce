// Package config provides configuration management for the matchup pipeline.
//
// It utilizes Viper for loading configuration from an optional matchup.yaml,
// an optional .env file and environment variables. Defaults come from the
// `default` struct tags of each partial configuration. LoadConfig validates
// the result before returning it.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: match record store (mysql or sqlite)
//   - Storage: S3/MinIO credentials and bucket holding the cumulative sheets
//   - Log: Logging level and format
//   - Pipeline: input directory, year strategy and worker count for extraction
//   - Identity: registry directory, normalization rules and tournament match threshold
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Pipeline.InputDir)
package config
