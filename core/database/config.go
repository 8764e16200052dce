package database

import (
	"fmt"
	"net/url"
)

// Config holds configuration for the database connection.
type Config struct {
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name, or the file path when Driver is sqlite.
	Name string `mapstructure:"name" default:"matchups.db"`
	// Driver is the database driver (mysql, sqlite).
	Driver string `mapstructure:"driver" default:"sqlite"`
	// TimeoutSeconds bounds connection setup and I/O.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// AutoMigrate creates the match_records table when commands connect.
	AutoMigrate bool `mapstructure:"auto_migrate" default:"true"`
}

// DSN returns the mysql data source name. Credentials are URL escaped and the
// same timeout applies to dialing, reads and writes.
func (c Config) DSN(timeoutSeconds int) string {
	user := url.UserPassword(c.User, c.Password).String()
	return fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		user, c.Host, c.Port, c.Name, timeoutSeconds, timeoutSeconds, timeoutSeconds)
}
