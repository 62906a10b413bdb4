// Package config resolves the gateway configuration from defaults, an
// optional config.yml and AUTHGATE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultDir is where Load looks for config.yml when no directory is given.
const DefaultDir = "configs"

const envPrefix = "AUTHGATE"

type Config struct {
	Server  Server
	DB      DB
	Log     Log
	Session Session
}

type Server struct {
	Port              string
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

type DB struct {
	// Path of the SQLite file, relative to the working directory.
	Path string
}

type Log struct {
	Level string
}

// Session configures the cookie store. Empty keys are replaced with random
// ones at startup.
type Session struct {
	Name          string
	AuthKey       string
	EncryptionKey string
}

// RandomKeys reports whether at least one key is unset, so sessions will not
// survive a restart.
func (s Session) RandomKeys() bool {
	return s.AuthKey == "" || s.EncryptionKey == ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("db.path", "db.sqlite3")
	v.SetDefault("log.level", "info")
	v.SetDefault("session.name", "authgate_session")
	v.SetDefault("session.auth_key", "")
	v.SetDefault("session.encryption_key", "")
}

// Load reads dir/config.yml when present. A missing file is not an error.
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = DefaultDir
	}

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(dir) // configs/config.yml
	v.SetConfigName("config")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config in %q: %w", dir, err)
		}
	}

	return &Config{
		Server: Server{
			Port:              v.GetString("server.port"),
			ReadHeaderTimeout: v.GetDuration("server.read_header_timeout"),
			IdleTimeout:       v.GetDuration("server.idle_timeout"),
			ShutdownTimeout:   v.GetDuration("server.shutdown_timeout"),
		},
		DB: DB{
			Path: v.GetString("db.path"),
		},
		Log: Log{
			Level: v.GetString("log.level"),
		},
		Session: Session{
			Name:          v.GetString("session.name"),
			AuthKey:       v.GetString("session.auth_key"),
			EncryptionKey: v.GetString("session.encryption_key"),
		},
	}, nil
}
